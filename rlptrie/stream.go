package rlptrie

import "github.com/eth2030/scalarcrypto/trieroot"

// Stream is the RLP-backed reference implementation of trieroot.Stream. A
// Stream accumulates one finished node's RLP bytes per top-level call;
// branch nodes buffer their 17 children until Out is called.
type Stream struct {
	branch           bool
	children         [][]byte // present only while building a branch node
	leaf             []byte   // node bytes once finished, or a pending extension's raw compact key
	pendingExtension bool
}

var _ trieroot.Stream = (*Stream)(nil)

// New returns an empty Stream, ready to accumulate one node.
func New() *Stream {
	return &Stream{}
}

// AppendEmptyData appends the RLP empty-string encoding, either as a
// branch child slot (if a branch is in progress) or as the node itself.
func (s *Stream) AppendEmptyData() {
	s.appendChildOrNode([]byte{0x80})
}

// AppendLeaf appends a leaf node: a 2-element list of
// [compact(path+terminator), value].
func (s *Stream) AppendLeaf(pathNibbles, value []byte) {
	s.appendChildOrNode(encodeLeafNode(pathNibbles, value))
}

// AppendExtension appends an extension node header. The caller must
// follow this with exactly one AppendSubstream call supplying the child.
func (s *Stream) AppendExtension(pathNibbles []byte) {
	s.leaf = encodeCompactKey(pathNibbles, false)
	s.pendingExtension = true
}

// BeginBranch starts a 17-slot branch node. Up to 17 Append* calls
// (AppendEmptyData, AppendSubstream, or AppendValue for the 17th) must
// follow before Out is called; Out fills any that are missing with the
// RLP empty-string encoding (0x80).
func (s *Stream) BeginBranch() {
	s.branch = true
	s.children = make([][]byte, 0, 17)
}

// AppendValue populates the 17th (value) slot of a branch node.
func (s *Stream) AppendValue(value []byte) {
	s.appendChildOrNode(encodeString(value))
}

// AppendSubstream embeds a finished child subtree: if the child's raw
// bytes are shorter than the hash's digest width, they are inlined
// as-is; otherwise the child is referenced by its hash.
func (s *Stream) AppendSubstream(h trieroot.Hasher, sub trieroot.Stream) {
	out := sub.Out()
	digestWidth := len(h.Hash(nil))

	var child []byte
	if len(out) < digestWidth {
		child = out
	} else {
		child = encodeChildRef(h.Hash(out))
	}

	if s.pendingExtension {
		keyEnc := encodeString(s.leaf)
		payload := append(append([]byte{}, keyEnc...), child...)
		s.leaf = wrapList(payload)
		s.pendingExtension = false
		return
	}
	s.appendChildOrNode(child)
}

// EncodeIndex returns the shortest-form RLP scalar encoding of i, used as
// the synthetic key by ordered tries.
func (s *Stream) EncodeIndex(i int) []byte {
	return encodeUint(uint64(i))
}

// Out returns the finished node's raw encoded bytes.
func (s *Stream) Out() []byte {
	if s.branch {
		for len(s.children) < 17 {
			s.children = append(s.children, []byte{0x80})
		}
		var payload []byte
		for _, c := range s.children {
			payload = append(payload, c...)
		}
		return wrapList(payload)
	}
	return s.leaf
}

// New returns a fresh, empty Stream for building a child subtree.
func (s *Stream) New() trieroot.Stream {
	return New()
}

// AsRaw is an alias for Out, matching the reference implementation's two
// names for the same accessor.
func (s *Stream) AsRaw() []byte {
	return s.Out()
}

func (s *Stream) appendChildOrNode(enc []byte) {
	if s.branch {
		s.children = append(s.children, enc)
		return
	}
	s.leaf = enc
}

func encodeLeafNode(hexKey, value []byte) []byte {
	keyEnc := encodeString(encodeCompactKey(hexKey, true))
	valEnc := encodeString(value)
	payload := append(append([]byte{}, keyEnc...), valEnc...)
	return wrapList(payload)
}

func encodeCompactKey(hexKey []byte, isLeaf bool) []byte {
	if isLeaf {
		withTerm := make([]byte, len(hexKey)+1)
		copy(withTerm, hexKey)
		withTerm[len(hexKey)] = terminatorByte
		return hexToCompact(withTerm)
	}
	return hexToCompact(hexKey)
}
