// Package trieroot computes Ethereum-style Merkle-Patricia trie root
// hashes over an abstract hasher and stream encoder supplied by the
// caller. It is pure, stateless, and one-shot: given a finite key-value
// set it produces a single digest and retains nothing afterward.
package trieroot

import (
	"bytes"
	"sort"

	"github.com/eth2030/scalarcrypto/log"
)

var logger = log.Default().Module("trieroot")

// Hasher produces a fixed-width digest from arbitrary bytes.
type Hasher interface {
	Hash(data []byte) []byte
}

// Stream is the append-only node encoder the builder drives. A concrete
// Stream (such as rlptrie.Stream) owns the actual node byte layout; the
// builder only calls these operations in the sequence described by the
// recursive algorithm.
type Stream interface {
	// AppendEmptyData appends the encoding of "empty".
	AppendEmptyData()
	// AppendLeaf appends a leaf node for the given remaining path and value.
	AppendLeaf(pathNibbles, value []byte)
	// AppendExtension appends an extension-node header; the next call must
	// be AppendSubstream, supplying the child.
	AppendExtension(pathNibbles []byte)
	// BeginBranch starts a 17-slot branch node.
	BeginBranch()
	// AppendValue populates the 17th (value) slot of a branch node.
	AppendValue(value []byte)
	// AppendSubstream embeds a finished child subtree, inlining its raw
	// bytes or a hash reference depending on size, at S's discretion.
	AppendSubstream(h Hasher, sub Stream)
	// EncodeIndex returns the canonical key encoding for ordered_trie_root.
	EncodeIndex(i int) []byte
	// Out returns the finished node's encoded bytes.
	Out() []byte
	// New returns a fresh, empty Stream of the same concrete type, used
	// to build child subtrees.
	New() Stream
}

type kv struct {
	nibbles []byte
	value   []byte
}

// TrieRoot computes the root hash of the general key-value form: keys and
// values are arbitrary byte sequences, sorted lexicographically on raw
// key bytes with duplicate keys collapsed to the last occurrence.
func TrieRoot(h Hasher, s Stream, pairs [][2][]byte) []byte {
	ordered := canonicalize(pairs)
	return hashOrdered(h, s, ordered)
}

// SecTrieRoot is TrieRoot with every key first hashed through H, giving a
// trie whose keys do not reveal the original values' positions.
func SecTrieRoot(h Hasher, s Stream, pairs [][2][]byte) []byte {
	hashed := make([][2][]byte, len(pairs))
	for i, p := range pairs {
		hashed[i] = [2][]byte{h.Hash(p[0]), p[1]}
	}
	return TrieRoot(h, s, hashed)
}

// OrderedTrieRoot computes the root over a sequence of values whose keys
// are the RLP-canonical encodings of their positional indices
// (0, 1, 2, ...), as produced by s.EncodeIndex.
func OrderedTrieRoot(h Hasher, s Stream, values [][]byte) []byte {
	pairs := make([][2][]byte, len(values))
	for i, v := range values {
		pairs[i] = [2][]byte{s.EncodeIndex(i), v}
	}
	return TrieRoot(h, s, pairs)
}

// canonicalize drains pairs into an ordered mapping: lexicographic order
// on raw key bytes, duplicates collapsed to the last occurrence (matching
// standard ordered-map insertion semantics).
func canonicalize(pairs [][2][]byte) []kv {
	byKey := make(map[string][]byte, len(pairs))
	keys := make([]string, 0, len(pairs))
	for _, p := range pairs {
		k := string(p[0])
		if _, exists := byKey[k]; !exists {
			keys = append(keys, k)
		}
		byKey[k] = p[1]
	}
	sort.Strings(keys)

	out := make([]kv, len(keys))
	for i, k := range keys {
		out[i] = kv{nibbles: keyToNibbles([]byte(k)), value: byKey[k]}
	}
	return out
}

func hashOrdered(h Hasher, s Stream, input []kv) []byte {
	stream := s.New()
	buildTrie(h, stream, input, 0)
	logger.Debug("trie built", "nodes", len(input))
	return h.Hash(stream.Out())
}

// buildTrie is the recursive node builder. input is already sorted and
// trimmed so that every entry shares the prefix ending at cursor.
func buildTrie(h Hasher, stream Stream, input []kv, cursor int) {
	logger.Debug("buildTrie", "count", len(input), "cursor", cursor)

	switch len(input) {
	case 0:
		stream.AppendEmptyData()
		return
	case 1:
		stream.AppendLeaf(input[0].nibbles[cursor:], input[0].value)
		return
	}

	key := input[0].nibbles
	shared := len(key)
	for _, entry := range input[1:] {
		if c := sharedPrefixLen(key, entry.nibbles); c < shared {
			shared = c
		}
	}

	if shared > cursor {
		stream.AppendExtension(key[cursor:shared])
		buildTrieTrampoline(h, stream, input, shared)
		return
	}

	stream.BeginBranch()

	begin := 0
	if cursor == len(key) {
		begin = 1
	}
	for i := 0; i < 16; i++ {
		if begin >= len(input) {
			for ; i < 16; i++ {
				stream.AppendEmptyData()
			}
			break
		}
		count := 0
		for _, entry := range input[begin:] {
			if int(entry.nibbles[cursor]) != i {
				break
			}
			count++
		}
		if count == 0 {
			stream.AppendEmptyData()
		} else {
			buildTrieTrampoline(h, stream, input[begin:begin+count], cursor+1)
		}
		begin += count
	}

	if cursor == len(key) {
		stream.AppendValue(input[0].value)
	} else {
		stream.AppendEmptyData()
	}
}

// buildTrieTrampoline builds input at nibble depth cursor into a fresh
// child Stream and embeds the finished subtree into the parent stream.
func buildTrieTrampoline(h Hasher, stream Stream, input []kv, cursor int) {
	sub := stream.New()
	buildTrie(h, sub, input, cursor)
	stream.AppendSubstream(h, sub)
}

// EqualDigests is a small convenience for tests and callers comparing two
// digests for equality.
func EqualDigests(a, b []byte) bool {
	return bytes.Equal(a, b)
}
