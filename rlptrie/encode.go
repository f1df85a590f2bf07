// Package rlptrie implements the reference trie Stream: RLP encoding of
// Merkle-Patricia nodes plus the append-only builder contract consumed by
// trieroot's recursive hasher. It is one concrete Stream among possibly
// many; trieroot never imports it directly.
package rlptrie

// encodeString RLP-encodes data as a string: a single byte in [0,0x7f] is
// its own encoding, a short string (<=55 bytes) gets a length-prefixed
// header, and a long string gets a length-of-length header.
func encodeString(data []byte) []byte {
	n := len(data)
	if n == 1 && data[0] <= 0x7f {
		return []byte{data[0]}
	}
	if n <= 55 {
		buf := make([]byte, 1+n)
		buf[0] = 0x80 + byte(n)
		copy(buf[1:], data)
		return buf
	}
	lenBytes := putUintBigEndian(uint64(n))
	buf := make([]byte, 1+len(lenBytes)+n)
	buf[0] = 0xb7 + byte(len(lenBytes))
	copy(buf[1:], lenBytes)
	copy(buf[1+len(lenBytes):], data)
	return buf
}

// encodeUint RLP-encodes u as the shortest-form scalar: zero is the empty
// string, and nonzero values are big-endian with no leading zero bytes.
func encodeUint(u uint64) []byte {
	if u == 0 {
		return []byte{0x80}
	}
	if u < 0x80 {
		return []byte{byte(u)}
	}
	return encodeString(putUintBigEndian(u))
}

// wrapList wraps an already-concatenated sequence of element encodings in
// an RLP list header.
func wrapList(payload []byte) []byte {
	n := len(payload)
	if n <= 55 {
		buf := make([]byte, 1+n)
		buf[0] = 0xc0 + byte(n)
		copy(buf[1:], payload)
		return buf
	}
	lenBytes := putUintBigEndian(uint64(n))
	buf := make([]byte, 1+len(lenBytes)+n)
	buf[0] = 0xf7 + byte(len(lenBytes))
	copy(buf[1:], lenBytes)
	copy(buf[1+len(lenBytes):], payload)
	return buf
}

// putUintBigEndian encodes u as big-endian bytes with no leading zeros.
func putUintBigEndian(u uint64) []byte {
	switch {
	case u < (1 << 8):
		return []byte{byte(u)}
	case u < (1 << 16):
		return []byte{byte(u >> 8), byte(u)}
	case u < (1 << 24):
		return []byte{byte(u >> 16), byte(u >> 8), byte(u)}
	case u < (1 << 32):
		return []byte{byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	case u < (1 << 40):
		return []byte{byte(u >> 32), byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	case u < (1 << 48):
		return []byte{byte(u >> 40), byte(u >> 32), byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	case u < (1 << 56):
		return []byte{byte(u >> 48), byte(u >> 40), byte(u >> 32), byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	default:
		return []byte{byte(u >> 56), byte(u >> 48), byte(u >> 40), byte(u >> 32), byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	}
}

// encodeChildRef RLP-encodes a branch/extension child reference: empty
// means the RLP empty string, otherwise the bytes (a child's hash) are
// wrapped as a string. Inlined child nodes are embedded raw by the
// caller and do not pass through here.
func encodeChildRef(ref []byte) []byte {
	if len(ref) == 0 {
		return []byte{0x80}
	}
	return encodeString(ref)
}
