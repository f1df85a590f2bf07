package trieroot

// keyToNibbles expands a packed byte key into a flat nibble sequence,
// high nibble first per byte. It carries no terminator: the preprocessing
// stage only needs the raw path, not the leaf-marking convention a
// concrete Stream's node encoding may require.
func keyToNibbles(key []byte) []byte {
	nibbles := make([]byte, len(key)*2)
	for i, b := range key {
		nibbles[i*2] = b >> 4
		nibbles[i*2+1] = b & 0x0f
	}
	return nibbles
}

// sharedPrefixLen returns the length of the longest common prefix of a and
// b, measured from index 0. Named to match the Rust source this package
// is ported from, rather than the unrelated "cursor-relative" prefixLen a
// mutable trie implementation might use.
func sharedPrefixLen(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
