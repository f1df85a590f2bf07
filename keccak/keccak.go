// Package keccak provides the reference Keccak-256 Hasher for trieroot
// and rlptrie: a 32-byte digest over arbitrary-length input.
package keccak

import (
	"golang.org/x/crypto/sha3"

	"github.com/eth2030/scalarcrypto/trieroot"
)

// Hasher computes Keccak-256 digests. The zero value is ready to use.
type Hasher struct{}

var _ trieroot.Hasher = Hasher{}

// New returns a ready-to-use Keccak-256 Hasher.
func New() Hasher {
	return Hasher{}
}

// Hash returns the 32-byte Keccak-256 digest of data.
func (Hasher) Hash(data []byte) []byte {
	d := sha3.NewLegacyKeccak256()
	d.Write(data)
	return d.Sum(nil)
}
