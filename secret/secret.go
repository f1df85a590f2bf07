// Package secret implements a zeroizing secp256k1 scalar secret. It owns
// a 32-byte big-endian buffer, attempts to pin that buffer's page against
// swapping, and overwrites the buffer with zeros when Destroy is called;
// a Secret that is never destroyed is not zeroized. Arithmetic is delegated to the real
// secp256k1 scalar field implementation rather than reimplemented here.
package secret

import (
	"encoding/hex"
	"fmt"
	"runtime"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/eth2030/scalarcrypto/log"
	"github.com/eth2030/scalarcrypto/scalarerr"
)

var logger = log.Default().Module("secret")

// MinusOne is n-1 mod n, the secp256k1 group order minus one (the
// constant parity-crypto calls MINUS_ONE_KEY). Negation and decrement
// are expressed as multiplication or addition by this value rather than
// as separate curve operations.
var MinusOne = [32]byte{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe,
	0xba, 0xae, 0xdc, 0xe6, 0xaf, 0x48, 0xa0, 0x3b,
	0xbf, 0xd2, 0x5e, 0x8c, 0xd0, 0x36, 0x41, 0x40,
}

// Secret is a 32-byte big-endian scalar, conceptually an integer in
// [0, n) where n is the secp256k1 group order. The all-zero value is a
// valid storage/math value but is never a valid curve secret.
//
// Secret is not safe for concurrent mutation: arithmetic methods take
// exclusive access to the receiver. Read-only methods (AsBytes, ToHex,
// CheckValidity, String) may be called concurrently with each other.
type Secret struct {
	buf    [32]byte
	locked bool
}

// Zero returns a Secret holding 32 zero bytes and attempts to pin its
// backing page. It never fails.
func Zero() *Secret {
	s := &Secret{}
	s.locked = lockPage(s.buf[:])
	return s
}

// CopyFromSlice builds a Secret from exactly 32 bytes. It returns nil if
// b is not exactly 32 bytes long. It does not validate b against the
// curve order. The caller is responsible for zeroizing b afterwards.
func CopyFromSlice(b []byte) *Secret {
	if len(b) != 32 {
		return nil
	}
	s := Zero()
	copy(s.buf[:], b)
	return s
}

// CopyFromHex builds a Secret from a big-endian hex string (with or
// without a leading "0x") that decodes to exactly 32 bytes. The
// hex-decoded intermediate buffer is zeroized before this function
// returns, even on success.
func CopyFromHex(str string) (*Secret, error) {
	str = trimHexPrefix(str)
	decoded, err := hex.DecodeString(str)
	defer zeroize(decoded)
	if err != nil {
		return nil, scalarerr.InvalidHex(err)
	}
	if len(decoded) != 32 {
		return nil, scalarerr.InvalidHex(fmt.Errorf("decoded length %d, want 32", len(decoded)))
	}
	return CopyFromSlice(decoded), nil
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

// ImportKey builds a Secret from exactly 32 bytes, additionally
// validating that the scalar is a valid secp256k1 secret key: non-zero
// and less than the group order n. The caller is responsible for
// zeroizing b afterwards.
func ImportKey(b []byte) (*Secret, error) {
	if len(b) != 32 {
		return nil, scalarerr.InvalidSecretKey(fmt.Errorf("length %d, want 32", len(b)))
	}
	var sc secp256k1.ModNScalar
	overflow := sc.SetByteSlice(b)
	zero := sc.IsZero()
	sc.Zero()
	if overflow || zero {
		return nil, scalarerr.InvalidSecretKey(nil)
	}
	return CopyFromSlice(b), nil
}

// FromCurveSecret consumes a curve-library scalar and returns the
// equivalent Secret. k is zeroized before this function returns.
func FromCurveSecret(k *secp256k1.ModNScalar) *Secret {
	s := Zero()
	out := k.Bytes()
	copy(s.buf[:], out[:])
	zeroizeArray32(&out)
	k.Zero()
	return s
}

// IsZero reports whether the scalar is the all-zero value.
func (s *Secret) IsZero() bool {
	for _, b := range s.buf {
		if b != 0 {
			return false
		}
	}
	return true
}

// AsBytes returns the backing 32-byte buffer. The caller must not retain
// or mutate the returned pointer beyond the Secret's lifetime.
func (s *Secret) AsBytes() *[32]byte {
	return &s.buf
}

// ToHex returns the scalar as 64 lowercase hex characters, no "0x" prefix.
func (s *Secret) ToHex() string {
	return hex.EncodeToString(s.buf[:])
}

// CheckValidity reports whether the scalar is a valid secp256k1 secret
// key: non-zero and less than the group order n.
func (s *Secret) CheckValidity() error {
	var sc secp256k1.ModNScalar
	overflow := sc.SetByteSlice(s.buf[:])
	zero := sc.IsZero()
	sc.Zero()
	if overflow || zero {
		return scalarerr.InvalidSecretKey(nil)
	}
	return nil
}

// String renders only the first two and last two bytes, in lowercase
// hex, to avoid leaking the full scalar through logs or error messages.
func (s *Secret) String() string {
	return fmt.Sprintf("Secret: 0x%02x%02x..%02x%02x", s.buf[0], s.buf[1], s.buf[30], s.buf[31])
}

// GoString implements fmt.GoStringer with the same leak-limited output
// as String, so %#v formatting cannot round-trip the full scalar either.
func (s *Secret) GoString() string {
	return s.String()
}

// Equal reports byte-wise equality of the two scalars' buffers.
func (s *Secret) Equal(other *Secret) bool {
	if other == nil {
		return false
	}
	return s.buf == other.buf
}

// Clone allocates a fresh, independently locked Secret with the same
// contents. It never shares storage with the receiver.
func (s *Secret) Clone() *Secret {
	c := Zero()
	c.buf = s.buf
	return c
}

// Destroy overwrites the scalar with zeros and releases its page lock.
// It is safe to call more than once. When an arithmetic method inside this
// package replaces a Secret's value (e.g. add(0 -> other)), the old bytes
// are zeroized in place by replaceWith; Destroy is not called and the page
// lock is kept.
func (s *Secret) Destroy() {
	zeroize(s.buf[:])
	if s.locked {
		unlockPage(s.buf[:])
		s.locked = false
	}
}

// zeroize overwrites b with zeros. runtime.KeepAlive pins the backing
// array past the last use so the compiler cannot prove the store is dead
// and eliminate it.
func zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

func zeroizeArray32(b *[32]byte) {
	zeroize(b[:])
}

// replaceWith overwrites self's storage with other's bytes, zeroizing
// the value self held beforehand. Used by the zero-guard branches of
// add/sub where self takes on a new value wholesale.
func (s *Secret) replaceWith(buf [32]byte) {
	zeroize(s.buf[:])
	s.buf = buf
}

// toScalar converts the Secret's raw bytes to a ModNScalar, reporting an
// InvalidSecretKey error if the bytes are out of the curve's range
// [0, n). Zero is intentionally accepted here: callers guard against
// zero themselves before reaching this conversion, matching the
// zero-guard table in the arithmetic methods below.
func toScalar(s *Secret) (secp256k1.ModNScalar, error) {
	var sc secp256k1.ModNScalar
	if overflow := sc.SetByteSlice(s.buf[:]); overflow {
		return secp256k1.ModNScalar{}, scalarerr.InvalidSecretKey(fmt.Errorf("scalar out of range"))
	}
	return sc, nil
}

var minusOneScalar = func() secp256k1.ModNScalar {
	var sc secp256k1.ModNScalar
	sc.SetByteSlice(MinusOne[:])
	return sc
}()

var oneScalar = func() secp256k1.ModNScalar {
	var sc secp256k1.ModNScalar
	sc.SetInt(1)
	return sc
}()

// Add sets self to (self + other) mod n, in place.
//
//   - self == 0: self becomes other.
//   - other == 0: no-op.
//   - otherwise: self += other via the curve scalar field.
func (s *Secret) Add(other *Secret) error {
	logger.Debug("add", "selfZero", s.IsZero(), "otherZero", other.IsZero())
	switch {
	case s.IsZero() && other.IsZero():
		return nil
	case s.IsZero():
		s.replaceWith(other.buf)
		return nil
	case other.IsZero():
		return nil
	}

	key, err := toScalar(s)
	if err != nil {
		return err
	}
	o, err := toScalar(other)
	if err != nil {
		key.Zero()
		return err
	}
	key.Add(&o)
	out := key.Bytes()
	s.replaceWith(out)
	zeroizeArray32(&out)
	key.Zero()
	o.Zero()
	return nil
}

// Sub sets self to (self - other) mod n, in place, implemented as
// self + (other * MinusOne).
//
//   - self == 0: self becomes -other (via Neg on a clone of other).
//   - other == 0: no-op.
//   - otherwise: self += other*MinusOne via the curve scalar field.
func (s *Secret) Sub(other *Secret) error {
	logger.Debug("sub", "selfZero", s.IsZero(), "otherZero", other.IsZero())
	switch {
	case s.IsZero() && other.IsZero():
		return nil
	case s.IsZero():
		s.replaceWith(other.buf)
		return s.Neg()
	case other.IsZero():
		return nil
	}

	key, err := toScalar(s)
	if err != nil {
		return err
	}
	o, err := toScalar(other)
	if err != nil {
		key.Zero()
		return err
	}
	o.Mul(&minusOneScalar)
	key.Add(&o)
	out := key.Bytes()
	s.replaceWith(out)
	zeroizeArray32(&out)
	key.Zero()
	o.Zero()
	return nil
}

// Mul sets self to (self * other) mod n, in place.
//
//   - self == 0: no-op (self stays zero regardless of other).
//   - self != 0, other == 0: self becomes zero.
//   - otherwise: self *= other via the curve scalar field.
func (s *Secret) Mul(other *Secret) error {
	logger.Debug("mul", "selfZero", s.IsZero(), "otherZero", other.IsZero())
	if s.IsZero() {
		return nil
	}
	if other.IsZero() {
		s.replaceWith([32]byte{})
		return nil
	}

	key, err := toScalar(s)
	if err != nil {
		return err
	}
	o, err := toScalar(other)
	if err != nil {
		key.Zero()
		return err
	}
	key.Mul(&o)
	out := key.Bytes()
	s.replaceWith(out)
	zeroizeArray32(&out)
	key.Zero()
	o.Zero()
	return nil
}

// Neg sets self to -self mod n (i.e. self * MinusOne), in place.
//
//   - self == 0: no-op.
//   - otherwise: self *= MinusOne.
func (s *Secret) Neg() error {
	if s.IsZero() {
		return nil
	}
	key, err := toScalar(s)
	if err != nil {
		return err
	}
	key.Mul(&minusOneScalar)
	out := key.Bytes()
	s.replaceWith(out)
	zeroizeArray32(&out)
	key.Zero()
	return nil
}

// Dec sets self to self - 1 mod n (i.e. self + MinusOne), in place.
//
//   - self == 0: self becomes MinusOne.
//   - otherwise: self += MinusOne.
func (s *Secret) Dec() error {
	if s.IsZero() {
		s.replaceWith(MinusOne)
		return nil
	}
	key, err := toScalar(s)
	if err != nil {
		return err
	}
	key.Add(&minusOneScalar)
	out := key.Bytes()
	s.replaceWith(out)
	zeroizeArray32(&out)
	key.Zero()
	return nil
}

// Pow raises self to the k-th power mod n, in place.
//
//   - self == 0: no-op; the zero secret stays zero for every k, including
//     k == 0 (the zero scalar is not a valid curve element, so callers
//     are expected to have validated before calling Pow).
//   - k == 0, self != 0: self becomes 1.
//   - k == 1: no-op.
//   - k >= 2: self becomes self^k, computed as k-1 self-multiplications
//     of the running value against a snapshot of self taken at entry.
func (s *Secret) Pow(k int) error {
	if s.IsZero() {
		return nil
	}
	switch {
	case k == 0:
		s.replaceWith(oneScalar.Bytes())
		return nil
	case k == 1:
		return nil
	default:
		snapshot := s.Clone()
		defer snapshot.Destroy()
		for i := 1; i < k; i++ {
			if err := s.Mul(snapshot); err != nil {
				return err
			}
		}
		return nil
	}
}
