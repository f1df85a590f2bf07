package secret

import (
	"errors"
	"testing"

	"github.com/eth2030/scalarcrypto/scalarerr"
)

// fromUint64 builds a Secret whose big-endian value equals v, for use in
// small-number arithmetic properties below.
func fromUint64(v uint64) *Secret {
	var buf [32]byte
	for i := 0; i < 8; i++ {
		buf[31-i] = byte(v >> (8 * i))
	}
	return CopyFromSlice(buf[:])
}

func TestZeroIsZero(t *testing.T) {
	z := Zero()
	if !z.IsZero() {
		t.Fatal("Zero() is not IsZero()")
	}
	if len(z.ToHex()) != 64 {
		t.Fatalf("hex length = %d, want 64", len(z.ToHex()))
	}
	for _, c := range z.ToHex() {
		if c != '0' {
			t.Fatalf("unexpected hex: %s", z.ToHex())
		}
	}
}

func TestCopyFromSliceWrongLength(t *testing.T) {
	if CopyFromSlice(make([]byte, 31)) != nil {
		t.Fatal("expected nil for short slice")
	}
	if CopyFromSlice(make([]byte, 33)) != nil {
		t.Fatal("expected nil for long slice")
	}
}

func TestCopyFromHexWithAndWithoutPrefix(t *testing.T) {
	h := fromUint64(1).ToHex()
	a, err := CopyFromHex(h)
	if err != nil {
		t.Fatalf("CopyFromHex(%q): %v", h, err)
	}
	b, err := CopyFromHex("0x" + h)
	if err != nil {
		t.Fatalf("CopyFromHex(0x%q): %v", h, err)
	}
	if !a.Equal(b) {
		t.Fatal("0x-prefixed and bare hex should parse identically")
	}
}

func TestCopyFromHexBadLength(t *testing.T) {
	_, err := CopyFromHex("deadbeef")
	if err == nil {
		t.Fatal("expected error for short hex")
	}
	var e *scalarerr.Error
	if !errors.As(err, &e) || e.Kind != scalarerr.KindInvalidHex {
		t.Fatalf("expected InvalidHex kind, got %v", err)
	}
}

func TestImportKeyRejectsZero(t *testing.T) {
	_, err := ImportKey(make([]byte, 32))
	if !errors.Is(err, scalarerr.ErrInvalidSecretKey) {
		t.Fatalf("expected ErrInvalidSecretKey, got %v", err)
	}
}

func TestImportKeyRejectsOverflow(t *testing.T) {
	// n == MinusOne+1 overflows the scalar field.
	n := MinusOne
	n[31]++
	_, err := ImportKey(n[:])
	if !errors.Is(err, scalarerr.ErrInvalidSecretKey) {
		t.Fatalf("expected ErrInvalidSecretKey for n itself, got %v", err)
	}
}

func TestImportKeyRejectsWrongLength(t *testing.T) {
	if _, err := ImportKey([]byte{1}); err == nil {
		t.Fatal("expected length error for 1-byte slice")
	}
}

func TestImportKeyAcceptsValidScalar(t *testing.T) {
	one := make([]byte, 32)
	one[31] = 1
	s, err := ImportKey(one)
	if err != nil {
		t.Fatalf("ImportKey(1): %v", err)
	}
	if s.ToHex() != fromUint64(1).ToHex() {
		t.Fatalf("unexpected round-trip: %s", s.ToHex())
	}
}

func TestCheckValidity(t *testing.T) {
	if err := Zero().CheckValidity(); err == nil {
		t.Fatal("zero scalar should be invalid")
	}
	if err := fromUint64(1).CheckValidity(); err != nil {
		t.Fatalf("1 should be valid: %v", err)
	}
}

func TestCloneIndependence(t *testing.T) {
	a := fromUint64(5)
	b := a.Clone()
	if err := b.Add(fromUint64(1)); err != nil {
		t.Fatal(err)
	}
	if a.Equal(b) {
		t.Fatal("clone must be independent of original")
	}
}

func TestAddIdentityAndZeroGuards(t *testing.T) {
	five := fromUint64(5)
	z := Zero()

	clone := five.Clone()
	if err := clone.Add(z); err != nil {
		t.Fatal(err)
	}
	if !clone.Equal(five) {
		t.Fatal("x + 0 must equal x")
	}

	z2 := Zero()
	if err := z2.Add(five); err != nil {
		t.Fatal(err)
	}
	if !z2.Equal(five) {
		t.Fatal("0 + x must equal x")
	}
}

func TestAddMatchesUint64Sum(t *testing.T) {
	a := fromUint64(7)
	b := fromUint64(11)
	want := fromUint64(18)

	ab := a.Clone()
	if err := ab.Add(b); err != nil {
		t.Fatal(err)
	}
	if !ab.Equal(want) {
		t.Fatalf("7 + 11 = %s, want %s", ab.ToHex(), want.ToHex())
	}
}

func TestAddCommutative(t *testing.T) {
	a := fromUint64(7)
	b := fromUint64(11)

	ab := a.Clone()
	if err := ab.Add(b); err != nil {
		t.Fatal(err)
	}
	ba := b.Clone()
	if err := ba.Add(a); err != nil {
		t.Fatal(err)
	}
	if !ab.Equal(ba) {
		t.Fatal("addition must commute")
	}
}

func TestSubThenAddRoundTrips(t *testing.T) {
	a := fromUint64(10)
	b := fromUint64(3)

	c := a.Clone()
	if err := c.Sub(b); err != nil {
		t.Fatal(err)
	}
	if err := c.Add(b); err != nil {
		t.Fatal(err)
	}
	if !c.Equal(a) {
		t.Fatal("(a - b) + b must equal a")
	}
}

func TestSubZeroGuards(t *testing.T) {
	five := fromUint64(5)

	// self == 0: result is -other.
	z := Zero()
	if err := z.Sub(five); err != nil {
		t.Fatal(err)
	}
	neg := five.Clone()
	if err := neg.Neg(); err != nil {
		t.Fatal(err)
	}
	if !z.Equal(neg) {
		t.Fatal("0 - x must equal -x")
	}

	// other == 0: no-op.
	c := five.Clone()
	if err := c.Sub(Zero()); err != nil {
		t.Fatal(err)
	}
	if !c.Equal(five) {
		t.Fatal("x - 0 must equal x")
	}
}

func TestMulZeroGuards(t *testing.T) {
	five := fromUint64(5)

	z := Zero()
	if err := z.Mul(five); err != nil {
		t.Fatal(err)
	}
	if !z.IsZero() {
		t.Fatal("0 * x must be 0")
	}

	c := five.Clone()
	if err := c.Mul(Zero()); err != nil {
		t.Fatal(err)
	}
	if !c.IsZero() {
		t.Fatal("x * 0 must be 0")
	}
}

func TestMulMatchesUint64Product(t *testing.T) {
	a := fromUint64(6)
	b := fromUint64(7)
	want := fromUint64(42)

	ab := a.Clone()
	if err := ab.Mul(b); err != nil {
		t.Fatal(err)
	}
	if !ab.Equal(want) {
		t.Fatalf("6 * 7 = %s, want %s", ab.ToHex(), want.ToHex())
	}
}

func TestMulCommutativeAndAssociative(t *testing.T) {
	a := fromUint64(3)
	b := fromUint64(4)
	c := fromUint64(5)

	ab := a.Clone()
	if err := ab.Mul(b); err != nil {
		t.Fatal(err)
	}
	ba := b.Clone()
	if err := ba.Mul(a); err != nil {
		t.Fatal(err)
	}
	if !ab.Equal(ba) {
		t.Fatal("multiplication must commute")
	}

	abc1 := a.Clone()
	if err := abc1.Mul(b); err != nil {
		t.Fatal(err)
	}
	if err := abc1.Mul(c); err != nil {
		t.Fatal(err)
	}
	bc := b.Clone()
	if err := bc.Mul(c); err != nil {
		t.Fatal(err)
	}
	abc2 := a.Clone()
	if err := abc2.Mul(bc); err != nil {
		t.Fatal(err)
	}
	if !abc1.Equal(abc2) {
		t.Fatal("multiplication must associate")
	}
}

func TestNegIsSelfInverseUnderAdd(t *testing.T) {
	five := fromUint64(5)
	n := five.Clone()
	if err := n.Neg(); err != nil {
		t.Fatal(err)
	}
	sum := five.Clone()
	if err := sum.Add(n); err != nil {
		t.Fatal(err)
	}
	if !sum.IsZero() {
		t.Fatal("x + (-x) must be 0")
	}
}

func TestNegZeroIsNoOp(t *testing.T) {
	z := Zero()
	if err := z.Neg(); err != nil {
		t.Fatal(err)
	}
	if !z.IsZero() {
		t.Fatal("-0 must be 0")
	}
}

func TestDecZeroWrapsToMinusOne(t *testing.T) {
	z := Zero()
	if err := z.Dec(); err != nil {
		t.Fatal(err)
	}
	mo := CopyFromSlice(MinusOne[:])
	if !z.Equal(mo) {
		t.Fatal("dec(0) must equal MinusOne")
	}
}

func TestDecMatchesSubOne(t *testing.T) {
	five := fromUint64(5)
	one := fromUint64(1)

	a := five.Clone()
	if err := a.Dec(); err != nil {
		t.Fatal(err)
	}
	b := five.Clone()
	if err := b.Sub(one); err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Fatal("dec(x) must equal x - 1")
	}
}

func TestPowZeroStaysZero(t *testing.T) {
	z := Zero()
	if err := z.Pow(0); err != nil {
		t.Fatal(err)
	}
	if !z.IsZero() {
		t.Fatal("pow(0, k) must stay 0 for every k")
	}
	z2 := Zero()
	if err := z2.Pow(5); err != nil {
		t.Fatal(err)
	}
	if !z2.IsZero() {
		t.Fatal("pow(0, k) must stay 0 for every k")
	}
}

func TestPowZeroExponentYieldsOne(t *testing.T) {
	five := fromUint64(5)
	p := five.Clone()
	if err := p.Pow(0); err != nil {
		t.Fatal(err)
	}
	if !p.Equal(fromUint64(1)) {
		t.Fatal("x^0 must be 1 for nonzero x")
	}
}

func TestPowOneIsNoOp(t *testing.T) {
	five := fromUint64(5)
	p := five.Clone()
	if err := p.Pow(1); err != nil {
		t.Fatal(err)
	}
	if !p.Equal(five) {
		t.Fatal("x^1 must be x")
	}
}

func TestPowMatchesRepeatedMul(t *testing.T) {
	three := fromUint64(3)

	p := three.Clone()
	if err := p.Pow(4); err != nil {
		t.Fatal(err)
	}

	m := three.Clone()
	for i := 0; i < 3; i++ {
		if err := m.Mul(three); err != nil {
			t.Fatal(err)
		}
	}
	if !p.Equal(m) {
		t.Fatalf("pow(4) = %s, repeated mul = %s", p.ToHex(), m.ToHex())
	}
}

func TestDestroyZeroizesBuffer(t *testing.T) {
	five := fromUint64(5)
	five.Destroy()
	if !five.IsZero() {
		t.Fatal("Destroy must zeroize the buffer")
	}
}

func TestStringDoesNotLeakFullScalar(t *testing.T) {
	var buf [32]byte
	for i := range buf {
		buf[i] = 0x11
	}
	s := CopyFromSlice(buf[:])
	str := s.String()
	if len(str) > 40 {
		t.Fatalf("String() output too long, may be leaking full scalar: %s", str)
	}
}
