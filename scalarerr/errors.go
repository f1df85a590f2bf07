// Package scalarerr defines the single error sum type shared by the
// secret-scalar and trie-root components.
package scalarerr

import "errors"

// Kind identifies which of the small set of failure modes an Error
// represents.
type Kind int

const (
	// KindInvalidSecretKey marks a scalar that the curve library rejected:
	// zero, out of range, or otherwise not a valid secp256k1 secret.
	KindInvalidSecretKey Kind = iota
	// KindInvalidHex marks a hex string that does not decode to exactly
	// 32 bytes.
	KindInvalidHex
	// KindCustom wraps an underlying error whose exact identity is not
	// part of this package's contract.
	KindCustom
)

// Sentinel values for use with errors.Is. Error.Is compares by Kind, so
// wrapping with extra context (via Custom) still matches these.
var (
	ErrInvalidSecretKey = &Error{Kind: KindInvalidSecretKey, msg: "invalid secret key"}
	ErrInvalidHex       = &Error{Kind: KindInvalidHex, msg: "invalid hex: expected 32 bytes"}
)

// Error is the single error type returned by every fallible operation in
// this module.
type Error struct {
	Kind Kind
	msg  string
	err  error // wrapped cause, for KindCustom
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error with the same Kind, so callers
// can write errors.Is(err, scalarerr.ErrInvalidSecretKey).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// InvalidSecretKey builds an InvalidSecretKey error, optionally wrapping
// a lower-level cause (e.g. from the curve library).
func InvalidSecretKey(cause error) *Error {
	return &Error{Kind: KindInvalidSecretKey, msg: "invalid secret key", err: cause}
}

// InvalidHex builds an InvalidHex error.
func InvalidHex(cause error) *Error {
	return &Error{Kind: KindInvalidHex, msg: "invalid hex: expected 32 bytes", err: cause}
}

// Custom wraps an arbitrary underlying error as a structured pass-through.
func Custom(msg string, cause error) *Error {
	return &Error{Kind: KindCustom, msg: msg, err: cause}
}

// As is a convenience wrapper over errors.As for *Error.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
