//go:build !unix

package secret

// lockPage is a no-op on platforms without an mlock equivalent wired up.
// Page locking is always best-effort and failure is never fatal, so
// reporting "not locked" here is a correct, if conservative, answer.
func lockPage(buf []byte) bool {
	return false
}

// unlockPage is a no-op to match lockPage.
func unlockPage(buf []byte) {}
