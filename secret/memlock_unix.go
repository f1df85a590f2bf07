//go:build unix

package secret

import "golang.org/x/sys/unix"

// lockPage attempts to pin buf against swapping. Failure is silent: the
// syscall may fail for many reasons (RLIMIT_MEMLOCK, unsupported
// filesystem-backed memory, sandboxing) and this is an optional hardening
// measure, not a correctness requirement.
func lockPage(buf []byte) bool {
	return unix.Mlock(buf) == nil
}

// unlockPage releases a page lock acquired by lockPage. Failure is
// silent for the same reasons as lockPage.
func unlockPage(buf []byte) {
	_ = unix.Munlock(buf)
}
