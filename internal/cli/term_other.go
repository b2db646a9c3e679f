//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package cli

// Without termios, stdin is never treated as interactive.
func isTerminalFd(int) bool {
	return false
}
