// Package crypt holds the digest helpers for short-lived secrets. OTP
// and password-reset codes are parked in the ephemeral store as
// SHA-256 digests; the plaintext code exists only in the email sent to
// the user.
package crypt

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
)

// Hash returns the SHA-256 hex digest of input.
func Hash(input string) string {
	h := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", h)
}

// Verify reports whether input hashes to digest, in constant time.
func Verify(input, digest string) bool {
	h := Hash(input)
	return subtle.ConstantTimeCompare([]byte(h), []byte(digest)) == 1
}
