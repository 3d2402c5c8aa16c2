package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// hashOTP digests the one-time code before storage so a leaked users table
// does not expose live reset codes.
func hashOTP(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func otpMatches(code, storedHash string) bool {
	computed := hashOTP(code)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
