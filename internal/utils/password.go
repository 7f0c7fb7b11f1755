package utils

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the fixed work factor for password hashing.
const BcryptCost = 12

// maxBcryptLen is the bcrypt input limit; longer passwords are pre-hashed so
// no byte past position 72 is silently ignored.
const maxBcryptLen = 72

// prehash replaces passwords whose UTF-8 encoding exceeds 72 bytes with the
// lowercase hex SHA-256 of those bytes (64 ASCII chars). Applied identically
// on hash and verify so both sides see the same bcrypt input.
func prehash(plain string) string {
	if len(plain) <= maxBcryptLen {
		return plain
	}
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// HashPassword returns the bcrypt hash of the (possibly pre-hashed) password.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(prehash(plain)), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares a bcrypt hash and a plain password. Any
// malformed or truncated stored hash verifies as false, never as an error.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(prehash(plain))) == nil
}
