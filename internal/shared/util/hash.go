package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the hex SHA-256 of s. Used for log fingerprints of prompts.
func Hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// ShortHash returns the first 12 hex characters of Hash(s).
func ShortHash(s string) string {
	return Hash(s)[:12]
}
