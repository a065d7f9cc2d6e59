// Package id generates unique identifiers for registered stubs.
package id

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// New returns a random UUID v4 string, e.g.
// "9f1c4c2e-1b7a-4d8e-b0c3-5a6f7e8d9a0b".
func New() string {
	return uuid.NewString()
}

// Short returns a 16-character hex ID for contexts where brevity matters
// more than global uniqueness (display names, test fixtures).
func Short() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
