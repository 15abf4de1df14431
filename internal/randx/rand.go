// Package randx generates the random identifiers used for download tokens
// and their signatures.
package randx

import (
	"crypto/rand"
	"encoding/hex"
)

// HexString draws size bytes from the cryptographically secure random source
// and returns them hex-encoded, so the resulting string is 2*size characters
// long. Token ids and signatures use size 32 for 256 bits of entropy.
func HexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
