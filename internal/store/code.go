package store

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// CodeAlphabet is the character set of room codes.
const CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultCodeLength matches the five-character codes users share by voice.
const DefaultCodeLength = 5

// maxCodeAttempts bounds regeneration when a fresh code collides with a live room.
const maxCodeAttempts = 64

// RandomCode returns n characters drawn uniformly from CodeAlphabet.
func RandomCode(n int) (string, error) {
	max := big.NewInt(int64(len(CodeAlphabet)))
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		k, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(CodeAlphabet[k.Int64()])
	}
	return sb.String(), nil
}

// NormalizeCode turns user input like " ab12c " into "AB12C".
func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
