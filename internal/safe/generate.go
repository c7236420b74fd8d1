package safe

import (
	"encoding/base64"
	"fmt"
)

// Password generation defaults. The maximum is also the size of the random
// pool: enough bytes are drawn for max encoded characters, then the result
// is truncated to the requested length.
const (
	DefaultPasswordLength = 50
	MaxPasswordLength     = 100
)

// Generator produces cryptographically random passwords from the cipher's
// entropy source, base64-encoded to a printable alphabet.
type Generator struct {
	cipher        Cipher
	defaultLength int
	maxLength     int
}

// NewGenerator creates a Generator with the standard length limits.
func NewGenerator(cipher Cipher) *Generator {
	return NewGeneratorWithLimits(cipher, DefaultPasswordLength, MaxPasswordLength)
}

// NewGeneratorWithLimits creates a Generator with explicit length limits.
// Non-positive limits fall back to the standard ones.
func NewGeneratorWithLimits(cipher Cipher, defaultLength, maxLength int) *Generator {
	if defaultLength <= 0 {
		defaultLength = DefaultPasswordLength
	}
	if maxLength <= 0 {
		maxLength = MaxPasswordLength
	}
	if defaultLength > maxLength {
		defaultLength = maxLength
	}
	return &Generator{
		cipher:        cipher,
		defaultLength: defaultLength,
		maxLength:     maxLength,
	}
}

// Generate returns a random password of the requested length. A non-positive
// length falls back to the default; lengths beyond the maximum are clamped.
func (g *Generator) Generate(length int) (string, error) {
	if length <= 0 {
		length = g.defaultLength
	}
	if length > g.maxLength {
		length = g.maxLength
	}

	// 3 raw bytes encode to 4 printable characters, so this many bytes
	// guarantee at least maxLength characters after encoding.
	raw, err := g.cipher.RandomBytes((g.maxLength*3 + 3) / 4)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRandomUnavailable, err)
	}

	encoded := base64.RawStdEncoding.EncodeToString(raw)
	if len(encoded) < length {
		return "", fmt.Errorf("%w: short read from entropy source", ErrRandomUnavailable)
	}

	return encoded[:length], nil
}
