package cipher

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	"pwsafe/internal/safe"
)

// testHeader is prepended to data by TestCipher to make encrypted output
// clearly different from plaintext while remaining deterministic and
// reversible.
var testHeader = []byte("PWENC\x00\x00\x00")

// TestCipher is a simple, deterministic cipher for testing. It prepends a
// fixed header and a digest of the passphrase during encryption and verifies
// both during decryption, so wrong-passphrase paths behave like the real
// cipher without any crypto cost. The Fail switches force deterministic
// failures for exercising abort paths.
type TestCipher struct {
	FailEncrypt bool
	FailDecrypt bool
	FailRandom  bool
}

var _ safe.Cipher = (*TestCipher)(nil)

// NewTestCipher creates a new TestCipher.
func NewTestCipher() *TestCipher {
	return &TestCipher{}
}

// passphraseTag derives the 8-byte passphrase digest stored in the header.
func passphraseTag(passphrase string) []byte {
	sum := sha256.Sum256([]byte(passphrase))
	return sum[:8]
}

func (c *TestCipher) Encrypt(passphrase string, plaintext []byte) ([]byte, error) {
	if c.FailEncrypt {
		return nil, fmt.Errorf("%w: injected failure", safe.ErrEncryptionFailed)
	}

	out := make([]byte, 0, len(testHeader)+8+len(plaintext))
	out = append(out, testHeader...)
	out = append(out, passphraseTag(passphrase)...)
	out = append(out, plaintext...)
	return out, nil
}

func (c *TestCipher) Decrypt(passphrase string, ciphertext []byte) ([]byte, error) {
	if c.FailDecrypt {
		return nil, safe.ErrDecryptionFailed
	}

	if len(ciphertext) < len(testHeader)+8 {
		return nil, safe.ErrDecryptionFailed
	}
	if !bytes.Equal(ciphertext[:len(testHeader)], testHeader) {
		return nil, safe.ErrDecryptionFailed
	}
	if !bytes.Equal(ciphertext[len(testHeader):len(testHeader)+8], passphraseTag(passphrase)) {
		return nil, safe.ErrDecryptionFailed
	}

	return ciphertext[len(testHeader)+8:], nil
}

// RandomBytes returns a deterministic byte sequence so generated passwords
// are reproducible in tests.
func (c *TestCipher) RandomBytes(n int) ([]byte, error) {
	if c.FailRandom {
		return nil, fmt.Errorf("%w: injected failure", safe.ErrRandomUnavailable)
	}

	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b, nil
}

func (c *TestCipher) Available() error {
	return nil
}
