package cipher

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"

	"filippo.io/age"
	"filippo.io/age/armor"

	"pwsafe/internal/safe"
)

// AgeCipher implements safe.Cipher using filippo.io/age passphrase
// encryption (scrypt recipient/identity) with ASCII-armored output. The
// armor keeps the safe file printable text; the scrypt salt makes every
// encryption of the same plaintext produce different ciphertext.
type AgeCipher struct{}

var _ safe.Cipher = (*AgeCipher)(nil)

// NewAgeCipher creates a new AgeCipher.
func NewAgeCipher() *AgeCipher {
	return &AgeCipher{}
}

// Encrypt encrypts plaintext under the passphrase and returns armored
// ciphertext.
func (c *AgeCipher) Encrypt(passphrase string, plaintext []byte) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt recipient: %w", err)
	}

	var buf bytes.Buffer
	armorWriter := armor.NewWriter(&buf)

	w, err := age.Encrypt(armorWriter, recipient)
	if err != nil {
		return nil, fmt.Errorf("creating encrypted writer: %w", err)
	}

	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("encrypting data: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}

	if err := armorWriter.Close(); err != nil {
		return nil, fmt.Errorf("finalizing armor: %w", err)
	}

	return buf.Bytes(), nil
}

// Decrypt decrypts armored ciphertext. A wrong passphrase and malformed or
// truncated ciphertext are deliberately indistinguishable: both surface as
// safe.ErrDecryptionFailed, and the underlying error is not propagated so no
// detail about the passphrase or the failure mode leaks.
func (c *AgeCipher) Decrypt(passphrase string, ciphertext []byte) ([]byte, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, safe.ErrDecryptionFailed
	}

	r, err := age.Decrypt(armor.NewReader(bytes.NewReader(ciphertext)), identity)
	if err != nil {
		return nil, safe.ErrDecryptionFailed
	}

	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, safe.ErrDecryptionFailed
	}

	return plaintext, nil
}

// RandomBytes returns n bytes from crypto/rand.
func (c *AgeCipher) RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("%w: %w", safe.ErrRandomUnavailable, err)
	}
	return b, nil
}

// Available reports nil: the cipher is library-backed and needs no external
// binary or key material.
func (c *AgeCipher) Available() error {
	return nil
}
