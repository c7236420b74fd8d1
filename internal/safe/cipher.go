package safe

// Cipher is the symmetric encryption primitive the safe is built on.
// Implementations produce armored (printable) ciphertext suitable for storing
// in a text file, and are expected to be salted: encrypting the same plaintext
// twice with the same passphrase yields different ciphertext.
type Cipher interface {
	// Encrypt encrypts plaintext under the passphrase and returns armored
	// ciphertext.
	Encrypt(passphrase string, plaintext []byte) ([]byte, error)

	// Decrypt decrypts ciphertext produced by Encrypt. A wrong passphrase
	// and malformed ciphertext both fail with ErrDecryptionFailed; the two
	// are not distinguishable from the returned error.
	Decrypt(passphrase string, ciphertext []byte) ([]byte, error)

	// RandomBytes returns n cryptographically random bytes, failing with
	// ErrRandomUnavailable if the entropy source cannot be read.
	RandomBytes(n int) ([]byte, error)

	// Available reports whether the cipher can be used. Checked once at
	// startup, before any operation proceeds.
	Available() error
}
