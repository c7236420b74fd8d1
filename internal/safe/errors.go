package safe

import "errors"

// Sentinel errors for every way an operation can fail. Callers match with
// errors.Is; the CLI maps any of these to a short message and exit status 1.
//
// ErrDecryptionFailed deliberately covers both a wrong passphrase and
// corrupted ciphertext: the two cases must be indistinguishable to the caller.
var (
	// ErrNoPassphrase is returned when an empty passphrase is supplied.
	// The operation aborts before the safe file is touched.
	ErrNoPassphrase = errors.New("no passphrase provided")

	// ErrEmptySafe is returned when a read or delete targets a safe file
	// that does not exist or is zero bytes.
	ErrEmptySafe = errors.New("safe is missing or empty")

	// ErrDecryptionFailed is returned for a wrong passphrase or malformed
	// ciphertext. The error text never contains the passphrase.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrEncryptionFailed is returned when producing the new ciphertext
	// fails. The original safe file is left untouched.
	ErrEncryptionFailed = errors.New("encryption failed")

	// ErrRandomUnavailable is returned when the entropy source cannot be
	// read during password generation.
	ErrRandomUnavailable = errors.New("random source unavailable")

	// ErrCipherUnavailable is returned at startup when no usable cipher
	// implementation can be constructed.
	ErrCipherUnavailable = errors.New("cipher unavailable")
)
