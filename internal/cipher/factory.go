package cipher

import (
	"fmt"

	"pwsafe/internal/config"
	"pwsafe/internal/safe"
)

// NewCipherFromConfig creates a Cipher based on the configuration type.
func NewCipherFromConfig(cfg config.CipherConfig) (safe.Cipher, error) {
	switch cfg.Type {
	case "age", "":
		return NewAgeCipher(), nil
	case "test":
		return NewTestCipher(), nil
	default:
		return nil, fmt.Errorf("%w: unknown cipher type: %q", safe.ErrCipherUnavailable, cfg.Type)
	}
}
