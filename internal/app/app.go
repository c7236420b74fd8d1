package app

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"pwsafe/internal/cipher"
	"pwsafe/internal/config"
	"pwsafe/internal/fs"
	"pwsafe/internal/safe"
)

// App is the application layer between the CLI and the safe transaction.
// It constructs all dependencies from config and exposes the high-level
// operations. Passphrases are accepted per call and never stored on the App.
type App struct {
	cfg       *config.Config
	safe      *safe.Safe
	generator *safe.Generator
	logFile   *os.File
}

// NewApp creates a fully wired App from the given config.
// operation identifies the CLI command being run (e.g. "Read", "Write").
// The caller must call Close when done.
func NewApp(cfg *config.Config, operation string) (*App, error) {
	c, err := cipher.NewCipherFromConfig(cfg.Cipher)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	// Fail before any safe access if the cipher cannot be used at all.
	if err := c.Available(); err != nil {
		return nil, fmt.Errorf("%w: %w", safe.ErrCipherUnavailable, err)
	}

	safePath, err := resolveSafePath(cfg)
	if err != nil {
		return nil, err
	}

	logDir, err := resolveLogDir(cfg)
	if err != nil {
		return nil, err
	}

	opID := uuid.New().String()
	logger, logFile, err := newLogger(logDir, opID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	logger.Debug("operation started", "operation", operation, "safe", safePath)

	store := fs.NewOSFileStore()
	s := safe.NewSafe(safePath, c, store, &slogAdapter{l: logger}, safe.RealClock{})
	gen := safe.NewGeneratorWithLimits(c, cfg.Generator.DefaultLength, cfg.Generator.MaxLength)

	return &App{
		cfg:       cfg,
		safe:      s,
		generator: gen,
		logFile:   logFile,
	}, nil
}

// resolveSafePath picks the safe file location: the PWSAFE_SAFE environment
// variable wins, then the configured path, then the default under base_dir.
func resolveSafePath(cfg *config.Config) (string, error) {
	if path := os.Getenv("PWSAFE_SAFE"); path != "" {
		return path, nil
	}
	if cfg.SafePath != "" {
		return cfg.SafePath, nil
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return "", err
	}
	return getSafePath(baseDir), nil
}

// resolveLogDir picks the log directory: the configured path, then the
// default under base_dir.
func resolveLogDir(cfg *config.Config) (string, error) {
	if cfg.LogDir != "" {
		return cfg.LogDir, nil
	}

	defaults, err := GetDefaults()
	if err != nil {
		return "", err
	}
	return defaults["log_dir"], nil
}

// SafePath returns the resolved safe file location.
func (a *App) SafePath() string {
	return a.safe.Path()
}

// Read returns the safe's lines for the username ("" or "all" returns every
// line).
func (a *App) Read(passphrase, username string) ([]string, error) {
	return a.safe.Read(passphrase, username)
}

// Write stores an entry, replacing any previous records for its username.
func (a *App) Write(passphrase string, entry safe.Entry) error {
	return a.safe.Write(passphrase, entry)
}

// Delete removes every record for the username.
func (a *App) Delete(passphrase, username string) error {
	return a.safe.Delete(passphrase, username)
}

// Generate returns a random password of the requested length (non-positive
// falls back to the configured default).
func (a *App) Generate(length int) (string, error) {
	return a.generator.Generate(length)
}

// Close releases the log file.
func (a *App) Close() error {
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}
