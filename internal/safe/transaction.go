package safe

import (
	"fmt"
)

// Safe orchestrates read-modify-write transactions against the encrypted
// safe file. A write never touches the original file directly: the new
// contents are encrypted to a sibling temp file first, which replaces the
// original atomically only after encryption fully succeeds. At every instant
// the on-disk safe is either the complete previous version or the complete
// new one.
//
// Cross-process races on the final rename are not coordinated: two
// simultaneous writers last-rename-wins, and the loser's update is silently
// dropped. Acceptable for a single-user local tool.
type Safe struct {
	path   string
	cipher Cipher
	store  FileStore
	logger Logger
	clock  Clock
}

// tmpSuffix is appended to the safe path to name the temp file a write
// encrypts into before the atomic rename.
const tmpSuffix = ".new"

// NewSafe creates a Safe over the file at path.
func NewSafe(path string, cipher Cipher, store FileStore, logger Logger, clock Clock) *Safe {
	return &Safe{
		path:   path,
		cipher: cipher,
		store:  store,
		logger: logger,
		clock:  clock,
	}
}

// Path returns the safe file path.
func (s *Safe) Path() string { return s.path }

// Read decrypts the safe and returns its lines. With an empty username or
// "all", every line is returned (including the mtime line); otherwise only
// the lines recording that username.
func (s *Safe) Read(passphrase, username string) ([]string, error) {
	if passphrase == "" {
		return nil, ErrNoPassphrase
	}

	lines, err := s.load(passphrase)
	if err != nil {
		return nil, err
	}

	if username == "" || username == "all" {
		return lines, nil
	}
	return MatchUser(lines, username), nil
}

// Write stores an entry, replacing any previous records for the same
// username. Writing the same entry repeatedly never accumulates duplicates.
// An entry with an empty password clears the username without storing a new
// record. The first successful write creates the safe.
func (s *Safe) Write(passphrase string, entry Entry) error {
	if passphrase == "" {
		return ErrNoPassphrase
	}

	var lines []string
	if s.store.ReadableNonEmpty(s.path) {
		var err error
		lines, err = s.load(passphrase)
		if err != nil {
			// Fatal: a wrong passphrase must never produce a safe
			// with some entries migrated and others lost.
			return err
		}
	}

	lines = FilterOutUser(lines, entry.Username)
	lines = FilterNoise(lines)
	lines = AppendEntry(lines, entry)
	lines = Stamp(lines, s.clock.Now())

	if err := s.commit(passphrase, lines); err != nil {
		return err
	}

	s.logger.Info("safe updated", "path", s.path)
	return nil
}

// Delete removes every record for the username. Unlike the historical
// append-a-blank-line tombstone, the records are truly dropped; the committed
// file keeps its invariants (one mtime line, no blanks) either way.
func (s *Safe) Delete(passphrase, username string) error {
	if passphrase == "" {
		return ErrNoPassphrase
	}
	if username == "" {
		return fmt.Errorf("delete requires a username")
	}
	if !s.store.ReadableNonEmpty(s.path) {
		return ErrEmptySafe
	}

	lines, err := s.load(passphrase)
	if err != nil {
		return err
	}

	lines = FilterOutUser(lines, username)
	lines = FilterNoise(lines)
	lines = Stamp(lines, s.clock.Now())

	if err := s.commit(passphrase, lines); err != nil {
		return err
	}

	s.logger.Info("safe updated", "path", s.path)
	return nil
}

// load decrypts the safe file and parses it into lines.
func (s *Safe) load(passphrase string) ([]string, error) {
	if !s.store.ReadableNonEmpty(s.path) {
		return nil, ErrEmptySafe
	}

	ciphertext, err := s.store.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading safe: %w", err)
	}

	plaintext, err := s.cipher.Decrypt(passphrase, ciphertext)
	if err != nil {
		return nil, err
	}

	return ParseRecords(plaintext), nil
}

// commit encrypts the lines to the temp file and atomically renames it over
// the safe path. On any failure the temp file is removed and the original
// safe is left byte-identical.
func (s *Safe) commit(passphrase string, lines []string) error {
	ciphertext, err := s.cipher.Encrypt(passphrase, RenderRecords(lines))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncryptionFailed, err)
	}

	tmpPath := s.path + tmpSuffix

	committed := false
	defer func() {
		if !committed {
			s.store.Remove(tmpPath)
		}
	}()

	if err := s.store.WriteFile(tmpPath, ciphertext); err != nil {
		return fmt.Errorf("%w: writing temp file: %w", ErrEncryptionFailed, err)
	}

	if err := s.store.ReplaceAtomic(tmpPath, s.path); err != nil {
		return fmt.Errorf("committing safe: %w", err)
	}

	committed = true
	return nil
}
