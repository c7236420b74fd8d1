package safe

// FileStore abstracts the filesystem operations the transaction needs, so the
// commit protocol can be tested against controlled failures.
type FileStore interface {
	// Exists reports whether a file is present at path.
	Exists(path string) bool

	// ReadableNonEmpty reports whether path names a readable file with at
	// least one byte of content.
	ReadableNonEmpty(path string) bool

	// ReadFile returns the full contents of path.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to path with owner-only permissions.
	WriteFile(path string, data []byte) error

	// ReplaceAtomic renames tmpPath over finalPath in a single step.
	// After it returns, readers see either the fully-previous file or the
	// fully-new one, never a mix.
	ReplaceAtomic(tmpPath, finalPath string) error

	// Remove deletes path, ignoring a missing file.
	Remove(path string) error
}
