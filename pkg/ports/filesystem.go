package ports

import (
	"os"
)

// FileSystem abstracts file system operations.
type FileSystem interface {
	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating it if necessary.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)

	// Stat returns file information for path.
	Stat(path string) (os.FileInfo, error)

	// Remove deletes a file or empty directory.
	Remove(path string) error

	// RemoveAll deletes path and any children it contains.
	RemoveAll(path string) error

	// TempDir creates a new private temporary directory under dir
	// (or the system default when dir is empty) and returns its path.
	TempDir(dir, pattern string) (string, error)

	// Glob returns the names of files matching pattern, sorted.
	Glob(pattern string) ([]string, error)

	// Writable reports whether new files can be created in dir.
	Writable(dir string) bool
}
