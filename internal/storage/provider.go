// Package storage defines the content-root file-system abstraction.
package storage

// Provider is the interface for content file operations.
// All paths are relative to the content root.
type Provider interface {
	// Dirs returns the names of the immediate subdirectories of dir, sorted.
	Dirs(dir string) ([]string, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path.
	Write(path string, content []byte) error
}
