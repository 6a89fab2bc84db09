package filesource

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrPathIsDirectory is returned when the path points to a directory instead
// of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// Source implements source.DataSource for file-based configuration. The file
// is read once at construction time and the contents cached; configuration
// updates arrive as new snapshots, not as re-reads of a mutated source.
type Source struct {
	filepath string
	data     []byte
}

// New reads and caches the file at fpath. It returns an error if the file
// cannot be read or the path points to a directory.
func New(fpath string) (*Source, error) {
	cleanPath := filepath.Clean(fpath)

	stat, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("stat file %q: %w", cleanPath, err)
	}

	if stat.IsDir() {
		return nil, fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
	}

	data, err := os.ReadFile(cleanPath) // #nosec G304 -- path is cleaned and validated
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", cleanPath, err)
	}

	return &Source{filepath: cleanPath, data: data}, nil
}

// Fetch returns a copy of the cached data, so callers cannot mutate the
// cached contents.
func (s *Source) Fetch() ([]byte, error) {
	result := make([]byte, len(s.data))
	copy(result, s.data)

	return result, nil
}

// Path returns the cleaned path the source was read from.
func (s *Source) Path() string {
	return s.filepath
}
