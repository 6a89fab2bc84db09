package source

import (
	"fmt"
	"log/slog"

	"github.com/structconf/structconf/fetcher"
)

// Parser decodes raw configuration data into a generated snapshot type.
//
// The path parameter selects a slice of the document using colon (:) as the
// separator for nested keys, e.g. "database:pool". An empty path decodes the
// whole document. Parser implementations handle path navigation internally;
// see source/yamlparser for one built on goccy/go-yaml PathString.
type Parser interface {
	Parse(data []byte, target any, path string) error
}

// DataSource reads raw configuration data from wherever it lives.
type DataSource interface {
	Fetch() ([]byte, error)
}

// Validator is implemented by snapshot types that can check their own
// invariants after decoding.
type Validator interface {
	Validate() error
}

// Defaulter is implemented by snapshot types that fill in zero-valued fields
// after decoding.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Snapshot reads, decodes, defaults, and validates one configuration value,
// returning the first snapshot for the node type T. The result is typically
// wrapped in a fetcher and never mutated again.
func Snapshot[T any](parser Parser, src DataSource, path string) (*T, error) {
	data, err := src.Fetch()
	if err != nil {
		return nil, fmt.Errorf("reading data error: %w", err)
	}

	target := new(T)

	err = parser.Parse(data, target, path)
	if err != nil {
		return nil, fmt.Errorf("parsing error: %w", err)
	}

	if defaulter, ok := any(target).(Defaulter); ok {
		if defaulter.SetDefaults() {
			slog.Info("defaults applied", slog.String("path", path))
		}
	}

	if validator, ok := any(target).(Validator); ok {
		err := validator.Validate()
		if err != nil {
			return nil, fmt.Errorf("validating error: %w", err)
		}
	}

	return target, nil
}

// StaticFetcher builds the first snapshot and pins it in a static fetcher.
// It is the common boot-time path for configuration that never updates.
func StaticFetcher[T any](parser Parser, src DataSource, path string) (fetcher.Fetcher[T], error) {
	snapshot, err := Snapshot[T](parser, src, path)
	if err != nil {
		return nil, err
	}

	return fetcher.NewStatic(snapshot), nil
}

// Publisher builds the first snapshot and seeds a fetcher.Publisher with it,
// for callers that will push fresh snapshots over time.
func Publisher[T any](parser Parser, src DataSource, path string) (*fetcher.Publisher[T], error) {
	snapshot, err := Snapshot[T](parser, src, path)
	if err != nil {
		return nil, err
	}

	return fetcher.NewPublisher(snapshot), nil
}
