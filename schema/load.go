package schema

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// Load parses a YAML schema declaration and validates it. Decode failures are
// reported as ErrMalformedSchema so callers can treat grammar and structure
// violations uniformly.
func Load(data []byte) (*Schema, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	var s Schema

	err := yaml.UnmarshalWithOptions(data, &s, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSchema, err)
	}

	err = s.Validate()
	if err != nil {
		return nil, err
	}

	return &s, nil
}
