package schema

import (
	"errors"
	"fmt"
)

// ErrMalformedSchema is returned when a schema declaration does not follow the
// expected grammar, e.g. a field that is both a leaf and a nested node.
var ErrMalformedSchema = errors.New("malformed schema")

// ErrDuplicateField is returned when two fields of the same node share a name.
var ErrDuplicateField = errors.New("duplicate field name")

// ErrDuplicateType is returned when two nodes anywhere in the tree share a type
// identifier. Unique identifiers are required so that projection methods
// emitted for ancestor/descendant pairs are unambiguous.
var ErrDuplicateType = errors.New("duplicate type identifier")

// ErrEmptySchema is returned when a schema declares neither a config tree nor a
// feature set.
var ErrEmptySchema = errors.New("schema declares no config and no features")

// maxDepth bounds nesting of config declarations. Declarations are inline, so
// the tree is acyclic by construction; the bound exists to reject
// pathological input early with a clear error.
const maxDepth = 32

// Config is a single configuration node: a type identifier plus an ordered
// list of fields. Nodes nest through Field.Schema, forming a finite tree.
type Config struct {
	// Name is the type identifier emitted for the node. It must be unique
	// across the whole schema.
	Name string `yaml:"name"`
	// Restart marks every direct field of this node as restart-triggering.
	Restart bool `yaml:"restart"`
	// Fields is the ordered field list. Order is preserved in emitted types.
	Fields []Field `yaml:"fields"`
}

// Field is one declared field of a node: either a leaf with a Go value type,
// or a nested node declaration. Exactly one of Type and Schema must be set.
type Field struct {
	Name string `yaml:"name"`
	// Type is the leaf Go type literal, e.g. "string" or "time.Duration".
	// Leaf values are opaque to the compiler and passed through to the
	// serialization collaborator.
	Type string `yaml:"type"`
	// Schema declares an inline nested node.
	Schema *Config `yaml:"schema"`
	// Restart includes the field in restart detection. On a nested field it
	// covers the whole subtree.
	Restart bool `yaml:"restart"`
	// Tags are passthrough struct tags for the serialization collaborator,
	// e.g. {"yaml": "max_conns"}. They are emitted verbatim on the snapshot
	// type and never interpreted.
	Tags map[string]string `yaml:"tags"`
}

// Leaf reports whether the field is a leaf value rather than a nested node.
func (f *Field) Leaf() bool {
	return f.Schema == nil
}

// Flag is one declared feature flag.
type Flag struct {
	Name    string `yaml:"name"`
	Default bool   `yaml:"default"`
	Restart bool   `yaml:"restart"`
}

// FeatureSet is a flat feature-flag schema: an enumeration name plus an
// ordered list of flags with compiled-in defaults. Flags are fixed at build
// time; they are never created or removed at runtime.
type FeatureSet struct {
	Name  string `yaml:"name"`
	Flags []Flag `yaml:"flags"`
}

// Schema is the root of one schema file. It may declare a config tree, a
// feature set, or both.
type Schema struct {
	// Imports lists extra package paths required by leaf types, e.g. "time"
	// when a leaf uses time.Duration.
	Imports  []string    `yaml:"imports"`
	Config   *Config     `yaml:"config"`
	Features *FeatureSet `yaml:"features"`
}

// Validate checks the schema against the declaration rules: well-formed
// fields, unique field names per node, globally unique node type identifiers,
// bounded nesting depth, and unique flag names. It returns the first
// violation found, annotated with the declaration site.
func (s *Schema) Validate() error {
	if s.Config == nil && s.Features == nil {
		return ErrEmptySchema
	}

	if s.Config != nil {
		seen := make(map[string]string)

		err := validateNode(s.Config, s.Config.Name, 0, seen)
		if err != nil {
			return err
		}
	}

	if s.Features != nil {
		err := validateFeatures(s.Features)
		if err != nil {
			return err
		}
	}

	return nil
}

func validateNode(node *Config, site string, depth int, seen map[string]string) error {
	if node.Name == "" {
		return fmt.Errorf("%w: node at %s has no type identifier", ErrMalformedSchema, site)
	}

	if depth > maxDepth {
		return fmt.Errorf("%w: nesting deeper than %d at %s", ErrMalformedSchema, maxDepth, site)
	}

	if prior, ok := seen[node.Name]; ok {
		return fmt.Errorf("%w: %q declared at %s and %s", ErrDuplicateType, node.Name, prior, site)
	}

	seen[node.Name] = site

	names := make(map[string]struct{}, len(node.Fields))

	for i := range node.Fields {
		field := &node.Fields[i]

		if field.Name == "" {
			return fmt.Errorf("%w: unnamed field in %s", ErrMalformedSchema, site)
		}

		fieldSite := site + "." + field.Name

		if _, ok := names[field.Name]; ok {
			return fmt.Errorf("%w: %q in node %s", ErrDuplicateField, field.Name, site)
		}

		names[field.Name] = struct{}{}

		if field.Type != "" && field.Schema != nil {
			return fmt.Errorf("%w: field %s declares both a leaf type and a nested node", ErrMalformedSchema, fieldSite)
		}

		if field.Type == "" && field.Schema == nil {
			return fmt.Errorf("%w: field %s declares neither a leaf type nor a nested node", ErrMalformedSchema, fieldSite)
		}

		if field.Schema != nil {
			err := validateNode(field.Schema, fieldSite, depth+1, seen)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func validateFeatures(set *FeatureSet) error {
	if set.Name == "" {
		return fmt.Errorf("%w: feature set has no name", ErrMalformedSchema)
	}

	names := make(map[string]struct{}, len(set.Flags))

	for _, flag := range set.Flags {
		if flag.Name == "" {
			return fmt.Errorf("%w: unnamed flag in feature set %s", ErrMalformedSchema, set.Name)
		}

		if _, ok := names[flag.Name]; ok {
			return fmt.Errorf("%w: flag %q in feature set %s", ErrDuplicateField, flag.Name, set.Name)
		}

		names[flag.Name] = struct{}{}
	}

	return nil
}
