package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strings"

	"github.com/structconf/structconf/schema"
)

// featurePkg is the import path of the runtime tracker package referenced by
// generated feature code.
const featurePkg = "github.com/structconf/structconf/feature"

// header marks every emitted file per the convention understood by go tooling.
const header = "// Code generated by structconf; DO NOT EDIT.\n\n"

// File accumulates generated declarations for a single output file. Emitters
// write to the body; imports are collected separately and rendered sorted.
type File struct {
	pkg     string
	imports []string
	body    bytes.Buffer
}

// NewFile creates an emitter for one generated file in the given package.
func NewFile(pkg string) *File {
	return &File{pkg: pkg}
}

// Import records a package path needed by the emitted code. Duplicates are
// ignored; the list stays sorted.
func (f *File) Import(path string) {
	idx := sort.SearchStrings(f.imports, path)
	if idx < len(f.imports) && f.imports[idx] == path {
		return
	}

	f.imports = append(f.imports, "")
	copy(f.imports[idx+1:], f.imports[idx:])
	f.imports[idx] = path
}

func (f *File) printf(format string, args ...any) {
	fmt.Fprintf(&f.body, format, args...)
}

// Source assembles the file and runs it through go/format, so a formatting
// failure surfaces as a generation error instead of an unreadable artifact.
func (f *File) Source() ([]byte, error) {
	var out bytes.Buffer

	out.WriteString(header)
	fmt.Fprintf(&out, "package %s\n\n", f.pkg)

	if len(f.imports) > 0 {
		out.WriteString("import (\n")

		for _, group := range importGroups(f.imports) {
			for _, path := range group {
				fmt.Fprintf(&out, "\t%q\n", path)
			}

			out.WriteString("\n")
		}

		out.WriteString(")\n\n")
	}

	out.Write(f.body.Bytes())

	src, err := format.Source(out.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w", err)
	}

	return src, nil
}

// importGroups splits the sorted import list into the standard library group
// followed by everything else.
func importGroups(paths []string) [][]string {
	var std, rest []string

	for _, path := range paths {
		root, _, _ := strings.Cut(path, "/")
		if strings.Contains(root, ".") {
			rest = append(rest, path)
		} else {
			std = append(std, path)
		}
	}

	var groups [][]string

	if len(std) > 0 {
		groups = append(groups, std)
	}

	if len(rest) > 0 {
		groups = append(groups, rest)
	}

	return groups
}

// Generate validates the schema and emits one Go source file containing the
// compiled types and operations for its config tree and feature set.
func Generate(s *schema.Schema, pkg string) ([]byte, error) {
	err := s.Validate()
	if err != nil {
		return nil, err
	}

	f := NewFile(pkg)

	for _, path := range s.Imports {
		f.Import(path)
	}

	if s.Config != nil {
		f.ConfigTree(s.Config)
	}

	if s.Features != nil {
		f.FeatureSet(s.Features)
	}

	return f.Source()
}

// exportName converts a declared field or flag name to an exported Go
// identifier: snake_case and kebab-case segments become PascalCase.
func exportName(name string) string {
	segments := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var b strings.Builder

	for _, segment := range segments {
		b.WriteString(strings.ToUpper(segment[:1]))
		b.WriteString(segment[1:])
	}

	return b.String()
}
