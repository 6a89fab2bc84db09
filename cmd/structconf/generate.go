package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/structconf/structconf/gen"
	"github.com/structconf/structconf/schema"
	"github.com/structconf/structconf/source/filesource"

	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var (
		schemaPath string
		outPath    string
		pkg        string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate Go source from a schema declaration",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runGenerate(schemaPath, outPath, pkg)
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "path to the YAML schema declaration")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (defaults to <schema>.go next to the schema)")
	cmd.Flags().StringVar(&pkg, "package", "", "package name for the generated file (defaults to the output directory name)")

	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func runGenerate(schemaPath, outPath, pkg string) error {
	src, err := filesource.New(schemaPath)
	if err != nil {
		return fmt.Errorf("opening schema: %w", err)
	}

	data, err := src.Fetch()
	if err != nil {
		return fmt.Errorf("reading schema: %w", err)
	}

	decl, err := schema.Load(data)
	if err != nil {
		return fmt.Errorf("loading schema %q: %w", schemaPath, err)
	}

	if outPath == "" {
		outPath = strings.TrimSuffix(src.Path(), filepath.Ext(src.Path())) + ".go"
	}

	if pkg == "" {
		pkg = filepath.Base(filepath.Dir(outPath))
	}

	out, err := gen.Generate(decl, pkg)
	if err != nil {
		return fmt.Errorf("generating code for %q: %w", schemaPath, err)
	}

	err = os.WriteFile(outPath, out, 0o600)
	if err != nil {
		return fmt.Errorf("writing %q: %w", outPath, err)
	}

	slog.Info("generated",
		slog.String("schema", schemaPath),
		slog.String("out", outPath),
		slog.String("package", pkg),
		slog.Int("bytes", len(out)))

	return nil
}
