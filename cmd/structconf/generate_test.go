package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `config:
  name: ServiceConfig
  fields:
    - name: region
      type: string
      restart: true
    - name: limits
      schema:
        name: LimitsConfig
        fields:
          - name: max_inflight
            type: int
`

func TestRunGenerate_WritesFormattedSource(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	schemaPath := filepath.Join(tmpDir, "service.yaml")
	outPath := filepath.Join(tmpDir, "service.go")

	err := os.WriteFile(schemaPath, []byte(testSchema), 0o600)
	require.NoError(t, err)

	err = runGenerate(schemaPath, outPath, "service")
	require.NoError(t, err)

	out, err := os.ReadFile(outPath) // #nosec G304 -- test-owned temp path
	require.NoError(t, err)

	assert.Contains(t, string(out), "// Code generated by structconf; DO NOT EDIT.")
	assert.Contains(t, string(out), "package service")
	assert.Contains(t, string(out), "type ServiceConfig struct {")
	assert.Contains(t, string(out), "func (s *ServiceConfig) ShareLimitsConfig() *LimitsConfig {")
}

func TestRunGenerate_DefaultsOutputAndPackage(t *testing.T) {
	t.Parallel()

	tmpDir := filepath.Join(t.TempDir(), "svcconf")
	require.NoError(t, os.Mkdir(tmpDir, 0o750))

	schemaPath := filepath.Join(tmpDir, "service.yaml")

	err := os.WriteFile(schemaPath, []byte(testSchema), 0o600)
	require.NoError(t, err)

	err = runGenerate(schemaPath, "", "")
	require.NoError(t, err)

	out, err := os.ReadFile(filepath.Join(tmpDir, "service.go")) // #nosec G304 -- test-owned temp path
	require.NoError(t, err)

	assert.Contains(t, string(out), "package svcconf")
}

func TestRunGenerate_InvalidSchema(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	schemaPath := filepath.Join(tmpDir, "bad.yaml")

	err := os.WriteFile(schemaPath, []byte("config:\n  fields: []\n"), 0o600)
	require.NoError(t, err)

	err = runGenerate(schemaPath, "", "")
	require.Error(t, err)
}

func TestRunGenerate_MissingSchemaFile(t *testing.T) {
	t.Parallel()

	err := runGenerate(filepath.Join(t.TempDir(), "absent.yaml"), "", "")
	require.Error(t, err)
}
