package schema_test

import (
	"strings"
	"testing"

	"github.com/structconf/structconf/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *schema.Config {
	return &schema.Config{
		Name: "AppConfig",
		Fields: []schema.Field{
			{Name: "telemetry", Type: "bool"},
			{
				Name: "database",
				Schema: &schema.Config{
					Name: "DatabaseConfig",
					Fields: []schema.Field{
						{Name: "connection_string", Type: "string", Restart: true},
					},
				},
			},
		},
	}
}

func TestValidate_ValidSchema(t *testing.T) {
	t.Parallel()

	s := &schema.Schema{
		Config: validConfig(),
		Features: &schema.FeatureSet{
			Name: "AppFeatures",
			Flags: []schema.Flag{
				{Name: "Foo", Default: false},
				{Name: "Bar", Default: true, Restart: true},
			},
		},
	}

	require.NoError(t, s.Validate())
}

func TestValidate_EmptySchema(t *testing.T) {
	t.Parallel()

	s := &schema.Schema{}

	require.ErrorIs(t, s.Validate(), schema.ErrEmptySchema)
}

func TestValidate_DuplicateFieldName(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Fields = append(cfg.Fields, schema.Field{Name: "telemetry", Type: "int"})

	s := &schema.Schema{Config: cfg}

	err := s.Validate()
	require.ErrorIs(t, err, schema.ErrDuplicateField)
	assert.Contains(t, err.Error(), "telemetry")
	assert.Contains(t, err.Error(), "AppConfig")
}

func TestValidate_DuplicateTypeIdentifier(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Fields = append(cfg.Fields, schema.Field{
		Name: "replica",
		Schema: &schema.Config{
			Name:   "DatabaseConfig",
			Fields: []schema.Field{{Name: "addr", Type: "string"}},
		},
	})

	s := &schema.Schema{Config: cfg}

	err := s.Validate()
	require.ErrorIs(t, err, schema.ErrDuplicateType)
	assert.Contains(t, err.Error(), "DatabaseConfig")
	assert.Contains(t, err.Error(), "AppConfig.database")
	assert.Contains(t, err.Error(), "AppConfig.replica")
}

func TestValidate_MalformedFields(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		field schema.Field
	}{
		{
			name:  "leaf and nested on one field",
			field: schema.Field{Name: "both", Type: "int", Schema: &schema.Config{Name: "Nested"}},
		},
		{
			name:  "neither leaf nor nested",
			field: schema.Field{Name: "neither"},
		},
		{
			name:  "unnamed field",
			field: schema.Field{Type: "int"},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase

		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			s := &schema.Schema{Config: &schema.Config{
				Name:   "AppConfig",
				Fields: []schema.Field{testCase.field},
			}}

			require.ErrorIs(t, s.Validate(), schema.ErrMalformedSchema)
		})
	}
}

func TestValidate_UnnamedNode(t *testing.T) {
	t.Parallel()

	s := &schema.Schema{Config: &schema.Config{
		Fields: []schema.Field{{Name: "x", Type: "int"}},
	}}

	require.ErrorIs(t, s.Validate(), schema.ErrMalformedSchema)
}

func TestValidate_DuplicateFlagName(t *testing.T) {
	t.Parallel()

	s := &schema.Schema{Features: &schema.FeatureSet{
		Name: "AppFeatures",
		Flags: []schema.Flag{
			{Name: "Foo"},
			{Name: "Foo", Default: true},
		},
	}}

	require.ErrorIs(t, s.Validate(), schema.ErrDuplicateField)
}

func TestValidate_ExcessiveNesting(t *testing.T) {
	t.Parallel()

	leaf := &schema.Config{Name: "Node0", Fields: []schema.Field{{Name: "v", Type: "int"}}}
	node := leaf

	for i := 1; i < 40; i++ {
		node = &schema.Config{
			Name:   "Node" + strings.Repeat("x", i),
			Fields: []schema.Field{{Name: "child", Schema: node}},
		}
	}

	s := &schema.Schema{Config: node}

	require.ErrorIs(t, s.Validate(), schema.ErrMalformedSchema)
}

func TestLoad_ValidYAML(t *testing.T) {
	t.Parallel()

	const doc = `config:
  name: AppConfig
  fields:
    - name: telemetry
      type: bool
      tags: { yaml: telemetry }
    - name: database
      restart: true
      schema:
        name: DatabaseConfig
        fields:
          - name: addr
            type: string
features:
  name: AppFeatures
  flags:
    - name: Foo
      default: true
      restart: true
`

	s, err := schema.Load([]byte(doc))
	require.NoError(t, err)

	require.NotNil(t, s.Config)
	require.Len(t, s.Config.Fields, 2)
	assert.Equal(t, "AppConfig", s.Config.Name)
	assert.Equal(t, "telemetry", s.Config.Fields[0].Tags["yaml"])
	assert.True(t, s.Config.Fields[1].Restart)
	assert.Equal(t, "DatabaseConfig", s.Config.Fields[1].Schema.Name)

	require.NotNil(t, s.Features)
	require.Len(t, s.Features.Flags, 1)
	assert.True(t, s.Features.Flags[0].Default)
	assert.True(t, s.Features.Flags[0].Restart)
}

func TestLoad_EmptyData(t *testing.T) {
	t.Parallel()

	_, err := schema.Load(nil)
	require.ErrorIs(t, err, schema.ErrEmptyData)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := schema.Load([]byte("config: [unclosed"))
	require.ErrorIs(t, err, schema.ErrMalformedSchema)
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	t.Parallel()

	const doc = `config:
  name: AppConfig
  fieldz:
    - name: telemetry
      type: bool
`

	_, err := schema.Load([]byte(doc))
	require.ErrorIs(t, err, schema.ErrMalformedSchema)
}

func TestLoad_ValidationApplied(t *testing.T) {
	t.Parallel()

	const doc = `config:
  name: AppConfig
  fields:
    - name: a
      type: int
    - name: a
      type: int
`

	_, err := schema.Load([]byte(doc))
	require.ErrorIs(t, err, schema.ErrDuplicateField)
}
