package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineHasBuiltinSchemas(t *testing.T) {
	engine := NewEngine()

	assert.Contains(t, engine.Names(), DefaultPatternSchema)
	assert.Contains(t, engine.Names(), "frontify-assets")
}

func TestValidatePatternSchema(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name       string
		data       map[string]any
		wantField  string
		wantErrors int
	}{
		{
			name:       "empty metadata is valid",
			data:       map[string]any{},
			wantErrors: 0,
		},
		{
			name:       "declared identity fields are valid",
			data:       map[string]any{"name": "button", "type": "atom", "stability": "stable", "id": float64(189)},
			wantErrors: 0,
		},
		{
			name:       "unknown fields are permitted",
			data:       map[string]any{"examples": map[string]any{"example.hbs": map[string]any{"main": true}}},
			wantErrors: 0,
		},
		{
			name:       "name must be a string",
			data:       map[string]any{"name": float64(42)},
			wantField:  "name",
			wantErrors: 1,
		},
		{
			name:       "stability outside the enum",
			data:       map[string]any{"stability": "supernova"},
			wantField:  "stability",
			wantErrors: 1,
		},
		{
			name:       "id must be numeric",
			data:       map[string]any{"id": "189"},
			wantField:  "id",
			wantErrors: 1,
		},
		{
			name:       "multiple violations reported in declaration order",
			data:       map[string]any{"name": true, "stability": "soon"},
			wantField:  "name",
			wantErrors: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := engine.Validate(DefaultPatternSchema, tt.data)

			assert.Len(t, violations, tt.wantErrors)
			if tt.wantErrors > 0 {
				assert.Equal(t, tt.wantField, violations[0].Field)
			}
		})
	}
}

func TestValidateUnknownSchema(t *testing.T) {
	engine := NewEngine()

	violations := engine.Validate("no-such-schema", map[string]any{})

	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Error(), "unknown schema")
}

func TestRequiredFields(t *testing.T) {
	engine := NewEngine()
	require.NoError(t, engine.Register(&Schema{
		Name: "strict",
		Fields: []Rule{
			{Name: "name", Type: "string", Required: true},
		},
	}))

	violations := engine.Validate("strict", map[string]any{})

	require.Len(t, violations, 1)
	assert.Equal(t, "name", violations[0].Field)
	assert.Equal(t, "is required", violations[0].Constraint)
}

func TestPatternRule(t *testing.T) {
	engine := NewEngine()
	require.NoError(t, engine.Register(&Schema{
		Name: "kebab",
		Fields: []Rule{
			{Name: "name", Type: "string", Pattern: `^[a-z-]+$`},
		},
	}))

	assert.Empty(t, engine.Validate("kebab", map[string]any{"name": "button-group"}))
	assert.Len(t, engine.Validate("kebab", map[string]any{"name": "ButtonGroup"}), 1)
}

func TestRegisterRejectsBadSchemas(t *testing.T) {
	engine := NewEngine()

	assert.Error(t, engine.Register(&Schema{}))
	assert.Error(t, engine.Register(&Schema{Name: "x", Fields: []Rule{{Name: "f", Type: "decimal"}}}))
	assert.Error(t, engine.Register(&Schema{Name: "x", Fields: []Rule{{Name: "f", Pattern: "["}}}))
}

func TestProperties(t *testing.T) {
	engine := NewEngine()

	assert.Equal(t, []string{"name", "type", "stability", "id"}, engine.Properties(DefaultPatternSchema))
	assert.Nil(t, engine.Properties("no-such-schema"))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "schemas.yaml")
	content := `schemas:
  - name: custom-pattern
    fields:
      - name: name
        type: string
        required: true
      - name: channel
        type: string
        enum: [web, app]
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	engine := NewEngine()
	require.NoError(t, engine.LoadFile(file))

	assert.Empty(t, engine.Validate("custom-pattern", map[string]any{"name": "x", "channel": "web"}))
	assert.Len(t, engine.Validate("custom-pattern", map[string]any{"name": "x", "channel": "tv"}), 1)
	assert.Len(t, engine.Validate("custom-pattern", map[string]any{}), 1)
}

func TestLoadFileErrors(t *testing.T) {
	engine := NewEngine()

	assert.Error(t, engine.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("schemas: {"), 0o644))
	assert.Error(t, engine.LoadFile(bad))
}
