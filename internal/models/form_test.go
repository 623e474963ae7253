package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFormSchema_ReadsBundledFields(t *testing.T) {
	schema, err := LoadFormSchema(filepath.Join("..", "..", "config", "fields.yaml"))
	require.NoError(t, err)

	require.Len(t, schema.Fields, 11)

	ids := make([]string, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		ids = append(ids, f.ID)
	}
	assert.Contains(t, ids, "age")
	assert.Contains(t, ids, "systolic_bp")
	assert.Contains(t, ids, "physically_active")
}

func TestLoadFormSchema_MissingFile(t *testing.T) {
	_, err := LoadFormSchema(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFormSchema_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fields: {not: [valid"), 0o644))

	_, err := LoadFormSchema(path)
	assert.Error(t, err)
}
