package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sin spec generada el servidor debe arrancar igual, solo sin Swagger UI.
func TestFileExists_DecideSiMontarSwagger(t *testing.T) {
	dir := t.TempDir()

	assert.False(t, fileExists(filepath.Join(dir, "swagger.json")), "archivo ausente")
	assert.False(t, fileExists(dir), "un directorio no es una spec")

	spec := filepath.Join(dir, "swagger.json")
	require.NoError(t, os.WriteFile(spec, []byte(`{"swagger":"2.0"}`), 0o644))
	assert.True(t, fileExists(spec))
}
