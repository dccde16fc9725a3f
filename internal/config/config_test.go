package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoader_LoadFrom(t *testing.T) {
	root := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(root, Name), []byte(`
[extract]
concurrency = 4
no-overwrite = true

[unpack]
source-dir = data/extensions
keep-metadata = yes
`), 0644))

	nested := filepath.Join(root, "a", "b")
	assert.NoError(t, os.MkdirAll(nested, 0755))

	l := NewLoader()
	path, err := l.LoadFrom(context.Background(), nested)
	assert.NoErrorf(t, err, "LoadFrom() error = %v", err)
	assert.Equal(t, filepath.Join(root, Name), path)

	assert.Equal(t, ExtractConfig{Concurrency: 4, NoOverwrite: true}, l.ForExtract())
	assert.Equal(t, UnpackConfig{SourceDir: filepath.Join(root, "data", "extensions"), KeepMetadata: true}, l.ForUnpack())
}

func TestLoader_Empty(t *testing.T) {
	l := NewLoader()
	assert.Equal(t, ExtractConfig{}, l.ForExtract())
	assert.Equal(t, UnpackConfig{}, l.ForUnpack())

	assert.Error(t, l.LoadFile(filepath.Join(t.TempDir(), "missing")))
	assert.Equal(t, ExtractConfig{}, l.ForExtract())
}
