package util

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStemAndExt(t *testing.T) {
	tests := []struct {
		path, stem, ext string
	}{
		{path: "abc.crx", stem: "abc", ext: ".crx"},
		{path: "abc.crx.xz", stem: "abc", ext: ".crx.xz"},
		{path: "path/to/abc.crx.zst", stem: "abc", ext: ".crx.zst"},
		{path: "abc", stem: "abc", ext: ""},
		{path: "extension.manifest", stem: "extension.manifest", ext: ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			stem, ext := StemAndExt(tt.path)
			assert.Equalf(t, tt.stem, stem, "StemAndExt(%s) stem", tt.path)
			assert.Equalf(t, tt.ext, ext, "StemAndExt(%s) ext", tt.path)
		})
	}
}

func TestOpenExclFile(t *testing.T) {
	dir := t.TempDir()

	names := make([]string, 0, 3)
	for range 3 {
		f, err := OpenExclFile(dir, "abc", ".zip", 0644)
		assert.NoErrorf(t, err, "OpenExclFile() error = %v", err)
		names = append(names, filepath.Base(f.Name()))
		_ = f.Close()
	}

	assert.Equal(t, []string{"abc.zip", "abc-1.zip", "abc-2.zip"}, names)
}

func TestMkExclDir(t *testing.T) {
	dir := t.TempDir()

	a, err := MkExclDir(dir, "abc", 0755)
	assert.NoErrorf(t, err, "MkExclDir() error = %v", err)
	b, err := MkExclDir(dir, "abc", 0755)
	assert.NoErrorf(t, err, "MkExclDir() error = %v", err)

	assert.Equal(t, "abc", filepath.Base(a))
	assert.Equal(t, "abc-1", filepath.Base(b))
	assert.DirExists(t, b)
}

func TestCopyBufferWithContext(t *testing.T) {
	data := strings.Repeat("a", 100)

	dst := &bytes.Buffer{}
	n, err := CopyBufferWithContext(context.Background(), dst, strings.NewReader(data), make([]byte, 7))
	assert.NoErrorf(t, err, "CopyBufferWithContext() error = %v", err)
	assert.Equal(t, int64(100), n)
	assert.Equal(t, data, dst.String())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = CopyBufferWithContext(ctx, &bytes.Buffer{}, strings.NewReader(data), make([]byte, 7))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTruncateRightWithSuffix(t *testing.T) {
	assert.Equal(t, "abc", TruncateRightWithSuffix("abc", 5, "..."))
	assert.Equal(t, "abcde", TruncateRightWithSuffix("abcde", 5, "..."))
	assert.Equal(t, "abcde...", TruncateRightWithSuffix("abcdefgh", 5, "..."))
	assert.Equal(t, "...", TruncateRightWithSuffix("abc", 0, "..."))
}

func TestDirBase(t *testing.T) {
	assert.Equal(t, filepath.Join("extensions", "abc.crx"), DirBase(filepath.Join("data", "extensions", "abc.crx")))

	wd, err := os.Getwd()
	assert.NoErrorf(t, err, "Getwd() error = %v", err)
	assert.Equal(t, filepath.Join(filepath.Base(wd), "abc.crx"), DirBase("abc.crx"))
}
