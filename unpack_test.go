package xcrx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyengg/xcrx/codec"
	"github.com/nguyengg/xcrx/crx"
	"github.com/nguyengg/xcrx/z"
	"github.com/stretchr/testify/assert"
)

// newCrx3 wraps a ZIP archive containing the given files in a CRX3 container with a zero-filled header block.
func newCrx3(t *testing.T, headerLen int, files map[string]string) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("Cr24")
	_ = binary.Write(buf, binary.LittleEndian, uint32(3))
	_ = binary.Write(buf, binary.LittleEndian, uint32(headerLen))
	buf.Write(make([]byte, headerLen))

	zw := zip.NewWriter(buf)
	for name, content := range files {
		w, err := zw.Create(name)
		assert.NoErrorf(t, err, "Create(%s) error = %v", name, err)
		_, err = w.Write([]byte(content))
		assert.NoErrorf(t, err, "Write(%s) error = %v", name, err)
	}
	assert.NoError(t, zw.Close())

	return buf.Bytes()
}

func TestDecodeThenExtract(t *testing.T) {
	data, err := crx.Decode(newCrx3(t, 64, map[string]string{"a.txt": "hello"}))
	assert.NoErrorf(t, err, "Decode() error = %v", err)

	dir := t.TempDir()
	assert.NoError(t, z.Extract(context.Background(), data, dir))

	entries, err := os.ReadDir(dir)
	assert.NoErrorf(t, err, "ReadDir() error = %v", err)
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "a.txt", entries[0].Name())
	}

	content, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	assert.NoErrorf(t, err, "ReadFile() error = %v", err)
	assert.Equal(t, "hello", string(content))
}

func TestUnpackExtension(t *testing.T) {
	sourceDir := t.TempDir()
	id := "abcdefghijklmnopabcdefghijklmnop"
	assert.NoError(t, os.WriteFile(filepath.Join(sourceDir, id+".crx"), newCrx3(t, 10, map[string]string{
		"manifest.json":                  "{}",
		"scripts/bg.js":                  "console.log(1)",
		"_metadata/verified_contents.json": "[]",
	}), 0644))

	// stale files from a previous extraction must not survive.
	assert.NoError(t, os.MkdirAll(filepath.Join(sourceDir, id, "old"), 0755))
	assert.NoError(t, os.WriteFile(filepath.Join(sourceDir, id, "old", "stale.js"), nil, 0644))

	var format crx.Format
	dir, err := UnpackExtension(context.Background(), sourceDir, id, func(opts *UnpackOptions) {
		opts.OnHeader = func(name string, h crx.Header) {
			format = h.Format
		}
	})
	assert.NoErrorf(t, err, "UnpackExtension() error = %v", err)
	assert.Equal(t, filepath.Join(sourceDir, id), dir)
	assert.Equal(t, crx.FormatCrx3, format)

	assert.FileExists(t, filepath.Join(dir, "manifest.json"))
	assert.FileExists(t, filepath.Join(dir, "scripts", "bg.js"))
	assert.NoDirExists(t, filepath.Join(dir, MetadataDir))
	assert.NoDirExists(t, filepath.Join(dir, "old"))

	// running again yields the same result.
	dir, err = UnpackExtension(context.Background(), sourceDir, id, func(opts *UnpackOptions) {
		opts.KeepMetadata = true
	})
	assert.NoErrorf(t, err, "UnpackExtension() error = %v", err)
	assert.FileExists(t, filepath.Join(dir, MetadataDir, "verified_contents.json"))
}

func TestUnpackExtension_Archived(t *testing.T) {
	sourceDir := t.TempDir()
	id := "archived"

	f, err := os.Create(filepath.Join(sourceDir, id+".crx.zst"))
	assert.NoErrorf(t, err, "Create() error = %v", err)
	enc, err := codec.ZstdCodec{}.NewEncoder(f)
	assert.NoErrorf(t, err, "NewEncoder() error = %v", err)
	_, err = enc.Write(newCrx3(t, 3, map[string]string{"manifest.json": "{}"}))
	assert.NoError(t, err)
	assert.NoError(t, enc.Close())
	assert.NoError(t, f.Close())

	dir, err := UnpackExtension(context.Background(), sourceDir, id)
	assert.NoErrorf(t, err, "UnpackExtension() error = %v", err)
	assert.FileExists(t, filepath.Join(dir, "manifest.json"))
}

func TestUnpackExtension_Errors(t *testing.T) {
	sourceDir := t.TempDir()

	_, err := UnpackExtension(context.Background(), sourceDir, "missing")
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.NoError(t, os.WriteFile(filepath.Join(sourceDir, "bad.crx"), []byte("Cr24\x04\x00\x00\x00"), 0644))
	_, err = UnpackExtension(context.Background(), sourceDir, "bad")
	assert.ErrorIs(t, err, crx.ErrUnsupportedVersion)
	assert.NoDirExists(t, filepath.Join(sourceDir, "bad"))

	assert.NoError(t, os.WriteFile(filepath.Join(sourceDir, "corrupt.crx"), []byte("Cr24\x03\x00\x00\x00\x00\x00\x00\x00garbage"), 0644))
	_, err = UnpackExtension(context.Background(), sourceDir, "corrupt")
	assert.ErrorIs(t, err, z.ErrCorruptArchive)

	for _, id := range []string{"", ".", "..", "a/b"} {
		_, err = UnpackExtension(context.Background(), sourceDir, id)
		assert.Errorf(t, err, "UnpackExtension(%q) should fail", id)
	}
	assert.DirExists(t, sourceDir)
}
