package cmd

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/jessevdk/go-flags"
	"github.com/nguyengg/xcrx/sri"
	"github.com/stretchr/testify/assert"
)

func writeCrx3(t *testing.T, name string) []byte {
	zipBuf := &bytes.Buffer{}
	zw := zip.NewWriter(zipBuf)
	w, err := zw.Create("manifest.json")
	assert.NoError(t, err)
	_, err = w.Write([]byte("{}"))
	assert.NoError(t, err)
	assert.NoError(t, zw.Close())

	buf := []byte("Cr24")
	buf = binary.LittleEndian.AppendUint32(buf, 3)
	buf = binary.LittleEndian.AppendUint32(buf, 8)
	buf = append(buf, make([]byte, 8)...)
	buf = append(buf, zipBuf.Bytes()...)
	assert.NoError(t, os.WriteFile(name, buf, 0644))
	return buf
}

func TestInfo_Execute(t *testing.T) {
	name := filepath.Join(t.TempDir(), "abc.crx")
	buf := writeCrx3(t, name)

	out := &bytes.Buffer{}
	c := &Info{Expect: []string{sri.Digest(buf)}, out: out}
	c.Args.Files = []flags.Filename{flags.Filename(name)}

	assert.NoError(t, c.Execute(nil))
	assert.Contains(t, out.String(), "format: crx3\n")
	assert.Contains(t, out.String(), "header length: 8\n")
	assert.Contains(t, out.String(), "zip start offset: 20\n")
	assert.Contains(t, out.String(), "entries: 1 files, 0 directories\n")
	assert.Contains(t, out.String(), "package digest: "+sri.Digest(buf)+"\n")
	assert.Contains(t, out.String(), "digest: OK\n")
}

func TestInfo_Execute_Mismatch(t *testing.T) {
	name := filepath.Join(t.TempDir(), "abc.crx")
	_ = writeCrx3(t, name)

	out := &bytes.Buffer{}
	c := &Info{Expect: []string{sri.Digest([]byte("something else"))}, out: out}
	c.Args.Files = []flags.Filename{flags.Filename(name)}

	assert.Error(t, c.Execute(nil))
	assert.Contains(t, out.String(), "does not match any expected digest")
}

func TestInfo_Execute_NotCrx(t *testing.T) {
	name := filepath.Join(t.TempDir(), "abc.crx")
	assert.NoError(t, os.WriteFile(name, []byte("not a package"), 0644))

	out := &bytes.Buffer{}
	c := &Info{out: out}
	c.Args.Files = []flags.Filename{flags.Filename(name)}

	assert.Error(t, c.Execute(nil))
	assert.Contains(t, out.String(), "invalid magic")
}

func TestNewParser(t *testing.T) {
	p, err := NewParser()
	assert.NoError(t, err)

	for _, name := range []string{"decode", "extract", "unpack", "info"} {
		assert.NotNilf(t, p.Find(name), "Find(%s)", name)
	}
}
