package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
)

func TestExtract_Execute_Quiet(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "abc.crx")
	_ = writeCrx3(t, name)

	out := filepath.Join(dir, "out")
	assert.NoError(t, os.Mkdir(out, 0755))

	c := &Extract{Dir: flags.Filename(out), Quiet: true}
	c.Args.Files = []flags.Filename{flags.Filename(name)}
	assert.NoError(t, c.Execute(nil))

	data, err := os.ReadFile(filepath.Join(out, "abc", "manifest.json"))
	assert.NoErrorf(t, err, "ReadFile() error = %v", err)
	assert.Equal(t, "{}", string(data))
}
