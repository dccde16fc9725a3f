package z

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeJoin(t *testing.T) {
	dir := filepath.Join("dest", "dir")

	tests := []struct {
		name     string
		expected string
		wantErr  bool
	}{
		{name: "manifest.json", expected: filepath.Join(dir, "manifest.json")},
		{name: "scripts/bg.js", expected: filepath.Join(dir, "scripts", "bg.js")},
		{name: "scripts/", expected: filepath.Join(dir, "scripts")},
		{name: "./a.txt", expected: filepath.Join(dir, "a.txt")},
		{name: "a/../b.txt", expected: filepath.Join(dir, "b.txt")},
		{name: `a\b.txt`, expected: filepath.Join(dir, "a", "b.txt")},
		{name: "./", expected: dir},
		{name: "..file", expected: filepath.Join(dir, "..file")},
		{name: "../evil.txt", wantErr: true},
		{name: "../../evil.txt", wantErr: true},
		{name: "a/../../evil.txt", wantErr: true},
		{name: `..\evil.txt`, wantErr: true},
		{name: "..", wantErr: true},
		{name: "/etc/passwd", wantErr: true},
		{name: `\etc\passwd`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := SafeJoin(dir, tt.name)
			if tt.wantErr {
				assert.ErrorIsf(t, err, ErrPathEscapes, "SafeJoin(%s) error = %v", tt.name, err)
				return
			}

			assert.NoErrorf(t, err, "SafeJoin(%s) error = %v", tt.name, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}
