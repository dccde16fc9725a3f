package z

import (
	"path"
	"path/filepath"
	"strings"
)

// SafeJoin joins the "/"-separated archive path name onto dir, returning ErrPathEscapes if the result would not be
// contained in dir.
//
// Backslashes are treated as separators so that archives produced on Windows cannot smuggle "..\" components. Absolute
// names and names with a volume are rejected. A name that cleans to "." returns dir itself.
func SafeJoin(dir, name string) (string, error) {
	name = strings.ReplaceAll(name, `\`, "/")

	if path.IsAbs(name) || filepath.VolumeName(filepath.FromSlash(name)) != "" {
		return "", ErrPathEscapes
	}

	switch name = path.Clean(name); {
	case name == "..", strings.HasPrefix(name, "../"):
		return "", ErrPathEscapes
	case name == ".":
		return filepath.Clean(dir), nil
	}

	// path.Clean leaves ".." only as leading components, which were rejected above.
	return filepath.Join(dir, filepath.FromSlash(name)), nil
}
