package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/go-ini/ini"
)

// Name is the name of the configuration file.
const Name = ".xcrx"

// Loader can be used for loading .xcrx configuration.
//
// The zero value is not ready for use; use DefaultLoader or NewLoader.
type Loader struct {
	cfg  *ini.File
	path string
}

// NewLoader returns a Loader with empty configuration.
func NewLoader() *Loader {
	return &Loader{cfg: ini.Empty()}
}

// Load will traverse the directory hierarchy upwards from the working directory to find the first ".xcrx" file
// available and load its contents into the Loader.
//
// The name of the .xcrx file is returned, or empty string if none was found.
func (l *Loader) Load(ctx context.Context) (string, error) {
	cur, err := os.Getwd()
	if err != nil {
		return "", err
	}

	return l.LoadFrom(ctx, cur)
}

// LoadFrom is a variant of Load that starts the traversal at dir instead of the working directory.
func (l *Loader) LoadFrom(ctx context.Context, dir string) (string, error) {
	cur, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		path := filepath.Join(cur, Name)
		fi, err := os.Stat(path)
		switch {
		case err == nil && !fi.IsDir():
			return path, l.LoadFile(path)
		case err == nil, errors.Is(err, os.ErrNotExist):
			parent := filepath.Dir(cur)
			if parent == cur {
				return "", nil
			}

			cur = parent
		default:
			return "", err
		}
	}
}

// LoadFile loads the named configuration file.
func (l *Loader) LoadFile(path string) (err error) {
	if l.cfg, err = ini.Load(path); err != nil {
		l.cfg = ini.Empty()
		return err
	}

	l.path = path
	return nil
}

// resolve returns path relative to the directory of the loaded configuration file.
func (l *Loader) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || l.path == "" {
		return path
	}

	return filepath.Join(filepath.Dir(l.path), path)
}

// DefaultLoader is the default Loader instance for package-level methods.
var DefaultLoader = NewLoader()

// Load calls Loader.Load on the DefaultLoader instance.
func Load(ctx context.Context) (string, error) {
	return DefaultLoader.Load(ctx)
}
