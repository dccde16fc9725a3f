package xcrx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyengg/xcrx/codec"
	"github.com/nguyengg/xcrx/crx"
	"github.com/nguyengg/xcrx/z"
)

// MetadataDir is the directory inside CRX3 packages that holds the signature verification metadata
// ("verified_contents.json") that downstream consumers of the unpacked extension don't need.
const MetadataDir = "_metadata"

// UnpackOptions customises UnpackExtension.
type UnpackOptions struct {
	// KeepMetadata will keep the MetadataDir directory in the unpacked extension.
	//
	// By default, MetadataDir is deleted after extraction.
	KeepMetadata bool

	// OnHeader if given is called with the parsed header after the package has been decoded successfully.
	//
	// This is useful for logging packages that were actually plain ZIP files.
	OnHeader func(name string, h crx.Header)

	// ExtractOptions are passed to z.Extract.
	ExtractOptions []func(*z.ExtractOptions)
}

// UnpackExtension decodes and extracts the package of the extension with the given id, returning the directory
// containing the unpacked extension.
//
// The package is expected at "sourceDir/id.crx", falling back to its archived variants such as "sourceDir/id.crx.xz"
// (see codec.All for the full list). Any previous extraction at "sourceDir/id" is deleted first, and MetadataDir is
// deleted from the result (see [UnpackOptions.KeepMetadata]).
//
// Decoding errors are *crx.FormatError; extraction errors are *z.ExtractionError.
func UnpackExtension(ctx context.Context, sourceDir, id string, optFns ...func(*UnpackOptions)) (string, error) {
	opts := &UnpackOptions{}
	for _, fn := range optFns {
		fn(opts)
	}

	if err := DeleteUnpackedExtension(sourceDir, id); err != nil {
		return "", err
	}

	name, err := FindPackage(sourceDir, id)
	if err != nil {
		return "", err
	}

	h, data, err := crx.DecodeFile(name)
	if err != nil {
		return "", fmt.Errorf(`decode "%s" error: %w`, name, err)
	}
	if opts.OnHeader != nil {
		opts.OnHeader(name, h)
	}

	dir := filepath.Join(sourceDir, id)
	if err = z.Extract(ctx, data, dir, opts.ExtractOptions...); err != nil {
		return "", err
	}

	if !opts.KeepMetadata {
		if err = os.RemoveAll(filepath.Join(dir, MetadataDir)); err != nil {
			return "", fmt.Errorf("remove %s error: %w", MetadataDir, err)
		}
	}

	return dir, nil
}

// FindPackage returns the path to the package of the extension with the given id in sourceDir.
//
// See UnpackExtension for the names that are tried. If none exists, the returned error wraps os.ErrNotExist.
func FindPackage(sourceDir, id string) (string, error) {
	name := filepath.Join(sourceDir, id+".crx")
	candidates := []string{name}
	for _, c := range codec.All() {
		candidates = append(candidates, name+c.Ext())
	}

	for _, c := range candidates {
		switch _, err := os.Stat(c); {
		case err == nil:
			return c, nil
		case !errors.Is(err, os.ErrNotExist):
			return "", fmt.Errorf(`stat "%s" error: %w`, c, err)
		}
	}

	return "", fmt.Errorf(`package "%s" not found: %w`, name, os.ErrNotExist)
}

// DeleteUnpackedExtension deletes the directory "sourceDir/id" created by an earlier UnpackExtension.
//
// It is not an error if the directory doesn't exist.
func DeleteUnpackedExtension(sourceDir, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	if err := os.RemoveAll(filepath.Join(sourceDir, id)); err != nil {
		return fmt.Errorf("delete unpacked extension %s error: %w", id, err)
	}

	return nil
}

// validateID makes sure id names a single child of the source directory.
func validateID(id string) error {
	if id == "" || id == "." || id == ".." || id != filepath.Base(id) {
		return fmt.Errorf("invalid extension id %q", id)
	}

	return nil
}
