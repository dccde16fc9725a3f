package z

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
)

// Stats summarises the content of a ZIP archive.
type Stats struct {
	// Files is the number of non-directory entries.
	Files int
	// Dirs is the number of explicit directory entries.
	Dirs int
	// UncompressedSize is the sum of the uncompressed sizes of all files as declared by the central directory.
	UncompressedSize uint64
	// CompressedSize is the sum of the compressed sizes of all files as declared by the central directory.
	CompressedSize uint64
}

// Stat reads the central directory of the ZIP archive without decompressing any entry.
func Stat(zipBytes []byte) (s Stats, err error) {
	zr, err := newReader(zipBytes)
	if err != nil {
		return s, err
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			s.Dirs++
			continue
		}

		s.Files++
		s.UncompressedSize += f.UncompressedSize64
		s.CompressedSize += f.CompressedSize64
	}

	return s, nil
}

// newReader opens an in-memory ZIP archive.
//
// zip.ErrInsecurePath is not treated as an error here since every name goes through SafeJoin during extraction.
func newReader(zipBytes []byte) (*zip.Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil && !(errors.Is(err, zip.ErrInsecurePath) && zr != nil) {
		return nil, &ExtractionError{Err: fmt.Errorf("%w: %w", ErrCorruptArchive, err)}
	}

	return zr, nil
}
