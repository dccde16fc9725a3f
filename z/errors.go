package z

import (
	"errors"
)

var (
	// ErrCorruptArchive is wrapped by ExtractionError when the ZIP structure cannot be parsed.
	ErrCorruptArchive = errors.New("corrupt archive")
	// ErrPathEscapes is wrapped by ExtractionError when an entry would be written outside the destination directory.
	ErrPathEscapes = errors.New("path escapes destination")
)

// ExtractionError is returned by Extract and ExtractFile.
//
// Path is the name of the offending entry in the archive, or empty if the error is not specific to any entry.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	if e.Path == "" {
		return "extract error: " + e.Err.Error()
	}

	return `extract "` + e.Path + `" error: ` + e.Err.Error()
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
