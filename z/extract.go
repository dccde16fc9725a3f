package z

import (
	"archive/zip"
	"compress/flate"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nguyengg/xcrx/internal/executor"
	"github.com/nguyengg/xcrx/util"
)

const (
	// DefaultBufferSize is the default value for [ExtractOptions.BufferSize], which is 32 KiB.
	DefaultBufferSize = 32 * 1024

	defaultDirPerm  fs.FileMode = 0755
	defaultFilePerm fs.FileMode = 0644
)

// ExtractOptions is an opaque struct for customising Extract.
type ExtractOptions struct {
	// ProgressReporter controls how progress is reported.
	//
	// By default, nothing is reported. See NewLogProgressReporter and NewProgressBarReporter.
	ProgressReporter ProgressReporter

	// BufferSize is the length of the buffer being used for copying decompressed content to files.
	//
	// BufferSize indirectly controls how frequently ProgressReporter is called; after each copy is done,
	// ProgressReporter is called once.
	//
	// Default to DefaultBufferSize.
	BufferSize int

	// Concurrency is the maximum number of entries being extracted at the same time.
	//
	// By default (0 or 1), entries are extracted one after another in archive order. Entries that map to the same
	// path on disk are always extracted sequentially in archive order regardless of Concurrency.
	Concurrency int

	// NoOverwrite will ignore files that already exist at the target directory.
	//
	// By default, Extract will overwrite existing files. If NoOverwrite is true, those files will be skipped.
	NoOverwrite bool

	// PreserveModTime applies the modified time recorded in the archive to each extracted file.
	PreserveModTime bool
}

// Extract extracts the in-memory ZIP archive to the directory dir.
//
// dir and any missing parent directories of each entry are created as needed, so the archive does not need to contain
// explicit directory entries, nor does it need to list them before their children. Existing files are overwritten
// (see [ExtractOptions.NoOverwrite]).
//
// Every entry name is validated before anything is written; if any entry would be written outside dir, Extract fails
// with ErrPathEscapes and the file system is left untouched. Otherwise, an error aborts the extraction but files that
// have already been written are left in place.
//
// All returned errors are of type *ExtractionError.
func Extract(ctx context.Context, zipBytes []byte, dir string, optFns ...func(*ExtractOptions)) error {
	zr, err := newReader(zipBytes)
	if err != nil {
		return err
	}

	return extract(ctx, zr.File, dir, optFns...)
}

// ExtractFile is a variant of Extract for a ZIP file on disk.
func ExtractFile(ctx context.Context, name, dir string, optFns ...func(*ExtractOptions)) error {
	zr, err := zip.OpenReader(name)
	if err != nil && !(errors.Is(err, zip.ErrInsecurePath) && zr != nil) {
		var pe *fs.PathError
		if errors.As(err, &pe) {
			return &ExtractionError{Err: err}
		}

		return &ExtractionError{Err: fmt.Errorf("%w: %w", ErrCorruptArchive, err)}
	}
	defer zr.Close()

	return extract(ctx, zr.File, dir, optFns...)
}

// task groups the entries that map to the same path on disk.
type task struct {
	path  string
	files []*zip.File
}

func extract(ctx context.Context, files []*zip.File, dir string, optFns ...func(*ExtractOptions)) error {
	opts := &ExtractOptions{
		BufferSize: DefaultBufferSize,
	}
	for _, fn := range optFns {
		fn(opts)
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = DefaultBufferSize
	}

	// preflight validates every name so that a malicious archive doesn't get to write anything.
	tasks := make([]*task, 0, len(files))
	byPath := make(map[string]*task, len(files))
	for _, f := range files {
		path, err := SafeJoin(dir, f.Name)
		if err != nil {
			return &ExtractionError{Path: f.Name, Err: err}
		}

		if t, ok := byPath[path]; ok {
			t.files = append(t.files, f)
			continue
		}

		t := &task{path: path, files: []*zip.File{f}}
		byPath[path] = t
		tasks = append(tasks, t)
	}

	if err := os.MkdirAll(dir, defaultDirPerm); err != nil {
		return &ExtractionError{Err: fmt.Errorf("create destination directory error: %w", err)}
	}

	if opts.Concurrency <= 1 {
		x := &extractor{opts: opts, buf: make([]byte, opts.BufferSize)}
		for _, t := range tasks {
			if err := x.run(ctx, t); err != nil {
				return err
			}
		}

		return nil
	}

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	ex := executor.NewCallerRunOnRejectExecutor(opts.Concurrency)
	for _, t := range tasks {
		if ctx.Err() != nil {
			break
		}

		ex.Execute(func() {
			x := &extractor{opts: opts, buf: make([]byte, opts.BufferSize)}
			if err := x.run(ctx, t); err != nil {
				cancel(err)
			}
		})
	}
	_ = ex.Close()

	switch err := context.Cause(ctx); {
	case err == nil:
		return nil
	case errors.As(err, new(*ExtractionError)):
		return err
	default:
		return &ExtractionError{Err: err}
	}
}

// extractor extracts one task at a time; it is not safe for concurrent use because of the shared buffer.
type extractor struct {
	opts *ExtractOptions
	buf  []byte
}

func (x *extractor) run(ctx context.Context, t *task) error {
	for _, f := range t.files {
		select {
		case <-ctx.Done():
			return &ExtractionError{Path: f.Name, Err: context.Cause(ctx)}
		default:
		}

		if err := x.extractFile(ctx, f, t.path); err != nil {
			return &ExtractionError{Path: f.Name, Err: err}
		}
	}

	return nil
}

func (x *extractor) extractFile(ctx context.Context, f *zip.File, path string) error {
	fi := f.FileInfo()
	if fi.IsDir() {
		if err := os.MkdirAll(path, defaultDirPerm); err != nil {
			return fmt.Errorf("create directory (path=%s) error: %w", path, err)
		}

		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), defaultDirPerm); err != nil {
		return fmt.Errorf("create parent directories to file (path=%s) error: %w", path, err)
	}

	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if x.opts.NoOverwrite {
		flag = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	// modes recorded in the archive are ignored so that extracting again can always overwrite. Symlinks are written as
	// regular files containing the link target.
	dst, err := os.OpenFile(path, flag, defaultFilePerm)
	if err != nil {
		if x.opts.NoOverwrite && errors.Is(err, os.ErrExist) {
			return nil
		}

		return fmt.Errorf("create file (path=%s) error: %w", path, err)
	}

	src, err := f.Open()
	if err != nil {
		_ = dst.Close()
		return fmt.Errorf("%w: open file in archive error: %w", ErrCorruptArchive, err)
	}

	var w io.Writer = dst
	pr := x.opts.ProgressReporter
	if pr != nil {
		w = &reportWriter{w: dst, report: func(written int64) {
			pr(f.Name, path, written, false)
		}}
	}

	written, err := util.CopyBufferWithContext(ctx, w, src, x.buf)
	_ = src.Close()
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	switch {
	case errors.Is(err, zip.ErrChecksum), errors.Is(err, zip.ErrFormat), errors.Is(err, io.ErrUnexpectedEOF),
		errors.As(err, new(flate.CorruptInputError)):
		return fmt.Errorf("%w: write file (path=%s) error: %w", ErrCorruptArchive, path, err)
	case err != nil:
		return fmt.Errorf("write file (path=%s) error: %w", path, err)
	}

	if pr != nil {
		pr(f.Name, path, written, true)
	}

	if x.opts.PreserveModTime && !f.Modified.IsZero() {
		if err = os.Chtimes(path, f.Modified, f.Modified); err != nil {
			return fmt.Errorf("change mod time (path=%s) error: %w", path, err)
		}
	}

	return nil
}

// reportWriter reports the cumulative number of bytes written after every write.
type reportWriter struct {
	w       io.Writer
	written int64
	report  func(written int64)
}

func (r *reportWriter) Write(p []byte) (n int, err error) {
	n, err = r.w.Write(p)
	r.written += int64(n)
	r.report(r.written)
	return
}
