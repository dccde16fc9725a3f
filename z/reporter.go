package z

import (
	"log"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
)

// ProgressReporter is called to provide update on extracting individual files.
//
//   - name: path of the file in the archive
//   - path: path of the file being written on disk
//   - written: number of bytes of the file that have been decompressed and written so far
//   - done: is true only when the file has been written in its entirety
//
// The method is called with `done` being false after every write to the file, then exactly once with `done` being true
// after the file has been closed. Empty files only receive the final call. If [ExtractOptions.Concurrency] is greater
// than 1, the method may be called from several goroutines at once.
type ProgressReporter func(name, path string, written int64, done bool)

// NewLogProgressReporter creates a progress reporter that logs only upon a file being successfully extracted.
//
// Specifically, after entry `path/to/a` is extracted, logger will print `extracted "path/to/a" (5 B)`. A nil logger
// uses [log.Default].
func NewLogProgressReporter(logger *log.Logger) ProgressReporter {
	if logger == nil {
		logger = log.Default()
	}

	return func(name, path string, written int64, done bool) {
		if done {
			logger.Printf(`extracted "%s" (%s)`, name, humanize.IBytes(uint64(written)))
		}
	}
}

// NewProgressBarReporter creates a progress reporter that adds the number of bytes written to the given bar.
//
// The bar's max should be set to the total uncompressed size of the archive, which can be obtained from Stat. The
// returned reporter is safe for concurrent use.
func NewProgressBarReporter(bar *progressbar.ProgressBar) ProgressReporter {
	var (
		mu      sync.Mutex
		written = make(map[string]int64)
	)

	return func(name, path string, n int64, done bool) {
		mu.Lock()
		_ = bar.Add64(n - written[path])
		if done {
			delete(written, path)
		} else {
			written[path] = n
		}
		mu.Unlock()
	}
}
