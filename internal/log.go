package internal

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/nguyengg/xcrx/util"
)

// Prefix creates a consistent prefix for all file-based commands to use.
//
// i and n are the zero-based ordinal and expected count.
func Prefix(i, n int, name string) string {
	return fmt.Sprintf(`[%d/%d] "%s" - `, i+1, n, util.TruncateRightWithSuffix(filepath.Base(name), 36, "..."))
}

// NewLogger returns a logger that writes to stderr using Prefix.
func NewLogger(i, n int, name string) *log.Logger {
	return log.New(os.Stderr, Prefix(i, n, name), log.LstdFlags|log.Lmsgprefix)
}
