package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jessevdk/go-flags"
	"github.com/nguyengg/xcrx/crx"
	"github.com/nguyengg/xcrx/internal"
	"github.com/nguyengg/xcrx/internal/config"
	"github.com/nguyengg/xcrx/util"
	"github.com/nguyengg/xcrx/z"
	"golang.org/x/term"
)

type Extract struct {
	Dir             flags.Filename `short:"d" long:"dir" description:"parent directory of the extracted directories" default:"."`
	Concurrency     int            `short:"j" long:"concurrency" description:"number of entries to extract at the same time; overrides [extract] concurrency"`
	NoOverwrite     bool           `long:"no-overwrite" description:"skip files that already exist"`
	PreserveModTime bool           `long:"preserve-mod-time" description:"apply the modified time recorded in the archive to extracted files"`
	Quiet           bool           `short:"q" long:"quiet" description:"log each extracted file instead of showing a progress bar; implied if stderr is not a terminal"`
	Args            struct {
		Files []flags.Filename `positional-arg-name:"file" description:"the .crx (or .zip, .crx.xz, .crx.zst, .crx.gz, .crx.lz4) packages to be extracted" required:"yes"`
	} `positional-args:"yes"`

	logger *log.Logger
}

func (c *Extract) Execute(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unknown positional arguments: %s", strings.Join(args, " "))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	loadConfig(ctx)
	cfg := config.ForExtract()
	if c.Concurrency == 0 {
		c.Concurrency = cfg.Concurrency
	}
	c.NoOverwrite = c.NoOverwrite || cfg.NoOverwrite
	c.PreserveModTime = c.PreserveModTime || cfg.PreserveModTime

	success := 0
	n := len(c.Args.Files)
	for i, file := range c.Args.Files {
		c.logger = internal.NewLogger(i, n, string(file))

		output, err := c.extract(ctx, string(file))
		if err == nil {
			c.logger.Printf(`done extracting to "%s"`, output)
			success++
			continue
		}

		if errors.Is(err, context.Canceled) {
			break
		}

		c.logger.Printf("extract error: %v", err)
	}

	log.Printf("successfully extracted %d/%d packages", success, n)
	return nil
}

// extract decodes and extracts the named package into a newly created directory which is returned.
//
// If unsuccessful, the output directory is deleted.
func (c *Extract) extract(ctx context.Context, name string) (string, error) {
	h, data, err := crx.DecodeFile(name)
	if err != nil {
		return "", err
	}
	warnIfZip(c.logger, h)

	stats, err := z.Stat(data)
	if err != nil {
		return "", err
	}
	c.logger.Printf("%s package contains %d files (%s uncompressed)", h.Format, stats.Files, humanize.IBytes(stats.UncompressedSize))

	stem, _ := util.StemAndExt(name)
	output, err := util.MkExclDir(string(c.Dir), stem, 0755)
	if err != nil {
		return "", fmt.Errorf("create output directory error: %w", err)
	}

	pr, done := c.progressReporter(stats)
	err = z.Extract(ctx, data, output, c.extractOptions(pr))
	done()
	if err != nil {
		_ = os.RemoveAll(output)
		return "", err
	}

	return output, nil
}

// progressReporter returns the reporter to use for an archive with the given stats, and a function to call once
// extraction has finished.
func (c *Extract) progressReporter(stats z.Stats) (z.ProgressReporter, func()) {
	if c.Quiet || !term.IsTerminal(int(os.Stderr.Fd())) {
		return z.NewLogProgressReporter(c.logger), func() {}
	}

	bar := internal.DefaultBytes(int64(stats.UncompressedSize), "extracting")
	return z.NewProgressBarReporter(bar), func() { _ = bar.Close() }
}

func (c *Extract) extractOptions(pr z.ProgressReporter) func(*z.ExtractOptions) {
	return func(opts *z.ExtractOptions) {
		opts.ProgressReporter = pr
		opts.Concurrency = c.Concurrency
		opts.NoOverwrite = c.NoOverwrite
		opts.PreserveModTime = c.PreserveModTime
	}
}

// warnIfZip logs a warning if the package turned out to be a plain ZIP file.
func warnIfZip(logger *log.Logger, h crx.Header) {
	if h.Format == crx.FormatZip {
		logger.Printf("input is not a CRX file, but a ZIP file")
	}
}
