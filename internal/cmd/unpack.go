package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/nguyengg/xcrx"
	"github.com/nguyengg/xcrx/crx"
	"github.com/nguyengg/xcrx/internal"
	"github.com/nguyengg/xcrx/internal/config"
	"github.com/nguyengg/xcrx/util"
	"github.com/nguyengg/xcrx/z"
	"golang.org/x/time/rate"
)

type Unpack struct {
	SourceDir    flags.Filename `short:"s" long:"source-dir" description:"directory containing the <id>.crx packages; overrides [unpack] source-dir (default: working directory)"`
	KeepMetadata bool           `long:"keep-metadata" description:"keep the _metadata directory in the unpacked extensions"`
	Concurrency  int            `short:"j" long:"concurrency" description:"number of entries to extract at the same time; overrides [extract] concurrency"`
	Args         struct {
		IDs []string `positional-arg-name:"id" description:"the ids of the extensions to unpack" required:"yes"`
	} `positional-args:"yes"`

	logger *log.Logger
}

func (c *Unpack) Execute(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unknown positional arguments: %s", strings.Join(args, " "))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	loadConfig(ctx)
	cfg := config.ForUnpack()
	if c.SourceDir == "" {
		c.SourceDir = flags.Filename(cfg.SourceDir)
	}
	if c.SourceDir == "" {
		c.SourceDir = "."
	}
	c.KeepMetadata = c.KeepMetadata || cfg.KeepMetadata
	if c.Concurrency == 0 {
		c.Concurrency = config.ForExtract().Concurrency
	}

	// failing extensions are logged and skipped.
	success := 0
	n := len(c.Args.IDs)
	for i, id := range c.Args.IDs {
		c.logger = internal.NewLogger(i, n, id)

		dir, err := xcrx.UnpackExtension(ctx, string(c.SourceDir), id, c.unpackOptions)
		if err == nil {
			c.logger.Printf(`done unpacking to "%s"`, util.DirBase(dir))
			success++
			continue
		}

		if errors.Is(err, context.Canceled) {
			break
		}

		c.logger.Printf("unpack error: %v", err)
	}

	log.Printf("successfully unpacked %d/%d extensions", success, n)
	return nil
}

func (c *Unpack) unpackOptions(opts *xcrx.UnpackOptions) {
	opts.KeepMetadata = c.KeepMetadata
	opts.OnHeader = func(name string, h crx.Header) {
		warnIfZip(c.logger, h)
	}

	sometimes := &rate.Sometimes{Interval: 5 * time.Second}
	var extracted atomic.Int64
	opts.ExtractOptions = append(opts.ExtractOptions, func(eo *z.ExtractOptions) {
		eo.Concurrency = c.Concurrency
		eo.ProgressReporter = func(name, path string, written int64, done bool) {
			if !done {
				return
			}

			n := extracted.Add(1)
			sometimes.Do(func() {
				c.logger.Printf("extracted %d files so far", n)
			})
		}
	})
}
