package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jessevdk/go-flags"
	"github.com/nguyengg/xcrx/crx"
	"github.com/nguyengg/xcrx/internal"
	"github.com/nguyengg/xcrx/util"
)

type Decode struct {
	Dir  flags.Filename `short:"d" long:"dir" description:"directory to write the .zip files to; defaults to the directory of each package"`
	Args struct {
		Files []flags.Filename `positional-arg-name:"file" description:"the .crx (or .crx.xz, .crx.zst, .crx.gz, .crx.lz4) packages to be decoded" required:"yes"`
	} `positional-args:"yes"`

	logger *log.Logger
}

func (c *Decode) Execute(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unknown positional arguments: %s", strings.Join(args, " "))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	success := 0
	n := len(c.Args.Files)
	for i, file := range c.Args.Files {
		if ctx.Err() != nil {
			break
		}

		c.logger = internal.NewLogger(i, n, string(file))

		output, err := c.decode(string(file))
		if err == nil {
			c.logger.Printf(`done decoding to "%s"`, output)
			success++
			continue
		}

		c.logger.Printf("decode error: %v", err)
	}

	log.Printf("successfully decoded %d/%d packages", success, n)
	return nil
}

// decode writes the ZIP payload of the named package to a new .zip file whose name is returned.
//
// Existing files are never overwritten; "abc-1.zip", "abc-2.zip", etc. are used instead.
func (c *Decode) decode(name string) (string, error) {
	h, data, err := crx.DecodeFile(name)
	if err != nil {
		return "", err
	}
	warnIfZip(c.logger, h)

	dir := string(c.Dir)
	if dir == "" {
		dir = filepath.Dir(name)
	}

	stem, _ := util.StemAndExt(name)
	f, err := util.OpenExclFile(dir, stem, ".zip", 0666)
	if err != nil {
		return "", fmt.Errorf("create output file error: %w", err)
	}

	if _, err = f.Write(data); err == nil {
		err = f.Close()
	} else {
		_ = f.Close()
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf(`write to file "%s" error: %w`, f.Name(), err)
	}

	c.logger.Printf("stripped %s header of %s, wrote %s", h.Format, humanize.IBytes(uint64(h.ZipStartOffset)), humanize.IBytes(uint64(len(data))))
	return f.Name(), nil
}
