package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jessevdk/go-flags"
	"github.com/nguyengg/xcrx/crx"
	"github.com/nguyengg/xcrx/sri"
	"github.com/nguyengg/xcrx/z"
)

type Info struct {
	Expect []string `short:"e" long:"expect" description:"expected digest of the package (sha256-<base64>, sha384-<base64>, sha512-<base64>, or hex sha256); can be given multiple times"`
	Args   struct {
		Files []flags.Filename `positional-arg-name:"file" description:"the packages to be inspected" required:"yes"`
	} `positional-args:"yes"`

	out io.Writer
}

func (c *Info) Execute(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unknown positional arguments: %s", strings.Join(args, " "))
	}

	if c.out == nil {
		c.out = os.Stdout
	}

	failed := 0
	for _, file := range c.Args.Files {
		if err := c.info(string(file)); err != nil {
			_, _ = fmt.Fprintf(c.out, "%s: %v\n", file, err)
			failed++
		}
	}

	if failed != 0 {
		return fmt.Errorf("%d/%d packages failed inspection", failed, len(c.Args.Files))
	}

	return nil
}

func (c *Info) info(name string) error {
	buf, err := crx.ReadFile(name)
	if err != nil {
		return err
	}

	h, data, err := crx.DecodeHeader(buf)
	if err != nil {
		return err
	}

	w := c.out
	_, _ = fmt.Fprintf(w, "%s:\n", name)
	_, _ = fmt.Fprintf(w, "\tformat: %s\n", h.Format)
	switch h.Format {
	case crx.FormatCrx2:
		_, _ = fmt.Fprintf(w, "\tversion: %d\n", h.Version)
		_, _ = fmt.Fprintf(w, "\tpublic key length: %d\n", h.PublicKeyLength)
		_, _ = fmt.Fprintf(w, "\tsignature length: %d\n", h.SignatureLength)
		_, _ = fmt.Fprintf(w, "\textension id: %s\n", crx.ExtensionID(h.PublicKey(buf)))
	case crx.FormatCrx3:
		_, _ = fmt.Fprintf(w, "\tversion: %d\n", h.Version)
		_, _ = fmt.Fprintf(w, "\theader length: %d\n", h.HeaderLength)
	}
	_, _ = fmt.Fprintf(w, "\tzip start offset: %d\n", h.ZipStartOffset)
	_, _ = fmt.Fprintf(w, "\tpackage size: %s\n", humanize.IBytes(uint64(len(buf))))
	_, _ = fmt.Fprintf(w, "\tpackage digest: %s\n", sri.Digest(buf))
	_, _ = fmt.Fprintf(w, "\tpayload digest: %s\n", sri.Digest(data))

	stats, err := z.Stat(data)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\tentries: %d files, %d directories\n", stats.Files, stats.Dirs)
	_, _ = fmt.Fprintf(w, "\tuncompressed size: %s\n", humanize.IBytes(stats.UncompressedSize))

	if len(c.Expect) != 0 {
		ok, err := sri.VerifyAny(buf, c.Expect...)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("package digest %s does not match any expected digest", sri.Digest(buf))
		}
		_, _ = fmt.Fprintf(w, "\tdigest: OK\n")
	}

	return nil
}
