package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/jessevdk/go-flags"
	"github.com/nguyengg/xcrx/internal/config"
)

type Xcrx struct {
	Decode  Decode  `command:"decode" alias:"d" description:"strip the CRX header and write the ZIP payload next to each package"`
	Extract Extract `command:"extract" alias:"x" description:"decode and extract packages into new directories"`
	Unpack  Unpack  `command:"unpack" alias:"u" description:"unpack extensions by id from a directory of downloaded packages"`
	Info    Info    `command:"info" alias:"i" description:"print the header and digests of packages"`
}

func NewParser() (*flags.Parser, error) {
	opts := &Xcrx{}

	p := flags.NewNamedParser("xcrx", flags.Default)
	if _, err := p.AddGroup("Commands", "", opts); err != nil {
		return nil, fmt.Errorf("add commands error: %w", err)
	}

	return p, nil
}

// loadConfig loads the nearest .xcrx file into config.DefaultLoader.
//
// A malformed file is logged and otherwise ignored so that flags alone can still drive the commands.
func loadConfig(ctx context.Context) {
	switch name, err := config.Load(ctx); {
	case err != nil:
		log.Printf(`load config "%s" error: %v`, name, err)
	case name != "":
		log.Printf(`loaded config from "%s"`, name)
	}
}
