package config

// ExtractConfig contains settings for extracting packages.
type ExtractConfig struct {
	// Concurrency is the number of entries extracted at the same time; 0 means sequential.
	Concurrency int
	// NoOverwrite skips files that already exist instead of overwriting them.
	NoOverwrite bool
	// PreserveModTime applies the modified time recorded in the archive to the extracted files.
	PreserveModTime bool
}

// ForExtract returns the [extract] section.
func (l *Loader) ForExtract() (c ExtractConfig) {
	sec, err := l.cfg.GetSection("extract")
	if err != nil {
		return c
	}

	c.Concurrency = sec.Key("concurrency").MustInt(0)
	c.NoOverwrite = sec.Key("no-overwrite").MustBool(false)
	c.PreserveModTime = sec.Key("preserve-mod-time").MustBool(false)

	return
}

// ForExtract calls Loader.ForExtract on the DefaultLoader instance.
func ForExtract() ExtractConfig {
	return DefaultLoader.ForExtract()
}

// UnpackConfig contains settings for unpacking extensions by id.
type UnpackConfig struct {
	// SourceDir is the directory containing the downloaded "<id>.crx" packages.
	SourceDir string
	// KeepMetadata keeps the "_metadata" directory in the unpacked extension.
	KeepMetadata bool
}

// ForUnpack returns the [unpack] section.
//
// A relative source-dir is resolved against the directory of the loaded configuration file.
func (l *Loader) ForUnpack() (c UnpackConfig) {
	sec, err := l.cfg.GetSection("unpack")
	if err != nil {
		return c
	}

	c.SourceDir = l.resolve(sec.Key("source-dir").String())
	c.KeepMetadata = sec.Key("keep-metadata").MustBool(false)

	return
}

// ForUnpack calls Loader.ForUnpack on the DefaultLoader instance.
func ForUnpack() UnpackConfig {
	return DefaultLoader.ForUnpack()
}
