package segment

// Config holds options for cropping regions out of page images
type Config struct {
	ImageExt  string // extension of the page images next to the archive, e.g. ".tif"
	OutputDir string // directory crops are written to
	Quality   int    // JPEG quality (1-100)
}

// DefaultConfig returns the configuration used when none is given
func DefaultConfig() Config {
	return Config{
		ImageExt:  ".tif",
		OutputDir: ".",
		Quality:   80,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ImageExt == "" {
		c.ImageExt = d.ImageExt
	}
	if c.OutputDir == "" {
		c.OutputDir = d.OutputDir
	}
	if c.Quality <= 0 || c.Quality > 100 {
		c.Quality = d.Quality
	}
	return c
}
