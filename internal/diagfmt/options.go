package diagfmt

// Options configures text rendering.
type Options struct {
	// Color enables ANSI colours.
	Color bool
	// BaseDir, when set, makes file paths relative to it.
	BaseDir string
	// TabWidth is the number of spaces a tab expands to. Zero means 4.
	TabWidth int
}

func (o Options) tabWidth() int {
	if o.TabWidth <= 0 {
		return 4
	}

	return o.TabWidth
}
