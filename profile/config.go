package profile

// Config reports the profiler mode, its output directory, and whether
// pkg/profile should stay quiet.
type Config func() (mode, path string, quiet bool)

// Start begins profiling and returns its stopper. An empty mode, an unknown
// mode, or a binary built without the pprof tag yields a no-op whose Stop is
// always safe to call.
func (c Config) Start() interface{ Stop() } {
	mode, path, quiet := c()
	if mode == "" {
		return ignore{}
	}

	return start(mode, path, quiet)
}

// WithMode returns a functional option for setting a profiler's mode.
func WithMode(mode string) func(Config) Config {
	return func(c Config) Config {
		return c.with(func(m, p *string, q *bool) { *m = mode })
	}
}

// WithPath returns a functional option for setting a profiler's output path.
func WithPath(path string) func(Config) Config {
	return func(c Config) Config {
		return c.with(func(m, p *string, q *bool) { *p = path })
	}
}

// WithQuiet returns a functional option for setting a profiler's quiet flag.
func WithQuiet(quiet bool) func(Config) Config {
	return func(c Config) Config {
		return c.with(func(m, p *string, q *bool) { *q = quiet })
	}
}

// with snapshots c, applies set, and returns the result as a new Config.
func (c Config) with(set func(mode, path *string, quiet *bool)) Config {
	var (
		mode, path string
		quiet      bool
	)

	if c != nil {
		mode, path, quiet = c()
	}

	set(&mode, &path, &quiet)

	return func() (string, string, bool) { return mode, path, quiet }
}

type ignore struct{}

func (ignore) Stop() {}
