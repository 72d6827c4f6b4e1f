package log

import (
	"io"
	"sync"
)

// Option applies a configuration option to config.
type Option func(config) config

// apply folds opts over cfg in order. Nil options are skipped.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		if opt != nil {
			cfg = opt(cfg)
		}
	}

	return cfg
}

// option returns an Option that runs set with the config's mutex held,
// creating the mutex on a zero config.
func option(set func(*config)) Option {
	return func(c config) config {
		if c.mutex == nil {
			c.mutex = &sync.RWMutex{}
		} else {
			c.mutex.Lock()
			defer c.mutex.Unlock()
		}

		set(&c)

		return c
	}
}

// WithDefaults returns a functional option that sets the default configuration.
// The default configuration is [DefaultTimeLayout], [DefaultLevel],
// [DefaultFormat], [DefaultPretty], and caller info disabled.
func WithDefaults(w io.Writer) Option {
	if w == nil {
		w = io.Discard
	}

	return option(func(c *config) {
		c.output = w
		c.formatTime = makeFormatTimeFunc(DefaultTimeLayout)
		c.level = DefaultLevel
		c.format = DefaultFormat
		c.caller = DefaultCaller
		c.pretty = DefaultPretty
	})
}

// WithOutput returns a functional option that sets the output [io.Writer]
// for log messages.
// If a nil writer is provided, [io.Discard] is used instead.
func WithOutput(w io.Writer) Option {
	if w == nil {
		w = io.Discard
	}

	return option(func(c *config) { c.output = w })
}

// WithLevel returns a functional option that sets the minimum log level.
// Messages below this level are discarded.
func WithLevel(level Level) Option {
	return option(func(c *config) { c.level = level })
}

// WithFormat returns a functional option that sets the output format
// for log messages.
func WithFormat(format Format) Option {
	return option(func(c *config) { c.format = format })
}

// WithTimeLayout returns a functional option that sets the layout used to
// format log timestamps.
//
// The layout string can be one of the named layouts from the [time] package
// (for example, "RFC3339" or "RFC3339Nano"), or one of the short names
// "ms", "us" and "ns". Otherwise, it is passed verbatim to
// [time.Time.Format] and must follow the standard specification.
//
// If an empty string (after trimming whitespace) or "none" is provided,
// timestamps are disabled and no time is included in log output.
func WithTimeLayout(layout string) Option {
	format := makeFormatTimeFunc(layout)

	return option(func(c *config) { c.formatTime = format })
}

// WithCaller returns a functional option that controls whether caller
// information is included in log output.
func WithCaller(enable bool) Option {
	return option(func(c *config) { c.caller = enable })
}

// WithPretty returns a functional option that controls whether log output
// uses pretty printing with colors and formatting.
// For text format: removes quotes, uses colors for keys (gray) and values.
// For JSON format: multiline with indentation and colors.
func WithPretty(enable bool) Option {
	return option(func(c *config) { c.pretty = enable })
}
