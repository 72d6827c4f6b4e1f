package cli

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/lleval/log"
)

// logFormat is a custom type that configures the logger format as a side
// effect of parsing via encoding.TextUnmarshaler.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
// As Kong parses the --log-format flag, this method is called, allowing us
// to configure the logger early enough to affect error messages during parsing.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel is a custom type that configures the logger level as a side
// effect of parsing via encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
// As Kong parses the --log-level flag, this method is called, allowing us
// to configure the logger early enough to affect error messages during parsing.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"trace,debug,info,warn,error" help:"Set log level."`
	Format     logFormat `default:"text"    enum:"json,text"                   help:"Set log format."`
	TimeLayout string    `default:"RFC3339"                                    help:"Set timestamp format."`
	Caller     bool      `default:"false"                                      help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                                       help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// scan applies logger flags found in args before Kong parses them, so the
// logger is configured regardless of flag position. The TextUnmarshaler
// types above cover level and format during parsing; boolean flags and the
// time layout only take effect here. Scanning stops at "--".
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return
		}

		name, value, assigned := strings.Cut(arg, "=")

		// next consumes the following argument as the value of a non-boolean
		// flag given without "=".
		next := func() string {
			if !assigned && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++

				return args[i]
			}

			return value
		}

		switch name {
		case "--log-level":
			_ = f.Level.UnmarshalText([]byte(next()))

		case "--log-format":
			_ = f.Format.UnmarshalText([]byte(next()))

		case "--log-time-layout":
			f.TimeLayout = next()
			log.Config(log.WithTimeLayout(f.TimeLayout))

		case "--log-pretty", "--no-log-pretty":
			if v, ok := scanBool(name, value, assigned); ok {
				f.Pretty = v
				log.Config(log.WithPretty(v))
			}

		case "--log-caller", "--no-log-caller":
			if v, ok := scanBool(name, value, assigned); ok {
				f.Caller = v
				log.Config(log.WithCaller(v))
			}
		}
	}
}

// scanBool returns the value of a negatable boolean flag. A bare flag is
// true, or false with the "--no-" prefix; an assigned value that does not
// parse is ignored.
func scanBool(name, value string, assigned bool) (bool, bool) {
	negated := strings.HasPrefix(name, "--no-")
	if !assigned {
		return !negated, true
	}

	v, err := strconv.ParseBool(value)
	if err != nil {
		return false, false
	}

	return v != negated, true
}
