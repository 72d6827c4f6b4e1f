package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/lleval/log"
	"github.com/ardnew/lleval/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	data, err := yaml.MarshalContext(ctx,
		yaml.MapSlice{{Key: ConfigIdentifier, Value: i.entries(ktx)}},
		yaml.Indent(defaultConfigIndent),
	)
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	err = os.WriteFile(confPath, data, 0o600)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// entries collects the current values of the top-level flags, in model
// order, keyed by flag name with underscores.
func (i *Init) entries(ktx *kong.Context) yaml.MapSlice {
	var entries yaml.MapSlice

	prefixIgnore := []string{"help", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		val := flagValue(ktx, flag)
		if val != nil {
			entries = append(entries, yaml.MapItem{
				Key:   strings.ReplaceAll(flag.Name, "-", "_"),
				Value: val,
			})
		}
	}

	return entries
}

// flagValue returns the YAML value for a CLI flag, or nil if unset.
func flagValue(ktx *kong.Context, flag *kong.Flag) any {
	val := ktx.FlagValue(flag)
	if val == nil {
		return nil
	}

	switch v := val.(type) {
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return v

	case string:
		if v == "" {
			return nil
		}

		return v

	case []string:
		if len(v) == 0 {
			return nil
		}

		return v

	case fmt.Stringer:
		if s := v.String(); s != "" {
			return s
		}

		return nil

	default:
		s := fmt.Sprint(v)
		if s == "" {
			return nil
		}

		return s
	}
}
