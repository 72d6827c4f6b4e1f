package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve returns a [kong.ConfigurationLoader] that reads YAML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve("config"), "/path/to/config.yaml")
//
// Flag values are read from the mapping stored under name. When the document
// has no such key, the top-level mapping is used instead, so both of these
// files set --log-level:
//
//	config:
//	  log_level: debug
//
//	log-level: debug
//
// Flag names with hyphens may be written with underscores. Numbers are handed
// to kong as strings so that it parses them with the flag's own mapper.
// Command-line flags override config file values.
func resolve(name string) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}

		var doc map[string]any

		err = yaml.Unmarshal(data, &doc)
		if err != nil {
			// Malformed config - fall back to flag defaults
			return config{}, nil //nolint:nilerr
		}

		if sub, ok := doc[name].(map[string]any); ok {
			doc = sub
		}

		return makeConfig(doc), nil
	}
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// makeConfig flattens scalar entries of m into a config. Nested mappings are
// ignored.
func makeConfig(m map[string]any) config {
	c := make(config, len(m))

	for key, val := range m {
		switch v := val.(type) {
		case map[string]any:
			continue
		case int:
			c[key] = strconv.Itoa(v)
		case int64:
			c[key] = strconv.FormatInt(v, 10)
		case uint64:
			c[key] = strconv.FormatUint(v, 10)
		case float64:
			c[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case []any:
			parts := make([]string, 0, len(v))
			for _, e := range v {
				if s, ok := e.(string); ok {
					parts = append(parts, s)
				}
			}

			c[key] = strings.Join(parts, ",")
		default:
			c[key] = v
		}
	}

	return c
}

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - unknown keys are ignored
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but YAML keys
	// often use underscores. Try both forms.
	name := flag.Name
	underscoreName := strings.ReplaceAll(name, "-", "_")

	if value, ok := r[name]; ok {
		return value, nil
	}

	if value, ok := r[underscoreName]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}
