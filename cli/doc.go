// Package cli contains the command line interface for lleval.
//
// # Usage
//
// With no subcommand, statements given as arguments or read from --source
// files are evaluated and the last result is printed:
//
//	lleval 'x = 6; x * 7;'
//	lleval -s prelude.ll -s main.ll --save vars.yaml
//	lleval --vars vars.yaml --table -o json 'y = x + 1;'
//
// Other subcommands print the token stream (tokens), the bundled grammar
// (grammar), start an interactive session (repl), write a default
// configuration file (init), or print the version (version).
//
// # Configuration
//
// Flag defaults are resolved from config.yaml (or config.yml, or
// config.json) in the user configuration directory. YAML keys may be written
// with underscores or hyphens and may be nested under a top-level "config"
// mapping, which is the layout the init subcommand writes.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o lleval .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/lleval/pprof)
package cli
