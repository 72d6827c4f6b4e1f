// Package cmd implements the lleval subcommands: eval, tokens, grammar, repl,
// init and version.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"

	// HistoryIdentifier is the kong variable identifier containing the path to
	// the REPL history file.
	HistoryIdentifier = "history"
)
