package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/lleval/cli/cmd"
	"github.com/ardnew/lleval/pkg"
)

// CLI is the top-level command-line interface for lleval.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Source []string `help:"Input source file(s) or '-' for stdin" name:"source" short:"s" type:"existingfile"`

	Init    cmd.Init    `cmd:"" help:"Initialize configuration file"`
	Tokens  cmd.Tokens  `cmd:"" help:"Print the token stream of the input"`
	Grammar cmd.Grammar `cmd:"" help:"Print the grammar productions"`
	Repl    cmd.Repl    `cmd:"" help:"Start an interactive session"`
	Version cmd.Version `cmd:"" help:"Print version information"`

	Eval cmd.Eval `cmd:"" default:"withargs" help:"Evaluate statements"`
}

// Run executes the lleval CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier:  configFilePath + ".yaml",
		cmd.CacheIdentifier:   cacheDir(),
		cmd.HistoryIdentifier: cachePath(historyFile),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(baseConfig), configFilePath+".yaml", configFilePath+".yml"),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSourceFiles(ctx, cli.Source)

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx)
}
