package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/preston-bernstein/nhl-game-tracker/internal/app"
	"github.com/preston-bernstein/nhl-game-tracker/internal/config"
	"github.com/preston-bernstein/nhl-game-tracker/internal/logging"
)

const (
	appName    = "nhl-game-tracker"
	appVersion = "dev"
)

// appOptions lets tests inject providers, stores and clocks.
var appOptions []app.Option

// CLI is the root command line definition.
type CLI struct {
	Config    string           `short:"c" help:"Optional YAML configuration file" type:"path" env:"TRACKER_CONFIG"`
	Favourite []string         `short:"f" help:"Favourite team abbreviation, repeatable (overrides FAVOURITE_TEAMS)"`
	LogLevel  string           `name:"log-level" help:"Log level (debug, info, warn, error)"`
	LogFormat string           `name:"log-format" help:"Log format (text or json)"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Run    RunCmd    `cmd:"" default:"1" help:"Run one idle-check-or-poll decision and exit (default)"`
	Watch  WatchCmd  `cmd:"" help:"Run the tracker on a fixed interval until interrupted"`
	Status StatusCmd `cmd:"" help:"Print the persisted tracker state"`
	Reset  ResetCmd  `cmd:"" help:"Overwrite the persisted state so the next run does a full refresh"`
}

// globals is bound into every command's Run method.
type globals struct {
	ctx    context.Context
	cfg    config.Config
	logger *slog.Logger
	out    io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses args, executes the selected command and returns the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name(appName),
		kong.Description("Tracks favourite NHL teams, polling the scoreboard only when a followed game may be live."),
		kong.Vars{"version": appVersion},
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		return 2
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		return 2
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "%s: invalid configuration: %v\n", appName, err)
		return 1
	}
	applyFlags(&cfg, cli)

	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: appName,
		Version: appVersion,
		Output:  stderr,
	})

	g := &globals{ctx: ctx, cfg: cfg, logger: logger, out: stdout}
	if err := kctx.Run(g); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		return 1
	}
	return 0
}

// applyFlags layers command line flags over the loaded configuration.
func applyFlags(cfg *config.Config, cli CLI) {
	if len(cli.Favourite) > 0 {
		var teams []string
		for _, f := range cli.Favourite {
			teams = append(teams, config.SplitList(f)...)
		}
		cfg.FavouriteTeams = teams
	}
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}
	if cli.LogFormat != "" {
		cfg.Log.Format = cli.LogFormat
	}
}
