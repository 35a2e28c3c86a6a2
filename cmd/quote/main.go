package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"stockquote/internal/config"
	"stockquote/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "\033[31m"+err.Error()+"\033[0m")
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "quote",
		Usage:     "look up stock quotes through the provider fallback chain",
		UsageText: "quote [global options] command [command options] [arguments...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				EnvVars: []string{"CONFIG_FILE"},
				Usage:   "path to a YAML config file (default: ./" + config.DefaultPath + " if present)",
			},
		},
		Commands: []*cli.Command{
			lookup{}.Command(),
			status{}.Command(),
			checkConfig{}.Command(),
		},
	}
}

// setup loads config and installs the global logger. The returned func
// flushes and restores the previous logger.
func setup(c *cli.Context) (config.Config, *zap.Logger, func(), error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, nil, nil, err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return cfg, nil, nil, err
	}
	undo := zap.ReplaceGlobals(logger)
	return cfg, logger, func() {
		_ = logger.Sync()
		undo()
	}, nil
}
