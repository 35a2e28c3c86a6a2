package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"stockquote/internal/provider"
)

type checkConfig struct{}

func (c checkConfig) Command() *cli.Command {
	return &cli.Command{
		Name:  "check-config",
		Usage: "validate config and API keys without calling any provider",
		Action: func(ctx *cli.Context) error {
			cfg, _, done, err := setup(ctx)
			if err != nil {
				return err
			}
			defer done()

			out := ctx.App.Writer
			fmt.Fprintf(out, "finnhub:       %s key=%s\n", enabled(cfg.Finnhub.Enabled), provider.MaskSecret(cfg.Finnhub.APIKey))
			fmt.Fprintf(out, "alpha_vantage: %s key=%s\n", enabled(cfg.AlphaVantage.Enabled), provider.MaskSecret(cfg.AlphaVantage.APIKey))
			fmt.Fprintf(out, "synthetic:     %s\n", enabled(cfg.Synthetic.Enabled))

			errs := cfg.Validate()
			for _, err := range errs {
				fmt.Fprintf(out, "  - %v\n", err)
			}
			if len(errs) > 0 {
				return cli.Exit(fmt.Sprintf("check-config: %d problem(s)", len(errs)), 1)
			}
			fmt.Fprintln(out, "config ok")
			return nil
		},
	}
}
