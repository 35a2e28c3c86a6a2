package main

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"stockquote/internal/app"
	"stockquote/internal/hybrid"
)

type status struct{}

func (s status) Command() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "show which quote sources are usable (probes the secondary provider once)",
		Action: func(c *cli.Context) error {
			cfg, logger, done, err := setup(c)
			if err != nil {
				return err
			}
			defer done()

			resolver, err := app.NewResolver(cfg, logger)
			if err != nil {
				return err
			}
			st := resolver.Status(c.Context)

			out := c.App.Writer
			printProvider(out, "primary", st.Primary)
			printProvider(out, "secondary", st.Secondary)
			fmt.Fprintf(out, "synthetic:   %s\n", enabled(st.Synthetic))
			fmt.Fprintf(out, "recommended: %s\n", st.Recommended.Label())
			return nil
		},
	}
}

func printProvider(out io.Writer, role string, ps hybrid.ProviderStatus) {
	state := "available"
	if !ps.Available {
		state = "unavailable (" + ps.Reason + ")"
	}
	name := ps.Name
	if name == "" {
		name = "-"
	}
	fmt.Fprintf(out, "%-12s %s %s\n", role+":", name, state)
}

func enabled(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
