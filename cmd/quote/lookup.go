package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"stockquote/internal/app"
	"stockquote/internal/hybrid"
	"stockquote/internal/provider"
)

type lookup struct{}

func (l lookup) Command() *cli.Command {
	return &cli.Command{
		Name:      "lookup",
		Aliases:   []string{"l"},
		Usage:     "resolve one or more ticker symbols",
		ArgsUsage: "SYMBOL...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print quotes as JSON",
			},
			&cli.IntFlag{
				Name:    "concurrency",
				Aliases: []string{"p"},
				Usage:   "symbols resolved at once (default: server.batch_concurrency)",
			},
		},
		Action: l.run,
	}
}

type lookupRow struct {
	Input  string          `json:"input"`
	Quote  *provider.Quote `json:"quote,omitempty"`
	Source string          `json:"source,omitempty"`
	Error  string          `json:"error,omitempty"`
}

func (l lookup) run(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("lookup: at least one symbol is required", 2)
	}
	cfg, logger, done, err := setup(c)
	if err != nil {
		return err
	}
	defer done()

	resolver, err := app.NewResolver(cfg, logger)
	if err != nil {
		return err
	}
	limit := c.Int("concurrency")
	if limit <= 0 {
		limit = cfg.Server.BatchConcurrency
	}

	results := resolver.ResolveMany(c.Context, c.Args().Slice(), limit)
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}

	if c.Bool("json") {
		rows := make([]lookupRow, 0, len(results))
		for _, r := range results {
			row := lookupRow{Input: r.Input}
			if r.Err != nil {
				row.Error = r.Err.Error()
			} else {
				q := r.Quote
				row.Quote, row.Source = &q, hybrid.DescribeSource(q)
			}
			rows = append(rows, row)
		}
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			return err
		}
	} else {
		w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
		for _, r := range results {
			if r.Err != nil {
				fmt.Fprintf(w, "%s\terror: %v\n", r.Input, r.Err)
				continue
			}
			q := r.Quote
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t[%s]\n",
				q.Symbol, q.CompanyName, formatMoney(q.Price, q.Currency),
				signed(q.Change, provider.PricePlaces), signed(q.ChangePercent, 2)+"%",
				hybrid.DescribeSource(q))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("lookup: %d of %d symbols failed", failed, len(results)), 1)
	}
	return nil
}

// formatMoney renders amount with the currency's symbol and minor units.
// Unknown currencies fall back to a plain number and the code.
func formatMoney(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(provider.PricePlaces) + " " + currency
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), cur.Code).Display()
}

func signed(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	if d.IsPositive() {
		return "+" + s
	}
	return s
}
