package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/seenimoa/finassist/pkg/models"
	"github.com/seenimoa/finassist/pkg/utils"
)

const commandTimeout = 45 * time.Second

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), commandTimeout)
}

// --- Quote Command ---

var quoteCmd = &cobra.Command{
	Use:   "quote [symbol]",
	Short: "Fetch a live quote",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		q := buildApp(cfg).market.GetQuote(ctx, utils.NormalizeSymbol(args[0]))
		if err := printJSON(q); err != nil {
			return err
		}
		if q.Current == nil {
			return fmt.Errorf("%s", q.Error)
		}
		return nil
	},
}

// --- Candles Command ---

var candlesCmd = &cobra.Command{
	Use:   "candles [symbol]",
	Short: "Fetch OHLCV bars for a timeframe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("timeframe")
		tf, err := models.ParseTimeframe(raw)
		if err != nil {
			return fmt.Errorf("%w: %q", err, raw)
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		series := buildApp(cfg).market.GetCandles(ctx, utils.NormalizeSymbol(args[0]), tf)
		if err := printJSON(series); err != nil {
			return err
		}
		if len(series.Candles) == 0 {
			return fmt.Errorf("%s", series.Error)
		}
		return nil
	},
}

func init() {
	candlesCmd.Flags().StringP("timeframe", "t", string(models.DefaultTimeframe), "1D, 1W, 1M, 3M, 6M, 1Y, 5Y or MAX")
}

// --- Dashboard Command ---

var dashboardCmd = &cobra.Command{
	Use:   "dashboard [symbol]",
	Short: "Fetch profile, quote, metrics and analyst ratings together",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		return printJSON(buildApp(cfg).market.GetDashboard(ctx, utils.NormalizeSymbol(args[0])))
	},
}

// --- Lookup Command ---

var lookupCmd = &cobra.Command{
	Use:   "lookup [query...]",
	Short: "Look up a stock by name or ticker with its weekly summary",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		sum := buildApp(cfg).market.Lookup(ctx, strings.Join(args, " "))
		if sum.Current == nil {
			_ = printJSON(sum)
			return fmt.Errorf("%s", sum.Error)
		}
		fmt.Printf("%s (%s)\n", sum.Ticker, sum.Symbol)
		fmt.Printf("  Price:   %s", utils.FormatPrice(*sum.Current, sum.Currency))
		if sum.ChangePct != nil {
			fmt.Printf("  (%s)", utils.FormatPct(*sum.ChangePct))
		}
		fmt.Println()
		if sum.WeekPct != nil && sum.WeekHigh != nil && sum.WeekLow != nil {
			fmt.Printf("  Week:    %s  high %s  low %s\n", utils.FormatPct(*sum.WeekPct),
				utils.FormatPrice(*sum.WeekHigh, sum.Currency), utils.FormatPrice(*sum.WeekLow, sum.Currency))
		}
		return nil
	},
}

// --- Resolve Command ---

var resolveCmd = &cobra.Command{
	Use:   "resolve [query...]",
	Short: "Resolve a company name or ticker to an instrument identifier",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		query := strings.Join(args, " ")
		a := buildApp(cfg)
		if r := a.resolver.Resolve(query); r.Resolved {
			fmt.Println(r.Symbol)
			return nil
		}
		id, err := a.market.Resolve(ctx, query)
		if err != nil {
			return err
		}
		fmt.Printf("%s (probed)\n", id)
		return nil
	},
}
