// FinAssist is a personal-finance assistant backend for Indian and US markets.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/seenimoa/finassist/internal/config"
	"github.com/seenimoa/finassist/pkg/logger"
	"github.com/seenimoa/finassist/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config and logger, set by PersistentPreRunE.
var (
	cfg *config.Config
	log zerolog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "finassist",
	Short: "FinAssist: market data and a finance chat assistant for NSE/BSE and US stocks",
	Long: `FinAssist aggregates quotes, candles, fundamentals, analyst ratings,
indices, currency and metal rates, mutual-fund NAVs and news from NSE India,
Twelve Data and Yahoo Finance, and serves them over HTTP and WebSocket.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Logging.Level = lvl
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		log = logger.New(logger.Config{Level: cfg.Logging.Level, Pretty: cfg.Logging.Pretty()})
		logger.SetGlobalLogger(log)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(candlesCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(resolveCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("FinAssist %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show market status and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		now := utils.NowIST()
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  FinAssist - System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:       %s (%s)\n", version, commit)
		fmt.Printf("  NSE Status:    %s\n", utils.MarketStatus(now))
		fmt.Printf("  NYSE Open:     %t\n", utils.IsUSMarketOpenAt(now))
		fmt.Printf("  Time (IST):    %s\n", utils.FormatDateTimeIST(now))
		fmt.Println()

		fmt.Println("  Configuration:")
		fmt.Printf("    API Server:    %s\n", cfg.API.Addr())
		fmt.Printf("    Yahoo Timeout: %s\n", cfg.Providers.Yahoo.HardTimeout)
		fmt.Printf("    Stream:        %s\n", cfg.Stream.Schedule)
		sweep := cfg.Cache.SweepSchedule
		if sweep == "" {
			sweep = "lazy expiry"
		}
		fmt.Printf("    Cache Sweep:   %s\n", sweep)
		fmt.Printf("    Chat Model:    %s\n", cfg.Assistant.Model)
		fmt.Println()

		fmt.Println("  API Keys:")
		for _, k := range config.CheckAPIKeys(cfg) {
			status := "❌ not set"
			if k.IsSet {
				status = fmt.Sprintf("✅ set (%s: %s)", k.Source, k.Masked)
			}
			fmt.Printf("    %-25s %s\n", k.Name+":", status)
		}
		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}
