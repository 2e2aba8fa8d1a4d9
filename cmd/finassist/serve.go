package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/seenimoa/finassist/api"
	"github.com/seenimoa/finassist/internal/scheduler"
)

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server and the quote stream",
	RunE: func(cmd *cobra.Command, args []string) error {
		if port, _ := cmd.Flags().GetInt("port"); port > 0 {
			cfg.API.Port = port
		}

		a := buildApp(cfg)
		srv := api.NewServer(api.Deps{
			Config:  cfg,
			Market:  a.market,
			Chat:    a.chat,
			Logger:  log,
			Version: version,
		})

		sched := scheduler.New(log)
		if cfg.Stream.Schedule != "" {
			job := scheduler.NewQuoteStreamJob(a.market, srv.Hub(), 0, log)
			if err := sched.AddJob(cfg.Stream.Schedule, job); err != nil {
				return fmt.Errorf("stream.schedule: %w", err)
			}
		}
		if cfg.Cache.SweepSchedule != "" {
			if err := sched.AddJob(cfg.Cache.SweepSchedule, scheduler.NewCacheSweepJob(a.cache, log)); err != nil {
				return fmt.Errorf("cache.sweep_schedule: %w", err)
			}
		}
		sched.Start()
		defer sched.Stop()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Printf("🌐 Starting FinAssist API server on %s\n", cfg.API.Addr())
		return srv.ListenAndServe(ctx, cfg.API.Addr())
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "override api.port")
}
