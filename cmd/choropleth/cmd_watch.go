package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"choropleth/internal/schedule"

	"github.com/spf13/cobra"
)

var watchInterval time.Duration

// watchCmd：按间隔重新拉取并重绘；失败时保留上一次产物
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-fetch and re-render on an interval until interrupted",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "Refresh interval (or set WATCH_INTERVAL_S)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	every := cfg.WatchInterval()
	if watchInterval > 0 {
		every = watchInterval
	}
	a.log.Info("watch_start", "interval", every.String(), "out", cfg.Output.Dir)
	done := schedule.Every(ctx, every, "refresh", func(ctx context.Context) error {
		_, err := a.refresh(ctx)
		return err
	})
	<-done
	return nil
}
