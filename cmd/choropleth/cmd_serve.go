package main

import (
	"os"
	"os/signal"
	"syscall"

	"choropleth/internal/logger"
	"choropleth/internal/server"

	"github.com/spf13/cobra"
)

var serveAddr string

// serveCmd：只托管输出目录，不在请求路径上渲染
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the rendered output directory with /metrics and /healthz",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (or set ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Serve.Addr = serveAddr
	}
	l := logger.Setup(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if _, err := os.Stat(cfg.Output.Dir); err != nil {
		l.Warn("serve_dir_missing", "dir", cfg.Output.Dir, "hint", "run `choropleth render` first")
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.Run(ctx, cfg.Serve.Addr, server.Handler(cfg.Output.Dir, cfg.Serve.RateLimitQPS, l))
}
