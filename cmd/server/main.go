package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/linechat-server/internal/app"
	"github.com/vovakirdan/linechat-server/internal/config"
	"github.com/vovakirdan/linechat-server/internal/log"
)

func main() {
	var (
		flagConfig   string
		flagTCPAddr  string
		flagHTTPAddr string
		flagLogLevel string
	)

	rootCmd := &cobra.Command{
		Use:   "linechat-server",
		Short: "Line-protocol chat server with TCP and WebSocket transports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			bootLogger := log.New("info")

			cfg, path, err := config.Load(bootLogger, flagConfig)
			if err != nil {
				return err
			}
			cfg.UpdateFrom(config.Config{
				TCPAddr:  flagTCPAddr,
				HTTPAddr: flagHTTPAddr,
				LogLevel: flagLogLevel,
			})

			logger := log.New(cfg.LogLevel)
			logger.Info().
				Str("config", path).
				Str("tcp_addr", cfg.TCPAddr).
				Str("http_addr", cfg.HTTPAddr).
				Msg("starting linechat server")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application := app.New(&cfg, logger)
			if err := application.Run(ctx); err != nil {
				return err
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}

	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "path to config file")
	rootCmd.Flags().StringVar(&flagTCPAddr, "tcp-addr", "", "TCP listen address (overrides config)")
	rootCmd.Flags().StringVar(&flagHTTPAddr, "http-addr", "", "HTTP listen address (overrides config)")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
