package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/rrspgo/internal/api"
	"github.com/rgehrsitz/rrspgo/internal/config"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		Long: `Serve the calculator as a JSON API.

Routes:
  GET  /health          liveness
  GET  /metrics         Prometheus metrics
  POST /v1/tax          tax and marginal rate for an income
  POST /v1/brackets     combined rate zones covered by a deduction
  POST /v1/projection   RRSP / TFSA projection
  POST /v1/split        recommended RRSP / TFSA split
  POST /v1/spread       one deduction against a spread deduction
  POST /v1/benefits     child benefit and family allowance changes
  POST /v1/credits      credit and in-work benefit changes
  POST /v1/scenarios    a full configuration document
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			override, err := loadRulesOverride(cmd)
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
				level = slog.LevelDebug
			} else {
				gin.SetMode(gin.ReleaseMode)
			}
			logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			addr, _ := cmd.Flags().GetString("addr")
			server := api.NewServer(newEngine(cmd, config.ResolveRules(nil, override)), logger)
			return server.Run(ctx, addr)
		},
	}

	cmd.Flags().String("addr", ":8080", "Address to listen on")
	addRulesFlags(cmd)
	return cmd
}
