package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/lexbridge/lexbridge/internal/config"
	lexlog "github.com/lexbridge/lexbridge/internal/log"
	"github.com/lexbridge/lexbridge/internal/session"
	"github.com/lexbridge/lexbridge/internal/web"
)

// Serve command flags.
var serveAddr string

// serveCmd runs the web UI.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web interface",
	Long: `Serve the LexBridge web interface. Sessions live in memory and expire
after server.session_ttl of inactivity. Prometheus metrics are served on
/metrics and a health check on /healthz.

Examples:
  lexbridge serve
  lexbridge serve --addr 127.0.0.1:8080 --log-format json`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, else :8501)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd, config.Overrides{Addr: serveAddr})
	if err != nil {
		return err
	}
	svc, err := serviceFor(settings)
	if err != nil {
		return err
	}
	lexlog.Setup(lexlog.Options{Verbose: verbose, Quiet: quiet, Format: settings.LogFormat})
	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	server := web.New(svc, session.NewMemoryStore(settings.SessionTTL), web.Options{
		Defaults: session.Selection{
			Provider: settings.Provider,
			Model:    settings.Model,
			BaseURL:  settings.BaseURL,
		},
		Language:           settings.InterfaceLanguage,
		RateLimitPerMinute: settings.RateLimitPerMinute,
		Stream:             settings.Stream,
		RequestTimeout:     settings.RequestTimeout,
		KeyLookup:          keyLookup,
	})

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting lexbridge", "version", Version, "provider", settings.Provider, "model", settings.Model)
	if err := server.Run(ctx, settings.Addr); err != nil {
		return exitError(ExitTotalFailure, "lexbridge: %v", err)
	}
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
