// Copyright 2026 The LexBridge Authors
// SPDX-License-Identifier: MIT

// Package web serves the LexBridge browser UI.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lexbridge/lexbridge/internal/lexbridge"
	"github.com/lexbridge/lexbridge/internal/llm"
	"github.com/lexbridge/lexbridge/internal/metrics"
	"github.com/lexbridge/lexbridge/internal/session"
)

// CookieName holds the session ID.
const CookieName = "lexbridge_session"

const shutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	// Defaults is the provider selection of a new session.
	Defaults session.Selection

	// RateLimitPerMinute bounds POST requests per client IP. Zero disables it.
	RateLimitPerMinute int

	// Stream makes the page submit analyses to the SSE endpoint.
	Stream bool

	// Language prefills the translate form of sessions still showing the
	// default labels.
	Language string

	// RequestTimeout bounds each provider call when positive.
	RequestTimeout time.Duration

	// KeyLookup returns the configured key for a kind when the form leaves
	// the key field empty. Defaults to llm.KeyFromEnv.
	KeyLookup func(llm.Kind) string
}

// Server is the web UI. Create it with New.
type Server struct {
	svc    *lexbridge.Service
	store  session.Store
	opts   Options
	engine *gin.Engine
}

// New builds the server and its routes.
func New(svc *lexbridge.Service, store session.Store, opts Options) *Server {
	if opts.KeyLookup == nil {
		opts.KeyLookup = llm.KeyFromEnv
	}
	if !opts.Defaults.Provider.Valid() {
		opts.Defaults.Provider = llm.KindGemini
	}
	if opts.Defaults.Model == "" {
		opts.Defaults.Model = opts.Defaults.Provider.DefaultModel()
	}
	metrics.Register()

	s := &Server{svc: svc, store: store, opts: opts}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/analyze/stream", "/metrics"})))

	r.GET("/", s.index)
	r.GET("/healthz", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	actions := r.Group("/")
	actions.Use(rateLimit(s.opts.RateLimitPerMinute))
	actions.POST("/preset/:id", s.applyPreset)
	actions.POST("/analyze", s.analyze)
	actions.POST("/analyze/stream", s.analyzeStream)
	actions.POST("/translate", s.translate)
	actions.POST("/reset", s.reset)
	return r
}

// Handler returns the HTTP handler for all routes.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("web server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("web server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
