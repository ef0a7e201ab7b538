package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/lexbridge/lexbridge/internal/llm"
	"github.com/lexbridge/lexbridge/internal/log"
)

// Validate checks all fields in the config and returns all errors at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Provider != "" {
		kind, err := llm.ParseKind(cfg.Provider)
		if err != nil {
			errs = append(errs, fmt.Sprintf("provider: %v", err))
		} else if kind == llm.KindCompatible && strings.TrimSpace(cfg.BaseURL) == "" {
			errs = append(errs, "base_url: required when provider is compatible")
		}
	}

	if cfg.RequestTimeout != "" {
		if d, err := time.ParseDuration(cfg.RequestTimeout); err != nil {
			errs = append(errs, fmt.Sprintf("request_timeout: invalid duration %q", cfg.RequestTimeout))
		} else if d < 0 {
			errs = append(errs, fmt.Sprintf("request_timeout: must be non-negative, got %s", cfg.RequestTimeout))
		}
	}

	if cfg.Server.RateLimitPerMinute < 0 {
		errs = append(errs, fmt.Sprintf("server.rate_limit_per_minute: must be positive, got %d", cfg.Server.RateLimitPerMinute))
	}

	if cfg.Server.SessionTTL != "" {
		if d, err := time.ParseDuration(cfg.Server.SessionTTL); err != nil {
			errs = append(errs, fmt.Sprintf("server.session_ttl: invalid duration %q", cfg.Server.SessionTTL))
		} else if d <= 0 {
			errs = append(errs, fmt.Sprintf("server.session_ttl: must be positive, got %s", cfg.Server.SessionTTL))
		}
	}

	if cfg.Server.LogFormat != "" && !log.ValidFormat(cfg.Server.LogFormat) {
		errs = append(errs, fmt.Sprintf("server.log_format: invalid value %q (must be text or json)", cfg.Server.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
