package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/lexbridge/lexbridge/internal/llm"
	"github.com/lexbridge/lexbridge/internal/log"
)

// Defaults for settings not given anywhere.
const (
	DefaultProvider           = llm.KindGemini
	DefaultAddr               = ":8501"
	DefaultRateLimitPerMinute = 30
	DefaultSessionTTL         = 12 * time.Hour
	DefaultLanguage           = "English"
)

// Settings is the fully resolved configuration.
type Settings struct {
	Provider           llm.Kind
	Model              string
	BaseURL            string
	InterfaceLanguage  string
	Stream             bool
	RequestTimeout     time.Duration
	PresetsFile        string
	Addr               string
	RateLimitPerMinute int
	SessionTTL         time.Duration
	LogFormat          string
}

// Overrides carries values given on the command line. Zero values fall
// through to the config files.
type Overrides struct {
	Provider  string
	Model     string
	BaseURL   string
	Addr      string
	LogFormat string
	Stream    *bool
}

// MergeFiles merges global and repo configs. Non-zero repo values take
// precedence.
func MergeFiles(global, repo *Config) *Config {
	merged := *global

	if repo.Provider != "" {
		merged.Provider = repo.Provider
		// A model or endpoint chosen for another provider does not carry over.
		if !sameProvider(repo.Provider, global.Provider) {
			merged.Model = ""
			merged.BaseURL = ""
		}
	}
	if repo.Model != "" {
		merged.Model = repo.Model
	}
	if repo.BaseURL != "" {
		merged.BaseURL = repo.BaseURL
	}
	if repo.InterfaceLanguage != "" {
		merged.InterfaceLanguage = repo.InterfaceLanguage
	}
	if repo.Stream != nil {
		merged.Stream = repo.Stream
	}
	if repo.RequestTimeout != "" {
		merged.RequestTimeout = repo.RequestTimeout
	}
	if repo.PresetsFile != "" {
		merged.PresetsFile = repo.PresetsFile
	}
	if repo.Server.Addr != "" {
		merged.Server.Addr = repo.Server.Addr
	}
	if repo.Server.RateLimitPerMinute != 0 {
		merged.Server.RateLimitPerMinute = repo.Server.RateLimitPerMinute
	}
	if repo.Server.SessionTTL != "" {
		merged.Server.SessionTTL = repo.Server.SessionTTL
	}
	if repo.Server.LogFormat != "" {
		merged.Server.LogFormat = repo.Server.LogFormat
	}

	return &merged
}

// sameProvider reports whether a and b name the same provider, accepting
// ids and display names in any case.
func sameProvider(a, b string) bool {
	ka, errA := llm.ParseKind(a)
	kb, errB := llm.ParseKind(b)
	if errA == nil && errB == nil {
		return ka == kb
	}
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Resolve applies CLI overrides on top of cfg and fills defaults.
// Precedence is CLI flags, then cfg, then defaults.
func Resolve(cfg *Config, cli Overrides) (Settings, error) {
	c := *cfg
	if cli.Provider != "" {
		if !sameProvider(cli.Provider, c.Provider) {
			c.Model, c.BaseURL = "", ""
		}
		c.Provider = cli.Provider
	}
	if cli.Model != "" {
		c.Model = cli.Model
	}
	if cli.BaseURL != "" {
		c.BaseURL = cli.BaseURL
	}
	if cli.Addr != "" {
		c.Server.Addr = cli.Addr
	}
	if cli.LogFormat != "" {
		c.Server.LogFormat = cli.LogFormat
	}
	if cli.Stream != nil {
		c.Stream = cli.Stream
	}
	if err := Validate(&c); err != nil {
		return Settings{}, err
	}

	s := Settings{
		Provider:           DefaultProvider,
		Model:              c.Model,
		BaseURL:            c.BaseURL,
		InterfaceLanguage:  c.InterfaceLanguage,
		PresetsFile:        c.PresetsFile,
		Addr:               c.Server.Addr,
		RateLimitPerMinute: c.Server.RateLimitPerMinute,
		SessionTTL:         DefaultSessionTTL,
		LogFormat:          c.Server.LogFormat,
	}
	if c.Provider != "" {
		kind, err := llm.ParseKind(c.Provider)
		if err != nil {
			return Settings{}, err
		}
		s.Provider = kind
	}
	if s.Model == "" {
		s.Model = s.Provider.DefaultModel()
	}
	if s.InterfaceLanguage == "" {
		s.InterfaceLanguage = DefaultLanguage
	}
	if c.Stream != nil {
		s.Stream = *c.Stream
	}
	if s.Addr == "" {
		s.Addr = DefaultAddr
	}
	if s.RateLimitPerMinute == 0 {
		s.RateLimitPerMinute = DefaultRateLimitPerMinute
	}
	if s.LogFormat == "" {
		s.LogFormat = log.FormatText
	}
	var err error
	if c.RequestTimeout != "" {
		if s.RequestTimeout, err = time.ParseDuration(c.RequestTimeout); err != nil {
			return Settings{}, fmt.Errorf("request_timeout: %w", err)
		}
	}
	if c.Server.SessionTTL != "" {
		if s.SessionTTL, err = time.ParseDuration(c.Server.SessionTTL); err != nil {
			return Settings{}, fmt.Errorf("server.session_ttl: %w", err)
		}
	}
	return s, nil
}

// LLMConfig returns the provider configuration for s with the given key.
func (s Settings) LLMConfig(apiKey string) llm.Config {
	return llm.Config{
		Kind:    s.Provider,
		APIKey:  apiKey,
		BaseURL: s.BaseURL,
		Model:   s.Model,
		Timeout: s.RequestTimeout,
	}
}

// LoadAll loads the global config and the repo config in dir, and merges
// them.
func LoadAll(dir string) (*Config, error) {
	global, err := LoadGlobal()
	if err != nil {
		return nil, fmt.Errorf("loading global config: %w", err)
	}
	repo, err := Load(dir)
	if err != nil {
		return nil, fmt.Errorf("loading repo config: %w", err)
	}
	return MergeFiles(global, repo), nil
}
