// Package config handles .lexbridge.yaml configuration files.
//
// API keys are never read from or written to these files; they come from the
// environment (optionally loaded from .env).
package config

// Config represents the contents of a .lexbridge.yaml file.
type Config struct {
	Provider          string       `yaml:"provider,omitempty"`
	Model             string       `yaml:"model,omitempty"`
	BaseURL           string       `yaml:"base_url,omitempty"`
	// InterfaceLanguage is the default target of `lexbridge translate` and
	// prefills the language field of new web sessions.
	InterfaceLanguage string       `yaml:"interface_language,omitempty"`
	Stream            *bool        `yaml:"stream,omitempty"`
	RequestTimeout    string       `yaml:"request_timeout,omitempty"`
	PresetsFile       string       `yaml:"presets_file,omitempty"`
	Server            ServerConfig `yaml:"server,omitempty"`
}

// ServerConfig holds settings for `lexbridge serve`.
type ServerConfig struct {
	Addr               string `yaml:"addr,omitempty"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute,omitempty"`
	SessionTTL         string `yaml:"session_ttl,omitempty"`
	LogFormat          string `yaml:"log_format,omitempty"`
}

// FileName is the expected config file name in the working directory.
const FileName = ".lexbridge.yaml"
