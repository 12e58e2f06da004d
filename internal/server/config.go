package server

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"lanyard-mcp-go/internal/lanyard"
)

// Transport modes for the MCP server
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// Duration is a time.Duration that decodes from TOML strings like "10s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Config contains the server configuration.
type Config struct {
	// Transport selects how the MCP server is exposed: stdio or sse
	Transport string `toml:"transport"`
	// ListenAddr is the HTTP listen address in sse mode
	ListenAddr string `toml:"listen_addr"`
	// LogLevel is the zerolog level name (debug, info, warn, error)
	LogLevel string `toml:"log_level"`
	// APIBaseURL is the Lanyard REST endpoint
	APIBaseURL string `toml:"api_base_url"`
	// RequestTimeout bounds a single upstream fetch
	RequestTimeout Duration `toml:"request_timeout"`
	// MetricsInterval is the system metrics collection period
	MetricsInterval Duration `toml:"metrics_interval"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Transport:       TransportStdio,
		ListenAddr:      ":8080",
		LogLevel:        "info",
		APIBaseURL:      lanyard.DefaultBaseURL,
		RequestTimeout:  Duration{lanyard.DefaultTimeout},
		MetricsInterval: Duration{15 * time.Second},
	}
}

// LoadConfig reads a TOML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values that would break startup.
func (c Config) Validate() error {
	if c.Transport != TransportStdio && c.Transport != TransportSSE {
		return fmt.Errorf("invalid transport %q: must be %q or %q", c.Transport, TransportStdio, TransportSSE)
	}
	if c.Transport == TransportSSE && c.ListenAddr == "" {
		return fmt.Errorf("listen_addr is required for %s transport", TransportSSE)
	}
	if c.RequestTimeout.Duration <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	return nil
}

// ZerologLevel maps the configured level name to a zerolog level,
// defaulting to info for unknown names.
func (c Config) ZerologLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
