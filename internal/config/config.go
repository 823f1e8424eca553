package config

import (
	"time"
)

// Config is the full admin panel configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Backend BackendConfig `koanf:"backend"`
	Session SessionConfig `koanf:"session"`
	Log     LogConfig     `koanf:"log"`
	Lookups LookupsConfig `koanf:"lookups"`
}

type ServerConfig struct {
	Addr         string        `koanf:"addr" validate:"required"`
	CookieSecure bool          `koanf:"cookie_secure"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"gt=0"`
	// MetricsToken guards /metrics via X-API-Token; empty disables the endpoint.
	MetricsToken string `koanf:"metrics_token"`
	// LoginRateLimit is the number of login posts allowed per IP per minute.
	LoginRateLimit int `koanf:"login_rate_limit" validate:"gte=0"`
}

// BackendConfig describes the catalog REST API the panel drives.
type BackendConfig struct {
	BaseURL         string        `koanf:"base_url" validate:"required,url"`
	Timeout         time.Duration `koanf:"timeout" validate:"gt=0"`
	BreakerFailures uint32        `koanf:"breaker_failures" validate:"gt=0"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout" validate:"gt=0"`
}

type SessionConfig struct {
	Backend     string        `koanf:"backend" validate:"oneof=memory postgres scylla"`
	TTL         time.Duration `koanf:"ttl" validate:"gt=0"`
	CookieName  string        `koanf:"cookie_name" validate:"required"`
	PostgresURL string        `koanf:"postgres_url" validate:"required_if=Backend postgres"`
	ScyllaHosts []string      `koanf:"scylla_hosts" validate:"required_if=Backend scylla"`
	ScyllaPort  int           `koanf:"scylla_port"`
	Keyspace    string        `koanf:"keyspace"`
	Consistency string        `koanf:"consistency"`
	Replication int           `koanf:"replication"`
}

type LogConfig struct {
	Level string `koanf:"level"`
	JSON  bool   `koanf:"json"`
}

type LookupsConfig struct {
	TTL time.Duration `koanf:"ttl"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8081",
			CookieSecure:   false,
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   30 * time.Second,
			LoginRateLimit: 10,
		},
		Backend: BackendConfig{
			BaseURL:         "http://127.0.0.1:3000",
			Timeout:         10 * time.Second,
			BreakerFailures: 5,
			BreakerTimeout:  30 * time.Second,
		},
		Session: SessionConfig{
			Backend:     "memory",
			TTL:         12 * time.Hour,
			CookieName:  "vodadmin_session",
			ScyllaPort:  9042,
			Keyspace:    "vodadmin",
			Consistency: "QUORUM",
			Replication: 3,
		},
		Log: LogConfig{
			Level: "info",
		},
		Lookups: LookupsConfig{
			TTL: 5 * time.Minute,
		},
	}
}
