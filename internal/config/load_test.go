package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(PathEnvVar, "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend.BaseURL != "http://127.0.0.1:3000" {
		t.Errorf("base url = %q", cfg.Backend.BaseURL)
	}
	if cfg.Session.Backend != "memory" {
		t.Errorf("session backend = %q", cfg.Session.Backend)
	}
	if cfg.Session.TTL != 12*time.Hour {
		t.Errorf("session ttl = %v", cfg.Session.TTL)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vodadmin.yaml")
	yaml := `
server:
  addr: ":9000"
backend:
  base_url: "http://catalog.internal:3000"
  timeout: 3s
session:
  backend: scylla
  scylla_hosts: ["10.0.0.1"]
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("VODADMIN_SERVER_ADDR", ":9100")
	t.Setenv("VODADMIN_SESSION_SCYLLA_HOSTS", "10.0.0.2, 10.0.0.3")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9100" {
		t.Errorf("env should win over file, addr = %q", cfg.Server.Addr)
	}
	if cfg.Backend.BaseURL != "http://catalog.internal:3000" {
		t.Errorf("base url = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 3*time.Second {
		t.Errorf("timeout = %v", cfg.Backend.Timeout)
	}
	if got := strings.Join(cfg.Session.ScyllaHosts, "|"); got != "10.0.0.2|10.0.0.3" {
		t.Errorf("scylla hosts = %q", got)
	}
}

func TestValidateRejectsPostgresWithoutURL(t *testing.T) {
	cfg := Default()
	cfg.Session.Backend = "postgres"
	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "PostgresURL") {
		t.Fatalf("expected PostgresURL error, got %v", err)
	}
}

func TestValidateRejectsUnknownSessionBackend(t *testing.T) {
	cfg := Default()
	cfg.Session.Backend = "redis"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for unknown session backend")
	}
}

func TestEnvKey(t *testing.T) {
	cases := map[string]string{
		"VODADMIN_BACKEND_BASE_URL":     "backend.base_url",
		"VODADMIN_LOG_JSON":             "log.json",
		"VODADMIN_SESSION_POSTGRES_URL": "session.postgres_url",
		"VODADMIN_UNKNOWN_THING":        "",
		"VODADMIN_SERVER":               "",
	}
	for in, want := range cases {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}
