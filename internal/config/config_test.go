package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var envKeys = []string{
	"MINECALC_CONFIG",
	"LISTEN_ADDR",
	"CALCULATOR_ENDPOINT",
	"SHUTDOWN_TIMEOUT",
	"UPSTREAM_TIMEOUT",
	"SESSION_TTL",
	"TELEMETRY_ENABLED",
}

// isolate clears the config environment and runs the test from an empty
// directory so no stray .env or minecalc.toml is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	for _, k := range envKeys {
		// Setenv restores the original value on cleanup; unset so godotenv
		// treats the key as absent.
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults %+v, got %+v", Default(), cfg)
	}
	if cfg.UpstreamTimeout != 0 {
		t.Fatalf("expected no upstream timeout by default, got %s", cfg.UpstreamTimeout)
	}
}

func TestLoadTOMLFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, `
[server]
listen = ":9090"
shutdown_timeout = "10s"

[upstream]
endpoint = "http://calc.internal:8000"
timeout = "15s"

[session]
ttl = "1h"

[telemetry]
enabled = false
`)
	t.Setenv("MINECALC_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Config{
		ListenAddr:         ":9090",
		ShutdownTimeout:    10 * time.Second,
		CalculatorEndpoint: "http://calc.internal:8000",
		UpstreamTimeout:    15 * time.Second,
		SessionTTL:         time.Hour,
		TelemetryEnabled:   false,
	}
	if cfg != want {
		t.Fatalf("expected %+v, got %+v", want, cfg)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "minecalc.toml"), `
[upstream]
endpoint = "http://from-file:8000"
timeout = "15s"
`)
	t.Setenv("CALCULATOR_ENDPOINT", "http://from-env:8000")
	t.Setenv("TELEMETRY_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.CalculatorEndpoint != "http://from-env:8000" {
		t.Fatalf("expected env endpoint, got %q", cfg.CalculatorEndpoint)
	}
	if cfg.UpstreamTimeout != 15*time.Second {
		t.Fatalf("expected file timeout, got %s", cfg.UpstreamTimeout)
	}
	if cfg.TelemetryEnabled {
		t.Fatal("expected telemetry disabled from env")
	}
}

func TestLoadDotEnvDoesNotOverrideProcessEnv(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".env"), "LISTEN_ADDR=:7070\nSESSION_TTL=5m\n")
	t.Setenv("LISTEN_ADDR", ":6060")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ListenAddr != ":6060" {
		t.Fatalf("expected process env to win, got %q", cfg.ListenAddr)
	}
	if cfg.SessionTTL != 5*time.Minute {
		t.Fatalf("expected session ttl from .env, got %s", cfg.SessionTTL)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"bad duration", "UPSTREAM_TIMEOUT", "soon", "UPSTREAM_TIMEOUT"},
		{"bad bool", "TELEMETRY_ENABLED", "maybe", "TELEMETRY_ENABLED"},
		{"endpoint scheme", "CALCULATOR_ENDPOINT", "calc.example.com", "http(s) URL"},
		{"negative timeout", "UPSTREAM_TIMEOUT", "-1s", "negative"},
		{"zero ttl", "SESSION_TTL", "0", "must be positive"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tc.key, tc.val)

			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadRejectsBrokenTOML(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "minecalc.toml"), "[server\nlisten = ")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "parse") {
		t.Fatalf("expected parse error, got %v", err)
	}
}
