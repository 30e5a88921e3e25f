package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
)

const defaultConfigPath = "minecalc.toml"

// Config is the runtime configuration of the web service.
type Config struct {
	ListenAddr         string
	ShutdownTimeout    time.Duration
	CalculatorEndpoint string
	UpstreamTimeout    time.Duration
	SessionTTL         time.Duration
	TelemetryEnabled   bool
}

// fileConfig is the TOML layout of the optional config file.
type fileConfig struct {
	Server struct {
		Listen          string `toml:"listen"`
		ShutdownTimeout string `toml:"shutdown_timeout"`
	} `toml:"server"`
	Upstream struct {
		Endpoint string `toml:"endpoint"`
		Timeout  string `toml:"timeout"`
	} `toml:"upstream"`
	Session struct {
		TTL string `toml:"ttl"`
	} `toml:"session"`
	Telemetry struct {
		Enabled *bool `toml:"enabled"`
	} `toml:"telemetry"`
}

func Default() Config {
	return Config{
		ListenAddr:         ":8080",
		ShutdownTimeout:    5 * time.Second,
		CalculatorEndpoint: "https://gkm8nh-8000.csb.app",
		SessionTTL:         30 * time.Minute,
		TelemetryEnabled:   true,
	}
}

// Load builds the configuration from defaults, the optional TOML file named by
// MINECALC_CONFIG (default minecalc.toml), and finally the environment.
// Variables from .env are loaded first without overriding the process
// environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	path := os.Getenv("MINECALC_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}

	fc, ok, err := loadTOMLFile[fileConfig](path)
	if err != nil {
		return Config{}, err
	}
	if ok {
		if err := applyFile(&cfg, *fc); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings the service cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return errors.New("listen address is empty")
	}
	if !strings.HasPrefix(c.CalculatorEndpoint, "http://") && !strings.HasPrefix(c.CalculatorEndpoint, "https://") {
		return fmt.Errorf("calculator endpoint %q must be an http(s) URL", c.CalculatorEndpoint)
	}
	if c.UpstreamTimeout < 0 {
		return fmt.Errorf("upstream timeout %s is negative", c.UpstreamTimeout)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session ttl %s must be positive", c.SessionTTL)
	}
	return nil
}

func loadTOMLFile[T any](path string) (*T, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}

	var cfg T
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, true, fmt.Errorf("parse %s: %w", path, err)
	}

	return &cfg, true, nil
}

func applyFile(cfg *Config, fc fileConfig) error {
	if fc.Server.Listen != "" {
		cfg.ListenAddr = strings.TrimSpace(fc.Server.Listen)
	}
	if err := setDuration(&cfg.ShutdownTimeout, fc.Server.ShutdownTimeout, "server.shutdown_timeout"); err != nil {
		return err
	}
	if fc.Upstream.Endpoint != "" {
		cfg.CalculatorEndpoint = strings.TrimSpace(fc.Upstream.Endpoint)
	}
	if err := setDuration(&cfg.UpstreamTimeout, fc.Upstream.Timeout, "upstream.timeout"); err != nil {
		return err
	}
	if err := setDuration(&cfg.SessionTTL, fc.Session.TTL, "session.ttl"); err != nil {
		return err
	}
	if fc.Telemetry.Enabled != nil {
		cfg.TelemetryEnabled = *fc.Telemetry.Enabled
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := getEnv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := getEnv("CALCULATOR_ENDPOINT"); v != "" {
		cfg.CalculatorEndpoint = v
	}
	if err := setDuration(&cfg.ShutdownTimeout, getEnv("SHUTDOWN_TIMEOUT"), "SHUTDOWN_TIMEOUT"); err != nil {
		return err
	}
	if err := setDuration(&cfg.UpstreamTimeout, getEnv("UPSTREAM_TIMEOUT"), "UPSTREAM_TIMEOUT"); err != nil {
		return err
	}
	if err := setDuration(&cfg.SessionTTL, getEnv("SESSION_TTL"), "SESSION_TTL"); err != nil {
		return err
	}
	if v := getEnv("TELEMETRY_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TELEMETRY_ENABLED: %w", err)
		}
		cfg.TelemetryEnabled = b
	}
	return nil
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// setDuration parses raw into dst when raw is non-empty. A bare "0" is
// accepted as zero.
func setDuration(dst *time.Duration, raw, name string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = d
	return nil
}
