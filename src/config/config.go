package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type ApiConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	Retries uint64        `yaml:"retries"`
}

type ServerConfig struct {
	Addr       string        `yaml:"addr"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

type Config struct {
	Api       ApiConfig       `yaml:"api"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	// Timezone is the location deadlines without an offset are read in.
	Timezone string `yaml:"timezone"`
}

func Default() Config {
	return Config{
		Api: ApiConfig{
			BaseURL: "http://localhost:8080",
			Timeout: 10 * time.Second,
			Retries: 2,
		},
		Server: ServerConfig{
			Addr:       ":8090",
			SessionTTL: 30 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "broker-client",
		},
		Timezone: "Local",
	}
}

// Load reads the optional yaml file at path on top of the defaults, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config.Load: failed to read %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config.Load: failed to parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("BROKER_API_URL"); ok {
		c.Api.BaseURL = v
	}

	if v, ok := lookup("BROKER_API_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid BROKER_API_TIMEOUT %q: %w", v, err)
		}
		c.Api.Timeout = d
	}

	if v, ok := lookup("BROKER_API_RETRIES"); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid BROKER_API_RETRIES %q: %w", v, err)
		}
		c.Api.Retries = n
	}

	if v, ok := lookup("LISTEN_ADDR"); ok {
		c.Server.Addr = v
	}

	if v, ok := lookup("SESSION_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SESSION_TTL %q: %w", v, err)
		}
		c.Server.SessionTTL = d
	}

	if v, ok := lookup("LOG_LEVEL"); ok {
		c.Logging.Level = v
	}

	if v, ok := lookup("LOG_FORMAT"); ok {
		c.Logging.Format = v
	}

	if v, ok := lookup("DEADLINE_TZ"); ok {
		c.Timezone = v
	}

	if v, ok := lookup("OTEL_ENABLED"); ok {
		c.Telemetry.Enabled = strings.ToLower(v) == "true"
	}

	return nil
}

func (c Config) Validate() error {
	if c.Api.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}

	if c.Api.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}

	if c.Server.SessionTTL <= 0 {
		return fmt.Errorf("server.session_ttl must be positive")
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}

func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}

	return loc, nil
}
