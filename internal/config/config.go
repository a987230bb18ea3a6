// Package config holds the server configuration: built-in defaults,
// overlaid by an optional YAML file, overlaid by CABINETRY_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/atvirokodosprendimai/cabinetry/internal/logging"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP    HTTPConfig     `yaml:"http"`
	RPC     RPCConfig      `yaml:"rpc"`
	DB      DBConfig       `yaml:"db"`
	Log     logging.Config `yaml:"log"`
	Metrics MetricsConfig  `yaml:"metrics"`
}

type HTTPConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

type RPCConfig struct {
	Socket string `yaml:"socket"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   5 * time.Second,
		},
		RPC:     RPCConfig{Socket: "/tmp/cabinetry.sock"},
		DB:      DBConfig{Path: "cabinetry.db"},
		Log:     logging.Config{Level: "info", Format: "json"},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load reads path over the defaults. A missing file or empty path is not
// an error. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CABINETRY_HTTP_ADDR"); v != "" {
		c.HTTP.Addr = v
	}
	if v := os.Getenv("CABINETRY_RPC_SOCKET"); v != "" {
		c.RPC.Socket = v
	}
	if v := os.Getenv("CABINETRY_DB_PATH"); v != "" {
		c.DB.Path = v
	}
	if v := os.Getenv("CABINETRY_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("CABINETRY_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("CABINETRY_METRICS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Metrics.Enabled = enabled
		}
	}
	if v := os.Getenv("CABINETRY_SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.HTTP.ShutdownTimeout = d
		}
	}
}
