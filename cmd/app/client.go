package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atvirokodosprendimai/cabinetry/internal/units"
)

type cliConfig struct {
	Transport string `json:"transport"`
	Server    string `json:"server"`
	Socket    string `json:"socket"`
	Unit      string `json:"unit"`
}

const (
	defaultServer = "http://127.0.0.1:8080"
	defaultSocket = "/tmp/cabinetry.sock"
)

func defaultCLIConfig() cliConfig {
	return cliConfig{Transport: "uds", Server: defaultServer, Socket: defaultSocket, Unit: units.MM}
}

type apiClient struct {
	httpClient *http.Client
	server     string
}

func newAPIClient(server string) *apiClient {
	return &apiClient{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		server:     strings.TrimRight(server, "/"),
	}
}

func (c *apiClient) request(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.server+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		payload, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("api error (%d): %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cabinetry", "config.json"), nil
}

func loadConfig() (cliConfig, error) {
	path, err := configPath()
	if err != nil {
		return cliConfig{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultCLIConfig(), nil
		}
		return cliConfig{}, err
	}
	var cfg cliConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cliConfig{}, err
	}
	return cfg.withDefaults(), nil
}

func (cfg cliConfig) withDefaults() cliConfig {
	def := defaultCLIConfig()
	if cfg.Transport == "" {
		cfg.Transport = def.Transport
	}
	if cfg.Server == "" {
		cfg.Server = def.Server
	}
	if cfg.Socket == "" {
		cfg.Socket = def.Socket
	}
	if !units.Valid(cfg.Unit) {
		cfg.Unit = def.Unit
	}
	return cfg
}

func (cfg cliConfig) validate() error {
	if cfg.Transport != "uds" && cfg.Transport != "http" {
		return fmt.Errorf("unsupported transport %q (use uds or http)", cfg.Transport)
	}
	return nil
}

func saveConfig(cfg cliConfig) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	return nil
}
