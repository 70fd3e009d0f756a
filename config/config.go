// seehuhn.de/go/pdfview - a PDF viewer and annotator
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config holds the settings shared by the pdfview commands.
//
// Settings are read from a YAML file.  Missing keys keep the values from
// [Default], and command-line flags may override the result.
package config

import (
	"errors"
	"fmt"
	"math"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete configuration of a viewer process.
type Config struct {
	// Scale is the zoom factor used when a page is first shown.
	Scale float64 `yaml:"scale"`

	// DevicePixelRatio is the number of device pixels per CSS pixel.
	DevicePixelRatio float64 `yaml:"device_pixel_ratio"`

	// HistoryFile is where the shell keeps its command history.
	// An empty string disables the history.
	HistoryFile string `yaml:"history_file"`

	// LogPrefix is prepended to every log line.
	LogPrefix string `yaml:"log_prefix"`

	Server ServerConfig `yaml:"server"`
}

// ServerConfig configures the HTTP front end.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// MaxUpload is the largest PDF file accepted by the upload endpoint,
	// in bytes.
	MaxUpload int64 `yaml:"max_upload"`
}

// Addr returns the listen address in host:port form.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Scale:            1,
		DevicePixelRatio: 1,
		LogPrefix:        "pdfview: ",
		Server: ServerConfig{
			Host:         "localhost",
			Port:         8082,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			MaxUpload:    64 << 20,
		},
	}
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	var errs []error
	if !positive(c.Scale) {
		errs = append(errs, fmt.Errorf("scale must be positive, got %g", c.Scale))
	}
	if !positive(c.DevicePixelRatio) {
		errs = append(errs, fmt.Errorf("device_pixel_ratio must be positive, got %g", c.DevicePixelRatio))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		errs = append(errs, errors.New("server timeouts must not be negative"))
	}
	if c.Server.MaxUpload <= 0 {
		errs = append(errs, fmt.Errorf("server.max_upload must be positive, got %d", c.Server.MaxUpload))
	}
	return errors.Join(errs...)
}

func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 0)
}

// Load reads a configuration file.  Keys not present in the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is like [Load], but returns the default configuration if
// path is empty or the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Save writes the configuration to path, creating parent directories
// as needed.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
