// Package config loads the optional checkout.yaml used by the cbcheckout CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-drift/checkout/pkg/checkout"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = "checkout.yaml"

// SiteEnv overrides the site from the config file.
const SiteEnv = "CHARGEBEE_SITE"

// DefaultBeaconTimeout bounds the synchronous beacon sent by the CLI.
const DefaultBeaconTimeout = 10 * time.Second

// Config represents checkout.yaml. The checkout fields sit at the top level
// next to the CLI settings.
type Config struct {
	checkout.Config `yaml:",inline"`

	// BeaconTimeout accepts Go duration strings such as "5s".
	BeaconTimeout time.Duration `yaml:"beacon_timeout,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	// Path is the file the values were read from, or "" when none exists.
	Path          string
	Checkout      checkout.Config
	BeaconTimeout time.Duration
}

// Load reads the config file at path. A missing file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadOptional reads checkout.yaml from dir if present. The returned path
// is empty when the file does not exist.
func LoadOptional(dir string) (*Config, string, error) {
	path := filepath.Join(dir, FileName)
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, "", nil
		}
		return nil, "", err
	}
	return cfg, path, nil
}

// Resolve loads the config file and applies defaults and the environment.
// An explicit path must exist; otherwise checkout.yaml in dir is optional.
func Resolve(path, dir string) (*Resolved, error) {
	var (
		cfg *Config
		err error
	)
	if path != "" {
		cfg, err = Load(path)
	} else {
		cfg, path, err = LoadOptional(dir)
	}
	if err != nil {
		return nil, err
	}

	if site := strings.TrimSpace(os.Getenv(SiteEnv)); site != "" {
		cfg.Site = site
	}
	cfg.Site = strings.TrimSpace(cfg.Site)

	if cfg.Site != "" {
		if err := checkout.ValidateSite(cfg.Site); err != nil {
			return nil, err
		}
	}

	timeout := cfg.BeaconTimeout
	if timeout <= 0 {
		timeout = DefaultBeaconTimeout
	}

	return &Resolved{
		Path:          path,
		Checkout:      cfg.Config,
		BeaconTimeout: timeout,
	}, nil
}
