// Package config loads server configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config configures the canvas server. A missing config file means
// all-defaults; fields left empty in the file get their defaults too.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`

	// StaticDir is the directory the browser client is served from.
	StaticDir string `yaml:"static_dir"`

	// Store selects the durable history backend: "file" or "sqlite".
	Store string `yaml:"store"`

	// StorePath is the file (or database) the history snapshot lives in.
	StorePath string `yaml:"store_path"`

	// MDNS enables LAN advertisement of this server.
	MDNS bool `yaml:"mdns"`
}

func (c *Config) defaults() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.StaticDir == "" {
		c.StaticDir = "client"
	}
	if c.Store == "" {
		c.Store = "file"
	}
	if c.StorePath == "" {
		if c.Store == "sqlite" {
			c.StorePath = "canvas.db"
		} else {
			c.StorePath = "canvas.json"
		}
	}
}

// Load reads the config at path. An absent file is not an error.
func Load(path string) (Config, error) {
	var c Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			c.defaults()
			return c, nil
		}
		return c, fmt.Errorf("could not read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("could not parse config %s: %w", path, err)
	}
	if c.Store != "" && c.Store != "file" && c.Store != "sqlite" {
		return c, fmt.Errorf("unknown store backend %q (want file or sqlite)", c.Store)
	}
	c.defaults()
	return c, nil
}
