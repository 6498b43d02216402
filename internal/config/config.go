// Package config loads the pdcfr.hcl configuration file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/deeppdcfr/sdk/sizing"
)

// DefaultFile is the configuration file read when no path is given.
const DefaultFile = "pdcfr.hcl"

// Config represents the complete configuration
type Config struct {
	Server   *ServerSettings  `hcl:"server,block"`
	BetSizes *BetSizeSettings `hcl:"bet_sizes,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address     string   `hcl:"address,optional"`
	Port        int      `hcl:"port,optional"`
	LogLevel    string   `hcl:"log_level,optional"`
	CORSOrigins []string `hcl:"cors_origins,optional"`
	DatabaseURL string   `hcl:"database_url,optional"`
	Version     string   `hcl:"version,optional"`
}

// BetSizeSettings are the default sizes used when a request omits them.
type BetSizeSettings struct {
	OOPBet   string `hcl:"oop_bet,optional"`
	OOPRaise string `hcl:"oop_raise,optional"`
	IPBet    string `hcl:"ip_bet,optional"`
	IPRaise  string `hcl:"ip_raise,optional"`
}

// Default returns the built-in configuration
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Server == nil {
		c.Server = &ServerSettings{}
	}
	if c.Server.Address == "" {
		c.Server.Address = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8001
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}
	if c.Server.Version == "" {
		c.Server.Version = "0.1.0"
	}

	if c.BetSizes == nil {
		c.BetSizes = &BetSizeSettings{}
	}
	if c.BetSizes.OOPBet == "" {
		c.BetSizes.OOPBet = sizing.DefaultBetSizes
	}
	if c.BetSizes.OOPRaise == "" {
		c.BetSizes.OOPRaise = sizing.DefaultRaiseSizes
	}
	if c.BetSizes.IPBet == "" {
		c.BetSizes.IPBet = sizing.DefaultBetSizes
	}
	if c.BetSizes.IPRaise == "" {
		c.BetSizes.IPRaise = sizing.DefaultRaiseSizes
	}
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if !validLogLevels[strings.ToLower(c.Server.LogLevel)] {
		return fmt.Errorf("invalid log level: %s", c.Server.LogLevel)
	}
	if _, err := c.Sizes(); err != nil {
		return fmt.Errorf("bet_sizes: %w", err)
	}
	return nil
}

// Sizes parses the configured default bet sizes.
func (c *Config) Sizes() (sizing.Config, error) {
	b := c.BetSizes
	if b == nil {
		return sizing.DefaultConfig(), nil
	}
	return sizing.ConfigFromStrings(b.OOPBet, b.OOPRaise, b.IPBet, b.IPRaise)
}

// ListenAddress returns the address the server binds to
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
