// Package config loads the server configuration from a YAML file, filling
// unset fields with defaults. The OpenAI API key is never read from the
// file; it comes from the OPENAI_API_KEY environment variable.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all server configuration.
type Config struct {
	Listen   string         `yaml:"listen"`
	Upload   UploadConfig   `yaml:"upload"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

// UploadConfig bounds incoming template uploads.
type UploadConfig struct {
	MaxSizeMB int `yaml:"max_size_mb"`
}

// AnalysisConfig controls the AI analysis endpoint.
type AnalysisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Model   string `yaml:"model"`
}

func (c *Config) defaults() {
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.Upload.MaxSizeMB <= 0 {
		c.Upload.MaxSizeMB = 50
	}
	if c.Analysis.Model == "" {
		c.Analysis.Model = "gpt-4o-mini"
	}
}

// MaxUploadBytes is the upload limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Upload.MaxSizeMB) << 20
}

// APIKey returns the OpenAI API key from the environment.
func (c *Config) APIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.defaults()
	return cfg
}

// Load reads a YAML config file and applies defaults to unset fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.defaults()
	return cfg, nil
}
