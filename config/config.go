// Package config holds the engine defaults that can be overridden by a YAML
// file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config carries the evaluator and search defaults. A partial file only
// overrides the keys it names.
type Config struct {
	Rules          string  `yaml:"rules"`
	Komi           float64 `yaml:"komi"`
	BoardSize      int     `yaml:"board_size"`
	GenmoveSeconds float64 `yaml:"genmove_seconds"`
}

func Default() Config {
	return Config{
		Rules:          "tromp-taylor",
		Komi:           7.5,
		BoardSize:      19,
		GenmoveSeconds: 1,
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}
