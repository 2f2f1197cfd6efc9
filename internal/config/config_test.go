package config

import (
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default configuration must validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad source url", func(c *Config) { c.SourceURL = "://bad" }},
		{"source url without host", func(c *Config) { c.SourceURL = "/relative" }},
		{"bad origin", func(c *Config) { c.Origin = "://bad" }},
		{"empty marker", func(c *Config) { c.Marker = "" }},
		{"empty db path", func(c *Config) { c.DBPath = "" }},
		{"empty catalog path", func(c *Config) { c.CatalogPath = "" }},
		{"empty feed path", func(c *Config) { c.FeedPath = "" }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
