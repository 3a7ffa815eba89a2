package config

import (
	"errors"
	"testing"

	tferrors "github.com/wippyai/tagfabric/errors"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load with defaults failed: %v", err)
	}

	d := Default()
	if c.BindAddr != d.BindAddr {
		t.Errorf("BindAddr = %q, want %q", c.BindAddr, d.BindAddr)
	}
	if c.InjectThreshold != d.InjectThreshold {
		t.Errorf("InjectThreshold = %d, want %d", c.InjectThreshold, d.InjectThreshold)
	}
	if c.MaxMessageSize != d.MaxMessageSize {
		t.Errorf("MaxMessageSize = %d, want %d", c.MaxMessageSize, d.MaxMessageSize)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TAGFABRIC_BIND_ADDR", "127.0.0.1:7777")
	t.Setenv("TAGFABRIC_INJECT_THRESHOLD", "2048")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.BindAddr != "127.0.0.1:7777" {
		t.Errorf("BindAddr = %q, want env override", c.BindAddr)
	}
	if c.InjectThreshold != 2048 {
		t.Errorf("InjectThreshold = %d, want 2048", c.InjectThreshold)
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("TAGFABRIC_CONFIG", "/nonexistent/tagfabric.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	if !errors.Is(err, tferrors.ConfigInvalid("", nil)) {
		t.Errorf("expected config error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"zero inject threshold", func(c *Config) { c.InjectThreshold = 0 }, true},
		{"empty bind addr", func(c *Config) { c.BindAddr = "" }, false},
		{"empty alpn", func(c *Config) { c.ALPN = "" }, false},
		{"negative max message", func(c *Config) { c.MaxMessageSize = -1 }, false},
		{"inject above max", func(c *Config) { c.InjectThreshold = c.MaxMessageSize + 1 }, false},
		{"zero send queue", func(c *Config) { c.SendQueueDepth = 0 }, false},
		{"zero inbound queue", func(c *Config) { c.InboundQueueDepth = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
