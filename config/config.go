// Package config provides transport tuning configuration for tagfabric.
//
// Configuration is read once, at transport context initialization, from the
// TAGFABRIC environment namespace (TAGFABRIC_BIND_ADDR, ...) with an optional
// config file given via TAGFABRIC_CONFIG.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/wippyai/tagfabric/errors"
)

// EnvPrefix is the environment namespace all transport options live under.
const EnvPrefix = "TAGFABRIC"

// Config holds the transport tuning options.
type Config struct {
	// BindAddr is the UDP address workers listen on. Port 0 picks a free port.
	BindAddr string `mapstructure:"bind_addr"`

	// ALPN is the application protocol id negotiated on the wire.
	ALPN string `mapstructure:"alpn"`

	// InjectThreshold is the largest payload, in bytes, eligible for the
	// copy-and-complete-immediately send fast path.
	InjectThreshold int `mapstructure:"inject_threshold"`

	// SendQueueDepth is the per-endpoint outbound operation queue length.
	SendQueueDepth int `mapstructure:"send_queue_depth"`

	// InboundQueueDepth is the per-worker inbound frame queue length.
	InboundQueueDepth int `mapstructure:"inbound_queue_depth"`

	// MaxMessageSize bounds a single transfer's payload in bytes.
	MaxMessageSize int `mapstructure:"max_message_size"`
}

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		BindAddr:          "127.0.0.1:0",
		ALPN:              "tagfabric/1",
		InjectThreshold:   1024,
		SendQueueDepth:    64,
		InboundQueueDepth: 256,
		MaxMessageSize:    16 << 20,
	}
}

// Load reads the configuration from the TAGFABRIC namespace: environment
// variables first, merged over an optional config file named by
// TAGFABRIC_CONFIG, merged over defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("bind_addr", d.BindAddr)
	v.SetDefault("alpn", d.ALPN)
	v.SetDefault("inject_threshold", d.InjectThreshold)
	v.SetDefault("send_queue_depth", d.SendQueueDepth)
	v.SetDefault("inbound_queue_depth", d.InboundQueueDepth)
	v.SetDefault("max_message_size", d.MaxMessageSize)

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.ConfigInvalid(fmt.Sprintf("read config file %s", path), err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.ConfigInvalid("unmarshal config", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks internal consistency of the tuning options.
func (c *Config) Validate() error {
	if c.BindAddr == "" {
		return errors.ConfigInvalid("bind_addr must not be empty", nil)
	}
	if c.ALPN == "" {
		return errors.ConfigInvalid("alpn must not be empty", nil)
	}
	if c.MaxMessageSize <= 0 {
		return errors.ConfigInvalid("max_message_size must be positive", nil)
	}
	if c.InjectThreshold < 0 || c.InjectThreshold > c.MaxMessageSize {
		return errors.ConfigInvalid("inject_threshold must be within [0, max_message_size]", nil)
	}
	if c.SendQueueDepth <= 0 {
		return errors.ConfigInvalid("send_queue_depth must be positive", nil)
	}
	if c.InboundQueueDepth <= 0 {
		return errors.ConfigInvalid("inbound_queue_depth must be positive", nil)
	}
	return nil
}
