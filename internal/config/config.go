// Package config loads the settings of the mimetool command.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/zostay/go-mimetree/message"
)

// Config holds all application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Identity  IdentityConfig  `mapstructure:"identity"`
	Parse     ParseConfig     `mapstructure:"parse"`
	Transform TransformConfig `mapstructure:"transform"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// IdentityConfig overrides the process details used to generate From,
// Message-Id, and Date defaults. Empty values are taken from the running
// process.
type IdentityConfig struct {
	User     string `mapstructure:"user"`
	Hostname string `mapstructure:"hostname"`
	Program  string `mapstructure:"program"`
}

// ParseConfig holds the limits applied when parsing messages.
type ParseConfig struct {
	MaxHeaderLength int `mapstructure:"max_header_length"`
	MaxPartLength   int `mapstructure:"max_part_length"`
}

// TransformConfig holds settings for rewriting attachments.
type TransformConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("identity.user", "")
	v.SetDefault("identity.hostname", "")
	v.SetDefault("identity.program", "")
	v.SetDefault("parse.max_header_length", message.DefaultMaxHeaderLength)
	v.SetDefault("parse.max_part_length", message.DefaultMaxPartLength)
	v.SetDefault("transform.concurrency", 1)
}

// Load reads configuration from the given config directory path. It looks for
// an optional file named "mimetool.yaml" in that directory. Environment
// variables with prefix MIMETOOL_ override file values. For example,
// MIMETOOL_LOGGING_LEVEL overrides logging.level.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("mimetool")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}

	v.SetEnvPrefix("MIMETOOL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Transform.Concurrency < 1 {
		cfg.Transform.Concurrency = 1
	}

	return &cfg, nil
}

// Env returns the process details of message.DefaultEnv() with the configured
// identity applied on top.
func (c *Config) Env() message.Env {
	env := message.DefaultEnv()
	if c.Identity.User != "" {
		env.User = c.Identity.User
	}
	if c.Identity.Hostname != "" {
		env.Hostname = c.Identity.Hostname
	}
	if c.Identity.Program != "" {
		env.Program = c.Identity.Program
	}
	return env
}

// ParseOptions returns the parser options for the configured limits.
func (c *Config) ParseOptions() []message.ParseOption {
	var opts []message.ParseOption
	if c.Parse.MaxHeaderLength > 0 {
		opts = append(opts, message.WithMaxHeaderLength(c.Parse.MaxHeaderLength))
	}
	if c.Parse.MaxPartLength > 0 {
		opts = append(opts, message.WithMaxPartLength(c.Parse.MaxPartLength))
	}
	return opts
}
