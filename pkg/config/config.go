// Package config builds runtime configuration from a YAML file, environment
// variables and flag overrides, in that precedence order.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	ListenAddr string   `mapstructure:"listen_addr"`
	OutputPath string   `mapstructure:"output_path"`
	RulesFile  string   `mapstructure:"rules_file"`
	LogLevel   string   `mapstructure:"log_level"`
	Accounts   []string `mapstructure:"accounts"`
	Aliases    []string `mapstructure:"aliases"`
	Notify     Notify   `mapstructure:"notify"`
}

// Notify bounds the notification dedup cache.
type Notify struct {
	MaxEntries  int           `mapstructure:"max_entries"`
	DedupWindow time.Duration `mapstructure:"dedup_window"`
	EvictionTTL time.Duration `mapstructure:"eviction_ttl"`
}

// Build loads configuration. cfgFile may be empty, in which case
// gagyebu.yaml is looked up in the working directory and $HOME/.gagyebu.
// Flags, when provided, override file and environment values.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("notify.max_entries", 512)
	v.SetDefault("notify.dedup_window", 2*time.Minute)
	v.SetDefault("notify.eviction_ttl", 30*time.Minute)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("gagyebu")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.gagyebu")
	}

	v.SetEnvPrefix("GAGYEBU")
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
