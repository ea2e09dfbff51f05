package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds the command line tool configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Output string       `mapstructure:"output"`
	Vanity VanityConfig `mapstructure:"vanity"`
	Key    KeyConfig    `mapstructure:"key"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// VanityConfig holds vanity search configuration.
type VanityConfig struct {
	Workers     int           `mapstructure:"workers"`
	MaxAttempts uint64        `mapstructure:"max_attempts"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// KeyConfig holds key loading configuration.
type KeyConfig struct {
	Passphrase string `mapstructure:"passphrase"`
}

// loadConfig reads configuration from the optional config file, EASYBTC_*
// environment variables and the flags already bound to v.
func loadConfig(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("easybtc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".easybtc"))
		}
	}

	v.SetEnvPrefix("EASYBTC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Output != outputTable && cfg.Output != outputJSON {
		return nil, fmt.Errorf("unknown output format %q", cfg.Output)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("output", outputTable)
	v.SetDefault("vanity.workers", runtime.NumCPU())
	v.SetDefault("vanity.max_attempts", 0)
	v.SetDefault("vanity.timeout", "0s")
	v.SetDefault("key.passphrase", "")
}

// setupLogger configures the logrus standard logger.
func setupLogger(cfg LogConfig) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)

	switch cfg.Format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return nil
}
