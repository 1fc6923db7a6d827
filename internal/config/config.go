package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Database     string `mapstructure:"database"`
	Language     string `mapstructure:"language"`
	LogLevel     string `mapstructure:"log_level"`
	LogFormat    string `mapstructure:"log_format"`
	VerifyWrites bool   `mapstructure:"verify_writes"`
	Progress     bool   `mapstructure:"progress"`
}

// Load reads configuration from cfgFile, or from discedit.yaml in the home or
// working directory when cfgFile is empty. A missing config file is not an
// error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("database", "strings.db")
	v.SetDefault("language", "ENGL")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("verify_writes", true)
	v.SetDefault("progress", true)

	v.SetEnvPrefix("DISCEDIT")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		v.AddConfigPath(home)
		v.AddConfigPath(".")
		v.SetConfigName("discedit")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
