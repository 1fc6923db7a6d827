package config

import "fmt"

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

// Validate checks every field that the commands rely on
func (c *Config) Validate() error {
	if err := oneOf("log_level", c.LogLevel, validLogLevels); err != nil {
		return err
	}
	if err := oneOf("log_format", c.LogFormat, validLogFormats); err != nil {
		return err
	}
	if err := ValidateLanguage(c.Language); err != nil {
		return err
	}
	if c.Database == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	return nil
}

// ValidateLanguage checks that lang is a four character language tag made of
// printable ASCII, such as ENGL or FREN
func ValidateLanguage(lang string) error {
	if len(lang) != 4 {
		return fmt.Errorf("language %q must be exactly 4 characters", lang)
	}
	for i := 0; i < len(lang); i++ {
		if lang[i] < 0x20 || lang[i] > 0x7e {
			return fmt.Errorf("language %q contains invalid character %q", lang, lang[i])
		}
	}
	return nil
}

func oneOf(key, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("unsupported %s '%s': supported values are %v", key, value, allowed)
}
