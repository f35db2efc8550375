package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Defaults applied before reading any source.
const (
	defaultPort                = 8080
	defaultLogLevel            = "info"
	defaultAccessTokenMinutes  = 15
	defaultRefreshTokenMinutes = 7 * 24 * 60
	defaultGraderModel         = "gemini-2.0-flash"
	defaultGraderRetries       = 3
	defaultGraderRetryDelay    = 2
)

// Load reads configuration from an optional config.yaml in the working
// directory and from environment variables with the WORDBANK_ prefix
// (e.g. WORDBANK_DATABASE_URL). Environment variables take precedence over
// file values. The result is validated before being returned.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", defaultPort)
	v.SetDefault("server.log_level", defaultLogLevel)
	v.SetDefault("auth.access_token_minutes", defaultAccessTokenMinutes)
	v.SetDefault("auth.refresh_token_minutes", defaultRefreshTokenMinutes)
	v.SetDefault("grader.model", defaultGraderModel)
	v.SetDefault("grader.max_retries", defaultGraderRetries)
	v.SetDefault("grader.retry_delay_seconds", defaultGraderRetryDelay)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("WORDBANK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars may carry everything.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate runs struct-tag validation and reports the first offending field.
func validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		first := validationErrs[0]
		return fmt.Errorf(
			"invalid configuration: field %s failed %q validation",
			first.Namespace(),
			first.Tag(),
		)
	}

	return fmt.Errorf("invalid configuration: %w", err)
}
