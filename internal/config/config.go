// Package config reads server configuration from the environment into
// one typed struct. main loads .env first (godotenv), then Get
// processes and validates everything in one place.
package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config is the full server configuration.
type Config struct {
	Dev      bool   `default:"false"`
	Port     string `default:"5175"`
	LogLevel string `split_words:"true" default:"info"`

	DBPath       string `envconfig:"DB_PATH" default:"./data/quintle.db"`
	ClientOrigin string `split_words:"true" default:"http://localhost:5173"`

	JWTSecret      string `envconfig:"JWT_SECRET" default:"dev_secret_change_me"`
	JWTExpiresDays int    `envconfig:"JWT_EXPIRES_DAYS" default:"14"`
	CookieName     string `split_words:"true" default:"quintle_token"`

	// DailySalt seeds the date→word mapping. Changing it remaps the
	// entire daily sequence, past and future.
	DailySalt string `split_words:"true" default:"quintle_daily_v1"`

	// Optional word-list overrides; embedded defaults are used when
	// unset.
	AnswersFile string `split_words:"true" default:""`
	AllowedFile string `split_words:"true" default:""`
}

// Get processes the environment and validates the result.
func Get() (*Config, error) {
	res := &Config{}
	if err := envconfig.Process("", res); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return validate(res)
}

func validate(conf *Config) (*Config, error) {
	var errs []string
	if conf.Port == "" {
		errs = append(errs, "port is required")
	}
	if conf.DBPath == "" {
		errs = append(errs, "db path is required")
	}
	if conf.JWTExpiresDays <= 0 {
		errs = append(errs, fmt.Sprintf("jwt expiry %d must be positive", conf.JWTExpiresDays))
	}
	if conf.CookieName == "" {
		errs = append(errs, "cookie name is required")
	}
	if conf.DailySalt == "" {
		errs = append(errs, "daily salt is required")
	}
	if conf.AllowedFile != "" && conf.AnswersFile == "" {
		errs = append(errs, "allowed file override requires an answers file")
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid config: %s", strings.Join(errs, ", "))
	}
	return conf, nil
}
