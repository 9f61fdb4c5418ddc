package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DEV", "PORT", "LOG_LEVEL", "DB_PATH", "CLIENT_ORIGIN",
		"JWT_SECRET", "JWT_EXPIRES_DAYS", "COOKIE_NAME", "DAILY_SALT",
		"ANSWERS_FILE", "ALLOWED_FILE",
	} {
		// Setenv registers the restore; Unsetenv makes the variable
		// genuinely absent so defaults apply.
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestGetDefaults(t *testing.T) {
	clearEnv(t)

	conf, err := Get()
	require.NoError(t, err)
	assert.Equal(t, "5175", conf.Port)
	assert.Equal(t, "info", conf.LogLevel)
	assert.Equal(t, 14, conf.JWTExpiresDays)
	assert.Equal(t, "quintle_daily_v1", conf.DailySalt)
	assert.False(t, conf.Dev)
}

func TestGetOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("DAILY_SALT", "prod_salt_2024")
	t.Setenv("JWT_EXPIRES_DAYS", "7")
	t.Setenv("DEV", "true")

	conf, err := Get()
	require.NoError(t, err)
	assert.Equal(t, "8080", conf.Port)
	assert.Equal(t, "prod_salt_2024", conf.DailySalt)
	assert.Equal(t, 7, conf.JWTExpiresDays)
	assert.True(t, conf.Dev)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "non-positive jwt expiry",
			mutate:  func(c *Config) { c.JWTExpiresDays = 0 },
			wantErr: "jwt expiry",
		},
		{
			name:    "empty salt",
			mutate:  func(c *Config) { c.DailySalt = "" },
			wantErr: "daily salt",
		},
		{
			name:    "allowed file without answers file",
			mutate:  func(c *Config) { c.AllowedFile = "/tmp/allowed.txt" },
			wantErr: "answers file",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := &Config{
				Port:           "5175",
				DBPath:         "./data/quintle.db",
				JWTExpiresDays: 14,
				CookieName:     "quintle_token",
				DailySalt:      "salt",
			}
			tt.mutate(conf)
			_, err := validate(conf)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
