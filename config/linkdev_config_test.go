package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8001", cfg.Port)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, "linkdev", cfg.MongoDBName)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL())
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.False(t, cfg.AllowReRequestAfterDecline)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MONGO_URL", "mongodb://db:27017")
	t.Setenv("DB_NAME", "linkdev_test")
	t.Setenv("JWT_SECRET_KEY", "s3cret")
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRE_MINUTES", "5")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("CONNECTIONS_ALLOW_REREQUEST_AFTER_DECLINE", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db:27017", cfg.MongoURL)
	assert.Equal(t, "linkdev_test", cfg.MongoDBName)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 5*time.Minute, cfg.TokenTTL())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.True(t, cfg.AllowReRequestAfterDecline)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linkdev.yaml")
	content := "port: \"9000\"\ndb_name: from_file\nbcrypt_cost: 4\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "from_file", cfg.MongoDBName)
	assert.Equal(t, 4, cfg.BcryptCost)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:             "8001",
			Environment:      "development",
			APIPrefix:        "/api",
			MongoURL:         "mongodb://localhost:27017",
			MongoDBName:      "linkdev",
			JWTSecret:        "secret",
			JWTExpireMinutes: 30,
			BcryptCost:       10,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"dev secret in production", func(c *Config) {
			c.Environment = "production"
			c.JWTSecret = devJWTSecret
		}, true},
		{"zero ttl", func(c *Config) { c.JWTExpireMinutes = 0 }, true},
		{"bcrypt cost too low", func(c *Config) { c.BcryptCost = 2 }, true},
		{"prefix without slash", func(c *Config) { c.APIPrefix = "api" }, true},
		{"empty prefix allowed", func(c *Config) { c.APIPrefix = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
