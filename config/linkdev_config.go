package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const devJWTSecret = "your-super-secret-key"

type Config struct {
	Port        string `mapstructure:"port"`
	Environment string `mapstructure:"env"`
	APIPrefix   string `mapstructure:"api_prefix"`
	LogLevel    string `mapstructure:"log_level"`

	// MongoDB
	MongoURL          string `mapstructure:"mongo_url"`
	MongoDBName       string `mapstructure:"db_name"`
	MongoTransactions bool   `mapstructure:"mongodb_transactions"`

	// Auth
	JWTSecret        string `mapstructure:"jwt_secret_key"`
	JWTExpireMinutes int    `mapstructure:"jwt_access_token_expire_minutes"`
	BcryptCost       int    `mapstructure:"bcrypt_cost"`

	// Connections
	AllowReRequestAfterDecline bool `mapstructure:"connections_allow_rerequest_after_decline"`

	// CORS
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

var defaults = map[string]any{
	"port":                            "8001",
	"env":                             "development",
	"api_prefix":                      "/api",
	"log_level":                       "info",
	"mongo_url":                       "mongodb://localhost:27017",
	"db_name":                         "linkdev",
	"mongodb_transactions":            false,
	"jwt_secret_key":                  devJWTSecret,
	"jwt_access_token_expire_minutes": 30,
	"bcrypt_cost":                     10,
	"allowed_origins":                 "*",

	"connections_allow_rerequest_after_decline": false,
}

// Load builds the config from defaults, an optional YAML file and the environment.
// Environment variables use the upper-cased key, e.g. MONGO_URL or JWT_SECRET_KEY.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.AllowedOrigins = splitList(v.GetString("allowed_origins"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot safely run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if c.MongoURL == "" {
		errs = append(errs, errors.New("MONGO_URL must not be empty"))
	}
	if c.MongoDBName == "" {
		errs = append(errs, errors.New("DB_NAME must not be empty"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY must not be empty"))
	}
	if c.IsProduction() && c.JWTSecret == devJWTSecret {
		errs = append(errs, errors.New("JWT_SECRET_KEY must be set in production"))
	}
	if c.JWTExpireMinutes <= 0 {
		errs = append(errs, errors.New("JWT_ACCESS_TOKEN_EXPIRE_MINUTES must be positive"))
	}
	// bcrypt.MinCost..bcrypt.MaxCost
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost))
	}
	if c.APIPrefix != "" && !strings.HasPrefix(c.APIPrefix, "/") {
		errs = append(errs, errors.New("API_PREFIX must start with '/'"))
	}
	return errors.Join(errs...)
}

// TokenTTL is the lifetime of issued access tokens.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpireMinutes) * time.Minute
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
