package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all client configuration
type Config struct {
	App      AppConfig
	API      APIConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Callback CallbackConfig
	Payment  PaymentConfig
}

// AppConfig holds application-level settings
type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	LogLevel    string
}

// APIConfig holds settings for the storefront REST backend
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// StorageConfig selects where session credentials are persisted
type StorageConfig struct {
	// Backend is one of "file", "redis", "memory"
	Backend string
	// Path is the directory for the file backend
	Path string
}

// RedisConfig holds connection settings for the redis storage backend
type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Addr returns the Redis address
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// CallbackConfig holds settings for the local payment callback server
type CallbackConfig struct {
	Host string
	Port int
}

// Addr returns the callback listen address
func (c *CallbackConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// PaymentConfig holds payment flow defaults
type PaymentConfig struct {
	// Widget selects the payment widget implementation: "mock" or
	// "callback"
	Widget      string
	Currency    string
	StoreName   string
	Description string
	ThemeColor  string
}

// Load loads configuration from environment variables and an optional
// .env file
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// .env is optional; environment variables alone are fine
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{}
	bindConfig(v, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "unibuy-client")
	v.SetDefault("APP_ENVIRONMENT", "development")
	v.SetDefault("APP_LOG_LEVEL", "info")

	v.SetDefault("API_BASE_URL", "http://localhost:8081/api")
	v.SetDefault("API_TIMEOUT", "15s")

	v.SetDefault("STORAGE_BACKEND", "file")
	v.SetDefault("STORAGE_PATH", ".unibuy")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_DIAL_TIMEOUT", "5s")
	v.SetDefault("REDIS_READ_TIMEOUT", "3s")
	v.SetDefault("REDIS_WRITE_TIMEOUT", "3s")

	v.SetDefault("CALLBACK_HOST", "127.0.0.1")
	v.SetDefault("CALLBACK_PORT", 8975)

	v.SetDefault("PAYMENT_WIDGET", "mock")
	v.SetDefault("PAYMENT_CURRENCY", "INR")
	v.SetDefault("PAYMENT_STORE_NAME", "E-Commerce Store")
	v.SetDefault("PAYMENT_DESCRIPTION", "Payment for your order")
	v.SetDefault("PAYMENT_THEME_COLOR", "#3399cc")
}

func bindConfig(v *viper.Viper, cfg *Config) {
	cfg.App.Name = v.GetString("APP_NAME")
	cfg.App.Environment = v.GetString("APP_ENVIRONMENT")
	cfg.App.LogLevel = v.GetString("APP_LOG_LEVEL")

	cfg.API.BaseURL = strings.TrimRight(v.GetString("API_BASE_URL"), "/")
	cfg.API.Timeout = v.GetDuration("API_TIMEOUT")

	cfg.Storage.Backend = v.GetString("STORAGE_BACKEND")
	cfg.Storage.Path = v.GetString("STORAGE_PATH")

	cfg.Redis.Host = v.GetString("REDIS_HOST")
	cfg.Redis.Port = v.GetInt("REDIS_PORT")
	cfg.Redis.Password = v.GetString("REDIS_PASSWORD")
	cfg.Redis.DB = v.GetInt("REDIS_DB")
	cfg.Redis.DialTimeout = v.GetDuration("REDIS_DIAL_TIMEOUT")
	cfg.Redis.ReadTimeout = v.GetDuration("REDIS_READ_TIMEOUT")
	cfg.Redis.WriteTimeout = v.GetDuration("REDIS_WRITE_TIMEOUT")

	cfg.Callback.Host = v.GetString("CALLBACK_HOST")
	cfg.Callback.Port = v.GetInt("CALLBACK_PORT")

	cfg.Payment.Widget = v.GetString("PAYMENT_WIDGET")
	cfg.Payment.Currency = v.GetString("PAYMENT_CURRENCY")
	cfg.Payment.StoreName = v.GetString("PAYMENT_STORE_NAME")
	cfg.Payment.Description = v.GetString("PAYMENT_DESCRIPTION")
	cfg.Payment.ThemeColor = v.GetString("PAYMENT_THEME_COLOR")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API base URL is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("API timeout must be positive")
	}
	switch c.Storage.Backend {
	case "file", "redis", "memory":
	default:
		return fmt.Errorf("unsupported storage backend: %s", c.Storage.Backend)
	}
	if c.Storage.Backend == "file" && c.Storage.Path == "" {
		return fmt.Errorf("storage path is required for the file backend")
	}
	switch c.Payment.Widget {
	case "mock", "callback":
	default:
		return fmt.Errorf("unsupported payment widget: %s", c.Payment.Widget)
	}
	if c.Callback.Port <= 0 || c.Callback.Port > 65535 {
		return fmt.Errorf("invalid callback port: %d", c.Callback.Port)
	}
	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
