package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Provider exposes read access to the application configuration.
// Handlers and services depend on this interface instead of the struct so
// tests can supply partial fakes.
type Provider interface {
	GetAppAddr() string
	GetAppBaseURL() string
	GetAppEnv() string
	GetSessionSecret() string
	GetSessionName() string
	GetAPIBaseURL() string
	GetIdentityURL() string
	GetIdentityAnonKey() string
	GetHTTPTimeout() time.Duration
	GetStaticDir() string
	IsProduction() bool
}

// Config holds all configuration for the application.
type Config struct {
	AppAddr         string        `validate:"required"`
	AppBaseURL      string        `validate:"required,url"`
	AppEnv          string        `validate:"oneof=dev test prod"`
	SessionSecret   string        `validate:"required,min=16"`
	SessionName     string        `validate:"required"`
	APIBaseURL      string        `validate:"required,url"`
	IdentityURL     string        `validate:"required,url"`
	IdentityAnonKey string        `validate:"required"`
	HTTPTimeout     time.Duration `validate:"gt=0"`
	StaticDir       string
}

// Defaults applied when the corresponding variable is unset.
const (
	defaultAddr        = ":8080"
	defaultBaseURL     = "http://localhost:8080"
	defaultEnv         = "dev"
	defaultSessionName = "dcapal-session"
	defaultHTTPTimeout = 10 * time.Second
	defaultStaticDir   = "web/static"
)

// New loads configuration from the .env file (if any) and environment
// variables. It exits the process when the configuration is invalid.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	timeout := defaultHTTPTimeout
	if raw := os.Getenv("HTTP_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("HTTP_TIMEOUT: %w", err)
		}
		timeout = d
	}

	cfg := &Config{
		AppAddr:         getenv("APP_ADDR", defaultAddr),
		AppBaseURL:      getenv("APP_BASE_URL", defaultBaseURL),
		AppEnv:          getenv("APP_ENV", defaultEnv),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		SessionName:     getenv("SESSION_NAME", defaultSessionName),
		APIBaseURL:      os.Getenv("DCAPAL_API"),
		IdentityURL:     os.Getenv("IDENTITY_URL"),
		IdentityAnonKey: os.Getenv("IDENTITY_ANON_KEY"),
		HTTPTimeout:     timeout,
		StaticDir:       getenv("STATIC_DIR", defaultStaticDir),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetBool parses a boolean environment variable, returning fallback when it
// is unset or malformed.
func GetBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

func (c *Config) GetAppAddr() string            { return c.AppAddr }
func (c *Config) GetAppBaseURL() string         { return c.AppBaseURL }
func (c *Config) GetAppEnv() string             { return c.AppEnv }
func (c *Config) GetSessionSecret() string      { return c.SessionSecret }
func (c *Config) GetSessionName() string        { return c.SessionName }
func (c *Config) GetAPIBaseURL() string         { return c.APIBaseURL }
func (c *Config) GetIdentityURL() string        { return c.IdentityURL }
func (c *Config) GetIdentityAnonKey() string    { return c.IdentityAnonKey }
func (c *Config) GetHTTPTimeout() time.Duration { return c.HTTPTimeout }
func (c *Config) GetStaticDir() string          { return c.StaticDir }
func (c *Config) IsProduction() bool            { return c.AppEnv == "prod" }
