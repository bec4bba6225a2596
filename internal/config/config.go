package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	Log        LogConfig
	CORS       CORSConfig
	Oracle     OracleConfig
	Validation ValidationConfig
	Auth       AuthConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OracleConfig holds settings for the external validation oracle.
type OracleConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	APIKey      string `mapstructure:"api_key"`
	Deployment  string `mapstructure:"deployment"`
	APIVersion  string `mapstructure:"api_version"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// ValidationConfig holds pipeline behavior settings.
//
// Mode selects between the two extraction philosophies: "strict" requires at
// least two confidently extracted attributes and instructs the oracle never
// to infer values; "permissive" accepts a single extracted attribute and lets
// the oracle fill gaps with WARN verdicts.
//
// DefaultStatus is the verdict assigned to oracle validation entries that
// arrive without a status ("FAIL" or "PASS").
type ValidationConfig struct {
	Mode          string `mapstructure:"mode"`
	DefaultStatus string `mapstructure:"default_status"`
}

// AuthConfig holds bearer-token settings. Auth is disabled when Secret is
// empty.
type AuthConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// Enabled reports whether bearer-token auth should guard the API.
func (a *AuthConfig) Enabled() bool {
	return a.Secret != ""
}

// Load reads configuration from environment variables with the CABLECHECK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CABLECHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "cablecheck")
	v.SetDefault("db.password", "cablecheck_secret")
	v.SetDefault("db.name", "cablecheck_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:3001,http://127.0.0.1:3001")

	// Oracle defaults
	v.SetDefault("oracle.endpoint", "")
	v.SetDefault("oracle.api_key", "")
	v.SetDefault("oracle.deployment", "gpt-4o")
	v.SetDefault("oracle.api_version", "2024-02-01")
	v.SetDefault("oracle.timeout_secs", 60)

	// Validation defaults
	v.SetDefault("validation.mode", "strict")
	v.SetDefault("validation.default_status", "FAIL")

	// Auth defaults (disabled unless a secret is set)
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.issuer", "cablecheck")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "CABLECHECK_SERVER_PORT",
		"server.read_timeout":       "CABLECHECK_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "CABLECHECK_SERVER_WRITE_TIMEOUT",
		"server.environment":        "CABLECHECK_SERVER_ENVIRONMENT",
		"db.host":                   "CABLECHECK_DB_HOST",
		"db.port":                   "CABLECHECK_DB_PORT",
		"db.user":                   "CABLECHECK_DB_USER",
		"db.password":               "CABLECHECK_DB_PASSWORD",
		"db.name":                   "CABLECHECK_DB_NAME",
		"db.sslmode":                "CABLECHECK_DB_SSLMODE",
		"db.max_open":               "CABLECHECK_DB_MAX_OPEN",
		"db.max_idle":               "CABLECHECK_DB_MAX_IDLE",
		"log.level":                 "CABLECHECK_LOG_LEVEL",
		"log.format":                "CABLECHECK_LOG_FORMAT",
		"cors.allowed_origins":      "CABLECHECK_CORS_ALLOWED_ORIGINS",
		"oracle.endpoint":           "CABLECHECK_ORACLE_ENDPOINT",
		"oracle.api_key":            "CABLECHECK_ORACLE_API_KEY",
		"oracle.deployment":         "CABLECHECK_ORACLE_DEPLOYMENT",
		"oracle.api_version":        "CABLECHECK_ORACLE_API_VERSION",
		"oracle.timeout_secs":       "CABLECHECK_ORACLE_TIMEOUT_SECS",
		"validation.mode":           "CABLECHECK_VALIDATION_MODE",
		"validation.default_status": "CABLECHECK_VALIDATION_DEFAULT_STATUS",
		"auth.secret":               "CABLECHECK_AUTH_SECRET",
		"auth.issuer":               "CABLECHECK_AUTH_ISSUER",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if CABLECHECK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CABLECHECK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitAndTrim(v.GetString("cors.allowed_origins")),
	}
	cfg.Oracle = OracleConfig{
		Endpoint:    v.GetString("oracle.endpoint"),
		APIKey:      v.GetString("oracle.api_key"),
		Deployment:  v.GetString("oracle.deployment"),
		APIVersion:  v.GetString("oracle.api_version"),
		TimeoutSecs: v.GetInt("oracle.timeout_secs"),
	}
	cfg.Validation = ValidationConfig{
		Mode:          v.GetString("validation.mode"),
		DefaultStatus: v.GetString("validation.default_status"),
	}
	cfg.Auth = AuthConfig{
		Secret: v.GetString("auth.secret"),
		Issuer: v.GetString("auth.issuer"),
	}

	if cfg.Validation.Mode != "strict" && cfg.Validation.Mode != "permissive" {
		return nil, fmt.Errorf("invalid validation.mode %q: must be strict or permissive", cfg.Validation.Mode)
	}
	if cfg.Validation.DefaultStatus != "FAIL" && cfg.Validation.DefaultStatus != "PASS" {
		return nil, fmt.Errorf("invalid validation.default_status %q: must be FAIL or PASS", cfg.Validation.DefaultStatus)
	}

	return cfg, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
