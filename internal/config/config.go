package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"db"`
	OIDC      OIDCConfig      `mapstructure:"oidc"`
	Log       LogConfig       `mapstructure:"log"`
	Session   SessionConfig   `mapstructure:"session"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Port           string    `mapstructure:"port"`
	BaseURL        string    `mapstructure:"base_url"`
	FrontendOrigin string    `mapstructure:"frontend_origin"`
	TLS            TLSConfig `mapstructure:"tls"`
}

// TLSConfig holds TLS-specific configuration.
type TLSConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	CertFile string `mapstructure:"certFile"`
	KeyFile  string `mapstructure:"keyFile"`
}

// DBConfig holds database-specific configuration.
type DBConfig struct {
	Driver string `mapstructure:"driver"` // "mysql" or "sqlite3"
	DSN    string `mapstructure:"dsn"`
}

// OIDCConfig holds OIDC client configuration. An empty IssuerURL disables OIDC login.
type OIDCConfig struct {
	IssuerURL    string `mapstructure:"issuer_url"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level   string `mapstructure:"level"`   // e.g., "debug", "info", "warn", "error"
	Format  string `mapstructure:"format"`  // e.g., "json", "console"
	Service string `mapstructure:"service"` // added to every entry when set
}

// SessionConfig holds browser session settings.
type SessionConfig struct {
	Lifetime int `mapstructure:"lifetime"` // hours
}

// CacheConfig selects and configures the public response cache.
type CacheConfig struct {
	Driver     string `mapstructure:"driver"` // "sqlite", "redis" or "none"
	FilePath   string `mapstructure:"file_path"`
	RedisURL   string `mapstructure:"redis_url"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

// AuthConfig holds credentials for the admin surface.
type AuthConfig struct {
	AdminAPIKey       string   `mapstructure:"admin_api_key"`
	AdminPasswordHash string   `mapstructure:"admin_password_hash"`
	JWTSecret         string   `mapstructure:"jwt_secret"`
	TokenTTLMinutes   int      `mapstructure:"token_ttl_minutes"`
	AdminEmails       []string `mapstructure:"admin_emails"`
}

// RateLimitConfig configures the fixed-window limiter on public write endpoints.
type RateLimitConfig struct {
	Requests      int `mapstructure:"requests"`
	WindowSeconds int `mapstructure:"window_seconds"`
}

// LoadConfig reads configuration from file, a local .env file and environment variables.
func LoadConfig() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()

	// Set default values
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.frontend_origin", "http://localhost:3000")
	v.SetDefault("server.tls.enabled", false)
	v.SetDefault("server.tls.certFile", "")
	v.SetDefault("server.tls.keyFile", "")
	v.SetDefault("db.driver", "mysql")
	v.SetDefault("db.dsn", "")
	v.SetDefault("oidc.issuer_url", "")
	v.SetDefault("oidc.client_id", "")
	v.SetDefault("oidc.client_secret", "")
	v.SetDefault("oidc.redirect_url", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.service", "portfolio-api")
	v.SetDefault("session.lifetime", 24)
	v.SetDefault("cache.driver", "sqlite")
	v.SetDefault("cache.file_path", "cache.db")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl_seconds", 60)
	v.SetDefault("auth.admin_api_key", "")
	v.SetDefault("auth.admin_password_hash", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl_minutes", 60)
	v.SetDefault("auth.admin_emails", []string{})
	v.SetDefault("rate_limit.requests", 10)
	v.SetDefault("rate_limit.window_seconds", 60)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/go-portfolio-app/")
	v.AddConfigPath("$HOME/.go-portfolio-app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	v.SetEnvPrefix("PORTFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// DATABASE_URL is the conventional name used by hosting providers and the seed script.
	if err := v.BindEnv("db.dsn", "PORTFOLIO_DB_DSN", "DATABASE_URL"); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadDotEnv exports the variables of a dotenv file that are not already set.
// A missing file is not an error.
func loadDotEnv(path string) error {
	env := viper.New()
	env.SetConfigFile(path)
	env.SetConfigType("env")
	if err := env.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	for _, key := range env.AllKeys() {
		name := strings.ToUpper(key)
		if _, exists := os.LookupEnv(name); exists {
			continue
		}
		if err := os.Setenv(name, env.GetString(key)); err != nil {
			return err
		}
	}
	return nil
}
