package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Session       SessionConfig       `mapstructure:"session" validate:"required"`
	Security      SecurityConfig      `mapstructure:"security" validate:"required"`
	SMTP          SMTPConfig          `mapstructure:"smtp"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port" validate:"required,min=1,max=65535"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"required,min=1"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Source          string        `mapstructure:"source" validate:"required"`
}

type RedisConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// SessionConfig drives the inactivity timeout tracker. ExemptPathPrefixes
// lists path prefixes that never count as activity (static assets, logout,
// health probes).
type SessionConfig struct {
	CookieName         string        `mapstructure:"cookie_name" validate:"required"`
	InactivityTimeout  time.Duration `mapstructure:"inactivity_timeout" validate:"required"`
	MaxLifetime        time.Duration `mapstructure:"max_lifetime"`
	LoginPath          string        `mapstructure:"login_path" validate:"required"`
	ExemptPathPrefixes []string      `mapstructure:"exempt_path_prefixes"`
	CookieSecure       bool          `mapstructure:"cookie_secure"`
}

type SecurityConfig struct {
	BCryptCost            int           `mapstructure:"bcrypt_cost" validate:"required,min=10,max=15"`
	VerificationSecret    string        `mapstructure:"verification_secret" validate:"required,min=32"`
	VerificationTokenTTL  time.Duration `mapstructure:"verification_token_ttl" validate:"required"`
	PasswordMinLength     int           `mapstructure:"password_min_length" validate:"required,min=8"`
}

// SMTPConfig is the explicit mail transport configuration. TLS behaviour is
// part of this struct so nothing reaches for process-global TLS state.
type SMTPConfig struct {
	Host        string `mapstructure:"host" validate:"required"`
	Port        int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	FromAddress string `mapstructure:"from_address" validate:"required,email"`
	UseStartTLS bool   `mapstructure:"use_starttls"`
	MaxWorkers  int    `mapstructure:"max_workers"`
	QueueSize   int    `mapstructure:"queue_size"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

// LoadConfigFromEnv builds a Config purely from environment variables, used
// for container deployments where no config file is mounted.
func LoadConfigFromEnv() *Config {
	timeout, err := time.ParseDuration(getEnv("SESSION_INACTIVITY_TIMEOUT", "15m"))
	if err != nil {
		timeout = 15 * time.Minute
	}
	tokenTTL, err := time.ParseDuration(getEnv("VERIFICATION_TOKEN_TTL", "24h"))
	if err != nil {
		tokenTTL = 24 * time.Hour
	}

	return &Config{
		Server: ServerConfig{
			Port:              getEnvAsInt("HTTP_PORT", 8080),
			BaseURL:           getEnv("BASE_URL", "http://localhost:8080"),
			AllowedOrigins:    getEnv("ALLOWED_ORIGINS", "*"),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: 30 * time.Minute,
			ConnMaxIdleTime: 5 * time.Minute,
			Source:          getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Session: SessionConfig{
			CookieName:         getEnv("SESSION_COOKIE_NAME", "workforce_session"),
			InactivityTimeout:  timeout,
			MaxLifetime:        24 * time.Hour,
			LoginPath:          getEnv("SESSION_LOGIN_PATH", "/api/v1/auth/login"),
			ExemptPathPrefixes: strings.Split(getEnv("SESSION_EXEMPT_PREFIXES", "/static/,/api/v1/auth/logout"), ","),
			CookieSecure:       getEnv("APP_ENV", "") == "production",
		},
		Security: SecurityConfig{
			BCryptCost:           getEnvAsInt("BCRYPT_COST", 12),
			VerificationSecret:   getEnv("VERIFICATION_SECRET", ""),
			VerificationTokenTTL: tokenTTL,
			PasswordMinLength:    getEnvAsInt("PASSWORD_MIN_LENGTH", 12),
		},
		SMTP: SMTPConfig{
			Host:        getEnv("SMTP_HOST", "localhost"),
			Port:        getEnvAsInt("SMTP_PORT", 587),
			Username:    getEnv("SMTP_USERNAME", ""),
			Password:    getEnv("SMTP_PASSWORD", ""),
			FromAddress: getEnv("SMTP_FROM", "no-reply@localhost"),
			UseStartTLS: true,
			MaxWorkers:  getEnvAsInt("SMTP_MAX_WORKERS", 4),
			QueueSize:   getEnvAsInt("SMTP_QUEUE_SIZE", 64),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "json"),
			},
		},
	}
}

// ----------------- VALIDATION -----------------

var configValidator = validator.New()

func (c *Config) Validate() error {
	var errs []string

	if err := configValidator.Struct(c); err != nil {
		errs = append(errs, fmt.Sprintf("config fields: %v", err))
	}

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Session.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("session config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *SessionConfig) Validate() error {
	if c.InactivityTimeout <= 0 {
		return errors.New("inactivity_timeout must be positive")
	}
	if c.MaxLifetime > 0 && c.MaxLifetime < c.InactivityTimeout {
		return errors.New("max_lifetime cannot be shorter than inactivity_timeout")
	}
	for _, prefix := range c.ExemptPathPrefixes {
		if !strings.HasPrefix(prefix, "/") {
			return fmt.Errorf("exempt path prefix %q must start with /", prefix)
		}
	}
	return nil
}
