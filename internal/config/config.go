package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Session  SessionConfig  `yaml:"session"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Contact  ContactConfig  `yaml:"contact"`
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig contains the database connection settings.
type DatabaseConfig struct {
	URL             string        `yaml:"url"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
	UseMock         bool          `yaml:"use_mock"`
}

// LoggingConfig selects the minimum log level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SessionConfig controls the visitor session cookie that carries preferences.
type SessionConfig struct {
	Lifetime     time.Duration `yaml:"lifetime"`
	CookieName   string        `yaml:"cookie_name"`
	CookieDomain string        `yaml:"cookie_domain"`
	CookieSecure bool          `yaml:"cookie_secure"`
}

// CatalogConfig points the product fetcher at the public catalog API.
type CatalogConfig struct {
	BaseURL string        `yaml:"base_url"`
	Limit   int           `yaml:"limit"`
	Timeout time.Duration `yaml:"timeout"`
}

// ContactConfig tunes the simulated contact submission.
type ContactConfig struct {
	SubmitDelay    time.Duration `yaml:"submit_delay"`
	BannerDuration time.Duration `yaml:"banner_duration"`
}

// Load inspects the environment and builds a Config value. When CONFIG_FILE
// names a YAML document it is read first and environment variables override it.
func Load() (Config, error) {
	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = fileCfg
	}

	cfg.Server.Addr = firstNonEmpty(
		os.Getenv("SERVER_ADDR"),
		os.Getenv("ADDR"),
		cfg.Server.Addr,
		":8080",
	)

	cfg.Database.URL = firstNonEmpty(os.Getenv("DATABASE_URL"), os.Getenv("DB_URL"), cfg.Database.URL)
	cfg.Database.MaxIdleConns = parseIntWithDefault(os.Getenv("DATABASE_MAX_IDLE_CONNS"), cfg.Database.MaxIdleConns)
	cfg.Database.MaxOpenConns = parseIntWithDefault(os.Getenv("DATABASE_MAX_OPEN_CONNS"), cfg.Database.MaxOpenConns)
	cfg.Database.ConnMaxLifetime = parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_LIFETIME"), cfg.Database.ConnMaxLifetime)
	cfg.Database.ConnMaxIdleTime = parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_IDLE_TIME"), cfg.Database.ConnMaxIdleTime)
	cfg.Database.UseMock = parseBoolWithDefault(os.Getenv("DATABASE_USE_MOCK"), cfg.Database.UseMock)

	cfg.Logging.Level = firstNonEmpty(os.Getenv("LOG_LEVEL"), cfg.Logging.Level, "info")

	cfg.Session.Lifetime = parseDurationWithDefault(os.Getenv("SESSION_LIFETIME"), cfg.Session.Lifetime)
	cfg.Session.CookieName = firstNonEmpty(os.Getenv("SESSION_COOKIE_NAME"), cfg.Session.CookieName)
	cfg.Session.CookieDomain = firstNonEmpty(os.Getenv("SESSION_COOKIE_DOMAIN"), cfg.Session.CookieDomain)
	cfg.Session.CookieSecure = parseBoolWithDefault(os.Getenv("SESSION_COOKIE_SECURE"), cfg.Session.CookieSecure)

	cfg.Catalog.BaseURL = firstNonEmpty(os.Getenv("CATALOG_BASE_URL"), cfg.Catalog.BaseURL)
	cfg.Catalog.Limit = parseIntWithDefault(os.Getenv("CATALOG_LIMIT"), cfg.Catalog.Limit)
	cfg.Catalog.Timeout = parseDurationWithDefault(os.Getenv("CATALOG_TIMEOUT"), cfg.Catalog.Timeout)

	cfg.Contact.SubmitDelay = parseDurationWithDefault(os.Getenv("CONTACT_SUBMIT_DELAY"), cfg.Contact.SubmitDelay)
	cfg.Contact.BannerDuration = parseDurationWithDefault(os.Getenv("CONTACT_BANNER_DURATION"), cfg.Contact.BannerDuration)

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}
	if cfg.Catalog.Limit < 0 {
		return Config{}, fmt.Errorf("catalog limit must not be negative")
	}

	return cfg, nil
}

// LoadFile reads a YAML configuration document on top of the built-in defaults.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		Server:  ServerConfig{Addr: ":8080"},
		Logging: LoggingConfig{Level: "info"},
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func parseIntWithDefault(value string, def int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseDurationWithDefault(value string, def time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseBoolWithDefault(value string, def bool) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return parsed
}
