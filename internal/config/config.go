package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service and the CLI.
type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Redis   RedisConfig
	Search  SearchConfig
	Network NetworkConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port              int
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// StoreConfig selects where search runs are recorded.
type StoreConfig struct {
	Driver      string // sqlite, postgres or none
	DBPath      string
	DatabaseURL string
}

// RedisConfig enables the plan cache when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// SearchConfig holds defaults for searches that leave fields unset.
type SearchConfig struct {
	Hub           string
	Start         string // RFC3339 or HH:MM (UTC, today)
	Window        time.Duration
	Turnaround    time.Duration
	DurationScale float64
	Timeout       time.Duration // bounds one enumeration
}

type NetworkConfig struct {
	Path string // empty selects the builtin network
}

type LogConfig struct {
	Level       string
	Development bool
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverNone     = "none"
)

// Addr returns the HTTP listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

func (r RedisConfig) Enabled() bool { return strings.TrimSpace(r.Addr) != "" }

// StartTime resolves Start against now. An HH:MM value is taken on now's UTC date.
func (s SearchConfig) StartTime(now time.Time) (time.Time, error) {
	raw := strings.TrimSpace(s.Start)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	hm, err := time.Parse("15:04", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("search start %q: want RFC3339 or HH:MM", s.Start)
	}
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, hm.Hour(), hm.Minute(), 0, 0, time.UTC), nil
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	return LoadWith(viper.New())
}

// LoadWith resolves configuration from v, which may carry bound flags or a
// config file. Environment variables always apply.
func LoadWith(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Port:              v.GetInt("SERVER_PORT"),
			ReadHeaderTimeout: v.GetDuration("SERVER_READ_HEADER_TIMEOUT"),
			ReadTimeout:       v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:      v.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:       v.GetDuration("SERVER_IDLE_TIMEOUT"),
			ShutdownTimeout:   v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
		},
		Store: StoreConfig{
			Driver:      strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
			DBPath:      v.GetString("DB_PATH"),
			DatabaseURL: v.GetString("DATABASE_URL"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      v.GetDuration("REDIS_TTL"),
		},
		Search: SearchConfig{
			Hub:           strings.TrimSpace(v.GetString("SEARCH_HUB")),
			Start:         v.GetString("SEARCH_START"),
			Window:        v.GetDuration("SEARCH_WINDOW"),
			Turnaround:    v.GetDuration("SEARCH_TURNAROUND"),
			DurationScale: v.GetFloat64("SEARCH_DURATION_SCALE"),
			Timeout:       v.GetDuration("SEARCH_TIMEOUT"),
		},
		Network: NetworkConfig{
			Path: v.GetString("NETWORK_PATH"),
		},
		Log: LogConfig{
			Level:       v.GetString("LOG_LEVEL"),
			Development: v.GetBool("LOG_DEVELOPMENT"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_READ_HEADER_TIMEOUT", "5s")
	v.SetDefault("SERVER_READ_TIMEOUT", "10s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "60s")
	v.SetDefault("SERVER_IDLE_TIMEOUT", "60s")
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "10s")

	v.SetDefault("STORE_DRIVER", DriverSQLite)
	v.SetDefault("DB_PATH", "data/app.db")
	v.SetDefault("DATABASE_URL", "")

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_TTL", "10m")

	v.SetDefault("SEARCH_HUB", "SAW")
	v.SetDefault("SEARCH_START", "06:00")
	v.SetDefault("SEARCH_WINDOW", "16h")
	v.SetDefault("SEARCH_TURNAROUND", "30m")
	v.SetDefault("SEARCH_DURATION_SCALE", 1.0)
	v.SetDefault("SEARCH_TIMEOUT", "30s")

	v.SetDefault("NETWORK_PATH", "")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DEVELOPMENT", false)
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Store.DBPath) == "" {
			return fmt.Errorf("DB_PATH is required for the sqlite store")
		}
	case DriverPostgres:
		if strings.TrimSpace(c.Store.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	case DriverNone:
	default:
		return fmt.Errorf("STORE_DRIVER %q: want sqlite, postgres or none", c.Store.Driver)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT %d out of range", c.Server.Port)
	}
	if c.Search.Window <= 0 {
		return fmt.Errorf("SEARCH_WINDOW must be positive, got %s", c.Search.Window)
	}
	if c.Search.Turnaround < 0 {
		return fmt.Errorf("SEARCH_TURNAROUND must not be negative, got %s", c.Search.Turnaround)
	}
	if c.Search.Timeout <= 0 {
		return fmt.Errorf("SEARCH_TIMEOUT must be positive, got %s", c.Search.Timeout)
	}
	if _, err := c.Search.StartTime(time.Now()); err != nil {
		return err
	}
	return nil
}
