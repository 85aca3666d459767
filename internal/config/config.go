package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

const (
	CacheDriverRedis  = "redis"
	CacheDriverMemory = "memory"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Scheduler SchedulerConfig
	Logging   LoggingConfig
	Health    HealthConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	URL             string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	ScanCount int64
}

type CacheConfig struct {
	Driver   string
	TTL      time.Duration
	Capacity int
}

type SchedulerConfig struct {
	WarmSpec string
	Timezone string
}

type LoggingConfig struct {
	Level  string
	Format string
}

type HealthConfig struct {
	Timeout time.Duration
}

// Load reads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Missing .env files are fine; real environment variables win.
	_ = godotenv.Load(".env")
	_ = godotenv.Load("deployments/.env")

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	config := &Config{
		Server: ServerConfig{
			Port:         v.GetString("SERVER_PORT"),
			Host:         v.GetString("SERVER_HOST"),
			Env:          v.GetString("ENV"),
			ReadTimeout:  v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("SERVER_WRITE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			URL:             v.GetString("DATABASE_URL"),
			Host:            v.GetString("DATABASE_HOST"),
			Port:            v.GetString("DATABASE_PORT"),
			Name:            v.GetString("DATABASE_NAME"),
			User:            v.GetString("DATABASE_USER"),
			Password:        v.GetString("DATABASE_PASSWORD"),
			SSLMode:         v.GetString("DATABASE_SSLMODE"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DATABASE_CONN_MAX_LIFETIME"),
		},
		Redis: RedisConfig{
			Host:      v.GetString("REDIS_HOST"),
			Port:      v.GetString("REDIS_PORT"),
			Password:  v.GetString("REDIS_PASSWORD"),
			DB:        v.GetInt("REDIS_DB"),
			ScanCount: v.GetInt64("REDIS_SCAN_COUNT"),
		},
		Cache: CacheConfig{
			Driver:   v.GetString("CACHE_DRIVER"),
			TTL:      v.GetDuration("CACHE_TTL"),
			Capacity: v.GetInt("CACHE_CAPACITY"),
		},
		Scheduler: SchedulerConfig{
			WarmSpec: v.GetString("SCHEDULER_WARM_SPEC"),
			Timezone: v.GetString("SCHEDULER_TIMEZONE"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Health: HealthConfig{
			Timeout: v.GetDuration("HEALTH_CHECK_TIMEOUT"),
		},
	}

	if config.Logging.Format == "" {
		config.Logging.Format = "json"
		if config.IsDevelopment() {
			config.Logging.Format = "text"
		}
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("ENV", "development")
	v.SetDefault("SERVER_READ_TIMEOUT", "15s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "30s")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_NAME", "fintrack")
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_SCAN_COUNT", 100)
	v.SetDefault("CACHE_DRIVER", CacheDriverRedis)
	v.SetDefault("CACHE_TTL", "1h")
	v.SetDefault("CACHE_CAPACITY", 10000)
	v.SetDefault("SCHEDULER_WARM_SPEC", "0 5 0 * * *")
	v.SetDefault("SCHEDULER_TIMEZONE", "UTC")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" && c.Database.Host == "" {
		return fmt.Errorf("DATABASE_URL or DATABASE_HOST is required")
	}

	if c.Cache.Driver != CacheDriverRedis && c.Cache.Driver != CacheDriverMemory {
		return fmt.Errorf("CACHE_DRIVER must be %q or %q, got %q", CacheDriverRedis, CacheDriverMemory, c.Cache.Driver)
	}

	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be a positive duration")
	}

	if c.Cache.Driver == CacheDriverMemory && c.Cache.Capacity <= 0 {
		return fmt.Errorf("CACHE_CAPACITY must be greater than 0")
	}

	if c.Redis.ScanCount <= 0 {
		return fmt.Errorf("REDIS_SCAN_COUNT must be greater than 0")
	}

	if c.Health.Timeout <= 0 {
		return fmt.Errorf("HEALTH_CHECK_TIMEOUT must be a positive duration")
	}

	// Validate scheduler spec
	if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow).Parse(c.Scheduler.WarmSpec); err != nil {
		return fmt.Errorf("SCHEDULER_WARM_SPEC must be a valid cron expression: %w", err)
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid location: %w", err)
	}

	return nil
}

// DSN returns the Postgres connection string
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + d.Port,
		Path:     d.Name,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

// Addr returns the Redis address
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// SchedulerLocation returns the scheduler timezone
func (c *Config) SchedulerLocation() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
