package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Cache      CacheConfig
	Log        LogConfig
	Worker     WorkerConfig
	Directions DirectionsConfig
	Storage    StorageConfig
	Auth       AuthConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	AutoMigrate     bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	RegionsCacheTTL time.Duration
	MetricsCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled             bool
	ConsumerGroup       string
	StreamReadTimeout   time.Duration
	PendingReclaimAfter time.Duration
}

// DirectionsConfig - настройки внешнего провайдера маршрутов
type DirectionsConfig struct {
	BaseURL        string
	APIKey         string
	RequestTimeout int // seconds

	BreakerMaxRequests  uint32
	BreakerInterval     time.Duration
	BreakerTimeout      time.Duration
	BreakerFailureRatio float64
	BreakerMinRequests  uint32
}

// StorageConfig - настройки хранилища фотографий
type StorageConfig struct {
	Path           string
	PublicPrefix   string
	MaxUploadBytes int64
}

type AuthConfig struct {
	SessionSecret string
	SessionTTL    time.Duration
	CookieName    string
	InternalToken string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// .env is optional in containers, plain environment is enough
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        viper.GetString("API_HOST"),
			Port:        viper.GetInt("API_PORT"),
			Env:         viper.GetString("API_ENV"),
			CORSOrigins: viper.GetString("CORS_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
			AutoMigrate:     viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			RegionsCacheTTL: time.Duration(viper.GetInt("REGIONS_CACHE_TTL")) * time.Second,
			MetricsCacheTTL: time.Duration(viper.GetInt("METRICS_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:             viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:       viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout:   time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			PendingReclaimAfter: time.Duration(viper.GetInt("WORKER_PENDING_RECLAIM_AFTER")) * time.Second,
		},
		Directions: DirectionsConfig{
			BaseURL:             viper.GetString("DIRECTIONS_BASE_URL"),
			APIKey:              viper.GetString("DIRECTIONS_API_KEY"),
			RequestTimeout:      viper.GetInt("DIRECTIONS_REQUEST_TIMEOUT"),
			BreakerMaxRequests:  viper.GetUint32("DIRECTIONS_BREAKER_MAX_REQUESTS"),
			BreakerInterval:     time.Duration(viper.GetInt("DIRECTIONS_BREAKER_INTERVAL")) * time.Second,
			BreakerTimeout:      time.Duration(viper.GetInt("DIRECTIONS_BREAKER_TIMEOUT")) * time.Second,
			BreakerFailureRatio: viper.GetFloat64("DIRECTIONS_BREAKER_FAILURE_RATIO"),
			BreakerMinRequests:  viper.GetUint32("DIRECTIONS_BREAKER_MIN_REQUESTS"),
		},
		Storage: StorageConfig{
			Path:           viper.GetString("STORAGE_PATH"),
			PublicPrefix:   viper.GetString("STORAGE_PUBLIC_PREFIX"),
			MaxUploadBytes: viper.GetInt64("STORAGE_MAX_UPLOAD_BYTES"),
		},
		Auth: AuthConfig{
			SessionSecret: viper.GetString("AUTH_SESSION_SECRET"),
			SessionTTL:    time.Duration(viper.GetInt("AUTH_SESSION_TTL")) * time.Second,
			CookieName:    viper.GetString("AUTH_COOKIE_NAME"),
			InternalToken: viper.GetString("AUTH_INTERNAL_TOKEN"),
		},
	}

	cfg.applyDefaults()

	if cfg.Auth.SessionSecret == "" {
		return nil, fmt.Errorf("AUTH_SESSION_SECRET is required")
	}

	return cfg, nil
}

// Set default values if not provided
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.CORSOrigins == "" {
		c.Server.CORSOrigins = "http://localhost:3000,http://localhost:5173"
	}
	if c.Cache.RegionsCacheTTL == 0 {
		c.Cache.RegionsCacheTTL = 24 * time.Hour
	}
	if c.Cache.MetricsCacheTTL == 0 {
		c.Cache.MetricsCacheTTL = 7 * 24 * time.Hour
	}
	if c.Worker.ConsumerGroup == "" {
		c.Worker.ConsumerGroup = "route-metrics-workers"
	}
	if c.Worker.StreamReadTimeout == 0 {
		c.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if c.Worker.PendingReclaimAfter == 0 {
		c.Worker.PendingReclaimAfter = time.Minute
	}
	if c.Directions.BaseURL == "" {
		c.Directions.BaseURL = "https://maps.googleapis.com/maps/api"
	}
	if c.Directions.RequestTimeout == 0 {
		c.Directions.RequestTimeout = 10
	}
	if c.Directions.BreakerMaxRequests == 0 {
		c.Directions.BreakerMaxRequests = 3
	}
	if c.Directions.BreakerInterval == 0 {
		c.Directions.BreakerInterval = time.Minute
	}
	if c.Directions.BreakerTimeout == 0 {
		c.Directions.BreakerTimeout = 2 * time.Minute
	}
	if c.Directions.BreakerFailureRatio == 0 {
		c.Directions.BreakerFailureRatio = 0.6
	}
	if c.Directions.BreakerMinRequests == 0 {
		c.Directions.BreakerMinRequests = 10
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "./data/photos"
	}
	if c.Storage.PublicPrefix == "" {
		c.Storage.PublicPrefix = "/photos"
	}
	c.Storage.PublicPrefix = strings.TrimRight(c.Storage.PublicPrefix, "/")
	if c.Storage.MaxUploadBytes == 0 {
		c.Storage.MaxUploadBytes = 5 * 1024 * 1024
	}
	if c.Auth.SessionTTL == 0 {
		c.Auth.SessionTTL = 30 * 24 * time.Hour
	}
	if c.Auth.CookieName == "" {
		c.Auth.CookieName = "session"
	}
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

// GetDatabaseURL returns the URL form required by golang-migrate.
func (c *Config) GetDatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
