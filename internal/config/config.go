package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Auth      AuthConfig
	Retention RetentionConfig
	Log       LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
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
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	StationsCacheTTL time.Duration
	LinesCacheTTL    time.Duration
}

type AuthConfig struct {
	SecretKey string
	TokenTTL  time.Duration
}

type RetentionConfig struct {
	// RunRetentionDays is how many days of train runs stay queryable
	// before the worker purges them.
	RunRetentionDays int
	SweepInterval    time.Duration
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
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
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			StationsCacheTTL: time.Duration(viper.GetInt("STATIONS_CACHE_TTL")) * time.Second,
			LinesCacheTTL:    time.Duration(viper.GetInt("LINES_CACHE_TTL")) * time.Second,
		},
		Auth: AuthConfig{
			SecretKey: viper.GetString("AUTH_SECRET_KEY"),
			TokenTTL:  time.Duration(viper.GetInt("AUTH_TOKEN_TTL")) * time.Second,
		},
		Retention: RetentionConfig{
			RunRetentionDays: viper.GetInt("RUN_RETENTION_DAYS"),
			SweepInterval:    time.Duration(viper.GetInt("RETENTION_SWEEP_INTERVAL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	if cfg.Auth.SecretKey == "" {
		return nil, fmt.Errorf("AUTH_SECRET_KEY is required")
	}

	// Set default values if not provided
	if cfg.Cache.StationsCacheTTL == 0 {
		cfg.Cache.StationsCacheTTL = 5 * time.Minute
	}
	if cfg.Cache.LinesCacheTTL == 0 {
		cfg.Cache.LinesCacheTTL = 5 * time.Minute
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = 24 * time.Hour
	}
	if cfg.Retention.RunRetentionDays == 0 {
		cfg.Retention.RunRetentionDays = 90
	}
	if cfg.Retention.SweepInterval == 0 {
		cfg.Retention.SweepInterval = time.Hour
	}

	return cfg, nil
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

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
