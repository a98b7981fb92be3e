package config

import (
	"fmt"
	"time"

	"github.com/gookit/config/v2"
	"github.com/gookit/config/v2/yaml"
)

type DatabaseConfig struct {
	Host     string `config:"host"`
	Port     string `config:"port"`
	User     string `config:"user"`
	Password string `config:"password"`
	DBName   string `config:"dbname"`
}

type CacheConfig struct {
	MaxEntries     int `config:"max_entries"`
	TTLSeconds     int `config:"ttl_seconds"`
	CleanupSeconds int `config:"cleanup_seconds"`
}

type Config struct {
	Port     string         `config:"port"`
	LogLevel string         `config:"log_level"`
	DB       DatabaseConfig `config:"db"`
	Cache    CacheConfig    `config:"cache"`
}

// Load собирает конфигурацию: умолчания в коде,
// поверх них config.yml (если есть), значения вида ${ENV} разворачиваются
func Load() (*Config, error) {
	config.WithOptions(func(opt *config.Options) {
		opt.ParseEnv = true
		opt.DecoderConfig.TagName = "config"
	})
	config.AddDriver(yaml.Driver)

	cfg := &Config{
		Port:     "8080",
		LogLevel: "info",
		DB: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "todo_user",
			Password: "todo_pass",
			DBName:   "todo_db",
		},
		Cache: CacheConfig{
			MaxEntries:     1024,
			TTLSeconds:     300,
			CleanupSeconds: 60,
		},
	}

	if err := config.LoadExists("config.yml"); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	if err := config.BindStruct("", cfg); err != nil {
		return nil, fmt.Errorf("failed to bind config: %w", err)
	}
	return cfg, nil
}

func (db *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		db.Host, db.Port, db.User, db.Password, db.DBName)
}

func (c *CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

func (c *CacheConfig) CleanupInterval() time.Duration {
	return time.Duration(c.CleanupSeconds) * time.Second
}
