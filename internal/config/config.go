package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // zone database for app.timezone on minimal images

	"github.com/Dhoini/Admin-panel/internal/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Gateway drivers
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverREST     = "rest"
)

// Config представляет структуру конфигурации для приложения.
type Config struct {
	App struct {
		Port     string `mapstructure:"port"`
		Env      string `mapstructure:"env"`
		Timezone string `mapstructure:"timezone"`
	} `mapstructure:"app"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	Gateway struct {
		Driver string `mapstructure:"driver"`
	} `mapstructure:"gateway"`
	Database struct {
		DSN            string        `mapstructure:"dsn"`
		MaxConns       int32         `mapstructure:"max_conns"`
		ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	} `mapstructure:"database"`
	Rest struct {
		URL     string        `mapstructure:"url"`
		APIKey  string        `mapstructure:"api_key"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"rest"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	Reports struct {
		TTL time.Duration `mapstructure:"ttl"`
	} `mapstructure:"reports"`
	Kafka struct {
		Enabled bool     `mapstructure:"enabled"`
		Brokers []string `mapstructure:"brokers"`
		Topic   string   `mapstructure:"topic"`
	} `mapstructure:"kafka"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
	Server struct {
		ReadTimeout     time.Duration `mapstructure:"read_timeout"`
		WriteTimeout    time.Duration `mapstructure:"write_timeout"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	} `mapstructure:"server"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.timezone", "UTC")
	v.SetDefault("log.level", "info")
	v.SetDefault("gateway.driver", DriverMemory)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.connect_timeout", 30*time.Second)
	v.SetDefault("rest.url", "")
	v.SetDefault("rest.api_key", "")
	v.SetDefault("rest.timeout", 10*time.Second)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("reports.ttl", 15*time.Minute)
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "adminpanel.audit")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
}

// LoadConfig загружает конфигурацию из файла или переменных окружения.
// The file is optional; environment variables such as GATEWAY_DRIVER or
// DATABASE_DSN override it. A .env file is read outside production.
func LoadConfig(path string) (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv() // Чтение переменных окружения

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	var errs domain.ValidationErrors

	if c.App.Port == "" {
		errs.Add("app.port", "is required")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		errs.Add("app.timezone", fmt.Sprintf("unknown time zone %q", c.App.Timezone))
	}

	switch c.Gateway.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Database.DSN == "" {
			errs.Add("database.dsn", "is required for the postgres driver")
		}
	case DriverREST:
		if c.Rest.URL == "" {
			errs.Add("rest.url", "is required for the rest driver")
		}
		if c.Rest.APIKey == "" {
			errs.Add("rest.api_key", "is required for the rest driver")
		}
	default:
		errs.Add("gateway.driver", fmt.Sprintf("must be one of %s, %s, %s", DriverMemory, DriverPostgres, DriverREST))
	}

	if c.Reports.TTL <= 0 {
		errs.Add("reports.ttl", "must be positive")
	}
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			errs.Add("kafka.brokers", "is required when kafka is enabled")
		}
		if c.Kafka.Topic == "" {
			errs.Add("kafka.topic", "is required when kafka is enabled")
		}
	}

	if errs.HasErrors() {
		return fmt.Errorf("invalid configuration: %w", errs)
	}
	return nil
}

// IsProduction сообщает, запущено ли приложение в production
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Location возвращает часовой пояс приложения
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
