// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "TASKDASH"

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Repository RepositoryConfig `mapstructure:"repository"`
	Navigation NavigationConfig `mapstructure:"navigation"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Worker     WorkerConfig     `mapstructure:"worker"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	BasePath        string        `mapstructure:"base_path"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	URL            string        `mapstructure:"url"`
	MaxConnections int32         `mapstructure:"max_connections"`
	MinConnections int32         `mapstructure:"min_connections"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
}

type LoggingConfig struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

type RepositoryConfig struct {
	Type     string `mapstructure:"type"` // "postgres" или "inmemory"
	SeedFile string `mapstructure:"seed_file"`
}

type NavigationConfig struct {
	Mode string `mapstructure:"mode"` // "replace" или "push"
}

type RateLimitConfig struct {
	RPM int `mapstructure:"rpm"`
}

type WorkerConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	OverdueInterval time.Duration `mapstructure:"overdue_interval"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.base_path", "/dashboard")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000"})

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.min_connections", 2)
	v.SetDefault("database.idle_timeout", 5*time.Minute)

	v.SetDefault("logging.development", false)
	v.SetDefault("logging.level", "info")

	v.SetDefault("repository.type", "inmemory")
	v.SetDefault("repository.seed_file", "")
	v.SetDefault("navigation.mode", "replace")
	v.SetDefault("rate_limit.rpm", 100)
	v.SetDefault("worker.enabled", true)
	v.SetDefault("worker.overdue_interval", 5*time.Minute)
}

// Load reads the YAML file at path. A missing file is not an error: defaults
// and TASKDASH_* environment variables still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("не могу прочитать конфиг: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфига: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Repository.Type {
	case "inmemory":
	case "postgres":
		if c.Database.URL == "" {
			return errors.New("database.url обязателен для repository.type=postgres")
		}
	default:
		return fmt.Errorf("неизвестный repository.type %q", c.Repository.Type)
	}

	if !strings.HasPrefix(c.Server.BasePath, "/") {
		return fmt.Errorf("server.base_path должен начинаться с '/': %q", c.Server.BasePath)
	}
	if c.RateLimit.RPM < 0 {
		return fmt.Errorf("rate_limit.rpm не может быть отрицательным: %d", c.RateLimit.RPM)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}
