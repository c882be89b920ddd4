// Package config carga la configuración con viper: defaults, config.yaml opcional
// y variables de entorno PETPLATES_* (p.ej. PETPLATES_SERVER_PORT).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Generation GenerationConfig `mapstructure:"generation"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig: DSN vacío => repos in-memory.
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// AuthConfig: VerifyURL vacío => modo dev (header X-Debug-User-ID).
type AuthConfig struct {
	VerifyURL string        `mapstructure:"verify_url"`
	APIKey    string        `mapstructure:"api_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type CacheConfig struct {
	Driver        string        `mapstructure:"driver"` // memory | redis
	TTL           time.Duration `mapstructure:"ttl"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
}

type GenerationConfig struct {
	BestOfAttempts   int     `mapstructure:"best_of_attempts"`
	RetryFactor      int     `mapstructure:"retry_factor"`
	OverageCeiling   float64 `mapstructure:"overage_ceiling"`
	CalorieTolerance float64 `mapstructure:"calorie_tolerance"`
	ReferenceBudget  float64 `mapstructure:"reference_budget"`
	MaxBatch         int     `mapstructure:"max_batch"`
}

type RateLimitConfig struct {
	Enable bool    `mapstructure:"enable"`
	RPS    float64 `mapstructure:"rps"`
	Burst  int     `mapstructure:"burst"`
}

const envPrefix = "PETPLATES"

// Load lee configPath si viene; si no, busca config.yaml en . y ./config.
// Un archivo ausente no es error: quedan defaults + env.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "pet-plates")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "text")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("database.dsn", "")

	v.SetDefault("auth.verify_url", "")
	v.SetDefault("auth.api_key", "")
	v.SetDefault("auth.timeout", "5s")

	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.ttl", "30m")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.redis_db", 0)

	v.SetDefault("generation.best_of_attempts", 5)
	v.SetDefault("generation.retry_factor", 3)
	v.SetDefault("generation.overage_ceiling", 1.5)
	v.SetDefault("generation.calorie_tolerance", 0.25)
	v.SetDefault("generation.reference_budget", 4.0)
	v.SetDefault("generation.max_batch", 10)

	v.SetDefault("rate_limit.enable", true)
	v.SetDefault("rate_limit.rps", 5)
	v.SetDefault("rate_limit.burst", 10)
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.App.Name) == "" {
		return fmt.Errorf("app.name is required")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Auth.VerifyURL != "" && c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required with auth.verify_url")
	}
	if c.IsProduction() && c.Auth.VerifyURL == "" {
		return fmt.Errorf("auth.verify_url is required in production")
	}
	switch c.Cache.Driver {
	case "memory", "redis":
	default:
		return fmt.Errorf("cache.driver must be memory or redis, got %q", c.Cache.Driver)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive")
	}
	g := c.Generation
	if g.BestOfAttempts < 1 || g.RetryFactor < 1 || g.MaxBatch < 1 {
		return fmt.Errorf("generation: best_of_attempts, retry_factor and max_batch must be >= 1")
	}
	if g.OverageCeiling <= 1 {
		return fmt.Errorf("generation.overage_ceiling must be > 1")
	}
	if g.CalorieTolerance <= 0 || g.ReferenceBudget <= 0 {
		return fmt.Errorf("generation: calorie_tolerance and reference_budget must be positive")
	}
	if c.RateLimit.Enable && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1) {
		return fmt.Errorf("rate_limit: rps and burst must be positive when enabled")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
