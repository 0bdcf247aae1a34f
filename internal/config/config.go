package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Weather   WeatherConfig   `mapstructure:"weather"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Log       LogConfig       `mapstructure:"log"`
	Migration MigrationConfig `mapstructure:"migration"`
}

type ServerConfig struct {
	Port           int    `mapstructure:"port"`
	Mode           string `mapstructure:"mode"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Name         string `mapstructure:"name"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// DSN returns the lib/pq keyword/value connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// URL returns the connection string in URL form, as golang-migrate expects.
func (c DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.Name,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

type RedisConfig struct {
	URL      string        `mapstructure:"url"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

// Enabled reports whether a Redis URL was configured.
func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

type WeatherConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	ServiceKey string        `mapstructure:"service_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
	CacheTTL   time.Duration `mapstructure:"cache_ttl"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type MigrationConfig struct {
	Auto bool   `mapstructure:"auto"`
	Path string `mapstructure:"path"`
}

// secrets are read from BELLBELL_* variables and win over the config file.
type secrets struct {
	DatabaseHost      string `envconfig:"DATABASE_HOST"`
	DatabasePassword  string `envconfig:"DATABASE_PASSWORD"`
	RedisURL          string `envconfig:"REDIS_URL"`
	WeatherServiceKey string `envconfig:"WEATHER_SERVICE_KEY"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.timeout_seconds", 30)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "bellbell")
	v.SetDefault("database.name", "bellbell")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)

	v.SetDefault("redis.token_ttl", 5*time.Minute)

	v.SetDefault("weather.base_url", "https://apis.data.go.kr/1360000/VilageFcstInfoService_2.0")
	v.SetDefault("weather.timeout", 5*time.Second)
	v.SetDefault("weather.cache_ttl", 10*time.Minute)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 50)
	v.SetDefault("rate_limit.burst", 100)

	v.SetDefault("cors.allow_origins", []string{"*"})

	v.SetDefault("log.level", "info")

	v.SetDefault("migration.auto", false)
	v.SetDefault("migration.path", "migrations")
}

// LoadConfig reads config.yml from the usual locations. A missing file is not an
// error; defaults and environment variables still apply.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/app/config")

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applySecrets(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applySecrets(cfg *Config) error {
	var s secrets
	if err := envconfig.Process("bellbell", &s); err != nil {
		return fmt.Errorf("failed to process environment: %w", err)
	}

	if s.DatabaseHost != "" {
		cfg.Database.Host = s.DatabaseHost
	}
	if s.DatabasePassword != "" {
		cfg.Database.Password = s.DatabasePassword
	}
	if s.RedisURL != "" {
		cfg.Redis.URL = s.RedisURL
	}
	if s.WeatherServiceKey != "" {
		cfg.Weather.ServiceKey = s.WeatherServiceKey
	}
	return nil
}
