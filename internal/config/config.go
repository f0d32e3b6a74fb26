package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for the server. Values come from
// config.yaml when present, overridden by FLOG_-prefixed environment
// variables (e.g. FLOG_POSTGRES_HOST).
type Config struct {
	AppEnv string `mapstructure:"app_env"`
	Port   int    `mapstructure:"port"`

	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`

	Providers ProvidersConfig `mapstructure:"providers"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN builds the connection string shared by the sqlx and GORM handles.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Database, p.SSLMode)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// ProvidersConfig configures the external flight-status lookup chain.
// Order in the chain is fixed (AeroDataBox first, then FlightStats); a
// provider with an empty API key is skipped at chain construction.
type ProvidersConfig struct {
	Timeout     time.Duration     `mapstructure:"timeout"`
	AeroDataBox ProviderEndpoint  `mapstructure:"aerodatabox"`
	FlightStats ProviderEndpoint  `mapstructure:"flightstats"`
}

type ProviderEndpoint struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	AppID   string `mapstructure:"app_id"`
}

// Load reads configuration from the given path (or the working directory
// when empty) and the environment.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app_env", "development")
	v.SetDefault("port", 8080)
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("providers.timeout", 10*time.Second)
	v.SetDefault("providers.aerodatabox.base_url", "https://aerodatabox.p.rapidapi.com")
	v.SetDefault("providers.flightstats.base_url", "https://api.flightstats.com/flex")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("FLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional; env vars and defaults carry the rest
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
