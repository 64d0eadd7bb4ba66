// Package config provides configuration for the service, loaded from an
// optional YAML file with environment variable overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds console/file/database logging configuration.
type LoggingConfig struct {
	Level string      `mapstructure:"level"`
	Dir   string      `mapstructure:"dir"`
	DB    DBLogConfig `mapstructure:"db"`
}

// DBLogConfig holds the optional database log sink configuration.
type DBLogConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Table   string `mapstructure:"table"`
	Level   string `mapstructure:"level"`
}

// DatabaseConfig holds the relational storage configuration.
type DatabaseConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	URL        string `mapstructure:"url"`
	Migrations string `mapstructure:"migrations"`
}

// CacheConfig holds the Redis cache configuration.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
}

// TracingConfig holds OpenTelemetry tracing configuration.
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	ServiceName  string  `mapstructure:"service_name"`
	Endpoint     string  `mapstructure:"endpoint"`
	SamplerRatio float64 `mapstructure:"sampler_ratio"`
}

// CORSConfig holds allowed origins for cross-origin requests.
type CORSConfig struct {
	Origins []string `mapstructure:"origins"`
	MaxAge  int      `mapstructure:"max_age"`
}

// RateLimitConfig holds the per-client request rate limit.
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// AuthConfig holds JWT configuration for the demo auth stub.
type AuthConfig struct {
	JWTSecret      string        `mapstructure:"jwt_secret"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load reads configuration from the given YAML file (optional) and
// environment variables. Env keys replace dots with underscores, so
// `database.url` is overridden by DATABASE_URL.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// AutomaticEnv does not apply to keys viper has never seen, so bind the
	// ones that matter explicitly.
	for _, key := range []string{
		"server.host", "server.port",
		"logging.level", "logging.dir",
		"logging.db.enabled", "logging.db.table", "logging.db.level",
		"database.enabled", "database.url", "database.migrations",
		"cache.enabled", "cache.url",
		"tracing.enabled", "tracing.service_name", "tracing.endpoint", "tracing.sampler_ratio",
		"cors.origins", "cors.max_age",
		"ratelimit.enabled", "ratelimit.requests", "ratelimit.window",
		"auth.jwt_secret", "auth.access_token_ttl",
		"metrics.enabled",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// CORS_ORIGINS is a comma-separated list when it comes from the env.
	// Viper may hand back a single joined string or pre-split untrimmed
	// elements, so flatten and trim everything.
	origins := make([]string, 0, len(cfg.CORS.Origins))
	for _, o := range cfg.CORS.Origins {
		for _, p := range strings.Split(o, ",") {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
	}
	cfg.CORS.Origins = origins

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")

	v.SetDefault("logging.level", "DEBUG")
	v.SetDefault("logging.dir", "logs")
	v.SetDefault("logging.db.enabled", false)
	v.SetDefault("logging.db.table", "app_logs")
	v.SetDefault("logging.db.level", "INFO")

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.url", "")
	v.SetDefault("database.migrations", "file://migrations")

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.url", "")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "api-template")
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.sampler_ratio", 1.0)

	v.SetDefault("cors.origins", []string{"*"})
	v.SetDefault("cors.max_age", 600)

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requests", 5)
	v.SetDefault("ratelimit.window", "1m")

	v.SetDefault("auth.jwt_secret", "change-this-in-production")
	v.SetDefault("auth.access_token_ttl", "15m")

	v.SetDefault("metrics.enabled", true)
}
