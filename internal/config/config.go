// Package config loads the service configuration in layers:
// struct defaults, an optional YAML file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{"config.yaml", "config.yml"}

type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Directory DirectoryConfig `koanf:"directory"`
	Server    ServerConfig    `koanf:"server"`
	Search    SearchConfig    `koanf:"search"`
	Redis     RedisConfig     `koanf:"redis"`
	Log       LogConfig       `koanf:"log"`
}

type DatabaseConfig struct {
	Driver   string `koanf:"driver"` // sqlite or postgres
	Path     string `koanf:"path"`   // sqlite file
	URL      string `koanf:"url"`    // postgres URL
	SeedPath string `koanf:"seed_path"`
}

// DSN returns the connection string matching Driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == "postgres" {
		return d.URL
	}
	return d.Path
}

type DirectoryConfig struct {
	BaseURL          string        `koanf:"base_url"`
	APIKey           string        `koanf:"api_key"`
	PageSize         int           `koanf:"page_size"`
	MaxRetries       int           `koanf:"max_retries"`
	InitialBackoff   time.Duration `koanf:"initial_backoff"`
	RequestTimeout   time.Duration `koanf:"request_timeout"`
	RateLimit        float64       `koanf:"rate_limit"`
	RateBurst        int           `koanf:"rate_burst"`
	BreakerThreshold uint32        `koanf:"breaker_threshold"`
	BreakerTimeout   time.Duration `koanf:"breaker_timeout"`
}

type ServerConfig struct {
	Port              string        `koanf:"port"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ReadTimeout       time.Duration `koanf:"read_timeout"`
	WriteTimeout      time.Duration `koanf:"write_timeout"`
	IdleTimeout       time.Duration `koanf:"idle_timeout"`
}

// Bounds for the parks listing parameters.
type SearchConfig struct {
	DefaultRadiusKm float64 `koanf:"default_radius_km"`
	MinRadiusKm     float64 `koanf:"min_radius_km"`
	MaxRadiusKm     float64 `koanf:"max_radius_km"`
	DefaultLimit    int     `koanf:"default_limit"`
	MaxLimit        int     `koanf:"max_limit"`
}

// Redis is optional; an empty Addr disables the park cache.
type RedisConfig struct {
	Addr     string        `koanf:"addr"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"`
	TTL      time.Duration `koanf:"ttl"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:   "sqlite",
			Path:     "data/trailblazer.db",
			SeedPath: "data/seeds/parks.json",
		},
		Directory: DirectoryConfig{
			BaseURL:          "https://developer.nps.gov/api/v1",
			PageSize:         50,
			MaxRetries:       3,
			InitialBackoff:   200 * time.Millisecond,
			RequestTimeout:   10 * time.Second,
			RateLimit:        5,
			RateBurst:        2,
			BreakerThreshold: 5,
			BreakerTimeout:   30 * time.Second,
		},
		Server: ServerConfig{
			Port:              "8080",
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		Search: SearchConfig{
			DefaultRadiusKm: 50,
			MinRadiusKm:     0.1,
			MaxRadiusKm:     200,
			DefaultLimit:    100,
			MaxLimit:        200,
		},
		Redis: RedisConfig{
			TTL: 10 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads defaults, then the config file if one exists, then the environment.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load config: defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config: file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load config: environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("load config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if p := Get(ConfigPathEnvVar, ""); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envMappings maps environment variable names (lowercased) to config paths.
var envMappings = map[string]string{
	"db_driver":                "database.driver",
	"db_path":                  "database.path",
	"database_url":             "database.url",
	"seed_path":                "database.seed_path",
	"nps_base_url":             "directory.base_url",
	"nps_api_key":              "directory.api_key",
	"nps_page_size":            "directory.page_size",
	"nps_max_retries":          "directory.max_retries",
	"nps_initial_backoff":      "directory.initial_backoff",
	"nps_request_timeout":      "directory.request_timeout",
	"nps_rate_limit":           "directory.rate_limit",
	"nps_rate_burst":           "directory.rate_burst",
	"nps_breaker_threshold":    "directory.breaker_threshold",
	"nps_breaker_timeout":      "directory.breaker_timeout",
	"port":                     "server.port",
	"http_read_header_timeout": "server.read_header_timeout",
	"http_read_timeout":        "server.read_timeout",
	"http_write_timeout":       "server.write_timeout",
	"http_idle_timeout":        "server.idle_timeout",
	"search_default_radius_km": "search.default_radius_km",
	"search_min_radius_km":     "search.min_radius_km",
	"search_max_radius_km":     "search.max_radius_km",
	"search_default_limit":     "search.default_limit",
	"search_max_limit":         "search.max_limit",
	"redis_addr":               "redis.addr",
	"redis_password":           "redis.password",
	"redis_db":                 "redis.db",
	"redis_ttl":                "redis.ttl",
	"log_level":                "log.level",
	"log_format":               "log.format",
}

// envTransform returns "" for variables that are not configuration, which koanf skips.
func envTransform(key string) string {
	return envMappings[strings.ToLower(key)]
}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case "sqlite":
		if strings.TrimSpace(c.Database.Path) == "" {
			errs = append(errs, errors.New("database.path is required for sqlite"))
		}
	case "postgres":
		if strings.TrimSpace(c.Database.URL) == "" {
			errs = append(errs, errors.New("database.url (DATABASE_URL) is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver))
	}

	if c.Directory.PageSize < 1 {
		errs = append(errs, errors.New("directory.page_size must be positive"))
	}
	if c.Directory.MaxRetries < 0 {
		errs = append(errs, errors.New("directory.max_retries must not be negative"))
	}

	s := c.Search
	if s.MinRadiusKm <= 0 || s.MinRadiusKm > s.MaxRadiusKm {
		errs = append(errs, fmt.Errorf("search radius bounds [%v, %v] are invalid", s.MinRadiusKm, s.MaxRadiusKm))
	} else if s.DefaultRadiusKm < s.MinRadiusKm || s.DefaultRadiusKm > s.MaxRadiusKm {
		errs = append(errs, fmt.Errorf("search.default_radius_km %v is outside [%v, %v]", s.DefaultRadiusKm, s.MinRadiusKm, s.MaxRadiusKm))
	}
	if s.MaxLimit < 1 || s.DefaultLimit < 1 || s.DefaultLimit > s.MaxLimit {
		errs = append(errs, fmt.Errorf("search limits default=%d max=%d are invalid", s.DefaultLimit, s.MaxLimit))
	}

	return errors.Join(errs...)
}

// Get returns the environment variable key, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
