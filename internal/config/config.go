package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "GHOSTQUANT_"

// PathEnv names the variable holding the config file path
const PathEnv = EnvPrefix + "CONFIG"

// DefaultPath is used when PathEnv is unset
const DefaultPath = "./config.yaml"

// Config holds the service configuration
type Config struct {
	Port   string `yaml:"port" koanf:"port"`
	DBPath string `yaml:"db_path" koanf:"db_path"`

	// Intelligence API; empty means synthetic data only
	UpstreamURL     string        `yaml:"upstream_url" koanf:"upstream_url"`
	UpstreamTimeout time.Duration `yaml:"upstream_timeout" koanf:"upstream_timeout"`
	PollInterval    time.Duration `yaml:"poll_interval" koanf:"poll_interval"`

	// Redis cache; empty address keeps the cache in memory
	RedisAddr     string        `yaml:"redis_addr" koanf:"redis_addr"`
	RedisPassword string        `yaml:"redis_password" koanf:"redis_password"`
	RedisDB       int           `yaml:"redis_db" koanf:"redis_db"`
	CacheTTL      time.Duration `yaml:"cache_ttl" koanf:"cache_ttl"`

	CanvasWidth      float64 `yaml:"canvas_width" koanf:"canvas_width"`
	CanvasHeight     float64 `yaml:"canvas_height" koanf:"canvas_height"`
	StarfieldSize    int     `yaml:"starfield_size" koanf:"starfield_size"`
	LayoutIterations int     `yaml:"layout_iterations" koanf:"layout_iterations"`
	MaxNodes         int     `yaml:"max_nodes" koanf:"max_nodes"` // Largest graph accepted by POST /constellation

	SnapshotRetention int    `yaml:"snapshot_retention" koanf:"snapshot_retention"` // 0 keeps every snapshot
	SyntheticSeed     uint64 `yaml:"synthetic_seed" koanf:"synthetic_seed"`

	RateLimit  int           `yaml:"rate_limit" koanf:"rate_limit"` // Requests per window per IP
	RateWindow time.Duration `yaml:"rate_window" koanf:"rate_window"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Port:              ":8080",
		DBPath:            "./data/ghostquant.db",
		UpstreamTimeout:   10 * time.Second,
		PollInterval:      30 * time.Second,
		CacheTTL:          time.Hour,
		CanvasWidth:       1200,
		CanvasHeight:      800,
		StarfieldSize:     200,
		LayoutIterations:  120,
		MaxNodes:          2000,
		SnapshotRetention: 1000,
		RateLimit:         120,
		RateWindow:        time.Minute,
	}
}

// Path returns the config file path from the environment
func Path() string {
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads the YAML file at path if it exists, then overlays
// GHOSTQUANT_* environment overrides (GHOSTQUANT_DB_PATH -> db_path).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration contains usable values
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive")
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("upstream_timeout must be positive")
	}
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		return fmt.Errorf("canvas size must be positive, got %vx%v", c.CanvasWidth, c.CanvasHeight)
	}
	if c.StarfieldSize < 0 {
		return fmt.Errorf("starfield_size must be non-negative")
	}
	if c.LayoutIterations <= 0 {
		return fmt.Errorf("layout_iterations must be positive")
	}
	if c.MaxNodes <= 0 {
		return fmt.Errorf("max_nodes must be positive")
	}
	if c.SnapshotRetention < 0 {
		return fmt.Errorf("snapshot_retention must be non-negative")
	}
	if c.RateLimit <= 0 || c.RateWindow <= 0 {
		return fmt.Errorf("rate_limit and rate_window must be positive")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must be non-negative")
	}
	return nil
}

// Save writes the configuration to the given YAML file path
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}
