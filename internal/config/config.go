package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	defaultConfigFile = "config.yaml"
	defaultPort       = 8080
	defaultDataPath   = "./data/temperature_data.csv"
	defaultOrigin     = "http://localhost:5173"
	defaultCacheSize  = 128
	defaultLogLevel   = "info"
)

// Config is the on-disk configuration shape (YAML). Environment variables
// override file values.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Data   DataConfig   `yaml:"data"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	Env            string   `yaml:"env"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type DataConfig struct {
	// Path is a semicolon CSV or a SQLite database (.db, .sqlite).
	Path      string `yaml:"path"`
	CacheSize int    `yaml:"cache_size"`
	// ReloadSchedule is a cron spec; empty disables reloading.
	ReloadSchedule string `yaml:"reload_schedule"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file or env is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           defaultPort,
			Env:            EnvDevelopment,
			AllowedOrigins: []string{defaultOrigin},
		},
		Data: DataConfig{
			Path:      defaultDataPath,
			CacheSize: defaultCacheSize,
		},
		Log: LogConfig{Level: defaultLogLevel},
	}
}

// Load reads .env, the YAML file and env overrides, then validates.
// An empty path means $CONFIG_FILE, then config.yaml; a missing default
// file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = os.Getenv("CONFIG_FILE")
		explicit = path != ""
	}
	if path == "" {
		path = defaultConfigFile
	}

	c := Default()
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, c); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv("CLIMATE_DATA_PATH")); v != "" {
		c.Data.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("CLIMATE_ALLOWED_ORIGINS")); v != "" {
		c.Server.AllowedOrigins = splitList(v)
	}
	if v := strings.TrimSpace(os.Getenv("CLIMATE_RELOAD_SCHEDULE")); v != "" {
		c.Data.ReloadSchedule = v
	}
	if v := strings.TrimSpace(os.Getenv("API_PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid API_PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := strings.TrimSpace(os.Getenv("API_ENV")); v != "" {
		c.Server.Env = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch c.Server.Env {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("invalid server.env %q (allowed: %s, %s)", c.Server.Env, EnvDevelopment, EnvProduction)
	}
	if strings.TrimSpace(c.Data.Path) == "" {
		return errors.New("data.path is required")
	}
	if c.Data.CacheSize <= 0 {
		return fmt.Errorf("data.cache_size must be positive, got %d", c.Data.CacheSize)
	}
	if c.Data.ReloadSchedule != "" {
		if _, err := cron.ParseStandard(c.Data.ReloadSchedule); err != nil {
			return fmt.Errorf("data.reload_schedule invalid: %w", err)
		}
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Production reports whether the server runs with production settings.
func (c *Config) Production() bool {
	return c.Server.Env == EnvProduction
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Server.Port)
}

func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q (allowed: debug, info, warn, error)", s)
	}
}
