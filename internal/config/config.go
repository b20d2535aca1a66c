package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // timezone names resolve in minimal containers

	"gopkg.in/yaml.v3"

	"github.com/alorle/m3u-editor/internal/credential"
)

// Config holds the complete application configuration
type Config struct {
	// HTTP server settings
	HTTP struct {
		Address      string        `yaml:"address"`
		Port         string        `yaml:"port"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"http"`

	// Storage settings. An empty DBPath keeps saved playlists in memory.
	Storage struct {
		DBPath string `yaml:"db_path"`
	} `yaml:"storage"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Import struct {
		MaxBytes int64 `yaml:"max_bytes"`
	} `yaml:"import"`

	// Credential display settings
	Credentials struct {
		ExpiryLayout string `yaml:"expiry_layout"`
		Timezone     string `yaml:"timezone"`
	} `yaml:"credentials"`

	Export struct {
		GuideURLs []string `yaml:"guide_urls"`
	} `yaml:"export"`
}

var logLevels = map[string]slog.Level{
	"DEBUG": slog.LevelDebug,
	"INFO":  slog.LevelInfo,
	"WARN":  slog.LevelWarn,
	"ERROR": slog.LevelError,
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	var errors []string

	// Validate HTTP settings
	if c.HTTP.Port == "" {
		errors = append(errors, "HTTP port is required")
	}
	if c.HTTP.ReadTimeout <= 0 {
		errors = append(errors, "HTTP read timeout must be positive")
	}
	if c.HTTP.WriteTimeout <= 0 {
		errors = append(errors, "HTTP write timeout must be positive")
	}

	if _, ok := logLevels[strings.ToUpper(c.Log.Level)]; !ok {
		errors = append(errors, fmt.Sprintf("Log level %q must be one of DEBUG, INFO, WARN, ERROR", c.Log.Level))
	}

	if c.Import.MaxBytes <= 0 {
		errors = append(errors, "Import max bytes must be positive")
	}

	// Validate credential settings
	if c.Credentials.ExpiryLayout == "" {
		errors = append(errors, "Credentials expiry layout is required")
	}
	if _, err := time.LoadLocation(c.Credentials.Timezone); err != nil {
		errors = append(errors, fmt.Sprintf("Credentials timezone: %v", err))
	}

	for i, u := range c.Export.GuideURLs {
		if strings.TrimSpace(u) == "" {
			errors = append(errors, fmt.Sprintf("Export guide URL %d is empty", i))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// Default returns a Config with sensible default values
func Default() *Config {
	cfg := &Config{}

	// HTTP defaults
	cfg.HTTP.Address = ""
	cfg.HTTP.Port = "8080"
	cfg.HTTP.ReadTimeout = 15 * time.Second
	cfg.HTTP.WriteTimeout = 15 * time.Second

	cfg.Storage.DBPath = "m3u-editor.db"
	cfg.Log.Level = "INFO"
	cfg.Import.MaxBytes = 32 * 1024 * 1024 // 32MB

	cfg.Credentials.ExpiryLayout = credential.DefaultLayout
	cfg.Credentials.Timezone = "UTC"

	return cfg
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Load loads configuration from a file (if provided) and applies environment variable overrides
func Load() (*Config, error) {
	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	// Try to load from file if it exists
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = LoadFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg = Default()
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if cfg.Storage.DBPath != "" {
		abs, err := resolveDBPath(cfg.Storage.DBPath)
		if err != nil {
			return nil, err
		}
		cfg.Storage.DBPath = abs
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration
func applyEnvOverrides(cfg *Config) error {
	// HTTP settings
	if val := os.Getenv("HTTP_ADDRESS"); val != "" {
		cfg.HTTP.Address = val
	}
	if val := os.Getenv("HTTP_PORT"); val != "" {
		cfg.HTTP.Port = val
	}
	if val := os.Getenv("HTTP_READ_TIMEOUT"); val != "" {
		duration, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("invalid HTTP_READ_TIMEOUT: %w", err)
		}
		cfg.HTTP.ReadTimeout = duration
	}
	if val := os.Getenv("HTTP_WRITE_TIMEOUT"); val != "" {
		duration, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("invalid HTTP_WRITE_TIMEOUT: %w", err)
		}
		cfg.HTTP.WriteTimeout = duration
	}

	// DB_PATH may be set to "memory" to disable persistence
	if val, ok := os.LookupEnv("DB_PATH"); ok {
		if val == "memory" {
			val = ""
		}
		cfg.Storage.DBPath = val
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		cfg.Log.Level = val
	}

	if val := os.Getenv("IMPORT_MAX_BYTES"); val != "" {
		size, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid IMPORT_MAX_BYTES: %w", err)
		}
		cfg.Import.MaxBytes = size
	}

	// Credential settings
	if val := os.Getenv("EXPIRY_LAYOUT"); val != "" {
		cfg.Credentials.ExpiryLayout = val
	}
	if val := os.Getenv("EXPIRY_TIMEZONE"); val != "" {
		cfg.Credentials.Timezone = val
	}

	// Comma separated list of XMLTV guide URLs
	if val := os.Getenv("EXPORT_GUIDE_URLS"); val != "" {
		var urls []string
		for _, u := range strings.Split(val, ",") {
			if u = strings.TrimSpace(u); u != "" {
				urls = append(urls, u)
			}
		}
		cfg.Export.GuideURLs = urls
	}

	return nil
}

// resolveDBPath normalizes the database path to an absolute path
func resolveDBPath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for db: %w", err)
	}
	return abs, nil
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	return logLevels[strings.ToUpper(c.Log.Level)]
}

// Extractor builds the credential extractor for the configured layout and timezone.
func (c *Config) Extractor() (credential.Extractor, error) {
	loc, err := time.LoadLocation(c.Credentials.Timezone)
	if err != nil {
		return credential.Extractor{}, err
	}
	return credential.Extractor{Location: loc, Layout: c.Credentials.ExpiryLayout}, nil
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.HTTP.Address + ":" + c.HTTP.Port
}

// MemoryOnly reports whether saved playlists live only in process memory.
func (c *Config) MemoryOnly() bool {
	return c.Storage.DBPath == ""
}

// LogValue implements slog.LogValuer.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", c.Addr()),
		slog.Duration("read_timeout", c.HTTP.ReadTimeout),
		slog.Duration("write_timeout", c.HTTP.WriteTimeout),
		slog.String("db_path", c.Storage.DBPath),
		slog.String("log_level", c.Log.Level),
		slog.Int64("import_max_bytes", c.Import.MaxBytes),
		slog.String("expiry_layout", c.Credentials.ExpiryLayout),
		slog.String("expiry_timezone", c.Credentials.Timezone),
		slog.Int("guide_urls", len(c.Export.GuideURLs)),
	)
}
