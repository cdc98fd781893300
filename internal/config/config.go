// Package config loads application settings with priority:
// flags > WHATSCOOKING_* env > YAML file > defaults. A .env file, when
// present, feeds the environment first.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// Env var names.
const (
	EnvDataDir  = "WHATSCOOKING_DATA_DIR"
	EnvBackend  = "WHATSCOOKING_BACKEND"
	EnvLogLevel = "WHATSCOOKING_LOG_LEVEL"
	EnvLogFile  = "WHATSCOOKING_LOG_FILE"
	EnvChime    = "WHATSCOOKING_CHIME"
	EnvSeed     = "WHATSCOOKING_SEED"
)

// DefaultDir holds data, logs and the optional config file.
const DefaultDir = ".whatscooking"

// DefaultPath is where Load looks when no config file is named.
var DefaultPath = filepath.Join(DefaultDir, "config.yaml")

// Config is the resolved application configuration.
type Config struct {
	DataDir  string `yaml:"data_dir"`
	Backend  string `yaml:"backend"`
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"` // "stderr" logs to the console
	Chime    bool   `yaml:"chime"`
	Seed     bool   `yaml:"seed"` // add sample recipes to an empty cookbook
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DataDir:  filepath.Join(DefaultDir, "data"),
		Backend:  BackendFile,
		LogLevel: "normal",
		LogFile:  filepath.Join(DefaultDir, "logs", "app.log"),
		Chime:    true,
	}
}

// LoadDotEnv loads .env files into the environment without overriding
// variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// Load resolves the configuration from defaults, the YAML file at path
// (DefaultPath when empty) and the environment. A missing file is fine;
// an unreadable or malformed one is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath
	}
	if err := loadFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("load config file: %w", err)
	}

	if err := loadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("load config env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the resolved values.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendBadger:
		if strings.TrimSpace(c.DataDir) == "" {
			return fmt.Errorf("backend %q needs a data dir", c.Backend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want file, badger or memory)", c.Backend)
	}

	switch strings.ToLower(c.LogLevel) {
	case "off", "quiet", "none", "normal", "verbose", "debug":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func loadEnv(cfg *Config) error {
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(EnvBackend); v != "" {
		cfg.Backend = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	if err := envBool(EnvChime, &cfg.Chime); err != nil {
		return err
	}
	return envBool(EnvSeed, &cfg.Seed)
}

func envBool(name string, dst *bool) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s=%q: %w", name, v, err)
	}
	*dst = b
	return nil
}
