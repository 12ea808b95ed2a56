// Package config loads settings in layers: defaults, then the YAML file, then
// .env and CONTACTBOOK_* variables. Command line flags are applied last by
// the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/contactbook/internal/route"
)

const (
	// FileName is the config file looked up in the data directory.
	FileName = "config.yaml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "CONTACTBOOK_"

	dirName = ".contactbook"
)

// Storage backends.
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

type Config struct {
	DataDir    string        `yaml:"data_dir"`
	Store      string        `yaml:"store"`
	UsersFile  string        `yaml:"users_file"`
	StartRoute string        `yaml:"start_route"`
	Content    ContentConfig `yaml:"content"`
	Logging    LoggingConfig `yaml:"logging"`
	UI         UIConfig      `yaml:"ui"`
}

type ContentConfig struct {
	Dir     string `yaml:"dir"`     // overrides the embedded templates
	Timeout string `yaml:"timeout"` // per fetch, e.g. "2s"
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

type UIConfig struct {
	Theme string `yaml:"theme"` // classic, neon, mono
}

// DefaultDir is ~/.contactbook.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// Default returns the built-in settings. Paths left empty are derived from
// DataDir by Resolve.
func Default() *Config {
	dir, err := DefaultDir()
	if err != nil {
		dir = dirName
	}
	return &Config{
		DataDir:    dir,
		Store:      StoreJSON,
		StartRoute: route.Default.String(),
		Content:    ContentConfig{Timeout: "2s"},
		Logging:    LoggingConfig{Level: "info"},
		UI:         UIConfig{Theme: "classic"},
	}
}

// Load reads path (or <data_dir>/config.yaml when path is empty) over the
// defaults, then applies envFile, the process environment and finally
// overrides. A missing config or env file is not an error.
func Load(path, envFile string, overrides ...func(*Config)) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = filepath.Join(cfg.DataDir, FileName)
	}
	data, err := os.ReadFile(expandHome(path))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	dotenv := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			dotenv = m
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read %s: %w", envFile, err)
		}
	}
	cfg.applyEnv(func(key string) (string, bool) {
		// Real environment wins over .env, as with godotenv.Load.
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	})
	for _, o := range overrides {
		o(cfg)
	}

	cfg.Resolve()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	set := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set("DATA_DIR", &c.DataDir)
	set("STORE", &c.Store)
	set("USERS_FILE", &c.UsersFile)
	set("START_ROUTE", &c.StartRoute)
	set("CONTENT_DIR", &c.Content.Dir)
	set("CONTENT_TIMEOUT", &c.Content.Timeout)
	set("LOG_LEVEL", &c.Logging.Level)
	set("LOG_FILE", &c.Logging.File)
	set("THEME", &c.UI.Theme)
}

// Resolve expands ~ and fills the paths derived from DataDir.
func (c *Config) Resolve() {
	c.DataDir = expandHome(c.DataDir)
	if c.UsersFile == "" {
		c.UsersFile = filepath.Join(c.DataDir, "users.json")
	}
	if c.Logging.File == "" {
		c.Logging.File = filepath.Join(c.DataDir, "contactbook.log")
	}
	c.UsersFile = expandHome(c.UsersFile)
	c.Logging.File = expandHome(c.Logging.File)
	c.Content.Dir = expandHome(c.Content.Dir)
}

// Validate rejects values the rest of the program cannot use.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreJSON, StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("store %q: want json, sqlite or memory", c.Store)
	}
	if _, err := route.Parse(c.StartRoute); err != nil {
		return fmt.Errorf("start_route: %w", err)
	}
	if _, err := c.FetchTimeout(); err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.UI.Theme {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("ui.theme %q: want classic, neon or mono", c.UI.Theme)
	}
	return nil
}

// FetchTimeout parses content.timeout. Empty means no explicit bound.
func (c *Config) FetchTimeout() (time.Duration, error) {
	if c.Content.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Content.Timeout)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("content.timeout %q: not a duration", c.Content.Timeout)
	}
	return d, nil
}

// Start is the configured start route.
func (c *Config) Start() route.Route {
	r, _ := route.Parse(c.StartRoute)
	return r
}

// Save writes c as YAML, creating the directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
