package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/leanpub-multi-action/leanpub-multi-action/internal/leanpub"
)

// Config holds everything one invocation needs. It is built once at start-up
// and passed down explicitly.
type Config struct {
	APIKey    string
	BookSlug  string
	Preview   bool
	LogLevel  string
	LogFormat string
	Theme     string
}

// Options control where Load looks for configuration.
type Options struct {
	ConfigPath string // empty uses ~/.config/leanpub/config.toml
	EnvFile    string // empty uses ./.env
}

const (
	defaultConfigPath = "~/.config/leanpub/config.toml"
	defaultEnvFile    = ".env"
	defaultLogLevel   = "info"
	defaultLogFormat  = "text"
	defaultTheme      = "Nightfox"
)

// fileConfig mirrors the TOML config file.
type fileConfig struct {
	APIKey    string `toml:"api_key"`
	BookSlug  string `toml:"book_slug"`
	Preview   *bool  `toml:"preview"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	Theme     string `toml:"theme"`
}

// actionInputs are the variables GitHub Actions exports for `with:` inputs.
type actionInputs struct {
	APIKey   string `envconfig:"INPUT_LEANPUB-API-KEY"`
	BookSlug string `envconfig:"INPUT_LEANPUB-BOOK-SLUG"`
	Preview  string `envconfig:"INPUT_PREVIEW"`
}

type environment struct {
	APIKey    string `envconfig:"LEANPUB_API_KEY"`
	BookSlug  string `envconfig:"LEANPUB_BOOK_SLUG"`
	Preview   string `envconfig:"LEANPUB_PREVIEW"`
	LogLevel  string `envconfig:"LEANPUB_LOG_LEVEL"`
	LogFormat string `envconfig:"LEANPUB_LOG_FORMAT"`
	Theme     string `envconfig:"LEANPUB_THEME"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		LogLevel:  defaultLogLevel,
		LogFormat: defaultLogFormat,
		Theme:     defaultTheme,
	}
}

// Load builds a Config from, in increasing precedence: defaults, the TOML
// config file, the .env file, GitHub Action inputs and LEANPUB_* variables.
// Missing files are not an error. Empty values never override.
func Load(opts Options) (Config, error) {
	cfg := Default()

	if err := loadFile(&cfg, opts.ConfigPath); err != nil {
		return Config{}, err
	}
	dotenv, err := loadEnvFile(opts.EnvFile)
	if err != nil {
		return Config{}, err
	}
	if err := dotenv.apply(&cfg, "env file "); err != nil {
		return Config{}, err
	}

	var inputs actionInputs
	if err := envconfig.Process("", &inputs); err != nil {
		return Config{}, fmt.Errorf("read action inputs: %w", err)
	}
	setString(&cfg.APIKey, inputs.APIKey)
	setString(&cfg.BookSlug, inputs.BookSlug)
	if err := setBool(&cfg.Preview, inputs.Preview, "INPUT_PREVIEW"); err != nil {
		return Config{}, err
	}

	var env environment
	if err := envconfig.Process("", &env); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	if err := env.apply(&cfg, ""); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Overrides are values given on the command line. They win over every other
// source; zero values leave the loaded configuration alone.
type Overrides struct {
	APIKey    string
	BookSlug  string
	Preview   *bool
	LogLevel  string
	LogFormat string
}

// Apply returns a copy of c with the non-empty overrides applied.
func (c Config) Apply(o Overrides) Config {
	setString(&c.APIKey, o.APIKey)
	setString(&c.BookSlug, o.BookSlug)
	if o.Preview != nil {
		c.Preview = *o.Preview
	}
	setString(&c.LogLevel, o.LogLevel)
	setString(&c.LogFormat, o.LogFormat)
	return c
}

// Validate reports the first missing required input as a
// *leanpub.ConfigurationError.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return &leanpub.ConfigurationError{Field: "api key", Err: leanpub.ErrMissingAPIKey}
	}
	if strings.TrimSpace(c.BookSlug) == "" {
		return &leanpub.ConfigurationError{Field: "book slug", Err: leanpub.ErrMissingBookSlug}
	}
	return nil
}

func loadFile(cfg *Config, path string) error {
	resolved, err := resolvePath(path, defaultConfigPath)
	if err != nil {
		return err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	setString(&cfg.APIKey, raw.APIKey)
	setString(&cfg.BookSlug, raw.BookSlug)
	if raw.Preview != nil {
		cfg.Preview = *raw.Preview
	}
	setString(&cfg.LogLevel, raw.LogLevel)
	setString(&cfg.LogFormat, raw.LogFormat)
	setString(&cfg.Theme, raw.Theme)
	return nil
}

// loadEnvFile reads the LEANPUB_* variables of a .env file. The process
// environment is left untouched and variables already exported are skipped,
// so the file only fills gaps below the Action inputs.
func loadEnvFile(path string) (environment, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultEnvFile
	}
	resolved, err := expandPath(path)
	if err != nil {
		return environment{}, err
	}
	if _, err := os.Stat(resolved); errors.Is(err, os.ErrNotExist) {
		return environment{}, nil
	}
	values, err := godotenv.Read(resolved)
	if err != nil {
		return environment{}, fmt.Errorf("load env file: %w", err)
	}

	lookup := func(key string) string {
		if _, exported := os.LookupEnv(key); exported {
			return ""
		}
		return values[key]
	}
	return environment{
		APIKey:    lookup("LEANPUB_API_KEY"),
		BookSlug:  lookup("LEANPUB_BOOK_SLUG"),
		Preview:   lookup("LEANPUB_PREVIEW"),
		LogLevel:  lookup("LEANPUB_LOG_LEVEL"),
		LogFormat: lookup("LEANPUB_LOG_FORMAT"),
		Theme:     lookup("LEANPUB_THEME"),
	}, nil
}

func (e environment) apply(cfg *Config, source string) error {
	setString(&cfg.APIKey, e.APIKey)
	setString(&cfg.BookSlug, e.BookSlug)
	if err := setBool(&cfg.Preview, e.Preview, source+"LEANPUB_PREVIEW"); err != nil {
		return err
	}
	setString(&cfg.LogLevel, e.LogLevel)
	setString(&cfg.LogFormat, e.LogFormat)
	setString(&cfg.Theme, e.Theme)
	return nil
}

// setString assigns value to dst unless value is blank. Non-blank values are
// kept verbatim; the API key in particular is never altered.
func setString(dst *string, value string) {
	if strings.TrimSpace(value) != "" {
		*dst = value
	}
}

func setBool(dst *bool, value, name string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	b, err := strconv.ParseBool(trimmed)
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	*dst = b
	return nil
}

func resolvePath(path, fallback string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(fallback)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
