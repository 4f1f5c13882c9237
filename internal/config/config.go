package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mailpluck/pluck-cli/internal/clipboard"
	"github.com/mailpluck/pluck-cli/internal/extractor"
	"github.com/mailpluck/pluck-cli/internal/urlcheck"
)

// Config mirrors config.yaml. Empty fields fall back to defaults.
type Config struct {
	Endpoint      string `yaml:"endpoint,omitempty"`
	Timeout       string `yaml:"timeout,omitempty"`
	Clipboard     string `yaml:"clipboard,omitempty"`
	DefaultOutput string `yaml:"default_output,omitempty"`
	RateLimit     string `yaml:"rate_limit,omitempty"`
	Concurrency   string `yaml:"concurrency,omitempty"`
	LogLevel      string `yaml:"log_level,omitempty"`
	LogFile       string `yaml:"log_file,omitempty"`
}

// Config keys, as used in config.yaml and by 'pluck config set'.
// Env overrides are PLUCK_<KEY>, except default_output which is PLUCK_OUTPUT.
const (
	KeyEndpoint      = "endpoint"
	KeyTimeout       = "timeout"
	KeyClipboard     = "clipboard"
	KeyDefaultOutput = "default_output"
	KeyRateLimit     = "rate_limit"
	KeyConcurrency   = "concurrency"
	KeyLogLevel      = "log_level"
	KeyLogFile       = "log_file"
)

// Keys lists every settable key.
var Keys = []string{
	KeyEndpoint, KeyTimeout, KeyClipboard, KeyDefaultOutput,
	KeyRateLimit, KeyConcurrency, KeyLogLevel, KeyLogFile,
}

// Defaults
const (
	DefaultEndpoint    = extractor.DefaultEndpoint
	DefaultTimeout     = extractor.DefaultTimeout
	DefaultClipboard   = clipboard.BackendAuto
	DefaultOutput      = "pretty"
	DefaultConcurrency = 4
	DefaultLogLevel    = "info"
)

// Outputs lists the valid output formats.
var Outputs = []string{"pretty", "json"}

// ErrInvalidValue is wrapped by Set and Validate errors.
var ErrInvalidValue = errors.New("invalid config value")

// Package-level state
var v = newViper()

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("PLUCK")
	v.AutomaticEnv()
	_ = v.BindEnv(KeyDefaultOutput, "PLUCK_OUTPUT")

	v.SetDefault(KeyEndpoint, DefaultEndpoint)
	v.SetDefault(KeyTimeout, DefaultTimeout.String())
	v.SetDefault(KeyClipboard, DefaultClipboard)
	v.SetDefault(KeyDefaultOutput, DefaultOutput)
	v.SetDefault(KeyRateLimit, 0)
	v.SetDefault(KeyConcurrency, DefaultConcurrency)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFile, "")
	return v
}

// Dir returns the pluck config directory path.
// Respects PLUCK_CONFIG_DIR environment variable if set.
func Dir() (string, error) {
	if dir := os.Getenv("PLUCK_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "pluck"), nil
}

// Path returns the config file path (~/.config/pluck/config.yaml)
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file as written, without defaults or env overrides.
// Returns an empty Config if the file doesn't exist.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit path.
func LoadFile(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// EnsureDir creates the config directory if it doesn't exist
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// LoadFromFile makes path the source of file values for the getters,
// replacing any file loaded before. A missing file is not an error.
func LoadFromFile(path string) error {
	v = newViper()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil // No config file is fine
		}
		return err
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return nil
}

// GetEndpoint returns the extraction endpoint with priority: env > config file > default
func GetEndpoint() string {
	return v.GetString(KeyEndpoint)
}

// GetTimeout returns the request timeout. Invalid values fall back to the default.
func GetTimeout() time.Duration {
	d := v.GetDuration(KeyTimeout)
	if d <= 0 {
		return DefaultTimeout
	}
	return d
}

// GetClipboard returns the clipboard backend name.
func GetClipboard() string {
	return v.GetString(KeyClipboard)
}

// GetDefaultOutput returns the output format with priority: env > config file > default
func GetDefaultOutput() string {
	return v.GetString(KeyDefaultOutput)
}

// GetRateLimit returns the maximum extraction requests per second; 0 means unlimited.
func GetRateLimit() float64 {
	r := v.GetFloat64(KeyRateLimit)
	if r < 0 {
		return 0
	}
	return r
}

// GetConcurrency returns how many extractions the batch command runs at once.
func GetConcurrency() int {
	n := v.GetInt(KeyConcurrency)
	if n < 1 {
		return DefaultConcurrency
	}
	return n
}

// GetLogLevel returns the configured log level name.
func GetLogLevel() string {
	return v.GetString(KeyLogLevel)
}

// GetLogFile returns the log file used by the interactive UI.
func GetLogFile() (string, error) {
	if f := v.GetString(KeyLogFile); f != "" {
		return f, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pluck.log"), nil
}

// EnvVar returns the environment variable that overrides key.
func EnvVar(key string) string {
	if key == KeyDefaultOutput {
		return "PLUCK_OUTPUT"
	}
	return "PLUCK_" + strings.ToUpper(key)
}

// Get returns the effective value of key after env, file and defaults are applied.
func Get(key string) string {
	switch key {
	case KeyTimeout:
		return GetTimeout().String()
	case KeyRateLimit:
		return strconv.FormatFloat(GetRateLimit(), 'f', -1, 64)
	case KeyConcurrency:
		return strconv.Itoa(GetConcurrency())
	case KeyLogFile:
		f, _ := GetLogFile()
		return f
	default:
		return v.GetString(key)
	}
}

// Value returns the value stored in c under key, or "" if unset.
func (c *Config) Value(key string) string {
	switch key {
	case KeyEndpoint:
		return c.Endpoint
	case KeyTimeout:
		return c.Timeout
	case KeyClipboard:
		return c.Clipboard
	case KeyDefaultOutput:
		return c.DefaultOutput
	case KeyRateLimit:
		return c.RateLimit
	case KeyConcurrency:
		return c.Concurrency
	case KeyLogLevel:
		return c.LogLevel
	case KeyLogFile:
		return c.LogFile
	}
	return ""
}

// Validate checks a single key/value pair.
func Validate(key, value string) error {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s: %s", ErrInvalidValue, key, fmt.Sprintf(format, args...))
	}

	switch key {
	case KeyEndpoint:
		u, err := url.Parse(value)
		if err != nil || !urlcheck.IsValid(value) || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return invalid("%q is not an http(s) URL", value)
		}
	case KeyTimeout:
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return invalid("%q is not a positive duration", value)
		}
	case KeyClipboard:
		if !slices.Contains(clipboard.Backends, value) {
			return invalid("must be one of %s", strings.Join(clipboard.Backends, ", "))
		}
	case KeyDefaultOutput:
		if !slices.Contains(Outputs, value) {
			return invalid("must be one of %s", strings.Join(Outputs, ", "))
		}
	case KeyRateLimit:
		r, err := strconv.ParseFloat(value, 64)
		if err != nil || r < 0 {
			return invalid("%q is not a non-negative number", value)
		}
	case KeyConcurrency:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return invalid("%q is not a positive integer", value)
		}
	case KeyLogLevel:
		if _, err := zerolog.ParseLevel(value); err != nil || value == "" {
			return invalid("unknown level %q", value)
		}
	case KeyLogFile:
		if value == "" {
			return invalid("path is empty")
		}
	default:
		return fmt.Errorf("unknown config key: %s (valid keys: %s)", key, strings.Join(Keys, ", "))
	}
	return nil
}

// Set validates value and stores it in cfg under key.
func (c *Config) Set(key, value string) error {
	if err := Validate(key, value); err != nil {
		return err
	}
	switch key {
	case KeyEndpoint:
		c.Endpoint = value
	case KeyTimeout:
		c.Timeout = value
	case KeyClipboard:
		c.Clipboard = value
	case KeyDefaultOutput:
		c.DefaultOutput = value
	case KeyRateLimit:
		c.RateLimit = value
	case KeyConcurrency:
		c.Concurrency = value
	case KeyLogLevel:
		c.LogLevel = value
	case KeyLogFile:
		c.LogFile = value
	}
	return nil
}

// Save writes the config to disk as YAML
func Save(cfg *Config) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	configPath, err := Path()
	if err != nil {
		return err
	}
	return SaveFile(configPath, cfg)
}

// SaveFile writes cfg to path as YAML, owner-readable only.
func SaveFile(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
