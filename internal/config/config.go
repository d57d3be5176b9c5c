// Package config resolves tablebot settings from defaults, the YAML config
// file, a .env file, the process environment and the OS keyring.
//
// Later sources win: defaults < config.yaml < .env < environment. CLI flags are
// applied on top by the caller through Overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/tablebot/internal/constants"
	"github.com/julianstephens/tablebot/internal/keyring"
)

// Environment variable names
const (
	EnvBaseURL    = "TABLEBOT_BASE_URL"
	EnvToken      = "TABLEBOT_TOKEN"
	EnvTimeout    = "TABLEBOT_TIMEOUT"
	EnvRestaurant = "TABLEBOT_RESTAURANT"
	EnvDebug      = "TABLEBOT_DEBUG"
)

// TokenSource records where the bearer token came from
type TokenSource string

const (
	TokenNone    TokenSource = "none"
	TokenFile    TokenSource = "config file"
	TokenEnv     TokenSource = "environment"
	TokenFlag    TokenSource = "flag"
	TokenKeyring TokenSource = "keyring"
)

// Config is the resolved client configuration
type Config struct {
	BaseURL    string        `yaml:"base_url"`
	Token      string        `yaml:"token,omitempty"`
	Timeout    time.Duration `yaml:"timeout"`
	Restaurant string        `yaml:"restaurant"`
	Debug      bool          `yaml:"debug"`

	ConfigDir   string      `yaml:"-"`
	TokenSource TokenSource `yaml:"-"`
}

// LoadOptions controls where Load looks for its inputs
type LoadOptions struct {
	// ConfigDir holds config.yaml and the logs directory. "~" is expanded.
	ConfigDir string
	// EnvFile is the dotenv file to read; missing files are ignored.
	EnvFile string
	// Getenv reads the process environment. Defaults to os.Getenv.
	Getenv func(string) string
	// SkipKeyring disables the keyring token fallback.
	SkipKeyring bool
}

// Overrides carries CLI flag values; zero values leave the setting untouched
type Overrides struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	Restaurant string
	Debug      bool
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		BaseURL:     constants.DefaultBaseURL,
		Timeout:     constants.DefaultTimeout,
		Restaurant:  constants.DefaultRestaurant,
		TokenSource: TokenNone,
	}
}

// Load resolves the configuration. Flag overrides and the keyring fallback are
// applied by Resolve.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	dir, err := ExpandHome(opts.ConfigDir)
	if err != nil {
		return cfg, err
	}
	if dir == "" {
		if dir, err = ExpandHome(constants.DefaultConfigDir); err != nil {
			return cfg, err
		}
	}
	cfg.ConfigDir = dir

	if err := cfg.loadFile(filepath.Join(dir, constants.DefaultConfigFile)); err != nil {
		return cfg, err
	}

	dotenv := map[string]string{}
	if opts.EnvFile != "" {
		dotenv, err = godotenv.Read(opts.EnvFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("failed to read %s: %w", opts.EnvFile, err)
		}
		if dotenv == nil {
			dotenv = map[string]string{}
		}
	}

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	lookup := func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Resolve applies flag overrides and, if no token was configured, falls back to
// the OS keyring.
func (c *Config) Resolve(o Overrides, useKeyring bool) {
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.Token != "" {
		c.Token = o.Token
		c.TokenSource = TokenFlag
	}
	if o.Timeout > 0 {
		c.Timeout = o.Timeout
	}
	if o.Restaurant != "" {
		c.Restaurant = o.Restaurant
	}
	if o.Debug {
		c.Debug = true
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	if c.Token == "" && useKeyring {
		if token, err := keyring.GetToken(); err == nil {
			c.Token = token
			c.TokenSource = TokenKeyring
		}
	}
}

// Validate reports settings that would make every request fail
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base URL is empty")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base URL %q must start with http:// or https://", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Restaurant == "" {
		return errors.New("restaurant is empty")
	}
	return nil
}

// Save writes the non-secret settings to config.yaml in the config directory
func (c Config) Save() error {
	if err := os.MkdirAll(c.ConfigDir, 0755); err != nil {
		return err
	}
	out := c
	out.Token = ""
	data, err := yaml.Marshal(out)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.ConfigDir, constants.DefaultConfigFile), data, 0644)
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if file.BaseURL != "" {
		c.BaseURL = file.BaseURL
	}
	if file.Token != "" {
		c.Token = file.Token
		c.TokenSource = TokenFile
	}
	if file.Timeout > 0 {
		c.Timeout = file.Timeout
	}
	if file.Restaurant != "" {
		c.Restaurant = file.Restaurant
	}
	c.Debug = c.Debug || file.Debug
	return nil
}

func (c *Config) applyEnv(lookup func(string) string) error {
	if v := lookup(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := lookup(EnvToken); v != "" {
		c.Token = v
		c.TokenSource = TokenEnv
	}
	if v := lookup(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTimeout, v, err)
		}
		c.Timeout = d
	}
	if v := lookup(EnvRestaurant); v != "" {
		c.Restaurant = v
	}
	switch strings.ToLower(lookup(EnvDebug)) {
	case "1", "true", "yes":
		c.Debug = true
	}
	return nil
}

// ExpandHome replaces a leading "~" with the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
