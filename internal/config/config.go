// Package config loads and persists the CLI configuration: service
// connection settings, credentials and an optional HTTP proxy. The native
// format is TOML under ~/.toodledo; a legacy YAML user-config from earlier
// releases is imported transparently when no TOML file exists yet.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	yaml "gopkg.in/yaml.v3"

	"github.com/wsargent/toodledo/internal/domain"
)

const (
	configName     = "config"
	configType     = "toml"
	configDir      = ".toodledo"
	configFile     = "config.toml"
	legacyFile     = "user-config.yml"
	configFileMode = 0o600
	configDirMode  = 0o700
	tempPattern    = ".config-*.toml.tmp"

	// DefaultBaseURL is the service endpoint used when the config does
	// not name one.
	DefaultBaseURL = "http://api.toodledo.com/api.php"
)

// Connection holds what the session needs to authenticate.
type Connection struct {
	BaseURL  string `toml:"url"`
	UserID   string `toml:"user_id"`
	Password string `toml:"password"`
	AppID    string `toml:"app_id,omitempty"`
}

// Proxy configures an optional outbound HTTP proxy.
type Proxy struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port,omitempty"`
	User     string `toml:"user,omitempty"`
	Password string `toml:"password,omitempty"`
}

type Config struct {
	Connection Connection `toml:"connection"`
	Proxy      *Proxy     `toml:"proxy,omitempty"`

	path string
}

// Dir returns the configuration directory, honoring TOODLEDO_HOME for
// tests and sandboxed installs.
func Dir() (string, error) {
	if override := os.Getenv("TOODLEDO_HOME"); override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// Load reads the configuration. Resolution order: an explicit path wins,
// then config.toml in the config directory, then a legacy YAML
// user-config. A missing config is not an error; validation happens when
// the session is built.
func Load(explicitPath string) (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	nativePath := filepath.Join(dir, configFile)

	if explicitPath != "" {
		return loadTOML(explicitPath)
	}

	cfg := viper.New()
	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(dir)
	cfg.SetEnvPrefix("toodledo")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if legacy, ok, err := loadLegacy(filepath.Join(dir, legacyFile)); err != nil {
			return nil, err
		} else if ok {
			legacy.path = nativePath
			return legacy, nil
		}
	}

	loaded := &Config{
		Connection: Connection{
			BaseURL:  cfg.GetString("connection.url"),
			UserID:   cfg.GetString("connection.user_id"),
			Password: cfg.GetString("connection.password"),
			AppID:    cfg.GetString("connection.app_id"),
		},
		path: nativePath,
	}
	if cfg.IsSet("proxy.host") {
		loaded.Proxy = &Proxy{
			Host:     cfg.GetString("proxy.host"),
			Port:     cfg.GetInt("proxy.port"),
			User:     cfg.GetString("proxy.user"),
			Password: cfg.GetString("proxy.password"),
		}
	}
	loaded.applyDefaults()
	return loaded, nil
}

func loadTOML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var loaded Config
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}
	loaded.path = path
	loaded.applyDefaults()
	return &loaded, nil
}

// legacySchema mirrors the YAML layout of pre-TOML installs.
type legacySchema struct {
	Connection struct {
		URL      string `yaml:"url"`
		UserID   string `yaml:"user_id"`
		Password string `yaml:"password"`
		AppID    string `yaml:"app_id"`
	} `yaml:"connection"`
	Proxy *struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
	} `yaml:"proxy"`
}

func loadLegacy(path string) (*Config, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read legacy config: %w", err)
	}

	var legacy legacySchema
	if err := yaml.Unmarshal(data, &legacy); err != nil {
		return nil, false, fmt.Errorf("decode legacy config: %w", err)
	}

	imported := &Config{
		Connection: Connection{
			BaseURL:  legacy.Connection.URL,
			UserID:   legacy.Connection.UserID,
			Password: legacy.Connection.Password,
			AppID:    legacy.Connection.AppID,
		},
	}
	if legacy.Proxy != nil {
		imported.Proxy = &Proxy{
			Host:     legacy.Proxy.Host,
			Port:     legacy.Proxy.Port,
			User:     legacy.Proxy.User,
			Password: legacy.Proxy.Password,
		}
	}
	imported.applyDefaults()
	return imported, true, nil
}

func (c *Config) applyDefaults() {
	if c.Connection.BaseURL == "" {
		c.Connection.BaseURL = DefaultBaseURL
	}
}

// Validate checks that the credentials a session needs are present.
func (c *Config) Validate() error {
	if c.Connection.UserID == "" {
		return fmt.Errorf("%w: user_id is not set; run setup first", domain.ErrConfiguration)
	}
	if c.Connection.Password == "" {
		return fmt.Errorf("%w: password is not set; run setup first", domain.ErrConfiguration)
	}
	return nil
}

// Save writes the configuration atomically with owner-only permissions,
// since it carries credentials.
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, configFile)
		c.path = path
	}

	if err := os.MkdirAll(filepath.Dir(path), configDirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempPattern)
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp config file: %w", err)
	}
	if err := tempFile.Chmod(configFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp config file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}
	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}
	cleanup = false

	return nil
}
