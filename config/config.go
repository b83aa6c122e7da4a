package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var validate = validator.New()

// Config holds the client-side settings for talking to an org.
type Config struct {
	AppName string
	API     *API
	Logger  *Logger
	Paging  *Paging
	Breaker *Breaker
	Cache   *Cache
	Viper   *viper.Viper

	mu   sync.Mutex
	path string
	v    *viper.Viper
}

// Load reads configuration from the given file, or from the standard
// search paths when path is empty.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		ex, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to get executable path: %w", err)
		}
		v.SetConfigName("config")
		v.AddConfigPath("/etc/orgcore")
		v.AddConfigPath("$HOME/.orgcore")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Dir(ex))
	}
	v.SetEnvPrefix("orgcore")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := fromViper(v)
	if err != nil {
		return nil, err
	}
	cfg.path = path
	cfg.v = v
	return cfg, nil
}

// Default returns a config usable without a file, for callers that set
// everything programmatically.
func Default() *Config {
	return &Config{
		API:     &API{Timeout: defaultTimeout},
		Logger:  &Logger{Level: "info", Format: "text"},
		Paging:  &Paging{DefaultPageSize: defaultPageSize},
		Breaker: defaultBreaker(),
		Cache:   &Cache{},
	}
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppName: v.GetString("app_name"),
		API:     getAPIConfig(v),
		Logger:  getLoggerConfig(v),
		Paging:  getPagingConfig(v),
		Breaker: getBreakerConfig(v),
		Cache:   getCacheConfig(v),
		Viper:   v,
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Reload re-reads the configuration file and swaps the loaded sections.
func (c *Config) Reload() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.v == nil {
		return fmt.Errorf("config was not loaded from a file")
	}
	if err := c.v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}
	next, err := fromViper(c.v)
	if err != nil {
		return err
	}
	c.AppName = next.AppName
	c.API = next.API
	c.Logger = next.Logger
	c.Paging = next.Paging
	c.Breaker = next.Breaker
	c.Cache = next.Cache
	return nil
}

// Watch reloads the configuration whenever the file changes and hands the
// updated config to the callback.
func (c *Config) Watch(callback func(*Config)) {
	if c.v == nil {
		return
	}
	c.v.WatchConfig()
	c.v.OnConfigChange(func(_ fsnotify.Event) {
		if err := c.Reload(); err != nil {
			fmt.Fprintf(os.Stderr, "error reloading config: %v\n", err)
			return
		}
		callback(c)
	})
}
