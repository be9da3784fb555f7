package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"todotimer/pkg/keymaps"
)

// EnvPrefix prefixes environment overrides, e.g. TODOTIMER_STORAGE_DRIVER
const EnvPrefix = "TODOTIMER"

// Config holds the application configuration
type Config struct {
	Storage             StorageConfig     `mapstructure:"storage"`
	Engine              EngineConfig      `mapstructure:"engine"`
	DefaultTimerMinutes int               `mapstructure:"default_timer_minutes"`
	KeyMap              map[string]string `mapstructure:"keymap"`
	StylesFile          string            `mapstructure:"styles_file"`
	LogLevel            string            `mapstructure:"log_level"`
}

// StorageConfig selects the persistence backend
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Key    string `mapstructure:"key"`
}

// EngineConfig holds the polling periods
type EngineConfig struct {
	TickInterval   time.Duration `mapstructure:"tick_interval"`
	ExpiryInterval time.Duration `mapstructure:"expiry_interval"`
}

// Styles holds the application colors and styling information
type Styles struct {
	// UI element colors
	BorderColor string `mapstructure:"border_color"`
	AccentColor string `mapstructure:"accent_color"`

	// Text colors
	NormalTextColor   string `mapstructure:"normal_text_color"`
	SelectedTextColor string `mapstructure:"selected_text_color"`
	SelectedBgColor   string `mapstructure:"selected_bg_color"`
	ErrorColor        string `mapstructure:"error_color"`

	// Task and timer colors
	CategoryColor string `mapstructure:"category_color"`
	ExpiredColor  string `mapstructure:"expired_color"`
	RunningColor  string `mapstructure:"running_color"`
	PausedColor   string `mapstructure:"paused_color"`
	DoneColor     string `mapstructure:"done_color"`
}

// DefaultDir is ~/.config/todotimer
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "todotimer"), nil
}

func setConfigDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("storage.driver", "sqlite3")
	v.SetDefault("storage.dsn", filepath.Join(configDir, "todo.db"))
	v.SetDefault("storage.key", "todos")
	v.SetDefault("engine.tick_interval", "1s")
	v.SetDefault("engine.expiry_interval", "1m")
	v.SetDefault("default_timer_minutes", 0)
	v.SetDefault("keymap", keymapDefaults())
	v.SetDefault("styles_file", filepath.Join(configDir, "styles.json"))
	v.SetDefault("log_level", "debug")
}

// keymapDefaults converts the default bindings into the nested form viper
// flattens into keymap.<action> keys
func keymapDefaults() map[string]any {
	out := make(map[string]any)
	for action, keys := range keymaps.GetDefaultKeyMappings() {
		out[strings.ToLower(action)] = keys
	}
	return out
}

// Load loads the application configuration from configPath, or from
// ~/.config/todotimer/config.json when it is empty. A missing file is created
// with the defaults. Environment variables prefixed with TODOTIMER_ override
// file values.
func Load(configPath string) (Config, Styles, error) {
	configDir, err := DefaultDir()
	if err != nil {
		return Config{}, Styles{}, err
	}
	if configPath == "" {
		configPath = filepath.Join(configDir, "config.json")
	} else {
		configDir = filepath.Dir(configPath)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setConfigDefaults(v, configDir)

	if err := readOrCreate(v, configPath); err != nil {
		return Config{}, Styles{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, Styles{}, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))

	// Now load the styles file
	styles, err := loadStyles(cfg.StylesFile)
	if err != nil {
		return cfg, styles, fmt.Errorf("error loading styles: %w", err)
	}

	return cfg, styles, nil
}

// readOrCreate reads the config file, writing the current defaults first
// when it does not exist
func readOrCreate(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := v.WriteConfigAs(path); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// DefaultStyles returns the built-in color scheme
func DefaultStyles() Styles {
	return Styles{
		BorderColor:       "240",
		AccentColor:       "205",
		NormalTextColor:   "86",
		SelectedTextColor: "229",
		SelectedBgColor:   "57",
		ErrorColor:        "9",
		CategoryColor:     "4",
		ExpiredColor:      "9",
		RunningColor:      "2",
		PausedColor:       "214",
		DoneColor:         "244",
	}
}

// loadStyles loads the application styles from the specified path
func loadStyles(stylesPath string) (Styles, error) {
	defaults := DefaultStyles()

	v := viper.New()
	v.SetConfigFile(stylesPath)
	v.SetConfigType("json")
	v.SetDefault("border_color", defaults.BorderColor)
	v.SetDefault("accent_color", defaults.AccentColor)
	v.SetDefault("normal_text_color", defaults.NormalTextColor)
	v.SetDefault("selected_text_color", defaults.SelectedTextColor)
	v.SetDefault("selected_bg_color", defaults.SelectedBgColor)
	v.SetDefault("error_color", defaults.ErrorColor)
	v.SetDefault("category_color", defaults.CategoryColor)
	v.SetDefault("expired_color", defaults.ExpiredColor)
	v.SetDefault("running_color", defaults.RunningColor)
	v.SetDefault("paused_color", defaults.PausedColor)
	v.SetDefault("done_color", defaults.DoneColor)

	if err := readOrCreate(v, stylesPath); err != nil {
		return defaults, err
	}

	var styles Styles
	if err := v.Unmarshal(&styles); err != nil {
		return defaults, err
	}
	return styles, nil
}
