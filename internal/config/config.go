package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings holds user-level lenv configuration.
type Settings struct {
	// DefaultDistro is used by init when --distro is not given.
	DefaultDistro string `mapstructure:"default_distro"`

	// WSLBinary overrides the wsl executable (empty = platform default).
	WSLBinary string `mapstructure:"wsl_binary"`

	// Shell is the interactive shell started by activate.
	Shell string `mapstructure:"shell"`

	// StatusTimeout bounds the subsystem presence check.
	StatusTimeout time.Duration `mapstructure:"status_timeout"`

	// TerminateTimeout bounds wsl --terminate during destroy.
	TerminateTimeout time.Duration `mapstructure:"terminate_timeout"`

	// UnregisterTimeout bounds wsl --unregister during destroy.
	UnregisterTimeout time.Duration `mapstructure:"unregister_timeout"`

	// DestroyGrace is the pause between terminate and unregister.
	DestroyGrace time.Duration `mapstructure:"destroy_grace"`

	// DownloadTimeout bounds a rootfs download (0 = no limit).
	DownloadTimeout time.Duration `mapstructure:"download_timeout"`

	// LogLevel is the diagnostic log level (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`
}

// DefaultSettings returns Settings with the stock values.
func DefaultSettings() *Settings {
	return &Settings{
		DefaultDistro:     "alpine",
		WSLBinary:         "",
		Shell:             "/bin/sh",
		StatusTimeout:     5 * time.Second,
		TerminateTimeout:  10 * time.Second,
		UnregisterTimeout: 20 * time.Second,
		DestroyGrace:      2 * time.Second,
		DownloadTimeout:   0,
		LogLevel:          "warn",
	}
}

// Global holds the loaded settings.
var Global *Settings

// Load reads settings from file, environment, and defaults into Global.
func Load() error {
	paths, err := GetPaths()
	if err != nil {
		return fmt.Errorf("failed to determine paths: %w", err)
	}

	settings, err := LoadFrom(viper.New(), paths.HomeDir)
	if err != nil {
		return err
	}
	Global = settings
	return nil
}

// LoadFrom reads settings.yaml from dir and LENV_* environment variables
// using the given viper instance.
func LoadFrom(v *viper.Viper, dir string) (*Settings, error) {
	for key, value := range DefaultSettings().values() {
		v.SetDefault(key, value)
	}

	v.SetConfigName("settings")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// Environment variable support: LENV_DEFAULT_DISTRO, LENV_WSL_BINARY, etc.
	v.SetEnvPrefix("LENV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Settings file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return settings, nil
}

// Current returns Global, falling back to defaults when Load was not called
// or failed.
func Current() *Settings {
	if Global == nil {
		return DefaultSettings()
	}
	return Global
}

// values maps each settings key to its value.
func (s *Settings) values() map[string]any {
	return map[string]any{
		"default_distro":     s.DefaultDistro,
		"wsl_binary":         s.WSLBinary,
		"shell":              s.Shell,
		"status_timeout":     s.StatusTimeout,
		"terminate_timeout":  s.TerminateTimeout,
		"unregister_timeout": s.UnregisterTimeout,
		"destroy_grace":      s.DestroyGrace,
		"download_timeout":   s.DownloadTimeout,
		"log_level":          s.LogLevel,
	}
}

// Map returns the settings keyed as in settings.yaml, durations rendered as
// strings.
func (s *Settings) Map() map[string]string {
	out := make(map[string]string)
	for key, value := range s.values() {
		out[key] = fmt.Sprint(value)
	}
	return out
}

// Keys returns the valid settings keys, sorted.
func Keys() []string {
	values := DefaultSettings().values()
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// SetValue stores key=value in settings.yaml under dir, keeping the other
// keys in the file. The value is checked by loading the result the way Load
// does; fatal validation issues for the key reject it.
func SetValue(dir, key, value string) error {
	if _, ok := DefaultSettings().values()[key]; !ok {
		return fmt.Errorf("unknown setting %q, valid keys: %s", key, strings.Join(Keys(), ", "))
	}

	path := filepath.Join(dir, "settings.yaml")
	file := viper.New()
	file.SetConfigFile(path)
	file.SetConfigType("yaml")
	if err := file.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	file.Set(key, value)

	check := viper.New()
	for k, v := range DefaultSettings().values() {
		check.SetDefault(k, v)
	}
	if err := check.MergeConfigMap(file.AllSettings()); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	settings := &Settings{}
	if err := check.Unmarshal(settings); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	for _, issue := range ValidateSettings(settings) {
		if issue.Fatal && issue.Field == key {
			return fmt.Errorf("invalid value for %s: %s", key, issue.Message)
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return file.WriteConfigAs(path)
}
