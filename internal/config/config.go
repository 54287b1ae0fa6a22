// Package config loads plano settings from config.yaml and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/LPereira2025/Plano-Emagrecimento/internal/app"
)

const envPrefix = "PLANO"

type Config struct {
	DBPath string       `mapstructure:"db"`
	Gemini GeminiConfig `mapstructure:"gemini"`
	Assets AssetsConfig `mapstructure:"assets"`
	Log    LogConfig    `mapstructure:"log"`
}

type GeminiConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
	Endpoint string `mapstructure:"endpoint"`
}

type AssetsConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Listen  string `mapstructure:"listen"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
	JSON  bool   `mapstructure:"json"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db", "")
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.endpoint", "https://generativelanguage.googleapis.com")
	v.SetDefault("assets.base_url", "")
	v.SetDefault("assets.listen", "127.0.0.1:8080")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
	v.SetDefault("log.json", false)
}

// Load reads file (or config.yaml in the config dir when file is empty) and
// overlays PLANO_* environment variables. A missing default file is not an
// error; a missing explicit file is.
func Load(v *viper.Viper, file string) (Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("gemini.api_key", envPrefix+"_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY"); err != nil {
		return Config{}, fmt.Errorf("bind api key env: %w", err)
	}

	if file != "" {
		v.SetConfigFile(app.ExpandPath(file))
	} else {
		v.AddConfigPath(app.ConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.DBPath != "" {
		cfg.DBPath = app.ExpandPath(cfg.DBPath)
	}
	if cfg.Log.File != "" {
		cfg.Log.File = app.ExpandPath(cfg.Log.File)
	}
	return cfg, nil
}

// WriteDefault creates a config file with the default settings at path
// unless one already exists. It reports whether a file was written.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	if err := v.SafeWriteConfigAs(path); err != nil {
		return false, fmt.Errorf("write default config: %w", err)
	}
	return true, nil
}
