// Package config loads the application configuration from a vigil.yaml
// file and VIGIL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"vigil"
)

// Config holds the application configuration.
type Config struct {
	DataDir   string    `mapstructure:"data_dir"`
	Serial    Serial    `mapstructure:"serial"`
	Providers Providers `mapstructure:"providers"`
	Server    Server    `mapstructure:"server"`
}

// Serial configures the acquisition source.
type Serial struct {
	Port     string `mapstructure:"port"`
	BaudRate int    `mapstructure:"baud_rate"`
	Simulate bool   `mapstructure:"simulate"`
}

// PortConfig returns the serial settings as a connection config.
func (s Serial) PortConfig() vigil.SerialConfig {
	return vigil.SerialConfig{PortName: s.Port, BaudRate: s.BaudRate}
}

// Providers configures the model backends for the assistant.
type Providers struct {
	Default string `mapstructure:"default"`
	Ollama  Ollama `mapstructure:"ollama"`
	Gemini  Gemini `mapstructure:"gemini"`
}

// Ollama configures the local model backend.
type Ollama struct {
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// Gemini configures the hosted model backend.
type Gemini struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `mapstructure:"addr"`
}

// Load reads vigil.yaml from the usual locations and applies VIGIL_*
// environment overrides. A missing config file is not an error; the
// defaults stand.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("serial.port", "")
	v.SetDefault("serial.baud_rate", 115200)
	v.SetDefault("serial.simulate", false)
	v.SetDefault("providers.default", "ollama")
	v.SetDefault("providers.ollama.base_url", "http://127.0.0.1:11434")
	v.SetDefault("providers.ollama.model", "deepseek-r1:8b")
	v.SetDefault("providers.gemini.api_key", "")
	v.SetDefault("providers.gemini.model", "gemini-2.5-flash")
	v.SetDefault("server.addr", ":8090")

	v.SetConfigName("vigil")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "vigil"))
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("VIGIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	return cfg, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "vigil")
}
