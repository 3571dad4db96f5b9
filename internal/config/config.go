package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API       APIConfig       `yaml:"api"`
	Chat      ChatConfig      `yaml:"chat"`
	Data      DataConfig      `yaml:"data"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Log       LogConfig       `yaml:"log"`
}

type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type ChatConfig struct {
	// TypingDelaySeconds paces the bot "typing" animation before a send
	// reaches the backend. It is a UX device, not a retry or backoff.
	TypingDelaySeconds int `yaml:"typing_delay_seconds"`
}

type DataConfig struct {
	Dir string `yaml:"dir"`
}

type DashboardConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

func Load(configFile string) *Config {
	c := &Config{
		API:       APIConfig{BaseURL: "https://api.melio.app/api/v1", TimeoutSeconds: 15},
		Chat:      ChatConfig{TypingDelaySeconds: 3},
		Data:      DataConfig{Dir: defaultDataDir()},
		Dashboard: DashboardConfig{Port: 9340},
		Log:       LogConfig{Level: "info", Console: false, MaxSizeMB: 20, MaxBackups: 3, MaxAgeDays: 30},
	}

	paths := []string{"etc/melio.yaml", filepath.Join(defaultDataDir(), "melio.yaml")}
	if configFile != "" {
		paths = []string{configFile}
	}
	for _, path := range paths {
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, c)
			break
		}
	}

	envOverride(&c.API.BaseURL, "MELIO_API_URL")
	envOverride(&c.Data.Dir, "MELIO_DATA_DIR")
	envOverride(&c.Log.Level, "MELIO_LOG_LEVEL")
	envOverride(&c.Log.File, "MELIO_LOG_FILE")
	envOverrideInt(&c.API.TimeoutSeconds, "MELIO_API_TIMEOUT")
	envOverrideInt(&c.Chat.TypingDelaySeconds, "MELIO_TYPING_DELAY")
	envOverrideInt(&c.Dashboard.Port, "MELIO_DASHBOARD_PORT")

	return c
}

func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

func (c *Config) TypingDelay() time.Duration {
	return time.Duration(c.Chat.TypingDelaySeconds) * time.Second
}

func (c *Config) DashboardAddr() string {
	return fmt.Sprintf(":%d", c.Dashboard.Port)
}

func (c *Config) StorePath() string {
	return filepath.Join(c.Data.Dir, "melio.db")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".melio"
	}
	return filepath.Join(home, ".melio")
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
