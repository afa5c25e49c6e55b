// Package config loads server configuration from defaults, an optional
// YAML file, and environment variable overrides, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	DB     DBConfig     `yaml:"db"`
	OGP    OGPConfig    `yaml:"ogp"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type OGPConfig struct {
	// TimeoutSeconds bounds each metadata fetch; slow pages must not
	// stall a save.
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"`
}

// Load builds the configuration. A config file is optional; missing files
// are ignored so the server runs with defaults out of the box.
func Load(configFile string) *Config {
	c := &Config{
		Server: ServerConfig{Port: 8080},
		Log:    LogConfig{Level: "info"},
		DB:     DBConfig{Path: "data/yaritai.db"},
		OGP:    OGPConfig{TimeoutSeconds: 10},
	}

	paths := []string{"etc/config.yaml", "/etc/yaritai/config.yaml"}
	if configFile != "" {
		paths = []string{configFile}
	}
	for _, path := range paths {
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, c)
			break
		}
	}

	envOverride(&c.Log.Level, "LOG_LEVEL")
	envOverride(&c.DB.Path, "DB_PATH")
	envOverride(&c.OGP.UserAgent, "OGP_USER_AGENT")
	envOverrideInt(&c.Server.Port, "PORT")
	envOverrideInt(&c.OGP.TimeoutSeconds, "OGP_TIMEOUT_SECONDS")

	return c
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// OGPTimeout returns the metadata fetch timeout as a duration.
func (c *Config) OGPTimeout() time.Duration {
	return time.Duration(c.OGP.TimeoutSeconds) * time.Second
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
