package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Config is the full application configuration, loaded once at startup.
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Auth     AuthConfig     `json:"auth"`
	Jaeger   JaegerConfig   `json:"jaeger"`
	Log      LogConfig      `json:"log"`
	Seed     SeedConfig     `json:"seed"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Name         string `json:"name"`          // service name (also used by the tracer)
	Host         string `json:"host"`          // bind address
	Port         int    `json:"port"`          // HTTP port
	LoginBurst   int64  `json:"login_burst"`   // token bucket capacity for /login
	LoginPerSec  int64  `json:"login_per_sec"` // token bucket refill rate for /login
	ShutdownSecs int    `json:"shutdown_secs"` // graceful shutdown timeout
}

// DatabaseConfig describes the MySQL connection.
type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
	MaxIdle  int    `json:"max_idle"`
	MaxOpen  int    `json:"max_open"`
}

// DSN renders the MySQL connection string for the gorm driver.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User, d.Password, d.Host, d.Port, d.Database)
}

// AuthConfig configures session token signing.
type AuthConfig struct {
	JWTSecret    string `json:"jwt_secret"`
	Issuer       string `json:"issuer"`
	SessionHours int    `json:"session_hours"`
}

// JaegerConfig configures the tracer.
type JaegerConfig struct {
	Endpoint string  `json:"endpoint"`
	Sampler  float64 `json:"sampler"` // sample rate 0.0-1.0
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // json, text
	Output string `json:"output"` // stdout, file
	Path   string `json:"path"`   // log file path when output=file
}

// SeedConfig lists the built-in tenants that receive a bootstrap admin
// account on first startup. Operators must rotate the initial password
// before production use.
type SeedConfig struct {
	Tenants         []string `json:"tenants"`
	InitialPassword string   `json:"initial_password"`
}

var (
	globalConfig *Config
	configOnce   sync.Once
)

// LoadConfig reads the JSON config file. A missing file falls back to
// development defaults rather than failing.
func LoadConfig(configPath string) (*Config, error) {
	var err error
	configOnce.Do(func() {
		globalConfig = &Config{}
		if _, err = os.Stat(configPath); os.IsNotExist(err) {
			logrus.Warnf("Config file not found: %s, using default config", configPath)
			globalConfig = defaultConfig()
			err = nil
			return
		}

		data, readErr := os.ReadFile(configPath)
		if readErr != nil {
			err = fmt.Errorf("failed to read config file: %w", readErr)
			return
		}

		if unmarshalErr := json.Unmarshal(data, globalConfig); unmarshalErr != nil {
			err = fmt.Errorf("failed to parse config file: %w", unmarshalErr)
			return
		}
	})

	if err != nil {
		return nil, err
	}

	return globalConfig, nil
}

// GetConfig returns the loaded configuration, or the defaults when
// LoadConfig has not run yet.
func GetConfig() *Config {
	if globalConfig == nil {
		return defaultConfig()
	}
	return globalConfig
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name:         "fleet-server",
			Host:         "0.0.0.0",
			Port:         8080,
			LoginBurst:   10,
			LoginPerSec:  2,
			ShutdownSecs: 5,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     3306,
			User:     "root",
			Password: "root",
			Database: "frotafleet",
			MaxIdle:  10,
			MaxOpen:  100,
		},
		Auth: AuthConfig{
			JWTSecret:    "dev-only-secret",
			Issuer:       "frotafleet",
			SessionHours: 24,
		},
		Jaeger: JaegerConfig{
			Endpoint: "localhost:6831",
			Sampler:  1.0,
		},
		Log: LogConfig{
			Level:  "debug",
			Format: "text",
			Output: "stdout",
			Path:   "logs/app.log",
		},
		Seed: SeedConfig{
			Tenants:         []string{"JTD", "PCM"},
			InitialPassword: "123",
		},
	}
}
