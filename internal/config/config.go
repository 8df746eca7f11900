package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrMissingAPIKey is returned when no generative model credential is configured.
var ErrMissingAPIKey = errors.New("GOOGLE_API_KEY is not set")

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `json:"server"`
	GenAI   GenAIConfig   `json:"genai"`
	Report  ReportConfig  `json:"report"`
	Logging LoggingConfig `json:"logging"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	Mode            string        `json:"mode"` // debug, release, test
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	IdleTimeout     time.Duration `json:"idle_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

// GenAIConfig represents the generative text service configuration
type GenAIConfig struct {
	APIKey  string        `json:"-"`
	Model   string        `json:"model"`
	BaseURL string        `json:"base_url,omitempty"`
	Timeout time.Duration `json:"timeout"` // zero leaves the request context in charge
}

// ReportConfig represents report composition settings
type ReportConfig struct {
	TempDir     string `json:"temp_dir,omitempty"`
	Author      string `json:"author,omitempty"`
	ChartWidth  int    `json:"chart_width"`
	ChartHeight int    `json:"chart_height"`
}

// LoggingConfig
type LoggingConfig struct {
	Level       string `json:"level"`
	Development bool   `json:"development"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Mode:            "release",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    2 * time.Minute,
			IdleTimeout:     time.Minute,
			ShutdownTimeout: 5 * time.Second,
		},
		GenAI: GenAIConfig{
			Model: "gemini-2.5-flash",
		},
		Report: ReportConfig{
			ChartWidth:  800,
			ChartHeight: 600,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from a .env file, an optional JSON file and
// environment variables, in that order of increasing precedence for the
// values they share, and validates the result.
func LoadConfig(configPath string) (*Config, error) {
	config := Default()

	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	// Load from file if exists
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	if err := overrideWithEnv(config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func overrideWithEnv(config *Config) error {
	config.Server.Host = getEnv("SERVER_HOST", config.Server.Host)
	if port := getEnv("SERVER_PORT", ""); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid SERVER_PORT %q: %w", port, err)
		}
		config.Server.Port = p
	}
	config.Server.Mode = getEnv("GIN_MODE", config.Server.Mode)

	config.GenAI.APIKey = getEnv("GOOGLE_API_KEY", config.GenAI.APIKey)
	config.GenAI.Model = getEnv("GENAI_MODEL", config.GenAI.Model)
	config.GenAI.BaseURL = getEnv("GENAI_BASE_URL", config.GenAI.BaseURL)
	if timeout := getEnv("GENAI_TIMEOUT", ""); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid GENAI_TIMEOUT %q: %w", timeout, err)
		}
		config.GenAI.Timeout = d
	}

	config.Report.TempDir = getEnv("REPORT_TEMP_DIR", config.Report.TempDir)
	config.Logging.Level = getEnv("LOG_LEVEL", config.Logging.Level)
	return nil
}

// Validate checks that the configuration can start the application
func (c *Config) Validate() error {
	if c.GenAI.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.GenAI.Model == "" {
		return errors.New("genai model must not be empty")
	}
	if c.GenAI.Timeout < 0 {
		return fmt.Errorf("genai timeout must not be negative, got %s", c.GenAI.Timeout)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown server mode %q", c.Server.Mode)
	}
	if c.Report.ChartWidth <= 0 || c.Report.ChartHeight <= 0 {
		return fmt.Errorf("chart size must be positive, got %dx%d", c.Report.ChartWidth, c.Report.ChartHeight)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

// NewLogger builds the application logger
func (c *LoggingConfig) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	if c.Development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
