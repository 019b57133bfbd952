package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Tools     ToolsConfig     `yaml:"tools"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host           string        `yaml:"host" envconfig:"SERVER_HOST"`
	Port           int           `yaml:"port" envconfig:"SERVER_PORT"`
	ReadTimeout    time.Duration `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT"`
	RequestTimeout time.Duration `yaml:"request_timeout" envconfig:"SERVER_REQUEST_TIMEOUT"`
}

// StorageConfig holds filesystem configuration for merged output.
type StorageConfig struct {
	OutputDir string `yaml:"output_dir" envconfig:"STORAGE_OUTPUT_DIR"`
}

// ToolsConfig holds external tool configuration.
type ToolsConfig struct {
	YtDlpPath      string        `yaml:"ytdlp_path" envconfig:"TOOLS_YTDLP_PATH"`
	FFmpegPath     string        `yaml:"ffmpeg_path" envconfig:"TOOLS_FFMPEG_PATH"`
	CertCheck      bool          `yaml:"cert_check" envconfig:"TOOLS_CERT_CHECK"`
	ExtractTimeout time.Duration `yaml:"extract_timeout" envconfig:"TOOLS_EXTRACT_TIMEOUT"`
	MergeTimeout   time.Duration `yaml:"merge_timeout" envconfig:"TOOLS_MERGE_TIMEOUT"`
}

// RateLimitConfig holds the global request limiter configuration.
// RPS of zero disables limiting.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps" envconfig:"RATE_LIMIT_RPS"`
	Burst int     `yaml:"burst" envconfig:"RATE_LIMIT_BURST"`
}

// Default returns the configuration used when neither a file nor the
// environment sets a value.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           3000,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   15 * time.Minute,
			RequestTimeout: 15 * time.Minute,
		},
		Storage: StorageConfig{
			OutputDir: "downloads",
		},
		Tools: ToolsConfig{
			YtDlpPath:      "yt-dlp",
			FFmpegPath:     "ffmpeg",
			CertCheck:      false,
			ExtractTimeout: 2 * time.Minute,
			MergeTimeout:   10 * time.Minute,
		},
		RateLimit: RateLimitConfig{
			RPS:   0,
			Burst: 10,
		},
	}
}

// Load reads configuration from file and environment variables.
// A .env file in the working directory is loaded first if present.
// Environment variables override file values.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	// Load from YAML file if provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	// Override with environment variables. Fields carry no default tags so
	// unset variables leave file values alone.
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Storage.OutputDir == "" {
		return fmt.Errorf("STORAGE_OUTPUT_DIR is required")
	}
	if c.Tools.YtDlpPath == "" {
		return fmt.Errorf("TOOLS_YTDLP_PATH is required")
	}
	if c.Tools.FFmpegPath == "" {
		return fmt.Errorf("TOOLS_FFMPEG_PATH is required")
	}
	if c.Tools.ExtractTimeout <= 0 {
		return fmt.Errorf("TOOLS_EXTRACT_TIMEOUT must be positive")
	}
	if c.Tools.MergeTimeout <= 0 {
		return fmt.Errorf("TOOLS_MERGE_TIMEOUT must be positive")
	}
	if c.RateLimit.RPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS cannot be negative")
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled")
	}
	return nil
}

// Address returns the server address in host:port format.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
