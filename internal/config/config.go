// Package config loads and validates application configuration from
// environment variables and an optional YAML file, and owns the managed
// directory layout.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Sources SourcesConfig `yaml:"sources" envconfig:"SOURCES"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/mdscli.log"`
}

// PathsConfig contains file system paths configuration.
type PathsConfig struct {
	DataDir   string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	CacheDir  string `yaml:"cache_dir" envconfig:"CACHE_DIR" default:"data/cache"`
	ExportDir string `yaml:"export_dir" envconfig:"EXPORT_DIR" default:"data/exports"`
	LogsDir   string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// SourcesConfig contains the upstream source configuration.
type SourcesConfig struct {
	APIBaseURL      string        `yaml:"api_base_url" envconfig:"API_BASE_URL" default:"https://reportcard.msde.maryland.gov/api"`
	DownloadBaseURL string        `yaml:"download_base_url" envconfig:"DOWNLOAD_BASE_URL" default:"https://marylandpublicschools.org/about/Documents"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" default:"60s"`
}

// Load loads configuration from environment variables and an optional
// config file. Environment wins over file, file wins over defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("MDS", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if data, err := os.ReadFile(configFilePath()); err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		cfg.applyFile(fileCfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// applyFile overlays file values onto cfg for fields the environment did
// not set explicitly. envconfig has already filled defaults, so presence of
// the env var is what decides, not the field value.
func (c *Config) applyFile(file Config) {
	overlayInt := func(envVar string, dst *int, v int) {
		if _, set := os.LookupEnv(envVar); !set && v != 0 {
			*dst = v
		}
	}
	overlayStr := func(envVar string, dst *string, v string) {
		if _, set := os.LookupEnv(envVar); !set && v != "" {
			*dst = v
		}
	}
	overlayDur := func(envVar string, dst *time.Duration, v time.Duration) {
		if _, set := os.LookupEnv(envVar); !set && v != 0 {
			*dst = v
		}
	}

	overlayInt("MDS_SERVER_PORT", &c.Server.Port, file.Server.Port)
	overlayDur("MDS_SERVER_READ_TIMEOUT", &c.Server.ReadTimeout, file.Server.ReadTimeout)
	overlayDur("MDS_SERVER_WRITE_TIMEOUT", &c.Server.WriteTimeout, file.Server.WriteTimeout)
	overlayDur("MDS_SERVER_IDLE_TIMEOUT", &c.Server.IdleTimeout, file.Server.IdleTimeout)
	overlayDur("MDS_SERVER_SHUTDOWN_TIMEOUT", &c.Server.ShutdownTimeout, file.Server.ShutdownTimeout)

	overlayStr("MDS_LOGGING_LEVEL", &c.Logging.Level, file.Logging.Level)
	overlayStr("MDS_LOGGING_OUTPUT", &c.Logging.Output, file.Logging.Output)
	overlayStr("MDS_LOGGING_FILE_PATH", &c.Logging.FilePath, file.Logging.FilePath)

	overlayStr("MDS_PATHS_DATA_DIR", &c.Paths.DataDir, file.Paths.DataDir)
	overlayStr("MDS_PATHS_CACHE_DIR", &c.Paths.CacheDir, file.Paths.CacheDir)
	overlayStr("MDS_PATHS_EXPORT_DIR", &c.Paths.ExportDir, file.Paths.ExportDir)
	overlayStr("MDS_PATHS_LOGS_DIR", &c.Paths.LogsDir, file.Paths.LogsDir)

	overlayStr("MDS_SOURCES_API_BASE_URL", &c.Sources.APIBaseURL, file.Sources.APIBaseURL)
	overlayStr("MDS_SOURCES_DOWNLOAD_BASE_URL", &c.Sources.DownloadBaseURL, file.Sources.DownloadBaseURL)
	overlayDur("MDS_SOURCES_REQUEST_TIMEOUT", &c.Sources.RequestTimeout, file.Sources.RequestTimeout)
}

func configFilePath() string {
	if path := os.Getenv("MDS_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	if c.Paths.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	return nil
}
