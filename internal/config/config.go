package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"titanicdash/internal/errors"

	"gopkg.in/yaml.v3"
)

// Data source kinds
const (
	SourceOpenML   = "openml"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	Data   DataConfig   `yaml:"data"`
	Charts ChartConfig  `yaml:"charts"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string `yaml:"port"`
	APIPort string `yaml:"api_port"`
	GinMode string `yaml:"gin_mode"`
}

// DataConfig selects and parameterizes the passenger data source
type DataConfig struct {
	Source         string        `yaml:"source"`
	OpenMLBaseURL  string        `yaml:"openml_base_url"`
	DatasetName    string        `yaml:"dataset_name"`
	DatasetVersion int           `yaml:"dataset_version"`
	File           string        `yaml:"file"`
	DatabaseURL    string        `yaml:"database_url"`
	PassengerQuery string        `yaml:"passenger_query"`
	FetchTimeout   time.Duration `yaml:"fetch_timeout"`
}

// ChartConfig holds chart rendering settings
type ChartConfig struct {
	Format string `yaml:"format"` // png or svg
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultPassengerQuery reads the columns the dashboard needs
const DefaultPassengerQuery = "SELECT age, sex, pclass, survived, name FROM passengers"

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    "8080",
			APIPort: "8081",
			GinMode: "release",
		},
		Data: DataConfig{
			Source:         SourceOpenML,
			OpenMLBaseURL:  "https://www.openml.org",
			DatasetName:    "titanic",
			DatasetVersion: 1,
			PassengerQuery: DefaultPassengerQuery,
			FetchTimeout:   30 * time.Second,
		},
		Charts: ChartConfig{
			Format: "png",
			Width:  640,
			Height: 480,
		},
		Log: LogConfig{Level: "INFO"},
	}
}

// Load reads the optional CONFIG_FILE, applies environment overrides and validates
func Load() (*Config, error) {
	config := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, config); err != nil {
			return nil, errors.Wrap(err, "failed to load configuration file")
		}
	}

	applyServerEnv(&config.Server)
	applyDataEnv(&config.Data)
	applyChartEnv(&config.Charts)
	config.Log.Level = getEnvOrDefault("LOG_LEVEL", config.Log.Level)

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return errors.Wrapf(errors.ConfigInvalid(err.Error()), "invalid YAML in %s", path)
	}
	return nil
}

func applyServerEnv(c *ServerConfig) {
	c.Port = getEnvOrDefault("PORT", c.Port)
	c.APIPort = getEnvOrDefault("API_PORT", c.APIPort)
	c.GinMode = getEnvOrDefault("GIN_MODE", c.GinMode)
}

func applyDataEnv(c *DataConfig) {
	c.Source = strings.ToLower(getEnvOrDefault("DATA_SOURCE", c.Source))
	c.OpenMLBaseURL = strings.TrimRight(getEnvOrDefault("OPENML_BASE_URL", c.OpenMLBaseURL), "/")
	c.DatasetName = getEnvOrDefault("DATASET_NAME", c.DatasetName)
	c.DatasetVersion = getEnvIntOrDefault("DATASET_VERSION", c.DatasetVersion)
	c.File = getEnvOrDefault("DATA_FILE", c.File)
	c.DatabaseURL = getEnvOrDefault("DATABASE_URL", c.DatabaseURL)
	c.PassengerQuery = getEnvOrDefault("PASSENGER_QUERY", c.PassengerQuery)
	c.FetchTimeout = getEnvDurationOrDefault("FETCH_TIMEOUT", c.FetchTimeout)
}

func applyChartEnv(c *ChartConfig) {
	c.Format = strings.ToLower(getEnvOrDefault("CHART_FORMAT", c.Format))
	c.Width = getEnvIntOrDefault("CHART_WIDTH", c.Width)
	c.Height = getEnvIntOrDefault("CHART_HEIGHT", c.Height)
}

func validateConfig(config *Config) error {
	switch config.Data.Source {
	case SourceOpenML:
		if config.Data.OpenMLBaseURL == "" || config.Data.DatasetName == "" {
			return errors.ConfigInvalid("OPENML_BASE_URL and DATASET_NAME are required for the openml source")
		}
		if config.Data.DatasetVersion < 1 {
			return errors.ConfigInvalid("DATASET_VERSION must be positive")
		}
	case SourceFile:
		if config.Data.File == "" {
			return errors.ConfigInvalid("DATA_FILE is required for the file source")
		}
	case SourcePostgres:
		if config.Data.DatabaseURL == "" {
			return errors.ConfigInvalid("DATABASE_URL is required for the postgres source")
		}
	default:
		return errors.ConfigInvalid("DATA_SOURCE must be one of openml, file, postgres")
	}
	if config.Data.FetchTimeout <= 0 {
		return errors.ConfigInvalid("FETCH_TIMEOUT must be positive")
	}
	if config.Charts.Format != "png" && config.Charts.Format != "svg" {
		return errors.ConfigInvalid("CHART_FORMAT must be png or svg")
	}
	if config.Charts.Width < 100 || config.Charts.Height < 100 {
		return errors.ConfigInvalid("chart dimensions must be at least 100px")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
