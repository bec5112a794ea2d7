package api

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/sirupsen/logrus"

	"pdf_assembler/pdf"
)

// Config holds application configuration
type Config struct {
	Port              string `yaml:"port" validate:"required,numeric"`
	MaxFileSize       int64  `yaml:"max_file_size" validate:"gt=0"`
	Canvas            string `yaml:"canvas" validate:"required,canvas"`
	MaxConcurrentJobs int64  `yaml:"max_concurrent_jobs" validate:"gte=1"`
	OptimizeOutput    bool   `yaml:"optimize_output"`
	LogLevel          string `yaml:"log_level" validate:"oneof=trace debug info warn error"`
	LogFormat         string `yaml:"log_format" validate:"oneof=text json"`
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() *Config {
	return &Config{
		Port:              DefaultPort,
		MaxFileSize:       DefaultMaxFileSize,
		Canvas:            DefaultCanvasName,
		MaxConcurrentJobs: DefaultMaxConcurrentJobs,
		LogLevel:          "info",
		LogFormat:         "text",
	}
}

// LoadConfig builds the configuration from defaults, then the YAML file at
// path (skipped when path is empty), then environment variables.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	config.Port = getEnv("PORT", config.Port)
	config.MaxFileSize = getEnvInt64("MAX_FILE_SIZE", config.MaxFileSize)
	config.Canvas = getEnv("CANVAS", config.Canvas)
	config.MaxConcurrentJobs = getEnvInt64("MAX_CONCURRENT_JOBS", config.MaxConcurrentJobs)
	config.OptimizeOutput = getEnvBool("OPTIMIZE_OUTPUT", config.OptimizeOutput)
	config.LogLevel = getEnv("LOG_LEVEL", config.LogLevel)
	config.LogFormat = getEnv("LOG_FORMAT", config.LogFormat)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks every field against its constraints
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("canvas", func(fl validator.FieldLevel) bool {
		_, ok := pdf.CanvasByName(fl.Field().String())
		return ok
	}); err != nil {
		return err
	}
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// CanvasSize resolves the configured canvas name
func (c *Config) CanvasSize() pdf.Size {
	if size, ok := pdf.CanvasByName(c.Canvas); ok {
		return size
	}
	return pdf.DefaultCanvas
}

// NewLogger builds the logger described by the configuration
func (c *Config) NewLogger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(level)
	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
