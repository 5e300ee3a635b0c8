// Package config provides centralized configuration management for the cleaner.
// It loads configuration from an optional YAML file and environment variables
// with sensible defaults, and validates all settings on startup to fail fast
// on misconfiguration.
package config

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Input   InputConfig   `json:"input"`
	Output  OutputConfig  `json:"output"`
	Logging LoggingConfig `json:"logging"`
}

// InputConfig holds the source file settings.
type InputConfig struct {
	// Path is the CSV file to clean (default: Life_Insurance_Data.csv)
	Path string `json:"path" env:"CLEANER_INPUT_PATH" default:"Life_Insurance_Data.csv"`
}

// OutputConfig holds the cleaned file settings.
type OutputConfig struct {
	// Path is where the cleaned CSV is written (default: cleaned_life_insurance_data.csv)
	Path string `json:"path" env:"CLEANER_OUTPUT_PATH" default:"cleaned_life_insurance_data.csv"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `json:"level" env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `json:"format" env:"LOG_FORMAT" default:"text"`
}

// ConfigFileEnv names the variable holding an optional YAML config file path.
const ConfigFileEnv = "CLEANER_CONFIG_FILE"
