package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Downloads DownloadsConfig `mapstructure:"downloads"`
	UI        UIConfig        `mapstructure:"ui"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// APIConfig holds image search API configuration
type APIConfig struct {
	Key     string `mapstructure:"key"`      // API key sent with every search
	BaseURL string `mapstructure:"base_url"` // Search endpoint base URL
}

// AuthConfig holds the optional hosted-identity service configuration.
// Left empty, the app runs anonymously; all local stores work the same.
type AuthConfig struct {
	URL     string `mapstructure:"url"`
	AnonKey string `mapstructure:"anon_key"`
}

// DownloadsConfig holds download destination configuration
type DownloadsConfig struct {
	Dir string `mapstructure:"dir"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	GridColumns int    `mapstructure:"grid_columns"`
	Theme       string `mapstructure:"theme"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Key:     "47419277-3b3a4dc29eefad9a96955e22a",
			BaseURL: "https://pixabay.com/api/",
		},
		Downloads: DownloadsConfig{
			Dir: defaultDownloadsPath(),
		},
		UI: UIConfig{
			GridColumns: 4,
			Theme:       "default",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "galleria", "galleria.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "galleria", "galleria.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "galleria")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "galleria")
	}
}

// defaultDataPath returns the default state database directory
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "galleria")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "galleria")
	}
}

// defaultDownloadsPath returns the default download destination
func defaultDownloadsPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "Downloads", "galleria")
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("GALLERIA")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("api.key", cfg.API.Key)
	viper.Set("api.base_url", cfg.API.BaseURL)
	viper.Set("auth.url", cfg.Auth.URL)
	viper.Set("auth.anon_key", cfg.Auth.AnonKey)
	viper.Set("downloads.dir", cfg.Downloads.Dir)
	viper.Set("ui.grid_columns", cfg.UI.GridColumns)
	viper.Set("ui.theme", cfg.UI.Theme)
	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDataPath returns the state database directory
func GetDataPath() string {
	return defaultDataPath()
}
