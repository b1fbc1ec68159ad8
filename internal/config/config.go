// Package config handles configuration management for salesmart.
// Configuration is loaded from config files and CLI flags; CLI flags take
// precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for salesmart.
type Config struct {
	// Connection is the PostgreSQL connection string.
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Load holds configuration for the load subcommand.
	Load LoadConfig `mapstructure:"load"`

	// Sample holds configuration for the sample subcommand.
	Sample SampleConfig `mapstructure:"sample"`
}

// LoadConfig holds configuration for the ETL load.
type LoadConfig struct {
	// OrdersFile is the path to the orders CSV source.
	OrdersFile string `mapstructure:"orders_file"`

	// ProductsFile is the path to the products CSV source.
	ProductsFile string `mapstructure:"products_file"`
}

// SampleConfig holds configuration for sample data generation.
type SampleConfig struct {
	// Products is the number of products to generate.
	Products int `mapstructure:"products"`

	// Orders is the number of order lines to generate.
	Orders int `mapstructure:"orders"`

	// Seed makes generation reproducible when non-zero.
	Seed uint64 `mapstructure:"seed"`

	// OutputDir is where the sample CSV files are written.
	OutputDir string `mapstructure:"output_dir"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Load: LoadConfig{
			OrdersFile:   "data/orders.csv",
			ProductsFile: "data/products.csv",
		},
		Sample: SampleConfig{
			Products:  25,
			Orders:    500,
			OutputDir: "data",
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./salesmart.yaml
// 3. ~/.config/salesmart/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("salesmart")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "salesmart"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}

// ValidateLoad checks configuration required for the load command.
func (c *Config) ValidateLoad() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Load.OrdersFile == "" {
		return fmt.Errorf("orders file is required for load")
	}
	if c.Load.ProductsFile == "" {
		return fmt.Errorf("products file is required for load")
	}
	return nil
}

// ValidateSample checks configuration required for the sample command.
func (c *Config) ValidateSample() error {
	if c.Sample.Products < 1 {
		return fmt.Errorf("sample products must be at least 1")
	}
	if c.Sample.Orders < 1 {
		return fmt.Errorf("sample orders must be at least 1")
	}
	if c.Sample.OutputDir == "" {
		return fmt.Errorf("sample output directory is required")
	}
	return nil
}
