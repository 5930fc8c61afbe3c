package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ErrEmptyName is returned when a config file parses without error but
// carries no strategy name (the sentinel both loaders treat as a parse
// failure).
var ErrEmptyName = fmt.Errorf("config: strategy name is empty")

// LoadYAMLFile reads path as YAML into a StrategyConfig seeded with
// Default(), then validates it: read file, unmarshal, validate.
func LoadYAMLFile(path string) (StrategyConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return StrategyConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return StrategyConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Name == "" {
		return StrategyConfig{}, ErrEmptyName
	}
	if err := cfg.Validate(); err != nil {
		return StrategyConfig{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// LoadWithOverrides layers a .env file and FLUXBACK_-prefixed environment
// variables over the YAML file at path using viper, for the run command's
// --strategy flag. A missing .env is not an error (godotenv.Load returning
// an error just means there is nothing to overlay).
func LoadWithOverrides(path string) (StrategyConfig, error) {
	_ = godotenv.Load()

	cfg := Default()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("FLUXBACK")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return StrategyConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return StrategyConfig{}, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if cfg.Name == "" {
		return StrategyConfig{}, ErrEmptyName
	}
	if err := cfg.Validate(); err != nil {
		return StrategyConfig{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
