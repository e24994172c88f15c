package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings holds the values an operator may override per deployment.
type Settings struct {
	Env            string `yaml:"env"`
	ServerAddress  string `yaml:"server_address"`
	RedisAddress   string `yaml:"redis_address"`
	RedisPassword  string `yaml:"redis_password"`
	RedisDB        int    `yaml:"redis_db"`
	HistoricalPath string `yaml:"historical_path"`
	ForecastPath   string `yaml:"forecast_path"`
	WatchSources   bool   `yaml:"watch_sources"`
}

// DefaultSettings mirrors the package constants.
func DefaultSettings() *Settings {
	return &Settings{
		Env:            "dev",
		ServerAddress:  SERVER_ADDRESS,
		RedisAddress:   REDIS_DB_ADDRESS,
		RedisPassword:  REDIS_DB_PASSWORD,
		RedisDB:        REDIS_DB,
		HistoricalPath: GetResourcePath(HISTORICAL_DATA_RESOURCE),
		ForecastPath:   GetResourcePath(FORECAST_DATA_RESOURCE),
		WatchSources:   true,
	}
}

// LoadSettings starts from the defaults, applies the YAML file at path (a
// missing file is not an error) and finally the PARK_* environment variables.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, s); err != nil {
				return nil, fmt.Errorf("failed to unmarshal settings %q: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read settings %q: %w", path, err)
		}
	}

	applyEnv(s)
	return s, nil
}

func applyEnv(s *Settings) {
	if v := os.Getenv("PARK_ENV"); v != "" {
		s.Env = v
	}
	if v := os.Getenv("PARK_SERVER_ADDRESS"); v != "" {
		s.ServerAddress = v
	}
	if v := os.Getenv("PARK_REDIS_ADDRESS"); v != "" {
		s.RedisAddress = v
	}
	if v := os.Getenv("PARK_REDIS_PASSWORD"); v != "" {
		s.RedisPassword = v
	}
	if v := os.Getenv("PARK_HISTORICAL_PATH"); v != "" {
		s.HistoricalPath = v
	}
	if v := os.Getenv("PARK_FORECAST_PATH"); v != "" {
		s.ForecastPath = v
	}
}
