package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	UI       UIConfig
	Weather  WeatherConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DateFormat     string
	CurrencySymbol string
	Timezone       string
	Units          string // metric or imperial
}

// WeatherConfig holds the simulated station settings.
type WeatherConfig struct {
	Station      string
	ForecastDays int
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	var c Config
	c.Database.Path = filepath.Join(os.Getenv("HOME"), ".local", "share", "farmkeep", "farmkeep.db")
	c.UI = UIConfig{DateFormat: "02/01", CurrencySymbol: "$", Timezone: "Local", Units: "metric"}
	c.Weather = WeatherConfig{Station: "Home Farm", ForecastDays: 7}
	return c
}

// Load reads configuration from file and env. Env var overrides use prefix FARMKEEP_.
func Load() (Config, error) {
	v := viper.New()

	def := Defaults()
	v.SetDefault("database.path", def.Database.Path)
	v.SetDefault("ui.date_format", def.UI.DateFormat)
	v.SetDefault("ui.currency_symbol", def.UI.CurrencySymbol)
	v.SetDefault("ui.timezone", def.UI.Timezone)
	v.SetDefault("ui.units", def.UI.Units)
	v.SetDefault("weather.station", def.Weather.Station)
	v.SetDefault("weather.forecast_days", def.Weather.ForecastDays)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("FARMKEEP_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "farmkeep"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FARMKEEP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used by the settings view for preference changes.
func Save(cfg Config) error {
	path := os.Getenv("FARMKEEP_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "farmkeep", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("ui.units", cfg.UI.Units)
	v.Set("weather.station", cfg.Weather.Station)
	v.Set("weather.forecast_days", cfg.Weather.ForecastDays)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
