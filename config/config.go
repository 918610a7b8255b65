package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Redis struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	AuthServer struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"auth_server"`
	UserServer struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"user_server"`
	JWT struct {
		AccessSecret     string `mapstructure:"access_secret"`
		RefreshSecret    string `mapstructure:"refresh_secret"`
		AccessTTLMinutes int    `mapstructure:"access_ttl_minutes"`
		RefreshTTLHours  int    `mapstructure:"refresh_ttl_hours"`
	} `mapstructure:"jwt"`
	Providers struct {
		Google struct {
			TokenInfoURL string `mapstructure:"token_info_url"`
		} `mapstructure:"google"`
		Facebook struct {
			GraphURL string `mapstructure:"graph_url"`
		} `mapstructure:"facebook"`
		TimeoutSeconds int `mapstructure:"timeout_seconds"`
	} `mapstructure:"providers"`
}

// LoadConfig reads config.yml from the given path and returns the parsed
// configuration. The returned struct is handed to each component at
// construction; no package reads configuration ambiently.
func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return cfg, nil
}
