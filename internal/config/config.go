// Package config loads server settings: defaults first, then an optional
// config file in the config dir, then REVEILLE_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jordanpayne/reveille/internal/constants"
)

type Server struct {
	Address  string
	Database string // empty selects the in-memory store
	APIToken string // empty disables auth
	Debug    bool
}

// Dir returns the application config directory, creating it if needed.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, constants.AppName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

// LoadServer reads server configuration. A missing config file is fine;
// defaults and environment cover everything.
func LoadServer(configDir string) (Server, error) {
	v := viper.New()
	v.SetDefault("address", ":5000")
	v.SetDefault("database", "")
	v.SetDefault("api_token", "")
	v.SetDefault("debug", false)

	v.SetEnvPrefix(strings.ToUpper(constants.AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configDir != "" {
		v.SetConfigName("server")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Server{}, err
			}
		}
	}

	return Server{
		Address:  v.GetString("address"),
		Database: v.GetString("database"),
		APIToken: v.GetString("api_token"),
		Debug:    v.GetBool("debug"),
	}, nil
}
