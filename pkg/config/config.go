// Package config loads bizdesk settings from .bizdesk.yaml, BIZDESK_*
// environment variables and an optional .env file.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "BIZDESK"
	configName     = ".bizdesk" // .yaml is implicit
	configPathEnv  = "BIZDESK_CONFIG_PATH"
	dotEnvFilename = ".env"
)

// Keys understood in the config file and as BIZDESK_* variables (dots become
// underscores, so auth.url is BIZDESK_AUTH_URL).
const (
	KeyBackend       = "backend"
	KeyPath          = "path"
	KeyAuthURL       = "auth.url"
	KeyLogLevel      = "log.level"
	KeyReseedOnEmpty = "collection.reseed_on_empty"
	KeyThreshold     = "deadline.threshold"
	KeyServeAddr     = "serve.addr"
	KeyServePath     = "serve.path"
)

// Config is the resolved configuration.
type Config struct {
	Backend       string `json:"backend"`
	Path          string `json:"path"`
	AuthURL       string `json:"authUrl"`
	LogLevel      string `json:"logLevel"`
	ReseedOnEmpty bool   `json:"reseedOnEmpty"`
	Threshold     int    `json:"threshold"`
	ServeAddr     string `json:"serveAddr"`
	// ServePath is where the auth server keeps accounts, apart from Path so
	// logout never touches them.
	ServePath string `json:"servePath"`
	// File is the config file that was read, empty when none was found.
	File string `json:"file,omitempty"`
}

// Load reads the configuration. A missing config file or .env is not an
// error; a malformed one is.
func Load() (*Config, error) {
	if _, err := os.Stat(dotEnvFilename); err == nil {
		if err := godotenv.Load(dotEnvFilename); err != nil {
			return nil, errors.Wrapf(err, "config: loading %s", dotEnvFilename)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "config: stat %s", dotEnvFilename)
	}

	v := viper.New()
	v.SetDefault(KeyBackend, "diskv")
	v.SetDefault(KeyPath, "~/.bizdesk")
	v.SetDefault(KeyAuthURL, "http://localhost:3001")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyReseedOnEmpty, false)
	v.SetDefault(KeyThreshold, 15)
	v.SetDefault(KeyServeAddr, "127.0.0.1:3001")
	v.SetDefault(KeyServePath, "~/.bizdesk-server")

	v.SetConfigName(configName)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv(configPathEnv); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "config: reading config file")
		}
	}

	path, err := homedir.Expand(v.GetString(KeyPath))
	if err != nil {
		return nil, errors.Wrapf(err, "config: expanding %s", v.GetString(KeyPath))
	}

	servePath, err := homedir.Expand(v.GetString(KeyServePath))
	if err != nil {
		return nil, errors.Wrapf(err, "config: expanding %s", v.GetString(KeyServePath))
	}

	file := v.ConfigFileUsed()
	if file != "" {
		if abs, err := filepath.Abs(file); err == nil {
			file = abs
		}
	}

	return &Config{
		Backend:       v.GetString(KeyBackend),
		Path:          path,
		AuthURL:       strings.TrimRight(v.GetString(KeyAuthURL), "/"),
		LogLevel:      v.GetString(KeyLogLevel),
		ReseedOnEmpty: v.GetBool(KeyReseedOnEmpty),
		Threshold:     v.GetInt(KeyThreshold),
		ServeAddr:     v.GetString(KeyServeAddr),
		ServePath:     servePath,
		File:          file,
	}, nil
}
