package store

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the resolved runtime configuration.
type Config interface {
	// BasePath is the directory preferences are stored in.
	BasePath() string
	// APIBase is the backend base URL, without the /api suffix.
	APIBase() string
	// Timeout bounds each HTTP request; zero leaves the transport default.
	Timeout() time.Duration
}

const (
	DefaultPath = "~/.contentcal"
	DefaultAPI  = "http://localhost:8080"
)

// LoadConfig reads .env, then a .contentcal yaml file, then CONTENTCAL_*
// environment variables, later sources winning.
func LoadConfig() (Config, error) {
	// A missing .env is normal; the OS environment is used as is.
	_ = godotenv.Load()

	viper.SetDefault("path", DefaultPath)
	viper.SetDefault("api", DefaultAPI)
	viper.SetDefault("timeout", "0s")
	viper.SetConfigName(".contentcal") // .yaml is implicit
	viper.SetEnvPrefix("CONTENTCAL")
	viper.AutomaticEnv()

	if override := os.Getenv("CONTENTCAL_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config file: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &FileConfig{
		Path:        path,
		API:         viper.GetString("api"),
		HTTPTimeout: viper.GetDuration("timeout"),
	}, nil
}

// FileConfig is the plain Config implementation. Tests and flags build it
// directly.
type FileConfig struct {
	Path        string        `json:"path"`
	API         string        `json:"api"`
	HTTPTimeout time.Duration `json:"timeout"`
}

func (f *FileConfig) BasePath() string {
	return f.Path
}

func (f *FileConfig) APIBase() string {
	if f.API == "" {
		return DefaultAPI
	}
	return f.API
}

func (f *FileConfig) Timeout() time.Duration {
	return f.HTTPTimeout
}
