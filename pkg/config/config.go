// Package config loads settings from .posts.yaml, POSTS_* environment
// variables and defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/posts/pkg/layout"
	"tableflip.dev/posts/pkg/post"
)

const (
	KeyURL       = "url"
	KeyTimeout   = "timeout"
	KeyLogPath   = "log_path"
	KeyCellWidth = "cell_width"
	KeyAddr      = "addr"
)

// Config is the resolved configuration.
type Config struct {
	URL       string        `json:"url"`
	Timeout   time.Duration `json:"timeout"`
	LogPath   string        `json:"log_path"`
	CellWidth int           `json:"cell_width"`
	Addr      string        `json:"addr"`
}

// New returns a viper instance with defaults, env binding and config search
// paths set up, but nothing read yet.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyURL, post.DefaultURL)
	v.SetDefault(KeyTimeout, "0s")
	v.SetDefault(KeyLogPath, "~/.posts.log")
	v.SetDefault(KeyCellWidth, layout.DefaultCellWidth)
	v.SetDefault(KeyAddr, ":8080")

	v.SetConfigName(".posts") // .yaml is implicit
	v.SetEnvPrefix("POSTS")
	v.AutomaticEnv()

	if override := os.Getenv("POSTS_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	return v
}

// Load reads the config file if one exists and resolves the settings. A
// missing file is fine; an unreadable one is an error.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = New()
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return resolve(v)
}

func resolve(v *viper.Viper) (*Config, error) {
	timeout, err := time.ParseDuration(v.GetString(KeyTimeout))
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", KeyTimeout, v.GetString(KeyTimeout), err)
	}
	if timeout < 0 {
		return nil, fmt.Errorf("invalid %s %q: must not be negative", KeyTimeout, v.GetString(KeyTimeout))
	}
	logPath, err := homedir.Expand(v.GetString(KeyLogPath))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyLogPath, err)
	}
	cellWidth := v.GetInt(KeyCellWidth)
	if cellWidth <= 0 {
		cellWidth = layout.DefaultCellWidth
	}
	url := v.GetString(KeyURL)
	if url == "" {
		url = post.DefaultURL
	}
	return &Config{
		URL:       url,
		Timeout:   timeout,
		LogPath:   logPath,
		CellWidth: cellWidth,
		Addr:      v.GetString(KeyAddr),
	}, nil
}
