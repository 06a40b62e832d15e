package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	defaultColorscheme    = "lightblue"
	defaultHighlightColor = "blue"
	defaultEditor         = "vim"
	defaultMatchMode      = "substring"
)

// MatchMode values for the in-process filter used when fzf is absent.
const (
	MatchSubstring = "substring"
	MatchFuzzy     = "fuzzy"
)

type Config struct {
	Colorscheme    string `mapstructure:"colorscheme"`
	HighlightColor string `mapstructure:"highlight_color"`
	Editor         string `mapstructure:"editor"`
	Shell          string `mapstructure:"shell"`
	MatchMode      string `mapstructure:"match_mode"`
}

func defaultConfig() *Config {
	return &Config{
		Colorscheme:    defaultColorscheme,
		HighlightColor: defaultHighlightColor,
		Editor:         defaultEditor,
		Shell:          defaultShell(),
		MatchMode:      defaultMatchMode,
	}
}

func defaultShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "bash"
}

// Path returns the fixed config file location, ~/.vuit/.vuitrc.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".vuit", ".vuitrc")
}

// Load reads the config file. A missing file yields defaults with no error.
// A malformed file yields defaults together with the parse error so the
// caller can surface a single warning; fields are never partially applied
// from a broken file.
func Load() (*Config, error) {
	return loadFrom(Path())
}

func loadFrom(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.SetDefault("colorscheme", defaultColorscheme)
	v.SetDefault("highlight_color", defaultHighlightColor)
	v.SetDefault("editor", defaultEditor)
	v.SetDefault("shell", defaultShell())
	v.SetDefault("match_mode", defaultMatchMode)

	if err := v.ReadInConfig(); err != nil {
		return defaultConfig(), err
	}
	if err := v.Unmarshal(cfg); err != nil {
		return defaultConfig(), err
	}
	if cfg.MatchMode != MatchSubstring && cfg.MatchMode != MatchFuzzy {
		cfg.MatchMode = defaultMatchMode
	}
	return cfg, nil
}
