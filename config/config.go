// Package config — run settings for moddoc.
// Settings come from defaults, an optional YAML file (--config, or
// .moddoc.yaml inside the module), MODDOC_* environment variables and
// command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/moddoc/core/catalog"
)

const (
	// FileName is the per-module config file.
	FileName = ".moddoc.yaml"
	// EnvPrefix prefixes environment overrides, e.g. MODDOC_LANG.
	EnvPrefix = "MODDOC"
)

// Config holds the settings of one generation run.
type Config struct {
	Lang            string `mapstructure:"lang"`
	Readme          bool   `mapstructure:"readme"`
	Manual          bool   `mapstructure:"manual"`
	Format          string `mapstructure:"format"`
	ImageFolder     string `mapstructure:"image_folder"`
	Banner          string `mapstructure:"banner"`
	Comments        string `mapstructure:"comments"`
	ReadmePath      string `mapstructure:"readme_path"`
	ManualPath      string `mapstructure:"manual_path"`
	Changelog       bool   `mapstructure:"changelog"`
	HTML            bool   `mapstructure:"html"`
	ResolveVersions bool   `mapstructure:"resolve_versions"`
	PyPIURL         string `mapstructure:"pypi_url"`
	LogLevel        string `mapstructure:"log_level"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Lang:        "es",
		Readme:      true,
		Manual:      true,
		Format:      "markdown",
		ImageFolder: "example",
		Changelog:   true,
		HTML:        true,
		LogLevel:    "info",
	}
}

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// ModuleDir is searched for FileName when ConfigFile is empty.
	ModuleDir string
	// ConfigFile is an explicit config path; it must exist.
	ConfigFile string
	// Flags are bound by name using FlagKeys.
	Flags *pflag.FlagSet
}

// FlagKeys maps command-line flag names to config keys.
var FlagKeys = map[string]string{
	"lang":             "lang",
	"format":           "format",
	"image-folder":     "image_folder",
	"banner":           "banner",
	"comments":         "comments",
	"output":           "manual_path",
	"readme-output":    "readme_path",
	"resolve-versions": "resolve_versions",
	"html":             "html",
	"log-level":        "log_level",
}

// Load resolves the configuration for one run.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("lang", defaults.Lang)
	v.SetDefault("readme", defaults.Readme)
	v.SetDefault("manual", defaults.Manual)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("image_folder", defaults.ImageFolder)
	v.SetDefault("banner", defaults.Banner)
	v.SetDefault("comments", defaults.Comments)
	v.SetDefault("readme_path", defaults.ReadmePath)
	v.SetDefault("manual_path", defaults.ManualPath)
	v.SetDefault("changelog", defaults.Changelog)
	v.SetDefault("html", defaults.HTML)
	v.SetDefault("resolve_versions", defaults.ResolveVersions)
	v.SetDefault("pypi_url", defaults.PyPIURL)
	v.SetDefault("log_level", defaults.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	path, err := configPath(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if opts.Flags != nil {
		for name, key := range FlagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

func configPath(opts LoadOptions) (string, error) {
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return "", fmt.Errorf("config file not found: %s", opts.ConfigFile)
		}
		return opts.ConfigFile, nil
	}
	if opts.ModuleDir == "" {
		return "", nil
	}
	local := filepath.Join(opts.ModuleDir, FileName)
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}
	return "", nil
}

// Validate checks values that the type system cannot.
func (c *Config) Validate() error {
	var errs []error
	if err := catalog.CheckLanguage(c.Lang); err != nil {
		errs = append(errs, err)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if !c.Readme && !c.Manual {
		errs = append(errs, errors.New("nothing to generate: both README and manual are disabled"))
	}
	return errors.Join(errs...)
}
