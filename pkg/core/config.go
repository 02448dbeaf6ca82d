// pkg/core/config.go
package core

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultRocmPath is the conventional ROCm install location
	DefaultRocmPath = "/opt/rocm"

	// RocmPathEnv overrides the ROCm path from every other source
	RocmPathEnv = "ROCM_PATH"

	// LogFormatText and LogFormatJSON are the accepted log formats
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds the resolved setup configuration. It is a value type and is
// never modified after Resolve returns it.
type Config struct {
	RocmPath   string // ROCm installation path
	Runtime    bool   // Install runtime-only packages
	Debug      bool   // Enable debug logging
	LogFormat  string // text or json
	Transcript string // Optional xz-compressed command transcript
	Catalog    string // Optional package catalog override
	DryRun     bool   // Print commands instead of running them
}

// DefaultConfig returns a configuration with built-in defaults
func DefaultConfig() Config {
	return Config{
		RocmPath:  DefaultRocmPath,
		Runtime:   true,
		LogFormat: LogFormatText,
	}
}

// FileConfig is the on-disk YAML configuration
type FileConfig struct {
	RocmPath   string `yaml:"rocm_path"`
	Runtime    string `yaml:"runtime"`
	Debug      bool   `yaml:"debug"`
	LogFormat  string `yaml:"log_format"`
	Transcript string `yaml:"transcript"`
	Catalog    string `yaml:"catalog"`
}

// Overrides carries command-line values. A nil field means the flag was
// not given.
type Overrides struct {
	RocmPath   *string
	Runtime    *string
	Debug      *bool
	LogFormat  *string
	Transcript *string
	Catalog    *string
	DryRun     bool
}

// DefaultConfigPath returns $HOME/.config/rocjpeg-setup/config.yaml
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "rocjpeg-setup", "config.yaml")
}

// LoadConfig loads the YAML configuration file. An empty path means the
// default location, which may be absent. An explicit path must exist.
func LoadConfig(path string) (*FileConfig, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
		if path == "" {
			return &FileConfig{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &FileConfig{}, nil
		}
		return nil, errors.Wrapf(ErrInvalidArgument, "reading config %s: %v", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(ErrInvalidArgument, "parsing config %s: %v", path, err)
	}

	return &cfg, nil
}

// ParseToggle parses an ON/OFF option value, case-insensitively
func ParseToggle(value string) (bool, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "ON":
		return true, nil
	case "OFF":
		return false, nil
	default:
		return false, errors.Wrapf(ErrInvalidArgument,
			"runtime option %q not supported [supported options: ON or OFF]", value)
	}
}

// Resolve layers defaults, the config file, flags and the environment, in
// that order. lookupEnv is usually os.LookupEnv.
func Resolve(file *FileConfig, flags Overrides, lookupEnv func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()

	if file != nil {
		if file.RocmPath != "" {
			cfg.RocmPath = file.RocmPath
		}
		if file.Runtime != "" {
			on, err := ParseToggle(file.Runtime)
			if err != nil {
				return Config{}, errors.Wrap(err, "config file")
			}
			cfg.Runtime = on
		}
		cfg.Debug = file.Debug
		if file.LogFormat != "" {
			cfg.LogFormat = file.LogFormat
		}
		cfg.Transcript = file.Transcript
		cfg.Catalog = file.Catalog
	}

	if flags.RocmPath != nil {
		cfg.RocmPath = *flags.RocmPath
	}
	if flags.Runtime != nil {
		on, err := ParseToggle(*flags.Runtime)
		if err != nil {
			return Config{}, err
		}
		cfg.Runtime = on
	}
	if flags.Debug != nil {
		cfg.Debug = *flags.Debug
	}
	if flags.LogFormat != nil {
		cfg.LogFormat = *flags.LogFormat
	}
	if flags.Transcript != nil {
		cfg.Transcript = *flags.Transcript
	}
	if flags.Catalog != nil {
		cfg.Catalog = *flags.Catalog
	}
	cfg.DryRun = flags.DryRun

	if lookupEnv != nil {
		if path, ok := lookupEnv(RocmPathEnv); ok && path != "" {
			cfg.RocmPath = path
		}
	}

	switch cfg.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return Config{}, errors.Wrapf(ErrInvalidArgument, "unknown log format %q", cfg.LogFormat)
	}

	if cfg.RocmPath == "" {
		return Config{}, errors.Wrap(ErrInvalidArgument, "empty ROCm path")
	}

	return cfg, nil
}
