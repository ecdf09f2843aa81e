package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/xiaomi388/manuscripts/pkg/persistence"
	"github.com/xiaomi388/manuscripts/pkg/types"
)

var ConfigPath string

// Default returns the configuration used when no config file exists. The
// storage path is left empty so the backend picks its own default.
func Default() types.Config {
	return types.Config{
		Storage: types.StorageConfig{
			Backend: "json",
		},
		DumpPath: persistence.DefaultDumpPath,
		LogLevel: "info",
	}
}

// Load reads the yaml config at configPath. A missing file yields Default.
// Unset keys keep their default values.
func Load(configPath string) (types.Config, error) {
	cfg := Default()

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		logrus.Debugf("config file %q not found, using defaults", configPath)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

func Dump(configPath string, cfg types.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}

	return nil
}

// Overrides holds command-line values that win over the config file.
type Overrides struct {
	Backend  string
	Path     string
	LogLevel string
}

func (o Overrides) Apply(cfg types.Config) types.Config {
	if o.Backend != "" && o.Backend != cfg.Storage.Backend {
		cfg.Storage.Backend = o.Backend
		// the configured path belongs to the other backend
		cfg.Storage.Path = ""
	}
	if o.Path != "" {
		cfg.Storage.Path = o.Path
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}

	return cfg
}

// Flags carries the root command's persistent flag values.
var Flags Overrides

// Resolve loads ConfigPath and applies Flags on top of it.
func Resolve() (types.Config, error) {
	cfg, err := Load(ConfigPath)
	if err != nil {
		return cfg, err
	}

	return Flags.Apply(cfg), nil
}
