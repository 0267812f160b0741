// Package config loads pallet-generator settings from defaults, a YAML file,
// PALLETGEN_* environment variables and command-line flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"pallet-generator/internal/analyze"
	"pallet-generator/internal/gen"
	"pallet-generator/internal/logger"
)

const (
	// DefaultConfigFile is looked up in the working directory when no file is given.
	DefaultConfigFile = "palletgen.yaml"
	// EnvPrefix starts every environment variable read as configuration.
	EnvPrefix = "PALLETGEN_"
)

// Config holds all generator settings.
type Config struct {
	// PkgVersion overrides the //pallet:version constant of the package.
	PkgVersion   string `koanf:"pkg_version"`
	FrameSupport string `koanf:"frame_support"`
	FrameSystem  string `koanf:"frame_system"`
	// Output is the name of the generated file.
	Output string `koanf:"output"`
	// DebugDir receives the unformatted source when rendering fails.
	DebugDir string `koanf:"debug_dir"`
	LogLevel string `koanf:"log_level"`
	LogJSON  bool   `koanf:"log_json"`
}

// Defaults returns the lowest-priority configuration layer.
func Defaults() map[string]any {
	return map[string]any{
		"pkg_version":   "",
		"frame_support": analyze.DefaultFrameSupport,
		"frame_system":  analyze.DefaultFrameSystem,
		"output":        gen.DefaultGeneratorConfig().Filename,
		"debug_dir":     "",
		"log_level":     string(logger.InfoLevel),
		"log_json":      false,
	}
}

// findConfigFile finds the config file to use.
// Priority: explicit path > palletgen.yaml in the working directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}

	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}

	return ""
}

// Load loads configuration and returns it with the config file used, if any.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// Only flags that were explicitly set and name a configuration key are applied.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, string, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, "", fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, "", fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// PALLETGEN_FRAME_SUPPORT -> frame_support
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, "", fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		known := Defaults()

		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}

			// --frame-support -> frame_support
			key := strings.ReplaceAll(f.Name, "-", "_")
			if _, ok := known[key]; !ok {
				return "", nil
			}

			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, "", fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, "", fmt.Errorf("unable to decode config: %w", err)
	}

	return &cfg, used, nil
}

// AnalyzeOptions returns the options for building definition models.
func (c *Config) AnalyzeOptions() analyze.Options {
	return analyze.Options{
		PkgVersion:   c.PkgVersion,
		FrameSupport: c.FrameSupport,
		FrameSystem:  c.FrameSystem,
	}
}

// GeneratorConfig returns the code generation settings.
func (c *Config) GeneratorConfig() gen.GeneratorConfig {
	g := gen.DefaultGeneratorConfig()
	if c.Output != "" {
		g.Filename = c.Output
	}

	g.DebugDir = c.DebugDir

	return g
}

// LoggerConfig returns the logging settings, writing to stderr.
func (c *Config) LoggerConfig() *logger.Config {
	l := logger.DefaultConfig()
	l.Level = logger.LogLevel(c.LogLevel)
	l.JSON = c.LogJSON

	return l
}
