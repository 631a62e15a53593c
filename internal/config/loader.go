// Package config loads kickstart settings with viper.
//
// Precedence, highest first:
//  1. command-line flags bound with BindFlag
//  2. KICKSTART_<KEY> environment variables (dots become underscores)
//  3. the configuration file: --config, then KICKSTART_CONFIG_FILE, then
//     .kickstart.{yaml,yml,json,toml} in the search paths
//  4. DefaultConfig
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tacogips/kickstart/internal/debug"
	"github.com/tacogips/kickstart/internal/validate"
)

// Loader loads configuration from flags, environment and files.
type Loader struct {
	v *viper.Viper
	// SearchPaths are the directories searched for ConfigFileName when no
	// explicit file is named.
	SearchPaths []string
}

// NewLoader creates a Loader with defaults and environment binding in place.
// It searches the working directory and then the home directory.
func NewLoader() *Loader {
	v := viper.New()
	for key, val := range defaultValues() {
		v.SetDefault(key, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, cwd)
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home)
	}
	return &Loader{v: v, SearchPaths: paths}
}

// BindFlag makes flag override key when the flag is set on the command line.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return NewConfigErrorWithField(ConfigInvalid, "", key, "cannot bind missing flag")
	}
	return l.v.BindPFlag(key, flag)
}

// Set forces key to value, above every other source.
func (l *Loader) Set(key string, value interface{}) {
	l.v.Set(key, value)
}

// Load reads the configuration. file may be empty. A missing file in the
// search paths is not an error; a missing explicit file is.
func (l *Loader) Load(file string) (*Config, error) {
	if file == "" {
		file = os.Getenv(ConfigFileEnv)
	}

	if file != "" {
		l.v.SetConfigFile(file)
	} else {
		l.v.SetConfigName(ConfigFileName)
		for _, p := range l.SearchPaths {
			l.v.AddConfigPath(p)
		}
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			debug.Debug("[config] No configuration file found, using defaults")
		case os.IsNotExist(err) || errors.Is(err, os.ErrNotExist):
			return nil, NewConfigErrorWithCause(ConfigNotFound, file, "configuration file not found", err)
		default:
			return nil, NewConfigErrorWithCause(ConfigInvalid, file, "failed to parse configuration file", err)
		}
	} else {
		debug.Debug("[config] Using configuration file: %s", l.v.ConfigFileUsed())
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, l.v.ConfigFileUsed(), "failed to decode configuration", err)
	}

	if cfg.TemplatesDir != "" {
		abs, err := ExpandPath(cfg.TemplatesDir)
		if err != nil {
			return nil, NewConfigErrorWithCause(ConfigInvalid, l.v.ConfigFileUsed(), "invalid templates_dir", err)
		}
		cfg.TemplatesDir = abs
	}
	if cfg.Catalog != "" {
		abs, err := ExpandPath(cfg.Catalog)
		if err != nil {
			return nil, NewConfigErrorWithCause(ConfigInvalid, l.v.ConfigFileUsed(), "invalid catalog", err)
		}
		cfg.Catalog = abs
	}

	if err := Validate(&cfg); err != nil {
		if ce, ok := err.(*ConfigError); ok && ce.File == "" {
			ce.File = l.v.ConfigFileUsed()
		}
		return nil, err
	}

	debug.DebugJSON("[config] Effective configuration", cfg)
	return &cfg, nil
}

// Validate validates the configuration.
func Validate(cfg *Config) error {
	if validate.NormalizeTargetDirectory(cfg.DefaultTarget) == "" {
		return NewConfigErrorWithField(ConfigValidationFailed, "", KeyDefaultTarget, "default target directory cannot be empty")
	}
	return nil
}

// ExpandPath expands ~ to home directory and evaluates relative paths.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		if path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:]), nil
		}
	}

	return filepath.Abs(path)
}
