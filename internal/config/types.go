package config

// Config represents the kickstart configuration.
type Config struct {
	// TemplatesDir is the directory holding template-<dir> trees. Empty
	// means search the default locations.
	TemplatesDir string `mapstructure:"templates_dir"`
	// Catalog is an optional path to a catalog YAML replacing the built-in one.
	Catalog string `mapstructure:"catalog"`
	// DefaultTarget is offered at the target directory prompt.
	DefaultTarget string `mapstructure:"default_target"`
	// Output configuration for display and logging.
	Output OutputConfig `mapstructure:"output"`
}

// OutputConfig represents output and display settings.
type OutputConfig struct {
	// Color enables colored terminal output.
	Color bool `mapstructure:"color"`
	// Quiet suppresses non-error output.
	Quiet bool `mapstructure:"quiet"`
	// Debug enables debug logging on stderr.
	Debug bool `mapstructure:"debug"`
}
