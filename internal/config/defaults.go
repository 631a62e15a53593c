package config

// Configuration keys.
const (
	KeyTemplatesDir  = "templates_dir"
	KeyCatalog       = "catalog"
	KeyDefaultTarget = "default_target"
	KeyOutputColor   = "output.color"
	KeyOutputQuiet   = "output.quiet"
	KeyOutputDebug   = "output.debug"
)

// EnvPrefix prefixes every environment override, e.g. KICKSTART_TEMPLATES_DIR.
const EnvPrefix = "KICKSTART"

// ConfigFileEnv names an alternate configuration file.
const ConfigFileEnv = "KICKSTART_CONFIG_FILE"

// ConfigFileName is the base name searched for in the search paths.
const ConfigFileName = ".kickstart"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		TemplatesDir:  "",
		Catalog:       "",
		DefaultTarget: "my-project",
		Output: OutputConfig{
			Color: true,
			Quiet: false,
			Debug: false,
		},
	}
}

func defaultValues() map[string]interface{} {
	d := DefaultConfig()
	return map[string]interface{}{
		KeyTemplatesDir:  d.TemplatesDir,
		KeyCatalog:       d.Catalog,
		KeyDefaultTarget: d.DefaultTarget,
		KeyOutputColor:   d.Output.Color,
		KeyOutputQuiet:   d.Output.Quiet,
		KeyOutputDebug:   d.Output.Debug,
	}
}
