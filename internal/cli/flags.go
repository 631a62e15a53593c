package cli

// Common flag names and descriptions
const (
	// Flag names
	FlagTemplate     = "template"
	FlagVersion      = "version"
	FlagTemplatesDir = "templates-dir"
	FlagConfig       = "config"
	FlagNoColor      = "no-color"
	FlagQuiet        = "quiet"
	FlagDebug        = "debug"
	FlagList         = "list"
	FlagBuildInfo    = "build-info"

	// Flag descriptions
	DescTemplate     = "Template to use (skips the template prompts when it matches)"
	DescVersion      = "Default version for package.json"
	DescTemplatesDir = "Directory containing template-<name> directories"
	DescConfig       = "Path to config file"
	DescNoColor      = "Disable colored output"
	DescQuiet        = "Suppress output"
	DescDebug        = "Enable debug logging"
	DescList         = "List available templates and exit"
	DescBuildInfo    = "Show build information and exit"
)
