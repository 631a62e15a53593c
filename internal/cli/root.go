package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tacogips/kickstart/internal/app"
	"github.com/tacogips/kickstart/internal/config"
	"github.com/tacogips/kickstart/internal/debug"
	"github.com/tacogips/kickstart/internal/report"
	"github.com/tacogips/kickstart/internal/resolver"
	"golang.org/x/term"
)

// Global flags
var (
	globalNoColor bool
	globalQuiet   bool
	globalDebug   bool
)

// Root command flags
var (
	rootTemplate     string
	rootVersion      string
	rootTemplatesDir string
	rootConfig       string
	rootList         bool
	rootBuildInfo    bool
	rootJSON         bool
)

// newPrompter creates the prompter used for interactive questions.
var newPrompter = func() resolver.Prompter { return newSurveyPrompter() }

// isTerminal reports whether stdout is attached to a terminal.
var isTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }

// newRootCmd builds the kickstart command with fresh flag state.
func newRootCmd() *cobra.Command {
	globalNoColor, globalQuiet, globalDebug = false, false, false
	rootTemplate, rootVersion, rootTemplatesDir, rootConfig = "", "", "", ""
	rootList, rootBuildInfo, rootJSON = false, false, false

	cmd := &cobra.Command{
		Use:   "kickstart [target-dir]",
		Short: "Scaffold a project from a template",
		Long: `kickstart creates a new project from a template.

It asks for a project directory, a package name and version, and a template
from the catalog, then copies the template and writes package.json with the
chosen name and version.

Examples:
  kickstart
  kickstart my-app
  kickstart my-app --template rollup --version 1.0.0
  kickstart --list`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			debug.SetDebug(globalDebug)
			debug.SetNoColor(globalNoColor)
		},
		RunE: runRoot,
	}

	f := cmd.Flags()
	f.StringVarP(&rootTemplate, FlagTemplate, "t", "", DescTemplate)
	f.StringVar(&rootVersion, FlagVersion, "", DescVersion)
	f.StringVar(&rootTemplatesDir, FlagTemplatesDir, "", DescTemplatesDir)
	f.StringVar(&rootConfig, FlagConfig, "", DescConfig)
	f.BoolVar(&rootList, FlagList, false, DescList)
	f.BoolVar(&rootBuildInfo, FlagBuildInfo, false, DescBuildInfo)
	f.BoolVar(&rootJSON, "json", false, "Print --list and --build-info as JSON")

	pf := cmd.PersistentFlags()
	pf.BoolVar(&globalNoColor, FlagNoColor, false, DescNoColor)
	pf.BoolVarP(&globalQuiet, FlagQuiet, "q", false, DescQuiet)
	pf.BoolVar(&globalDebug, FlagDebug, false, DescDebug)

	return cmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	cmd := newRootCmd()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	globalQuiet = cfg.Output.Quiet
	globalNoColor = !cfg.Output.Color || !isTerminal()
	debug.SetDebug(cfg.Output.Debug)
	debug.SetNoColor(globalNoColor)
	setOutput(cmd.OutOrStdout(), cmd.ErrOrStderr(), globalNoColor)

	if rootBuildInfo {
		return printBuildInfo(rootJSON)
	}
	if rootList {
		cat, err := app.LoadCatalog(cfg)
		if err != nil {
			return err
		}
		return printCatalog(cat, rootJSON)
	}

	var target string
	if len(args) > 0 {
		target = args[0]
	}

	result, err := app.Create(cmd.Context(), app.CreateOptions{
		TargetDir:   target,
		Template:    rootTemplate,
		TemplateSet: cmd.Flags().Changed(FlagTemplate),
		Version:     rootVersion,
		Config:      cfg,
		Prompter:    newPrompter(),
		Label:       palette.Label,
		UserAgent:   os.Getenv(report.UserAgentEnv),
	})
	if err != nil {
		return err
	}
	if result.Cancelled {
		printInfo(palette.Failure() + " Operation cancelled")
		return nil
	}

	printCreated(result)
	return nil
}

// loadConfig merges flags, environment and the config file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	debug.SetDebug(globalDebug)

	loader := config.NewLoader()
	bindings := map[string]string{
		config.KeyTemplatesDir: FlagTemplatesDir,
		config.KeyOutputQuiet:  FlagQuiet,
		config.KeyOutputDebug:  FlagDebug,
	}
	for key, name := range bindings {
		if err := loader.BindFlag(key, cmd.Flag(name)); err != nil {
			return nil, err
		}
	}
	if globalNoColor {
		loader.Set(config.KeyOutputColor, false)
	}
	cfg, err := loader.Load(rootConfig)
	if err != nil {
		return nil, app.NewAppError(app.ConfigLoadFailed, "failed to load configuration", err)
	}
	return cfg, nil
}

// printCreated reports the written project and the commands to run next.
func printCreated(result *app.CreateResult) {
	out := result.Output
	if out.Purged {
		printWarning(fmt.Sprintf("Removed existing files in %s", out.Root))
	}
	printProgress(fmt.Sprintf("Scaffolded project in %s", out.Root))
	printSuccess(fmt.Sprintf("Created %s from %s (%d files)", result.Selection.PackageName,
		palette.Label(result.Selection.Template.Name, result.Selection.Template.Color), out.FilesCopied+1))

	printInfo("")
	printInfo("Done. Now run:")
	printInfo("")
	for _, step := range result.NextSteps {
		printInfo("  " + palette.Emphasis(step))
	}
	printInfo("")
}
