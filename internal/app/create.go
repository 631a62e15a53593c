// Package app wires the catalog, resolver, materializer and reporter into
// the create workflow.
package app

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/tacogips/kickstart/internal/catalog"
	"github.com/tacogips/kickstart/internal/config"
	"github.com/tacogips/kickstart/internal/debug"
	"github.com/tacogips/kickstart/internal/materialize"
	"github.com/tacogips/kickstart/internal/render"
	"github.com/tacogips/kickstart/internal/report"
	"github.com/tacogips/kickstart/internal/resolver"
	"github.com/tacogips/kickstart/internal/template/source"
)

// CreateOptions holds options for creating a project.
type CreateOptions struct {
	// TargetDir is the positional target directory (may be empty).
	TargetDir string
	// Template is the --template flag value (may be empty).
	Template string
	// TemplateSet reports that --template was given on the command line.
	TemplateSet bool
	// Version is the --version flag value (may be empty).
	Version string
	// Config is the loaded configuration; nil means defaults.
	Config *config.Config
	// Prompter answers the interactive questions.
	Prompter resolver.Prompter
	// Label renders catalog choices; nil renders plain names.
	Label resolver.LabelFunc
	// Fs is the filesystem for both templates and project; nil means the OS.
	Fs afero.Fs
	// Cwd is the working directory; empty means os.Getwd.
	Cwd string
	// Now supplies the clock; nil means time.Now.
	Now func() time.Time
	// UserAgent is the npm_config_user_agent value.
	UserAgent string
}

// CreateResult holds the outcome of the create workflow.
type CreateResult struct {
	// Cancelled reports that the user aborted; nothing was written.
	Cancelled bool
	// Selection is the resolved selection (nil when cancelled).
	Selection *resolver.Selection
	// Output describes what was written (nil when cancelled).
	Output *materialize.Result
	// PackageManager is the manager used for NextSteps.
	PackageManager string
	// NextSteps are the follow-up commands to print.
	NextSteps []string
}

// Create resolves a template from flags and prompts, then materializes it.
// User cancellation is reported through CreateResult.Cancelled, not as an
// error.
func Create(ctx context.Context, opts CreateOptions) (*CreateResult, error) {
	debug.DebugSection("[app] Create workflow start")

	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	cwd := opts.Cwd
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, NewResolveError("failed to get working directory", err)
		}
		cwd = wd
	}
	debug.DebugValue("[app] Working directory", cwd)

	cat, err := LoadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	root, err := TemplatesRoot(fs, cfg)
	if err != nil {
		return nil, err
	}
	templates := source.NewLocal(fs, root)

	r := &resolver.Resolver{
		Catalog:   cat,
		Prompter:  opts.Prompter,
		Fs:        fs,
		Templates: templates,
		Cwd:       cwd,
		Now:       opts.Now,
		Label:     opts.Label,
	}
	sel, err := r.Resolve(ctx, resolver.Options{
		TargetDir:     opts.TargetDir,
		Template:      opts.Template,
		TemplateSet:   opts.TemplateSet,
		Version:       opts.Version,
		DefaultTarget: cfg.DefaultTarget,
	})
	if err != nil {
		if errors.Is(err, resolver.ErrCancelled) {
			debug.Debug("[app] Create cancelled by user")
			return &CreateResult{Cancelled: true}, nil
		}
		return nil, NewResolveError("failed to resolve template", err)
	}

	if err := templates.Validate(sel.Template); err != nil {
		return nil, NewTemplateNotFoundError("template "+sel.Template.Name+" is not installed", err)
	}

	out, err := materialize.New(fs, fs).Materialize(ctx, sel)
	if err != nil {
		return nil, NewMaterializeError("failed to create project in "+sel.TargetDir, err)
	}

	manager := report.ManagerName(opts.UserAgent)
	result := &CreateResult{
		Selection:      sel,
		Output:         out,
		PackageManager: manager,
		NextSteps:      report.NextSteps(cwd, sel.TargetDir, manager),
	}

	debug.Debug("[app] Create workflow completed")
	return result, nil
}

// LoadCatalog returns the configured catalog, or the built-in one.
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog == "" {
		return catalog.Default(), nil
	}
	debug.DebugValue("[app] Catalog file", cfg.Catalog)
	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return nil, NewCatalogError("failed to load catalog", err)
	}
	for _, f := range cat.Frameworks() {
		if c := f.NodeColor(); c != "" && !render.KnownColor(c) {
			debug.Debug("[app] Unknown color %q for %s, rendering unstyled", c, f.NodeName())
		}
	}
	return cat, nil
}

// TemplatesRoot returns the configured templates root, or the first default
// location that exists.
func TemplatesRoot(fs afero.Fs, cfg *config.Config) (string, error) {
	candidates := source.DefaultRoots()
	if cfg.TemplatesDir != "" {
		candidates = []string{cfg.TemplatesDir}
	}
	root, err := source.FindRoot(fs, candidates)
	if err != nil {
		return "", NewTemplateNotFoundError("failed to locate templates", err)
	}
	return root, nil
}
