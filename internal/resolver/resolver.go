// Package resolver turns command-line arguments and interactive answers into
// one concrete Selection.
//
// Resolution is an explicit state machine. Each step reads the partial
// state, may prompt, and returns the step that follows; a step may skip
// itself entirely based on what earlier steps (or flags) already settled.
package resolver

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/tacogips/kickstart/internal/catalog"
	"github.com/tacogips/kickstart/internal/debug"
)

// DefaultTargetDir is offered when no target directory argument is given.
const DefaultTargetDir = "my-project"

// vcsDir is ignored when deciding whether a target directory is empty.
const vcsDir = ".git"

// Options carries what the command line already settled.
type Options struct {
	// TargetDir is the positional argument (may be empty).
	TargetDir string
	// Template is the --template flag (may be empty or unknown).
	Template string
	// TemplateSet reports that --template was given, even with an empty
	// value. A given flag that matches no leaf is named in the prompt.
	TemplateSet bool
	// Version is the --version flag, used as the prompt default.
	Version string
	// DefaultTarget overrides DefaultTargetDir when set.
	DefaultTarget string
}

// Selection is the outcome of resolution.
type Selection struct {
	// TargetDir is the absolute project directory.
	TargetDir string
	// Target is the directory as entered, relative to the working directory.
	Target string
	// PackageName is the validated package.json name.
	PackageName string
	// Version is the validated package.json version.
	Version string
	// Template is the chosen catalog leaf.
	Template catalog.Leaf
	// TemplateDir is the absolute template directory.
	TemplateDir string
	// Overwrite reports whether the target's contents must be purged first.
	Overwrite bool
}

// TemplateLocator maps catalog leaves to template directories.
type TemplateLocator interface {
	TemplateDir(leaf catalog.Leaf) string
}

// LabelFunc renders a catalog node name for display.
type LabelFunc func(text, color string) string

// Resolver drives the interactive decision sequence.
type Resolver struct {
	Catalog  *catalog.Catalog
	Prompter Prompter
	// Fs is the filesystem the target directory lives on.
	Fs        afero.Fs
	Templates TemplateLocator
	// Cwd is the absolute working directory targets are relative to.
	Cwd string
	// Now supplies the clock for the fallback version.
	Now func() time.Time
	// Label renders choice titles; nil renders plain names.
	Label LabelFunc
}

// state is the partial selection threaded through the steps.
type state struct {
	opts Options

	target      string
	overwrite   bool
	packageName string
	version     string

	flagLeaf  *catalog.Leaf
	framework catalog.Node
	variant   *catalog.Leaf
}

// stepFn is one state of the machine. It returns the next step, or nil when
// resolution is complete.
type stepFn func(r *Resolver, s *state) (stepFn, error)

// Resolve runs every step in order and returns the resolved selection.
// ErrCancelled is returned when the user aborts; nothing has been written
// at that point.
func (r *Resolver) Resolve(ctx context.Context, opts Options) (*Selection, error) {
	debug.DebugSection("[resolver] Resolve start")
	debug.DebugValue("[resolver] Target argument", opts.TargetDir)
	debug.DebugValue("[resolver] Template flag", opts.Template)
	debug.DebugValue("[resolver] Version flag", opts.Version)

	s := &state{opts: opts}
	if opts.Template != "" {
		if leaf, ok := r.Catalog.Lookup(opts.Template); ok {
			s.flagLeaf = &leaf
		}
	}

	for step := stepFn(stepTargetDir); step != nil; {
		if err := ctx.Err(); err != nil {
			debug.Debug("[resolver] Context done between steps: %v", err)
			return nil, ErrCancelled
		}
		next, err := step(r, s)
		if err != nil {
			return nil, err
		}
		step = next
	}

	return r.finish(s)
}

func (r *Resolver) finish(s *state) (*Selection, error) {
	var leaf catalog.Leaf
	switch {
	case s.variant != nil:
		leaf = *s.variant
	case s.framework != nil:
		l, ok := s.framework.(catalog.Leaf)
		if !ok {
			return nil, fmt.Errorf("framework %q has no variant selected", s.framework.NodeName())
		}
		leaf = l
	case s.flagLeaf != nil:
		leaf = *s.flagLeaf
	default:
		return nil, fmt.Errorf("no template selected")
	}

	sel := &Selection{
		TargetDir:   r.absTarget(s.target),
		Target:      s.target,
		PackageName: s.packageName,
		Version:     s.version,
		Template:    leaf,
		TemplateDir: r.Templates.TemplateDir(leaf),
		Overwrite:   s.overwrite,
	}
	debug.DebugJSON("[resolver] Selection", sel)
	return sel, nil
}

func (r *Resolver) absTarget(target string) string {
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(r.Cwd, target)
}

func (r *Resolver) label(n catalog.Node) string {
	if r.Label == nil {
		return n.NodeName()
	}
	return r.Label(n.NodeName(), n.NodeColor())
}

func (r *Resolver) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// askValid repeats p until the answer passes p.Validate.
func (r *Resolver) askValid(p TextPrompt) (string, error) {
	for {
		ans, err := r.Prompter.Input(p)
		if err != nil {
			return "", err
		}
		if p.Normalize != nil {
			ans = p.Normalize(ans)
		}
		if p.Validate == nil {
			return ans, nil
		}
		if err := p.Validate(ans); err != nil {
			debug.Debug("[resolver] Rejected answer %q: %v", ans, err)
			continue
		}
		return ans, nil
	}
}
