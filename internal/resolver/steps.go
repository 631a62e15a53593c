package resolver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tacogips/kickstart/internal/catalog"
	"github.com/tacogips/kickstart/internal/debug"
	"github.com/tacogips/kickstart/internal/validate"
)

// Prompt messages.
const (
	msgTargetDir     = "Project name:"
	msgPackageName   = "Package name:"
	msgVersion       = "Version:"
	msgFramework     = "Select a template:"
	msgVariant       = "Select a variant:"
	msgInvalidFlagFm = "%q isn't a valid template. Please choose from below:"
)

func stepTargetDir(r *Resolver, s *state) (stepFn, error) {
	defaultTarget := s.opts.DefaultTarget
	if defaultTarget == "" {
		defaultTarget = DefaultTargetDir
	}

	if t := validate.NormalizeTargetDirectory(s.opts.TargetDir); t != "" {
		debug.Debug("[resolver] Target directory from argument: %s", t)
		s.target = t
		return stepOverwrite, nil
	}

	ans, err := r.Prompter.Input(TextPrompt{
		Message:   msgTargetDir,
		Default:   defaultTarget,
		Normalize: validate.NormalizeTargetDirectory,
	})
	if err != nil {
		return nil, err
	}
	if ans = validate.NormalizeTargetDirectory(ans); ans == "" {
		ans = defaultTarget
	}
	s.target = ans
	return stepOverwrite, nil
}

func stepOverwrite(r *Resolver, s *state) (stepFn, error) {
	dir := r.absTarget(s.target)
	empty, err := isEmptyTarget(r.Fs, dir)
	if err != nil {
		return nil, err
	}
	if empty {
		debug.Debug("[resolver] Target %s is absent or empty, no confirmation needed", dir)
		return stepPackageName, nil
	}

	where := fmt.Sprintf("Target directory %q", s.target)
	if s.target == "." {
		where = "Current directory"
	}
	ok, err := r.Prompter.Confirm(ConfirmPrompt{
		Message: where + " is not empty. Remove existing files and continue?",
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		debug.Debug("[resolver] Overwrite declined")
		return nil, ErrCancelled
	}
	s.overwrite = true
	return stepPackageName, nil
}

func stepPackageName(r *Resolver, s *state) (stepFn, error) {
	derived := s.target
	if derived == "." {
		derived = filepath.Base(r.Cwd)
	}

	if validate.IsValidProjectName(derived) {
		s.packageName = derived
		return stepVersion, nil
	}

	ans, err := r.askValid(TextPrompt{
		Message:  msgPackageName,
		Default:  validate.NormalizeProjectName(derived),
		Validate: validate.ProjectNameValidator,
	})
	if err != nil {
		return nil, err
	}
	s.packageName = ans
	return stepVersion, nil
}

func stepVersion(r *Resolver, s *state) (stepFn, error) {
	def := s.opts.Version
	if def == "" {
		def = validate.FallbackVersion(r.now())
	}

	ans, err := r.askValid(TextPrompt{
		Message:  msgVersion,
		Default:  def,
		Validate: validate.VersionValidator,
	})
	if err != nil {
		return nil, err
	}
	s.version = ans
	return stepFramework, nil
}

func stepFramework(r *Resolver, s *state) (stepFn, error) {
	if s.flagLeaf != nil {
		debug.Debug("[resolver] Template flag matched leaf %s", s.flagLeaf.Dir)
		return nil, nil
	}

	message := msgFramework
	if s.opts.TemplateSet || s.opts.Template != "" {
		message = fmt.Sprintf(msgInvalidFlagFm, s.opts.Template)
	}

	frameworks := r.Catalog.Frameworks()
	options := make([]string, len(frameworks))
	for i, f := range frameworks {
		options[i] = r.label(f)
	}

	idx, err := r.Prompter.Select(SelectPrompt{Message: message, Options: options})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(frameworks) {
		return nil, fmt.Errorf("framework selection out of range: %d", idx)
	}
	s.framework = frameworks[idx]

	if _, ok := s.framework.(catalog.Group); ok {
		return stepVariant, nil
	}
	return nil, nil
}

func stepVariant(r *Resolver, s *state) (stepFn, error) {
	group, ok := s.framework.(catalog.Group)
	if !ok {
		return nil, nil
	}
	variants := r.Catalog.Variants(group.Name)

	options := make([]string, len(variants))
	for i, v := range variants {
		options[i] = r.label(v)
	}

	idx, err := r.Prompter.Select(SelectPrompt{Message: msgVariant, Options: options})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(variants) {
		return nil, fmt.Errorf("variant selection out of range: %d", idx)
	}
	v := variants[idx]
	s.variant = &v
	return nil, nil
}

// isEmptyTarget reports whether dir is absent, has no entries, or holds only
// a VCS metadata directory.
func isEmptyTarget(fs afero.Fs, dir string) (bool, error) {
	info, err := fs.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("failed to stat target directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return false, fmt.Errorf("target path exists and is not a directory: %s", dir)
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return false, fmt.Errorf("failed to read target directory %s: %w", dir, err)
	}
	return len(entries) == 0 || (len(entries) == 1 && entries[0].Name() == vcsDir), nil
}
