// Package source locates template directories on disk.
package source

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tacogips/kickstart/internal/catalog"
	"github.com/tacogips/kickstart/internal/debug"
)

// ManifestFile is the package descriptor every template must carry.
const ManifestFile = "package.json"

// DefaultRootName is the directory searched for when no templates root is
// configured.
const DefaultRootName = "templates"

// Local resolves catalog leaves to template directories under Root.
type Local struct {
	// Root is the absolute templates root.
	Root string
	// Fs is the filesystem the templates live on.
	Fs afero.Fs
}

// NewLocal creates a Local source on fs rooted at root.
func NewLocal(fs afero.Fs, root string) *Local {
	return &Local{Root: filepath.Clean(root), Fs: fs}
}

// DefaultRoots returns the candidate templates roots in search order: a
// templates directory next to the executable, then one in the working
// directory.
func DefaultRoots() []string {
	var roots []string
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		roots = append(roots, filepath.Join(filepath.Dir(exe), DefaultRootName))
	}
	if cwd, err := os.Getwd(); err == nil {
		roots = append(roots, filepath.Join(cwd, DefaultRootName))
	}
	return roots
}

// FindRoot returns the first candidate that is a directory on fs.
func FindRoot(fs afero.Fs, candidates []string) (string, error) {
	for _, c := range candidates {
		debug.Debug("[source] Checking templates root candidate: %s", c)
		abs, err := filepath.Abs(c)
		if err != nil {
			continue
		}
		if ok, _ := afero.IsDir(fs, abs); ok {
			debug.Debug("[source] Using templates root: %s", abs)
			return abs, nil
		}
	}
	path := ""
	if len(candidates) > 0 {
		path = candidates[0]
	}
	return "", newSourceError(SourceRootNotFound, path,
		"no templates directory found (set --templates-dir or KICKSTART_TEMPLATES_DIR)", nil)
}

// TemplateDir returns the absolute directory of leaf.
func (l *Local) TemplateDir(leaf catalog.Leaf) string {
	return filepath.Join(l.Root, leaf.TemplateDirName())
}

// Validate checks that the template directory of leaf exists and carries a
// manifest.
func (l *Local) Validate(leaf catalog.Leaf) error {
	dir := l.TemplateDir(leaf)
	debug.Debug("[source] Validating template directory: %s", dir)

	info, err := l.Fs.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return newSourceError(SourceNotFound, dir, "template directory not found", nil)
		}
		return newSourceError(SourceReadFailed, dir, "failed to stat template directory", err)
	}
	if !info.IsDir() {
		return newSourceError(SourceInvalidTemplate, dir, "template path must be a directory", nil)
	}

	manifest := filepath.Join(dir, ManifestFile)
	if _, err := l.Fs.Stat(manifest); err != nil {
		if os.IsNotExist(err) {
			return newSourceError(SourceInvalidTemplate, dir, ManifestFile+" not found in template directory", nil)
		}
		return newSourceError(SourceReadFailed, manifest, "failed to stat manifest", err)
	}

	debug.Debug("[source] Template directory is valid")
	return nil
}
