// Package materialize writes a resolved template into the project
// directory: it purges or creates the target, copies every template entry
// except the manifest, then writes the patched manifest.
//
// There is no rollback. A failure part way leaves already-written entries
// in place.
package materialize

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/tacogips/kickstart/internal/debug"
	"github.com/tacogips/kickstart/internal/resolver"
)

// Materializer copies templates from Source to Target.
type Materializer struct {
	// Source is the filesystem holding the templates.
	Source afero.Fs
	// Writer performs target writes.
	Writer Writer
}

// New creates a Materializer reading from src and writing to dst.
func New(src, dst afero.Fs) *Materializer {
	return &Materializer{Source: src, Writer: NewFSWriter(dst)}
}

// Result holds the outcome of materialization.
type Result struct {
	// Root is the absolute project directory.
	Root string
	// Files lists written files relative to Root, in copy order. The
	// manifest comes last.
	Files []string
	// FilesCopied is the number of template files copied.
	FilesCopied int
	// DirsCreated is the number of directories created beneath Root.
	DirsCreated int
	// Purged reports whether the target was emptied first.
	Purged bool
}

// Materialize performs the writes described by sel. The context is checked
// once before the first write; a copy in progress is never interrupted.
func (m *Materializer) Materialize(ctx context.Context, sel *resolver.Selection) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	debug.DebugSection("[materialize] Materialize start")
	debug.DebugValue("[materialize] Template directory", sel.TemplateDir)
	debug.DebugValue("[materialize] Target directory", sel.TargetDir)
	debug.DebugValue("[materialize] Overwrite", sel.Overwrite)

	info, err := m.Source.Stat(sel.TemplateDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newMaterializeError(MaterializeSourceMissing, "template directory not found", sel.TemplateDir, nil)
		}
		return nil, newMaterializeError(MaterializeReadFailed, "failed to stat template directory", sel.TemplateDir, err)
	}
	if !info.IsDir() {
		return nil, newMaterializeError(MaterializeSourceMissing, "template path is not a directory", sel.TemplateDir, nil)
	}

	if overlaps(sel.TemplateDir, sel.TargetDir) {
		return nil, newMaterializeError(MaterializeOverlap,
			"template directory and target directory must not contain one another (target: "+sel.TargetDir+")", sel.TemplateDir, nil)
	}

	result := &Result{Root: sel.TargetDir}

	if sel.Overwrite {
		if err := m.Writer.Purge(sel.TargetDir); err != nil {
			return nil, err
		}
		result.Purged = true
	}
	if err := m.Writer.CreateDir(sel.TargetDir); err != nil {
		return nil, err
	}

	entries, err := afero.ReadDir(m.Source, sel.TemplateDir)
	if err != nil {
		return nil, newMaterializeError(MaterializeReadFailed, "failed to read template directory", sel.TemplateDir, err)
	}
	for _, e := range entries {
		if e.Name() == ManifestFile {
			continue
		}
		if err := m.copyEntry(result, sel.TemplateDir, sel.TargetDir, e.Name(), e); err != nil {
			return result, err
		}
	}

	if err := m.writeManifest(sel); err != nil {
		return result, err
	}
	result.Files = append(result.Files, ManifestFile)

	debug.Debug("[materialize] Materialize completed")
	debug.DebugValue("[materialize] Files copied", result.FilesCopied)
	debug.DebugValue("[materialize] Directories created", result.DirsCreated)
	return result, nil
}

// copyEntry copies rel (relative to both roots) and recurses into
// directories.
func (m *Materializer) copyEntry(result *Result, srcRoot, dstRoot, rel string, info os.FileInfo) error {
	src := filepath.Join(srcRoot, rel)
	dst := filepath.Join(dstRoot, rel)
	mode := info.Mode()

	switch {
	case mode.IsDir():
		if err := m.Writer.CreateDir(dst); err != nil {
			return err
		}
		result.DirsCreated++

		children, err := afero.ReadDir(m.Source, src)
		if err != nil {
			return newMaterializeError(MaterializeReadFailed, "failed to read template directory", src, err)
		}
		for _, c := range children {
			if err := m.copyEntry(result, srcRoot, dstRoot, filepath.Join(rel, c.Name()), c); err != nil {
				return err
			}
		}
		return nil

	case mode.IsRegular():
		if err := m.Writer.CopyFile(m.Source, src, dst, mode); err != nil {
			return err
		}
		result.FilesCopied++
		result.Files = append(result.Files, filepath.ToSlash(rel))
		return nil

	default:
		return newMaterializeError(MaterializeUnsupported,
			"template entry is not a regular file or directory (mode "+mode.Type().String()+")", src, nil)
	}
}

func (m *Materializer) writeManifest(sel *resolver.Selection) error {
	src := filepath.Join(sel.TemplateDir, ManifestFile)
	data, err := afero.ReadFile(m.Source, src)
	if err != nil {
		if os.IsNotExist(err) {
			return newMaterializeError(MaterializeManifestInvalid, "template has no manifest", src, nil)
		}
		return newMaterializeError(MaterializeReadFailed, "failed to read manifest", src, err)
	}

	patched, err := PatchManifest(data, sel.PackageName, sel.Version)
	if err != nil {
		if me, ok := err.(*MaterializeError); ok && me.File == "" {
			me.File = src
		}
		return err
	}

	return m.Writer.WriteFile(filepath.Join(sel.TargetDir, ManifestFile), patched, 0644)
}

// overlaps reports whether a and b are the same directory or one lies
// beneath the other.
func overlaps(a, b string) bool {
	return within(a, b) || within(b, a)
}

// within reports whether path is dir or lies beneath it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
