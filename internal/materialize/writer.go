package materialize

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tacogips/kickstart/internal/debug"
)

// Writer performs the target-side filesystem operations.
type Writer interface {
	// WriteFile writes content to a file, creating parent directories.
	WriteFile(path string, content []byte, mode os.FileMode) error

	// CopyFile byte-copies srcPath on src to path.
	CopyFile(src afero.Fs, srcPath, path string, mode os.FileMode) error

	// CreateDir creates a directory and any necessary parent directories.
	CreateDir(path string) error

	// Purge removes every entry inside dir, keeping dir itself.
	Purge(dir string) error
}

// FSWriter implements Writer on an afero filesystem.
type FSWriter struct {
	fs afero.Fs
}

// NewFSWriter creates a Writer for fs.
func NewFSWriter(fs afero.Fs) *FSWriter {
	return &FSWriter{fs: fs}
}

// WriteFile writes content to a file with the specified permissions.
// Writes atomically using a uniquely named temporary file in the same
// directory and rename, so no sibling entry is ever clobbered.
func (w *FSWriter) WriteFile(path string, content []byte, mode os.FileMode) error {
	debug.Debug("[materialize] Writing file: %s (size: %d bytes, mode: %o)", path, len(content), mode)

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := w.CreateDir(dir); err != nil {
			return err
		}
	}

	f, err := afero.TempFile(w.fs, dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return newMaterializeError(MaterializeWriteFailed, "failed to create temporary file", path, err)
	}
	tempFile := f.Name()

	_, err = f.Write(content)
	closeErr := f.Close()
	if err != nil {
		_ = w.fs.Remove(tempFile)
		return newMaterializeError(MaterializeWriteFailed, "failed to write file content", path, err)
	}
	if closeErr != nil {
		_ = w.fs.Remove(tempFile)
		return newMaterializeError(MaterializeWriteFailed, "failed to close file", path, closeErr)
	}

	// TempFile creates with 0600
	if err := w.fs.Chmod(tempFile, mode.Perm()); err != nil {
		_ = w.fs.Remove(tempFile)
		return newMaterializeError(MaterializeWriteFailed, "failed to set file mode", path, err)
	}

	if err := w.fs.Rename(tempFile, path); err != nil {
		_ = w.fs.Remove(tempFile)
		return newMaterializeError(MaterializeWriteFailed, "failed to rename temporary file", path, err)
	}
	return nil
}

// CopyFile copies a regular file as-is, keeping its permission bits.
func (w *FSWriter) CopyFile(src afero.Fs, srcPath, path string, mode os.FileMode) error {
	debug.Debug("[materialize] Copying file: %s -> %s", srcPath, path)

	in, err := src.Open(srcPath)
	if err != nil {
		return newMaterializeError(MaterializeReadFailed, "failed to open template file", srcPath, err)
	}
	defer func() { _ = in.Close() }()

	out, err := w.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return newMaterializeError(MaterializeWriteFailed, "failed to create file", path, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return newMaterializeError(MaterializeWriteFailed, "failed to copy file content", path, err)
	}
	if err := out.Close(); err != nil {
		return newMaterializeError(MaterializeWriteFailed, "failed to close file", path, err)
	}

	// OpenFile honours the umask; restore the template's bits
	if err := w.fs.Chmod(path, mode.Perm()); err != nil {
		return newMaterializeError(MaterializeWriteFailed, "failed to set file mode", path, err)
	}
	return nil
}

// CreateDir creates a directory and any necessary parent directories.
// Uses 0755 permissions for created directories.
func (w *FSWriter) CreateDir(path string) error {
	if err := w.fs.MkdirAll(path, 0755); err != nil {
		return newMaterializeError(MaterializeWriteFailed, "failed to create directory", path, err)
	}
	return nil
}

// Purge removes every entry inside dir. A missing dir is not an error.
func (w *FSWriter) Purge(dir string) error {
	debug.Debug("[materialize] Purging directory: %s", dir)

	entries, err := afero.ReadDir(w.fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return newMaterializeError(MaterializeWriteFailed, "failed to read directory", dir, err)
	}
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		if err := w.fs.RemoveAll(p); err != nil {
			return newMaterializeError(MaterializeWriteFailed, "failed to remove entry", p, err)
		}
	}
	return nil
}
