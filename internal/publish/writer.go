// Package publish writes the rendered presentation and its images into the
// distribution directory.
package publish

import (
	"os"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/tacogips/deckgen/internal/debug"
	"github.com/tacogips/deckgen/internal/tree"
)

const (
	dirMode  os.FileMode = 0755
	fileMode os.FileMode = 0644
)

// Writer writes files to the distribution directory.
type Writer interface {
	// WriteFile writes content to path, replacing any existing file.
	WriteFile(path string, content []byte) error

	// CreateDir creates a directory and any necessary parent directories.
	CreateDir(path string) error

	// ResetDir removes path recursively if it exists and recreates it empty.
	ResetDir(path string) error

	// CopyEntry writes the content of entry into dir under the entry's own
	// name and returns the destination path.
	CopyEntry(entry *tree.Entry, dir string) (string, error)

	// Exists checks if a file or directory exists at the given path.
	Exists(path string) bool
}

// FSWriter implements Writer on a billy filesystem.
type FSWriter struct {
	fs billy.Filesystem
}

// NewWriter creates a Writer on fs.
func NewWriter(fs billy.Filesystem) Writer {
	return &FSWriter{fs: fs}
}

// WriteFile writes content to path. Parent directories are created as
// needed. The content is written to a temporary file first and renamed
// into place.
func (w *FSWriter) WriteFile(p string, content []byte) error {
	debug.Debug("[publish] Writing file: %s (size: %d bytes)", p, len(content))

	dir := path.Dir(p)
	if dir != "" && dir != "." {
		if err := w.CreateDir(dir); err != nil {
			return newPublishError(PublishWriteFailed,
				"failed to create parent directory",
				p,
				err)
		}
	}

	tempFile := p + ".tmp"
	f, err := w.fs.OpenFile(tempFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileMode)
	if err != nil {
		return newPublishError(PublishWriteFailed,
			"failed to create temporary file",
			p,
			err)
	}

	_, err = f.Write(content)
	closeErr := f.Close()

	if err != nil {
		_ = w.fs.Remove(tempFile)
		return newPublishError(PublishWriteFailed,
			"failed to write file content",
			p,
			err)
	}

	if closeErr != nil {
		_ = w.fs.Remove(tempFile)
		return newPublishError(PublishWriteFailed,
			"failed to close file",
			p,
			closeErr)
	}

	debug.Debug("[publish] Renaming temporary file: %s -> %s", tempFile, p)
	if err := w.fs.Rename(tempFile, p); err != nil {
		_ = w.fs.Remove(tempFile)
		return newPublishError(PublishWriteFailed,
			"failed to rename temporary file",
			p,
			err)
	}

	return nil
}

// CreateDir creates a directory and any necessary parent directories.
func (w *FSWriter) CreateDir(p string) error {
	if err := w.fs.MkdirAll(p, dirMode); err != nil {
		return newPublishError(PublishWriteFailed,
			"failed to create directory",
			p,
			err)
	}
	return nil
}

// ResetDir removes p and everything below it, then recreates it empty.
func (w *FSWriter) ResetDir(p string) error {
	if w.Exists(p) {
		debug.Debug("[publish] Removing existing directory: %s", p)
		if err := util.RemoveAll(w.fs, p); err != nil {
			return newPublishError(PublishResetFailed,
				"failed to remove directory",
				p,
				err)
		}
	}

	if err := w.fs.MkdirAll(p, dirMode); err != nil {
		return newPublishError(PublishResetFailed,
			"failed to recreate directory",
			p,
			err)
	}
	debug.Debug("[publish] Directory reset: %s", p)
	return nil
}

// CopyEntry writes entry's content to dir/<entry.Name>.
func (w *FSWriter) CopyEntry(entry *tree.Entry, dir string) (string, error) {
	dst := path.Join(dir, entry.Name)
	debug.Debug("[publish] Copying %s -> %s", entry.Path, dst)

	if err := util.WriteFile(w.fs, dst, entry.Bytes(), fileMode); err != nil {
		return "", newPublishError(PublishCopyFailed,
			"failed to copy asset",
			dst,
			err)
	}
	return dst, nil
}

// Exists checks if a file or directory exists at the given path.
func (w *FSWriter) Exists(p string) bool {
	_, err := w.fs.Stat(p)
	return err == nil
}
