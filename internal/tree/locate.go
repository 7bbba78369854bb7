package tree

import (
	"errors"

	"github.com/tacogips/deckgen/internal/debug"
)

// Locate finds the directory called name inside start, or failing that
// inside start's parent. The generator may be run from the project root or
// from one level below it.
func Locate(start *Dir, name string) (*Dir, error) {
	debug.Debug("[tree] Locating content dir %q from %s", name, start.Path)
	checked := []string{start.Path}

	ok, err := start.HasDir(name)
	if err != nil {
		return nil, err
	}
	if ok {
		return start.ResolveDir(name)
	}

	parent, err := start.Parent()
	if err != nil {
		var be *BoundaryError
		if errors.As(err, &be) {
			return nil, &ContentDirectoryNotFoundError{Name: name, Checked: checked}
		}
		return nil, err
	}
	checked = append(checked, parent.Path)

	ok, err = parent.HasDir(name)
	if err != nil {
		return nil, err
	}
	if ok {
		debug.Debug("[tree] Content dir found in parent %s", parent.Path)
		return parent.ResolveDir(name)
	}

	return nil, &ContentDirectoryNotFoundError{Name: name, Checked: checked}
}
