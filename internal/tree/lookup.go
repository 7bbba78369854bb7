package tree

import (
	"errors"
	"strings"

	"github.com/tacogips/deckgen/internal/debug"
)

// match picks the item named by query. The query must be a prefix of
// exactly one item name; an item named exactly like the query still counts
// as one candidate among the others.
func match(items []Item, query, dir, kind string) (Item, error) {
	if query == "" {
		return Item{}, &NotFoundError{Query: query, Dir: dir, Kind: kind}
	}

	var candidates []Item
	for _, it := range items {
		if strings.HasPrefix(it.Name, query) {
			candidates = append(candidates, it)
		}
	}

	switch len(candidates) {
	case 0:
		return Item{}, &NotFoundError{Query: query, Dir: dir, Kind: kind}
	case 1:
		return candidates[0], nil
	default:
		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = c.Name
		}
		return Item{}, &AmbiguousNameError{Query: query, Dir: dir, Candidates: names}
	}
}

// Resolve finds the child named by query among all items and opens it.
// The result is a *Entry for files and a *Dir for directories.
func (d *Dir) Resolve(query string) (Node, error) {
	it, err := match(d.items, query, d.Path, "")
	if err != nil {
		return nil, err
	}
	debug.Debug("[tree] Resolved %q in %s -> %s", query, d.Path, it.Name)

	if it.IsDir {
		return OpenDir(d.fs, it.Path)
	}
	return ReadEntry(d.fs, it.Path)
}

// ResolveFile finds the file named by query and reads it.
func (d *Dir) ResolveFile(query string) (*Entry, error) {
	it, err := match(d.Files(), query, d.Path, "file")
	if err != nil {
		return nil, err
	}
	debug.Debug("[tree] Resolved file %q in %s -> %s", query, d.Path, it.Name)
	return ReadEntry(d.fs, it.Path)
}

// ResolveDir finds the directory named by query and opens it.
func (d *Dir) ResolveDir(query string) (*Dir, error) {
	it, err := match(d.Dirs(), query, d.Path, "dir")
	if err != nil {
		return nil, err
	}
	debug.Debug("[tree] Resolved dir %q in %s -> %s", query, d.Path, it.Name)
	return OpenDir(d.fs, it.Path)
}

// HasFile reports whether ResolveFile would find a file. Only a not-found
// result is reported as false; an ambiguous query is returned as an error.
func (d *Dir) HasFile(query string) (bool, error) {
	_, err := match(d.Files(), query, d.Path, "file")
	return found(err)
}

// HasDir reports whether ResolveDir would find a directory, with the same
// error rules as HasFile.
func (d *Dir) HasDir(query string) (bool, error) {
	_, err := match(d.Dirs(), query, d.Path, "dir")
	return found(err)
}

func found(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return false, nil
	}
	return false, err
}
