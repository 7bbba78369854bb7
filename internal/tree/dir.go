// Package tree provides read-only traversal of the generator and content
// directories: directories whose children are resolved by name prefix, and
// file entries that can be viewed as text, structured data or templates.
package tree

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"

	"github.com/tacogips/deckgen/internal/debug"
)

// Node is a resolved directory child: either *Entry or *Dir.
type Node interface {
	isNode()
}

// Item is one immediate child of a directory.
type Item struct {
	Name  string
	Path  string
	IsDir bool
}

// Dir is a directory whose child listing is captured once when it is opened.
// Later changes on disk are not observed.
type Dir struct {
	// Path is the cleaned absolute path of the directory.
	Path string
	// Name is the base name of the directory.
	Name string

	fs    billy.Filesystem
	items []Item
}

// OpenDir lists the directory at p. Children whose names start with "."
// are skipped. When p is a symbolic link the directory takes the path of
// its target, so Parent walks the real tree.
func OpenDir(fs billy.Filesystem, p string) (*Dir, error) {
	p = realPath(fs, cleanPath(p))

	info, err := fs.Stat(p)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &NotADirectoryError{Path: p}
	}

	infos, err := fs.ReadDir(p)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(infos))
	for _, fi := range infos {
		name := fi.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		childPath := path.Join(p, name)
		isDir := fi.IsDir()
		if fi.Mode()&os.ModeSymlink != 0 {
			// Follow the link so a linked directory is treated as one.
			if target, err := fs.Stat(childPath); err == nil {
				isDir = target.IsDir()
			}
		}
		items = append(items, Item{Name: name, Path: childPath, IsDir: isDir})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })

	debug.Debug("[tree] Opened dir %s (%d items)", p, len(items))
	return &Dir{
		Path:  p,
		Name:  path.Base(p),
		fs:    fs,
		items: items,
	}, nil
}

// Items returns all visible children in name order.
func (d *Dir) Items() []Item {
	return append([]Item(nil), d.items...)
}

// Files returns the children that are not directories.
func (d *Dir) Files() []Item {
	return d.filter(false)
}

// Dirs returns the children that are directories.
func (d *Dir) Dirs() []Item {
	return d.filter(true)
}

func (d *Dir) filter(dirs bool) []Item {
	var out []Item
	for _, it := range d.items {
		if it.IsDir == dirs {
			out = append(out, it)
		}
	}
	return out
}

// Children opens every child directory.
func (d *Dir) Children() ([]*Dir, error) {
	var children []*Dir
	for _, it := range d.Dirs() {
		child, err := OpenDir(d.fs, it.Path)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

// Parent opens the enclosing directory. The filesystem root has no parent
// and returns a *BoundaryError.
func (d *Dir) Parent() (*Dir, error) {
	parent := path.Dir(d.Path)
	if parent == d.Path {
		return nil, &BoundaryError{Path: d.Path}
	}
	return OpenDir(d.fs, parent)
}

// String implements fmt.Stringer.
func (d *Dir) String() string {
	return fmt.Sprintf("[dir: %s, %d items]", d.Name, len(d.items))
}

func (d *Dir) isNode() {}

func cleanPath(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

// maxLinkDepth bounds symlink chains, matching the usual ELOOP limit.
const maxLinkDepth = 40

// realPath follows p while its last component is a symbolic link. Every
// directory is opened from an already canonical parent, so resolving the
// last component is enough to keep paths canonical.
func realPath(fs billy.Filesystem, p string) string {
	for i := 0; i < maxLinkDepth; i++ {
		fi, err := fs.Lstat(p)
		if err != nil || fi.Mode()&os.ModeSymlink == 0 {
			return p
		}
		target, err := fs.Readlink(p)
		if err != nil {
			return p
		}
		if !path.IsAbs(filepath.ToSlash(target)) {
			target = path.Join(path.Dir(p), filepath.ToSlash(target))
		}
		p = cleanPath(target)
	}
	return p
}
