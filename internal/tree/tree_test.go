package tree

import (
	"errors"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFS creates an in-memory filesystem holding files (path -> content)
// and empty directories.
func newFS(t *testing.T, files map[string]string, dirs ...string) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	for p, content := range files {
		require.NoError(t, util.WriteFile(fs, p, []byte(content), 0o644))
	}
	for _, d := range dirs {
		require.NoError(t, fs.MkdirAll(d, 0o755))
	}
	return fs
}

func TestOpenDir_ListsVisibleItemsSorted(t *testing.T) {
	fs := newFS(t, map[string]string{
		"/g/b.txt":      "b",
		"/g/a.txt":      "a",
		"/g/.hidden":    "h",
		"/g/sub/x.yaml": "x: 1",
	}, "/g/.git")

	d, err := OpenDir(fs, "/g")
	require.NoError(t, err)

	var names []string
	for _, it := range d.Items() {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"a.txt", "b.txt", "sub"}, names)
	assert.Len(t, d.Files(), 2)
	require.Len(t, d.Dirs(), 1)
	assert.Equal(t, "/g/sub", d.Dirs()[0].Path)
	assert.Equal(t, "g", d.Name)
}

func TestOpenDir_PlainFile(t *testing.T) {
	fs := newFS(t, map[string]string{"/g/file.txt": "x"})

	_, err := OpenDir(fs, "/g/file.txt")
	var nd *NotADirectoryError
	require.True(t, errors.As(err, &nd), "expected NotADirectoryError, got %v", err)
	assert.Equal(t, "/g/file.txt", nd.Path)
}

func TestOpenDir_ListingIsFrozen(t *testing.T) {
	fs := newFS(t, map[string]string{"/g/a.txt": "a"})
	d, err := OpenDir(fs, "/g")
	require.NoError(t, err)

	require.NoError(t, util.WriteFile(fs, "/g/b.txt", []byte("b"), 0o644))

	ok, err := d.HasFile("b.txt")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolve_PrefixAmbiguity(t *testing.T) {
	fs := newFS(t, map[string]string{
		"/g/a1": "one",
		"/g/a2": "two",
	})
	d, err := OpenDir(fs, "/g")
	require.NoError(t, err)

	_, err = d.Resolve("a")
	var amb *AmbiguousNameError
	require.True(t, errors.As(err, &amb), "expected AmbiguousNameError, got %v", err)
	assert.ElementsMatch(t, []string{"a1", "a2"}, amb.Candidates)

	node, err := d.Resolve("a1")
	require.NoError(t, err)
	entry, ok := node.(*Entry)
	require.True(t, ok, "expected *Entry, got %T", node)
	assert.Equal(t, "a1", entry.Name)
	assert.Equal(t, "one", entry.Content())
}

func TestResolve_FullNameStillAmbiguous(t *testing.T) {
	fs := newFS(t, map[string]string{
		"/g/slide1/config.yaml":  "order: []",
		"/g/slide10/config.yaml": "order: []",
		"/g/bg.png":              "\x89PNG\x00",
		"/g/bg.png.bak":          "\x89PNG\x00",
		"/g/a1":                  "one",
		"/g/a10":                 "ten",
	})
	d, err := OpenDir(fs, "/g")
	require.NoError(t, err)

	tests := []struct {
		name    string
		resolve func() error
		want    []string
	}{
		{"dir named like the query", func() error { _, err := d.ResolveDir("slide1"); return err }, []string{"slide1", "slide10"}},
		{"file named like the query", func() error { _, err := d.ResolveFile("bg.png"); return err }, []string{"bg.png", "bg.png.bak"}},
		{"any kind", func() error { _, err := d.Resolve("a1"); return err }, []string{"a1", "a10"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var amb *AmbiguousNameError
			require.True(t, errors.As(tt.resolve(), &amb), "expected AmbiguousNameError")
			assert.ElementsMatch(t, tt.want, amb.Candidates)
		})
	}

	_, err = d.HasFile("bg.png")
	var amb *AmbiguousNameError
	assert.True(t, errors.As(err, &amb), "HasFile must not hide the ambiguity")

	sub, err := d.ResolveDir("slide10")
	require.NoError(t, err)
	assert.Equal(t, "/g/slide10", sub.Path)
}

func TestResolve_UniquePrefix(t *testing.T) {
	fs := newFS(t, map[string]string{
		"/g/slide1-intro/config.yaml": "order: []",
		"/g/config.yaml":              "content: {dirname: c}",
	})
	d, err := OpenDir(fs, "/g")
	require.NoError(t, err)

	node, err := d.Resolve("slide1")
	require.NoError(t, err)
	sub, ok := node.(*Dir)
	require.True(t, ok, "expected *Dir, got %T", node)
	assert.Equal(t, "slide1-intro", sub.Name)

	cfg, err := d.ResolveFile("config")
	require.NoError(t, err)
	assert.Equal(t, "config.yaml", cfg.Name)
}

func TestResolve_NotFound(t *testing.T) {
	fs := newFS(t, map[string]string{"/g/a.txt": "a"}, "/g/dir")
	d, err := OpenDir(fs, "/g")
	require.NoError(t, err)

	tests := []struct {
		name    string
		resolve func() error
	}{
		{"any", func() error { _, err := d.Resolve("zzz"); return err }},
		{"empty query", func() error { _, err := d.Resolve(""); return err }},
		{"file restricted to files", func() error { _, err := d.ResolveFile("dir"); return err }},
		{"dir restricted to dirs", func() error { _, err := d.ResolveDir("a.txt"); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var nf *NotFoundError
			assert.True(t, errors.As(tt.resolve(), &nf))
		})
	}
}

func TestHasFileHasDir(t *testing.T) {
	fs := newFS(t, map[string]string{
		"/g/images/bg.png":  "\x89PNG\x00",
		"/g/images/bg2.png": "\x89PNG\x00",
		"/g/logo.svg":       "<svg/>",
	})
	d, err := OpenDir(fs, "/g")
	require.NoError(t, err)

	ok, err := d.HasDir("images")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = d.HasDir("logo")
	require.NoError(t, err)
	assert.False(t, ok, "files are not dirs")

	ok, err = d.HasFile("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	images, err := d.ResolveDir("images")
	require.NoError(t, err)

	ok, err = images.HasFile("bg.png")
	require.NoError(t, err)
	assert.True(t, ok, "bg.png is not a prefix of bg2.png")

	_, err = images.HasFile("bg")
	var amb *AmbiguousNameError
	assert.True(t, errors.As(err, &amb), "ambiguity must propagate from HasFile")
}

func TestChildrenAndParent(t *testing.T) {
	fs := newFS(t, map[string]string{
		"/p/g/config.yaml": "a: 1",
		"/p/content/x":     "x",
	})
	g, err := OpenDir(fs, "/p/g")
	require.NoError(t, err)

	parent, err := g.Parent()
	require.NoError(t, err)
	assert.Equal(t, "/p", parent.Path)

	children, err := parent.Children()
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "content", children[0].Name)
	assert.Equal(t, "g", children[1].Name)
}

func TestOpenDir_SymlinkTakesTargetPath(t *testing.T) {
	fs := newFS(t, map[string]string{
		"/store/decks/content/config.yaml": "order: []",
		"/p/g/config.yaml":                 "a: 1",
	})
	require.NoError(t, fs.Symlink("/store/decks/content", "/p/content"))
	require.NoError(t, fs.Symlink("content", "/p/latest"))

	g, err := OpenDir(fs, "/p/g")
	require.NoError(t, err)

	c, err := Locate(g, "content")
	require.NoError(t, err)
	assert.Equal(t, "/store/decks/content", c.Path)
	assert.Equal(t, "content", c.Name)

	parent, err := c.Parent()
	require.NoError(t, err)
	assert.Equal(t, "/store/decks", parent.Path, "parent of a linked directory is the target's parent")

	// A relative link is resolved against the link's own directory, then
	// followed again.
	latest, err := OpenDir(fs, "/p/latest")
	require.NoError(t, err)
	assert.Equal(t, "/store/decks/content", latest.Path)
}

func TestParent_Boundary(t *testing.T) {
	fs := newFS(t, map[string]string{"/a.txt": "a"})
	root, err := OpenDir(fs, "/")
	require.NoError(t, err)

	_, err = root.Parent()
	var be *BoundaryError
	assert.True(t, errors.As(err, &be))
}

func TestLocate(t *testing.T) {
	t.Run("in start directory", func(t *testing.T) {
		fs := newFS(t, map[string]string{
			"/p/g/content/config.yaml": "order: []",
			"/p/content/config.yaml":   "order: []",
		})
		g, err := OpenDir(fs, "/p/g")
		require.NoError(t, err)

		c, err := Locate(g, "content")
		require.NoError(t, err)
		assert.Equal(t, "/p/g/content", c.Path)
	})

	t.Run("fallback to parent", func(t *testing.T) {
		fs := newFS(t, map[string]string{
			"/p/g/config.yaml":       "a: 1",
			"/p/content/config.yaml": "order: []",
		})
		g, err := OpenDir(fs, "/p/g")
		require.NoError(t, err)

		c, err := Locate(g, "content")
		require.NoError(t, err)
		assert.Equal(t, "/p/content", c.Path)
	})

	t.Run("missing from both", func(t *testing.T) {
		fs := newFS(t, map[string]string{"/p/g/config.yaml": "a: 1"})
		g, err := OpenDir(fs, "/p/g")
		require.NoError(t, err)

		_, err = Locate(g, "content")
		var cnf *ContentDirectoryNotFoundError
		require.True(t, errors.As(err, &cnf), "expected ContentDirectoryNotFoundError, got %v", err)
		assert.Equal(t, []string{"/p/g", "/p"}, cnf.Checked)
		assert.Contains(t, cnf.Error(), "/p/g")
	})

	t.Run("start at filesystem root", func(t *testing.T) {
		fs := newFS(t, map[string]string{"/config.yaml": "a: 1"})
		root, err := OpenDir(fs, "/")
		require.NoError(t, err)

		_, err = Locate(root, "content")
		var cnf *ContentDirectoryNotFoundError
		require.True(t, errors.As(err, &cnf))
		assert.Equal(t, []string{"/"}, cnf.Checked)
	})
}

func TestEntry_Views(t *testing.T) {
	fs := newFS(t, map[string]string{
		"/g/config.yaml": "presentation:\n  filename: out.html\n",
		"/g/conf.json":   `{"order": ["a", "b"]}`,
		"/g/slide.html":  "<h1>{{ text }}</h1>",
		"/g/bg.png":      "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR",
		"/g/list.yaml":   "- a\n- b\n",
		"/g/bad.yaml":    "a: [unclosed",
		"/g/empty.yaml":  "",
		"/g/numeric.yml": "slides:\n  1: {text: one}\n",
	})
	d, err := OpenDir(fs, "/g")
	require.NoError(t, err)

	cfg, err := d.ResolveFile("config")
	require.NoError(t, err)
	data, err := cfg.Data()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"filename": "out.html"}, data["presentation"])

	js, err := d.ResolveFile("conf.json")
	require.NoError(t, err)
	data, err = js.Data()
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, data["order"])

	tplEntry, err := d.ResolveFile("slide")
	require.NoError(t, err)
	tpl, err := tplEntry.Template()
	require.NoError(t, err)
	out, err := tpl.Render(map[string]any{"text": "Hi"})
	require.NoError(t, err)
	assert.Equal(t, "<h1>Hi</h1>", out)

	img, err := d.ResolveFile("bg")
	require.NoError(t, err)
	assert.True(t, img.IsBinary())
	assert.Equal(t, BinaryContent, img.Content())
	assert.Equal(t, 16, img.Size())
	_, err = img.Data()
	var pe *ParseError
	assert.True(t, errors.As(err, &pe))

	for _, name := range []string{"list", "bad"} {
		e, err := d.ResolveFile(name)
		require.NoError(t, err)
		_, err = e.Data()
		assert.True(t, errors.As(err, &pe), "%s should fail to parse", name)
	}

	empty, err := d.ResolveFile("empty")
	require.NoError(t, err)
	data, err = empty.Data()
	require.NoError(t, err)
	assert.Empty(t, data)

	numeric, err := d.ResolveFile("numeric")
	require.NoError(t, err)
	data, err = numeric.Data()
	require.NoError(t, err)
	slides, ok := data["slides"].(map[string]any)
	require.True(t, ok, "numeric keys should be normalized, got %T", data["slides"])
	assert.Contains(t, slides, "1")
}

func TestEntry_ReadOnce(t *testing.T) {
	fs := newFS(t, map[string]string{"/g/config.yaml": "a: 1"})
	e, err := ReadEntry(fs, "/g/config.yaml")
	require.NoError(t, err)

	require.NoError(t, util.WriteFile(fs, "/g/config.yaml", []byte("a: 2"), 0o644))

	data, err := e.Data()
	require.NoError(t, err)
	assert.Equal(t, 1, data["a"])
	assert.Equal(t, "a: 1", e.Content())
}

func TestNewEntry_CopiesContent(t *testing.T) {
	buf := []byte("text")
	e := NewEntry("/x/y.txt", buf)
	buf[0] = 'X'

	assert.Equal(t, "text", e.Content())
	assert.Equal(t, "y.txt", e.Name)
	assert.False(t, e.IsBinary())

	b := e.Bytes()
	b[0] = 'Z'
	assert.Equal(t, "text", e.Content())
}
