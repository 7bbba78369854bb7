package tree

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"unicode/utf8"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"

	"github.com/tacogips/deckgen/internal/debug"
	"github.com/tacogips/deckgen/internal/render"
)

// BinaryContent is returned by Entry.Content for files that are not text.
const BinaryContent = "IMAGE"

// Entry is the content of one file, read once when the entry is created.
type Entry struct {
	// Path is the cleaned absolute path of the file.
	Path string
	// Name is the base name of the file.
	Name string

	raw    []byte
	binary bool
}

// ReadEntry reads the file at p.
func ReadEntry(fs billy.Filesystem, p string) (*Entry, error) {
	p = cleanPath(p)
	raw, err := util.ReadFile(fs, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}

	e := &Entry{
		Path:   p,
		Name:   path.Base(p),
		raw:    raw,
		binary: isBinaryContent(raw),
	}
	debug.Debug("[tree] Read entry %s (%d bytes, binary=%v)", p, len(raw), e.binary)
	return e, nil
}

// NewEntry builds an entry from content already in memory.
func NewEntry(p string, content []byte) *Entry {
	p = cleanPath(p)
	raw := append([]byte(nil), content...)
	return &Entry{
		Path:   p,
		Name:   path.Base(p),
		raw:    raw,
		binary: isBinaryContent(raw),
	}
}

// Content returns the text of the entry, or BinaryContent when the entry
// is not decodable as text.
func (e *Entry) Content() string {
	if e.binary {
		return BinaryContent
	}
	return string(e.raw)
}

// Bytes returns a copy of the raw file content.
func (e *Entry) Bytes() []byte {
	return append([]byte(nil), e.raw...)
}

// Size returns the length of the raw content in bytes.
func (e *Entry) Size() int {
	return len(e.raw)
}

// IsBinary reports whether the entry holds non-text content.
func (e *Entry) IsBinary() bool {
	return e.binary
}

// Data parses the entry as YAML (or JSON) into a mapping.
// The content is parsed again on every call.
func (e *Entry) Data() (map[string]any, error) {
	if e.binary {
		return nil, &ParseError{Path: e.Path, Cause: errors.New("binary content")}
	}
	return ParseData(e.Path, e.raw)
}

// Template compiles the entry as a template. The content is compiled again
// on every call.
func (e *Entry) Template() (render.Template, error) {
	if e.binary {
		return nil, &render.TemplateSyntaxError{Name: e.Path, Message: "binary content"}
	}
	return render.Compile(e.Path, e.raw)
}

func (e *Entry) isNode() {}

// ParseData parses buf as a YAML mapping. An empty document yields an empty
// mapping; any other top-level value is an error.
func ParseData(name string, buf []byte) (map[string]any, error) {
	var doc any
	if err := yaml.Unmarshal(buf, &doc); err != nil {
		return nil, &ParseError{Path: name, Cause: err}
	}
	if doc == nil {
		return map[string]any{}, nil
	}

	m, ok := normalize(doc).(map[string]any)
	if !ok {
		return nil, &ParseError{Path: name, Cause: fmt.Errorf("top-level value is %T, expected a mapping", doc)}
	}
	return m, nil
}

// isBinaryContent reports whether content is not valid UTF-8 or contains a
// NUL byte in its first 512 bytes.
func isBinaryContent(content []byte) bool {
	checkLen := len(content)
	if checkLen > 512 {
		checkLen = 512
	}
	if bytes.IndexByte(content[:checkLen], 0) != -1 {
		return true
	}
	return !utf8.Valid(content)
}

// normalize rewrites mappings with non-string keys, such as numeric slide
// identifiers, into map[string]any.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalize(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	default:
		return v
	}
}
