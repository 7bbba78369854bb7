// Package render compiles and executes slide and presentation templates.
//
// Templates use Jinja syntax through pongo2. Variables that are not
// supplied render as empty text and evaluate as false in conditionals, so
// optional slide fields can simply be left out of the variable map.
package render

import (
	"errors"
	"regexp"

	"github.com/flosch/pongo2/v6"

	"github.com/tacogips/deckgen/internal/debug"
)

// Template renders a set of named fields into text.
type Template interface {
	// Name returns the template name used in error messages.
	Name() string
	// Render executes the template with vars.
	Render(vars map[string]any) (string, error)
}

// SetAutoescape toggles HTML escaping of rendered variables for all templates.
// It is off by default. The setting is process-wide.
func SetAutoescape(enable bool) {
	pongo2.SetAutoescape(enable)
}

func init() {
	pongo2.SetAutoescape(false)
}

// validName is the rule pongo2 applies to context keys.
var validName = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// IsValidName reports whether name can be passed to Render as a variable.
func IsValidName(name string) bool {
	return validName.MatchString(name)
}

type pongoTemplate struct {
	name string
	tpl  *pongo2.Template
}

// Compile parses src as a template. Each call compiles src again.
func Compile(name string, src []byte) (Template, error) {
	debug.Debug("[render] Compiling template %s (%d bytes)", name, len(src))

	tpl, err := pongo2.FromBytes(src)
	if err != nil {
		return nil, newSyntaxError(name, err)
	}
	return &pongoTemplate{name: name, tpl: tpl}, nil
}

// Name returns the template name.
func (t *pongoTemplate) Name() string {
	return t.name
}

// Render executes the template with vars.
func (t *pongoTemplate) Render(vars map[string]any) (string, error) {
	out, err := t.tpl.Execute(pongo2.Context(vars))
	if err != nil {
		return "", &RenderError{Name: t.name, Cause: err}
	}
	debug.Debug("[render] Rendered %s (%d bytes)", t.name, len(out))
	return out, nil
}

func newSyntaxError(name string, err error) *TemplateSyntaxError {
	se := &TemplateSyntaxError{
		Name:    name,
		Message: err.Error(),
		Cause:   err,
	}

	var perr *pongo2.Error
	if errors.As(err, &perr) {
		se.Line = perr.Line
		if perr.OrigError != nil {
			se.Message = perr.OrigError.Error()
		}
	}
	return se
}
