// Package deck turns slide-group configuration into ordered slide records
// and checks them against the shared image pool.
package deck

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/tacogips/deckgen/internal/config"
	"github.com/tacogips/deckgen/internal/debug"
	"github.com/tacogips/deckgen/internal/render"
	"github.com/tacogips/deckgen/internal/tree"
)

const (
	// FieldName is the variable holding the slide identifier.
	FieldName = "name"
	// FieldBackground names the image in the pool used as slide background.
	FieldBackground = "background"
)

// GroupConfig is the configuration of one slide group.
type GroupConfig struct {
	// Order lists slide identifiers in render order.
	Order []string `mapstructure:"order"`
	// Slides maps slide identifiers to their field sets.
	Slides map[string]map[string]any `mapstructure:"slides"`
}

// Slide is one slide ready to be validated and rendered.
type Slide struct {
	// Group is the slide group the slide belongs to.
	Group string
	// Name is the key the slide was declared under.
	Name string
	// Fields is the slide's own field set.
	Fields map[string]any
}

// DecodeGroup decodes a parsed slide-group configuration.
func DecodeGroup(file string, data map[string]any) (GroupConfig, error) {
	for _, key := range []string{"order", "slides"} {
		if _, ok := data[key]; !ok {
			return GroupConfig{}, config.NewConfigErrorWithField(config.ConfigValidationFailed, file, key,
				fmt.Sprintf("%s is required", key))
		}
	}

	var cfg GroupConfig
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return GroupConfig{}, err
	}
	if err := dec.Decode(data); err != nil {
		return GroupConfig{}, config.NewConfigErrorWithCause(config.ConfigInvalid, file, "invalid slide group configuration", err)
	}
	return cfg, nil
}

// Extract builds the slides of a group in the sequence given by cfg.Order.
func Extract(group string, cfg GroupConfig) ([]Slide, error) {
	slides := make([]Slide, 0, len(cfg.Order))
	for _, name := range cfg.Order {
		fields, ok := cfg.Slides[name]
		if !ok {
			return nil, &MissingSlideError{Group: group, Slide: name}
		}
		// A slide declared with no fields decodes to a nil map.
		copied := make(map[string]any, len(fields))
		for k, v := range fields {
			copied[k] = v
		}
		slides = append(slides, Slide{Group: group, Name: name, Fields: copied})
	}
	debug.Debug("[deck] Extracted %d slide(s) from group %s", len(slides), group)
	return slides, nil
}

// Background returns the trimmed background reference, or "" if none.
func (s Slide) Background() string {
	v, ok := s.Fields[FieldBackground]
	if !ok || v == nil {
		return ""
	}
	if str, ok := v.(string); ok {
		return strings.TrimSpace(str)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// Validate checks that the slide does not redefine its name, that every
// field name is usable as a template variable, and that its background,
// if any, exists in images. images may be nil when the content
// root has no image pool. The resolved image entry is returned, or nil when
// the slide has no background.
func Validate(s Slide, images *tree.Dir) (*tree.Entry, error) {
	if _, ok := s.Fields[FieldName]; ok {
		return nil, &ReservedFieldError{Group: s.Group, Slide: s.Name, Field: FieldName}
	}
	for _, k := range sortedKeys(s.Fields) {
		if !render.IsValidName(k) {
			return nil, &InvalidFieldError{Group: s.Group, Slide: s.Name, Field: k}
		}
	}

	bg := s.Background()
	if bg == "" {
		return nil, nil
	}
	if images == nil {
		return nil, &MissingAssetError{Group: s.Group, Slide: s.Name, Filename: bg}
	}

	ok, err := images.HasFile(bg)
	if err != nil {
		return nil, fmt.Errorf("slide group %q: slide %q: %w", s.Group, s.Name, err)
	}
	if !ok {
		return nil, &MissingAssetError{Group: s.Group, Slide: s.Name, Filename: bg}
	}

	entry, err := images.ResolveFile(bg)
	if err != nil {
		return nil, err
	}
	debug.Debug("[deck] Slide %s/%s background %s -> %s", s.Group, s.Name, bg, entry.Path)
	return entry, nil
}

// Vars returns the variables passed to the slide template: the pruned
// field set plus the slide name.
func (s Slide) Vars() map[string]any {
	vars := Prune(s.Fields)
	vars[FieldName] = s.Name
	return vars
}

// Prune returns a copy of fields without empty values: nil, empty strings,
// and empty lists or mappings.
func Prune(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if isEmpty(v) {
			continue
		}
		out[k] = v
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}
