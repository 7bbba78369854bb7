package deck

import (
	"errors"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacogips/deckgen/internal/config"
	"github.com/tacogips/deckgen/internal/tree"
)

func imagesDir(t *testing.T, names ...string) *tree.Dir {
	t.Helper()
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("/content/images", 0o755))
	for _, n := range names {
		require.NoError(t, util.WriteFile(fs, "/content/images/"+n, []byte("\x89PNG\x00"), 0o644))
	}
	d, err := tree.OpenDir(fs, "/content/images")
	require.NoError(t, err)
	return d
}

func TestExtract_OrderFidelity(t *testing.T) {
	cfg := GroupConfig{
		Order: []string{"c", "a", "b"},
		Slides: map[string]map[string]any{
			"a": {"text": "A"},
			"b": {"text": "B"},
			"c": {"text": "C"},
		},
	}

	slides, err := Extract("intro", cfg)
	require.NoError(t, err)
	require.Len(t, slides, 3)

	for i, want := range []string{"c", "a", "b"} {
		assert.Equal(t, want, slides[i].Name)
		assert.Equal(t, "intro", slides[i].Group)
		assert.Equal(t, want, slides[i].Vars()[FieldName])
	}
	assert.Equal(t, "C", slides[0].Fields["text"])
}

func TestExtract_MissingSlide(t *testing.T) {
	cfg := GroupConfig{
		Order:  []string{"a", "ghost"},
		Slides: map[string]map[string]any{"a": {"text": "A"}},
	}

	_, err := Extract("intro", cfg)
	var ms *MissingSlideError
	require.True(t, errors.As(err, &ms), "expected MissingSlideError, got %v", err)
	assert.Equal(t, "ghost", ms.Slide)
	assert.Equal(t, "intro", ms.Group)
}

func TestExtract_DoesNotAliasConfig(t *testing.T) {
	cfg := GroupConfig{
		Order:  []string{"a"},
		Slides: map[string]map[string]any{"a": {"text": "A"}},
	}
	slides, err := Extract("g", cfg)
	require.NoError(t, err)

	slides[0].Fields["text"] = "changed"
	assert.Equal(t, "A", cfg.Slides["a"]["text"])
}

func TestDecodeGroup(t *testing.T) {
	data := map[string]any{
		"order": []any{"title", 2},
		"slides": map[string]any{
			"title": map[string]any{"text": "Hello", "background": "bg.png"},
			"2":     nil,
		},
	}

	cfg, err := DecodeGroup("intro/config.yaml", data)
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "2"}, cfg.Order)
	assert.Equal(t, "Hello", cfg.Slides["title"]["text"])

	slides, err := Extract("intro", cfg)
	require.NoError(t, err)
	require.Len(t, slides, 2)
	assert.Empty(t, slides[1].Fields, "a slide declared without fields has an empty field set")
	assert.Equal(t, map[string]any{FieldName: "2"}, slides[1].Vars())
}

func TestDecodeGroup_MissingKeys(t *testing.T) {
	for _, key := range []string{"order", "slides"} {
		t.Run(key, func(t *testing.T) {
			data := map[string]any{"order": []any{}, "slides": map[string]any{}}
			delete(data, key)

			_, err := DecodeGroup("g/config.yaml", data)
			var cfgErr *config.ConfigError
			require.True(t, errors.As(err, &cfgErr), "expected ConfigError, got %v", err)
			assert.Equal(t, key, cfgErr.Field)
		})
	}
}

func TestDecodeGroup_BadShape(t *testing.T) {
	_, err := DecodeGroup("g/config.yaml", map[string]any{
		"order":  []any{"a"},
		"slides": map[string]any{"a": "just a string"},
	})
	var cfgErr *config.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, config.ConfigInvalid, cfgErr.Type)
}

func TestBackground(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
		want   string
	}{
		{"absent", map[string]any{}, ""},
		{"nil", map[string]any{"background": nil}, ""},
		{"blank", map[string]any{"background": "   "}, ""},
		{"trimmed", map[string]any{"background": "  bg.png \n"}, "bg.png"},
		{"number", map[string]any{"background": 42}, "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slide{Fields: tt.fields}.Background())
		})
	}
}

func TestValidate(t *testing.T) {
	images := imagesDir(t, "bg.png", "a1.png", "a2.png")

	t.Run("no background", func(t *testing.T) {
		asset, err := Validate(Slide{Group: "g", Name: "s", Fields: map[string]any{"text": "x"}}, images)
		require.NoError(t, err)
		assert.Nil(t, asset)
	})

	t.Run("blank background needs no pool", func(t *testing.T) {
		asset, err := Validate(Slide{Group: "g", Name: "s", Fields: map[string]any{"background": " "}}, nil)
		require.NoError(t, err)
		assert.Nil(t, asset)
	})

	t.Run("existing background", func(t *testing.T) {
		asset, err := Validate(Slide{Group: "g", Name: "s", Fields: map[string]any{"background": "bg.png"}}, images)
		require.NoError(t, err)
		require.NotNil(t, asset)
		assert.Equal(t, "bg.png", asset.Name)
		assert.True(t, asset.IsBinary())
	})

	t.Run("missing background", func(t *testing.T) {
		_, err := Validate(Slide{Group: "g", Name: "s", Fields: map[string]any{"background": "nope.png"}}, images)
		var ma *MissingAssetError
		require.True(t, errors.As(err, &ma), "expected MissingAssetError, got %v", err)
		assert.Equal(t, "nope.png", ma.Filename)
		assert.Equal(t, "s", ma.Slide)
		assert.Contains(t, ma.Error(), "nope.png")
	})

	t.Run("no image pool", func(t *testing.T) {
		_, err := Validate(Slide{Group: "g", Name: "s", Fields: map[string]any{"background": "bg.png"}}, nil)
		var ma *MissingAssetError
		assert.True(t, errors.As(err, &ma))
	})

	t.Run("ambiguous background", func(t *testing.T) {
		_, err := Validate(Slide{Group: "g", Name: "s", Fields: map[string]any{"background": "a"}}, images)
		var amb *tree.AmbiguousNameError
		assert.True(t, errors.As(err, &amb), "expected AmbiguousNameError, got %v", err)
	})

	t.Run("field names must be template variables", func(t *testing.T) {
		for _, field := range []string{"sub-title", "speaker notes", "über", ""} {
			_, err := Validate(Slide{Group: "g", Name: "s", Fields: map[string]any{"text": "x", field: "y"}}, images)
			var inv *InvalidFieldError
			require.True(t, errors.As(err, &inv), "field %q: expected InvalidFieldError, got %v", field, err)
			assert.Equal(t, field, inv.Field)
		}

		_, err := Validate(Slide{Group: "g", Name: "s", Fields: map[string]any{"sub_title": "y", "col2": "z"}}, images)
		assert.NoError(t, err)
	})

	t.Run("reserved name field", func(t *testing.T) {
		_, err := Validate(Slide{Group: "g", Name: "s", Fields: map[string]any{"name": "other"}}, images)
		var rf *ReservedFieldError
		require.True(t, errors.As(err, &rf))
		assert.Equal(t, FieldName, rf.Field)
	})
}

func TestPrune(t *testing.T) {
	fields := map[string]any{
		"text":     "Hello",
		"subtitle": "",
		"notes":    nil,
		"bullets":  []any{},
		"meta":     map[string]any{},
		"spaces":   "  ",
		"count":    0,
		"flag":     false,
		"items":    []any{"a"},
	}

	got := Prune(fields)

	assert.Equal(t, map[string]any{
		"text":   "Hello",
		"spaces": "  ",
		"count":  0,
		"flag":   false,
		"items":  []any{"a"},
	}, got)
	assert.Len(t, fields, 9, "Prune must not modify its input")
}

func TestVars_PrunesAndAddsName(t *testing.T) {
	s := Slide{Group: "g", Name: "title", Fields: map[string]any{"text": "Hello", "background": ""}}

	vars := s.Vars()
	assert.Equal(t, map[string]any{"text": "Hello", "name": "title"}, vars)
	assert.NotContains(t, vars, "background")
}
