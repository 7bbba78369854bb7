package app

import (
	"context"
	"fmt"
	"path"

	"github.com/tacogips/deckgen/internal/config"
	"github.com/tacogips/deckgen/internal/debug"
	"github.com/tacogips/deckgen/internal/deck"
	"github.com/tacogips/deckgen/internal/tree"
)

// Group is one validated slide group.
type Group struct {
	// Name is the identifier listed in the content root order.
	Name string
	// Dir is the slide group directory.
	Dir *tree.Dir
	// Slides are the group's slides in render order.
	Slides []deck.Slide
	// Assets maps slide names to their validated background images.
	Assets map[string]*tree.Entry
}

// Plan is the fully validated input of a publish step.
type Plan struct {
	// ContentRoot is the located content directory.
	ContentRoot *tree.Dir
	// Images is the shared image pool, nil if the content root has none.
	Images *tree.Dir
	// Groups are the slide groups in presentation order.
	Groups []Group
}

// SlideCount returns the number of slides across all groups.
func (p *Plan) SlideCount() int {
	n := 0
	for _, g := range p.Groups {
		n += len(g.Slides)
	}
	return n
}

// Prepare locates the content root, reads the slide group order and
// extracts and validates every slide of every group. It never writes.
func (c *Context) Prepare(ctx context.Context) (*Plan, error) {
	debug.DebugSection("[app] Prepare")

	root, err := tree.Locate(c.Generator, c.Config.Content.Dirname)
	if err != nil {
		return nil, NewPrepareError("failed to locate content directory", err)
	}
	debug.DebugValue("[app] Content root", root.Path)

	order, err := c.loadContentOrder(root)
	if err != nil {
		return nil, NewPrepareError("failed to load content configuration", err)
	}

	images, err := c.openImages(root)
	if err != nil {
		return nil, NewPrepareError("failed to open image pool", err)
	}
	if images != nil && images.Path == path.Join(c.DistDir, c.Layout.ImagesDir) {
		return nil, NewPrepareError("invalid distribution directory",
			fmt.Errorf("image output %s is the image pool itself", images.Path))
	}

	plan := &Plan{ContentRoot: root, Images: images}
	for _, name := range order {
		if err := ctx.Err(); err != nil {
			return nil, NewPrepareError("preparation cancelled", err)
		}
		group, err := c.prepareGroup(root, images, name)
		if err != nil {
			return nil, NewPrepareError("invalid slide group "+name, err)
		}
		plan.Groups = append(plan.Groups, *group)
	}

	debug.Debug("[app] Prepared %d group(s), %d slide(s)", len(plan.Groups), plan.SlideCount())
	return plan, nil
}

func (c *Context) loadContentOrder(root *tree.Dir) ([]string, error) {
	entry, err := findConfig(root, c.Layout.ConfigFile)
	if err != nil {
		return nil, err
	}
	data, err := entry.Data()
	if err != nil {
		return nil, err
	}
	cfg, err := config.DecodeContent(entry.Path, data)
	if err != nil {
		return nil, err
	}
	return cfg.Order, nil
}

func (c *Context) openImages(root *tree.Dir) (*tree.Dir, error) {
	ok, err := root.HasDir(c.Layout.ImagesDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		debug.Debug("[app] Content root has no %s directory", c.Layout.ImagesDir)
		return nil, nil
	}
	return root.ResolveDir(c.Layout.ImagesDir)
}

func (c *Context) prepareGroup(root, images *tree.Dir, name string) (*Group, error) {
	debug.Debug("[app] Preparing slide group %s", name)

	dir, err := root.ResolveDir(name)
	if err != nil {
		return nil, err
	}
	entry, err := findConfig(dir, c.Layout.ConfigFile)
	if err != nil {
		return nil, err
	}
	data, err := entry.Data()
	if err != nil {
		return nil, err
	}
	cfg, err := deck.DecodeGroup(entry.Path, data)
	if err != nil {
		return nil, err
	}
	slides, err := deck.Extract(name, cfg)
	if err != nil {
		return nil, err
	}

	assets := make(map[string]*tree.Entry)
	for _, s := range slides {
		asset, err := deck.Validate(s, images)
		if err != nil {
			return nil, err
		}
		if asset != nil {
			assets[s.Name] = asset
		}
	}

	return &Group{Name: name, Dir: dir, Slides: slides, Assets: assets}, nil
}
