package app

import (
	"context"
	"path"
	"strings"

	"github.com/tacogips/deckgen/internal/debug"
	"github.com/tacogips/deckgen/internal/publish"
	"github.com/tacogips/deckgen/internal/tree"
)

// Result summarizes a published presentation.
type Result struct {
	// OutputPath is the path of the written presentation.
	OutputPath string
	// Groups is the number of rendered slide groups.
	Groups int
	// Slides is the number of rendered slides.
	Slides int
	// Images lists the copied image paths, each once, in copy order.
	Images []string
}

// Publish renders every slide and the presentation in memory, then resets
// the output image directory, copies validated images and writes the
// output file. A render failure leaves the distribution directory as it was.
func (c *Context) Publish(ctx context.Context, plan *Plan) (*Result, error) {
	debug.DebugSection("[app] Publish")

	doc, assets, slides, err := c.render(ctx, plan)
	if err != nil {
		return nil, err
	}

	w := publish.NewWriter(c.FS)
	imagesOut := path.Join(c.DistDir, c.Layout.ImagesDir)
	if err := w.ResetDir(imagesOut); err != nil {
		return nil, NewPublishError("failed to reset image directory", err)
	}

	result := &Result{Groups: len(plan.Groups), Slides: slides}
	copied := make(map[string]bool)
	for _, asset := range assets {
		if err := ctx.Err(); err != nil {
			return nil, NewPublishError("publish cancelled", err)
		}
		dst, err := w.CopyEntry(asset, imagesOut)
		if err != nil {
			return nil, NewPublishError("failed to copy background "+asset.Name, err)
		}
		if !copied[dst] {
			copied[dst] = true
			result.Images = append(result.Images, dst)
		}
	}

	result.OutputPath = path.Join(c.DistDir, c.Config.Presentation.Filename)
	if err := w.WriteFile(result.OutputPath, []byte(doc)); err != nil {
		return nil, NewPublishError("failed to write presentation", err)
	}

	debug.Debug("[app] Published %s (%d slide(s), %d image(s))", result.OutputPath, result.Slides, len(result.Images))
	return result, nil
}

// render produces the presentation text and the background images to copy,
// in slide order, without touching the filesystem.
func (c *Context) render(ctx context.Context, plan *Plan) (string, []*tree.Entry, int, error) {
	var (
		assets []*tree.Entry
		count  int
		blocks = make([]string, 0, len(plan.Groups))
		names  = make([]string, 0, len(plan.Groups))
	)

	for _, g := range plan.Groups {
		if err := ctx.Err(); err != nil {
			return "", nil, 0, NewPublishError("publish cancelled", err)
		}

		rendered := make([]string, 0, len(g.Slides))
		for _, s := range g.Slides {
			if asset, ok := g.Assets[s.Name]; ok {
				assets = append(assets, asset)
			}

			vars := s.Vars()
			debug.DebugYAML("[app] Slide "+g.Name+"/"+s.Name, vars)
			out, err := c.SlideTemplate.Render(vars)
			if err != nil {
				return "", nil, 0, NewPublishError("failed to render slide "+g.Name+"/"+s.Name, err)
			}
			rendered = append(rendered, out)
			count++
		}

		blocks = append(blocks, strings.Join(rendered, "\n"))
		names = append(names, g.Name)
	}

	doc, err := c.PresentationTemplate.Render(map[string]any{
		"slides": blocks,
		"title":  c.Config.Presentation.Title,
		"groups": names,
	})
	if err != nil {
		return "", nil, 0, NewPublishError("failed to render presentation", err)
	}
	return doc, assets, count, nil
}
