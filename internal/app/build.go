package app

import (
	"context"

	"github.com/tacogips/deckgen/internal/debug"
)

// Build renders the presentation described by the generator directory.
// Every slide group is validated before anything is written.
func Build(ctx context.Context, opts Options) (*Result, error) {
	debug.DebugSection("[app] Build workflow start")

	c, err := NewContext(opts)
	if err != nil {
		return nil, err
	}

	plan, err := c.Prepare(ctx)
	if err != nil {
		debug.Debug("[app] Prepare failed, nothing written: %v", err)
		return nil, err
	}

	result, err := c.Publish(ctx, plan)
	if err != nil {
		return nil, err
	}

	debug.Debug("[app] Build workflow completed successfully")
	return result, nil
}

// Inspect loads and validates the presentation without writing anything.
func Inspect(ctx context.Context, opts Options) (*Context, *Plan, error) {
	debug.DebugSection("[app] Inspect workflow start")

	c, err := NewContext(opts)
	if err != nil {
		return nil, nil, err
	}

	plan, err := c.Prepare(ctx)
	if err != nil {
		return nil, nil, err
	}
	return c, plan, nil
}
