package app

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/tacogips/deckgen/internal/config"
	"github.com/tacogips/deckgen/internal/debug"
	"github.com/tacogips/deckgen/internal/render"
	"github.com/tacogips/deckgen/internal/tree"
)

// Options contains options for building a presentation.
type Options struct {
	// GeneratorDir is the absolute path of the directory holding config.* and templates/.
	GeneratorDir string
	// DistDir is the absolute distribution directory. Empty means <GeneratorDir>/../dist.
	DistDir string
	// FS is the filesystem to work on. Nil means the host filesystem.
	FS billy.Filesystem
	// Layout overrides the on-disk names. Nil means config.DefaultLayout().
	Layout *config.Layout
}

// Context is the state shared by the pipeline stages of one run.
type Context struct {
	// FS is the filesystem every stage reads from and writes to.
	FS billy.Filesystem
	// Layout holds the names looked up on disk.
	Layout config.Layout
	// Generator is the generator directory.
	Generator *tree.Dir
	// Config is the generator root configuration.
	Config *config.RootConfig
	// SlideTemplate renders one slide.
	SlideTemplate render.Template
	// PresentationTemplate wraps the rendered slide groups.
	PresentationTemplate render.Template
	// DistDir is the distribution directory.
	DistDir string
}

// NewContext opens the generator directory, loads its configuration and
// compiles both templates. It does not touch the content directory.
func NewContext(opts Options) (*Context, error) {
	debug.DebugSection("[app] Context initialization")
	debug.DebugValue("[app] GeneratorDir", opts.GeneratorDir)

	if err := validateOptions(opts); err != nil {
		return nil, NewContextError("invalid options", err)
	}

	fs := opts.FS
	if fs == nil {
		fs = osfs.New("/")
	}
	layout := config.DefaultLayout()
	if opts.Layout != nil {
		layout = *opts.Layout
	}

	gen, err := tree.OpenDir(fs, opts.GeneratorDir)
	if err != nil {
		return nil, NewContextError("failed to open generator directory", err)
	}

	cfgEntry, err := findConfig(gen, layout.ConfigFile)
	if err != nil {
		return nil, NewContextError("failed to find root configuration", err)
	}
	data, err := cfgEntry.Data()
	if err != nil {
		return nil, NewContextError("failed to parse root configuration", err)
	}
	cfg, err := config.DecodeRoot(cfgEntry.Path, data)
	if err != nil {
		return nil, NewContextError("invalid root configuration", err)
	}

	templates, err := gen.ResolveDir(layout.TemplatesDir)
	if err != nil {
		return nil, NewContextError("failed to find templates directory", err)
	}
	slideTpl, err := compileTemplate(templates, layout.SlideTemplate)
	if err != nil {
		return nil, NewContextError("failed to load slide template", err)
	}
	presTpl, err := compileTemplate(templates, layout.PresentationTemplate)
	if err != nil {
		return nil, NewContextError("failed to load presentation template", err)
	}

	distDir := opts.DistDir
	if distDir == "" {
		distDir = path.Join(path.Dir(gen.Path), layout.DistDir)
	}
	debug.DebugValue("[app] DistDir", distDir)

	return &Context{
		FS:                   fs,
		Layout:               layout,
		Generator:            gen,
		Config:               cfg,
		SlideTemplate:        slideTpl,
		PresentationTemplate: presTpl,
		DistDir:              filepath.ToSlash(distDir),
	}, nil
}

func compileTemplate(dir *tree.Dir, name string) (render.Template, error) {
	entry, err := dir.ResolveFile(name)
	if err != nil {
		return nil, err
	}
	return entry.Template()
}

func validateOptions(opts Options) error {
	if opts.GeneratorDir == "" {
		return fmt.Errorf("generator directory cannot be empty")
	}
	if opts.FS == nil {
		// The host filesystem is rooted at "/", so paths must be absolute.
		if !filepath.IsAbs(opts.GeneratorDir) {
			return fmt.Errorf("generator directory must be absolute: %s", opts.GeneratorDir)
		}
		if opts.DistDir != "" && !filepath.IsAbs(opts.DistDir) {
			return fmt.Errorf("distribution directory must be absolute: %s", opts.DistDir)
		}
	}
	return nil
}

// findConfig resolves the configuration file of dir. A missing file is
// reported as a config.ConfigError of type ConfigNotFound.
func findConfig(dir *tree.Dir, name string) (*tree.Entry, error) {
	entry, err := dir.ResolveFile(name)
	var nf *tree.NotFoundError
	if errors.As(err, &nf) {
		return nil, config.NewConfigNotFoundError(dir.Path, name, err)
	}
	return entry, err
}
