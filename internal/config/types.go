package config

// RootConfig is the generator root configuration (config.* next to templates/).
type RootConfig struct {
	// Presentation describes the output document.
	Presentation PresentationConfig `mapstructure:"presentation" yaml:"presentation"`
	// Content locates the content root.
	Content ContentDirConfig `mapstructure:"content" yaml:"content"`
}

// PresentationConfig describes the rendered presentation.
type PresentationConfig struct {
	// Filename is the output file name inside the distribution directory.
	Filename string `mapstructure:"filename" yaml:"filename"`
	// Title is passed to the presentation template.
	Title string `mapstructure:"title" yaml:"title"`
}

// ContentDirConfig names the content root directory.
type ContentDirConfig struct {
	// Dirname is looked up in the generator directory, then in its parent.
	Dirname string `mapstructure:"dirname" yaml:"dirname"`
}

// ContentConfig is the content root configuration.
type ContentConfig struct {
	// Order lists slide-group directory names in presentation order.
	Order []string `mapstructure:"order" yaml:"order"`
}

// Layout holds the fixed names the generator looks up on disk.
// Every name is resolved by prefix, so "config" matches config.yaml or config.json.
type Layout struct {
	// ConfigFile is the configuration file name in every directory.
	ConfigFile string
	// TemplatesDir is the template directory inside the generator directory.
	TemplatesDir string
	// SlideTemplate is the per-slide template inside TemplatesDir.
	SlideTemplate string
	// PresentationTemplate is the outer template inside TemplatesDir.
	PresentationTemplate string
	// ImagesDir is the image pool in the content root and the image output in the distribution directory.
	ImagesDir string
	// DistDir is the distribution directory created next to the generator directory.
	DistDir string
}

// Settings are the tool settings resolved from flags and environment.
type Settings struct {
	// GeneratorDir is the directory holding config.* and templates/.
	GeneratorDir string `mapstructure:"generator_dir"`
	// DistDir overrides the distribution directory (default <generator>/../dist).
	DistDir string `mapstructure:"dist_dir"`
	// Autoescape enables HTML escaping of template variables.
	Autoescape bool `mapstructure:"autoescape"`
	// Debug enables debug logging.
	Debug bool `mapstructure:"debug"`
	// NoColor disables colored output.
	NoColor bool `mapstructure:"no_color"`
	// Quiet suppresses non-error output.
	Quiet bool `mapstructure:"quiet"`
}
