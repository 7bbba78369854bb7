package config

// EnvPrefix is the prefix of environment variables overriding settings,
// e.g. DECKGEN_DIST_DIR.
const EnvPrefix = "DECKGEN"

// DefaultLayout returns the on-disk names used by the generator.
func DefaultLayout() Layout {
	return Layout{
		ConfigFile:           "config",
		TemplatesDir:         "templates",
		SlideTemplate:        "slide",
		PresentationTemplate: "presentation",
		ImagesDir:            "images",
		DistDir:              "dist",
	}
}

// DefaultSettings returns the default tool settings.
func DefaultSettings() Settings {
	return Settings{
		GeneratorDir: ".",
		DistDir:      "",
		Autoescape:   false,
		Debug:        false,
		NoColor:      false,
		Quiet:        false,
	}
}
