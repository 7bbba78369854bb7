package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tacogips/deckgen/internal/config"
)

// Common flag names and descriptions
const (
	// Flag names
	FlagDist       = "dist"
	FlagAutoescape = "autoescape"
	FlagTable      = "table"
	FlagNoColor    = "no-color"
	FlagQuiet      = "quiet"
	FlagDebug      = "debug"

	// Flag descriptions
	DescDist       = "Distribution directory (default: <generator-dir>/../dist)"
	DescAutoescape = "HTML-escape template variables"
	DescTable      = "Print slides as a table"
	DescNoColor    = "Disable colored output"
	DescQuiet      = "Suppress non-error output"
	DescDebug      = "Enable debug logging"
)

// Setting keys, matching the mapstructure tags of config.Settings.
// Each key can be overridden by DECKGEN_<KEY>.
const (
	KeyGeneratorDir = "generator_dir"
	KeyDistDir      = "dist_dir"
	KeyAutoescape   = "autoescape"
	KeyNoColor      = "no_color"
	KeyQuiet        = "quiet"
	KeyDebug        = "debug"
)

// resolveDirs turns the generator and distribution settings into the
// absolute paths the host filesystem requires.
func resolveDirs(s config.Settings) (generatorDir, distDir string, err error) {
	if strings.TrimSpace(s.GeneratorDir) == "" {
		return "", "", fmt.Errorf("generator directory cannot be empty")
	}
	generatorDir, err = config.ExpandPath(s.GeneratorDir)
	if err != nil {
		return "", "", fmt.Errorf("invalid generator directory %s: %w", s.GeneratorDir, err)
	}

	if s.DistDir == "" {
		return generatorDir, "", nil
	}
	distDir, err = config.ExpandPath(s.DistDir)
	if err != nil {
		return "", "", fmt.Errorf("invalid distribution directory %s: %w", s.DistDir, err)
	}
	if filepath.Clean(distDir) == filepath.Clean(generatorDir) {
		return "", "", fmt.Errorf("distribution directory must differ from the generator directory: %s", distDir)
	}
	return generatorDir, distDir, nil
}
