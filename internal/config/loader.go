package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mitchellh/mapstructure"

	"github.com/tacogips/deckgen/internal/debug"
)

// DecodeRoot decodes and validates the generator root configuration from
// its parsed mapping. file is used in error messages.
func DecodeRoot(file string, data map[string]any) (*RootConfig, error) {
	var cfg RootConfig
	keys, err := decode(file, data, &cfg)
	if err != nil {
		return nil, err
	}
	if err := requireKeys(file, keys, "presentation.filename", "presentation.title", "content.dirname"); err != nil {
		return nil, err
	}
	if err := ValidateRoot(file, &cfg); err != nil {
		return nil, err
	}
	debug.DebugYAML("[config] Root configuration", cfg)
	return &cfg, nil
}

// DecodeContent decodes the content root configuration.
func DecodeContent(file string, data map[string]any) (*ContentConfig, error) {
	var cfg ContentConfig
	keys, err := decode(file, data, &cfg)
	if err != nil {
		return nil, err
	}
	if err := requireKeys(file, keys, "order"); err != nil {
		return nil, err
	}
	if err := ValidateContent(file, &cfg); err != nil {
		return nil, err
	}
	debug.DebugValue("[config] Slide group order", cfg.Order)
	return &cfg, nil
}

// decode maps data onto out and returns the dotted keys that were present.
func decode(file string, data map[string]any, out any) (map[string]bool, error) {
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		Metadata:         &md,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, file, "failed to create decoder", err)
	}
	if err := dec.Decode(data); err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, file, "invalid configuration structure", err)
	}
	if len(md.Unused) > 0 {
		sort.Strings(md.Unused)
		debug.Debug("[config] %s: ignoring unknown keys %v", file, md.Unused)
	}

	keys := make(map[string]bool, len(md.Keys))
	for _, k := range md.Keys {
		keys[k] = true
	}
	return keys, nil
}

func requireKeys(file string, present map[string]bool, keys ...string) error {
	for _, k := range keys {
		if !present[k] {
			return NewConfigErrorWithField(ConfigValidationFailed, file, k, fmt.Sprintf("%s is required", k))
		}
	}
	return nil
}

// ExpandPath expands ~ to home directory and evaluates relative paths.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		if path[1] == filepath.Separator {
			path = filepath.Join(homeDir, path[2:])
		}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	// Canonicalize so that the parent of a symlinked generator directory is
	// the parent of its real location.
	if real, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = real
	}
	return absPath, nil
}
