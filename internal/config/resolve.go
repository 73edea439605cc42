package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/san-kum/qwave/internal/quantum"
)

// Sources are the layers a run configuration is assembled from. Resolve
// applies them over DefaultConfig in field order, so later layers win.
type Sources struct {
	// ConfigFile is an optional YAML RunConfig.
	ConfigFile string
	// ParamsFile is read when it exists, unless ConfigFile is set. With
	// ParamsRequired it must exist and replaces the params of ConfigFile.
	ParamsFile     string
	ParamsRequired bool
	// Potential overrides the kind; Preset then picks a named record of it.
	Potential string
	Preset    string
	// Overrides are applied last, typically one per explicitly set flag.
	Overrides []func(*RunConfig)
}

// Resolve builds and validates the run configuration described by src.
func Resolve(src Sources) (*RunConfig, error) {
	cfg := DefaultConfig()
	if src.ConfigFile != "" {
		loaded, err := Load(src.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if src.ParamsFile != "" && (src.ConfigFile == "" || src.ParamsRequired) {
		p, err := LoadParameters(src.ParamsFile)
		switch {
		case err == nil:
			cfg.Params = p
		case errors.Is(err, fs.ErrNotExist) && !src.ParamsRequired:
		default:
			return nil, fmt.Errorf("failed to load parameters: %w", err)
		}
	}

	kind := cfg.Params.Kind()
	if src.Potential != "" {
		kind = strings.ToLower(src.Potential)
		cfg.Params.Potential = kind
	}
	if src.Preset != "" {
		p := GetPreset(kind, src.Preset)
		if p == nil {
			return nil, fmt.Errorf("%w: unknown preset %q (available: %v)", quantum.ErrInvalidParameter, src.Preset, ListPresets(kind))
		}
		cfg.Params = *p
	}

	for _, o := range src.Overrides {
		o(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
