package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/dshills/glyphprompt/internal/config/loader"
	"github.com/dshills/glyphprompt/internal/prompt/binding"
)

// Bundle is a loaded, validated settings document.
type Bundle struct {
	// Path is the settings file, empty for bundles built in memory.
	Path string

	Settings Settings

	// ActionMaps holds the inline action maps followed by the maps of every
	// input_actions file, in listing order.
	ActionMaps []binding.ActionMap

	// Files lists the files the bundle was read from.
	Files []string
}

// NewBundle builds a bundle from in-memory settings.
func NewBundle(s Settings) *Bundle {
	return &Bundle{
		Settings:   s,
		ActionMaps: append([]binding.ActionMap(nil), s.ActionMaps...),
	}
}

type loadOptions struct {
	fs     loader.FileSystem
	env    *loader.EnvLoader
	strict bool
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

// WithFS reads files through fsys.
func WithFS(fsys loader.FileSystem) LoadOption {
	return func(o *loadOptions) {
		if fsys != nil {
			o.fs = fsys
		}
	}
}

// WithEnv applies environment overrides collected by env.
func WithEnv(env *loader.EnvLoader) LoadOption {
	return func(o *loadOptions) {
		o.env = env
	}
}

// WithStrict rejects unknown keys in the settings file.
func WithStrict(strict bool) LoadOption {
	return func(o *loadOptions) {
		o.strict = strict
	}
}

// Load reads the settings file at path over the defaults, applies overrides,
// loads the listed .inputactions files and validates the result.
//
// A missing settings file yields ErrConfigurationMissing.
func Load(path string, opts ...LoadOption) (*Bundle, error) {
	o := loadOptions{fs: loader.DefaultFS()}
	for _, opt := range opts {
		opt(&o)
	}

	if path == "" {
		return nil, ErrConfigurationMissing
	}

	settings := Default()
	dec := loader.NewDecoder(loader.WithFS(o.fs), loader.WithStrict(o.strict))
	if err := dec.DecodeFile(path, &settings); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigurationMissing, path)
		}
		return nil, err
	}

	if o.env != nil {
		if err := settings.ApplyOverrides(o.env.Load()); err != nil {
			return nil, fmt.Errorf("environment overrides: %w", err)
		}
	}

	bundle := NewBundle(settings)
	bundle.Path = path
	bundle.Files = []string{path}

	base := filepath.Dir(path)
	for _, name := range settings.InputActions {
		file := name
		if !filepath.IsAbs(file) {
			file = filepath.Join(base, file)
		}

		data, err := o.fs.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading input actions %s: %w", file, err)
		}
		maps, err := binding.ParseInputActions(data)
		if err != nil {
			return nil, fmt.Errorf("input actions %s: %w", file, err)
		}
		bundle.ActionMaps = append(bundle.ActionMaps, maps...)
		bundle.Files = append(bundle.Files, file)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings %s: %w", path, err)
	}
	return bundle, nil
}
