package config

import (
	"sync"
)

// Provider supplies settings bundles to the engine.
type Provider interface {
	// Load returns the current bundle. It returns an error wrapping
	// ErrConfigurationMissing when there are no settings.
	Load() (*Bundle, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func() (*Bundle, error)

// Load calls f.
func (f ProviderFunc) Load() (*Bundle, error) {
	return f()
}

// FileProvider loads a settings file on every call.
type FileProvider struct {
	path string
	opts []LoadOption
}

// NewFileProvider creates a provider for the settings file at path.
func NewFileProvider(path string, opts ...LoadOption) *FileProvider {
	return &FileProvider{path: path, opts: opts}
}

// Path returns the settings file path.
func (p *FileProvider) Path() string {
	return p.path
}

// Load reads and validates the settings file.
func (p *FileProvider) Load() (*Bundle, error) {
	return Load(p.path, p.opts...)
}

// StaticProvider hands out in-memory settings.
type StaticProvider struct {
	mu       sync.RWMutex
	settings *Settings
}

// NewStaticProvider creates a provider holding s.
func NewStaticProvider(s Settings) *StaticProvider {
	return &StaticProvider{settings: &s}
}

// Set replaces the held settings. A nil value makes Load report missing
// settings.
func (p *StaticProvider) Set(s *Settings) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if s == nil {
		p.settings = nil
		return
	}
	cp := *s
	p.settings = &cp
}

// Load validates and returns the held settings.
func (p *StaticProvider) Load() (*Bundle, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.settings == nil {
		return nil, ErrConfigurationMissing
	}
	if err := p.settings.Validate(); err != nil {
		return nil, err
	}
	return NewBundle(*p.settings), nil
}

// Ensure implementations satisfy Provider.
var (
	_ Provider = (*FileProvider)(nil)
	_ Provider = (*StaticProvider)(nil)
	_ Provider = ProviderFunc(nil)
)
