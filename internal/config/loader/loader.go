// Package loader reads glyphprompt settings documents.
//
// The loader picks a decoder from the file extension (TOML or YAML), decodes
// into a caller-supplied value and reports syntax problems as *ParseError
// with a line and column when the decoder provides one. Environment
// overrides are collected by EnvLoader.
package loader

import (
	"os"
	"path/filepath"
	"strings"
)

// Format is a settings document format.
type Format int

const (
	// FormatUnknown is returned for unrecognized extensions.
	FormatUnknown Format = iota

	// FormatTOML is a TOML document.
	FormatTOML

	// FormatYAML is a YAML document.
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatOf returns the format implied by a file name.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// FileSystem reads settings and action files. A missing file must be
// reported with an error matching fs.ErrNotExist.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS reads from the operating system.
type OSFS struct{}

// ReadFile implements FileSystem.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}
