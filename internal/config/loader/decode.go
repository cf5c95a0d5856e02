package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files that are neither TOML nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported settings format")

// Decoder decodes settings documents.
type Decoder struct {
	fs     FileSystem
	strict bool
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithFS sets the file system used by DecodeFile.
func WithFS(fsys FileSystem) DecoderOption {
	return func(d *Decoder) {
		if fsys != nil {
			d.fs = fsys
		}
	}
}

// WithStrict rejects keys that do not map to a field of the target.
func WithStrict(strict bool) DecoderOption {
	return func(d *Decoder) {
		d.strict = strict
	}
}

// NewDecoder creates a decoder reading from the OS file system.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{fs: DefaultFS()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DecodeFile reads path and decodes it into v. The error wraps fs.ErrNotExist
// when the file is missing.
func (d *Decoder) DecodeFile(path string, v any) error {
	format := FormatOf(path)
	if format == FormatUnknown {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	data, err := d.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading settings file %s: %w", path, err)
	}
	return d.Decode(format, path, data, v)
}

// Decode decodes data in the given format into v. source names the data in
// errors.
func (d *Decoder) Decode(format Format, source string, data []byte, v any) error {
	switch format {
	case FormatTOML:
		return d.decodeTOML(source, data, v)
	case FormatYAML:
		return d.decodeYAML(source, data, v)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, source)
	}
}

func (d *Decoder) decodeTOML(source string, data []byte, v any) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	if d.strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(v); err != nil {
		return tomlParseError(source, err)
	}
	return nil
}

func (d *Decoder) decodeYAML(source string, data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(d.strict)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty document.
			return nil
		}
		return yamlParseError(source, err)
	}
	return nil
}

func tomlParseError(source string, err error) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		pe.Line, pe.Column = derr.Position()
		return pe
	}

	var serr *toml.StrictMissingError
	if errors.As(err, &serr) && len(serr.Errors) > 0 {
		pe.Line, pe.Column = serr.Errors[0].Position()
		pe.Message = serr.Errors[0].Error()
	}
	return pe
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

func yamlParseError(source string, err error) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}
	if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
		pe.Line, _ = strconv.Atoi(m[1])
	}
	return pe
}

// ParseError represents an error while parsing a settings file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
