package loader

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MemFS is an in-memory FileSystem.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

type sample struct {
	Name      string   `toml:"name" yaml:"name"`
	Threshold float64  `toml:"threshold" yaml:"threshold"`
	Priority  []string `toml:"priority" yaml:"priority"`
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"settings.toml", FormatTOML},
		{"/a/b/Settings.TOML", FormatTOML},
		{"settings.yaml", FormatYAML},
		{"settings.yml", FormatYAML},
		{"settings.json", FormatUnknown},
		{"settings", FormatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatOf(tt.path))
		})
	}
}

func TestDecodeFile_TOML(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/settings.toml", `
name = "glyphs"
threshold = 0.75
priority = ["Keyboard", "GamePad"]
`)

	got := sample{Name: "default", Threshold: 0.5}
	err := NewDecoder(WithFS(memfs)).DecodeFile("/settings.toml", &got)
	require.NoError(t, err)

	assert.Equal(t, sample{Name: "glyphs", Threshold: 0.75, Priority: []string{"Keyboard", "GamePad"}}, got)
}

func TestDecodeFile_YAML(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/settings.yaml", "name: glyphs\npriority:\n  - Mouse\n")

	got := sample{Threshold: 0.5}
	err := NewDecoder(WithFS(memfs)).DecodeFile("/settings.yaml", &got)
	require.NoError(t, err)

	assert.Equal(t, "glyphs", got.Name)
	assert.Equal(t, 0.5, got.Threshold, "missing keys keep their prior value")
	assert.Equal(t, []string{"Mouse"}, got.Priority)
}

func TestDecodeFile_EmptyYAML(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/empty.yml", "")

	got := sample{Name: "kept"}
	require.NoError(t, NewDecoder(WithFS(memfs)).DecodeFile("/empty.yml", &got))
	assert.Equal(t, "kept", got.Name)
}

func TestDecodeFile_Missing(t *testing.T) {
	err := NewDecoder(WithFS(NewMemFS())).DecodeFile("/nope.toml", &sample{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestDecodeFile_UnsupportedFormat(t *testing.T) {
	err := NewDecoder(WithFS(NewMemFS())).DecodeFile("/settings.json", &sample{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecode_TOMLSyntaxError(t *testing.T) {
	data := []byte("name = \"ok\"\nthreshold = = 1\n")

	err := NewDecoder().Decode(FormatTOML, "bad.toml", data, &sample{})

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "bad.toml", pe.Path)
	assert.Equal(t, 2, pe.Line)
	assert.Contains(t, pe.Error(), "bad.toml")
	assert.NotNil(t, pe.Unwrap())
}

func TestDecode_YAMLSyntaxError(t *testing.T) {
	data := []byte("name: ok\npriority: [a, b\n")

	err := NewDecoder().Decode(FormatYAML, "bad.yaml", data, &sample{})

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "bad.yaml", pe.Path)
	assert.Greater(t, pe.Line, 0)
}

func TestDecode_Strict(t *testing.T) {
	tomlData := []byte("name = \"x\"\ntypo = 1\n")
	yamlData := []byte("name: x\ntypo: 1\n")

	assert.NoError(t, NewDecoder().Decode(FormatTOML, "a.toml", tomlData, &sample{}))
	assert.NoError(t, NewDecoder().Decode(FormatYAML, "a.yaml", yamlData, &sample{}))

	var pe *ParseError
	err := NewDecoder(WithStrict(true)).Decode(FormatTOML, "a.toml", tomlData, &sample{})
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Line)

	err = NewDecoder(WithStrict(true)).Decode(FormatYAML, "a.yaml", yamlData, &sample{})
	require.True(t, errors.As(err, &pe))
}

func TestParseError_Error(t *testing.T) {
	tests := []struct {
		err  ParseError
		want string
	}{
		{ParseError{Path: "a.toml", Line: 3, Column: 7, Message: "boom"}, "parse error in a.toml at line 3, column 7: boom"},
		{ParseError{Path: "a.toml", Line: 3, Message: "boom"}, "parse error in a.toml at line 3: boom"},
		{ParseError{Path: "a.toml", Message: "boom"}, "parse error in a.toml: boom"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}
