// Package tag extracts delimited placeholders from authored text.
//
// A tag is the text strictly between an open delimiter and the next close
// delimiter. Scanning runs left to right and tags never overlap or nest:
//
//	"Press [Player/Jump] or [UI/Submit]" -> "Player/Jump", "UI/Submit"
//	"[a[b]"                              -> "a[b"
//
// An open delimiter that has no close delimiter after it is ignored, as is
// everything after it. Tags found before the dangling delimiter are still
// returned, so a typo at the end of a sentence never hides earlier prompts.
package tag

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Delimiter errors
var (
	ErrSameDelimiters    = errors.New("open and close delimiters must differ")
	ErrInvalidDelimiters = errors.New("invalid delimiter")
)

// Delimiters holds the open and close characters of a tag.
type Delimiters struct {
	Open  rune
	Close rune
}

// DefaultDelimiters returns the square bracket pair.
func DefaultDelimiters() Delimiters {
	return Delimiters{Open: '[', Close: ']'}
}

// Validate checks that the delimiters are usable.
func (d Delimiters) Validate() error {
	if d.Open == 0 || d.Close == 0 || d.Open == utf8.RuneError || d.Close == utf8.RuneError {
		return fmt.Errorf("%w: %q %q", ErrInvalidDelimiters, d.Open, d.Close)
	}
	if d.Open == d.Close {
		return fmt.Errorf("%w: %q", ErrSameDelimiters, d.Open)
	}
	return nil
}

// Wrap returns name surrounded by the delimiters.
func (d Delimiters) Wrap(name string) string {
	return string(d.Open) + name + string(d.Close)
}

// Span is a tag found in a text.
type Span struct {
	// Name is the text between the delimiters.
	Name string

	// Start is the byte offset of the open delimiter.
	Start int

	// End is the byte offset just past the close delimiter.
	End int
}

// Scan returns every well-formed tag in text, in order.
func Scan(text string, d Delimiters) []Span {
	var spans []Span

	openLen := utf8.RuneLen(d.Open)
	closeLen := utf8.RuneLen(d.Close)
	if openLen < 0 || closeLen < 0 {
		return nil
	}

	pos := 0
	for pos < len(text) {
		rel := strings.IndexRune(text[pos:], d.Open)
		if rel < 0 {
			break
		}
		start := pos + rel
		nameStart := start + openLen

		end := strings.IndexRune(text[nameStart:], d.Close)
		if end < 0 {
			// Dangling open delimiter.
			break
		}
		nameEnd := nameStart + end

		spans = append(spans, Span{
			Name:  text[nameStart:nameEnd],
			Start: start,
			End:   nameEnd + closeLen,
		})
		pos = nameEnd + closeLen
	}

	return spans
}

// Names returns the tag names in text, in order. Repeated tags appear once per
// occurrence.
func Names(text string, d Delimiters) []string {
	spans := Scan(text, d)
	names := make([]string, 0, len(spans))
	for _, s := range spans {
		names = append(names, s.Name)
	}
	return names
}

// Replace rewrites every tag span using fn. fn is called once per distinct
// tag name so identical tags always receive identical replacements.
func Replace(text string, d Delimiters, fn func(name string) string) string {
	spans := Scan(text, d)
	if len(spans) == 0 {
		return text
	}

	cache := make(map[string]string, len(spans))
	var b strings.Builder
	b.Grow(len(text))

	last := 0
	for _, s := range spans {
		b.WriteString(text[last:s.Start])
		repl, ok := cache[s.Name]
		if !ok {
			repl = fn(s.Name)
			cache[s.Name] = repl
		}
		b.WriteString(repl)
		last = s.End
	}
	b.WriteString(text[last:])

	return b.String()
}
