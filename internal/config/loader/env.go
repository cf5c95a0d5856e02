package loader

import (
	"os"
	"sort"
	"strings"
)

// DefaultEnvPrefix is the prefix of glyphprompt environment variables.
const DefaultEnvPrefix = "GLYPHPROMPT_"

// EnvLoader collects setting overrides from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "GLYPHPROMPT_")
	mapping map[string]string // Env var -> setting key
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates a loader with the default mappings.
// The prefix should include the trailing underscore (e.g., "GLYPHPROMPT_").
func NewEnvLoader(prefix string) *EnvLoader {
	return NewEnvLoaderWithMapping(prefix, defaultEnvMapping(prefix))
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable mappings.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
		lookup:  os.LookupEnv,
	}
}

// defaultEnvMapping returns the default environment variable mappings.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "PLATFORM":        "platform",
		prefix + "OPEN_TAG":        "open_tag",
		prefix + "CLOSE_TAG":       "close_tag",
		prefix + "PRIORITY":        "priority",
		prefix + "FORMATTER":       "formatter",
		prefix + "RICH_TEXT":       "rich_text",
		prefix + "STICK_DETECTION": "stick_detection",
		prefix + "STICK_THRESHOLD": "stick_threshold",
	}
}

// Load returns the overrides that are set, keyed by setting key.
// Note: Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() map[string]string {
	out := make(map[string]string)
	for env, key := range l.mapping {
		if val, ok := l.lookup(env); ok {
			out[key] = val
		}
	}
	return out
}

// Variables returns the mapped environment variable names, sorted.
func (l *EnvLoader) Variables() []string {
	vars := make([]string, 0, len(l.mapping))
	for env := range l.mapping {
		vars = append(vars, env)
	}
	sort.Strings(vars)
	return vars
}

// SplitList splits a comma separated override value, dropping blanks.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
