package config

import (
	"sort"
	"strconv"

	"github.com/dshills/glyphprompt/internal/config/loader"
	"github.com/dshills/glyphprompt/internal/prompt/device"
)

// ApplyOverrides sets the settings named by key in values. Keys are the
// settings document keys (for example "stick_threshold"). Unknown keys and
// unparsable values are reported together.
func (s *Settings) ApplyOverrides(values map[string]string) error {
	errs := &ValidationErrors{}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		val := values[key]
		switch key {
		case "platform":
			s.Platform = val
		case "open_tag":
			s.OpenTag = val
		case "close_tag":
			s.CloseTag = val
		case "formatter":
			s.Formatter = val
		case "rich_text":
			s.RichText = val
		case "priority":
			var (
				cats []device.Category
				bad  bool
			)
			for _, name := range loader.SplitList(val) {
				c, err := device.ParseCategory(name)
				if err != nil {
					errs.add(key, err.Error(), name)
					bad = true
					continue
				}
				cats = append(cats, c)
			}
			if !bad {
				s.Priority = cats
			}
		case "stick_detection":
			b, err := strconv.ParseBool(val)
			if err != nil {
				errs.add(key, "must be a boolean", val)
				continue
			}
			s.StickDetection = b
		case "stick_threshold":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				errs.add(key, "must be a number", val)
				continue
			}
			s.StickThreshold = f
		default:
			errs.add(key, "unknown setting", nil)
		}
	}

	return errs.orNil()
}
