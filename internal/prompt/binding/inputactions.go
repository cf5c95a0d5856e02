package binding

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// ParseInputActions reads action maps from an input actions asset:
//
//	{
//	  "maps": [
//	    {
//	      "name": "Player",
//	      "bindings": [
//	        {"action": "Jump", "path": "<Gamepad>/buttonSouth",
//	         "isComposite": false, "isPartOfComposite": false}
//	      ]
//	    }
//	  ]
//	}
//
// Unknown fields are ignored. Bindings without an action are skipped.
func ParseInputActions(data []byte) ([]ActionMap, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}

	mapsResult := gjson.GetBytes(data, "maps")
	if !mapsResult.IsArray() {
		return nil, ErrNoMaps
	}

	var maps []ActionMap
	mapsResult.ForEach(func(_, m gjson.Result) bool {
		am := ActionMap{
			Name:     m.Get("name").String(),
			Bindings: make([]Binding, 0),
		}
		m.Get("bindings").ForEach(func(_, b gjson.Result) bool {
			action := b.Get("action").String()
			if action == "" {
				return true
			}
			am.Bindings = append(am.Bindings, Binding{
				Action:            action,
				Path:              b.Get("path").String(),
				IsComposite:       b.Get("isComposite").Bool(),
				IsPartOfComposite: b.Get("isPartOfComposite").Bool(),
			})
			return true
		})
		maps = append(maps, am)
		return true
	})

	return maps, nil
}

// LoadInputActionsFile reads action maps from an input actions file.
func LoadInputActionsFile(path string) ([]ActionMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input actions %s: %w", path, err)
	}
	maps, err := ParseInputActions(data)
	if err != nil {
		return nil, fmt.Errorf("parsing input actions %s: %w", path, err)
	}
	return maps, nil
}
