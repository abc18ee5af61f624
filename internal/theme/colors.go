package theme

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"

	"github.com/jmylchreest/nightowl/internal/colour"
)

// DefaultColorsFile is the colors file name used when none is given.
const DefaultColorsFile = "colors.json"

// LoadColors reads the "colors" object of a colors file. Names are not
// limited to palette roles, and a missing opacity means 1.0.
func LoadColors(fs afero.Fs, path string) (map[string]colour.ColorSpec, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read colors file: %w", err)
	}

	var doc struct {
		Colors map[string]struct {
			Hex         string   `json:"hex"`
			Opacity     *float64 `json:"opacity"`
			Description string   `json:"description"`
		} `json:"colors"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse colors file %s: %w", path, err)
	}
	if len(doc.Colors) == 0 {
		return nil, fmt.Errorf("colors file %s has no colors", path)
	}

	colors := make(map[string]colour.ColorSpec, len(doc.Colors))
	for name, c := range doc.Colors {
		if _, err := colour.ParseHex(c.Hex); err != nil {
			return nil, fmt.Errorf("colour %q: %w", name, err)
		}
		spec := colour.ColorSpec{Hex: c.Hex, Opacity: 1.0, Description: c.Description}
		if c.Opacity != nil {
			spec.Opacity = *c.Opacity
		}
		colors[name] = spec
	}
	return colors, nil
}
