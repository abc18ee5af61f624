// Package theme renders a colors file into application configuration files.
package theme

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/nightowl/internal/colour"
)

// Format is a colour rendering variant, used as the variable name suffix.
type Format string

const (
	FormatHash     Format = "hash"      // #rrggbb
	FormatHex0x    Format = "0x"        // 0xrrggbb
	FormatRGBArray Format = "rgb_array" // [r, g, b]
	FormatRGBA10   Format = "rgba_1_0"  // rgba(r,g,b,opacity)
	FormatRGBA08   Format = "rgba_0_8"  // rgba(r,g,b,0.8)
	FormatRGBAee   Format = "rgba_ee"   // rgba(rrggbbee), Hyprland
	FormatRGBA88   Format = "rgba_88"   // rgba(rrggbb88), Hyprland
	FormatRGBA     Format = "rgba"      // rgba(r, g, b, opacity)
)

// Formats returns every format in generation order.
func Formats() []Format {
	return []Format{
		FormatHash, FormatHex0x, FormatRGBArray, FormatRGBA10,
		FormatRGBA08, FormatRGBAee, FormatRGBA88, FormatRGBA,
	}
}

// alphaVariant is an extra colour name that reuses a base colour with a
// fixed opacity.
type alphaVariant struct {
	name    string
	base    string
	opacity float64
}

var alphaVariants = []alphaVariant{
	{"base_dark_alpha", "base_dark", 0.8},
	{"base_dark_low_alpha", "base_dark", 0.53},
	{"base_middle_alpha", "base_middle", 0.93},
	{"base_light01_alpha", "base_light01", 0.93},

	// Older template names.
	{"base_dark01_alpha", "base_dark", 0.8},
	{"base_dark01_low_alpha", "base_dark", 0.53},
	{"base03_alpha", "base_dark", 0.8},
	{"base03_low_alpha", "base_dark", 0.53},
	{"base0_alpha", "base_middle", 0.93},
	{"base2_alpha", "base_light01", 0.93},
}

// FormatColour renders spec in the given format.
func FormatColour(spec colour.ColorSpec, format Format) (string, error) {
	rgb, err := colour.ParseHex(spec.Hex)
	if err != nil {
		return "", err
	}
	hex := strings.TrimPrefix(rgb.Hex(), "#")
	opacity := colour.FormatOpacity(spec.Opacity)

	switch format {
	case FormatHash:
		return "#" + hex, nil
	case FormatHex0x:
		return "0x" + hex, nil
	case FormatRGBArray:
		return fmt.Sprintf("[%d, %d, %d]", rgb.R, rgb.G, rgb.B), nil
	case FormatRGBA10:
		return fmt.Sprintf("rgba(%d,%d,%d,%s)", rgb.R, rgb.G, rgb.B, opacity), nil
	case FormatRGBA08:
		return fmt.Sprintf("rgba(%d,%d,%d,0.8)", rgb.R, rgb.G, rgb.B), nil
	case FormatRGBAee:
		return fmt.Sprintf("rgba(%see)", hex), nil
	case FormatRGBA88:
		return fmt.Sprintf("rgba(%s88)", hex), nil
	case FormatRGBA:
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", rgb.R, rgb.G, rgb.B, opacity), nil
	default:
		return "", fmt.Errorf("unknown colour format: %s", format)
	}
}

// Vars builds the template variables for a set of named colours: one
// "<name>_<format>" entry per colour and format, plus the fixed alpha
// variants whose base colour is present.
func Vars(colors map[string]colour.ColorSpec) (map[string]string, error) {
	vars := make(map[string]string, (len(colors)+len(alphaVariants))*len(Formats()))

	add := func(name string, spec colour.ColorSpec) error {
		for _, f := range Formats() {
			v, err := FormatColour(spec, f)
			if err != nil {
				return fmt.Errorf("colour %q: %w", name, err)
			}
			vars[name+"_"+string(f)] = v
		}
		return nil
	}

	for name, spec := range colors {
		if err := add(name, spec); err != nil {
			return nil, err
		}
	}
	for _, av := range alphaVariants {
		base, ok := colors[av.base]
		if !ok {
			continue
		}
		base.Opacity = av.opacity
		if err := add(av.name, base); err != nil {
			return nil, err
		}
	}
	return vars, nil
}
