// Package colour turns sampled pixels into a role-labelled theme palette.
package colour

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// RGB represents a color in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB color as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// RGBA implements color.Color with full opacity.
func (rgb RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}.RGBA()
}

// ParseHex parses "#rrggbb" or "rrggbb" (any case).
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("invalid hex colour %q: expected 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// ColorSpec is the persisted form of one palette colour.
type ColorSpec struct {
	Hex         string  `json:"hex"`
	Opacity     float64 `json:"opacity"`
	Description string  `json:"description"`
}

// MarshalJSON writes opacity with a decimal point, so 1 is persisted as 1.0.
func (c ColorSpec) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Hex         string      `json:"hex"`
		Opacity     json.Number `json:"opacity"`
		Description string      `json:"description"`
	}{c.Hex, json.Number(FormatOpacity(c.Opacity)), c.Description})
}

// FormatOpacity always keeps a decimal point, so 1 renders as "1.0".
func FormatOpacity(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Entry is one role of a finished palette.
type Entry struct {
	Role        Role
	Colour      RGB
	Opacity     float64
	Description string
	Synthesized bool
}

// Hex returns the entry colour as "#rrggbb".
func (e Entry) Hex() string {
	return e.Colour.Hex()
}

// Spec returns the persisted form of the entry.
func (e Entry) Spec() ColorSpec {
	return ColorSpec{Hex: e.Hex(), Opacity: e.Opacity, Description: e.Description}
}

// Palette is the immutable role to colour mapping produced by one run.
type Palette struct {
	entries     [roleCount]Entry
	readability Readability
}

// NewPalette converts a mapper assignment into a palette. Every role must be
// filled.
func NewPalette(a Assignment) (*Palette, error) {
	var missing []Role
	p := &Palette{readability: a.Readability}
	for _, r := range AllRoles() {
		c, ok := a.Colour(r)
		if !ok {
			missing = append(missing, r)
			continue
		}
		p.entries[r] = Entry{
			Role:        r,
			Colour:      c,
			Opacity:     r.Opacity(),
			Description: r.Description(),
			Synthesized: a.Synthesized(r),
		}
	}
	if len(missing) > 0 {
		return nil, &IncompletePaletteError{Missing: missing}
	}
	return p, nil
}

// Get returns the entry for a role.
func (p *Palette) Get(r Role) (Entry, bool) {
	if !r.Valid() {
		return Entry{}, false
	}
	return p.entries[r], true
}

// Entries returns all entries in role order.
func (p *Palette) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries[:])
	return out
}

// Accents returns the accent entries in order.
func (p *Palette) Accents() []Entry {
	return lo.Filter(p.entries[:], func(e Entry, _ int) bool { return e.Role.IsAccent() })
}

// Readability reports the background-dark / background-mid contrast check.
func (p *Palette) Readability() Readability {
	return p.readability
}

// Specs returns the persisted form keyed by role key.
func (p *Palette) Specs() map[string]ColorSpec {
	specs := make(map[string]ColorSpec, len(p.entries))
	for _, e := range p.entries {
		specs[e.Role.Key()] = e.Spec()
	}
	return specs
}

// MarshalJSON writes the colours object with keys in role order.
func (p *Palette) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range p.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Role.Key())
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Spec())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	var b strings.Builder
	for _, e := range p.entries {
		fmt.Fprintf(&b, "  %-15s %-8s - %s\n", e.Role.Key(), e.Hex(), e.Description)
	}
	return b.String()
}

// Metadata describes how a colors file was produced.
type Metadata struct {
	SourceImage        string `json:"source_image"`
	SourceType         string `json:"source_type"`
	WallpaperPath      string `json:"wallpaper_path"`
	ExtractionMethod   string `json:"extraction_method"`
	Clusters           int    `json:"clusters"`
	Seed               int64  `json:"seed"`
	ReadabilityWarning bool   `json:"readability_warning"`
	GeneratedBy        string `json:"generated_by"`
}

// ColorsFile is the canonical persisted palette document.
type ColorsFile struct {
	Colors   *Palette `json:"colors"`
	Metadata Metadata `json:"_metadata"`
}

// ToJSON renders the colors file with two-space indentation.
func (f ColorsFile) ToJSON() ([]byte, error) {
	if f.Colors == nil {
		return nil, fmt.Errorf("colors file has no palette")
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal colors file: %w", err)
	}
	return append(data, '\n'), nil
}
