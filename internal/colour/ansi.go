package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// ColourPreview returns an ANSI-coloured preview string for a colour.
// Width specifies how many characters wide the colour block should be.
// Uses background colour with spaces for a solid block.
func ColourPreview(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	bgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	return bgColour + strings.Repeat(" ", width) + ansiReset
}

// FormatEntry formats one palette entry as a summary line, optionally
// prefixed by a colour block.
func FormatEntry(e Entry, preview bool) string {
	line := fmt.Sprintf("%-15s %-8s - %s", e.Role.Key(), e.Hex(), e.Description)
	if preview {
		return ColourPreview(e.Colour, 4) + " " + line
	}
	return line
}
