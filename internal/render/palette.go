package render

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"
)

// ParseColor reads "#rrggbb" or "#rrggbbaa". Alpha defaults to opaque.
func ParseColor(s string) (color.RGBA, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(raw) != 6 && len(raw) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	col := color.RGBA{R: b[0], G: b[1], B: b[2], A: 0xff}
	if len(b) == 4 {
		col.A = b[3]
	}
	return col, nil
}

// ParsePalette parses every entry with ParseColor.
func ParsePalette(entries []string) ([]color.RGBA, error) {
	out := make([]color.RGBA, len(entries))
	for i, e := range entries {
		col, err := ParseColor(e)
		if err != nil {
			return nil, fmt.Errorf("palette[%d]: %w", i, err)
		}
		out[i] = col
	}
	return out, nil
}

// FormatColor renders col as "#rrggbb", adding alpha only when not opaque.
func FormatColor(col color.RGBA) string {
	if col.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", col.R, col.G, col.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", col.R, col.G, col.B, col.A)
}
