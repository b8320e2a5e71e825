package extractor

import (
	"fmt"
	"math"
	"strconv"

	"github.com/kataras/figma-mcp/pkg/figma"
)

// colorToHex converts a Figma RGBA color (with 0-1 float values) to standard hexadecimal format (#RRGGBB).
// Returns "#000000" if the color is nil.
func colorToHex(color *figma.Color) string {
	if color == nil {
		return "#000000"
	}

	r := int(math.Round(color.R * 255))
	g := int(math.Round(color.G * 255))
	b := int(math.Round(color.B * 255))

	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// formatColor renders a color with an extra opacity multiplier: #RRGGBB when fully
// opaque, rgba(r, g, b, a) otherwise.
func formatColor(color *figma.Color, opacity float64) string {
	if color == nil {
		return colorToHex(nil)
	}

	alpha := color.A * opacity
	if alpha >= 1 {
		return colorToHex(color)
	}

	return fmt.Sprintf("rgba(%d, %d, %d, %s)",
		int(math.Round(color.R*255)),
		int(math.Round(color.G*255)),
		int(math.Round(color.B*255)),
		px(alpha, ""))
}

// px formats a number with a CSS unit suffix, without trailing zeros.
func px(v float64, unit string) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + unit
}

// cssShorthand collapses four side values to the shortest CSS shorthand.
func cssShorthand(top, right, bottom, left float64) string {
	if top == right && right == bottom && bottom == left {
		return px(top, "px")
	}
	if top == bottom && right == left {
		return px(top, "px") + " " + px(right, "px")
	}
	return px(top, "px") + " " + px(right, "px") + " " + px(bottom, "px") + " " + px(left, "px")
}
