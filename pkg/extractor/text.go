package extractor

import (
	"github.com/kataras/figma-mcp/pkg/figma"
)

// TextExtractor writes the text and textStyle fields. Typography that comes from a
// published text style is registered under the style's name.
func TextExtractor(n *figma.Node, out *SimplifiedNode, ctx *Context) {
	if n.Type == "TEXT" && n.Characters != "" {
		out.Text = n.Characters
	}

	if n.Style == nil {
		return
	}

	style := buildTextStyle(n.Style)
	if name := ctx.Vars.StyleName(n, "text", "typography"); name != "" {
		out.TextStyle = ctx.Vars.RegisterNamed(name, style)
		return
	}
	out.TextStyle = ctx.Vars.Register("style", style)
}

func buildTextStyle(s *figma.TypeStyle) TextStyle {
	style := TextStyle{
		FontFamily:          s.FontFamily,
		FontWeight:          s.FontWeight,
		FontSize:            s.FontSize,
		TextCase:            s.TextCase,
		TextAlignHorizontal: s.TextAlignHorizontal,
		TextAlignVertical:   s.TextAlignVertical,
	}

	// Relative units survive font-size changes on the consuming side.
	if s.FontSize != 0 {
		if s.LineHeightPx != 0 {
			style.LineHeight = px(s.LineHeightPx/s.FontSize, "em")
		}
		if s.LetterSpacing != 0 {
			style.LetterSpacing = px(s.LetterSpacing/s.FontSize*100, "%")
		}
	}

	return style
}
