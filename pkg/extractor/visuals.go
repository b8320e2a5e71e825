package extractor

import (
	"strings"

	"github.com/kataras/figma-mcp/pkg/figma"
)

// VisualsExtractor writes fills, strokes, strokeWeight, effects, opacity and borderRadius.
func VisualsExtractor(n *figma.Node, out *SimplifiedNode, ctx *Context) {
	if fills := buildFills(n.Fills); len(fills) > 0 {
		if name := ctx.Vars.StyleName(n, "fill", "fills"); name != "" {
			out.Fills = ctx.Vars.RegisterNamed(name, fills)
		} else {
			out.Fills = ctx.Vars.Register("fill", fills)
		}
	}

	if strokes := buildStrokes(n); len(strokes.Colors) > 0 {
		if name := ctx.Vars.StyleName(n, "stroke", "strokes"); name != "" {
			out.Strokes = ctx.Vars.RegisterNamed(name, strokes)
		} else {
			out.Strokes = ctx.Vars.Register("stroke", strokes)
		}
		out.StrokeWeight = strokeWeight(n)
	}

	if effects := buildEffects(n); effects != (Effects{}) {
		if name := ctx.Vars.StyleName(n, "effect", "effects"); name != "" {
			out.Effects = ctx.Vars.RegisterNamed(name, effects)
		} else {
			out.Effects = ctx.Vars.Register("effect", effects)
		}
	}

	if n.Opacity != nil && *n.Opacity != 1 {
		opacity := *n.Opacity
		out.Opacity = &opacity
	}

	switch {
	case len(n.RectangleCornerRadii) == 4:
		r := n.RectangleCornerRadii
		out.BorderRadius = cssShorthand(r[0], r[1], r[2], r[3])
	case n.CornerRadius != 0:
		out.BorderRadius = px(n.CornerRadius, "px")
	}
}

// buildFills converts visible paints, topmost first (Figma lists them bottom-up).
func buildFills(paints []figma.Paint) []any {
	var fills []any
	for i := len(paints) - 1; i >= 0; i-- {
		if !paints[i].IsVisible() {
			continue
		}
		fills = append(fills, simplifyPaint(&paints[i]))
	}
	return fills
}

func buildStrokes(n *figma.Node) Strokes {
	var strokes Strokes
	for i := range n.Strokes {
		if !n.Strokes[i].IsVisible() {
			continue
		}
		strokes.Colors = append(strokes.Colors, simplifyPaint(&n.Strokes[i]))
	}
	if len(n.StrokeDashes) > 0 {
		strokes.StrokeDashes = n.StrokeDashes
	}
	return strokes
}

func strokeWeight(n *figma.Node) string {
	if w := n.IndividualStrokeWeights; w != nil {
		return cssShorthand(w.Top, w.Right, w.Bottom, w.Left)
	}
	if n.StrokeWeight != nil {
		return px(*n.StrokeWeight, "px")
	}
	return ""
}

// simplifyPaint returns a color string for solid paints and a struct for images and gradients.
func simplifyPaint(p *figma.Paint) any {
	opacity := 1.0
	if p.Opacity != nil {
		opacity = *p.Opacity
	}

	switch {
	case p.Type == "SOLID":
		return formatColor(p.Color, opacity)
	case p.Type == "IMAGE":
		return ImageFill{Type: p.Type, ImageRef: p.ImageRef, ScaleMode: p.ScaleMode}
	case strings.HasPrefix(p.Type, "GRADIENT_"):
		g := GradientFill{Type: p.Type}
		for _, h := range p.GradientHandlePositions {
			g.GradientHandlePositions = append(g.GradientHandlePositions, Location{X: h.X, Y: h.Y})
		}
		for _, stop := range p.GradientStops {
			color := stop.Color
			g.GradientStops = append(g.GradientStops, GradientStop{Position: stop.Position, Color: formatColor(&color, opacity)})
		}
		return g
	default:
		return map[string]string{"type": p.Type}
	}
}

func buildEffects(n *figma.Node) Effects {
	var shadows, blurs, backdrops []string
	var inner []string

	for i := range n.Effects {
		e := &n.Effects[i]
		if !e.IsVisible() {
			continue
		}
		switch e.Type {
		case "DROP_SHADOW":
			shadows = append(shadows, shadow(e))
		case "INNER_SHADOW":
			inner = append(inner, "inset "+shadow(e))
		case "LAYER_BLUR":
			blurs = append(blurs, "blur("+px(e.Radius, "px")+")")
		case "BACKGROUND_BLUR":
			backdrops = append(backdrops, "blur("+px(e.Radius, "px")+")")
		}
	}

	var effects Effects
	if boxShadow := strings.Join(append(shadows, inner...), ", "); boxShadow != "" {
		if n.Type == "TEXT" {
			effects.TextShadow = boxShadow
		} else {
			effects.BoxShadow = boxShadow
		}
	}
	effects.Filter = strings.Join(blurs, " ")
	effects.BackdropFilter = strings.Join(backdrops, " ")
	return effects
}

func shadow(e *figma.Effect) string {
	var x, y float64
	if e.Offset != nil {
		x, y = e.Offset.X, e.Offset.Y
	}
	return px(x, "px") + " " + px(y, "px") + " " + px(e.Radius, "px") + " " + px(e.Spread, "px") + " " + formatColor(e.Color, 1)
}
