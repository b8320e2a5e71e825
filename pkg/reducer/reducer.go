// Package reducer trims a simplified design further for constrained consumers.
package reducer

import (
	"math"

	"github.com/kataras/figma-mcp/pkg/extractor"
)

// Precision is the number of fractional digits kept in globalVars numbers.
const Precision = 2

// AndroidFields lists the node fields ForAndroid keeps. Every other field is dropped.
var AndroidFields = []string{
	"id", "name", "type", "layout", "text", "textStyle", "fills", "strokes",
	"strokeWeight", "effects", "opacity", "borderRadius", "componentId",
	"componentProperties", "children",
}

// ForAndroid returns a copy of design with every node reduced to AndroidFields and
// every number in globalVars rounded to Precision digits. The input is not modified.
//
// Optional fields holding a zero value (0 opacity, "" strings, empty slices) are
// treated as absent and dropped.
func ForAndroid(design *extractor.SimplifiedDesign) *extractor.SimplifiedDesign {
	out := &extractor.SimplifiedDesign{
		Name:          design.Name,
		Nodes:         make([]*extractor.SimplifiedNode, 0, len(design.Nodes)),
		Components:    make(map[string]*extractor.SimplifiedComponent, len(design.Components)),
		ComponentSets: make(map[string]*extractor.SimplifiedComponentSet, len(design.ComponentSets)),
	}

	for id, c := range design.Components {
		cp := *c
		out.Components[id] = &cp
	}
	for id, s := range design.ComponentSets {
		cp := *s
		out.ComponentSets[id] = &cp
	}

	for _, n := range design.Nodes {
		out.Nodes = append(out.Nodes, reduceNode(n))
	}

	styles := make(map[string]any, len(design.GlobalVars.Styles))
	for id, v := range design.GlobalVars.Styles {
		styles[id] = RoundNumbers(v, Precision)
	}
	out.GlobalVars = extractor.GlobalVars{Styles: styles}

	return out
}

type pair struct {
	src, dst *extractor.SimplifiedNode
}

func reduceNode(root *extractor.SimplifiedNode) *extractor.SimplifiedNode {
	reduced := keepAllowed(root)

	queue := []pair{{root, reduced}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		if len(p.src.Children) == 0 {
			continue
		}
		p.dst.Children = make([]*extractor.SimplifiedNode, len(p.src.Children))
		for i, child := range p.src.Children {
			p.dst.Children[i] = keepAllowed(child)
			queue = append(queue, pair{child, p.dst.Children[i]})
		}
	}

	return reduced
}

// keepAllowed copies the allow-listed fields of n, except children.
func keepAllowed(n *extractor.SimplifiedNode) *extractor.SimplifiedNode {
	out := &extractor.SimplifiedNode{
		ID:           n.ID,
		Name:         n.Name,
		Type:         n.Type,
		Layout:       n.Layout,
		Text:         n.Text,
		TextStyle:    n.TextStyle,
		Fills:        n.Fills,
		Strokes:      n.Strokes,
		StrokeWeight: n.StrokeWeight,
		Effects:      n.Effects,
		BorderRadius: n.BorderRadius,
		ComponentID:  n.ComponentID,
	}

	if n.Opacity != nil && *n.Opacity != 0 {
		opacity := *n.Opacity
		out.Opacity = &opacity
	}
	if len(n.ComponentProperties) > 0 {
		out.ComponentProperties = append([]extractor.ComponentProperty(nil), n.ComponentProperties...)
	}

	return out
}

// RoundNumbers returns a copy of v with every number rounded to precision fractional
// digits, half away from zero. Maps and slices are walked recursively; other values are
// returned as they are.
func RoundNumbers(v any, precision int) any {
	factor := math.Pow(10, float64(precision))

	switch value := v.(type) {
	case float64:
		return round(value, factor)
	case float32:
		return float32(round(float64(value), factor))
	case map[string]any:
		out := make(map[string]any, len(value))
		for k, item := range value {
			out[k] = RoundNumbers(item, precision)
		}
		return out
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = RoundNumbers(item, precision)
		}
		return out
	default:
		return v
	}
}

func round(v, factor float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r := math.Round(v*factor) / factor
	if r == 0 {
		// Drop the sign of negative zero so it encodes as 0.
		return 0
	}
	return r
}
