package extractor

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/kataras/figma-mcp/pkg/figma"
)

// frameTypes are the node types that carry auto-layout properties.
var frameTypes = mapset.NewSet("FRAME", "COMPONENT", "COMPONENT_SET", "INSTANCE", "SECTION")

// LayoutExtractor describes how a node lays out its children and how it sits in its parent.
// It writes the layout field.
func LayoutExtractor(n *figma.Node, out *SimplifiedNode, ctx *Context) {
	layout := buildLayout(n, ctx.Parent)
	if layout.bare() {
		return
	}
	out.Layout = ctx.Vars.Register("layout", layout)
}

// bare reports whether the layout says nothing beyond its mode.
func (l Layout) bare() bool {
	return l.JustifyContent == "" && l.AlignItems == "" && l.AlignSelf == "" && !l.Wrap &&
		l.Gap == "" && l.LocationRelativeToParent == nil && l.Dimensions == nil &&
		l.Padding == "" && l.Sizing == nil && len(l.OverflowScroll) == 0 && l.Position == ""
}

func isFrame(n *figma.Node) bool {
	return n != nil && frameTypes.Contains(n.Type)
}

func buildLayout(n, parent *figma.Node) Layout {
	layout := Layout{Mode: layoutMode(n)}

	if isFrame(n) {
		if n.OverflowDirection == "HORIZONTAL_SCROLLING" || n.OverflowDirection == "HORIZONTAL_AND_VERTICAL_SCROLLING" {
			layout.OverflowScroll = append(layout.OverflowScroll, "x")
		}
		if n.OverflowDirection == "VERTICAL_SCROLLING" || n.OverflowDirection == "HORIZONTAL_AND_VERTICAL_SCROLLING" {
			layout.OverflowScroll = append(layout.OverflowScroll, "y")
		}

		if layout.Mode != "none" {
			layout.JustifyContent = convertAlign(n.PrimaryAxisAlignItems, n, false)
			layout.AlignItems = convertAlign(n.CounterAxisAlignItems, n, true)
			layout.AlignSelf = convertSelfAlign(n.LayoutAlign)
			layout.Wrap = n.LayoutWrap == "WRAP"
			if n.ItemSpacing != 0 {
				layout.Gap = px(n.ItemSpacing, "px")
			}
			// Wrapped rows are spaced by counterAxisSpacing, not itemSpacing.
			if layout.Wrap && n.CounterAxisSpacing != nil && *n.CounterAxisSpacing != 0 {
				layout.RowGap = px(*n.CounterAxisSpacing, "px")
			}
			if n.PaddingTop != 0 || n.PaddingRight != 0 || n.PaddingBottom != 0 || n.PaddingLeft != 0 {
				layout.Padding = cssShorthand(n.PaddingTop, n.PaddingRight, n.PaddingBottom, n.PaddingLeft)
			}
		}
	}

	box := n.AbsoluteBoundingBox
	if box == nil {
		return layout
	}

	if h, v := convertSizing(n.LayoutSizingHorizontal), convertSizing(n.LayoutSizingVertical); h != "" || v != "" {
		layout.Sizing = &Sizing{Horizontal: h, Vertical: v}
	}

	// Positioning only matters when the parent does not place the node itself.
	if isFrame(parent) && !inAutoLayoutFlow(n, parent) {
		if n.LayoutPositioning == "ABSOLUTE" {
			layout.Position = "absolute"
		}
		if parent.AbsoluteBoundingBox != nil {
			layout.LocationRelativeToParent = &Location{
				X: box.X - parent.AbsoluteBoundingBox.X,
				Y: box.Y - parent.AbsoluteBoundingBox.Y,
			}
		}
	}

	var dims Dimensions
	width, height := box.Width, box.Height
	switch layout.Mode {
	case "row":
		if n.LayoutGrow == 0 && n.LayoutSizingHorizontal == "FIXED" {
			dims.Width = &width
		}
		if n.LayoutAlign != "STRETCH" && n.LayoutSizingVertical == "FIXED" {
			dims.Height = &height
		}
	case "column":
		if n.LayoutAlign != "STRETCH" && n.LayoutSizingHorizontal == "FIXED" {
			dims.Width = &width
		}
		if n.LayoutGrow == 0 && n.LayoutSizingVertical == "FIXED" {
			dims.Height = &height
		}
		if n.PreserveRatio && height != 0 {
			ratio := width / height
			dims.AspectRatio = &ratio
		}
	default:
		if n.LayoutSizingHorizontal == "" || n.LayoutSizingHorizontal == "FIXED" {
			dims.Width = &width
		}
		if n.LayoutSizingVertical == "" || n.LayoutSizingVertical == "FIXED" {
			dims.Height = &height
		}
	}
	if dims.Width != nil || dims.Height != nil || dims.AspectRatio != nil {
		layout.Dimensions = &dims
	}

	return layout
}

func layoutMode(n *figma.Node) string {
	if !isFrame(n) {
		return "none"
	}
	switch n.LayoutMode {
	case "HORIZONTAL":
		return "row"
	case "VERTICAL":
		return "column"
	default:
		return "none"
	}
}

func inAutoLayoutFlow(n, parent *figma.Node) bool {
	return parent.LayoutMode != "" && parent.LayoutMode != "NONE" && n.LayoutPositioning != "ABSOLUTE"
}

// convertAlign maps primary/counter axis alignment to flexbox values. MIN is the
// flexbox default and maps to "". On the counter axis, children that all stretch
// turn the container's alignment into "stretch".
func convertAlign(align string, n *figma.Node, counterAxis bool) string {
	if counterAxis {
		inFlow, stretched := 0, 0
		for i := range n.Children {
			child := &n.Children[i]
			if child.LayoutPositioning == "ABSOLUTE" {
				continue
			}
			inFlow++
			if child.LayoutAlign == "STRETCH" {
				stretched++
			}
		}
		if inFlow > 0 && stretched == inFlow {
			return "stretch"
		}
	}

	switch align {
	case "MAX":
		return "flex-end"
	case "CENTER":
		return "center"
	case "SPACE_BETWEEN":
		return "space-between"
	case "BASELINE":
		return "baseline"
	default:
		return ""
	}
}

func convertSelfAlign(align string) string {
	switch align {
	case "MIN":
		return "flex-start"
	case "MAX":
		return "flex-end"
	case "CENTER":
		return "center"
	case "STRETCH":
		return "stretch"
	default:
		return ""
	}
}

func convertSizing(sizing string) string {
	switch sizing {
	case "FIXED":
		return "fixed"
	case "FILL":
		return "fill"
	case "HUG":
		return "hug"
	default:
		return ""
	}
}
