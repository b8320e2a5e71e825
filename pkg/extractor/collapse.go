package extractor

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/kataras/figma-mcp/pkg/figma"
)

// MinIconChildren is the least number of vector children a container needs to be folded.
const MinIconChildren = 1

// IconFormat is the format reported by the icon marker of a folded container.
const IconFormat = "IMAGE-SVG"

var (
	svgContainerTypes = mapset.NewSet("FRAME", "GROUP", "INSTANCE", "BOOLEAN_OPERATION")
	svgVectorTypes    = mapset.NewSet(
		"VECTOR", "IMAGE-SVG", "STAR", "LINE", "ELLIPSE",
		"REGULAR_POLYGON", "RECTANGLE", "BOOLEAN_OPERATION",
	)
)

// CollapseSVGContainers folds containers whose children are all vector primitives into a
// single icon node. The children are dropped and an icon marker records how many
// primitives they held. Nodes without children are left as they are, so applying it
// twice gives the same result.
//
// It is meant to be used as WalkOptions.AfterChildren.
func CollapseSVGContainers(n *SimplifiedNode, _ *figma.Node) {
	if len(n.Children) < MinIconChildren || !svgContainerTypes.Contains(n.Type) {
		return
	}

	vectors := 0
	for _, child := range n.Children {
		switch {
		case child.Icon != nil:
			vectors += child.Icon.Vectors
		case svgVectorTypes.Contains(child.Type) && len(child.Children) == 0:
			vectors++
		default:
			return
		}
	}

	n.Children = nil
	n.Icon = &Icon{Format: IconFormat, Vectors: vectors}
}
