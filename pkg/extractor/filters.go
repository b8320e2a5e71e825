package extractor

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/kataras/figma-mcp/pkg/figma"
)

// hiddenTypes never render in the exported design.
var hiddenTypes = mapset.NewSet("SLICE")

// ExcludeHiddenAndSlices rejects nodes marked invisible and export slices.
func ExcludeHiddenAndSlices(n *figma.Node) bool {
	return n.IsVisible() && !hiddenTypes.Contains(n.Type)
}
