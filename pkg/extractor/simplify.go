package extractor

import (
	"github.com/kataras/figma-mcp/pkg/figma"
)

// Context is what an extractor may consult besides the node itself.
type Context struct {
	// Parent is the raw parent of the node, nil for a root.
	Parent *figma.Node
	// Vars is the request-scoped globalVars accumulator.
	Vars *Registry
}

// Extractor contributes zero or more optional fields of a SimplifiedNode.
// Each extractor owns a disjoint set of output fields and never reads fields another
// extractor writes, so a set of extractors can run in any order.
type Extractor func(n *figma.Node, out *SimplifiedNode, ctx *Context)

var (
	// AllExtractors produces every optional field.
	AllExtractors = []Extractor{LayoutExtractor, TextExtractor, VisualsExtractor, ComponentExtractor}
	// LayoutAndText skips visuals and component data.
	LayoutAndText = []Extractor{LayoutExtractor, TextExtractor}
	// ContentOnly keeps text content and typography only.
	ContentOnly = []Extractor{TextExtractor}
)

// Simplify converts one raw node into a SimplifiedNode without its children.
// id, name and type are copied verbatim; every other field comes from the extractors.
func Simplify(n *figma.Node, extractors []Extractor, ctx *Context) *SimplifiedNode {
	out := &SimplifiedNode{
		ID:   n.ID,
		Name: n.Name,
		Type: n.Type,
	}

	for _, extract := range extractors {
		extract(n, out, ctx)
	}

	return out
}
