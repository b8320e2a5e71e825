package extractor

import (
	"github.com/kataras/figma-mcp/pkg/figma"
)

// Options configure the conversion of a raw response into a SimplifiedDesign.
type Options struct {
	// Extractors run on every emitted node. Nil means AllExtractors.
	Extractors []Extractor
	// Walk controls depth, filtering and the post-children hook.
	Walk WalkOptions
}

func (opts Options) extractors() []Extractor {
	if opts.Extractors == nil {
		return AllExtractors
	}
	return opts.Extractors
}

// SimplifyRawFile converts a whole-file response. The pages of the document are the roots.
func SimplifyRawFile(file *figma.FileResponse, opts Options) *SimplifiedDesign {
	design := newDesign(file.Name)
	vars := NewRegistry(file.Styles)

	addComponents(design, file.Components, file.ComponentSets)

	for i := range file.Document.Children {
		if node := Walk(&file.Document.Children[i], opts.Walk, opts.extractors(), vars); node != nil {
			design.Nodes = append(design.Nodes, node)
		}
	}

	design.GlobalVars = vars.GlobalVars()
	return design
}

// SimplifyRawNodes converts a nodes response. Each requested node is a root, in the order
// the API listed them; nodes the API could not resolve are skipped.
func SimplifyRawNodes(resp *figma.NodesResponse, opts Options) *SimplifiedDesign {
	design := newDesign(resp.Name)

	styles := make(map[string]figma.Style)
	for _, data := range resp.Nodes {
		if data == nil {
			continue
		}
		for id, style := range data.Styles {
			styles[id] = style
		}
	}
	vars := NewRegistry(styles)

	for _, id := range resp.OrderedNodeIDs() {
		data := resp.Nodes[id]
		if data == nil {
			continue
		}

		addComponents(design, data.Components, data.ComponentSets)

		if node := Walk(&data.Document, opts.Walk, opts.extractors(), vars); node != nil {
			design.Nodes = append(design.Nodes, node)
		}
	}

	design.GlobalVars = vars.GlobalVars()
	return design
}

func newDesign(name string) *SimplifiedDesign {
	return &SimplifiedDesign{
		Name:          name,
		Nodes:         []*SimplifiedNode{},
		Components:    make(map[string]*SimplifiedComponent),
		ComponentSets: make(map[string]*SimplifiedComponentSet),
	}
}

func addComponents(design *SimplifiedDesign, components map[string]figma.Component, sets map[string]figma.ComponentSet) {
	for id, c := range components {
		design.Components[id] = &SimplifiedComponent{
			ID:             id,
			Key:            c.Key,
			Name:           c.Name,
			ComponentSetID: c.ComponentSetID,
		}
	}
	for id, s := range sets {
		design.ComponentSets[id] = &SimplifiedComponentSet{
			ID:          id,
			Key:         s.Key,
			Name:        s.Name,
			Description: s.Description,
		}
	}
}

// CountNodes returns the number of nodes in the given trees.
func CountNodes(nodes []*SimplifiedNode) int {
	count := 0
	stack := append([]*SimplifiedNode(nil), nodes...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		stack = append(stack, n.Children...)
	}
	return count
}
