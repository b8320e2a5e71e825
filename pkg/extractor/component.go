package extractor

import (
	"fmt"
	"sort"

	"github.com/kataras/figma-mcp/pkg/figma"
)

// ComponentExtractor writes componentId, componentProperties and componentPropertyReferences.
func ComponentExtractor(n *figma.Node, out *SimplifiedNode, _ *Context) {
	if len(n.ComponentPropertyReferences) > 0 {
		out.ComponentPropertyReferences = n.ComponentPropertyReferences
	}

	if n.Type != "INSTANCE" {
		return
	}

	out.ComponentID = n.ComponentID

	if len(n.ComponentProperties) == 0 {
		return
	}
	names := make([]string, 0, len(n.ComponentProperties))
	for name := range n.ComponentProperties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prop := n.ComponentProperties[name]
		out.ComponentProperties = append(out.ComponentProperties, ComponentProperty{
			Name:  name,
			Value: fmt.Sprint(prop.Value),
			Type:  prop.Type,
		})
	}
}
