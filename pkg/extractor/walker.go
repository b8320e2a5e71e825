package extractor

import (
	"github.com/kataras/figma-mcp/pkg/figma"
)

// WalkOptions configure a traversal.
type WalkOptions struct {
	// MaxDepth bounds the number of child edges followed from the root.
	// Nodes exactly at the bound are emitted without children. Nil means unlimited.
	MaxDepth *int
	// NodeFilter drops a raw node together with its whole subtree when it returns false.
	// Nil keeps every node.
	NodeFilter func(n *figma.Node) bool
	// AfterChildren runs once per emitted node, after its children are finalized.
	// It may replace the node's children; id and type are restored if it touches them.
	AfterChildren func(n *SimplifiedNode, raw *figma.Node)
}

// Depth returns a MaxDepth value.
func Depth(d int) *int {
	return &d
}

type walkFrame struct {
	raw    *figma.Node
	out    *SimplifiedNode
	depth  int
	next   int
	expand bool
}

// Walk simplifies root and its descendants depth-first, preserving sibling order.
// It returns nil when the filter rejects root.
//
// The traversal keeps its own stack so very deep documents do not grow the goroutine stack.
func Walk(root *figma.Node, opts WalkOptions, extractors []Extractor, vars *Registry) *SimplifiedNode {
	if root == nil || !opts.keep(root) {
		return nil
	}

	rootOut := Simplify(root, extractors, &Context{Vars: vars})
	stack := []*walkFrame{{raw: root, out: rootOut, expand: opts.expand(0)}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]

		if top.expand && top.next < len(top.raw.Children) {
			child := &top.raw.Children[top.next]
			top.next++

			if !opts.keep(child) {
				continue
			}

			out := Simplify(child, extractors, &Context{Parent: top.raw, Vars: vars})
			top.out.Children = append(top.out.Children, out)
			stack = append(stack, &walkFrame{raw: child, out: out, depth: top.depth + 1, expand: opts.expand(top.depth + 1)})
			continue
		}

		stack = stack[:len(stack)-1]
		opts.finalize(top.out, top.raw)
	}

	return rootOut
}

func (opts WalkOptions) keep(n *figma.Node) bool {
	return opts.NodeFilter == nil || opts.NodeFilter(n)
}

func (opts WalkOptions) expand(depth int) bool {
	return opts.MaxDepth == nil || depth < *opts.MaxDepth
}

func (opts WalkOptions) finalize(out *SimplifiedNode, raw *figma.Node) {
	if opts.AfterChildren != nil {
		id, typ := out.ID, out.Type
		opts.AfterChildren(out, raw)
		out.ID, out.Type = id, typ
	}

	if len(out.Children) == 0 {
		out.Children = nil
	}
}
