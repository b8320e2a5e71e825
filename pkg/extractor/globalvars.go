package extractor

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/kataras/figma-mcp/pkg/figma"
)

// varNamespace seeds the content-derived ids of globalVars entries.
var varNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/kataras/figma-mcp/globalvars"))

// Registry accumulates the globalVars of one request. Entries are write-once and keyed
// by content, so the id of a value does not depend on the order in which nodes or
// extractors register it.
type Registry struct {
	styles    map[string]any
	byContent map[string]string
	named     map[string]figma.Style
}

// NewRegistry returns an empty registry. named is the style registry of the response,
// used to resolve node.styles references to published style names; it may be nil.
func NewRegistry(named map[string]figma.Style) *Registry {
	return &Registry{
		styles:    make(map[string]any),
		byContent: make(map[string]string),
		named:     named,
	}
}

// Register stores value under a generated "<prefix>_XXXXXX" id, or returns the id of an
// equal value registered before.
//
// Values are stored in their generic JSON form (maps, slices, float64, string, bool)
// so later passes can walk them without knowing the concrete types.
func (r *Registry) Register(prefix string, value any) string {
	data, generic := normalize(value)

	key := prefix + "\x00" + string(data)
	if id, ok := r.byContent[key]; ok {
		return id
	}

	hash := strings.ToUpper(strings.ReplaceAll(uuid.NewSHA1(varNamespace, []byte(key)).String(), "-", ""))
	id := prefix + "_" + hash[:6]
	for n := 7; ; n++ {
		if _, taken := r.styles[id]; !taken {
			break
		}
		if n > len(hash) {
			id = fmt.Sprintf("%s_%s_%d", prefix, hash, len(r.styles))
			break
		}
		id = prefix + "_" + hash[:n]
	}

	r.byContent[key] = id
	r.styles[id] = generic
	return id
}

// RegisterNamed stores value under a published style name. The first registration wins.
func (r *Registry) RegisterNamed(name string, value any) string {
	if _, ok := r.styles[name]; !ok {
		_, generic := normalize(value)
		r.styles[name] = generic
	}
	return name
}

// StyleName resolves the published style a node references for one of the given keys
// (e.g. "text", "fill"). It returns "" when the node uses no published style.
func (r *Registry) StyleName(n *figma.Node, keys ...string) string {
	if len(n.Styles) == 0 || len(r.named) == 0 {
		return ""
	}
	for _, key := range keys {
		styleID, ok := n.Styles[key]
		if !ok {
			continue
		}
		if style, ok := r.named[styleID]; ok && style.Name != "" {
			return style.Name
		}
	}
	return ""
}

// GlobalVars returns the accumulated values.
func (r *Registry) GlobalVars() GlobalVars {
	return GlobalVars{Styles: r.styles}
}

// normalize round-trips value through JSON and returns both the encoding and the
// generic decoded form. Values built by the extractors always encode; a failure here
// means an extractor produced something unrepresentable (NaN, Inf) and is a bug.
func normalize(value any) ([]byte, any) {
	data, err := json.Marshal(value)
	if err != nil {
		panic(fmt.Errorf("globalVars: encode %T: %w", value, err))
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		panic(fmt.Errorf("globalVars: decode %T: %w", value, err))
	}
	return data, generic
}
