package figmamcp

import (
	"strings"

	"github.com/kataras/figma-mcp/pkg/figma"
)

// Params are the inputs of GetFigmaData.
type Params struct {
	// FileKey identifies the Figma file, e.g. the ABC123 in figma.com/design/ABC123/...
	FileKey string `json:"fileKey"`
	// NodeID optionally restricts the result to one node and its subtree.
	// Both the URL form "1234-5678" and the API form "1234:5678" are accepted.
	NodeID string `json:"nodeId,omitempty"`
	// Depth limits how many levels below each root are returned. Nil means the whole tree.
	Depth *int `json:"depth,omitempty"`
	// OptimizeForAndroid drops hidden nodes, slices and non-essential fields and rounds
	// shared style values to two decimals.
	OptimizeForAndroid bool `json:"optimizeForAndroid,omitempty"`
}

// Validate checks the shape of the parameters.
func (p Params) Validate() error {
	if p.FileKey == "" {
		return &ValidationError{Field: "fileKey", Message: "required"}
	}
	if !figma.ValidFileKey(p.FileKey) {
		return &ValidationError{Field: "fileKey", Message: "must contain only letters and digits"}
	}
	if p.NodeID != "" && !figma.ValidNodeID(p.NodeID) {
		return &ValidationError{Field: "nodeId", Message: "must look like 1234:5678 or 1234-5678"}
	}
	if p.Depth != nil && *p.Depth < 0 {
		return &ValidationError{Field: "depth", Message: "must not be negative"}
	}
	return nil
}

// ParamsFromURL builds Params from a Figma URL or a bare file key. The first node id of
// the URL, if any, becomes NodeID.
func ParamsFromURL(keyOrURL string) (Params, error) {
	keyOrURL = strings.TrimSpace(keyOrURL)

	fileKey, err := figma.ResolveFileKey(keyOrURL)
	if err != nil {
		return Params{}, &ValidationError{Field: "fileKey", Message: err.Error()}
	}
	params := Params{FileKey: fileKey}

	if fileKey == keyOrURL {
		return params, nil
	}

	nodeIDs, err := figma.ExtractNodeIDs(keyOrURL)
	if err != nil {
		return Params{}, &ValidationError{Field: "nodeId", Message: err.Error()}
	}
	if len(nodeIDs) > 0 {
		params.NodeID = nodeIDs[0]
	}
	return params, nil
}

// ParseNodeIDs parses a comma-separated string of node IDs into the API form.
func ParseNodeIDs(nodeIDsStr string) ([]string, error) {
	parts := strings.Split(nodeIDsStr, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		if !figma.ValidNodeID(trimmed) {
			return nil, &ValidationError{Field: "nodeId", Message: "malformed node id " + trimmed}
		}
		result = append(result, figma.NormalizeNodeID(trimmed))
	}

	return result, nil
}
