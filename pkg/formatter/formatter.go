// Package formatter serializes a simplified design into the text returned to clients.
package formatter

import (
	"bytes"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/kataras/figma-mcp/pkg/extractor"
)

// Format is an output text format.
type Format string

const (
	// JSON is compact JSON, without indentation.
	JSON Format = "json"
	// YAML is a YAML document.
	YAML Format = "yaml"
)

// ParseFormat parses a format name, case-insensitively. An empty name means YAML.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case JSON:
		return JSON, nil
	case YAML, "yml", "":
		return YAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q: expected json or yaml", s)
	}
}

// Ext returns the file extension for f, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// Metadata is the design-level information of an Output.
type Metadata struct {
	Name          string                                       `json:"name" yaml:"name"`
	Components    map[string]*extractor.SimplifiedComponent    `json:"components" yaml:"components"`
	ComponentSets map[string]*extractor.SimplifiedComponentSet `json:"componentSets" yaml:"componentSets"`
}

// Output is the document returned to clients.
type Output struct {
	Metadata   Metadata                    `json:"metadata" yaml:"metadata"`
	Nodes      []*extractor.SimplifiedNode `json:"nodes" yaml:"nodes"`
	GlobalVars extractor.GlobalVars        `json:"globalVars" yaml:"globalVars"`
}

// NewOutput splits a design into its metadata, nodes and globalVars.
func NewOutput(design *extractor.SimplifiedDesign) Output {
	return Output{
		Metadata: Metadata{
			Name:          design.Name,
			Components:    design.Components,
			ComponentSets: design.ComponentSets,
		},
		Nodes:      design.Nodes,
		GlobalVars: design.GlobalVars,
	}
}

// Encode serializes design in the given format.
func Encode(design *extractor.SimplifiedDesign, format Format) (string, error) {
	out := NewOutput(design)

	switch format {
	case JSON:
		data, err := json.MarshalWithOption(out, json.DisableHTMLEscape())
		if err != nil {
			return "", fmt.Errorf("encode json: %w", err)
		}
		return string(data), nil
	case YAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return "", fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("encode yaml: %w", err)
		}
		return buf.String(), nil
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}
