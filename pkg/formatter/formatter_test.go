package formatter

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/kataras/figma-mcp/pkg/extractor"
)

func sampleDesign() *extractor.SimplifiedDesign {
	return &extractor.SimplifiedDesign{
		Name: "Landing <v2>",
		Nodes: []*extractor.SimplifiedNode{
			{ID: "1:1", Name: "Frame", Type: "FRAME", Layout: "layout_ABCDEF", Children: []*extractor.SimplifiedNode{
				{ID: "1:2", Name: "Label", Type: "TEXT", Text: "Hi & bye"},
			}},
		},
		Components:    map[string]*extractor.SimplifiedComponent{"5:1": {ID: "5:1", Key: "k", Name: "Button"}},
		ComponentSets: map[string]*extractor.SimplifiedComponentSet{},
		GlobalVars: extractor.GlobalVars{Styles: map[string]any{
			"layout_ABCDEF": map[string]any{"mode": "row", "gap": "8px"},
		}},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "json", want: JSON},
		{in: "JSON", want: JSON},
		{in: "yaml", want: YAML},
		{in: "yml", want: YAML},
		{in: "", want: YAML},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncodeJSON(t *testing.T) {
	text, err := Encode(sampleDesign(), JSON)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if strings.Contains(text, "\n") {
		t.Error("JSON output is not compact")
	}
	if !strings.Contains(text, `"name":"Landing <v2>"`) || !strings.Contains(text, `"text":"Hi & bye"`) {
		t.Errorf("JSON output escapes text: %s", text)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, key := range []string{"metadata", "nodes", "globalVars"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}
	if len(decoded) != 3 {
		t.Errorf("top-level keys = %d, want 3", len(decoded))
	}

	metadata := decoded["metadata"].(map[string]any)
	for _, key := range []string{"name", "components", "componentSets"} {
		if _, ok := metadata[key]; !ok {
			t.Errorf("missing metadata key %q", key)
		}
	}
}

func TestEncodeJSONOmitsEmptyChildren(t *testing.T) {
	design := sampleDesign()
	text, err := Encode(design, JSON)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if strings.Count(text, `"children"`) != 1 {
		t.Errorf("expected a single children key, got %s", text)
	}
}

func TestEncodeYAML(t *testing.T) {
	text, err := Encode(sampleDesign(), YAML)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var decoded struct {
		Metadata struct {
			Name string `yaml:"name"`
		} `yaml:"metadata"`
		Nodes []struct {
			ID       string `yaml:"id"`
			Children []struct {
				Text string `yaml:"text"`
			} `yaml:"children"`
		} `yaml:"nodes"`
		GlobalVars struct {
			Styles map[string]map[string]string `yaml:"styles"`
		} `yaml:"globalVars"`
	}
	if err := yaml.Unmarshal([]byte(text), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}

	if decoded.Metadata.Name != "Landing <v2>" {
		t.Errorf("metadata.name = %q", decoded.Metadata.Name)
	}
	if len(decoded.Nodes) != 1 || decoded.Nodes[0].ID != "1:1" || decoded.Nodes[0].Children[0].Text != "Hi & bye" {
		t.Errorf("nodes = %+v", decoded.Nodes)
	}
	if decoded.GlobalVars.Styles["layout_ABCDEF"]["gap"] != "8px" {
		t.Errorf("globalVars = %+v", decoded.GlobalVars)
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	if _, err := Encode(sampleDesign(), Format("xml")); err == nil {
		t.Error("Encode() with unknown format returned no error")
	}
}
