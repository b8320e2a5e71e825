package figmamcp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/kataras/figma-mcp/pkg/diag"
	"github.com/kataras/figma-mcp/pkg/extractor"
	"github.com/kataras/figma-mcp/pkg/figma"
	"github.com/kataras/figma-mcp/pkg/formatter"
)

type fakeFetcher struct {
	file  *figma.FileResponse
	nodes *figma.NodesResponse
	err   error

	fileCalls  int
	nodeCalls  int
	gotNodeID  string
	gotFileKey string
	gotDepth   *int
}

func (f *fakeFetcher) GetRawFile(_ context.Context, fileKey string, depth *int) (*figma.FileResponse, error) {
	f.fileCalls++
	f.gotFileKey, f.gotDepth = fileKey, depth
	if f.err != nil {
		return nil, f.err
	}
	return f.file, nil
}

func (f *fakeFetcher) GetRawNode(_ context.Context, fileKey, nodeID string, depth *int) (*figma.NodesResponse, error) {
	f.nodeCalls++
	f.gotFileKey, f.gotNodeID, f.gotDepth = fileKey, nodeID, depth
	if f.err != nil {
		return nil, f.err
	}
	return f.nodes, nil
}

func hidden() *bool {
	v := false
	return &v
}

func sampleFile() *figma.FileResponse {
	return &figma.FileResponse{
		Name: "Checkout",
		Document: figma.Node{ID: "0:0", Type: "DOCUMENT", Children: []figma.Node{
			{ID: "0:1", Name: "Page", Type: "CANVAS", Children: []figma.Node{
				{ID: "1:1", Name: "Card", Type: "FRAME",
					AbsoluteBoundingBox: &figma.Rectangle{X: 0.123, Y: 10.456, Width: 320.3333, Height: 200},
					Children: []figma.Node{
						{ID: "1:2", Name: "Title", Type: "TEXT", Characters: "Pay",
							Style:                       &figma.TypeStyle{FontFamily: "Inter", FontSize: 18.756, LineHeightPx: 24},
							ComponentPropertyReferences: map[string]string{"characters": "label"},
						},
						{ID: "1:3", Name: "Secret", Type: "TEXT", Characters: "hidden", Visible: hidden()},
						{ID: "1:4", Name: "Export", Type: "SLICE"},
					},
				},
			}},
		}},
	}
}

// rawCount counts the nodes below the document root.
func rawCount(nodes []figma.Node) int {
	count := 0
	for i := range nodes {
		count += 1 + rawCount(nodes[i].Children)
	}
	return count
}

func decodedCount(nodes []any) int {
	count := 0
	for _, n := range nodes {
		count++
		if children, ok := n.(map[string]any)["children"].([]any); ok {
			count += decodedCount(children)
		}
	}
	return count
}

func findNode(nodes []any, id string) map[string]any {
	for _, n := range nodes {
		m := n.(map[string]any)
		if m["id"] == id {
			return m
		}
		if children, ok := m["children"].([]any); ok {
			if found := findNode(children, id); found != nil {
				return found
			}
		}
	}
	return nil
}

func decodeJSON(t *testing.T, text string) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		t.Fatalf("result is not valid JSON: %v\n%s", err, text)
	}
	return out
}

func TestGetFigmaDataWholeFile(t *testing.T) {
	fetcher := &fakeFetcher{file: sampleFile()}

	result := GetFigmaData(context.Background(), Params{FileKey: "abc123"}, fetcher, formatter.JSON)
	if result.IsError {
		t.Fatalf("unexpected error result: %s", result.Text)
	}
	if fetcher.fileCalls != 1 || fetcher.nodeCalls != 0 {
		t.Errorf("calls file=%d node=%d, want file=1 node=0", fetcher.fileCalls, fetcher.nodeCalls)
	}
	if fetcher.gotDepth != nil {
		t.Errorf("depth = %d, want unset", *fetcher.gotDepth)
	}

	out := decodeJSON(t, result.Text)
	nodes := out["nodes"].([]any)
	if got, want := decodedCount(nodes), rawCount(fetcher.file.Document.Children); got != want {
		t.Errorf("node count = %d, want %d", got, want)
	}
	if out["metadata"].(map[string]any)["name"] != "Checkout" {
		t.Errorf("metadata = %v", out["metadata"])
	}
}

func TestGetFigmaDataNormalizesNodeID(t *testing.T) {
	fetcher := &fakeFetcher{nodes: &figma.NodesResponse{
		Name:  "Checkout",
		Nodes: map[string]*figma.NodeData{"1234:5678": {Document: figma.Node{ID: "1234:5678", Type: "FRAME"}}},
	}}

	depth := 2
	result := GetFigmaData(context.Background(), Params{FileKey: "abc123", NodeID: "1234-5678", Depth: &depth}, fetcher, formatter.YAML)
	if result.IsError {
		t.Fatalf("unexpected error result: %s", result.Text)
	}
	if fetcher.gotNodeID != "1234:5678" {
		t.Errorf("fetched node %q, want 1234:5678", fetcher.gotNodeID)
	}
	if fetcher.gotDepth == nil || *fetcher.gotDepth != 2 {
		t.Errorf("depth = %v, want 2", fetcher.gotDepth)
	}
	if fetcher.fileCalls != 0 {
		t.Errorf("GetRawFile called %d times for a node request", fetcher.fileCalls)
	}

	var out struct {
		Nodes []struct {
			ID string `yaml:"id"`
		} `yaml:"nodes"`
	}
	if err := yaml.Unmarshal([]byte(result.Text), &out); err != nil {
		t.Fatalf("result is not valid YAML: %v", err)
	}
	if len(out.Nodes) != 1 || out.Nodes[0].ID != "1234:5678" {
		t.Errorf("nodes = %+v", out.Nodes)
	}
}

func TestGetFigmaDataHiddenNodes(t *testing.T) {
	tests := []struct {
		name        string
		optimize    bool
		wantPresent bool
	}{
		{name: "kept without optimization", optimize: false, wantPresent: true},
		{name: "dropped with optimization", optimize: true, wantPresent: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &fakeFetcher{file: sampleFile()}
			result := GetFigmaData(context.Background(), Params{FileKey: "abc123", OptimizeForAndroid: tt.optimize}, fetcher, formatter.JSON)
			if result.IsError {
				t.Fatalf("unexpected error result: %s", result.Text)
			}

			nodes := decodeJSON(t, result.Text)["nodes"].([]any)
			for _, id := range []string{"1:3", "1:4"} {
				if got := findNode(nodes, id) != nil; got != tt.wantPresent {
					t.Errorf("node %s present = %v, want %v", id, got, tt.wantPresent)
				}
			}
		})
	}
}

func TestGetFigmaDataAndroidReduction(t *testing.T) {
	fetcher := &fakeFetcher{file: sampleFile()}
	result := GetFigmaData(context.Background(), Params{FileKey: "abc123", OptimizeForAndroid: true}, fetcher, formatter.JSON)
	if result.IsError {
		t.Fatalf("unexpected error result: %s", result.Text)
	}

	out := decodeJSON(t, result.Text)
	title := findNode(out["nodes"].([]any), "1:2")
	if title == nil {
		t.Fatal("node 1:2 missing")
	}
	if _, ok := title["componentPropertyReferences"]; ok {
		t.Error("componentPropertyReferences survived reduction")
	}

	styles := out["globalVars"].(map[string]any)["styles"].(map[string]any)
	textStyle := styles[title["textStyle"].(string)].(map[string]any)
	if textStyle["fontSize"] != 18.76 {
		t.Errorf("fontSize = %v, want 18.76", textStyle["fontSize"])
	}
}

func TestGetFigmaDataFetchError(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("timeout")}

	for _, params := range []Params{{FileKey: "abc123"}, {FileKey: "abc123", NodeID: "1:2"}} {
		result := GetFigmaData(context.Background(), params, fetcher, formatter.JSON)
		if !result.IsError {
			t.Fatalf("IsError = false for %+v", params)
		}
		if result.Text != "Error fetching file: timeout" {
			t.Errorf("Text = %q, want %q", result.Text, "Error fetching file: timeout")
		}
	}
}

func TestGetFigmaDataValidation(t *testing.T) {
	negative := -1
	tests := []struct {
		name   string
		params Params
		format formatter.Format
		want   string
	}{
		{name: "missing key", params: Params{}, format: formatter.JSON, want: "fileKey"},
		{name: "bad key", params: Params{FileKey: "abc/../x"}, format: formatter.JSON, want: "fileKey"},
		{name: "bad node id", params: Params{FileKey: "abc", NodeID: "frame-one"}, format: formatter.JSON, want: "nodeId"},
		{name: "negative depth", params: Params{FileKey: "abc", Depth: &negative}, format: formatter.JSON, want: "depth"},
		{name: "unknown format", params: Params{FileKey: "abc"}, format: "xml", want: "outputFormat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &fakeFetcher{file: sampleFile()}
			result := GetFigmaData(context.Background(), tt.params, fetcher, tt.format)

			if !result.IsError || !strings.HasPrefix(result.Text, ErrorPrefix) || !strings.Contains(result.Text, tt.want) {
				t.Errorf("result = %+v, want an error about %s", result, tt.want)
			}
			if fetcher.fileCalls+fetcher.nodeCalls != 0 {
				t.Error("fetcher called for an invalid request")
			}
		})
	}
}

func TestGetFigmaDataRecoversPanics(t *testing.T) {
	boom := func(*figma.Node, *extractor.SimplifiedNode, *extractor.Context) {
		panic("unexpected payload")
	}

	fetcher := &fakeFetcher{file: sampleFile()}
	result := GetFigmaData(context.Background(), Params{FileKey: "abc123"}, fetcher, formatter.JSON, WithExtractors(boom))

	if !result.IsError {
		t.Fatal("IsError = false after a panicking extractor")
	}
	if want := "Error fetching file: simplify failed: unexpected payload"; result.Text != want {
		t.Errorf("Text = %q, want %q", result.Text, want)
	}
}

func TestGetFigmaDataDiagnostics(t *testing.T) {
	dir := t.TempDir()
	fetcher := &fakeFetcher{file: sampleFile()}

	result := GetFigmaData(context.Background(), Params{FileKey: "abc123"}, fetcher, formatter.YAML,
		WithDiagnostics(diag.NewWriter(dir, nil)))
	if result.IsError {
		t.Fatalf("unexpected error result: %s", result.Text)
	}

	if _, err := os.Stat(filepath.Join(dir, SimplifiedArtifact)); err != nil {
		t.Errorf("simplified artifact missing: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "figma-result.yaml"))
	if err != nil {
		t.Fatalf("result artifact missing: %v", err)
	}
	if string(data) != result.Text {
		t.Error("result artifact differs from the returned text")
	}
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "validation", err: &ValidationError{Field: "fileKey", Message: "required"}, want: "validation"},
		{name: "fetch", err: &FetchError{Err: errors.New("timeout")}, want: "fetch"},
		{name: "transform", err: &TransformError{Stage: "encode", Value: "boom"}, want: "transform"},
		{name: "other", err: errors.New("boom"), want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorKind(tt.err); got != tt.want {
				t.Errorf("errorKind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFetchErrorKeepsCause(t *testing.T) {
	apiErr := &figma.APIError{StatusCode: 404, Message: "Not found"}
	err := &FetchError{Err: apiErr}

	var target *figma.APIError
	if !errors.As(err, &target) || target.StatusCode != 404 {
		t.Errorf("errors.As did not reach the API error")
	}
	if err.Error() != apiErr.Error() {
		t.Errorf("Error() = %q, want the fetcher message %q", err.Error(), apiErr.Error())
	}
}
