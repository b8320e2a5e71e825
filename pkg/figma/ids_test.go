package figma

import (
	"testing"
)

func TestExtractFileKey(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "file URL", url: "https://www.figma.com/file/ABC123XYZ/Design-Name", want: "ABC123XYZ"},
		{name: "design URL", url: "https://www.figma.com/design/ABC123XYZ/Design-Name", want: "ABC123XYZ"},
		{name: "node-id parameter", url: "https://www.figma.com/design/4gkABR5gEZnIvlCaXmA4KI/Makis-s-file?node-id=11933-305884&t=ObvUckUHZc8tSjeT-1", want: "4gkABR5gEZnIvlCaXmA4KI"},
		{name: "no www", url: "https://figma.com/file/ABC123XYZ/Design-Name", want: "ABC123XYZ"},
		{name: "http", url: "http://www.figma.com/file/ABC123XYZ/Design-Name", want: "ABC123XYZ"},
		{name: "trailing slash", url: "https://www.figma.com/file/ABC123XYZ/", want: "ABC123XYZ"},
		{name: "missing key", url: "https://www.figma.com/file/", wantErr: true},
		{name: "wrong domain", url: "https://www.example.com/file/ABC123XYZ", wantErr: true},
		{name: "wrong path", url: "https://www.figma.com/dashboard/ABC123XYZ", wantErr: true},
		{name: "empty", url: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractFileKey(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ExtractFileKey() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ExtractFileKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveFileKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "bare key", input: "aB1cD2eF3", want: "aB1cD2eF3"},
		{name: "url", input: "https://www.figma.com/design/aB1cD2eF3/Name", want: "aB1cD2eF3"},
		{name: "garbage", input: "not a key", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveFileKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveFileKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ResolveFileKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidNodeID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"1234:5678", true},
		{"1234-5678", true},
		{"I5666:180910;1:10515;1:10336", true},
		{"I5666-180910;1-10515", true},
		{"1234", false},
		{"abc:def", false},
		{"1234:5678;", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := ValidNodeID(tt.id); got != tt.want {
				t.Errorf("ValidNodeID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestNormalizeNodeID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1234-5678", "1234:5678"},
		{"1234:5678", "1234:5678"},
		{"I5666-180910;1-10515", "I5666:180910;1:10515"},
	}

	for _, tt := range tests {
		if got := NormalizeNodeID(tt.in); got != tt.want {
			t.Errorf("NormalizeNodeID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractNodeIDs(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    []string
		wantErr bool
	}{
		{name: "single with colon", url: "https://www.figma.com/file/ABC123/Design?node-id=123:456", want: []string{"123:456"}},
		{name: "single with dash", url: "https://www.figma.com/design/4gkABR5gEZnIvlCaXmA4KI/Makis-s-file?node-id=11933-305884", want: []string{"11933:305884"}},
		{name: "followed by parameters", url: "https://www.figma.com/design/4gkABR5gEZnIvlCaXmA4KI/Makis-s-file?node-id=11933-305884&t=ObvUckUHZc8tSjeT-1", want: []string{"11933:305884"}},
		{name: "multiple mixed", url: "https://www.figma.com/file/ABC123/Design?node-id=123:456,789-012", want: []string{"123:456", "789:012"}},
		{name: "url encoded colon", url: "https://www.figma.com/file/ABC123/Design?node-id=123%3A456", want: []string{"123:456"}},
		{name: "hash fragment", url: "https://www.figma.com/file/ABC123/Design#123:456,789:012", want: []string{"123:456", "789:012"}},
		{name: "path format", url: "https://www.figma.com/file/ABC123/Design/nodes/123:456,789:012", want: []string{"123:456", "789:012"}},
		{name: "none", url: "https://www.figma.com/file/ABC123/Design", want: []string{}},
		{name: "spaces trimmed", url: "https://www.figma.com/file/ABC123/Design?node-id=123:456, 789:012", want: []string{"123:456", "789:012"}},
		{name: "duplicates", url: "https://www.figma.com/file/ABC123/Design?node-id=123:456,123:456,789:012", want: []string{"123:456", "789:012"}},
		{name: "middle parameter", url: "https://www.figma.com/file/ABC123/Design?first=value&node-id=123:456&last=value", want: []string{"123:456"}},
		{name: "empty parameter", url: "https://www.figma.com/file/ABC123/Design?node-id=", want: []string{}},
		{name: "malformed id", url: "https://www.figma.com/file/ABC123/Design?node-id=abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractNodeIDs(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractNodeIDs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractNodeIDs() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ExtractNodeIDs() at index %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDeduplicateNodeIDs(t *testing.T) {
	got := deduplicateNodeIDs([]string{"789:012", "123:456", "789:012", "345:678", "123:456"})
	want := []string{"789:012", "123:456", "345:678"}

	if len(got) != len(want) {
		t.Fatalf("deduplicateNodeIDs() = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("deduplicateNodeIDs() at index %d = %v, want %v", i, got[i], want[i])
		}
	}
}
