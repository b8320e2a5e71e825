package diag

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestWriterWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	w := NewWriter(dir, nil)
	if w.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", w.Dir(), dir)
	}

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "figma-result.yaml", value: "nodes: []\n", want: "nodes: []\n"},
		{name: "raw.txt", value: []byte("raw"), want: "raw"},
		{name: "figma-simplified.json", value: map[string]int{"a": 1}, want: "{\n  \"a\": 1\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w.Write(tt.name, tt.value)

			got, err := os.ReadFile(filepath.Join(dir, tt.name))
			if err != nil {
				t.Fatalf("read artifact: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("artifact = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriterDisabled(t *testing.T) {
	var nilWriter *Writer
	nilWriter.Write("x.json", "ignored")
	if nilWriter.Enabled() || nilWriter.Dir() != "" {
		t.Error("nil writer reports a target")
	}

	w := NewWriter("", nil)
	if w.Enabled() {
		t.Error("writer with empty dir reports enabled")
	}
	w.Write("x.json", "ignored")
}

func TestWriterLogsFailures(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)

	NewWriter(file, logger).Write("figma-result.json", "{}")

	if !strings.Contains(buf.String(), "diag:") {
		t.Errorf("expected a logged warning, got %q", buf.String())
	}
}

func TestWriterConcurrent(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w.Write(fmt.Sprintf("artifact-%d.txt", i%4), fmt.Sprintf("run %d", i))
		}(i)
	}
	wg.Wait()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 4 {
		t.Errorf("artifacts = %d, want 4", len(entries))
	}
}
