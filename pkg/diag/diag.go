// Package diag writes intermediate pipeline artifacts to a directory for inspection.
package diag

import (
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// Writer stores named artifacts in a directory. Writes are best effort: failures are
// logged and never returned. A Writer with an empty directory, or a nil Writer, does nothing.
// It is safe for concurrent use.
type Writer struct {
	dir    string
	logger logrus.FieldLogger

	mu sync.Mutex
}

// NewWriter returns a Writer for dir. The directory is created on first write.
func NewWriter(dir string, logger logrus.FieldLogger) *Writer {
	return &Writer{dir: dir, logger: logger}
}

// Enabled reports whether writes reach the filesystem.
func (w *Writer) Enabled() bool {
	return w != nil && w.dir != ""
}

// Dir returns the target directory.
func (w *Writer) Dir() string {
	if w == nil {
		return ""
	}
	return w.dir
}

// Write stores v under name, replacing any previous artifact of the same name.
// Strings and byte slices are written verbatim, anything else as indented JSON.
func (w *Writer) Write(name string, v any) {
	if !w.Enabled() {
		return
	}

	var data []byte
	switch value := v.(type) {
	case string:
		data = []byte(value)
	case []byte:
		data = value
	default:
		encoded, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			w.warnf("diag: encode %s: %v", name, err)
			return
		}
		data = encoded
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		w.warnf("diag: create %s: %v", w.dir, err)
		return
	}
	if err := os.WriteFile(filepath.Join(w.dir, filepath.Base(name)), data, 0o644); err != nil {
		w.warnf("diag: write %s: %v", name, err)
	}
}

func (w *Writer) warnf(format string, args ...any) {
	if w.logger != nil {
		w.logger.Warnf(format, args...)
	}
}
