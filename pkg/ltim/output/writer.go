// Package output writes the converted observations and their metadata files.
package output

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// File names written into the output directory.
const (
	ObservationsFile = "observations.csv"
	SchemaFile       = "observations.csv-schema.json"
	MetadataFile     = "dataset.trig"
)

// Writer writes output files into a single directory.
type Writer struct {
	dir    string
	logger *slog.Logger
}

// NewWriter creates a writer for dir. A nil logger uses slog.Default().
func NewWriter(dir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{dir: dir, logger: logger.With(slog.String("component", "output"))}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Path returns the full path of name inside the output directory.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// create opens name for writing, creating the output directory when needed.
func (w *Writer) create(name string) (*os.File, string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return nil, "", fmt.Errorf("failed to create directory: %w", err)
	}
	path := w.Path(name)
	f, err := os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file: %w", err)
	}
	return f, path, nil
}
