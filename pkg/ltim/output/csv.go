package output

import (
	"encoding/csv"
	"fmt"
	"log/slog"

	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/models"
)

// WriteCSV writes the table as UTF-8 CSV with a header row and returns the
// file path.
func (w *Writer) WriteCSV(name string, t models.Table) (string, error) {
	f, path, err := w.create(name)
	if err != nil {
		return "", err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(t.Columns); err != nil {
		return "", fmt.Errorf("failed to write headers: %w", err)
	}
	for i, row := range t.Rows() {
		if err := cw.Write(row); err != nil {
			return "", fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	w.logger.Info("Wrote CSV file",
		slog.String("path", path),
		slog.Int("record_count", len(t.Records)))
	return path, nil
}
