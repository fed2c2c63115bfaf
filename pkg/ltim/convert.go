package ltim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/models"
	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/output"
	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/parser"
	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/source"
	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/tidy"
)

// Result summarises a finished conversion.
type Result struct {
	// Rows is the number of observations written.
	Rows int
	// Files lists the written files in write order.
	Files []string
}

// Convert reads the configured worksheet, transforms it and writes the
// observations, their CSVW schema, the dataset metadata and, when
// SQLitePath is set, a SQLite copy of the observations.
func Convert(ctx context.Context, cfg Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	fail := func(stage Stage, err error) error {
		return &ConversionError{Source: cfg.SourceURL, Sheet: cfg.Worksheet, Stage: stage, Err: err}
	}
	logger.Info("Starting conversion",
		slog.String("source", cfg.SourceURL),
		slog.String("sheet", cfg.Worksheet))

	f, err := source.Open(ctx, cfg.SourceURL, nil)
	if err != nil {
		return nil, fail(StageOpen, err)
	}
	defer f.Close()

	sheet, err := parser.LoadSheet(f, cfg.Worksheet)
	if err != nil {
		return nil, fail(StageLoad, err)
	}
	if area, ok := parser.DataBounds(sheet); ok {
		logger.Debug("Loaded worksheet",
			slog.Int("rows", sheet.Rows()),
			slog.Int("cols", sheet.Cols()),
			slog.Any("data_area", area),
			slog.Int("non_blank", parser.CountNonBlank(sheet, area)))
	}

	table, err := transform(sheet, logger)
	if err != nil {
		return nil, fail(StageTransform, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fail(StageWrite, err)
	}

	res := &Result{Rows: len(table.Records)}
	w := output.NewWriter(cfg.OutputDir, logger)

	path, err := w.WriteCSV(output.ObservationsFile, table)
	if err != nil {
		return nil, fail(StageWrite, err)
	}
	res.Files = append(res.Files, path)

	path, err = w.WriteSchema(output.SchemaFile, output.ObservationsFile, table.Columns, cfg.SchemaBaseURL)
	if err != nil {
		return nil, fail(StageWrite, err)
	}
	res.Files = append(res.Files, path)

	path, err = w.WriteTriG(output.MetadataFile, cfg.Dataset(time.Now()))
	if err != nil {
		return nil, fail(StageWrite, err)
	}
	res.Files = append(res.Files, path)

	if cfg.SQLitePath != "" {
		if err := w.WriteSQLite(cfg.SQLitePath, table); err != nil {
			return nil, fail(StageWrite, err)
		}
		res.Files = append(res.Files, cfg.SQLitePath)
	}

	logger.Info("Conversion complete",
		slog.Int("observations", res.Rows),
		slog.Int("files", len(res.Files)),
		slog.Duration("duration", time.Since(start)))
	return res, nil
}

func transform(sheet *models.Sheet, logger *slog.Logger) (models.Table, error) {
	revised, original, err := BuildSegments(sheet)
	if err != nil {
		return models.Table{}, err
	}
	logger.Debug("Selected observations",
		slog.Int("revised", revised.Observations.Len()),
		slog.Int("original", original.Observations.Len()))

	rt, err := revised.Table()
	if err != nil {
		return models.Table{}, fmt.Errorf("revised estimates: %w", err)
	}
	ot, err := original.Table()
	if err != nil {
		return models.Table{}, fmt.Errorf("original estimates: %w", err)
	}

	combined := tidy.Concat(rt, ot)
	cleaned, err := tidy.Clean(combined)
	if err != nil {
		return models.Table{}, err
	}
	if dropped := len(combined.Records) - len(cleaned.Records); dropped > 0 {
		logger.Info("Dropped observations without a value", slog.Int("count", dropped))
	}
	return cleaned, nil
}
