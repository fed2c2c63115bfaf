package output

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/models"
	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/tidy"
)

// SQLiteTable is the table name used by WriteSQLite.
const SQLiteTable = "observations"

var sqliteColumnTypes = map[string]string{
	tidy.ColumnYear:  "INTEGER",
	tidy.ColumnValue: "INTEGER",
}

// WriteSQLite replaces the database at path with a single observations table.
// Year and Value are stored as integers, everything else as text.
func (w *Writer) WriteSQLite(path string, t models.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to replace database: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	var defs, quoted []string
	for _, c := range t.Columns {
		typ := sqliteColumnTypes[c]
		if typ == "" {
			typ = "TEXT"
		}
		defs = append(defs, fmt.Sprintf("%q %s", c, typ))
		quoted = append(quoted, fmt.Sprintf("%q", c))
	}

	if _, err := db.Exec(fmt.Sprintf(`CREATE TABLE %q (%s)`, SQLiteTable, strings.Join(defs, ","))); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	ph := strings.TrimRight(strings.Repeat("?,", len(t.Columns)), ",")
	stmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO %q (%s) VALUES (%s)`, SQLiteTable, strings.Join(quoted, ","), ph))
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range t.Records {
		args := make([]any, len(t.Columns))
		for j, c := range t.Columns {
			args[j] = sqliteValue(r, c)
		}
		if _, err := stmt.Exec(args...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert record %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	for _, c := range []string{tidy.ColumnGeography, tidy.ColumnYear} {
		if !t.HasColumn(c) {
			continue
		}
		idx := fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %q ON %q (%q)`, "idx_"+SQLiteTable+"_"+ColumnName(c), SQLiteTable, c)
		if _, err := db.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	w.logger.Info("Wrote SQLite database",
		slog.String("path", path),
		slog.Int("record_count", len(t.Records)))
	return nil
}

// sqliteValue maps missing values to NULL; integer columns that do not parse
// are stored as text, which SQLite accepts.
func sqliteValue(r models.Record, col string) any {
	v, ok := r.Get(col)
	if !ok {
		return nil
	}
	if sqliteColumnTypes[col] == "INTEGER" && v == "" {
		return nil
	}
	return v
}
