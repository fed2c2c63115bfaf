package tidy

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/models"
)

// Output column names.
const (
	ColumnGeography     = "Geography"
	ColumnYear          = "Year"
	ColumnAge           = "Age"
	ColumnSex           = "Sex"
	ColumnMigrationFlow = "Migration Flow"
	ColumnValue         = "Value"
	ColumnMeasureType   = "Measure Type"
	ColumnUnit          = "Unit"
	ColumnCI            = "CI"
	ColumnRevision      = "Revision"
)

// Revision labels and CI markers.
const (
	RevisionCensus   = "2011 Census Revision"
	RevisionOriginal = "Original Estimate"
	CIPlaceholder    = ":"
	CIError          = "ERR"
)

// Schema is the published column order of observations.csv.
var Schema = []string{
	ColumnGeography, ColumnYear, ColumnAge, ColumnSex, ColumnMigrationFlow,
	ColumnValue, ColumnMeasureType, ColumnUnit, ColumnCI, ColumnRevision,
}

var errNotInteger = errors.New("not an integer")

// Clean runs the full cleaning pipeline over a concatenated table and returns
// it in Schema order.
func Clean(t models.Table) (models.Table, error) {
	t = Relabel(t)
	t = DropEmptyObservations(t)

	t, err := CoerceYear(t)
	if err != nil {
		return models.Table{}, err
	}

	t, err = CoerceValue(t)
	if err != nil {
		return models.Table{}, err
	}

	t = CoerceCI(t)
	t = Recode(t, ColumnGeography, GeographyCodes())
	t = Recode(t, ColumnAge, AgeCodes())
	t = Recode(t, ColumnSex, SexCodes())
	t = RecodeFunc(t, ColumnMigrationFlow, Pathify)

	return Select(t, Schema)
}

// Relabel sets Revision from the CI value: a ":" CI marks a census revision,
// anything else an original estimate. Any Revision set earlier is replaced.
func Relabel(t models.Table) models.Table {
	out := withColumn(t, ColumnRevision)
	for i, r := range t.Records {
		label := RevisionOriginal
		if ci, _ := r.Get(ColumnCI); ci == CIPlaceholder {
			label = RevisionCensus
		}
		out.Records[i] = r.With(ColumnRevision, label)
	}
	return out
}

// CoerceYear rewrites Year as an integer. An empty or missing Year is left
// empty.
func CoerceYear(t models.Table) (models.Table, error) {
	out := withColumn(t, "")
	for i, r := range t.Records {
		v, _ := r.Get(ColumnYear)
		if strings.TrimSpace(v) == "" {
			out.Records[i] = r
			continue
		}
		n, err := parseInteger(v)
		if err != nil {
			return models.Table{}, &MalformedValueError{Column: ColumnYear, Value: v, Record: i, Err: err}
		}
		out.Records[i] = r.With(ColumnYear, strconv.FormatInt(n, 10))
	}
	return out, nil
}

// DropEmptyObservations removes records without an observation value and
// drops the data marker column.
func DropEmptyObservations(t models.Table) models.Table {
	out := models.Table{}
	for _, c := range t.Columns {
		if c != models.DataMarkerColumn {
			out.Columns = append(out.Columns, c)
		}
	}
	for _, r := range t.Records {
		if v, ok := r.Get(models.ObservationColumn); !ok || strings.TrimSpace(v) == "" {
			continue
		}
		out.Records = append(out.Records, r.Without(models.DataMarkerColumn))
	}
	return out
}

// CoerceValue renames the observation column to Value and rewrites it as an
// integer. Fractions are truncated toward zero.
func CoerceValue(t models.Table) (models.Table, error) {
	out := models.Table{Records: make([]models.Record, len(t.Records))}
	for _, c := range t.Columns {
		if c == models.ObservationColumn {
			c = ColumnValue
		}
		out.Columns = append(out.Columns, c)
	}

	for i, r := range t.Records {
		v, _ := r.Get(models.ObservationColumn)
		n, err := parseTruncated(v)
		if err != nil {
			return models.Table{}, &MalformedValueError{Column: ColumnValue, Value: v, Record: i, Err: err}
		}
		out.Records[i] = r.Without(models.ObservationColumn).With(ColumnValue, strconv.FormatInt(n, 10))
	}
	return out, nil
}

// CoerceCI normalises confidence intervals: ":" or empty becomes empty, a
// whole number written as "<n>.0" becomes "<n>", and anything else is kept as
// the ERR marker for manual triage.
func CoerceCI(t models.Table) models.Table {
	return RecodeFunc(t, ColumnCI, coerceCI)
}

func coerceCI(v string) string {
	if v == "" || v == CIPlaceholder {
		return ""
	}
	if digits, ok := strings.CutSuffix(v, ".0"); ok {
		if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
			return strconv.FormatInt(n, 10)
		}
	}
	return CIError
}

// Select returns the table restricted to columns, in that order.
func Select(t models.Table, columns []string) (models.Table, error) {
	for _, c := range columns {
		if !t.HasColumn(c) {
			return models.Table{}, fmt.Errorf("select: unknown column %q", c)
		}
	}
	out := models.Table{
		Columns: append([]string(nil), columns...),
		Records: make([]models.Record, len(t.Records)),
	}
	for i, r := range t.Records {
		rec := make(models.Record, len(columns))
		for _, c := range columns {
			if v, ok := r.Get(c); ok {
				rec[c] = v
			}
		}
		out.Records[i] = rec
	}
	return out, nil
}

// parseInteger accepts integers and whole-number decimals such as "1991.0".
func parseInteger(v string) (int64, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errNotInteger
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, errNotInteger
	}
	return int64(f), nil
}

// parseTruncated parses any finite number and drops its fractional part.
func parseTruncated(v string) (int64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, errNotInteger
	}
	return int64(math.Trunc(f)), nil
}

// withColumn copies the table shape, adding col to the schema when missing.
func withColumn(t models.Table, col string) models.Table {
	out := models.Table{
		Columns: append([]string(nil), t.Columns...),
		Records: make([]models.Record, len(t.Records)),
	}
	if col != "" && !t.HasColumn(col) {
		out.Columns = append(out.Columns, col)
	}
	return out
}
