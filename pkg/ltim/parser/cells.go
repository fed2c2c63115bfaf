// Package parser loads worksheets from Excel workbooks.
package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/models"
	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound indicates the workbook has no sheet with the requested name.
var ErrSheetNotFound = errors.New("sheet not found")

// LoadSheet reads the named sheet into an immutable grid. String cells stay
// strings; every other cell whose raw value is numeric becomes a float64.
func LoadSheet(f *excelize.File, sheetName string) (*models.Sheet, error) {
	idx, err := f.GetSheetIndex(sheetName)
	if err != nil {
		return nil, err
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheetName)
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	values := make([][]interface{}, len(rows))
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1 // 1-based row index
		vals := make([]interface{}, len(row))
		for colIdx, raw := range row {
			if raw == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				return nil, err
			}
			typ, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, err
			}
			vals[colIdx] = parseValue(raw, typ)
		}
		values[rowIdx] = vals
	}

	return models.NewSheet(sheetName, values), nil
}

// parseValue converts a raw cell value. Strings stored as text are returned
// unchanged, even when they look numeric.
func parseValue(s string, typ excelize.CellType) interface{} {
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeBool, excelize.CellTypeError:
		return s
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
