package parser

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/models"
	"github.com/xuri/excelize/v2"
)

func TestLoadSheet(t *testing.T) {
	// Create a temporary Excel file for testing
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Table 2.07"
	if _, err := f.NewSheet(sheetName); err != nil {
		t.Fatalf("Failed to create sheet: %v", err)
	}
	f.SetCellValue(sheetName, "A1", "Year")
	f.SetCellValue(sheetName, "B1", "Estimate")
	f.SetCellValue(sheetName, "A2", 1991)
	f.SetCellValue(sheetName, "B2", 200.5)
	f.SetCellValue(sheetName, "C2", "1992")
	f.SetCellValue(sheetName, "A4", ":")

	// Save to temp file
	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	// Open and load
	f2, err := excelize.OpenFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer f2.Close()

	sheet, err := LoadSheet(f2, sheetName)
	if err != nil {
		t.Fatalf("LoadSheet failed: %v", err)
	}

	if sheet.Rows() != 4 || sheet.Cols() != 3 {
		t.Errorf("Expected 4x3 sheet, got %dx%d", sheet.Rows(), sheet.Cols())
	}

	tests := []struct {
		row, col int
		expected interface{}
	}{
		{1, 1, "Year"},
		{2, 1, float64(1991)},
		{2, 2, 200.5},
		{2, 3, "1992"}, // text that looks numeric stays text
		{3, 1, nil},
		{4, 1, ":"},
	}
	for _, tt := range tests {
		c, ok := sheet.Cell(tt.row, tt.col)
		if !ok {
			t.Errorf("Cell(%d, %d) outside sheet", tt.row, tt.col)
			continue
		}
		if c.Value != tt.expected {
			t.Errorf("Cell(%d, %d) = %v (type: %T), expected %v (type: %T)",
				tt.row, tt.col, c.Value, c.Value, tt.expected, tt.expected)
		}
	}
}

func TestLoadSheetNotFound(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	_, err := LoadSheet(f, "Table 2.07")
	if !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("Expected ErrSheetNotFound, got %v", err)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		typ      excelize.CellType
		expected interface{}
	}{
		{"123", excelize.CellTypeUnset, float64(123)},
		{"123.45", excelize.CellTypeNumber, 123.45},
		{"-100", excelize.CellTypeUnset, float64(-100)},
		{"123", excelize.CellTypeSharedString, "123"},
		{"hello", excelize.CellTypeFormula, "hello"},
		{":", excelize.CellTypeInlineString, ":"},
	}

	for _, tt := range tests {
		result := parseValue(tt.input, tt.typ)
		if result != tt.expected {
			t.Errorf("parseValue(%q) = %v (type: %T), expected %v (type: %T)",
				tt.input, result, result, tt.expected, tt.expected)
		}
	}
}

func TestDataBounds(t *testing.T) {
	s := models.NewSheet("S", [][]interface{}{
		{nil, nil, nil},
		{nil, "a", nil},
		{nil, nil, 3},
	})
	area, ok := DataBounds(s)
	if !ok {
		t.Fatal("Expected data bounds")
	}
	expected := models.Area{R1: 2, C1: 2, R2: 3, C2: 3}
	if area != expected {
		t.Errorf("DataBounds = %+v, expected %+v", area, expected)
	}
	if n := CountNonBlank(s, area); n != 2 {
		t.Errorf("CountNonBlank = %d, expected 2", n)
	}

	if _, ok := DataBounds(models.NewSheet("Empty", nil)); ok {
		t.Error("Expected no bounds for empty sheet")
	}
}
