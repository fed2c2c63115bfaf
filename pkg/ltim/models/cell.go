// Package models defines the sheet and table structures used by the conversion.
package models

import (
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Cell is a single worksheet cell.
type Cell struct {
	// Row is the row index (1-based).
	Row int `json:"r"`
	// Col is the column index (1-based).
	Col int `json:"c"`
	// Value is nil for an empty cell, otherwise a string or a float64.
	Value interface{} `json:"v,omitempty"`
}

// IsBlank reports whether the cell holds no value or an empty string.
func (c Cell) IsBlank() bool {
	switch v := c.Value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	}
	return false
}

// IsWhitespace reports whether the cell is a string made only of spaces.
func (c Cell) IsWhitespace() bool {
	s, ok := c.Value.(string)
	return ok && s != "" && strings.TrimSpace(s) == ""
}

// IsNumber reports whether the cell holds a numeric value.
func (c Cell) IsNumber() bool {
	_, ok := c.Value.(float64)
	return ok
}

// Text renders the cell value as text. Integral numbers keep a trailing ".0"
// so that "12.0" and the string "12" stay distinguishable downstream.
func (c Cell) Text() string {
	switch v := c.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return FormatNumber(v)
	}
	return ""
}

// Ref returns the A1-style name of the cell.
func (c Cell) Ref() string {
	name, err := excelize.CoordinatesToCellName(c.Col, c.Row)
	if err != nil {
		return "R" + strconv.Itoa(c.Row) + "C" + strconv.Itoa(c.Col)
	}
	return name
}

// FormatNumber formats a cell number the way Cell.Text does.
func FormatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
