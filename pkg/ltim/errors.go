package ltim

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates a configuration that failed validation.
var ErrInvalidConfig = errors.New("invalid config")

// Stage names the step of Convert that failed.
type Stage string

const (
	// StageOpen covers reading or downloading the workbook.
	StageOpen Stage = "open"
	// StageLoad covers finding the worksheet and reading its cells.
	StageLoad Stage = "load"
	// StageTransform covers region selection, dimension lookup and cleaning.
	StageTransform Stage = "transform"
	// StageWrite covers the CSV, schema, metadata and SQLite outputs.
	StageWrite Stage = "write"
)

// ConversionError wraps the first failure of a conversion with the workbook
// and worksheet being converted. Transform failures unwrap to the region,
// dimension or tidy error that caused them.
type ConversionError struct {
	Source string
	Sheet  string
	Stage  Stage
	Err    error
}

func (e *ConversionError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%s %q: %v", e.Stage, e.Sheet, e.Err)
	}
	return fmt.Sprintf("%s %q of %s: %v", e.Stage, e.Sheet, e.Source, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
