package dimension

import (
	"errors"
	"fmt"

	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/region"
)

// ErrNoDirectValue indicates no header cell lies on the observation's row or
// column in the lookup direction.
var ErrNoDirectValue = errors.New("no header cell directly in line")

// ErrNoClosestValue indicates no header cell lies on the scanned side of the
// observation.
var ErrNoClosestValue = errors.New("no header cell on the scan path")

// UnresolvedDimensionError reports a dimension that could not be resolved for
// an observation.
type UnresolvedDimensionError struct {
	Dimension string
	Cell      string
	Lookup    Lookup
	Direction region.Direction
	Err       error
}

func (e *UnresolvedDimensionError) Error() string {
	return fmt.Sprintf("dimension %q unresolved for cell %s (%s %s): %v",
		e.Dimension, e.Cell, e.Lookup, e.Direction, e.Err)
}

func (e *UnresolvedDimensionError) Unwrap() error {
	return e.Err
}
