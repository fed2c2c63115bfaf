package region

import (
	"fmt"
	"strings"
)

// AmbiguousRegionError is returned when a region expected to hold exactly one
// cell holds zero or several.
type AmbiguousRegionError struct {
	Count int
	Cells []string // A1 names, at most a handful
}

func (e *AmbiguousRegionError) Error() string {
	if len(e.Cells) == 0 {
		return fmt.Sprintf("expected exactly one cell, found %d", e.Count)
	}
	return fmt.Sprintf("expected exactly one cell, found %d (%s)", e.Count, strings.Join(e.Cells, ", "))
}
