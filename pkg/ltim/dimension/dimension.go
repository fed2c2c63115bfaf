// Package dimension resolves, for each observation cell, the header cells
// that supply its dimension values.
package dimension

import (
	"strings"

	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/models"
	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/region"
)

// Lookup selects how a header cell is matched to an observation.
type Lookup int

const (
	// Directly takes the nearest header on the observation's own row
	// (Left/Right) or column (Above/Down).
	Directly Lookup = iota
	// Closest takes the nearest header along the scan axis, whatever its
	// position on the other axis.
	Closest
)

func (l Lookup) String() string {
	if l == Directly {
		return "directly"
	}
	return "closest"
}

// Dimension is a named lookup rule, or a constant value.
type Dimension struct {
	// Name is the output column name.
	Name string

	header    region.Region
	lookup    Lookup
	direction region.Direction
	constant  bool
	value     string
	overrides map[string]string
}

// New returns a dimension that looks values up in header.
func New(header region.Region, name string, lookup Lookup, direction region.Direction) Dimension {
	return Dimension{
		Name:      name,
		header:    header,
		lookup:    lookup,
		direction: direction,
	}
}

// Const returns a dimension with the same value for every observation.
func Const(name, value string) Dimension {
	return Dimension{Name: name, constant: true, value: value}
}

// WithOverride returns a copy of d that reports canonical whenever the
// resolved header text is raw.
func (d Dimension) WithOverride(raw, canonical string) Dimension {
	overrides := make(map[string]string, len(d.overrides)+1)
	for k, v := range d.overrides {
		overrides[k] = v
	}
	overrides[raw] = canonical
	d.overrides = overrides
	return d
}

// Header returns the region the dimension reads its values from.
func (d Dimension) Header() region.Region {
	return d.header
}

// Resolve returns the dimension value for the observation cell obs.
func (d Dimension) Resolve(obs models.Cell) (string, error) {
	if d.constant {
		return d.value, nil
	}

	var (
		hdr models.Cell
		err error
	)
	if d.lookup == Directly {
		hdr, err = d.direct(obs)
	} else {
		hdr, err = d.closest(obs)
	}
	if err != nil {
		return "", &UnresolvedDimensionError{
			Dimension: d.Name,
			Cell:      obs.Ref(),
			Lookup:    d.lookup,
			Direction: d.direction,
			Err:       err,
		}
	}

	text := strings.TrimSpace(hdr.Text())
	if canonical, ok := d.overrides[text]; ok {
		return canonical, nil
	}
	return text, nil
}

// direct walks from obs one cell at a time and returns the first header cell
// met on the exact row or column.
func (d Dimension) direct(obs models.Cell) (models.Cell, error) {
	sheet := d.header.Sheet()
	if sheet == nil {
		return models.Cell{}, ErrNoDirectValue
	}
	dr, dc := d.direction.Delta()
	for row, col := obs.Row+dr, obs.Col+dc; sheet.Contains(row, col); row, col = row+dr, col+dc {
		if d.header.Contains(row, col) {
			c, _ := sheet.Cell(row, col)
			return c, nil
		}
	}
	return models.Cell{}, ErrNoDirectValue
}

// closest returns the header cell nearest to obs along the scan axis, at or
// beyond obs in the lookup direction. Ties go to the smaller distance on the
// other axis, then to reading order.
func (d Dimension) closest(obs models.Cell) (models.Cell, error) {
	var (
		best      models.Cell
		bestAxis  = -1
		bestCross int
	)
	for _, h := range d.header.Cells() {
		if h.Row == obs.Row && h.Col == obs.Col {
			continue
		}
		axis, cross, ok := d.offsets(obs, h)
		if !ok {
			continue
		}
		if bestAxis < 0 || axis < bestAxis || (axis == bestAxis && cross < bestCross) {
			best, bestAxis, bestCross = h, axis, cross
		}
	}
	if bestAxis < 0 {
		return models.Cell{}, ErrNoClosestValue
	}
	return best, nil
}

// offsets reports how far h lies from obs along the scan axis and across it,
// and whether h is on the scanned side.
func (d Dimension) offsets(obs, h models.Cell) (axis, cross int, ok bool) {
	switch d.direction {
	case region.Left:
		axis, cross = obs.Col-h.Col, abs(h.Row-obs.Row)
	case region.Right:
		axis, cross = h.Col-obs.Col, abs(h.Row-obs.Row)
	case region.Above:
		axis, cross = obs.Row-h.Row, abs(h.Col-obs.Col)
	case region.Down:
		axis, cross = h.Row-obs.Row, abs(h.Col-obs.Col)
	}
	return axis, cross, axis >= 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
