// Package region implements set operations over the cells of a sheet.
//
// A Region is an immutable set of cells bound to one sheet and kept in
// reading order (row, then column). Every operation returns a new Region and
// leaves its receiver untouched, so regions can be shared and chained:
//
//	corner, err := region.All(sheet).FilterText("Year").AssertOne()
//	years := corner.Fill(region.Down).IsNumber()
package region

import (
	"fmt"
	"sort"
	"strings"

	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/models"
	"github.com/xuri/excelize/v2"
)

type pos struct{ row, col int }

// Region is an ordered set of cells on a single sheet.
type Region struct {
	sheet *models.Sheet
	cells []models.Cell
}

// All returns every cell of the sheet.
func All(sheet *models.Sheet) Region {
	cells := make([]models.Cell, 0, sheet.Rows()*sheet.Cols())
	for r := 1; r <= sheet.Rows(); r++ {
		for c := 1; c <= sheet.Cols(); c++ {
			cell, _ := sheet.Cell(r, c)
			cells = append(cells, cell)
		}
	}
	return Region{sheet: sheet, cells: cells}
}

// Ref selects cells by A1 reference, either a single cell ("A1") or a range
// ("A1:C4"). Parts of the reference outside the sheet are ignored.
func Ref(sheet *models.Sheet, ref string) (Region, error) {
	area, err := ParseArea(ref)
	if err != nil {
		return Region{}, err
	}
	set := make(map[pos]struct{})
	for r := area.R1; r <= area.R2; r++ {
		for c := area.C1; c <= area.C2; c++ {
			set[pos{r, c}] = struct{}{}
		}
	}
	return build(sheet, set), nil
}

// ParseArea parses "A1" or "A1:C4" (optionally with $ markers) into an area.
func ParseArea(ref string) (models.Area, error) {
	ref = strings.ReplaceAll(strings.TrimSpace(ref), "$", "")
	parts := strings.Split(ref, ":")
	if len(parts) > 2 {
		return models.Area{}, fmt.Errorf("invalid cell reference %q", ref)
	}

	c1, r1, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.Area{}, fmt.Errorf("invalid cell reference %q: %w", ref, err)
	}
	c2, r2 := c1, r1
	if len(parts) == 2 {
		c2, r2, err = excelize.CellNameToCoordinates(parts[1])
		if err != nil {
			return models.Area{}, fmt.Errorf("invalid cell reference %q: %w", ref, err)
		}
	}
	if r2 < r1 {
		r1, r2 = r2, r1
	}
	if c2 < c1 {
		c1, c2 = c2, c1
	}
	return models.Area{R1: r1, C1: c1, R2: r2, C2: c2}, nil
}

// Of builds a region from explicit coordinates; cells outside the sheet are dropped.
func Of(sheet *models.Sheet, cells ...models.Cell) Region {
	set := make(map[pos]struct{}, len(cells))
	for _, c := range cells {
		set[pos{c.Row, c.Col}] = struct{}{}
	}
	return build(sheet, set)
}

// build materialises a region from a coordinate set, keeping only cells on
// the sheet and ordering them by row then column.
func build(sheet *models.Sheet, set map[pos]struct{}) Region {
	keys := make([]pos, 0, len(set))
	for p := range set {
		if sheet.Contains(p.row, p.col) {
			keys = append(keys, p)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].row != keys[j].row {
			return keys[i].row < keys[j].row
		}
		return keys[i].col < keys[j].col
	})

	cells := make([]models.Cell, len(keys))
	for i, p := range keys {
		cells[i], _ = sheet.Cell(p.row, p.col)
	}
	return Region{sheet: sheet, cells: cells}
}

// Sheet returns the sheet the region belongs to.
func (r Region) Sheet() *models.Sheet {
	return r.sheet
}

// Len returns the number of cells in the region.
func (r Region) Len() int {
	return len(r.cells)
}

// Cells returns a copy of the region's cells in reading order.
func (r Region) Cells() []models.Cell {
	out := make([]models.Cell, len(r.cells))
	copy(out, r.cells)
	return out
}

// Contains reports whether the region holds the cell at (row, col).
func (r Region) Contains(row, col int) bool {
	i := sort.Search(len(r.cells), func(i int) bool {
		c := r.cells[i]
		return c.Row > row || (c.Row == row && c.Col >= col)
	})
	return i < len(r.cells) && r.cells[i].Row == row && r.cells[i].Col == col
}

// Filter keeps the cells matching p.
func (r Region) Filter(p Predicate) Region {
	out := make([]models.Cell, 0, len(r.cells))
	for _, c := range r.cells {
		if p(c) {
			out = append(out, c)
		}
	}
	return Region{sheet: r.sheet, cells: out}
}

// FilterText keeps cells whose trimmed text equals s.
func (r Region) FilterText(s string) Region { return r.Filter(Equals(s)) }

// IsNotBlank keeps cells with a value.
func (r Region) IsNotBlank() Region { return r.Filter(IsNotBlank) }

// IsNotWhitespace drops whitespace-only string cells.
func (r Region) IsNotWhitespace() Region { return r.Filter(IsNotWhitespace) }

// IsNumber keeps numeric cells.
func (r Region) IsNumber() Region { return r.Filter(IsNumber) }

// OneOf keeps cells whose trimmed text is one of values.
func (r Region) OneOf(values ...string) Region { return r.Filter(OneOf(values...)) }

// Shift moves every cell one step in d, dropping cells that would leave the sheet.
func (r Region) Shift(d Direction) Region {
	dr, dc := d.Delta()
	set := make(map[pos]struct{}, len(r.cells))
	for _, c := range r.cells {
		set[pos{c.Row + dr, c.Col + dc}] = struct{}{}
	}
	return build(r.sheet, set)
}

// Expand adds, for every cell, all cells further along d up to the sheet edge.
func (r Region) Expand(d Direction) Region {
	dr, dc := d.Delta()
	set := make(map[pos]struct{}, len(r.cells))
	for _, c := range r.cells {
		for row, col := c.Row, c.Col; r.sheet.Contains(row, col); row, col = row+dr, col+dc {
			p := pos{row, col}
			if _, seen := set[p]; seen && (row != c.Row || col != c.Col) {
				// Another cell on this line already walked the rest of it.
				break
			}
			set[p] = struct{}{}
		}
	}
	return build(r.sheet, set)
}

// Fill is Expand without the original cells: the cells strictly beyond the
// region in direction d. It does not stop at blanks; chain IsNotBlank for that.
func (r Region) Fill(d Direction) Region {
	return r.Expand(d).Difference(r)
}

// AssertOne returns the region unchanged when it holds exactly one cell.
func (r Region) AssertOne() (Region, error) {
	if len(r.cells) == 1 {
		return r, nil
	}
	err := &AmbiguousRegionError{Count: len(r.cells)}
	for i, c := range r.cells {
		if i == 5 {
			break
		}
		err.Cells = append(err.Cells, c.Ref())
	}
	return r, err
}

// Union returns the cells in r or other.
func (r Region) Union(other Region) Region {
	sheet := r.sheet
	if sheet == nil {
		sheet = other.sheet
	}
	if sheet == nil {
		return Region{}
	}
	set := r.set()
	for _, c := range other.cells {
		set[pos{c.Row, c.Col}] = struct{}{}
	}
	return build(sheet, set)
}

// Difference returns the cells in r that are not in other.
func (r Region) Difference(other Region) Region {
	return r.Filter(func(c models.Cell) bool { return !other.Contains(c.Row, c.Col) })
}

// Intersect returns the cells present in both r and other.
func (r Region) Intersect(other Region) Region {
	return r.Filter(func(c models.Cell) bool { return other.Contains(c.Row, c.Col) })
}

func (r Region) set() map[pos]struct{} {
	set := make(map[pos]struct{}, len(r.cells))
	for _, c := range r.cells {
		set[pos{c.Row, c.Col}] = struct{}{}
	}
	return set
}
