package parser

import "github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/models"

// DataBounds returns the bounding box of non-blank cells. ok is false for a
// sheet with no data.
func DataBounds(s *models.Sheet) (area models.Area, ok bool) {
	minRow, maxRow, minCol, maxCol := -1, -1, -1, -1

	for r := 1; r <= s.Rows(); r++ {
		for c := 1; c <= s.Cols(); c++ {
			cell, _ := s.Cell(r, c)
			if cell.IsBlank() {
				continue
			}
			if minRow < 0 || r < minRow {
				minRow = r
			}
			if maxRow < 0 || r > maxRow {
				maxRow = r
			}
			if minCol < 0 || c < minCol {
				minCol = c
			}
			if maxCol < 0 || c > maxCol {
				maxCol = c
			}
		}
	}

	if minRow < 0 {
		return models.Area{}, false
	}
	return models.Area{R1: minRow, C1: minCol, R2: maxRow, C2: maxCol}, true
}

// CountNonBlank counts non-blank cells within area.
func CountNonBlank(s *models.Sheet, area models.Area) int {
	count := 0
	for r := area.R1; r <= area.R2; r++ {
		for c := area.C1; c <= area.C2; c++ {
			if cell, ok := s.Cell(r, c); ok && !cell.IsBlank() {
				count++
			}
		}
	}
	return count
}
