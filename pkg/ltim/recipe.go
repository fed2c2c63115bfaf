package ltim

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/dimension"
	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/models"
	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/region"
	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/tidy"
)

// Header labels looked up on the worksheet.
const (
	labelCorner        = "Year"
	labelEstimate      = "Estimate"
	labelOriginals     = "Original Estimates"
	labelSignificant   = "Significant Change"
	labelSignificantDn = "Statistically Significant Decrease"
)

const (
	measureCount  = "Count"
	unitThousands = "People (thousands)"
)

// ageOverrides fixes footnote markers and casing in the age headers.
var ageOverrides = [][2]string{
	{"45-59/642", "45-59/64"},
	{"60/65 and over3", "60/65 and over"},
	{"All Ages", "All ages"},
}

// BuildSegments selects the revised and original estimate cells of the
// worksheet and the dimensions describing them.
func BuildSegments(sheet *models.Sheet) (revised, original dimension.Segment, err error) {
	tab := region.All(sheet)

	corner, err := tab.FilterText(labelCorner).AssertOne()
	if err != nil {
		return revised, original, fmt.Errorf("locating %q header: %w", labelCorner, err)
	}

	observations := corner.Shift(region.Right).Fill(region.Down).FilterText(labelEstimate).
		Expand(region.Right).FilterText(labelEstimate).
		Fill(region.Down).
		IsNotBlank().
		IsNotWhitespace().
		Filter(region.Not(region.ContainsString(labelSignificantDn)))

	a1, err := region.Ref(sheet, "A1")
	if err != nil {
		return revised, original, err
	}
	significant := a1.Expand(region.Down).Filter(region.ContainsString(labelSignificant)).Expand(region.Right)
	observations = observations.Difference(significant)

	originals := tab.Filter(region.ContainsString(labelOriginals)).Fill(region.Down).IsNumber()
	observations = observations.Difference(originals)

	year := corner.Fill(region.Down).Intersect(observations.Fill(region.Left))
	geography := corner.Fill(region.Down).OneOf("United Kingdom", "England and Wales")
	ages := corner.Fill(region.Right).IsNotBlank()
	sexes := corner.Shift(region.Down).Fill(region.Right).IsNotBlank()
	flows := corner.Fill(region.Down).OneOf("Inflow", "Outflow", "Balance")

	age := dimension.New(ages, tidy.ColumnAge, dimension.Closest, region.Left)
	for _, o := range ageOverrides {
		age = age.WithOverride(o[0], o[1])
	}

	common := []dimension.Dimension{
		dimension.New(year, tidy.ColumnYear, dimension.Directly, region.Left),
		dimension.New(geography, tidy.ColumnGeography, dimension.Closest, region.Above),
		age,
		dimension.New(sexes, tidy.ColumnSex, dimension.Closest, region.Left),
		dimension.New(flows, tidy.ColumnMigrationFlow, dimension.Closest, region.Above),
		dimension.Const(tidy.ColumnMeasureType, measureCount),
		dimension.Const(tidy.ColumnUnit, unitThousands),
	}

	revised = dimension.Segment{
		Observations: observations,
		Dimensions: append(append([]dimension.Dimension{}, common...),
			dimension.New(observations.Shift(region.Right), tidy.ColumnCI, dimension.Directly, region.Right)),
	}
	original = dimension.Segment{
		Observations: originals,
		Dimensions: append(append([]dimension.Dimension{}, common...),
			dimension.New(originals.Shift(region.Right), tidy.ColumnCI, dimension.Directly, region.Right),
			dimension.Const(tidy.ColumnRevision, tidy.RevisionOriginal)),
	}
	return revised, original, nil
}

// Transform turns the worksheet into the cleaned observations table.
func Transform(sheet *models.Sheet) (models.Table, error) {
	return transform(sheet, slog.New(slog.NewTextHandler(io.Discard, nil)))
}
