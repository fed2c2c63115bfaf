package dimension

import (
	"strings"

	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/models"
	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/region"
)

// Segment pairs a set of observation cells with the dimensions that describe them.
type Segment struct {
	Observations region.Region
	Dimensions   []Dimension
}

// Table resolves every dimension for every observation and returns one record
// per observation cell, in reading order. The first resolution failure aborts
// the whole segment.
func (s Segment) Table() (models.Table, error) {
	obs := s.Observations.Cells()
	records := make([]models.Record, 0, len(obs))
	hasMarker := false

	for _, o := range obs {
		rec := make(models.Record, len(s.Dimensions)+2)
		switch {
		case o.IsNumber():
			rec[models.ObservationColumn] = o.Text()
		case o.IsBlank():
			rec[models.ObservationColumn] = ""
		default:
			rec[models.ObservationColumn] = ""
			rec[models.DataMarkerColumn] = strings.TrimSpace(o.Text())
			hasMarker = true
		}

		for _, d := range s.Dimensions {
			v, err := d.Resolve(o)
			if err != nil {
				return models.Table{}, err
			}
			rec[d.Name] = v
		}
		records = append(records, rec)
	}

	columns := []string{models.ObservationColumn}
	if hasMarker {
		columns = append(columns, models.DataMarkerColumn)
	}
	for _, d := range s.Dimensions {
		columns = append(columns, d.Name)
	}

	return models.Table{Columns: columns, Records: records}, nil
}
