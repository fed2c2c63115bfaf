package dimension

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/models"
	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/region"
)

// fixture is a small Table 2.07 block:
//
//	   A               B          C     D          E
//	1  Year            All ages         45-59/642
//	2                  Persons          Males
//	3                  Estimate   CI    Estimate   CI
//	4  United Kingdom
//	5  Inflow
//	6  1991            100        5     50         :
//	7  1992            110        6     z          3
func fixture() *models.Sheet {
	return models.NewSheet("Table 2.07", [][]interface{}{
		{"Year", "All ages", nil, "45-59/642", nil},
		{nil, "Persons", nil, "Males", nil},
		{nil, "Estimate", "CI", "Estimate", "CI"},
		{"United Kingdom"},
		{"Inflow"},
		{1991, 100, 5, 50, ":"},
		{1992, 110, 6, "z", 3},
	})
}

func cell(t *testing.T, s *models.Sheet, ref string) models.Cell {
	t.Helper()
	r, err := region.Ref(s, ref)
	require.NoError(t, err)
	one, err := r.AssertOne()
	require.NoError(t, err)
	return one.Cells()[0]
}

func ref(t *testing.T, s *models.Sheet, ref string) region.Region {
	t.Helper()
	r, err := region.Ref(s, ref)
	require.NoError(t, err)
	return r
}

func TestResolve(t *testing.T) {
	s := fixture()
	obs := ref(t, s, "B6:B7").Union(ref(t, s, "D6:D7"))

	year := New(ref(t, s, "A6:A7"), "Year", Directly, region.Left)
	geo := New(ref(t, s, "A4"), "Geography", Closest, region.Above)
	age := New(ref(t, s, "B1:E1").IsNotBlank(), "Age", Closest, region.Left)
	sex := New(ref(t, s, "B2:E2").IsNotBlank(), "Sex", Closest, region.Left)
	ci := New(obs.Shift(region.Right), "CI", Directly, region.Right)

	tests := []struct {
		name     string
		dim      Dimension
		cell     string
		expected string
	}{
		{"year directly left", year, "D7", "1992.0"},
		{"geography closest above", geo, "D6", "United Kingdom"},
		{"age same column", age, "D6", "45-59/642"},
		{"age further left", age, "B7", "All ages"},
		{"sex", sex, "D7", "Males"},
		{"ci numeric", ci, "B6", "5.0"},
		{"ci placeholder", ci, "D6", ":"},
		{"constant", Const("Unit", "People (thousands)"), "B6", "People (thousands)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.dim.Resolve(cell(t, s, tt.cell))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveOverride(t *testing.T) {
	s := fixture()
	age := New(ref(t, s, "B1:E1").IsNotBlank(), "Age", Closest, region.Left)
	overridden := age.WithOverride("45-59/642", "45-59/64")

	got, err := overridden.Resolve(cell(t, s, "D6"))
	require.NoError(t, err)
	assert.Equal(t, "45-59/64", got)

	got, err = age.Resolve(cell(t, s, "D6"))
	require.NoError(t, err)
	assert.Equal(t, "45-59/642", got, "WithOverride must not change the original dimension")
}

func TestDirectlyStaysOnLine(t *testing.T) {
	s := fixture()
	// The only header sits one row above the observation's row.
	year := New(ref(t, s, "A5"), "Year", Directly, region.Left)

	_, err := year.Resolve(cell(t, s, "B6"))
	var unresolved *UnresolvedDimensionError
	require.True(t, errors.As(err, &unresolved))
	assert.Equal(t, "Year", unresolved.Dimension)
	assert.Equal(t, "B6", unresolved.Cell)
	assert.ErrorIs(t, err, ErrNoDirectValue)

	// Closest ignores the other axis and finds it.
	got, err := New(ref(t, s, "A5"), "Flow", Closest, region.Left).Resolve(cell(t, s, "B6"))
	require.NoError(t, err)
	assert.Equal(t, "Inflow", got)
}

func TestDirectlyTakesFirstOnLine(t *testing.T) {
	s := fixture()
	hdr := ref(t, s, "A6:C6")
	got, err := New(hdr, "Nearest", Directly, region.Left).Resolve(cell(t, s, "D6"))
	require.NoError(t, err)
	assert.Equal(t, "5.0", got)
}

func TestClosest(t *testing.T) {
	s := fixture()

	t.Run("nearest row wins", func(t *testing.T) {
		hdr := ref(t, s, "A4:A5")
		got, err := New(hdr, "Label", Closest, region.Above).Resolve(cell(t, s, "C7"))
		require.NoError(t, err)
		assert.Equal(t, "Inflow", got)
	})

	t.Run("tie broken by distance across", func(t *testing.T) {
		hdr := ref(t, s, "B3:E3")
		got, err := New(hdr, "Kind", Closest, region.Above).Resolve(cell(t, s, "E6"))
		require.NoError(t, err)
		assert.Equal(t, "CI", got)
	})

	t.Run("nothing on scanned side", func(t *testing.T) {
		hdr := ref(t, s, "E1:E2")
		_, err := New(hdr, "Age", Closest, region.Left).Resolve(cell(t, s, "B6"))
		assert.ErrorIs(t, err, ErrNoClosestValue)
	})

	t.Run("empty header region", func(t *testing.T) {
		hdr := ref(t, s, "A1:E7").FilterText("Nope")
		_, err := New(hdr, "Age", Closest, region.Down).Resolve(cell(t, s, "B6"))
		var unresolved *UnresolvedDimensionError
		assert.True(t, errors.As(err, &unresolved))
	})
}

func TestSegmentTable(t *testing.T) {
	s := fixture()
	obs := ref(t, s, "B6:B7").Union(ref(t, s, "D6:D7"))

	seg := Segment{
		Observations: obs,
		Dimensions: []Dimension{
			New(ref(t, s, "A6:A7"), "Year", Directly, region.Left),
			New(ref(t, s, "A4"), "Geography", Closest, region.Above),
			New(obs.Shift(region.Right), "CI", Directly, region.Right),
			Const("Measure Type", "Count"),
		},
	}

	table, err := seg.Table()
	require.NoError(t, err)
	assert.Equal(t, []string{"OBS", "DATAMARKER", "Year", "Geography", "CI", "Measure Type"}, table.Columns)
	require.Len(t, table.Records, 4)

	// Reading order: B6, D6, B7, D7.
	assert.Equal(t, "100.0", table.Records[0]["OBS"])
	assert.Equal(t, "5.0", table.Records[0]["CI"])
	assert.Equal(t, ":", table.Records[1]["CI"])
	assert.Equal(t, "1992.0", table.Records[3]["Year"])

	_, ok := table.Records[0].Get("DATAMARKER")
	assert.False(t, ok)
	assert.Equal(t, "", table.Records[3]["OBS"])
	assert.Equal(t, "z", table.Records[3]["DATAMARKER"])
}

func TestSegmentAbortsOnFailure(t *testing.T) {
	s := fixture()
	seg := Segment{
		Observations: ref(t, s, "B6:B7"),
		Dimensions: []Dimension{
			New(ref(t, s, "A7"), "Year", Directly, region.Left),
		},
	}

	table, err := seg.Table()
	assert.Error(t, err)
	assert.Empty(t, table.Records)
}
