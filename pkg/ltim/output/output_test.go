package output

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/models"
	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/tidy"
)

func sampleTable() models.Table {
	return models.Table{
		Columns: tidy.Schema,
		Records: []models.Record{
			{"Geography": "K02000001", "Year": "1991", "Age": "all", "Sex": "T", "Migration Flow": "inflow", "Value": "329", "Measure Type": "Count", "Unit": "People (thousands)", "CI": "23", "Revision": "Original Estimate"},
			{"Geography": "K04000001", "Year": "2001", "Age": "agr/15-24", "Sex": "F", "Migration Flow": "balance", "Value": "-4", "Measure Type": "Count", "Unit": "People (thousands)", "CI": "", "Revision": "2011 Census Revision"},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w := NewWriter(dir, nil)

	path, err := w.WriteCSV(ObservationsFile, sampleTable())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ObservationsFile), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, tidy.Schema, rows[0])
	assert.Equal(t, []string{"K04000001", "2001", "agr/15-24", "F", "balance", "-4", "Count", "People (thousands)", "", "2011 Census Revision"}, rows[2])
}

func TestBuildSchema(t *testing.T) {
	s := BuildSchema(ObservationsFile, tidy.Schema, "https://gss-cogs.github.io/ref_migration")

	assert.Equal(t, ObservationsFile, s.URL)
	require.Len(t, s.TableSchema.Columns, len(tidy.Schema))

	byName := map[string]SchemaColumn{}
	for _, c := range s.TableSchema.Columns {
		byName[c.Name] = c
	}
	assert.Equal(t, "Migration Flow", byName["migration_flow"].Titles)
	assert.Equal(t, "https://gss-cogs.github.io/ref_migration/dimension/migration-flow", byName["migration_flow"].PropertyURL)
	assert.Equal(t, "https://gss-cogs.github.io/ref_migration/concept/age/{age}", byName["age"].ValueURL)
	assert.Equal(t, "http://gss-data.org.uk/def/measure/{measure_type}", byName["value"].PropertyURL)
	assert.Equal(t, "integer", byName["value"].Datatype)
	assert.False(t, byName["ci"].Required)
	assert.Equal(t,
		"https://gss-cogs.github.io/ref_migration/data/{geography}/{year}/{age}/{sex}/{migration_flow}/{measure_type}/{revision}",
		s.TableSchema.AboutURL)
}

func TestWriteSchema(t *testing.T) {
	w := NewWriter(t.TempDir(), nil)
	path, err := w.WriteSchema(SchemaFile, ObservationsFile, tidy.Schema, "https://gss-cogs.github.io/ref_migration/")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ObservationsFile, decoded["url"])
	assert.Contains(t, decoded, "@context")
	assert.Contains(t, decoded, "tableSchema")
}

func TestRenderTriG(t *testing.T) {
	body, err := RenderTriG(Dataset{
		ID:          "ltim-age-sex",
		Title:       `LTIM "age" and sex`,
		LandingPage: "https://www.ons.gov.uk/example",
		Family:      "migration",
		Theme:       "population",
		License:     "http://www.nationalarchives.gov.uk/doc/open-government-licence/version/3/",
		Issued:      time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Contains(t, body, "<http://gss-data.org.uk/graph/ltim-age-sex/metadata> {")
	assert.Contains(t, body, "<http://gss-data.org.uk/data/ltim-age-sex> a dcat:Dataset ;")
	assert.Contains(t, body, `dct:title "LTIM \"age\" and sex"@en ;`)
	assert.Contains(t, body, `dct:issued "2026-10-19"^^xsd:date ;`)
	assert.Contains(t, body, "gdp:family gdp:migration ;")
	assert.Contains(t, body, "dcat:theme <http://gss-data.org.uk/def/concept/statistics-authority-themes/population> ;")
	assert.Contains(t, body, "dct:license <http://www.nationalarchives.gov.uk/doc/open-government-licence/version/3/> ;")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(body), "}"))
}

func TestRenderTriGOptionalFields(t *testing.T) {
	body, err := RenderTriG(Dataset{ID: "x", Title: "X"})
	require.NoError(t, err)
	assert.NotContains(t, body, "dct:issued")
	assert.NotContains(t, body, "dcat:theme")
	assert.Contains(t, body, "dct:publisher <"+onsPublisher+"> .")

	_, err = RenderTriG(Dataset{Title: "no id"})
	assert.Error(t, err)
}

func TestWriteSQLite(t *testing.T) {
	w := NewWriter(t.TempDir(), nil)
	path := w.Path("observations.sqlite")
	require.NoError(t, w.WriteSQLite(path, sampleTable()))
	// A second write replaces the database instead of appending.
	require.NoError(t, w.WriteSQLite(path, sampleTable()))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM observations`).Scan(&count))
	assert.Equal(t, 2, count)

	var sum int
	require.NoError(t, db.QueryRow(`SELECT SUM("Value") FROM observations`).Scan(&sum))
	assert.Equal(t, 325, sum)

	var ci sql.NullString
	require.NoError(t, db.QueryRow(`SELECT "CI" FROM observations WHERE "Year" = 2001`).Scan(&ci))
	assert.Equal(t, "", ci.String)
}

func TestWriteSQLiteUnremovablePath(t *testing.T) {
	w := NewWriter(t.TempDir(), nil)
	// A non-empty directory cannot be removed to make way for the database.
	path := w.Path("observations.sqlite")
	require.NoError(t, os.MkdirAll(path, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "keep"), []byte("x"), 0644))

	err := w.WriteSQLite(path, sampleTable())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to replace database")
}

func TestRenderTriGRejectsUnsafeNames(t *testing.T) {
	tests := []struct {
		name string
		d    Dataset
	}{
		{"family with space", Dataset{ID: "x", Family: "inter national"}},
		{"theme with slash", Dataset{ID: "x", Theme: "population/../x"}},
		{"theme with bracket", Dataset{ID: "x", Theme: "pop>"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RenderTriG(tt.d)
			assert.Error(t, err)
		})
	}
}

func TestValidSlug(t *testing.T) {
	assert.True(t, ValidSlug("migration"))
	assert.True(t, ValidSlug("health-social-care"))
	assert.False(t, ValidSlug("Migration"))
	assert.False(t, ValidSlug("a--b"))
	assert.False(t, ValidSlug("a b"))
	assert.False(t, ValidSlug(""))
}
