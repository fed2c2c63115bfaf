package output

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/tidy"
)

const (
	sdmxDimension = "http://purl.org/linked-data/sdmx/2009/dimension#"
	sdmxAttribute = "http://purl.org/linked-data/sdmx/2009/attribute#"
	sdmxCode      = "http://purl.org/linked-data/sdmx/2009/code#"
	qbMeasureType = "http://purl.org/linked-data/cube#measureType"
	gssMeasure    = "http://gss-data.org.uk/def/measure/"
)

// Schema is a CSV on the Web table description.
type Schema struct {
	Context     []interface{} `json:"@context"`
	URL         string        `json:"url"`
	TableSchema TableSchema   `json:"tableSchema"`
}

// TableSchema describes the columns of the CSV file.
type TableSchema struct {
	Columns  []SchemaColumn `json:"columns"`
	AboutURL string         `json:"aboutUrl,omitempty"`
}

// SchemaColumn describes one CSV column.
type SchemaColumn struct {
	Titles      string `json:"titles"`
	Name        string `json:"name"`
	Required    bool   `json:"required"`
	PropertyURL string `json:"propertyUrl,omitempty"`
	ValueURL    string `json:"valueUrl,omitempty"`
	Datatype    string `json:"datatype,omitempty"`
}

// ColumnName returns the CSVW variable name for a column title.
func ColumnName(title string) string {
	return strings.ReplaceAll(tidy.Pathify(title), "-", "_")
}

// BuildSchema describes columns of csvName, with local terms under baseURL.
func BuildSchema(csvName string, columns []string, baseURL string) Schema {
	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	s := Schema{
		Context: []interface{}{"http://www.w3.org/ns/csvw", map[string]string{"@language": "en"}},
		URL:     csvName,
	}

	var about []string
	for _, title := range columns {
		col := describeColumn(title, baseURL)
		s.TableSchema.Columns = append(s.TableSchema.Columns, col)
		switch title {
		case tidy.ColumnValue, tidy.ColumnUnit, tidy.ColumnCI:
		default:
			about = append(about, "{"+col.Name+"}")
		}
	}
	if len(about) > 0 {
		s.TableSchema.AboutURL = baseURL + "data/" + strings.Join(about, "/")
	}
	return s
}

func describeColumn(title, baseURL string) SchemaColumn {
	name := ColumnName(title)
	slug := tidy.Pathify(title)
	col := SchemaColumn{Titles: title, Name: name, Required: true}

	switch title {
	case tidy.ColumnGeography:
		col.PropertyURL = sdmxDimension + "refArea"
		col.ValueURL = "http://statistics.data.gov.uk/id/statistical-geography/{" + name + "}"
	case tidy.ColumnYear:
		col.PropertyURL = sdmxDimension + "refPeriod"
		col.ValueURL = "http://reference.data.gov.uk/id/year/{" + name + "}"
	case tidy.ColumnSex:
		col.PropertyURL = sdmxDimension + "sex"
		col.ValueURL = sdmxCode + "sex-{" + name + "}"
	case tidy.ColumnValue:
		col.PropertyURL = gssMeasure + "{" + ColumnName(tidy.ColumnMeasureType) + "}"
		col.Datatype = "integer"
	case tidy.ColumnMeasureType:
		col.PropertyURL = qbMeasureType
		col.ValueURL = gssMeasure + "{" + name + "}"
	case tidy.ColumnUnit:
		col.PropertyURL = sdmxAttribute + "unitMeasure"
		col.Datatype = "string"
	case tidy.ColumnCI, tidy.ColumnRevision:
		col.Required = false
		col.PropertyURL = baseURL + "attribute/" + slug
		col.Datatype = "string"
	default:
		col.PropertyURL = baseURL + "dimension/" + slug
		col.ValueURL = baseURL + "concept/" + slug + "/{" + name + "}"
	}
	return col
}

// WriteSchema writes the CSVW descriptor for csvName and returns the file path.
func (w *Writer) WriteSchema(name, csvName string, columns []string, baseURL string) (string, error) {
	data, err := json.MarshalIndent(BuildSchema(csvName, columns, baseURL), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode schema: %w", err)
	}

	f, path, err := w.create(name)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return "", fmt.Errorf("failed to write schema: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	w.logger.Info("Wrote CSVW schema",
		slog.String("path", path),
		slog.Int("column_count", len(columns)))
	return path, nil
}
