package output

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"text/template"
	"time"
)

const (
	dataBaseURI  = "http://gss-data.org.uk/data/"
	graphBaseURI = "http://gss-data.org.uk/graph/"
	themeBaseURI = "http://gss-data.org.uk/def/concept/statistics-authority-themes/"
	onsPublisher = "https://www.gov.uk/government/organisations/office-for-national-statistics"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidSlug reports whether s can be used as a family name or theme path
// segment: lowercase letters and digits joined by single hyphens.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// Dataset holds the metadata published alongside the observations.
type Dataset struct {
	// ID is the dataset path segment, e.g. "ltim-age-sex".
	ID          string
	Title       string
	LandingPage string
	Family      string
	Theme       string
	License     string
	Publisher   string
	// Issued is omitted when zero.
	Issued time.Time
}

var trigTemplate = template.Must(template.New("trig").Funcs(template.FuncMap{
	"literal": trigLiteral,
}).Parse(`@prefix dcat: <http://www.w3.org/ns/dcat#> .
@prefix dct: <http://purl.org/dc/terms/> .
@prefix gdp: <http://gss-data.org.uk/def/gdp#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .

<{{.Graph}}> {
    <{{.Dataset}}> a dcat:Dataset ;
        rdfs:label {{literal .Title}}@en ;
        dct:title {{literal .Title}}@en ;
{{- if .Issued}}
        dct:issued "{{.Issued}}"^^xsd:date ;
{{- end}}
{{- if .LandingPage}}
        dcat:landingPage <{{.LandingPage}}> ;
{{- end}}
{{- if .License}}
        dct:license <{{.License}}> ;
{{- end}}
{{- if .Theme}}
        dcat:theme <{{.Theme}}> ;
{{- end}}
{{- if .Family}}
        gdp:family gdp:{{.Family}} ;
{{- end}}
        dct:publisher <{{.Publisher}}> .
}
`))

type trigView struct {
	Graph       string
	Dataset     string
	Title       string
	Issued      string
	LandingPage string
	License     string
	Theme       string
	Family      string
	Publisher   string
}

// trigLiteral quotes s as a Turtle string literal.
func trigLiteral(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)
	return `"` + r.Replace(s) + `"`
}

// RenderTriG renders the dataset metadata as TriG.
func RenderTriG(d Dataset) (string, error) {
	if d.ID == "" {
		return "", fmt.Errorf("dataset id is required")
	}
	if d.Family != "" && !ValidSlug(d.Family) {
		return "", fmt.Errorf("invalid dataset family %q", d.Family)
	}
	if d.Theme != "" && !ValidSlug(d.Theme) {
		return "", fmt.Errorf("invalid dataset theme %q", d.Theme)
	}
	v := trigView{
		Graph:       graphBaseURI + d.ID + "/metadata",
		Dataset:     dataBaseURI + d.ID,
		Title:       d.Title,
		LandingPage: d.LandingPage,
		License:     d.License,
		Family:      d.Family,
		Publisher:   d.Publisher,
	}
	if v.Publisher == "" {
		v.Publisher = onsPublisher
	}
	if d.Theme != "" {
		v.Theme = themeBaseURI + d.Theme
	}
	if !d.Issued.IsZero() {
		v.Issued = d.Issued.Format("2006-01-02")
	}

	var b strings.Builder
	if err := trigTemplate.Execute(&b, v); err != nil {
		return "", fmt.Errorf("failed to render metadata: %w", err)
	}
	return b.String(), nil
}

// WriteTriG writes the dataset metadata and returns the file path.
func (w *Writer) WriteTriG(name string, d Dataset) (string, error) {
	body, err := RenderTriG(d)
	if err != nil {
		return "", err
	}

	f, path, err := w.create(name)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.WriteString(body); err != nil {
		return "", fmt.Errorf("failed to write metadata: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	w.logger.Info("Wrote dataset metadata",
		slog.String("path", path),
		slog.String("dataset", d.ID))
	return path, nil
}
