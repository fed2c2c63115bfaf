package tidy

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/models"
)

// GeographyCodes maps geography labels to ONS GSS codes.
func GeographyCodes() map[string]string {
	return map[string]string{
		"United Kingdom":    "K02000001",
		"England and Wales": "K04000001",
	}
}

// AgeCodes maps age band labels to codelist notations.
func AgeCodes() map[string]string {
	return map[string]string{
		"15-24":          "agr/15-24",
		"25-44":          "agr/25-44",
		"45-59/64":       "agr/45-59-or-64",
		"60/65 and over": "agr/60-or-65-and-over",
		"All ages":       "all",
		"Under 15":       "agr/under-15",
	}
}

// SexCodes maps sex labels to SDMX sex codes.
func SexCodes() map[string]string {
	return map[string]string{
		"Females": "F",
		"Males":   "M",
		"Persons": "T",
	}
}

// Recode replaces values of column found in mapping. Values without an entry
// are left exactly as they were.
func Recode(t models.Table, column string, mapping map[string]string) models.Table {
	return RecodeFunc(t, column, func(v string) string {
		if code, ok := mapping[v]; ok {
			return code
		}
		return v
	})
}

// RecodeFunc applies fn to every present value of column. Records missing the
// column are passed through.
func RecodeFunc(t models.Table, column string, fn func(string) string) models.Table {
	out := withColumn(t, "")
	for i, r := range t.Records {
		v, ok := r.Get(column)
		if !ok {
			out.Records[i] = r
			continue
		}
		out.Records[i] = r.With(column, fn(v))
	}
	return out
}

var (
	nonPathRE = regexp.MustCompile(`[^\p{L}\p{N}_/]`)
	dashesRE  = regexp.MustCompile(`-+`)
	foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Pathify turns a label into a URI path segment: accents folded, lower case,
// anything other than letters, digits, "_" and "/" replaced by single dashes,
// and no trailing dash.
func Pathify(label string) string {
	folded, _, err := transform.String(foldMarks, label)
	if err != nil {
		folded = label
	}
	s := nonPathRE.ReplaceAllString(strings.ToLower(folded), "-")
	s = dashesRE.ReplaceAllString(s, "-")
	return strings.TrimSuffix(s, "-")
}
