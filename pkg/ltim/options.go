// Package ltim converts the ONS long-term international migration age and sex
// table into tidy observations with published metadata.
package ltim

import (
	"time"

	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/internal/logging"
	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim/output"
)

const (
	// DatasetID is the path segment of the published dataset URIs.
	DatasetID = "ltim-age-sex"
	// DatasetTitle is the published dataset title.
	DatasetTitle = "LTIM time series, 1991 to 2016 Age and Sex"
	// DefaultWorksheet is the worksheet holding the age and sex estimates.
	DefaultWorksheet = "Table 2.07"
)

// Config configures a conversion run.
type Config struct {
	// SourceURL is a local path or http(s) URL of the xlsx workbook.
	SourceURL string `yaml:"source_url" envconfig:"SOURCE_URL" validate:"required"`
	// LandingPage is the publisher's page for the dataset.
	LandingPage string `yaml:"landing_page" envconfig:"LANDING_PAGE" validate:"omitempty,url"`
	Worksheet   string `yaml:"worksheet" envconfig:"WORKSHEET" validate:"required"`
	OutputDir   string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`

	Family        string `yaml:"family" envconfig:"FAMILY" validate:"omitempty,slug"`
	Theme         string `yaml:"theme" envconfig:"THEME" validate:"omitempty,slug"`
	License       string `yaml:"license" envconfig:"LICENSE" validate:"omitempty,url"`
	SchemaBaseURL string `yaml:"schema_base_url" envconfig:"SCHEMA_BASE_URL" validate:"required,url"`

	// SQLitePath enables the SQLite export when set.
	SQLitePath string `yaml:"sqlite_path" envconfig:"SQLITE_PATH"`

	Logging logging.Config `yaml:"logging" envconfig:"LOGGING"`
}

// DefaultConfig returns the configuration used for the published dataset.
// SourceURL is left empty.
func DefaultConfig() Config {
	return Config{
		LandingPage:   "https://www.ons.gov.uk/peoplepopulationandcommunity/populationandmigration/internationalmigration/datasets/longterminternationalmigrationageandsextable207",
		Worksheet:     DefaultWorksheet,
		OutputDir:     "out",
		Family:        "migration",
		Theme:         "population",
		License:       "http://www.nationalarchives.gov.uk/doc/open-government-licence/version/3/",
		SchemaBaseURL: "https://gss-cogs.github.io/ref_migration/",
		Logging: logging.Config{
			Level:  "info",
			Format: "json",
		},
	}
}

// Dataset returns the metadata written alongside the observations, issued at
// the given time.
func (c Config) Dataset(issued time.Time) output.Dataset {
	return output.Dataset{
		ID:          DatasetID,
		Title:       DatasetTitle,
		LandingPage: c.LandingPage,
		Family:      c.Family,
		Theme:       c.Theme,
		License:     c.License,
		Issued:      issued,
	}
}
