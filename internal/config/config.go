// Package config provides configuration management for the maternity data
// pipeline: per-year source files, population reference layout, measure role
// mappings and region display order.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrNoYears               = errors.New("at least one year is required")
	ErrYearMissingDataFile   = errors.New("data_file is required")
	ErrYearMissingPopFile    = errors.New("population.file is required")
	ErrYearMissingPopSheet   = errors.New("population.sheet is required")
	ErrYearMissingPopColumns = errors.New("population.region_name_column and region_code_column are required")
	ErrMissingGeoFile        = errors.New("geo_file is required")
	ErrEmptyMeasureRole      = errors.New("numerator and denominator must both be non-empty")
	ErrNegativeRegionRank    = errors.New("region_order ranks must be non-negative")
)

// Lookup errors. Callers match these with errors.Is; the wrapped message
// names the missing key.
var (
	ErrNoYear           = errors.New("year not configured")
	ErrNoMeasureMapping = errors.New("no measure mapping configured")
)

// Config is the complete pipeline configuration.
type Config struct {
	// Years maps a reporting year label ("2022-23") to its source files.
	Years map[string]YearSource `yaml:"years"`

	// GeoFile is the static coordinates CSV, keyed by organisation code.
	GeoFile string `yaml:"geo_file"`

	// SpecialDimensions are rated against population totals rather than an
	// internal measure ratio.
	SpecialDimensions []string `yaml:"special_dimensions"`

	// RegionOrder maps a canonical region name to its display rank.
	RegionOrder map[string]int `yaml:"region_order"`

	// MeasureRoles maps organisation level -> dimension -> the measure sets
	// acting as numerator and denominator of the rate.
	MeasureRoles map[string]map[string]MeasureRoles `yaml:"measure_roles"`

	Logging LoggingConfig `yaml:"logging"`
}

// YearSource locates one year's input files.
type YearSource struct {
	DataFile   string           `yaml:"data_file"`
	Population PopulationSource `yaml:"population"`
}

// PopulationSource locates one year's population workbook and names the
// columns to group by. The sheet layout shifts between publications, so the
// grouping keys are configuration rather than constants.
type PopulationSource struct {
	File             string `yaml:"file"`
	Sheet            string `yaml:"sheet"`
	RegionNameColumn string `yaml:"region_name_column"`
	RegionCodeColumn string `yaml:"region_code_column"`
}

// MeasureRoles names the measures summed as numerator and denominator when
// computing a rate for one (organisation level, dimension) pair.
type MeasureRoles struct {
	Numerator   []string `yaml:"numerator"`
	Denominator []string `yaml:"denominator"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// LoadConfig loads and validates configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Years) == 0 {
		return ErrNoYears
	}

	for year, src := range c.Years {
		if src.DataFile == "" {
			return fmt.Errorf("%w: year %q", ErrYearMissingDataFile, year)
		}

		if src.Population.File == "" {
			return fmt.Errorf("%w: year %q", ErrYearMissingPopFile, year)
		}

		if src.Population.Sheet == "" {
			return fmt.Errorf("%w: year %q", ErrYearMissingPopSheet, year)
		}

		if src.Population.RegionNameColumn == "" || src.Population.RegionCodeColumn == "" {
			return fmt.Errorf("%w: year %q", ErrYearMissingPopColumns, year)
		}
	}

	if c.GeoFile == "" {
		return ErrMissingGeoFile
	}

	for level, dims := range c.MeasureRoles {
		for dim, roles := range dims {
			if len(roles.Numerator) == 0 || len(roles.Denominator) == 0 {
				return fmt.Errorf("%w: measure_roles[%q][%q]", ErrEmptyMeasureRole, level, dim)
			}
		}
	}

	for name, rank := range c.RegionOrder {
		if rank < 0 {
			return fmt.Errorf("%w: region_order[%q] = %d", ErrNegativeRegionRank, name, rank)
		}
	}

	return nil
}

// Year returns the source locations for one configured year.
func (c *Config) Year(year string) (YearSource, error) {
	src, ok := c.Years[year]
	if !ok {
		return YearSource{}, fmt.Errorf("%w: %q", ErrNoYear, year)
	}

	return src, nil
}

// YearLabels returns the configured year labels in ascending order, so that
// multi-year assembly is deterministic.
func (c *Config) YearLabels() []string {
	labels := make([]string, 0, len(c.Years))
	for year := range c.Years {
		labels = append(labels, year)
	}

	sort.Strings(labels)

	return labels
}

// RolesFor returns the numerator/denominator measure sets for a
// (organisation level, dimension) pair. A missing entry is a configuration
// error naming both keys, never a silent empty set: an empty set would sum
// to zero and masquerade as a valid rate.
func (c *Config) RolesFor(orgLevel, dimension string) (MeasureRoles, error) {
	dims, ok := c.MeasureRoles[orgLevel]
	if !ok {
		return MeasureRoles{}, fmt.Errorf("%w: org level %q", ErrNoMeasureMapping, orgLevel)
	}

	roles, ok := dims[dimension]
	if !ok {
		return MeasureRoles{}, fmt.Errorf("%w: org level %q, dimension %q", ErrNoMeasureMapping, orgLevel, dimension)
	}

	if len(roles.Numerator) == 0 || len(roles.Denominator) == 0 {
		return MeasureRoles{}, fmt.Errorf("%w: org level %q, dimension %q", ErrEmptyMeasureRole, orgLevel, dimension)
	}

	return roles, nil
}

// IsSpecialDimension reports whether the dimension is rated against
// population totals.
func (c *Config) IsSpecialDimension(dimension string) bool {
	for _, d := range c.SpecialDimensions {
		if d == dimension {
			return true
		}
	}

	return false
}

// RegionRank returns the display rank for an organisation name. Names
// outside the configured ordering report ok=false and sort last.
func (c *Config) RegionRank(orgName string) (int, bool) {
	rank, ok := c.RegionOrder[orgName]

	return rank, ok
}
