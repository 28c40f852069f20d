package pipeline

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/jenniferstruthers1-nhs/DS-Vis-Acc-Maternity/internal/config"
	"github.com/jenniferstruthers1-nhs/DS-Vis-Acc-Maternity/internal/loader"
	"github.com/jenniferstruthers1-nhs/DS-Vis-Acc-Maternity/internal/logger"
	"github.com/jenniferstruthers1-nhs/DS-Vis-Acc-Maternity/internal/models"
)

// Builder wires the pipeline stages into the public entry points. Each call
// loads its own tables through the store and returns a fresh result table;
// a Builder holds no mutable state, so one instance can serve concurrent
// callers as long as the store honours its read-only contract.
type Builder struct {
	cfg   *config.Config
	store loader.Store
	log   *logger.Logger
}

// NewBuilder creates a builder over the given configuration and store.
func NewBuilder(cfg *config.Config, store loader.Store, log *logger.Logger) *Builder {
	return &Builder{cfg: cfg, store: store, log: log}
}

// BuildMapData returns one row per organisation with a computed rate (and
// Percent for ordinary dimensions), coordinates attached and rows in
// canonical region order, ready for map plotting.
func (b *Builder) BuildMapData(dimension, orgLevel, year string) (models.Table, error) {
	b.log.Debug("building map data", "dimension", dimension, "orgLevel", orgLevel, "year", year)

	stats, err := b.store.Stats(year)
	if err != nil {
		return nil, err
	}

	t := CanonicalizeLabels(CanonicalizeOrgNames(stats))

	geo, err := b.store.Geo()
	if err != nil {
		return nil, err
	}

	joined, err := JoinCoordinates(t, geo)
	if err != nil {
		return nil, err
	}

	filtered := FilterDimensionLevel(joined, dimension, orgLevel)

	var rated models.Table

	if b.cfg.IsSpecialDimension(dimension) {
		totals, err := b.populationTotals(year)
		if err != nil {
			return nil, err
		}

		rated = CalculatePopulationRates(filtered, totals)
	} else {
		roles, err := b.cfg.RolesFor(orgLevel, dimension)
		if err != nil {
			return nil, err
		}

		rated, err = CalculateRates(filtered, roles)
		if err != nil {
			return nil, err
		}
	}

	out := AttachCoordinates(rated, filtered)

	return SortByRegionRank(out, b.cfg.RegionRank), nil
}

// BuildBarChartData returns the per-measure rows for a single organisation:
// normalized, filtered to the dimension and level, narrowed to the named
// location.
func (b *Builder) BuildBarChartData(dimension, orgLevel, location, year string) (models.Table, error) {
	b.log.Debug("building bar chart data", "dimension", dimension, "location", location, "year", year)

	stats, err := b.store.Stats(year)
	if err != nil {
		return nil, err
	}

	t := CanonicalizeLabels(CanonicalizeOrgNames(stats))
	t = FilterDimensionLevel(t, dimension, orgLevel)

	return FilterOrgName(t, location), nil
}

// BuildRegionBarChartData returns one row per region for a special
// dimension, with per-1000 population-normalized rates: region on the X
// axis, value or rate on the Y axis.
func (b *Builder) BuildRegionBarChartData(dimension, year string) (models.Table, error) {
	b.log.Debug("building region bar chart data", "dimension", dimension, "year", year)

	stats, err := b.store.Stats(year)
	if err != nil {
		return nil, err
	}

	t := CanonicalizeLabels(CanonicalizeOrgNames(stats))
	t = FilterDimensionLevel(t, dimension, RegionLevel)

	totals, err := b.populationTotals(year)
	if err != nil {
		return nil, err
	}

	return CalculatePopulationRates(t, totals), nil
}

// BuildTimeSeriesData concatenates every configured year's table with a
// year tag, then filters and rates it. Special dimensions requested at
// National or Provider level are forced to the region breakdown, and their
// rows are rated against each year's own population totals.
func (b *Builder) BuildTimeSeriesData(dimension, orgLevel, location string) (models.Table, error) {
	b.log.Debug("building time series data", "dimension", dimension, "orgLevel", orgLevel, "location", location)

	years := b.cfg.YearLabels()

	tables := make([]models.Table, 0, len(years))

	for _, year := range years {
		stats, err := b.store.Stats(year)
		if err != nil {
			return nil, fmt.Errorf("year %q: %w", year, err)
		}

		tables = append(tables, TagYear(stats, year))
	}

	combined := Concat(tables...)
	combined = CanonicalizeLabels(CanonicalizeOrgNames(combined))

	special := b.cfg.IsSpecialDimension(dimension)
	if special && (orgLevel == NationalLevel || orgLevel == ProviderLevel) {
		orgLevel = RegionLevel
	}

	combined = FilterDimensionLevel(combined, dimension, orgLevel)

	if !special {
		return FilterOrgName(combined, location), nil
	}

	return b.ratePerYear(combined, years)
}

// MergeAllSubmitters attaches All Submitters comparison markers to a
// location bar-chart table: each measure's share of the national total, and
// that share scaled to the location's own total. Measures missing from the
// national table keep nil markers; a zero national total leaves every
// marker nil.
func MergeAllSubmitters(location, allSubmitters models.Table) models.Table {
	out := location.Clone()

	values := make([]float64, 0, len(allSubmitters))
	shares := make(map[string]float64, len(allSubmitters))

	for _, r := range allSubmitters {
		if r.HasValue {
			values = append(values, r.Value)
		}
	}

	national := floats.Sum(values)
	if national == 0 {
		return out
	}

	for _, r := range allSubmitters {
		if r.HasValue {
			shares[r.Measure] = r.Value / national
		}
	}

	values = values[:0]

	for _, r := range location {
		if r.HasValue {
			values = append(values, r.Value)
		}
	}

	locationTotal := floats.Sum(values)

	for i := range out {
		share, ok := shares[out[i].Measure]
		if !ok {
			continue
		}

		out[i].AllSubmittersShare = models.Float(share)
		out[i].AllSubmittersValue = models.Float(share * locationTotal)
	}

	return out
}

// populationTotals loads and aggregates one year's population reference.
func (b *Builder) populationTotals(year string) (map[string]float64, error) {
	rows, err := b.store.Population(year)
	if err != nil {
		return nil, err
	}

	totals, err := AggregatePopulation(rows)
	if err != nil {
		return nil, fmt.Errorf("year %q: %w", year, err)
	}

	return totals, nil
}

// ratePerYear applies population-normalized rates to a multi-year table,
// using each year's own population totals, preserving row order.
func (b *Builder) ratePerYear(t models.Table, years []string) (models.Table, error) {
	totalsByYear := make(map[string]map[string]float64, len(years))

	for _, year := range years {
		totals, err := b.populationTotals(year)
		if err != nil {
			return nil, err
		}

		totalsByYear[year] = totals
	}

	out := t.Clone()

	for i := range out {
		totals, ok := totalsByYear[out[i].Year]
		if !ok {
			continue
		}

		pop, ok := totals[out[i].OrgName]
		if !ok || !out[i].HasValue || pop == 0 {
			continue
		}

		out[i].Rate = models.Float(out[i].Value / pop * perThousandScale)
	}

	return out, nil
}
