package pipeline

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/jenniferstruthers1-nhs/DS-Vis-Acc-Maternity/internal/config"
	"github.com/jenniferstruthers1-nhs/DS-Vis-Acc-Maternity/internal/models"
)

// Rate calculation errors.
var (
	// ErrDuplicateMeasure is returned when an organisation reports the
	// same measure twice in the filtered table. Last-write-wins would
	// silently corrupt the pivot, so duplicates are rejected.
	ErrDuplicateMeasure = errors.New("duplicate (organisation, measure) pair")

	// ErrAmbiguousPopulation is returned when the aggregated population
	// table maps one region name to more than one region code.
	ErrAmbiguousPopulation = errors.New("region name maps to multiple codes in population data")
)

// Scale factors for the two dimension classes.
const (
	percentScale     = 100
	perThousandScale = 1000
)

// CalculateRates computes per-organisation ratio-of-sums rates for an
// ordinary dimension. The filtered table is pivoted to one row per
// organisation with one cell per measure; the rate is the sum of the
// numerator measures over the sum of the denominator measures, with Percent
// set to the rate scaled to a percentage.
//
// Measures named in the roles but absent from the table contribute nothing
// to the sums. Rows without a numeric value are skipped. A zero denominator
// sum leaves Rate and Percent nil: the undefined rate is carried as a
// missing value, never as zero or infinity.
func CalculateRates(t models.Table, roles config.MeasureRoles) (models.Table, error) {
	if len(roles.Numerator) == 0 || len(roles.Denominator) == 0 {
		return nil, fmt.Errorf("%w: empty numerator or denominator set", config.ErrEmptyMeasureRole)
	}

	// Pivot: organisation x measure -> value. Table order is preserved via
	// OrgNames.
	cells := make(map[string]map[string]float64)
	seen := make(map[string]map[string]bool)
	template := make(map[string]models.Record)

	for _, r := range t {
		row, ok := cells[r.OrgName]
		if !ok {
			row = make(map[string]float64)
			cells[r.OrgName] = row
			seen[r.OrgName] = make(map[string]bool)
			template[r.OrgName] = r
		}

		if seen[r.OrgName][r.Measure] {
			return nil, fmt.Errorf("%w: org %q, measure %q", ErrDuplicateMeasure, r.OrgName, r.Measure)
		}

		seen[r.OrgName][r.Measure] = true

		if r.HasValue {
			row[r.Measure] = r.Value
		}
	}

	out := make(models.Table, 0, len(cells))

	for _, org := range t.OrgNames() {
		row := cells[org]

		num := floats.Sum(gather(row, roles.Numerator))
		den := floats.Sum(gather(row, roles.Denominator))

		rec := models.Record{
			OrgName:   org,
			OrgCode:   template[org].OrgCode,
			OrgLevel:  template[org].OrgLevel,
			Dimension: template[org].Dimension,
			Year:      template[org].Year,
		}

		if den != 0 {
			rate := num / den
			rec.Rate = models.Float(rate)
			rec.Percent = models.Float(rate * percentScale)
		}

		out = append(out, rec)
	}

	return out, nil
}

// AggregatePopulation groups raw population rows by region name/code pair
// and sums their totals, producing one total per region name. A name that
// appears under two different codes would make the later name-keyed join
// ambiguous, so it is rejected.
func AggregatePopulation(rows []models.PopulationRow) (map[string]float64, error) {
	codeFor := make(map[string]string, len(rows))
	totals := make(map[string]float64, len(rows))

	for _, r := range rows {
		if code, ok := codeFor[r.RegionName]; ok && code != r.RegionCode {
			return nil, fmt.Errorf("%w: %q (%q and %q)", ErrAmbiguousPopulation, r.RegionName, code, r.RegionCode)
		}

		codeFor[r.RegionName] = r.RegionCode
		totals[r.RegionName] += r.Total
	}

	return totals, nil
}

// CalculatePopulationRates computes per-1000 rates for a special dimension
// by joining aggregated population totals onto the table by organisation
// name. Rows with no population match, a missing value, or a zero total
// keep a nil Rate; no row is dropped.
func CalculatePopulationRates(t models.Table, totals map[string]float64) models.Table {
	out := t.Clone()

	for i := range out {
		pop, ok := totals[out[i].OrgName]
		if !ok || !out[i].HasValue || pop == 0 {
			continue
		}

		out[i].Rate = models.Float(out[i].Value / pop * perThousandScale)
	}

	return out
}

func gather(row map[string]float64, measures []string) []float64 {
	vals := make([]float64, 0, len(measures))

	for _, m := range measures {
		if v, ok := row[m]; ok {
			vals = append(vals, v)
		}
	}

	return vals
}
