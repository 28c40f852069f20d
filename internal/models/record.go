// Package models defines the tabular record types shared by the loaders and
// the processing pipeline.
package models

// Record is one row of the maternity statistics table. Optional numeric
// fields use pointers; nil is the missing marker (unmatched join, undefined
// rate) and is never conflated with zero.
type Record struct {
	OrgName   string `json:"orgName"`
	OrgCode   string `json:"orgCode"`
	OrgLevel  string `json:"orgLevel"`
	Dimension string `json:"dimension"`
	Measure   string `json:"measure"`

	// Value is the source figure. HasValue is false when the source cell
	// was empty or non-numeric; such rows are excluded from sums.
	Value    float64 `json:"value"`
	HasValue bool    `json:"hasValue"`

	// Year tags rows in multi-year (time series) tables.
	Year string `json:"year,omitempty"`

	Lat *float64 `json:"lat,omitempty"`
	Lon *float64 `json:"lon,omitempty"`

	Rate    *float64 `json:"rate,omitempty"`
	Percent *float64 `json:"percent,omitempty"`

	// All Submitters comparison markers, populated only by the bar-chart
	// merge step.
	AllSubmittersShare *float64 `json:"allSubmittersShare,omitempty"`
	AllSubmittersValue *float64 `json:"allSubmittersValue,omitempty"`
}

// Table is an ordered collection of records. Pipeline stages never mutate a
// table in place; every transform returns a fresh table so loaded inputs can
// be shared and cached safely.
type Table []Record

// Clone returns a deep copy of the table. Pointer fields are re-allocated so
// the copy shares no memory with the original.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}

	out := make(Table, len(t))
	for i, r := range t {
		r.Lat = copyFloat(r.Lat)
		r.Lon = copyFloat(r.Lon)
		r.Rate = copyFloat(r.Rate)
		r.Percent = copyFloat(r.Percent)
		r.AllSubmittersShare = copyFloat(r.AllSubmittersShare)
		r.AllSubmittersValue = copyFloat(r.AllSubmittersValue)
		out[i] = r
	}

	return out
}

// OrgNames returns the distinct organisation names in table order.
func (t Table) OrgNames() []string {
	seen := make(map[string]bool, len(t))

	var names []string

	for _, r := range t {
		if !seen[r.OrgName] {
			seen[r.OrgName] = true
			names = append(names, r.OrgName)
		}
	}

	return names
}

// GeoPoint is one row of the coordinates reference table.
type GeoPoint struct {
	OrgCode string  `json:"orgCode"`
	Lat     float64 `json:"latitude"`
	Lon     float64 `json:"longitude"`
}

// PopulationRow is one raw row of the population workbook: a region
// name/code pair and the total population for one sub-area of the region.
type PopulationRow struct {
	RegionName string  `json:"regionName"`
	RegionCode string  `json:"regionCode"`
	Total      float64 `json:"total"`
}

// Float returns a pointer to v. Convenience for building optional fields.
func Float(v float64) *float64 {
	return &v
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}

	v := *p

	return &v
}
