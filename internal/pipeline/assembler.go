package pipeline

import (
	"sort"

	"github.com/jenniferstruthers1-nhs/DS-Vis-Acc-Maternity/internal/models"
)

// AttachCoordinates re-merges latitude/longitude onto a rate table by
// organisation name. The source table is deduplicated by name first (the
// first occurrence wins; all rows for one organisation carry the same
// coordinates after the code join). Left join: rate rows without a source
// match keep their existing coordinates.
func AttachCoordinates(rates, source models.Table) models.Table {
	type coords struct {
		lat, lon *float64
	}

	byName := make(map[string]coords, len(source))

	for _, r := range source {
		if _, ok := byName[r.OrgName]; ok {
			continue
		}

		byName[r.OrgName] = coords{lat: r.Lat, lon: r.Lon}
	}

	out := rates.Clone()

	for i := range out {
		c, ok := byName[out[i].OrgName]
		if !ok {
			continue
		}

		if c.lat != nil {
			out[i].Lat = models.Float(*c.lat)
		}

		if c.lon != nil {
			out[i].Lon = models.Float(*c.lon)
		}
	}

	return out
}

// RankFunc reports the display rank of an organisation name, and whether
// the name is ranked at all.
type RankFunc func(orgName string) (int, bool)

// SortByRegionRank orders rows by configured region rank. The sort is
// stable; unranked organisations sort after all ranked ones, keeping their
// original relative order as the tie-break.
func SortByRegionRank(t models.Table, rank RankFunc) models.Table {
	out := t.Clone()

	sort.SliceStable(out, func(i, j int) bool {
		ri, iOK := rank(out[i].OrgName)
		rj, jOK := rank(out[j].OrgName)

		switch {
		case iOK && jOK:
			return ri < rj
		case iOK:
			return true
		default:
			return false
		}
	})

	return out
}

// TagYear returns a copy of the table with every row labelled with year.
func TagYear(t models.Table, year string) models.Table {
	out := t.Clone()

	for i := range out {
		out[i].Year = year
	}

	return out
}

// Concat concatenates tables in argument order into one new table.
func Concat(tables ...models.Table) models.Table {
	var n int
	for _, t := range tables {
		n += len(t)
	}

	out := make(models.Table, 0, n)
	for _, t := range tables {
		out = append(out, t.Clone()...)
	}

	return out
}
