package pipeline

import (
	"github.com/jenniferstruthers1-nhs/DS-Vis-Acc-Maternity/internal/models"
)

// FilterDimensionLevel returns the rows whose dimension and organisation
// level both match exactly. Matching is case sensitive against the
// canonicalized values; an empty result is valid, not an error.
func FilterDimensionLevel(t models.Table, dimension, orgLevel string) models.Table {
	out := make(models.Table, 0, len(t))

	for _, r := range t {
		if r.OrgLevel == orgLevel && r.Dimension == dimension {
			out = append(out, r)
		}
	}

	return out.Clone()
}

// FilterOrgName narrows a table to a single organisation by exact name
// match.
func FilterOrgName(t models.Table, orgName string) models.Table {
	out := make(models.Table, 0, len(t))

	for _, r := range t {
		if r.OrgName == orgName {
			out = append(out, r)
		}
	}

	return out.Clone()
}
