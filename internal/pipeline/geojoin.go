package pipeline

import (
	"errors"
	"fmt"

	"github.com/jenniferstruthers1-nhs/DS-Vis-Acc-Maternity/internal/models"
)

// ErrDuplicateGeoCode is returned when the coordinates reference holds more
// than one row for an organisation code. The reference must be 1:1; a
// silent first-match would hide a data defect.
var ErrDuplicateGeoCode = errors.New("duplicate organisation code in coordinates reference")

// JoinCoordinates left-joins latitude/longitude onto the table by
// organisation code. Every input row is kept exactly once; rows without a
// reference match get nil coordinates.
func JoinCoordinates(t models.Table, geo []models.GeoPoint) (models.Table, error) {
	byCode := make(map[string]models.GeoPoint, len(geo))

	for _, p := range geo {
		if _, ok := byCode[p.OrgCode]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateGeoCode, p.OrgCode)
		}

		byCode[p.OrgCode] = p
	}

	out := t.Clone()

	for i := range out {
		p, ok := byCode[out[i].OrgCode]
		if !ok {
			continue
		}

		out[i].Lat = models.Float(p.Lat)
		out[i].Lon = models.Float(p.Lon)
	}

	return out, nil
}
