package pipeline

import (
	"errors"
	"testing"

	"github.com/jenniferstruthers1-nhs/DS-Vis-Acc-Maternity/internal/models"
)

func TestJoinCoordinates(t *testing.T) {
	in := models.Table{
		{OrgName: "London", OrgCode: "Y56"},
		{OrgName: "Midlands", OrgCode: "Y60"},
		{OrgName: "Unknown Trust", OrgCode: "ZZZ"},
	}

	geo := []models.GeoPoint{
		{OrgCode: "Y56", Lat: 51.5, Lon: -0.12},
		{OrgCode: "Y60", Lat: 52.5, Lon: -1.9},
	}

	out, err := JoinCoordinates(in, geo)
	if err != nil {
		t.Fatalf("JoinCoordinates failed: %v", err)
	}

	if len(out) != len(in) {
		t.Fatalf("Row count changed: got %d, want %d", len(out), len(in))
	}

	if out[0].Lat == nil || *out[0].Lat != 51.5 {
		t.Errorf("London Lat = %v, want 51.5", out[0].Lat)
	}

	if out[1].Lon == nil || *out[1].Lon != -1.9 {
		t.Errorf("Midlands Lon = %v, want -1.9", out[1].Lon)
	}

	if out[2].Lat != nil || out[2].Lon != nil {
		t.Errorf("Unmatched row should keep nil coordinates, got %v/%v", out[2].Lat, out[2].Lon)
	}
}

func TestJoinCoordinates_DuplicateCode(t *testing.T) {
	geo := []models.GeoPoint{
		{OrgCode: "Y56", Lat: 51.5, Lon: -0.12},
		{OrgCode: "Y56", Lat: 53.4, Lon: -2.2},
	}

	_, err := JoinCoordinates(models.Table{{OrgCode: "Y56"}}, geo)
	if !errors.Is(err, ErrDuplicateGeoCode) {
		t.Fatalf("Expected ErrDuplicateGeoCode, got %v", err)
	}
}

func TestJoinCoordinates_EmptyTable(t *testing.T) {
	out, err := JoinCoordinates(models.Table{}, []models.GeoPoint{{OrgCode: "Y56"}})
	if err != nil {
		t.Fatalf("JoinCoordinates failed: %v", err)
	}

	if len(out) != 0 {
		t.Errorf("Expected empty table, got %d rows", len(out))
	}
}

func TestJoinCoordinates_DoesNotMutateInput(t *testing.T) {
	in := models.Table{{OrgName: "London", OrgCode: "Y56"}}
	geo := []models.GeoPoint{{OrgCode: "Y56", Lat: 51.5, Lon: -0.12}}

	if _, err := JoinCoordinates(in, geo); err != nil {
		t.Fatalf("JoinCoordinates failed: %v", err)
	}

	if in[0].Lat != nil || in[0].Lon != nil {
		t.Error("Input table was mutated")
	}
}
