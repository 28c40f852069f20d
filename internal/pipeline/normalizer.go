// Package pipeline implements the transformation stages that turn raw
// maternity statistics into tables ready for maps, bar charts and time
// series: name and label canonicalization, coordinate joining, row
// filtering, rate calculation and final assembly.
package pipeline

import (
	"strings"

	"github.com/jenniferstruthers1-nhs/DS-Vis-Acc-Maternity/internal/models"
)

// Canonical values used across the pipeline.
const (
	// RegionLevel is the organisation level of the seven commissioning
	// regions.
	RegionLevel = "NHS England (Region)"

	// NationalLevel and ProviderLevel are the other reporting levels.
	NationalLevel = "National"
	ProviderLevel = "Provider"

	// AllSubmitters is the canonical name of the national aggregate.
	AllSubmitters = "All Submitters"

	// DeprivationDimension is the one dimension whose decile measure
	// labels need zero-padding.
	DeprivationDimension = "DeprivationDecileAtBooking"
)

// Rule rewrites one historical label to its canonical form. Rules are kept
// as ordered lists so new years' label drift can be absorbed by appending a
// rule rather than editing transform logic.
type Rule struct {
	Old string
	New string
}

// OrgNameRules maps the published commissioning-region names (and the
// all-submitters aggregate) to canonical short names. Published names embed
// the region name in longer strings in some years, so matching is by
// substring, as with the source publication's own tooling.
var OrgNameRules = []Rule{
	{"LONDON COMMISSIONING REGION", "London"},
	{"SOUTH WEST COMMISSIONING REGION", "South West"},
	{"SOUTH EAST COMMISSIONING REGION", "South East"},
	{"MIDLANDS COMMISSIONING REGION", "Midlands"},
	{"EAST OF ENGLAND COMMISSIONING REGION", "East of England"},
	{"NORTH WEST COMMISSIONING REGION", "North West"},
	{"NORTH EAST AND YORKSHIRE COMMISSIONING REGION", "North East and Yorkshire"},
	{"ALL SUBMITTERS", AllSubmitters},
}

// DimensionRules reconciles dimension names that changed between
// publication years.
var DimensionRules = []Rule{
	{"SmokingAtBooking", "SmokingStatusGroupBooking"},
	{"MethodOfDelivery", "DeliveryMethodBabyGroup"},
	{"FolicAcidStatusGroupBooking", "FolicAcidSupplement"},
}

// MeasureRules reconciles the three spellings of the missing-value measure
// seen across years.
var MeasureRules = []Rule{
	{"Missing Value / Value outside reporting parameters", "Missing value"},
	{"Missing Value/Value outside reporting parameters", "Missing value"},
	{"Missing value / Value outside reporting parameters", "Missing value"},
}

// DeprivationRules zero-pads single-digit decile labels so they sort
// correctly. Applied only to rows in the deprivation dimension; "1" is the
// label "1 - most deprived" in the source and never appears bare.
var DeprivationRules = []Rule{
	{"2", "02"}, {"3", "03"}, {"4", "04"}, {"5", "05"},
	{"6", "06"}, {"7", "07"}, {"8", "08"}, {"9", "09"},
}

// CanonicalizeOrgNames returns a copy of the table with organisation names
// rewritten to canonical region short names. Names not covered by the rules
// pass through unchanged; the transform is idempotent.
func CanonicalizeOrgNames(t models.Table) models.Table {
	out := t.Clone()

	for i := range out {
		out[i].OrgName = applySubstringRules(out[i].OrgName, OrgNameRules)
	}

	return out
}

// CanonicalizeLabels returns a copy of the table with historical dimension
// and measure labels rewritten to their canonical forms, including the
// deprivation-decile zero-padding.
func CanonicalizeLabels(t models.Table) models.Table {
	out := t.Clone()

	for i := range out {
		out[i].Dimension = applyExactRules(out[i].Dimension, DimensionRules)
		out[i].Measure = applyExactRules(out[i].Measure, MeasureRules)

		if out[i].Dimension == DeprivationDimension {
			out[i].Measure = applyExactRules(out[i].Measure, DeprivationRules)
		}
	}

	return out
}

func applySubstringRules(s string, rules []Rule) string {
	for _, r := range rules {
		if strings.Contains(s, r.Old) {
			s = strings.ReplaceAll(s, r.Old, r.New)
		}
	}

	return s
}

func applyExactRules(s string, rules []Rule) string {
	for _, r := range rules {
		if s == r.Old {
			return r.New
		}
	}

	return s
}
