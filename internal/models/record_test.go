package models

import "testing"

func TestTable_Clone_DeepCopiesPointers(t *testing.T) {
	orig := Table{
		{OrgName: "London", Rate: Float(0.1), Lat: Float(51.5)},
		{OrgName: "Midlands"},
	}

	clone := orig.Clone()

	*clone[0].Rate = 99
	clone[1].OrgName = "CHANGED"

	if *orig[0].Rate != 0.1 {
		t.Errorf("Clone shares Rate pointer: %v", *orig[0].Rate)
	}

	if orig[1].OrgName != "Midlands" {
		t.Errorf("Clone shares backing array: %q", orig[1].OrgName)
	}
}

func TestTable_Clone_Nil(t *testing.T) {
	var nilTable Table

	if nilTable.Clone() != nil {
		t.Error("Clone of nil table should be nil")
	}
}

func TestTable_OrgNames(t *testing.T) {
	table := Table{
		{OrgName: "Midlands"},
		{OrgName: "London"},
		{OrgName: "Midlands"},
	}

	names := table.OrgNames()

	if len(names) != 2 {
		t.Fatalf("Expected 2 distinct names, got %d", len(names))
	}

	if names[0] != "Midlands" || names[1] != "London" {
		t.Errorf("Names = %v, want first-seen order", names)
	}
}
