package domain

import "testing"

func TestApplicableFilters(t *testing.T) {
	cat := &Category{ID: "cars", Path: []string{"root", "vehicles"}}

	own := Filter{ID: "f1", Name: "Mileage", CategoryID: "cars", Active: true, SortOrder: 2}
	inherited := Filter{ID: "f2", Name: "Brand", CategoryID: "vehicles", ApplyToChildren: true, Active: true, SortOrder: 1}
	notInherited := Filter{ID: "f3", Name: "Private", CategoryID: "vehicles", ApplyToChildren: false, Active: true}
	inactive := Filter{ID: "f4", Name: "Old", CategoryID: "cars", Active: false}
	unrelated := Filter{ID: "f5", Name: "Rooms", CategoryID: "realestate", ApplyToChildren: true, Active: true}

	got := ApplicableFilters(cat, []Filter{own, inherited, notInherited, inactive, unrelated})
	if len(got) != 2 {
		t.Fatalf("expected 2 filters, got %d", len(got))
	}
	// sortOrder ascending: inherited (1) before own (2)
	if got[0].ID != "f2" || got[1].ID != "f1" {
		t.Fatalf("wrong order: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestApplicableFiltersNameTieBreak(t *testing.T) {
	cat := &Category{ID: "c"}
	a := Filter{ID: "a", Name: "Alpha", CategoryID: "c", Active: true, SortOrder: 5}
	b := Filter{ID: "b", Name: "Beta", CategoryID: "c", Active: true, SortOrder: 5}
	got := ApplicableFilters(cat, []Filter{b, a})
	if got[0].Name != "Alpha" || got[1].Name != "Beta" {
		t.Fatalf("tie-break by name failed: %s, %s", got[0].Name, got[1].Name)
	}
}

func TestFilterAppliesToSelfRegardlessOfFlag(t *testing.T) {
	cat := &Category{ID: "c", Path: []string{"p"}}
	f := Filter{ID: "f", CategoryID: "c", ApplyToChildren: false}
	if !f.AppliesTo(cat) {
		t.Fatal("direct assignment must apply without the inheritance flag")
	}
}

func TestValidFilterType(t *testing.T) {
	for _, ok := range []string{FilterSelect, FilterRange, FilterCheckbox, FilterNumber, FilterText} {
		if !ValidFilterType(ok) {
			t.Errorf("%q should be valid", ok)
		}
	}
	if ValidFilterType("dropdown") {
		t.Error("unknown type accepted")
	}
}
