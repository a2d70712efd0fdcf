// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"
	"testing"
)

func TestClamp01(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.5, 0.5},
		{0, 0},
		{1, 1},
		{1.7, 1},
		{-0.2, 0},
		{100, 1},
	}
	for _, tt := range tests {
		if got := Clamp01(tt.in); got != tt.want {
			t.Errorf("Clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSortDisciplinesStable(t *testing.T) {
	results := []DisciplineResult{
		{DisciplineID: 3, Name: "Chemistry", RelevanceScore: 0.4},
		{DisciplineID: 1, Name: "Computer Science", RelevanceScore: 0.9},
		{DisciplineID: 17, Name: "Mathematics", RelevanceScore: 0.4},
	}
	SortDisciplines(results)

	wantIDs := []int{1, 3, 17}
	for i, want := range wantIDs {
		if results[i].DisciplineID != want {
			t.Errorf("position %d: got id %d, want %d", i, results[i].DisciplineID, want)
		}
	}
	// The two 0.4 entries keep their original relative order.
	if results[1].Name != "Chemistry" || results[2].Name != "Mathematics" {
		t.Errorf("tie order not preserved: %v", results)
	}
}

func TestPrimary(t *testing.T) {
	c := DisciplineClassification{Disciplines: []DisciplineResult{
		{DisciplineID: 2, Name: "Medicine", RelevanceScore: 0.6},
		{DisciplineID: 5, Name: "Biology", RelevanceScore: 0.8},
	}}
	best, ok := c.Primary()
	if !ok {
		t.Fatal("Primary returned false for non-empty classification")
	}
	if best.Name != "Biology" {
		t.Errorf("Primary = %q, want Biology", best.Name)
	}

	empty := DisciplineClassification{}
	if _, ok := empty.Primary(); ok {
		t.Error("Primary should return false for empty classification")
	}
}

func TestDisciplineNames(t *testing.T) {
	c := DisciplineClassification{Disciplines: []DisciplineResult{
		{Name: "Physics"},
		{Name: "Mathematics"},
	}}
	names := c.DisciplineNames()
	if len(names) != 2 || names[0] != "Physics" || names[1] != "Mathematics" {
		t.Errorf("DisciplineNames = %v", names)
	}
}

func TestSortSectionsStable(t *testing.T) {
	sections := []PaperSection{
		{ID: "c", Name: "Conclusion", Order: 3},
		{ID: "a1", Name: "Intro A", Order: 1},
		{ID: "a2", Name: "Intro B", Order: 1},
	}
	SortSections(sections)
	if sections[0].ID != "a1" || sections[1].ID != "a2" || sections[2].ID != "c" {
		t.Errorf("unexpected order: %v", sections)
	}
}

func TestFullText(t *testing.T) {
	p := PaperContent{
		Title:    "A Study of Things",
		Abstract: "We study things.",
		Keywords: []string{"things", "study"},
		Sections: []PaperSection{
			{Name: "Conclusion", Content: "Things were studied.", Order: 2},
			{Name: "Introduction", Content: "Things exist.", Order: 1},
		},
	}
	text := p.FullText()

	if !strings.HasPrefix(text, "# A Study of Things\n\n## Abstract\nWe study things.\n\n") {
		t.Errorf("unexpected preamble: %q", text)
	}
	if !strings.Contains(text, "**Keywords**: things, study") {
		t.Error("keywords line missing")
	}
	intro := strings.Index(text, "## Introduction")
	concl := strings.Index(text, "## Conclusion")
	if intro < 0 || concl < 0 || intro > concl {
		t.Errorf("sections out of order: intro=%d conclusion=%d", intro, concl)
	}
	// The input slice itself stays unsorted.
	if p.Sections[0].Name != "Conclusion" {
		t.Error("FullText should not mutate the sections slice")
	}
}
