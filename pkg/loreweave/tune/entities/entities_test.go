package entities

import (
	"testing"

	"github.com/loreweave/loreweave/pkg/loreweave/category"
	"github.com/loreweave/loreweave/pkg/loreweave/route"
)

func TestSuggestRecurringNames(t *testing.T) {
	tuner := Tuner{Universe: &route.Universe{}}
	contents := []string{
		"Merchants avoid the village of Greywater Ford after dark.",
		"The road to Greywater Ford floods every spring.",
		"A single mention of Saltmere Keep goes nowhere.",
	}

	suggestions := tuner.Suggest(contents)

	var found *Suggestion
	for i := range suggestions {
		if suggestions[i].Name == "Greywater Ford" {
			found = &suggestions[i]
		}
		if suggestions[i].Name == "Saltmere Keep" {
			t.Error("Single occurrence should be below the threshold")
		}
	}
	if found == nil {
		t.Fatalf("Expected 'Greywater Ford' suggestion, got %v", suggestions)
	}
	if found.Occurrences != 2 {
		t.Errorf("Occurrences = %d, want 2", found.Occurrences)
	}
	if found.Category != category.Settlement {
		t.Errorf("Category = %q, want settlement from the 'village of' cue", found.Category)
	}
}

func TestSuggestSkipsKnownNames(t *testing.T) {
	tuner := Tuner{Universe: &route.Universe{Regions: []string{"Greywater Ford"}}}
	contents := []string{
		"They say merchants enter Greywater Ford at dusk.",
		"All roads lead to Greywater Ford.",
	}
	for _, s := range tuner.Suggest(contents) {
		if s.Name == "Greywater Ford" {
			t.Error("Known universe names should not be suggested")
		}
	}
}

func TestSuggestIgnoresSingleWords(t *testing.T) {
	tuner := Tuner{Universe: &route.Universe{}}
	contents := []string{
		"Rumors spread. Rumors travel fast.",
		"Rumors again.",
	}
	for _, s := range tuner.Suggest(contents) {
		if s.Name == "Rumors" {
			t.Error("Single capitalized words should be ignored as sentence starts")
		}
	}
}

func TestSuggestCategoryCues(t *testing.T) {
	tuner := Tuner{Universe: &route.Universe{}}
	contents := []string{
		"They fled into the crypt of Hollow Spire.",
		"None return from Hollow Spire.",
	}
	suggestions := tuner.Suggest(contents)
	for _, s := range suggestions {
		if s.Name == "Hollow Spire" && s.Category != category.Dungeon {
			t.Errorf("Category = %q, want dungeon from the 'crypt of' cue", s.Category)
		}
	}
}

func TestSuggestOrderingAndCap(t *testing.T) {
	tuner := Tuner{
		Universe:   &route.Universe{},
		Thresholds: Thresholds{MinOccurrences: 2, MaxSuggestions: 1},
	}
	contents := []string{
		"Ash Hollow and Briar Glen.",
		"Ash Hollow and Briar Glen.",
		"Ash Hollow alone.",
	}
	suggestions := tuner.Suggest(contents)
	if len(suggestions) != 1 {
		t.Fatalf("MaxSuggestions not applied: %v", suggestions)
	}
	if suggestions[0].Name != "Ash Hollow" {
		t.Errorf("Most frequent name should rank first, got %q", suggestions[0].Name)
	}
}

func TestSuggestEmptyInput(t *testing.T) {
	tuner := Tuner{Universe: &route.Universe{}}
	if got := tuner.Suggest(nil); len(got) != 0 {
		t.Errorf("Suggest(nil) = %v, want none", got)
	}
}
