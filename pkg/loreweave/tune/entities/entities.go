// Package entities proposes additions to the known-name universe by
// mining uncategorized records for recurring proper names. Output is
// advisory: a human merges accepted suggestions into the universe file.
package entities

import (
	"regexp"
	"sort"
	"strings"

	"github.com/loreweave/loreweave/pkg/loreweave/category"
	"github.com/loreweave/loreweave/pkg/loreweave/route"
)

// Suggestion is a proposed universe entry mined from record content.
type Suggestion struct {
	Category    category.Category
	Name        string
	Occurrences int
}

// Thresholds control suggestion sensitivity.
type Thresholds struct {
	MinOccurrences int // names seen fewer times are noise
	MaxSuggestions int
}

// DefaultThresholds returns the suggestion defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{MinOccurrences: 2, MaxSuggestions: 25}
}

// Cue words immediately preceding a proper name that hint its category,
// e.g. "the village of Dorith", "the Barrow of Kings dungeon".
var categoryCues = map[string]category.Category{
	"village": category.Settlement, "town": category.Settlement,
	"city": category.Settlement, "hamlet": category.Settlement,
	"region": category.Region, "realm": category.Region,
	"kingdom": category.Region, "province": category.Region,
	"guild": category.Faction, "cult": category.Faction,
	"order": category.Faction, "clan": category.Faction,
	"dungeon": category.Dungeon, "crypt": category.Dungeon,
	"tomb": category.Dungeon, "lair": category.Dungeon,
}

var properNameRe = regexp.MustCompile(`\b(?:[A-Z][a-z]+)(?:\s+(?:of\s+|the\s+)?[A-Z][a-z]+)*\b`)

// Tuner mines uncategorized content for universe candidates.
type Tuner struct {
	Universe   *route.Universe
	Thresholds Thresholds
}

// Suggest scans the given record contents (typically the uncategorized
// leftovers of a batch) and proposes names absent from the universe.
func (t *Tuner) Suggest(contents []string) []Suggestion {
	th := t.Thresholds
	if th.MinOccurrences <= 0 {
		th = DefaultThresholds()
	}

	known := make(map[string]struct{})
	if t.Universe != nil {
		for _, name := range t.Universe.AllNames() {
			known[strings.ToLower(name)] = struct{}{}
		}
	}

	type candidate struct {
		cat  category.Category
		hits int
	}
	seen := make(map[string]*candidate)

	for _, content := range contents {
		for _, name := range properNameRe.FindAllString(content, -1) {
			name = strings.TrimSpace(name)
			if len(strings.Fields(name)) < 2 {
				continue // single capitalized words are mostly sentence starts
			}
			if _, ok := known[strings.ToLower(name)]; ok {
				continue
			}
			c, ok := seen[name]
			if !ok {
				c = &candidate{cat: cueCategory(content, name)}
				seen[name] = c
			}
			c.hits++
		}
	}

	var out []Suggestion
	for name, c := range seen {
		if c.hits < th.MinOccurrences {
			continue
		}
		out = append(out, Suggestion{Category: c.cat, Name: name, Occurrences: c.hits})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Occurrences != out[j].Occurrences {
			return out[i].Occurrences > out[j].Occurrences
		}
		return out[i].Name < out[j].Name
	})
	if th.MaxSuggestions > 0 && len(out) > th.MaxSuggestions {
		out = out[:th.MaxSuggestions]
	}
	return out
}

// cueCategory inspects the words just before the name's first occurrence
// for a category cue. Unknown when no cue is found.
func cueCategory(content, name string) category.Category {
	idx := strings.Index(content, name)
	if idx < 0 {
		return category.Unknown
	}
	prefix := strings.ToLower(content[:idx])
	words := strings.Fields(prefix)

	// Look back a few words; "the village of" puts the cue two back.
	for i := len(words) - 1; i >= 0 && i >= len(words)-3; i-- {
		w := strings.Trim(words[i], ".,;:")
		if cat, ok := categoryCues[w]; ok {
			return cat
		}
	}
	return category.Unknown
}
