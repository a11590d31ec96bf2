// Package pattern defines the deterministic rule-based classification
// signal the engine consumes, plus a reference keyword implementation.
// The pattern signal is independent of the ML stream and is treated as
// authoritative when the ML side is uncertain.
package pattern

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/loreweave/loreweave/pkg/loreweave/category"
	"github.com/loreweave/loreweave/pkg/loreweave/internalerr"
)

// Classification is the deterministic (category, fields, confidence)
// triple for one record.
type Classification struct {
	Category   category.Category
	Fields     map[string]string
	Confidence float64
}

// Router proposes a deterministic classification for a record. An empty
// category is a routing failure for that record and fails the batch.
type Router interface {
	Classify(id, content string) (Classification, error)
}

// Rule matches a category by keyword hits. Confidence grows with the
// number of distinct keywords present.
type Rule struct {
	Category category.Category
	Keywords []string
}

// KeywordRouter is the reference Router: keyword rules plus regex field
// extraction. Rules are evaluated against lowercased content; the rule
// with the most distinct keyword hits wins.
type KeywordRouter struct {
	rules           []Rule
	defaultCategory category.Category // used when no rule matches; empty = fail
}

// NewKeywordRouter creates a router from explicit rules. defaultCategory
// may be category.Unknown to classify unmatched records at low
// confidence, or "" to make unmatched records a hard routing failure.
func NewKeywordRouter(rules []Rule, defaultCategory category.Category) *KeywordRouter {
	normalized := make([]Rule, len(rules))
	for i, r := range rules {
		kws := make([]string, len(r.Keywords))
		for j, kw := range r.Keywords {
			kws[j] = strings.ToLower(kw)
		}
		normalized[i] = Rule{Category: r.Category, Keywords: kws}
	}
	return &KeywordRouter{rules: normalized, defaultCategory: defaultCategory}
}

// DefaultRules returns the built-in rule table covering every known
// category.
func DefaultRules() []Rule {
	return []Rule{
		{category.Settlement, []string{"village", "town", "city", "hamlet", "market", "mayor", "inhabitants", "population"}},
		{category.Dungeon, []string{"dungeon", "crypt", "tomb", "lair", "trap", "treasure", "chamber", "ruins"}},
		{category.Faction, []string{"faction", "guild", "cult", "order", "clan", "brotherhood", "alliance"}},
		{category.Region, []string{"region", "realm", "kingdom", "province", "frontier", "duchy"}},
		{category.Biome, []string{"forest", "swamp", "desert", "tundra", "hex", "terrain", "biome"}},
		{category.Creature, []string{"creature", "beast", "monster", "claws", "venom", "prowls"}},
		{category.Character, []string{"npc", "adventurer", "wizard", "fighter", "rogue", "cleric", "quest"}},
		{category.Inn, []string{"inn", "tavern", "lodging", "rooms", "ale", "innkeeper"}},
		{category.Item, []string{"sword", "amulet", "potion", "scroll", "artifact", "enchanted"}},
	}
}

// Field extraction patterns, applied to every record regardless of the
// matched category. Missing fields are simply absent from the map.
var fieldPatterns = map[string]*regexp.Regexp{
	"population":  regexp.MustCompile(`(?i)population\s*(?:of|:)?\s*([\d,]+)`),
	"coordinates": regexp.MustCompile(`\b(\d{1,3})\s*,\s*(\d{1,3})\b`),
	"hex":         regexp.MustCompile(`(?i)\bhex\s*(\d{4})\b`),
	"level_range": regexp.MustCompile(`(?i)levels?\s*(\d+)\s*[-–]\s*(\d+)`),
	"leader":      regexp.MustCompile(`(?i)led by ([A-Z][\w']+(?:\s+[A-Z][\w']+)*)`),
}

// Classify applies the rule table to one record.
func (r *KeywordRouter) Classify(id, content string) (Classification, error) {
	lower := strings.ToLower(content)

	best := Classification{Fields: extractFields(content)}
	bestHits := 0
	for _, rule := range r.rules {
		hits := 0
		for _, kw := range rule.Keywords {
			if containsWord(lower, kw) {
				hits++
			}
		}
		if hits > bestHits {
			bestHits = hits
			best.Category = rule.Category
		}
	}

	if bestHits == 0 {
		if r.defaultCategory == "" {
			return Classification{}, fmt.Errorf("classify %s: %w: no rule matched", id, internalerr.ErrRouting)
		}
		best.Category = r.defaultCategory
		best.Confidence = 0.2
		return best, nil
	}

	// Confidence scales with distinct keyword hits, capped below 1 so
	// the deterministic signal never claims certainty.
	best.Confidence = 0.4 + 0.1*float64(bestHits)
	if best.Confidence > 0.95 {
		best.Confidence = 0.95
	}
	return best, nil
}

func extractFields(content string) map[string]string {
	fields := make(map[string]string)
	for name, re := range fieldPatterns {
		if m := re.FindStringSubmatch(content); m != nil {
			if len(m) > 2 {
				fields[name] = strings.Join(m[1:], ",")
			} else {
				fields[name] = m[1]
			}
		}
	}
	return fields
}

// containsWord reports whether kw occurs in text on word boundaries.
// Substring matching alone would let "inn" match "inner".
func containsWord(text, kw string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], kw)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(kw)
		leftOK := start == 0 || !isWordByte(text[start-1])
		rightOK := end == len(text) || !isWordByte(text[end])
		if leftOK && rightOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
