package ingest

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/loreweave/loreweave/pkg/loreweave/category"
)

// MaxKeyTerms caps the number of capitalized key terms kept per payload.
const MaxKeyTerms = 10

// Payload is the best-effort structured parse of one record. When the
// content is well-formed JSON, Structured holds the parsed map and
// DeclaredType its "type" field. Otherwise the payload carries derived
// signals: a content-type guess, key terms, and known-entity mentions.
type Payload struct {
	Structured   map[string]any
	DeclaredType string
	TypeGuess    category.Category
	KeyTerms     []string
	Mentions     []string
}

// ExtractPayload parses a record's content. knownNames is the pre-loaded
// universe of proper names (regions, settlements, factions, dungeons);
// any name found verbatim in the content is reported as a mention.
// Extraction never fails.
func ExtractPayload(content string, knownNames []string) Payload {
	p := Payload{TypeGuess: category.Unknown}

	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "{") {
		var parsed map[string]any
		if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
			p.Structured = parsed
			if t, ok := parsed["type"].(string); ok {
				p.DeclaredType = t
			}
		}
	}

	p.TypeGuess = guessType(content, p.DeclaredType)
	p.KeyTerms = keyTerms(content)
	p.Mentions = mentions(content, knownNames)
	return p
}

// guessType scores the content against each category's vocabulary family
// and returns the best match. Ties resolve in the priority order
// settlement > dungeon > faction > biome > region > creature > character,
// matching the keyword fallback order used by the bucket router.
func guessType(content, declaredType string) category.Category {
	lower := strings.ToLower(content)
	tokens := fieldTokens(lower)

	if declaredType != "" {
		if c := categoryFromDeclared(declaredType); c != category.Unknown {
			return c
		}
	}

	scores := []struct {
		cat   category.Category
		score int
	}{
		{category.Settlement, countVocab(tokens, settlementVocab)},
		{category.Dungeon, countVocab(tokens, dungeonVocab)},
		{category.Faction, countVocab(tokens, factionVocab)},
		{category.Biome, countVocab(tokens, biomeVocab)},
		{category.Region, countVocab(tokens, regionVocab)},
		{category.Creature, countVocab(tokens, creatureVocab)},
		{category.Character, countVocab(tokens, characterVocab)},
	}

	best := category.Unknown
	bestScore := 0
	for _, s := range scores {
		if s.score > bestScore {
			best = s.cat
			bestScore = s.score
		}
	}
	return best
}

// categoryFromDeclared resolves an explicit structured "type" field.
// Hex tiles follow the "<Biome>Hex" naming convention.
func categoryFromDeclared(declared string) category.Category {
	lower := strings.ToLower(declared)
	if strings.HasSuffix(lower, "hex") {
		return category.Biome
	}
	for _, c := range category.All() {
		if lower == string(c) {
			return c
		}
	}
	return category.Unknown
}

var (
	biomeVocab = []string{
		"forest", "swamp", "marsh", "desert", "tundra", "hills", "plains",
		"mountains", "jungle", "terrain", "biome", "hex", "wetland",
	}
	regionVocab = []string{
		"region", "realm", "kingdom", "province", "land", "frontier",
		"territory", "duchy", "march", "vale", "reaches",
	}
	creatureVocab = []string{
		"creature", "beast", "monster", "claws", "fangs", "hide", "prowls",
		"hunts", "attacks", "venom", "wings", "hoard",
	}
	characterVocab = []string{
		"character", "npc", "hero", "adventurer", "level", "class",
		"fighter", "wizard", "rogue", "cleric", "quest",
	}
)

// keyTerms returns up to MaxKeyTerms capitalized spans, longest first,
// deduplicated. Sentence-leading single words are included; the cap keeps
// the payload small.
func keyTerms(content string) []string {
	matches := capSpanRe.FindAllString(content, -1)
	seen := make(map[string]struct{}, len(matches))
	var terms []string
	for _, m := range matches {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		terms = append(terms, m)
	}
	sort.SliceStable(terms, func(i, j int) bool {
		return len(terms[i]) > len(terms[j])
	})
	if len(terms) > MaxKeyTerms {
		terms = terms[:MaxKeyTerms]
	}
	return terms
}

// mentions returns every known proper name found verbatim in the content,
// case-insensitively, preserving the order of knownNames.
func mentions(content string, knownNames []string) []string {
	if len(knownNames) == 0 {
		return nil
	}
	lower := strings.ToLower(content)
	var found []string
	for _, name := range knownNames {
		if name == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(name)) {
			found = append(found, name)
		}
	}
	return found
}
