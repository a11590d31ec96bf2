package ingest

import (
	"regexp"
	"strings"
)

// Vocabulary families used for structural signal counting. Matching is
// case-insensitive against whole tokens.
var (
	settlementVocab = []string{
		"village", "town", "city", "hamlet", "settlement", "inn", "tavern",
		"market", "shop", "smithy", "temple", "shrine", "mayor", "elder",
		"trade", "merchant", "caravan", "harbor", "dock", "mill", "farm",
	}
	dungeonVocab = []string{
		"dungeon", "crypt", "tomb", "lair", "cave", "cavern", "ruin",
		"ruins", "trap", "treasure", "chamber", "corridor", "vault",
		"passage", "stairs", "door", "chest", "altar",
	}
	factionVocab = []string{
		"faction", "guild", "cult", "order", "clan", "brotherhood",
		"sisterhood", "company", "league", "circle", "loyalty", "rival",
		"alliance", "war", "conflict", "territory", "leader", "member",
	}
	horrorVocab = []string{
		"corruption", "corrupted", "blight", "blighted", "curse", "cursed",
		"undead", "ghoul", "wraith", "shadow", "rot", "plague", "dread",
		"nightmare", "whisper", "madness", "tainted", "profane",
	}
	directionVocab = []string{
		"north", "south", "east", "west", "northeast", "northwest",
		"southeast", "southwest", "upstream", "downstream", "uphill",
	}
	currencyVocab = []string{
		"gp", "sp", "cp", "pp", "gold", "silver", "copper", "platinum",
		"coin", "coins",
	}
	titleVocab = []string{
		"lord", "lady", "king", "queen", "baron", "baroness", "duke",
		"duchess", "captain", "sergeant", "priest", "priestess", "abbot",
		"wizard", "sorcerer", "cleric", "fighter", "rogue", "ranger",
		"paladin", "druid", "bard", "warlock", "monk",
	}
)

var (
	diceRe       = regexp.MustCompile(`\b\d+[dD]\d+(?:[+-]\d+)?\b`)
	statBlockRe  = regexp.MustCompile(`\b(?:HD|HP|AC|STR|DEX|CON|INT|WIS|CHA|Level|Lvl|CR)\b\s*[:.]?\s*\d`)
	coordRe      = regexp.MustCompile(`\b\d{1,3}\s*,\s*\d{1,3}\b|\b(?:hex\s*)?\d{4}\b`)
	capSpanRe    = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+(?:of|the|[A-Z][a-z]+))*\b`)
	sentenceRe   = regexp.MustCompile(`[.!?]+`)
	quotedSpanRe = regexp.MustCompile(`"[^"]+"|“[^”]+”`)
)

// Features is a flat map of named scalar/boolean signals derived from one
// record's content. Boolean signals are encoded as 0/1. Extraction never
// fails; an absent signal yields its zero value.
type Features map[string]float64

// ExtractFeatures computes the hand-engineered structural signal map for a
// single record's content.
func ExtractFeatures(content string) Features {
	f := make(Features, 24)

	words := strings.Fields(content)
	lines := strings.Split(content, "\n")

	f["length"] = float64(len(content))
	f["word_count"] = float64(len(words))
	f["line_count"] = float64(len(lines))
	f["sentence_count"] = float64(len(sentenceRe.FindAllString(content, -1)))
	if len(words) > 0 {
		total := 0
		for _, w := range words {
			total += len(w)
		}
		f["avg_word_length"] = float64(total) / float64(len(words))
	}

	f["has_stat_block"] = boolSignal(statBlockRe.MatchString(content))
	f["has_dice_notation"] = boolSignal(diceRe.MatchString(content))
	f["has_coordinates"] = boolSignal(coordRe.MatchString(content))
	f["has_dialogue"] = boolSignal(quotedSpanRe.MatchString(content))

	lower := strings.ToLower(content)
	tokens := fieldTokens(lower)

	f["currency_count"] = float64(countVocab(tokens, currencyVocab))
	f["direction_count"] = float64(countVocab(tokens, directionVocab))
	f["title_count"] = float64(countVocab(tokens, titleVocab))
	f["settlement_term_count"] = float64(countVocab(tokens, settlementVocab))
	f["dungeon_term_count"] = float64(countVocab(tokens, dungeonVocab))
	f["faction_term_count"] = float64(countVocab(tokens, factionVocab))
	f["horror_term_count"] = float64(countVocab(tokens, horrorVocab))

	f["capitalized_span_count"] = float64(len(capSpanRe.FindAllString(content, -1)))

	return f
}

// Richness measures how much classification signal a feature map carries.
// Used by the confidence scorer: richer content earns higher ML confidence.
func (f Features) Richness() float64 {
	score := 0.0
	for _, key := range []string{
		"has_stat_block", "has_dice_notation", "has_coordinates",
		"has_dialogue",
	} {
		score += f[key]
	}
	for _, key := range []string{
		"settlement_term_count", "dungeon_term_count",
		"faction_term_count", "horror_term_count", "title_count",
	} {
		if f[key] > 0 {
			score++
		}
	}
	return score
}

func boolSignal(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// fieldTokens splits lowercased content into plain word tokens for
// vocabulary counting. Punctuation is stripped at token edges.
func fieldTokens(lower string) map[string]int {
	counts := make(map[string]int)
	for _, w := range strings.Fields(lower) {
		w = strings.Trim(w, ".,;:!?\"'()[]{}")
		if w == "" {
			continue
		}
		counts[w]++
	}
	return counts
}

func countVocab(tokens map[string]int, vocab []string) int {
	n := 0
	for _, v := range vocab {
		n += tokens[v]
	}
	return n
}
