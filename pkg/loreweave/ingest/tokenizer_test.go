package ingest

import (
	"strings"
	"testing"

	"github.com/loreweave/loreweave/pkg/loreweave/lexicon"
	"github.com/loreweave/loreweave/pkg/loreweave/stoplist"
)

func TestTokenizerBasic(t *testing.T) {
	stopwords := []string{"the", "a", "and", "of"}
	tokenizer := NewTokenizer(stopwords)

	text := "The village elder keeps a ledger of strange happenings"
	tokens := tokenizer.Tokenize(text)

	for _, tok := range tokens {
		if tok == "the" {
			t.Error("Stopword 'the' should be filtered")
		}
	}

	want := []string{"village", "elder", "keeps", "ledger", "strange", "happenings"}
	if !equalTokens(tokens, want) {
		t.Errorf("Tokenize(%q) = %v, want %v", text, tokens, want)
	}
}

func TestTokenizerCaseNormalization(t *testing.T) {
	tokenizer := NewTokenizer([]string{})

	text := "The Barrow of Kings HOLDS Treasure"
	tokens := tokenizer.Tokenize(text)

	for _, tok := range tokens {
		if tok != strings.ToLower(tok) {
			t.Errorf("Token %s should be lowercased", tok)
		}
	}
}

func TestTokenizerKeepsDiceNotation(t *testing.T) {
	tokenizer := NewTokenizer([]string{})

	// Dice notation and hex coordinates are mixed alphanumeric tokens and
	// must survive tokenization; pure numbers must not.
	text := "attacks with claws 1d6 at hex-0405 in 2026"
	tokens := tokenizer.Tokenize(text)

	wantContains := []string{"1d6", "hex-0405"}
	for _, want := range wantContains {
		found := false
		for _, got := range tokens {
			if got == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected token %q not found in %v", want, tokens)
		}
	}

	for _, tok := range tokens {
		if tok == "2026" {
			t.Error("Pure-numeric token should be filtered")
		}
	}
}

func TestTokenizerHyphenCleanup(t *testing.T) {
	tokenizer := NewTokenizer([]string{})

	text := "-fog-drowned moors-- and - alone"
	tokens := tokenizer.Tokenize(text)

	for _, tok := range tokens {
		if strings.HasPrefix(tok, "-") || strings.HasSuffix(tok, "-") {
			t.Errorf("Token %q has leading/trailing hyphen", tok)
		}
		if strings.Contains(tok, "--") {
			t.Errorf("Token %q contains consecutive hyphens", tok)
		}
	}
}

func TestTokenizerSingleCharacterFiltering(t *testing.T) {
	tokenizer := NewTokenizer([]string{})

	text := "a b c marsh lurker"
	tokens := tokenizer.Tokenize(text)

	for _, tok := range tokens {
		if len(tok) == 1 {
			t.Errorf("Single character token should be filtered: %s", tok)
		}
	}
	if len(tokens) != 2 {
		t.Errorf("Expected 2 tokens, got %d: %v", len(tokens), tokens)
	}
}

func TestTokenizerEmptyInput(t *testing.T) {
	tokenizer := NewTokenizer([]string{})

	if tokens := tokenizer.Tokenize(""); len(tokens) != 0 {
		t.Error("Empty input should produce empty output")
	}
	if tokens := tokenizer.Tokenize("   \t\n\r   "); len(tokens) != 0 {
		t.Error("Whitespace-only input should produce empty output")
	}
}

func TestAddRemoveStopword(t *testing.T) {
	tokenizer := NewTokenizer([]string{"the"})

	tokens := tokenizer.Tokenize("the crypt")
	if len(tokens) != 1 || tokens[0] != "crypt" {
		t.Error("Should filter 'the'")
	}

	tokenizer.RemoveStopword("the")
	if tokens := tokenizer.Tokenize("the crypt"); len(tokens) != 2 {
		t.Error("'the' should not be filtered after removal")
	}

	tokenizer.AddStopword("the")
	tokens = tokenizer.Tokenize("the crypt")
	if len(tokens) != 1 || tokens[0] != "crypt" {
		t.Error("Should filter 'the' after re-adding")
	}
}

func TestRemoveStopwordCaseInsensitive(t *testing.T) {
	tokenizer := NewTokenizer([]string{"the"})

	tokenizer.RemoveStopword("The")
	tokens := tokenizer.Tokenize("the crypt")
	if len(tokens) != 2 {
		t.Errorf("RemoveStopword must ignore case, got %v", tokens)
	}
}

func TestTokenizerStoplistManager(t *testing.T) {
	tokenizer := NewTokenizer([]string{"the"})

	m := tokenizer.Stoplist()
	if r, ok := m.ReasonFor("the"); !ok || !r.Manual {
		t.Errorf("Seeded stopword should carry a manual reason, got %+v ok=%v", r, ok)
	}

	tokenizer.AddStopword("Ubiquitous")
	if r, ok := m.ReasonFor("ubiquitous"); !ok || !r.Manual {
		t.Errorf("Added stopword should be lowercased with a manual reason, got %+v ok=%v", r, ok)
	}

	// Entries added through the manager directly filter tokens too.
	m.Add("marsh", stoplist.Reason{HighDF: true, DF: 0.97})
	tokens := tokenizer.Tokenize("the marsh crypt")
	if len(tokens) != 1 || tokens[0] != "crypt" {
		t.Errorf("Manager entry should filter tokens, got %v", tokens)
	}
}

func TestTokenizerStopwordCaseInsensitive(t *testing.T) {
	tokenizer := NewTokenizer([]string{"THE", "A"})

	tokens := tokenizer.Tokenize("The ghoul and the wraith")
	for _, tok := range tokens {
		if tok == "the" {
			t.Errorf("Stopword should be filtered regardless of case: %s", tok)
		}
	}
}

func TestTokenizerLexiconNormalization(t *testing.T) {
	tokenizer := NewTokenizer([]string{})

	lex := lexicon.New()
	lex.AddSynonymGroup("village", []string{"hamlet", "thorp"})
	lex.AddSynonymGroup("crypt", []string{"catacombs", "ossuary"})

	tokenizer.SetLexicon(lex)

	text := "The hamlet sits above the catacombs"
	tokens := tokenizer.Tokenize(text)

	foundVillage := false
	foundCrypt := false
	for _, tok := range tokens {
		switch tok {
		case "village":
			foundVillage = true
		case "crypt":
			foundCrypt = true
		case "hamlet", "catacombs":
			t.Errorf("Token %q should have been normalized", tok)
		}
	}
	if !foundVillage {
		t.Error("Expected normalized token 'village' not found")
	}
	if !foundCrypt {
		t.Error("Expected normalized token 'crypt' not found")
	}
}

func TestTokenizerWithoutLexicon(t *testing.T) {
	tokenizer := NewTokenizer([]string{})

	tokens := tokenizer.Tokenize("hamlet above catacombs")
	want := []string{"hamlet", "above", "catacombs"}
	if !equalTokens(tokens, want) {
		t.Errorf("Without lexicon, got %v, want %v", tokens, want)
	}
}

func equalTokens(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
