package config

import (
	"testing"

	"github.com/loreweave/loreweave/pkg/loreweave/category"
)

func TestLoaderUniverseOnly(t *testing.T) {
	loader := Loader{
		UniversePath: writeFile(t, "universe.yaml", "regions: [The Mistmarch]\n"),
	}
	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if comp.Universe == nil || comp.Tokenizer == nil || comp.Router == nil {
		t.Fatalf("Incomplete components: %+v", comp)
	}

	// Default tokenizer carries the built-in stoplist.
	tokens := comp.Tokenizer.Tokenize("the fog and the moors")
	for _, tok := range tokens {
		if tok == "the" || tok == "and" {
			t.Errorf("Default stopword %q survived", tok)
		}
	}

	// Default router classifies with the built-in rules.
	c, err := comp.Router.Classify("x", "a village with a market")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if c.Category != category.Settlement {
		t.Errorf("Category = %q, want settlement", c.Category)
	}
}

func TestLoaderAllFiles(t *testing.T) {
	loader := Loader{
		UniversePath: writeFile(t, "universe.yaml", "regions: [The Mistmarch]\n"),
		StoplistPath: writeFile(t, "stoplist.yaml", "terms: [zzz]\n"),
		LexiconPath: writeFile(t, "lexicon.yaml", `synonyms:
  - canonical: village
    variants: [hamlet]
`),
		RulesPath: writeFile(t, "rules.yaml", `rules:
  - category: settlement
    keywords: [village]
default: unknown
`),
	}
	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Custom stoplist replaces the default one.
	tokens := comp.Tokenizer.Tokenize("zzz the village")
	for _, tok := range tokens {
		if tok == "zzz" {
			t.Error("Custom stopword survived")
		}
	}

	// Lexicon normalization flows through the tokenizer.
	tokens = comp.Tokenizer.Tokenize("a quiet hamlet")
	found := false
	for _, tok := range tokens {
		if tok == "village" {
			found = true
		}
	}
	if !found {
		t.Errorf("Lexicon did not normalize 'hamlet': %v", tokens)
	}

	c, err := comp.Router.Classify("x", "no keywords at all here")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if c.Category != category.Unknown {
		t.Errorf("Default category = %q, want unknown", c.Category)
	}
}

func TestLoaderMissingUniverse(t *testing.T) {
	loader := Loader{UniversePath: "/nonexistent/universe.yaml"}
	if _, err := loader.Load(); err == nil {
		t.Error("Expected error for missing universe")
	}
}
