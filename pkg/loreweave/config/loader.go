package config

import (
	"fmt"

	"github.com/loreweave/loreweave/pkg/loreweave/category"
	"github.com/loreweave/loreweave/pkg/loreweave/ingest"
	"github.com/loreweave/loreweave/pkg/loreweave/lexicon"
	"github.com/loreweave/loreweave/pkg/loreweave/pattern"
	"github.com/loreweave/loreweave/pkg/loreweave/route"
)

// Loader loads all configuration files and constructs components.
// Only UniversePath is mandatory; the other files are optional and fall
// back to built-in defaults.
type Loader struct {
	UniversePath string
	StoplistPath string
	LexiconPath  string
	RulesPath    string
}

// Components holds all loaded configuration components.
type Components struct {
	Tokenizer *ingest.Tokenizer
	Universe  *route.Universe
	Router    pattern.Router
}

// Load reads all configuration files and returns initialized components.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	universe, err := LoadUniverse(l.UniversePath)
	if err != nil {
		return nil, fmt.Errorf("load universe: %w", err)
	}
	comp.Universe = universe

	if l.StoplistPath != "" {
		sl, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		comp.Tokenizer = ingest.NewTokenizer(sl.Terms)
	} else {
		comp.Tokenizer = ingest.NewTokenizer(DefaultStopwords())
	}

	if l.LexiconPath != "" {
		lex, err := lexicon.LoadFromYAML(l.LexiconPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		comp.Tokenizer.SetLexicon(lex)
	}

	if l.RulesPath != "" {
		rules, defaultCat, err := LoadRules(l.RulesPath)
		if err != nil {
			return nil, fmt.Errorf("load rules: %w", err)
		}
		comp.Router = pattern.NewKeywordRouter(rules, defaultCat)
	} else {
		comp.Router = pattern.NewKeywordRouter(pattern.DefaultRules(), category.Unknown)
	}

	return comp, nil
}

// DefaultStopwords is the built-in English stoplist used when no
// stoplist file is configured.
func DefaultStopwords() []string {
	return []string{
		"the", "a", "an", "and", "or", "but", "of", "to", "in", "on",
		"at", "by", "for", "with", "from", "as", "is", "are", "was",
		"were", "be", "been", "it", "its", "this", "that", "these",
		"those", "their", "there", "here", "has", "have", "had", "not",
		"no", "into", "over", "under", "through",
	}
}
