package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/loreweave/loreweave/pkg/loreweave/category"
	"github.com/loreweave/loreweave/pkg/loreweave/internalerr"
	"github.com/loreweave/loreweave/pkg/loreweave/pattern"
	"github.com/loreweave/loreweave/pkg/loreweave/route"
)

// LoadUniverse loads the known-name universe from a YAML file.
//
// Expected format:
//
//	regions: [The Mistmarch, Duchy of Veyl]
//	settlements: [Village of Dorith, Port Haldane]
//	factions: [Order of the Ashen Hand]
//	dungeons: [Barrow of Kings]
//	biomes: [Forest, Swamp, Desert]
func LoadUniverse(path string) (*route.Universe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var u route.Universe
	if err := yaml.Unmarshal(data, &u); err != nil {
		return nil, err
	}
	if len(u.AllNames()) == 0 {
		return nil, fmt.Errorf("universe %s: %w: no names defined", path, internalerr.ErrInvalidConfig)
	}
	return &u, nil
}

// Stoplist represents the stopword list configuration.
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file.
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}
	return &sl, nil
}

// RuleFile is the YAML schema for pattern-router rules.
type RuleFile struct {
	Rules []struct {
		Category string   `yaml:"category"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"rules"`
	Default string `yaml:"default"` // category for unmatched records; empty = hard failure
}

// LoadRules loads the pattern-router rule table from a YAML file.
func LoadRules(path string) ([]pattern.Rule, category.Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}

	var rf RuleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, "", err
	}
	if len(rf.Rules) == 0 {
		return nil, "", fmt.Errorf("rules %s: %w: no rules defined", path, internalerr.ErrInvalidConfig)
	}

	rules := make([]pattern.Rule, len(rf.Rules))
	for i, r := range rf.Rules {
		if r.Category == "" {
			return nil, "", fmt.Errorf("rules %s: %w: rule %d missing category", path, internalerr.ErrInvalidConfig, i)
		}
		rules[i] = pattern.Rule{
			Category: category.Category(r.Category),
			Keywords: r.Keywords,
		}
	}
	return rules, category.Category(rf.Default), nil
}
