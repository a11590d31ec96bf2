// Package route assigns raw records to named buckets for downstream
// processor dispatch. The bucket universe is fixed at construction:
// every known (category, name) pair gets an empty bucket up front, so
// downstream processors can rely on deterministic bucket identity even
// when a bucket ends up empty.
package route

import (
	"fmt"
	"hash/fnv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/loreweave/loreweave/pkg/loreweave/category"
	"github.com/loreweave/loreweave/pkg/loreweave/internalerr"
)

// Universe is the pre-loaded set of known proper names per category.
type Universe struct {
	Regions     []string `yaml:"regions"`
	Settlements []string `yaml:"settlements"`
	Factions    []string `yaml:"factions"`
	Dungeons    []string `yaml:"dungeons"`
	Biomes      []string `yaml:"biomes"`
}

// AllNames returns every known proper name, in category priority order.
func (u *Universe) AllNames() []string {
	var names []string
	names = append(names, u.Regions...)
	names = append(names, u.Settlements...)
	names = append(names, u.Factions...)
	names = append(names, u.Dungeons...)
	names = append(names, u.Biomes...)
	return names
}

// Key identifies one bucket. Stable for the lifetime of a run.
type Key struct {
	Category category.Category
	Name     string
}

// Member is one routed record.
type Member struct {
	ID      string
	Content string
}

// Bucket is a named, pre-declared collection point for records sharing
// a known category and proper name. Never merged, renamed, or re-keyed
// after creation.
type Bucket struct {
	Category      category.Category
	Name          string
	ProcessorType string
	Members       []Member
}

// EntityCount returns the bucket's occupancy.
func (b *Bucket) EntityCount() int { return len(b.Members) }

// Keyword fallback families, evaluated in priority order after every
// exact-name rule misses.
var (
	settlementWords = []string{"village", "town", "city", "hamlet", "inn", "tavern", "market"}
	dungeonWords    = []string{"dungeon", "crypt", "tomb", "lair", "ruins", "trap"}
	factionWords    = []string{"guild", "cult", "faction", "order", "clan", "brotherhood"}
)

// memoSize bounds the routing memo. Routing is a pure function of
// (content, declared type) for a fixed universe, so hits are always safe.
const memoSize = 4096

// Router routes records into the fixed bucket universe.
type Router struct {
	universe *Universe
	buckets  map[Key]*Bucket
	order    []Key // creation order, for deterministic iteration

	memo          *lru.Cache[uint64, memoEntry]
	uncategorized []string
}

type memoEntry struct {
	key     Key
	matched bool
}

// NewRouter pre-creates one empty bucket per known (category, name)
// pair. A universe with no names at all is a configuration error.
func NewRouter(u *Universe) (*Router, error) {
	if u == nil || len(u.AllNames()) == 0 {
		return nil, fmt.Errorf("route: %w: empty universe", internalerr.ErrInvalidConfig)
	}

	r := &Router{
		universe: u,
		buckets:  make(map[Key]*Bucket),
	}
	r.memo, _ = lru.New[uint64, memoEntry](memoSize)

	add := func(cat category.Category, names []string) {
		for _, name := range names {
			if name == "" {
				continue
			}
			key := Key{Category: cat, Name: name}
			if _, exists := r.buckets[key]; exists {
				continue
			}
			r.buckets[key] = &Bucket{
				Category:      cat,
				Name:          name,
				ProcessorType: category.ProcessorFor(cat),
			}
			r.order = append(r.order, key)
		}
	}
	add(category.Region, u.Regions)
	add(category.Settlement, u.Settlements)
	add(category.Faction, u.Factions)
	add(category.Dungeon, u.Dungeons)
	add(category.Biome, u.Biomes)

	return r, nil
}

// Route assigns one record to exactly one bucket, or collects it as
// uncategorized. Evaluation is strict priority order: known region name,
// settlement name, faction name, dungeon name, "<Biome>Hex" declared
// type, then generic keyword families.
func (r *Router) Route(id, content, declaredType string) (Key, bool) {
	h := memoHash(content, declaredType)
	if entry, ok := r.memo.Get(h); ok {
		r.record(id, content, entry.key, entry.matched)
		return entry.key, entry.matched
	}

	key, matched := r.resolve(content, declaredType)
	r.memo.Add(h, memoEntry{key: key, matched: matched})
	r.record(id, content, key, matched)
	return key, matched
}

func (r *Router) record(id, content string, key Key, matched bool) {
	if !matched {
		r.uncategorized = append(r.uncategorized, id)
		return
	}
	b := r.buckets[key]
	b.Members = append(b.Members, Member{ID: id, Content: content})
}

func (r *Router) resolve(content, declaredType string) (Key, bool) {
	lower := strings.ToLower(content)

	// 1-4: exact substring match of known proper names, by priority.
	for _, step := range []struct {
		cat   category.Category
		names []string
	}{
		{category.Region, r.universe.Regions},
		{category.Settlement, r.universe.Settlements},
		{category.Faction, r.universe.Factions},
		{category.Dungeon, r.universe.Dungeons},
	} {
		for _, name := range step.names {
			if name != "" && strings.Contains(lower, strings.ToLower(name)) {
				return Key{Category: step.cat, Name: name}, true
			}
		}
	}

	// 5: "<Biome>Hex" declared-type convention.
	if biome, ok := biomeFromDeclared(declaredType, r.universe.Biomes); ok {
		return Key{Category: category.Biome, Name: biome}, true
	}

	// 6: generic keyword families, routed to the first bucket of the
	// matching category.
	for _, fam := range []struct {
		cat   category.Category
		words []string
		names []string
	}{
		{category.Settlement, settlementWords, r.universe.Settlements},
		{category.Dungeon, dungeonWords, r.universe.Dungeons},
		{category.Faction, factionWords, r.universe.Factions},
	} {
		if len(fam.names) == 0 {
			continue
		}
		for _, w := range fam.words {
			if strings.Contains(lower, w) {
				return Key{Category: fam.cat, Name: fam.names[0]}, true
			}
		}
	}

	// 7: uncategorized.
	return Key{}, false
}

// biomeFromDeclared matches a declared type like "ForestHex" against the
// known biomes.
func biomeFromDeclared(declaredType string, biomes []string) (string, bool) {
	if declaredType == "" {
		return "", false
	}
	lower := strings.ToLower(declaredType)
	if !strings.HasSuffix(lower, "hex") {
		return "", false
	}
	stem := lower[:len(lower)-len("hex")]
	for _, b := range biomes {
		if strings.ToLower(b) == stem {
			return b, true
		}
	}
	return "", false
}

// Buckets returns the bucket table keyed by (category, name).
func (r *Router) Buckets() map[Key]*Bucket {
	return r.buckets
}

// Keys returns bucket keys in creation order.
func (r *Router) Keys() []Key {
	out := make([]Key, len(r.order))
	copy(out, r.order)
	return out
}

// Uncategorized returns the ids of records no rule could place.
func (r *Router) Uncategorized() []string {
	out := make([]string, len(r.uncategorized))
	copy(out, r.uncategorized)
	return out
}

// Occupancy reports per-bucket member counts, creation order.
func (r *Router) Occupancy() map[Key]int {
	occ := make(map[Key]int, len(r.buckets))
	for key, b := range r.buckets {
		occ[key] = len(b.Members)
	}
	return occ
}

func memoHash(content, declaredType string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(declaredType))
	h.Write([]byte{0})
	h.Write([]byte(content))
	return h.Sum64()
}
