package route

import (
	"errors"
	"testing"

	"github.com/loreweave/loreweave/pkg/loreweave/category"
	"github.com/loreweave/loreweave/pkg/loreweave/internalerr"
)

func testUniverse() *Universe {
	return &Universe{
		Regions:     []string{"The Mistmarch"},
		Settlements: []string{"Village of Dorith", "Port Haldane"},
		Factions:    []string{"Order of the Ashen Hand"},
		Dungeons:    []string{"Barrow of Kings"},
		Biomes:      []string{"Forest", "Swamp"},
	}
}

func TestNewRouterPreCreatesBuckets(t *testing.T) {
	r, err := NewRouter(testUniverse())
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}

	want := 7 // 1 region + 2 settlements + 1 faction + 1 dungeon + 2 biomes
	if len(r.Buckets()) != want {
		t.Fatalf("Expected %d pre-created buckets, got %d", want, len(r.Buckets()))
	}
	for key, b := range r.Buckets() {
		if b.EntityCount() != 0 {
			t.Errorf("Bucket %v starts with %d members, want 0", key, b.EntityCount())
		}
	}

	b := r.Buckets()[Key{Category: category.Biome, Name: "Forest"}]
	if b == nil {
		t.Fatal("Missing Forest biome bucket")
	}
	if b.ProcessorType != category.ProcessorRegions {
		t.Errorf("Biome ProcessorType = %q, want %q", b.ProcessorType, category.ProcessorRegions)
	}
}

func TestNewRouterEmptyUniverse(t *testing.T) {
	for _, u := range []*Universe{nil, {}} {
		if _, err := NewRouter(u); !errors.Is(err, internalerr.ErrInvalidConfig) {
			t.Errorf("NewRouter(%v) error = %v, want ErrInvalidConfig", u, err)
		}
	}
}

func TestRouteKnownNames(t *testing.T) {
	r, _ := NewRouter(testUniverse())

	tests := []struct {
		content string
		want    Key
	}{
		{"Fog rolls over The Mistmarch at dusk.", Key{category.Region, "The Mistmarch"}},
		{"Traders leave the village of dorith at dawn.", Key{category.Settlement, "Village of Dorith"}},
		{"The Order of the Ashen Hand meets in secret.", Key{category.Faction, "Order of the Ashen Hand"}},
		{"Seven chambers make up the Barrow of Kings.", Key{category.Dungeon, "Barrow of Kings"}},
	}
	for i, tt := range tests {
		key, ok := r.Route(string(rune('a'+i)), tt.content, "")
		if !ok {
			t.Errorf("Route(%q) unmatched", tt.content)
			continue
		}
		if key != tt.want {
			t.Errorf("Route(%q) = %v, want %v", tt.content, key, tt.want)
		}
	}
}

func TestRoutePriorityRegionBeatsSettlement(t *testing.T) {
	r, _ := NewRouter(testUniverse())

	// Content mentioning both a region and a settlement goes to the region.
	content := "Port Haldane guards the coast road into The Mistmarch."
	key, ok := r.Route("x", content, "")
	if !ok {
		t.Fatal("Route unmatched")
	}
	if key.Category != category.Region || key.Name != "The Mistmarch" {
		t.Errorf("Route = %v, want region The Mistmarch (priority order)", key)
	}
}

func TestRouteDeclaredBiomeHex(t *testing.T) {
	r, _ := NewRouter(testUniverse())

	key, ok := r.Route("hex-1", `{"type":"ForestHex","coords":"0405"}`, "ForestHex")
	if !ok {
		t.Fatal("Route unmatched for declared hex")
	}
	if key.Category != category.Biome || key.Name != "Forest" {
		t.Errorf("Route = %v, want biome Forest", key)
	}

	// A declared hex outside the known biomes falls through.
	_, ok = r.Route("hex-2", `{"type":"GlacierHex"}`, "GlacierHex")
	if ok {
		t.Error("Unknown biome hex should not route to a biome bucket")
	}
}

func TestRouteKeywordFallback(t *testing.T) {
	r, _ := NewRouter(testUniverse())

	// No known name, but settlement keywords: goes to the first
	// settlement bucket.
	key, ok := r.Route("kw-1", "A small town with a busy market.", "")
	if !ok {
		t.Fatal("Keyword fallback unmatched")
	}
	want := Key{category.Settlement, "Village of Dorith"}
	if key != want {
		t.Errorf("Route = %v, want %v", key, want)
	}

	key, ok = r.Route("kw-2", "A collapsed crypt full of traps.", "")
	if !ok {
		t.Fatal("Keyword fallback unmatched")
	}
	if key.Category != category.Dungeon {
		t.Errorf("Route = %v, want dungeon fallback", key)
	}
}

func TestRouteUncategorized(t *testing.T) {
	r, _ := NewRouter(testUniverse())

	_, ok := r.Route("u-1", "an unremarkable scrap of paper", "")
	if ok {
		t.Fatal("Expected unmatched route")
	}
	uncat := r.Uncategorized()
	if len(uncat) != 1 || uncat[0] != "u-1" {
		t.Errorf("Uncategorized = %v, want [u-1]", uncat)
	}
}

func TestRouteMembershipAndOccupancy(t *testing.T) {
	r, _ := NewRouter(testUniverse())

	key, _ := r.Route("m-1", "Deep in The Mistmarch.", "")
	r.Route("m-2", "Further into The Mistmarch.", "")

	b := r.Buckets()[key]
	if b.EntityCount() != 2 {
		t.Errorf("EntityCount = %d, want 2", b.EntityCount())
	}
	if b.Members[0].ID != "m-1" || b.Members[1].ID != "m-2" {
		t.Errorf("Members = %v", b.Members)
	}
	if occ := r.Occupancy(); occ[key] != 2 {
		t.Errorf("Occupancy[%v] = %d, want 2", key, occ[key])
	}
}

func TestRouteMemoConsistency(t *testing.T) {
	r, _ := NewRouter(testUniverse())

	content := "Traders reach Port Haldane by sea."
	k1, ok1 := r.Route("r-1", content, "")
	k2, ok2 := r.Route("r-2", content, "")

	if k1 != k2 || ok1 != ok2 {
		t.Errorf("Memoized route differs: %v/%v vs %v/%v", k1, ok1, k2, ok2)
	}
	// Both records must still be recorded as members.
	if n := r.Buckets()[k1].EntityCount(); n != 2 {
		t.Errorf("EntityCount = %d, want 2 despite memo hit", n)
	}
}

func TestKeysCreationOrder(t *testing.T) {
	r, _ := NewRouter(testUniverse())
	keys := r.Keys()
	if len(keys) != 7 {
		t.Fatalf("Keys = %d, want 7", len(keys))
	}
	// Regions come first, biomes last.
	if keys[0].Category != category.Region {
		t.Errorf("First key = %v, want a region", keys[0])
	}
	if keys[len(keys)-1].Category != category.Biome {
		t.Errorf("Last key = %v, want a biome", keys[len(keys)-1])
	}
}

func TestBiomeFromDeclared(t *testing.T) {
	biomes := []string{"Forest", "Swamp"}
	tests := []struct {
		declared string
		want     string
		ok       bool
	}{
		{"ForestHex", "Forest", true},
		{"swamphex", "Swamp", true},
		{"GlacierHex", "", false},
		{"Forest", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := biomeFromDeclared(tt.declared, biomes)
		if got != tt.want || ok != tt.ok {
			t.Errorf("biomeFromDeclared(%q) = %q,%v want %q,%v", tt.declared, got, ok, tt.want, tt.ok)
		}
	}
}
