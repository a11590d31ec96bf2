package category

// Category is the closed set of game-entity categories the engine can
// assign. New categories are added here, never as ad-hoc strings.
type Category string

const (
	Region     Category = "region"
	Settlement Category = "settlement"
	Faction    Category = "faction"
	Dungeon    Category = "dungeon"
	Biome      Category = "biome"
	Creature   Category = "creature"
	Character  Category = "character"
	Item       Category = "item"
	Inn        Category = "inn"
	Unknown    Category = "unknown"
)

// Processor identifiers for downstream dispatch.
const (
	ProcessorRegions     = "regions"
	ProcessorSettlements = "settlements"
	ProcessorFactions    = "factions"
	ProcessorDungeons    = "dungeons"
	ProcessorGeneric     = "generic"
)

// ProcessorFor maps a category to the specialized processor that consumes
// its clusters. Biome tiles reuse the regions processor: hex terrain is
// generated by the same machinery as regions.
func ProcessorFor(c Category) string {
	switch c {
	case Region:
		return ProcessorRegions
	case Settlement:
		return ProcessorSettlements
	case Faction:
		return ProcessorFactions
	case Dungeon:
		return ProcessorDungeons
	case Biome:
		return ProcessorRegions
	default:
		return ProcessorGeneric
	}
}

// All lists every known category, in stable order.
func All() []Category {
	return []Category{
		Region, Settlement, Faction, Dungeon, Biome,
		Creature, Character, Item, Inn,
	}
}
