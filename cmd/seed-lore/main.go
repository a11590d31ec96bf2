// Command seed-lore creates a record store populated with sample
// world-building fragments and writes a matching universe file, so the
// extract pipeline can be exercised end to end without real data.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/loreweave/loreweave/pkg/loreweave/route"
	"github.com/loreweave/loreweave/pkg/loreweave/store"
	"github.com/loreweave/loreweave/pkg/loreweave/store/sqlite"
)

var sampleUniverse = route.Universe{
	Regions:     []string{"The Mistmarch", "Duchy of Veyl"},
	Settlements: []string{"Village of Dorith", "Port Haldane"},
	Factions:    []string{"Order of the Ashen Hand", "Riverside Smugglers"},
	Dungeons:    []string{"Barrow of Kings", "The Sunken Crypt"},
	Biomes:      []string{"Forest", "Swamp", "Hills"},
}

var sampleRecords = []store.Record{
	{ID: "reg-001", Content: "The Mistmarch stretches from the northern hills to the sea, a region of fog-drowned moors. Travelers speak of lights in the marshes."},
	{ID: "set-001", Content: "The Village of Dorith sits beside a river. Population of 340, mostly farmers and fisherfolk. The mayor keeps a ledger of strange happenings."},
	{ID: "set-002", Content: "Port Haldane is a walled harbor town. Market days draw merchants from across the Duchy of Veyl; trade in silver and salted fish."},
	{ID: "inn-001", Content: "The Gilded Antler is an inn on the coast road. Rooms cost 5 sp a night, ale is 4 cp, and the innkeeper hears every rumor worth selling."},
	{ID: "fac-001", Content: "The Order of the Ashen Hand is a cult devoted to the Ember Saint. Led by Matron Oresse, its members mark loyalty with burned palms."},
	{ID: "dun-001", Content: "The Barrow of Kings is a dungeon of seven chambers. A poison-dart trap guards the second door; treasure of 200 gp lies in the burial vault."},
	{ID: "dun-002", Content: "The Sunken Crypt floods at high tide. Ghouls prowl its corridors, and a cursed altar stands in the deepest chamber."},
	{ID: "cre-001", Content: "The marsh lurker is a creature of the wetlands. HD 4, AC 13. It attacks with claws (1d6) and drags prey into deep water."},
	{ID: "npc-001", Content: "Sera Valin, level 5 fighter, formerly a caravan guard. She carries a notched longsword and a grudge against the Riverside Smugglers."},
	{ID: "hex-001", Content: `{"type":"ForestHex","coords":"0405","features":["old shrine","logging camp"]}`},
	{ID: "hex-002", Content: `{"type":"SwampHex","coords":"0609","features":["sunken road"]}`},
	{ID: "hex-003", Content: `{"type":"HillsHex","coords":"0710","features":["watchtower ruin"]}`},
}

func main() {
	var (
		dbPath       = flag.String("db", "lore.db", "Path for the SQLite record store")
		universePath = flag.String("universe-out", "universe.yaml", "Path for the universe YAML")
	)
	flag.Parse()

	ctx := context.Background()

	st, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	for _, r := range sampleRecords {
		r.Source = "seed-lore"
		if err := st.PutRecord(ctx, r); err != nil {
			log.Fatal(err)
		}
	}

	data, err := yaml.Marshal(sampleUniverse)
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(*universePath, data, 0o644); err != nil {
		log.Fatal(err)
	}

	log.Printf("seeded %d records into %s, universe written to %s",
		len(sampleRecords), *dbPath, *universePath)
}
