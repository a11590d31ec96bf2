// Command loreweave-extract runs one classification batch over every
// record in a store and prints the routing summary. The batch result can
// optionally be persisted back into the store.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/loreweave/loreweave/pkg/loreweave"
	"github.com/loreweave/loreweave/pkg/loreweave/config"
	"github.com/loreweave/loreweave/pkg/loreweave/store"
	"github.com/loreweave/loreweave/pkg/loreweave/store/sqlite"
	"github.com/loreweave/loreweave/pkg/loreweave/tune/entities"
)

func main() {
	var (
		dbPath       = flag.String("db", "", "Path to SQLite record store (required)")
		universeCfg  = flag.String("universe", "", "Known-name universe YAML (required)")
		stoplistCfg  = flag.String("stoplist", "", "Optional stoplist YAML")
		lexiconCfg   = flag.String("lexicon", "", "Optional lexicon YAML")
		rulesCfg     = flag.String("rules", "", "Optional pattern-router rules YAML")
		save         = flag.Bool("save", false, "Persist the batch result into the store")
		suggest      = flag.Bool("suggest", false, "Print universe suggestions mined from uncategorized records")
		printClasses = flag.Bool("classifications", false, "Print per-record classifications")
	)
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("--db required")
	}
	if *universeCfg == "" {
		log.Fatal("--universe required")
	}

	ctx := context.Background()

	loader := config.Loader{
		UniversePath: *universeCfg,
		StoplistPath: *stoplistCfg,
		LexiconPath:  *lexiconCfg,
		RulesPath:    *rulesCfg,
	}
	comp, err := loader.Load()
	if err != nil {
		log.Fatal(err)
	}

	st, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	records, err := st.ListRecords(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if len(records) == 0 {
		log.Fatal("store has no records; run seed-lore or import-lore first")
	}

	batch := make([]loreweave.RawRecord, len(records))
	for i, r := range records {
		batch[i] = loreweave.RawRecord{ID: r.ID, Content: r.Content}
	}

	engine, err := loreweave.New(loreweave.Options{
		Universe:  comp.Universe,
		Pattern:   comp.Router,
		Tokenizer: comp.Tokenizer,
		Logger:    log.Default(),
	})
	if err != nil {
		log.Fatal(err)
	}

	result, err := engine.ProcessBatch(ctx, batch)
	if err != nil {
		log.Fatal(err)
	}

	for _, line := range result.Summary.Lines {
		fmt.Println(line)
	}
	fmt.Printf("success rate: %.2f, relationships: %d, anomalies: %d\n",
		result.SuccessRate, len(result.Relationships), result.AnomalyCount)

	if *printClasses {
		for _, c := range result.Classifications {
			fmt.Printf("  %s: %s (ml %s %.2f / pattern %s %.2f, combined %.2f)\n",
				c.ID, c.FinalCategory, c.MLCategory, c.MLConfidence,
				c.PatternCategory, c.PatternConfidence, c.CombinedConfidence)
		}
	}

	if *suggest && len(result.Summary.Uncategorized) > 0 {
		uncat := make(map[string]struct{}, len(result.Summary.Uncategorized))
		for _, id := range result.Summary.Uncategorized {
			uncat[id] = struct{}{}
		}
		var contents []string
		for _, r := range records {
			if _, ok := uncat[r.ID]; ok {
				contents = append(contents, r.Content)
			}
		}
		tuner := entities.Tuner{Universe: comp.Universe}
		for _, s := range tuner.Suggest(contents) {
			fmt.Printf("suggest: %s %q (seen %d times)\n", s.Category, s.Name, s.Occurrences)
		}
	}

	if *save {
		run, err := buildRun(result, len(batch))
		if err != nil {
			log.Fatal(err)
		}
		if err := st.SaveRun(ctx, run); err != nil {
			log.Fatal(err)
		}
		log.Printf("saved run %s", run.RunID)
	}
}

func buildRun(result *loreweave.BatchResult, recordCount int) (store.Run, error) {
	classJSON, err := json.Marshal(result.Classifications)
	if err != nil {
		return store.Run{}, err
	}
	relJSON, err := json.Marshal(result.Relationships)
	if err != nil {
		return store.Run{}, err
	}
	sumJSON, err := json.Marshal(result.Summary)
	if err != nil {
		return store.Run{}, err
	}
	return store.Run{
		RunID:               result.RunID,
		RecordCount:         recordCount,
		SuccessRate:         result.SuccessRate,
		AnomalyCount:        result.AnomalyCount,
		ClassificationsJSON: string(classJSON),
		RelationshipsJSON:   string(relJSON),
		SummaryJSON:         string(sumJSON),
	}, nil
}
