// Command import-lore imports record fragments from JSONL or HTML files
// into a record store. HTML files are reduced to plain text first.
package main

import (
	"context"
	"flag"
	"log"
	"path/filepath"
	"strings"

	"github.com/loreweave/loreweave/internal/lorefile"
	"github.com/loreweave/loreweave/pkg/loreweave/store"
	"github.com/loreweave/loreweave/pkg/loreweave/store/sqlite"
)

func main() {
	dbPath := flag.String("db", "", "Path to SQLite record store (required)")
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("--db required")
	}
	if flag.NArg() == 0 {
		log.Fatal("usage: import-lore --db lore.db file.jsonl [fragment.html ...]")
	}

	ctx := context.Background()

	st, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	imported := 0
	for _, path := range flag.Args() {
		frags, err := loadFile(path)
		if err != nil {
			log.Fatalf("import %s: %v", path, err)
		}
		for _, f := range frags {
			rec := store.Record{ID: f.ID, Content: f.Content, Source: f.Source}
			if err := st.PutRecord(ctx, rec); err != nil {
				log.Fatalf("store %s: %v", f.ID, err)
			}
			imported++
		}
	}

	log.Printf("imported %d records", imported)
}

func loadFile(path string) ([]lorefile.Fragment, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		f, err := lorefile.LoadHTML(path)
		if err != nil {
			return nil, err
		}
		return []lorefile.Fragment{f}, nil
	default:
		return lorefile.LoadJSONL(path)
	}
}
