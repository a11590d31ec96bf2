// Package lorefile reads world-building record fragments from disk for
// import into a record store. Supported inputs: JSONL files (one record
// per line) and HTML fragment files, which are reduced to plain text.
package lorefile

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// Fragment is one record awaiting import.
type Fragment struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Source  string `json:"source,omitempty"`
}

// LoadJSONL loads fragments from a JSONL file. Malformed lines are
// skipped with a warning; a file with no valid fragments is an error.
func LoadJSONL(path string) ([]Fragment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var frags []Fragment
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var f Fragment
		if err := json.Unmarshal([]byte(line), &f); err != nil {
			log.Printf("Warning: skipping malformed JSON at line %d in %s: %v", i+1, path, err)
			continue
		}
		if f.ID == "" || f.Content == "" {
			log.Printf("Warning: skipping fragment at line %d in %s: missing id or content", i+1, path)
			continue
		}
		if f.Source == "" {
			f.Source = path
		}
		frags = append(frags, f)
	}

	if len(frags) == 0 {
		return nil, fmt.Errorf("no valid fragments found in %s", path)
	}

	return frags, nil
}

// LoadHTML reads an HTML fragment file and reduces it to one plain-text
// fragment. The record id derives from the file name.
func LoadHTML(path string) (Fragment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fragment{}, fmt.Errorf("read file %s: %w", path, err)
	}

	text := StripHTML(string(data))
	if text == "" {
		return Fragment{}, fmt.Errorf("no text content in %s", path)
	}

	base := filepath.Base(path)
	id := strings.TrimSuffix(base, filepath.Ext(base))
	return Fragment{ID: id, Content: text, Source: path}, nil
}

// StripHTML reduces markup to its text content. Unparseable input is
// returned unchanged.
func StripHTML(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.TextNode {
			// A space after every text node keeps words from adjacent
			// elements apart; the Fields/Join below collapses the rest.
			buf.WriteString(n.Data)
			buf.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return strings.TrimSpace(strings.Join(strings.Fields(buf.String()), " "))
}
