package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"kbsearch/internal/domain"
)

// Entry is one canonical knowledge-base item ready for indexing.
type Entry struct {
	Text     string
	Metadata domain.Metadata
}

// rawEntry accepts both historical knowledge file shapes: newer exports
// key the passage as "text" with a "category", older ones as "content"
// with a "section". Normalization happens here so the core never sees
// the drift.
type rawEntry struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Section  string   `json:"section"`
	Keywords []string `json:"keywords"`
}

// normalize maps a raw entry onto the canonical shape. Entries without
// usable text are dropped.
func (r rawEntry) normalize() (Entry, bool) {
	text := r.Text
	if text == "" {
		text = r.Content
	}
	if strings.TrimSpace(text) == "" {
		return Entry{}, false
	}
	meta := domain.Metadata{}
	category := r.Category
	if category == "" {
		category = r.Section
	}
	if category != "" {
		meta["category"] = category
	}
	if len(r.Keywords) > 0 {
		meta["keywords"] = r.Keywords
	}
	id := r.ID
	if id == "" {
		id = uuid.NewString()
	}
	meta["id"] = id
	return Entry{Text: text, Metadata: meta}, true
}

// LoadFiles reads knowledge entries from .txt and .json files. Each
// argument may be a path or a glob pattern; other file types are
// skipped silently.
func LoadFiles(patterns []string) ([]Entry, error) {
	var entries []Entry
	for _, p := range patterns {
		matches, _ := filepath.Glob(p)
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			switch strings.ToLower(filepath.Ext(m)) {
			case ".txt":
				e, ok, err := loadText(m)
				if err != nil {
					return nil, err
				}
				if ok {
					entries = append(entries, e)
				}
			case ".json":
				es, err := loadJSON(m)
				if err != nil {
					return nil, err
				}
				entries = append(entries, es...)
			}
		}
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no knowledge entries found")
	}
	return entries, nil
}

func loadText(path string) (Entry, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, false, err
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return Entry{}, false, nil
	}
	return Entry{
		Text: text,
		Metadata: domain.Metadata{
			"id":     uuid.NewString(),
			"source": path,
		},
	}, true, nil
}

func loadJSON(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raws []rawEntry
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	var entries []Entry
	for _, r := range raws {
		e, ok := r.normalize()
		if !ok {
			continue
		}
		e.Metadata["source"] = path
		entries = append(entries, e)
	}
	return entries, nil
}
