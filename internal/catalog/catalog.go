// Package catalog holds the read-only dataset of catalog entries and
// the code-matching search that drives which entries are shown.
package catalog

import (
	"encoding/json/v2"
	"fmt"
	"io"
	"os"

	"github.com/desperati0n/ismism/internal/domain"
)

// Catalog is an immutable, ordered collection of entries. Entries are
// loaded once and never mutated; a dataset change produces a whole new
// Catalog (see Provider).
type Catalog struct {
	entries []domain.Ism
	byCode  map[string]int // code -> first index with that code
}

// New builds a catalog from entries, preserving their order.
func New(entries []domain.Ism) *Catalog {
	c := &Catalog{
		entries: entries,
		byCode:  make(map[string]int, len(entries)),
	}
	for i := range entries {
		if _, seen := c.byCode[entries[i].Code]; !seen {
			c.byCode[entries[i].Code] = i
		}
	}
	return c
}

// Load reads a JSON array of entries.
func Load(r io.Reader) (*Catalog, error) {
	var entries []domain.Ism
	if err := json.UnmarshalRead(r, &entries); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(entries), nil
}

// LoadFile reads a catalog dataset from disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path) //#nosec G304 -- dataset path comes from config
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns all entries in catalog order. The returned slice is
// shared; callers must not mutate it.
func (c *Catalog) Entries() []domain.Ism {
	return c.entries
}

// Get returns the entry with the given code, if present.
func (c *Catalog) Get(code string) (*domain.Ism, bool) {
	i, ok := c.byCode[code]
	if !ok {
		return nil, false
	}
	return &c.entries[i], true
}

// Search returns the entries matching the query code, in catalog order.
// A query symbol matches an entry symbol when equal or when the query
// symbol is the wildcard; this holds in all four positions. Malformed
// queries and entries with malformed codes produce no matches. An empty
// result is a valid outcome, not an error.
func (c *Catalog) Search(queryCode string) []domain.Ism {
	if !domain.ValidCode(queryCode) {
		return nil
	}

	var results []domain.Ism
	for i := range c.entries {
		if domain.CodeMatches(queryCode, c.entries[i].Code) {
			results = append(results, c.entries[i])
		}
	}
	return results
}
