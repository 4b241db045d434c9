// Package search provides full-text keyword search over catalog
// entries using Bleve. It complements code matching: code queries
// answer "which entries sit at these coordinates", keyword queries
// answer "which entries talk about this concept".
package search

import (
	"strings"

	"github.com/desperati0n/ismism/internal/domain"
)

// Document is the flattened form of a catalog entry for the Bleve
// index. Nested grid cells, extensions and Q&A are folded into flat
// text fields so one query covers all the prose attached to an entry.
type Document struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Aliases     string `json:"aliases"`
	Description string `json:"description"`
	Grid        string `json:"grid"`
	Extensions  string `json:"extensions"`
	QA          string `json:"qa"`
	KeyPoints   string `json:"key_points"`
}

// FromIsm flattens one catalog entry into an indexable document.
func FromIsm(ism domain.Ism) *Document {
	doc := &Document{
		Code:        ism.Code,
		Name:        ism.Name,
		Aliases:     strings.Join(ism.Aliases, " "),
		Description: ism.Description,
		KeyPoints:   strings.Join(ism.KeyPoints, " "),
	}

	var grid []string
	for _, cell := range []*domain.FourGridItem{
		ism.FourGrid.Ontology, ism.FourGrid.Body,
		ism.FourGrid.Phenomenon, ism.FourGrid.Purpose,
	} {
		if cell != nil {
			grid = append(grid, cell.Text)
		}
	}
	doc.Grid = strings.Join(grid, " ")

	var exts []string
	for _, ext := range ism.Extensions {
		exts = append(exts, ext.Title, ext.Description)
	}
	doc.Extensions = strings.Join(exts, " ")

	var qa []string
	for _, item := range ism.QA {
		qa = append(qa, item.Question, item.Answer)
	}
	doc.QA = strings.Join(qa, " ")

	return doc
}

// ToMap converts the document to a map so field names match the index
// mapping exactly.
func (d *Document) ToMap() map[string]any {
	return map[string]any{
		"code":        d.Code,
		"name":        d.Name,
		"aliases":     d.Aliases,
		"description": d.Description,
		"grid":        d.Grid,
		"extensions":  d.Extensions,
		"qa":          d.QA,
		"key_points":  d.KeyPoints,
	}
}
