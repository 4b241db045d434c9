package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/cjk"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for catalog
// documents. Entry prose is predominantly Chinese, so text fields use
// the CJK analyzer; the code field is an opaque token and stays exact.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = cjk.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	// Code is the document key, exact match only
	codeFieldMapping := bleve.NewTextFieldMapping()
	codeFieldMapping.Analyzer = keyword.Name
	codeFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("code", codeFieldMapping)

	// Name is the primary search target, stored for result display
	nameFieldMapping := bleve.NewTextFieldMapping()
	nameFieldMapping.Analyzer = cjk.AnalyzerName
	nameFieldMapping.Store = true
	nameFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("name", nameFieldMapping)

	aliasFieldMapping := bleve.NewTextFieldMapping()
	aliasFieldMapping.Analyzer = cjk.AnalyzerName
	aliasFieldMapping.Store = true
	aliasFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("aliases", aliasFieldMapping)

	// Long prose fields are searchable but not stored
	for _, field := range []string{"description", "grid", "extensions", "qa", "key_points"} {
		proseFieldMapping := bleve.NewTextFieldMapping()
		proseFieldMapping.Analyzer = cjk.AnalyzerName
		proseFieldMapping.Store = false
		docMapping.AddFieldMappingsAt(field, proseFieldMapping)
	}

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
