package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for book documents.
//
// Every field is stored so hits can be turned back into books without a second lookup.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = keyword.Name

	docMapping := bleve.NewDocumentMapping()

	// --- Keyword fields (exact match) ---

	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	idFieldMapping.Store = true
	docMapping.AddFieldMappingsAt(fieldID, idFieldMapping)

	// Title is stored for display; keyword keeps it byte-exact.
	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = keyword.Name
	titleFieldMapping.Store = true
	docMapping.AddFieldMappingsAt(fieldTitle, titleFieldMapping)

	// Canonical genre ids, matched with term queries.
	genresFieldMapping := bleve.NewTextFieldMapping()
	genresFieldMapping.Analyzer = keyword.Name
	genresFieldMapping.Store = true
	genresFieldMapping.IncludeInAll = false
	docMapping.AddFieldMappingsAt(fieldGenres, genresFieldMapping)

	// --- Numeric fields (range queries, sorting) ---

	ageLimitFieldMapping := bleve.NewNumericFieldMapping()
	ageLimitFieldMapping.Store = true
	docMapping.AddFieldMappingsAt(fieldAgeLimit, ageLimitFieldMapping)

	ratingFieldMapping := bleve.NewNumericFieldMapping()
	ratingFieldMapping.Store = true
	docMapping.AddFieldMappingsAt(fieldRating, ratingFieldMapping)

	seqFieldMapping := bleve.NewNumericFieldMapping()
	seqFieldMapping.Store = true
	seqFieldMapping.DocValues = true // Sorting
	docMapping.AddFieldMappingsAt(fieldSeq, seqFieldMapping)

	// --- Boolean fields ---

	// A missing age limit cannot be range-matched, so its absence is indexed explicitly.
	hasAgeLimitFieldMapping := bleve.NewBooleanFieldMapping()
	docMapping.AddFieldMappingsAt(fieldHasAgeLimit, hasAgeLimitFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
