package transcript

import (
	"fmt"
	"log"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
)

// SearchResult is one full-text hit over the archive.
type SearchResult struct {
	ID         string
	Score      float64
	Transcript Transcript
}

// Index provides keyword search over archived transcripts.
type Index struct {
	index bleve.Index
	path  string
}

// NewIndex creates or opens the search index next to the archive database.
// A corrupted index is deleted and rebuilt empty; the sqlite rows stay the
// source of truth.
func NewIndex(dbPath string) (*Index, error) {
	indexPath := dbPath + ".bleve"

	index, err := bleve.Open(indexPath)
	if err == bleve.ErrorIndexPathDoesNotExist {
		index, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("failed to create transcript index: %w", err)
		}
	} else if err != nil {
		log.Printf("transcript index appears corrupted (error: %v), recreating", err)
		if index != nil {
			index.Close()
		}
		if err := os.RemoveAll(indexPath); err != nil {
			return nil, fmt.Errorf("failed to remove corrupted index: %w", err)
		}
		index, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("failed to recreate transcript index: %w", err)
		}
	}

	return &Index{
		index: index,
		path:  indexPath,
	}, nil
}

// buildIndexMapping creates the index mapping for transcripts.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()

	// Stored identifiers, not analyzed
	idField := bleve.NewTextFieldMapping()
	idField.Analyzer = keyword.Name
	idField.Store = true
	idField.Index = true
	docMapping.AddFieldMappingsAt("transcript_id", idField)

	// Searchable text fields
	candidateField := bleve.NewTextFieldMapping()
	candidateField.Analyzer = standard.Name
	candidateField.Store = true
	candidateField.Index = true
	docMapping.AddFieldMappingsAt("candidate", candidateField)

	positionField := bleve.NewTextFieldMapping()
	positionField.Analyzer = standard.Name
	positionField.Store = true
	positionField.Index = true
	docMapping.AddFieldMappingsAt("position", positionField)

	textField := bleve.NewTextFieldMapping()
	textField.Analyzer = standard.Name
	textField.Store = false
	textField.Index = true
	docMapping.AddFieldMappingsAt("text", textField)

	indexMapping.DefaultMapping = docMapping

	return indexMapping
}

// IndexTranscript adds one transcript to the search index.
func (i *Index) IndexTranscript(t *Transcript) error {
	doc := map[string]interface{}{
		"transcript_id": t.ID,
		"candidate":     t.Candidate,
		"position":      t.Position,
		"text":          t.Text,
	}
	return i.index.Index(t.ID, doc)
}

// Delete removes a transcript from the index.
func (i *Index) Delete(id string) error {
	return i.index.Delete(id)
}

// Search returns the top k transcripts matching the query.
func (i *Index) Search(query string, k int) ([]SearchResult, error) {
	if k <= 0 {
		k = 10
	}

	q := bleve.NewMatchQuery(query)
	searchRequest := bleve.NewSearchRequest(q)
	searchRequest.Size = k
	searchRequest.Fields = []string{"transcript_id", "candidate", "position"}

	searchResult, err := i.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("transcript search failed: %w", err)
	}

	results := make([]SearchResult, 0, len(searchResult.Hits))
	for _, hit := range searchResult.Hits {
		results = append(results, SearchResult{
			ID:    hit.ID,
			Score: hit.Score,
		})
	}

	return results, nil
}

// Close closes the search index.
func (i *Index) Close() error {
	return i.index.Close()
}

// GetPath returns the filesystem path of the search index.
func (i *Index) GetPath() string {
	return i.path
}
