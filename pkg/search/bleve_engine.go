package search

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
)

const (
	catalogAnalyzer = "catalog"

	// bleve refuses fuzzy queries beyond this distance
	bleveMaxFuzziness = 2
)

// BleveEngine indexes documents in an in-memory bleve index. Added
// documents are batched and committed on the next search.
type BleveEngine struct {
	mu      sync.Mutex
	fields  []FieldSpec
	mapping *mapping.IndexMappingImpl
	index   bleve.Index
	batch   *bleve.Batch
	count   int
}

// NewBleveEngine creates an empty in-memory bleve index over the given fields
func NewBleveEngine(fields []FieldSpec) (*BleveEngine, error) {
	im := bleve.NewIndexMapping()
	err := im.AddCustomAnalyzer(catalogAnalyzer, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     unicode.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register analyzer: %w", err)
	}
	im.DefaultAnalyzer = catalogAnalyzer

	doc := bleve.NewDocumentStaticMapping()
	for _, f := range fields {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = catalogAnalyzer
		fm.Store = false
		fm.IncludeTermVectors = false
		fm.IncludeInAll = false
		doc.AddFieldMappingsAt(f.Key, fm)
	}
	im.DefaultMapping = doc

	idx, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}

	return &BleveEngine{
		fields:  fields,
		mapping: im,
		index:   idx,
		batch:   idx.NewBatch(),
	}, nil
}

// Add queues one document for indexing
func (e *BleveEngine) Add(id int, fields map[string]string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	data := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		data[k] = v
	}
	if err := e.batch.Index(strconv.Itoa(id), data); err != nil {
		return err
	}
	e.count++
	return nil
}

// Search runs a disjunction of term, prefix and fuzzy queries for every
// analyzed query term across every field
func (e *BleveEngine) Search(text string, opts SearchOptions) ([]Hit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.flush(); err != nil {
		return nil, err
	}

	tokens, err := e.mapping.AnalyzeText(catalogAnalyzer, []byte(text))
	if err != nil {
		return nil, fmt.Errorf("failed to analyze query: %w", err)
	}
	if len(tokens) == 0 || e.count == 0 {
		return nil, nil
	}

	var clauses []query.Query
	for _, token := range tokens {
		term := string(token.Term)
		fuzziness := opts.maxEdits(term)
		if fuzziness > bleveMaxFuzziness {
			fuzziness = bleveMaxFuzziness
		}

		for _, f := range e.fields {
			boost := f.Weight * opts.boostFor(f.Name)

			tq := bleve.NewTermQuery(term)
			tq.SetField(f.Key)
			tq.SetBoost(boost * exactWeight)
			clauses = append(clauses, tq)

			if opts.Prefix {
				pq := bleve.NewPrefixQuery(term)
				pq.SetField(f.Key)
				pq.SetBoost(boost * prefixWeight)
				clauses = append(clauses, pq)
			}

			if fuzziness > 0 {
				fq := bleve.NewFuzzyQuery(term)
				fq.SetField(f.Key)
				fq.SetFuzziness(fuzziness)
				fq.SetBoost(boost * fuzzyWeight)
				clauses = append(clauses, fq)
			}
		}
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(clauses...), e.count, 0, false)
	res, err := e.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, m := range res.Hits {
		id, err := strconv.Atoi(m.ID)
		if err != nil {
			return nil, fmt.Errorf("unexpected document id %q: %w", m.ID, err)
		}
		hits = append(hits, Hit{ID: id, Score: m.Score})
	}
	return hits, nil
}

// Commit indexes every queued document
func (e *BleveEngine) Commit() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.flush()
}

// Close releases the index
func (e *BleveEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.index.Close()
}

// flush commits queued documents. Callers hold mu.
func (e *BleveEngine) flush() error {
	if e.batch.Size() == 0 {
		return nil
	}
	if err := e.index.Batch(e.batch); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	e.batch = e.index.NewBatch()
	return nil
}
