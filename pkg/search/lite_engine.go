package search

import (
	"sort"
	"strings"
	"sync"

	"github.com/hbollon/go-edlib"
)

// posting records that a term occurs in a field of a document
type posting struct {
	doc   int
	field int
}

// LiteEngine is a small in-process inverted index. Prefix lookups walk a
// sorted term dictionary and fuzzy lookups compare against every term of
// similar length.
type LiteEngine struct {
	mu       sync.RWMutex
	fields   []FieldSpec
	fieldIdx map[string]int // FieldSpec.Key -> position in fields

	postings map[string][]posting
	terms    []string // sorted, rebuilt on Commit or the first search after adds
	dirty    bool
}

// NewLiteEngine creates an empty lite engine over the given fields
func NewLiteEngine(fields []FieldSpec) *LiteEngine {
	fieldIdx := make(map[string]int, len(fields))
	for i, f := range fields {
		fieldIdx[f.Key] = i
	}
	return &LiteEngine{
		fields:   fields,
		fieldIdx: fieldIdx,
		postings: make(map[string][]posting),
	}
}

// Add indexes one document
func (e *LiteEngine) Add(id int, fields map[string]string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for key, value := range fields {
		fi, ok := e.fieldIdx[key]
		if !ok {
			continue
		}
		seen := make(map[string]bool)
		for _, token := range tokenize(value) {
			if seen[token] {
				continue
			}
			seen[token] = true
			e.postings[token] = append(e.postings[token], posting{doc: id, field: fi})
		}
	}
	e.dirty = true
	return nil
}

// Commit sorts the term dictionary so searches only need a read lock
func (e *LiteEngine) Commit() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dirty {
		e.rebuildTerms()
	}
	return nil
}

// Search matches every query term against the dictionary and sums the
// weighted match quality per document. The dictionary is read under the
// same lock that saw it up to date.
func (e *LiteEngine) Search(text string, opts SearchOptions) ([]Hit, error) {
	e.mu.RLock()
	if e.dirty {
		e.mu.RUnlock()
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.dirty {
			e.rebuildTerms()
		}
	} else {
		defer e.mu.RUnlock()
	}

	scores := make(map[int]float64)
	for _, term := range tokenize(text) {
		for candidate, quality := range e.matchTerm(term, opts) {
			for _, p := range e.postings[candidate] {
				field := e.fields[p.field]
				scores[p.doc] += field.Weight * opts.boostFor(field.Name) * quality
			}
		}
	}

	return rankHits(scores), nil
}

// Close releases the index
func (e *LiteEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.postings = make(map[string][]posting)
	e.terms = nil
	e.dirty = false
	return nil
}

// matchTerm returns the dictionary terms matched by term with the best
// quality each one reached
func (e *LiteEngine) matchTerm(term string, opts SearchOptions) map[string]float64 {
	matches := make(map[string]float64)
	keep := func(candidate string, quality float64) {
		if quality > matches[candidate] {
			matches[candidate] = quality
		}
	}

	if _, ok := e.postings[term]; ok {
		keep(term, exactWeight)
	}

	if opts.Prefix {
		start := sort.SearchStrings(e.terms, term)
		for i := start; i < len(e.terms) && strings.HasPrefix(e.terms[i], term); i++ {
			if e.terms[i] != term {
				keep(e.terms[i], prefixWeight)
			}
		}
	}

	if edits := opts.maxEdits(term); edits > 0 {
		termLen := len([]rune(term))
		for _, candidate := range e.terms {
			diff := len([]rune(candidate)) - termLen
			if diff > edits || -diff > edits {
				continue
			}
			if candidate != term && edlib.LevenshteinDistance(term, candidate) <= edits {
				keep(candidate, fuzzyWeight)
			}
		}
	}

	return matches
}

func (e *LiteEngine) rebuildTerms() {
	e.terms = make([]string, 0, len(e.postings))
	for term := range e.postings {
		e.terms = append(e.terms, term)
	}
	sort.Strings(e.terms)
	e.dirty = false
}
