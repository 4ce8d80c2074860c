// Package query produces the displayed result sequence from the loaded
// store, the committed search text and the active filters.
package query

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/partialepoch/epochdb/pkg/filters"
	"github.com/partialepoch/epochdb/pkg/models"
	"github.com/partialepoch/epochdb/pkg/search"
	"github.com/partialepoch/epochdb/pkg/store"
)

// TextIndex answers free-text queries with a set of matching item ids.
// *search.Index implements it.
type TextIndex interface {
	Search(text string) (ids search.IDSet, constrained bool, err error)
}

// Input is everything a result depends on
type Input struct {
	Store   *store.Store
	Query   string
	Filters models.SearchFilters
	Index   TextIndex
}

// Evaluate computes the result sequence for in. Results always keep the
// store's load order; search relevance never reorders them.
func Evaluate(in Input) ([]models.Item, error) {
	if in.Store.IsEmpty() {
		return []models.Item{}, nil
	}

	text := strings.TrimSpace(in.Query)
	if text == "" && !filters.HasActiveFilters(in.Filters) {
		return in.Store.Items(), nil
	}

	working := in.Store.Items()

	if text != "" && in.Index != nil {
		ids, constrained, err := in.Index.Search(text)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate query: %w", err)
		}
		if constrained {
			working = intersect(working, ids)
		}
	}

	return filters.Apply(working, in.Filters), nil
}

// intersect keeps the items whose id is in ids, in their existing order
func intersect(items []models.Item, ids search.IDSet) []models.Item {
	kept := make([]models.Item, 0, len(ids))
	for _, item := range items {
		if ids.Has(item.ID) {
			kept = append(kept, item)
		}
	}
	return kept
}

// Evaluator remembers the last result and only recomputes when the store,
// index, query text or filters change
type Evaluator struct {
	valid   bool
	store   *store.Store
	index   TextIndex
	query   string
	filters models.SearchFilters
	result  []models.Item

	evaluations int
}

// NewEvaluator creates an evaluator with nothing cached
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate returns the result for in, reusing the previous result when
// nothing it depends on has changed. Errors are never cached.
func (e *Evaluator) Evaluate(in Input) ([]models.Item, error) {
	if e.valid && e.matches(in) {
		return e.result, nil
	}

	result, err := Evaluate(in)
	e.evaluations++
	if err != nil {
		e.valid = false
		return nil, err
	}

	e.valid = true
	e.store = in.Store
	e.index = in.Index
	e.query = in.Query
	e.filters = in.Filters
	e.result = result
	return result, nil
}

// Evaluations returns how many times the result was actually computed
func (e *Evaluator) Evaluations() int {
	return e.evaluations
}

// Reset drops the cached result
func (e *Evaluator) Reset() {
	*e = Evaluator{evaluations: e.evaluations}
}

func (e *Evaluator) matches(in Input) bool {
	return e.store == in.Store &&
		sameIndex(e.index, in.Index) &&
		e.query == in.Query &&
		filters.Equal(e.filters, in.Filters)
}

// sameIndex compares index references without panicking on
// uncomparable implementations
func sameIndex(a, b TextIndex) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
