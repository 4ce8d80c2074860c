package search

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/partialepoch/epochdb/pkg/models"
)

//go:generate mockgen -destination=mock/mock_engine.go -package=searchmock github.com/partialepoch/epochdb/pkg/search Engine

// Engine is the full-text engine boundary. Documents are added once per
// store load; an engine is never updated incrementally.
type Engine interface {
	// Add indexes one document. fields is keyed by FieldSpec.Key.
	Add(id int, fields map[string]string) error
	// Search returns every document matching text, best first
	Search(text string, opts SearchOptions) ([]Hit, error)
	Close() error
}

// SearchOptions controls how query terms are matched
type SearchOptions struct {
	Fuzzy  float64            // edit distance as a fraction of term length
	Prefix bool               // match terms as prefixes
	Boost  map[string]float64 // field declaration -> boost
}

// Hit is a matching document
type Hit struct {
	ID    int
	Score float64
}

// Match quality weights for the different ways a term can match
const (
	exactWeight  = 1.0
	prefixWeight = 0.75
	fuzzyWeight  = 0.5
)

// OptionsFromSettings builds search options from the search settings
func OptionsFromSettings(s models.SearchSettings) SearchOptions {
	return SearchOptions{
		Fuzzy:  s.Fuzzy,
		Prefix: s.Prefix,
		Boost:  map[string]float64{"name": s.NameBoost},
	}
}

func (o SearchOptions) boostFor(field string) float64 {
	if b, ok := o.Boost[field]; ok && b > 0 {
		return b
	}
	return 1
}

// maxEdits returns the edit distance allowed for term
func (o SearchOptions) maxEdits(term string) int {
	if o.Fuzzy <= 0 {
		return 0
	}
	return int(math.Round(o.Fuzzy * float64(len([]rune(term)))))
}

// IndexBuildError is returned when an engine rejects a document
type IndexBuildError struct {
	ID  int
	Err error
}

func (e *IndexBuildError) Error() string {
	return fmt.Sprintf("failed to index item %d: %v", e.ID, e.Err)
}

func (e *IndexBuildError) Unwrap() error {
	return e.Err
}

// NewEngine creates an empty engine of the named kind
func NewEngine(kind string, fields []FieldSpec) (Engine, error) {
	switch kind {
	case models.EngineBleve:
		return NewBleveEngine(fields)
	case models.EngineLite:
		return NewLiteEngine(fields), nil
	default:
		return nil, fmt.Errorf("unknown search engine: %s", kind)
	}
}

// tokenize splits text into lowercase runs of letters and digits
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// rankHits turns accumulated scores into hits ordered by score, then id
func rankHits(scores map[int]float64) []Hit {
	hits := make([]Hit, 0, len(scores))
	for id, score := range scores {
		hits = append(hits, Hit{ID: id, Score: score})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ID < hits[j].ID
	})
	return hits
}
