package search

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/partialepoch/epochdb/pkg/models"
	"github.com/partialepoch/epochdb/pkg/store"
)

// IDSet is the set of item ids matched by a text query
type IDSet map[int]struct{}

// Has reports whether id is in the set
func (s IDSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

// committer is implemented by engines that buffer documents
type committer interface {
	Commit() error
}

// Index pairs a store with the engine built from it. It is built once per
// store load and never updated.
type Index struct {
	store  *store.Store
	engine Engine
	opts   SearchOptions
}

// Build indexes every item of s into engine. Missing or malformed nested
// fields are skipped; only an engine rejecting a document fails the build.
func Build(s *store.Store, engine Engine, fields []FieldSpec, opts SearchOptions) (*Index, error) {
	start := time.Now()

	for _, item := range s.Items() {
		if err := engine.Add(item.ID, Fields(item, fields)); err != nil {
			buildErr := &IndexBuildError{ID: item.ID, Err: err}
			slog.Error("search index build failed", "item", item.ID, "error", err)
			return nil, buildErr
		}
	}

	if c, ok := engine.(committer); ok {
		if err := c.Commit(); err != nil {
			slog.Error("search index commit failed", "error", err)
			return nil, &IndexBuildError{Err: err}
		}
	}

	slog.Debug("search index built", "items", s.Len(), "took", time.Since(start))
	return &Index{store: s, engine: engine, opts: opts}, nil
}

// Open builds an index for s with the engine and options named in settings
func Open(s *store.Store, settings models.SearchSettings) (*Index, error) {
	fields := ParseFields(DefaultFields, map[string]float64{})
	engine, err := NewEngine(settings.Engine, fields)
	if err != nil {
		return nil, err
	}

	idx, err := Build(s, engine, fields, OptionsFromSettings(settings))
	if err != nil {
		engine.Close()
		return nil, fmt.Errorf("failed to build search index: %w", err)
	}
	return idx, nil
}

// Search returns the ids matching text. Whitespace-only text is not a
// constraint at all: constrained is false and ids is nil. A nil index
// (still being built) constrains nothing either.
func (ix *Index) Search(text string) (ids IDSet, constrained bool, err error) {
	text = strings.TrimSpace(text)
	if ix == nil || text == "" {
		return nil, false, nil
	}

	hits, err := ix.engine.Search(text, ix.opts)
	if err != nil {
		return nil, true, fmt.Errorf("failed to search %q: %w", text, err)
	}

	ids = make(IDSet, len(hits))
	for _, h := range hits {
		ids[h.ID] = struct{}{}
	}
	return ids, true, nil
}

// Store returns the store the index was built from
func (ix *Index) Store() *store.Store {
	if ix == nil {
		return nil
	}
	return ix.store
}

// Close releases the engine
func (ix *Index) Close() error {
	if ix == nil {
		return nil
	}
	return ix.engine.Close()
}
