// Package catalog ties the data source, the item store and the search index
// together so the TUI and the CLI load data the same way.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"

	"github.com/partialepoch/epochdb/pkg/files"
	"github.com/partialepoch/epochdb/pkg/models"
	"github.com/partialepoch/epochdb/pkg/query"
	"github.com/partialepoch/epochdb/pkg/search"
	"github.com/partialepoch/epochdb/pkg/store"
)

// Catalog is a loaded store and the index built over it
type Catalog struct {
	Location string
	Store    *store.Store
	Index    *search.Index

	settings models.SearchSettings
}

// Load fetches the data at location and builds the index
func Load(ctx context.Context, location string, settings models.SearchSettings) (*Catalog, error) {
	raw, err := files.FetchData(ctx, location)
	if err != nil {
		return nil, err
	}
	return FromBytes(raw, location, settings)
}

// FromBytes builds a catalog from an already fetched payload
func FromBytes(raw []byte, location string, settings models.SearchSettings) (*Catalog, error) {
	start := time.Now()

	s, err := store.Load(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", location, err)
	}

	ix, err := search.Open(s, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to index %s: %w", location, err)
	}

	slog.Info("catalog loaded",
		"location", location,
		"items", s.Len(),
		"size", humanize.Bytes(uint64(len(raw))),
		"engine", settings.Engine,
		"took", time.Since(start))

	return &Catalog{
		Location: location,
		Store:    s,
		Index:    ix,
		settings: settings,
	}, nil
}

// Reload fetches the data again. When the payload is unchanged it returns
// c and false; otherwise a fully rebuilt catalog and true. c itself is
// left untouched either way.
func (c *Catalog) Reload(ctx context.Context) (*Catalog, bool, error) {
	raw, err := files.FetchData(ctx, c.Location)
	if err != nil {
		return nil, false, err
	}

	if xxhash.Sum64(raw) == c.Store.Checksum() {
		slog.Debug("catalog unchanged", "location", c.Location)
		return c, false, nil
	}

	next, err := FromBytes(raw, c.Location, c.settings)
	if err != nil {
		return nil, false, err
	}
	return next, true, nil
}

// Input builds an evaluator input over this catalog
func (c *Catalog) Input(text string, f models.SearchFilters) query.Input {
	return query.Input{
		Store:   c.Store,
		Query:   text,
		Filters: f,
		Index:   c.Index,
	}
}

// Close releases the index
func (c *Catalog) Close() error {
	if c == nil {
		return nil
	}
	return c.Index.Close()
}
