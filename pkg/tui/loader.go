package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/partialepoch/epochdb/pkg/catalog"
	"github.com/partialepoch/epochdb/pkg/models"
)

type catalogLoadedMsg struct {
	catalog *catalog.Catalog
}

type catalogFailedMsg struct {
	err error
}

type catalogReloadedMsg struct {
	catalog *catalog.Catalog
	changed bool
}

type catalogReloadFailedMsg struct {
	err error
}

// dataChangedMsg reports that the data file changed on disk
type dataChangedMsg struct{}

// loadCatalog fetches and indexes the data once. Failures are logged here
// and reach the model only as a generic failure.
func loadCatalog(ctx context.Context, location string, settings models.SearchSettings) tea.Cmd {
	return func() tea.Msg {
		c, err := catalog.Load(ctx, location, settings)
		if err != nil {
			slog.Error("failed to load catalog", "location", location, "error", err)
			return catalogFailedMsg{err: err}
		}
		return catalogLoadedMsg{catalog: c}
	}
}

// reloadCatalog re-reads the data and rebuilds the index if it changed
func reloadCatalog(ctx context.Context, current *catalog.Catalog) tea.Cmd {
	return func() tea.Msg {
		next, changed, err := current.Reload(ctx)
		if err != nil {
			slog.Error("failed to reload catalog", "location", current.Location, "error", err)
			return catalogReloadFailedMsg{err: err}
		}
		return catalogReloadedMsg{catalog: next, changed: changed}
	}
}

// waitForChange blocks until the watcher signals a change
func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return dataChangedMsg{}
	}
}
