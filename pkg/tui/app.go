package tui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/partialepoch/epochdb/pkg/catalog"
	"github.com/partialepoch/epochdb/pkg/files"
	"github.com/partialepoch/epochdb/pkg/filters"
	"github.com/partialepoch/epochdb/pkg/models"
	"github.com/partialepoch/epochdb/pkg/query"
	"github.com/partialepoch/epochdb/pkg/store"
)

type appState int

const (
	stateLoading appState = iota
	stateReady
	stateFailed
)

// pane is the section of the screen that receives keys
type pane int

const (
	searchPane pane = iota
	filterPane
	gridPane
	tooltipPane
)

const paneCount = 4

// writeClipboard is swapped out in tests
var writeClipboard = clipboard.WriteAll

// App is the root bubbletea model
type App struct {
	ctx      context.Context
	settings *models.Settings
	location string

	state     appState
	catalog   *catalog.Catalog
	evaluator *query.Evaluator
	parser    *filters.Parser
	query     string
	results   []models.Item

	spinner   spinner.Model
	searchBar *SearchBar
	filterBar *FilterBar
	grid      *Grid
	tooltip   *Tooltip
	status    *StatusLine
	debounce  *debouncer
	active    pane

	changes   chan struct{}
	closeOnce sync.Once

	width  int
	height int
}

// NewApp creates the model. Nothing is loaded until Init runs.
func NewApp(ctx context.Context, settings *models.Settings, location string) *App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorActive))

	a := &App{
		ctx:       ctx,
		settings:  settings,
		location:  location,
		state:     stateLoading,
		evaluator: query.NewEvaluator(),
		parser:    filters.NewLenientParser(),
		spinner:   s,
		searchBar: NewSearchBar(),
		filterBar: NewFilterBar(),
		grid:      NewGrid(settings.UI.CardWidth, settings.UI.MaxColumns),
		tooltip:   NewTooltip(),
		status:    NewStatusLine(2 * time.Second),
		debounce:  newDebouncer(settings.Debounce()),
		changes:   make(chan struct{}, 1),
	}
	a.focus(searchPane)
	return a
}

// Init starts loading the catalog and listening for data file changes
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.spinner.Tick,
		loadCatalog(a.ctx, a.location, a.settings.Search),
		waitForChange(a.changes),
	)
}

// NotifyDataChanged asks the app to reload its data. It never blocks and
// is safe to call from any goroutine.
func (a *App) NotifyDataChanged() {
	select {
	case a.changes <- struct{}{}:
	default:
	}
}

// Close releases the loaded catalog. Stop the watcher before calling it.
func (a *App) Close() error {
	var err error
	a.closeOnce.Do(func() {
		a.debounce.Cancel()
		close(a.changes)
		err = a.catalog.Close()
	})
	return err
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.setSize(msg.Width, msg.Height)
		return a, nil

	case spinner.TickMsg:
		if a.state != stateLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case catalogLoadedMsg:
		return a, a.setCatalog(msg.catalog, "Loaded")

	case catalogFailedMsg:
		a.state = stateFailed
		a.refresh()
		return a, a.status.Error("Could not load item data")

	case dataChangedMsg:
		if a.catalog == nil {
			return a, tea.Batch(loadCatalog(a.ctx, a.location, a.settings.Search), waitForChange(a.changes))
		}
		return a, tea.Batch(reloadCatalog(a.ctx, a.catalog), waitForChange(a.changes))

	case catalogReloadedMsg:
		if !msg.changed {
			return a, nil
		}
		return a, a.setCatalog(msg.catalog, "Reloaded")

	case catalogReloadFailedMsg:
		return a, a.status.Warning("Reload failed, keeping current data")

	case searchCommitMsg:
		if a.debounce.Current(msg) {
			return a, a.commitSearch(msg.text)
		}
		return a, nil

	case statusExpiredMsg:
		a.status.Expire(msg)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

// setCatalog swaps in a freshly loaded catalog and recomputes the results
func (a *App) setCatalog(c *catalog.Catalog, verb string) tea.Cmd {
	previous := a.catalog
	a.catalog = c
	a.state = stateReady
	if previous != nil && previous != c {
		if err := previous.Close(); err != nil {
			slog.Warn("failed to close previous index", "error", err)
		}
	}

	a.filterBar.SetOptions(filters.Options(c.Store.Items()))
	return tea.Batch(
		a.refresh(),
		a.status.Success(fmt.Sprintf("%s %s items", verb, humanize.Comma(int64(c.Store.Len())))),
	)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		a.debounce.Cancel()
		return a, tea.Quit
	}

	if a.state == stateLoading {
		if msg.String() == "q" {
			return a, tea.Quit
		}
		return a, nil
	}

	switch msg.String() {
	case "tab":
		if !a.filterBar.IsEditing() {
			a.focus((a.active + 1) % paneCount)
			return a, nil
		}
	case "shift+tab":
		if !a.filterBar.IsEditing() {
			a.focus((a.active + paneCount - 1) % paneCount)
			return a, nil
		}
	}

	switch a.active {
	case searchPane:
		return a.handleSearchKey(msg)
	case filterPane:
		return a.handleFilterKey(msg)
	case tooltipPane:
		return a.handleTooltipKey(msg)
	default:
		return a.handleGridKey(msg)
	}
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// clearing commits immediately
		a.searchBar.Reset()
		a.debounce.Cancel()
		a.focus(gridPane)
		return a, a.commitSearch("")

	case "enter":
		a.debounce.Cancel()
		a.focus(gridPane)
		return a, a.commitSearch(a.searchBar.Value())
	}

	cmd, changed := a.searchBar.Update(msg)
	if changed {
		a.searchBar.SetPending(true)
		return a, tea.Batch(cmd, a.debounce.Schedule(a.searchBar.Value()))
	}
	return a, cmd
}

func (a *App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !a.filterBar.IsEditing() {
		switch msg.String() {
		case "esc":
			a.focus(gridPane)
			return a, nil
		case "q":
			a.debounce.Cancel()
			return a, tea.Quit
		case "/":
			a.focus(searchPane)
			return a, nil
		}
	}

	before := a.filterBar.Filters()
	cmd := a.filterBar.Update(msg)
	if !filters.Equal(before, a.filterBar.Filters()) {
		a.layout()
		cmd = tea.Batch(cmd, a.refresh())
	}
	return a, cmd
}

func (a *App) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		a.debounce.Cancel()
		return a, tea.Quit
	case "/":
		a.focus(searchPane)
		return a, nil
	case "f":
		a.focus(filterPane)
		return a, nil
	case "enter":
		a.focus(tooltipPane)
		return a, nil
	case "c":
		if filters.HasActiveFilters(a.filterBar.Filters()) {
			a.filterBar.ClearAll()
			a.layout()
			return a, tea.Batch(a.refresh(), a.status.Info("Filters cleared"))
		}
		return a, nil
	case "y":
		return a, a.copySelected()
	}

	if a.grid.HandleKey(msg.String()) {
		a.updateTooltip()
	}
	return a, nil
}

func (a *App) handleTooltipKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		a.debounce.Cancel()
		return a, tea.Quit
	case "esc":
		a.focus(gridPane)
		return a, nil
	case "y":
		return a, a.copySelected()
	}
	return a, a.tooltip.Update(msg)
}

// copySelected puts the selected item's id and name on the clipboard
func (a *App) copySelected() tea.Cmd {
	item, ok := a.grid.Selected()
	if !ok {
		return a.status.Warning("Nothing selected")
	}

	text := fmt.Sprintf("%d %s", item.ID, item.DisplayName())
	if err := writeClipboard(text); err != nil {
		slog.Warn("failed to copy to clipboard", "error", err)
		return a.status.Error("Clipboard unavailable")
	}
	return a.status.Success(item.DisplayName() + " → clipboard")
}

func (a *App) focus(p pane) {
	a.active = p
	a.searchBar.SetActive(p == searchPane)
	a.filterBar.SetActive(p == filterPane)
	a.grid.SetActive(p == gridPane)
	a.tooltip.SetActive(p == tooltipPane)
}

// commitSearch makes text the query the results are computed from
func (a *App) commitSearch(text string) tea.Cmd {
	a.searchBar.SetPending(false)
	a.query = text
	return a.refresh()
}

// refresh recomputes the results. The evaluator skips the work when
// nothing it depends on changed; the grid selection only resets when the
// results were actually recomputed.
func (a *App) refresh() tea.Cmd {
	in := query.Input{Store: store.Empty(), Filters: a.filterBar.Filters(), Query: a.query}
	if expr, err := a.parser.ParseInto(a.query, in.Filters); err == nil {
		in.Query = expr.Text
		in.Filters = expr.Filters
	} else {
		slog.Debug("search bar expression ignored", "query", a.query, "error", err)
	}
	if a.catalog != nil {
		in.Store = a.catalog.Store
		in.Index = a.catalog.Index
	}

	evaluations := a.evaluator.Evaluations()
	items, err := a.evaluator.Evaluate(in)
	if err != nil {
		slog.Error("search failed", "query", in.Query, "error", err)
		return a.status.Error("Search failed")
	}

	if a.evaluator.Evaluations() != evaluations {
		a.results = items
		a.grid.SetItems(items)
	}
	a.updateTooltip()
	return nil
}

func (a *App) updateTooltip() {
	a.tooltip.SetItem(a.grid.Selected())
}

// Results returns the items currently shown
func (a *App) Results() []models.Item {
	return a.results
}

func (a *App) setSize(width, height int) {
	a.width = width
	a.height = height
	a.searchBar.SetWidth(width)
	a.filterBar.SetWidth(width)
	a.layout()
}

// layout splits the space below the bars between the grid and the tooltip
func (a *App) layout() {
	if a.width == 0 {
		return
	}

	tooltipWidth := min(44, a.width/3)
	gridWidth := a.width - tooltipWidth - 2

	// header (1), search bar (3), help (1), status (1)
	bodyHeight := a.height - 6 - lipgloss.Height(a.filterBar.View())
	if bodyHeight < cardHeight {
		bodyHeight = cardHeight
	}

	a.grid.SetSize(gridWidth, bodyHeight)
	a.tooltip.SetSize(tooltipWidth, bodyHeight)
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	var sections []string
	switch a.state {
	case stateLoading:
		sections = append(sections,
			renderHeader(a.width, ""),
			ContentPaddingStyle.Render(a.spinner.View()+" Loading items..."),
		)

	case stateFailed:
		sections = append(sections,
			renderHeader(a.width, a.countLine()),
			ContentPaddingStyle.Render(ErrorStyle.Render("No data")),
			ContentPaddingStyle.Render(DescriptionStyle.Render("The item collection could not be loaded.")),
		)

	default:
		body := lipgloss.JoinHorizontal(lipgloss.Top,
			ContentPaddingStyle.Render(a.grid.View()),
			a.tooltip.View(),
		)
		sections = append(sections,
			renderHeader(a.width, a.countLine()),
			a.searchBar.View(),
			a.filterBar.View(),
			body,
			a.helpLine(),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if bar := a.status.View(a.width); bar != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, bar)
	}
	return content
}

func (a *App) countLine() string {
	n := len(a.results)
	if n == 1 {
		return "Showing 1 item"
	}
	return fmt.Sprintf("Showing %s items", humanize.Comma(int64(n)))
}

func (a *App) helpLine() string {
	var help string
	switch a.active {
	case searchPane:
		help = "enter search • esc clear • tab next pane • class: subclass: rarity: slot: level: has:"
	case filterPane:
		help = "←/→ move • enter/space change • x reset • esc back • tab next pane"
	case tooltipPane:
		help = "↑/↓ scroll • y copy • esc back • tab next pane"
	default:
		help = "/ search • f filters • arrows move • enter details • y copy • c clear filters • q quit"
	}
	return ContentPaddingStyle.Render(DescriptionStyle.Render(help))
}

// Run starts the TUI and blocks until it exits. With watching enabled a
// local data file is reloaded whenever it changes on disk.
func Run(ctx context.Context, settings *models.Settings, location string) error {
	app := NewApp(ctx, settings, location)
	defer app.Close()

	if settings.Data.Watch {
		if files.IsRemote(location) {
			slog.Warn("watch ignored for remote data", "location", location)
		} else {
			watcher, err := files.WatchData(ctx, location, app.NotifyDataChanged)
			if err != nil {
				slog.Warn("failed to watch data file", "location", location, "error", err)
			} else {
				defer watcher.Close()
				app.status.SetSticky(StatusTypeInfo, "Watching "+location)
			}
		}
	}

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
