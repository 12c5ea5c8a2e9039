package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/charmbracelet/bubbles/v2/textinput"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/pb33f/netlogs/config"
	"github.com/pb33f/netlogs/i18n"
	"github.com/pb33f/netlogs/importer"
	"github.com/pb33f/netlogs/item"
	"github.com/pb33f/netlogs/search"
)

// Translator looks up a user facing label.
type Translator func(key string, vars map[string]string) string

// ViewMode represents the different view states
type ViewMode int

const (
	ViewModeTable ViewMode = iota
	ViewModeTableWithSplit
	ViewModeTableWithSearch
)

// Modal is the overlay currently shown above the table
type Modal int

const (
	ModalNone Modal = iota
	ModalEntry
	ModalHiddenTags
)

// Panel is one of the detail panels of the split view
type Panel int

const (
	PanelParams Panel = iota
	PanelContent
	PanelMeta
	panelCount
)

// Options configures the viewer. Everything but FileName is optional.
type Options struct {
	FileName   string
	Settings   *config.Settings
	Translate  Translator
	Resolver   item.Resolver
	Logger     *slog.Logger
	NotifyHost importer.HostNotifier
}

// Model is the bubbletea model of the netlogs viewer.
type Model struct {
	table   table.Model
	rows    []table.Row
	columns []table.Column

	list     *item.List
	visible  []*item.Item
	importer *importer.Importer
	notices  *noticeBoard
	settings *config.Settings
	tr       Translator
	logger   *slog.Logger

	fileName      string
	selected      *item.Item
	selectedIndex int

	viewMode    ViewMode
	activeModal Modal
	width       int
	height      int
	ready       bool
	quitting    bool

	panels      [panelCount]viewport.Model
	focused     Panel
	panelSearch *ViewportSearchState

	searchInput  textinput.Model
	filterInput  textinput.Model
	searchCursor int
	regex        bool
	showHidden   bool
	searchErr    error
	cfg          search.Config

	hiddenCursor   int
	detailViewport viewport.Model
	detailYAML     bool

	loadState      LoadState
	loadingSpinner spinner.Model
	loadTime       time.Duration

	err error
}

// NewModel creates the viewer. The capture named by opts.FileName is imported
// when the program starts.
func NewModel(opts Options) *Model {
	if opts.Settings == nil {
		opts.Settings = config.Default()
	}
	if opts.Translate == nil {
		opts.Translate = func(key string, _ map[string]string) string { return key }
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	m := &Model{
		list:           item.NewList(),
		notices:        newNoticeBoard(),
		settings:       opts.Settings,
		tr:             opts.Translate,
		logger:         opts.Logger,
		fileName:       opts.FileName,
		viewMode:       ViewModeTable,
		loadState:      LoadStateLoading,
		loadingSpinner: createLoadingSpinner(),
		panelSearch:    NewViewportSearchState(),
		columns: []table.Column{
			{Title: "Tag", Width: tagColumnWidth},
			{Title: "Name", Width: minNameColumnWidth},
			{Title: opts.Translate(i18n.KeyDuration, nil), Width: durationColumnWidth},
			{Title: "Time", Width: timeColumnWidth},
		},
	}

	m.importer = importer.New(m.list, importer.Options{
		Resolver:   opts.Resolver,
		Translate:  importer.Translator(opts.Translate),
		NotifyHost: opts.NotifyHost,
		Notifier:   m.notices,
		Logger:     opts.Logger,
	})

	m.searchInput = textinput.New()
	m.searchInput.Prompt = ""
	m.searchInput.Placeholder = opts.Translate(i18n.KeySearch, nil)
	m.searchInput.CharLimit = 200

	m.filterInput = textinput.New()
	m.filterInput.Prompt = ""
	m.filterInput.Placeholder = opts.Translate(i18n.KeyFilter, nil)
	m.filterInput.CharLimit = 200

	return m
}

// List returns the item store the viewer renders.
func (m *Model) List() *item.List {
	return m.list
}

// Visible returns the items that passed the current filters, in list order.
func (m *Model) Visible() []*item.Item {
	return m.visible
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadingSpinner.Tick,
		m.startLoading(),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	if m.loadState == LoadStateLoading {
		m.loadingSpinner, cmd = m.loadingSpinner.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	switch msg := msg.(type) {
	case loadCompleteMsg:
		m.handleLoadComplete(msg)
		return m, nil

	case loadErrorMsg:
		m.loadState = LoadStateError
		m.err = msg.err
		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyPressMsg:
		key := msg.String()
		if key == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.loadState != LoadStateLoaded {
			if key == "q" {
				m.quitting = true
				return m, tea.Quit
			}
			return m, tea.Batch(cmds...)
		}
		if handled, cmd := m.handleKey(key); handled {
			return m, cmd
		}
	}

	if m.loadState != LoadStateLoaded || !m.ready {
		return m, tea.Batch(cmds...)
	}

	switch {
	case m.activeModal == ModalEntry:
		m.detailViewport, cmd = m.detailViewport.Update(msg)
		cmds = append(cmds, cmd)

	case m.viewMode == ViewModeTableWithSearch:
		cmds = append(cmds, m.updateSearchInputs(msg))

	case m.viewMode == ViewModeTableWithSplit && m.panelSearch.active:
		m.panelSearch.searchInput, cmd = m.panelSearch.searchInput.Update(msg)
		cmds = append(cmds, cmd)
		if m.panelSearch.searchInput.Value() != m.panelSearch.query {
			m.panelSearch.UpdateQuery(m.panelSearch.searchInput.Value())
			m.updatePanelContent()
		}

	case m.viewMode == ViewModeTableWithSplit:
		m.panels[m.focused], cmd = m.panels[m.focused].Update(msg)
		cmds = append(cmds, cmd)

	default:
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
		m.syncSelection()
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.loadState {
	case LoadStateLoading:
		return m.renderLoadingView()
	case LoadStateError:
		return m.renderErrorView()
	case LoadStateLoaded:
		if !m.ready {
			return "Initializing..."
		}
		return m.render()
	default:
		return "Unknown state"
	}
}

// handleKey runs the key bindings of the current mode. It reports false when
// the key should fall through to the focused component.
func (m *Model) handleKey(key string) (bool, tea.Cmd) {
	switch m.activeModal {
	case ModalEntry:
		return m.handleDetailModalKeys(key)
	case ModalHiddenTags:
		return m.handleHiddenTagKeys(key)
	}

	switch m.viewMode {
	case ViewModeTableWithSearch:
		return m.handleSearchKeys(key)
	case ViewModeTableWithSplit:
		return m.handleSplitKeys(key)
	}

	switch key {
	case "q":
		m.quitting = true
		return true, tea.Quit

	case "enter":
		if m.selected != nil {
			m.openSplit()
		}
		return true, nil

	case "/", "s":
		m.openSearch()
		return true, nil

	case "h":
		m.activeModal = ModalHiddenTags
		m.hiddenCursor = 0
		return true, nil

	case "r":
		if m.selected != nil {
			m.openDetailModal()
		}
		return true, nil

	case "esc":
		if !m.cfg.IsEmpty() {
			m.clearFilters()
		}
		return true, nil
	}
	return false, nil
}

func (m *Model) handleSplitKeys(key string) (bool, tea.Cmd) {
	if m.panelSearch.active {
		switch key {
		case "esc":
			m.panelSearch.Deactivate()
			return true, nil
		case "tab":
			m.panelSearch.MoveCursor(1)
			return true, nil
		case "shift+tab":
			m.panelSearch.MoveCursor(-1)
			return true, nil
		case "enter", "space", " ":
			switch m.panelSearch.cursor {
			case panelSearchRegex:
				m.panelSearch.ToggleRegex()
			case panelSearchFiltered:
				m.panelSearch.ToggleFiltered()
			default:
				return false, nil
			}
			m.updatePanelContent()
			return true, nil
		}
		return false, nil
	}

	switch key {
	case "q":
		m.quitting = true
		return true, tea.Quit
	case "esc", "enter":
		m.closeSplit()
		return true, nil
	case "tab":
		m.focused = (m.focused + 1) % panelCount
		return true, nil
	case "shift+tab":
		m.focused = (m.focused + panelCount - 1) % panelCount
		return true, nil
	case "/":
		m.panelSearch.Activate()
		return true, nil
	case "r":
		m.openDetailModal()
		return true, nil
	}
	return false, nil
}

func (m *Model) handleLoadComplete(msg loadCompleteMsg) {
	m.loadState = LoadStateLoaded
	m.loadTime = msg.duration
	m.logger.Debug("capture loaded", "items", msg.count, "duration", msg.duration)

	if m.width > 0 && m.height > 0 {
		m.initializeTable()
		m.ready = true
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	if m.loadState == LoadStateLoaded && !m.ready {
		m.initializeTable()
		m.ready = true
	} else if m.ready {
		m.updateTableDimensions()
	}

	if m.viewMode == ViewModeTableWithSplit {
		m.updatePanelDimensions()
		m.updatePanelContent()
	}
}

func (m *Model) initializeTable() {
	m.table = table.New(
		table.WithColumns(m.columns),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
		table.WithWidth(m.width),
	)
	m.table = ApplyTableStyles(m.table)
	m.adjustColumnWidths()
	m.applyFilters()
}

func (m *Model) tableHeight() int {
	h := m.height - tableVerticalPadding
	switch m.viewMode {
	case ViewModeTableWithSplit:
		h = h / 2
	case ViewModeTableWithSearch:
		h -= searchPanelHeight
	}
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Model) updateTableDimensions() {
	m.table.SetHeight(m.tableHeight())
	m.table.SetWidth(m.width)
	m.adjustColumnWidths()
	m.buildTableRows()
	m.table.SetRows(m.rows)
}

func (m *Model) adjustColumnWidths() {
	m.columns[0].Width = tagColumnWidth
	m.columns[1].Width = nameColumnWidth(m.width)
	m.columns[2].Width = durationColumnWidth
	m.columns[3].Width = timeColumnWidth
	m.table.SetColumns(m.columns)
}

// syncSelection follows the table cursor
func (m *Model) syncSelection() {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.visible) {
		m.selected = nil
		m.selectedIndex = 0
		return
	}
	m.selectedIndex = cursor
	m.selected = m.visible[cursor]
}

func (m *Model) openSplit() {
	m.viewMode = ViewModeTableWithSplit
	m.focused = PanelContent
	m.panelSearch.Clear()
	m.updateTableDimensions()
	m.updatePanelDimensions()
	m.updatePanelContent()
}

func (m *Model) closeSplit() {
	m.viewMode = ViewModeTable
	m.panelSearch.Deactivate()
	m.updateTableDimensions()
}

func (m *Model) updatePanelDimensions() {
	splitHeight := (m.height-tableVerticalPadding)/2 - splitPanelPadding
	splitWidth := m.width/int(panelCount) - splitPanelPadding
	if splitHeight < 1 {
		splitHeight = 1
	}
	if splitWidth < 10 {
		splitWidth = 10
	}

	for i := range m.panels {
		if m.panels[i].Width() == 0 {
			m.panels[i] = viewport.New(viewport.WithWidth(splitWidth), viewport.WithHeight(splitHeight))
			continue
		}
		m.panels[i].SetWidth(splitWidth)
		m.panels[i].SetHeight(splitHeight)
	}
}

func (m *Model) updatePanelContent() {
	if m.selected == nil {
		return
	}
	renderer := NewJSONRenderer(m.detailMarker(), m.panelSearch.filtered)

	m.panels[PanelParams].SetContent(renderer.Render(m.selected.Params()))
	m.panels[PanelContent].SetContent(renderer.Render(m.selected.SearchContent()))
	m.panels[PanelMeta].SetContent(m.formatMeta(renderer))
}

// detailMarker prefers the panel search and falls back to the list search
func (m *Model) detailMarker() *search.Marker {
	if marker := m.panelSearch.Marker(); marker != nil {
		return marker
	}
	return m.cfg.Marker
}

func (m *Model) formatMeta(renderer *JSONRenderer) string {
	it := m.selected
	width := m.panels[PanelMeta].Width()
	sections := []Section{buildOverviewSection(it, m.tr)}

	switch it.Kind() {
	case item.KindNetwork:
		if entry := it.Entry(); entry != nil {
			sections = append(sections, buildExchangeSections(&entry.Entry)...)
		}
	case item.KindWebSocket:
		if frames, err := it.Frames(); err == nil {
			sections = append(sections, buildFrameSection(frames))
		}
	}

	out := renderSections(sections, RenderOptions{Width: width, Truncate: true})
	if meta := it.Meta(); meta != nil {
		out += "\n" + renderSectionHeader(m.tr(i18n.KeyMeta, nil), width) + "\n" + renderer.Render(meta)
	}
	return out
}

func (m *Model) panelTitle(p Panel) string {
	switch p {
	case PanelParams:
		return m.tr(i18n.KeyParams, nil)
	case PanelContent:
		return m.tr(i18n.KeyContent, nil)
	default:
		return m.tr(i18n.KeyMeta, nil)
	}
}
