package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/pb33f/netlogs/config"
	"github.com/pb33f/netlogs/hargen"
	"github.com/pb33f/netlogs/item"
	"github.com/pb33f/netlogs/profile"
	"github.com/pb33f/netlogs/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	cases := map[float64]string{
		0:      "---",
		-1:     "---",
		0.5:    "500μs",
		150:    "150ms",
		2500:   "2.5s",
		125000: "2m5s",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatDuration(in), "%v", in)
	}
}

func TestFormatTimestamp(t *testing.T) {
	ms := int64(1704164645678)
	assert.Equal(t, time.UnixMilli(ms).Format("15:04:05.000"), formatTimestamp(ms))
	assert.Equal(t, "---", formatTimestamp(0))
}

func TestFormatName(t *testing.T) {
	assert.Equal(t, "-", formatName("", false, 200))
	assert.Equal(t, errorMarker+"query::GetUser", formatName("query::GetUser", true, 200))

	long := strings.Repeat("a", 300)
	got := formatName(long, false, 80)
	assert.Len(t, []rune(got), nameColumnWidth(80))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "abc", truncateString("abc", 5))
	assert.Equal(t, "ab", truncateString("abcdef", 2))
	assert.Equal(t, "Пр...", truncateString("Привет мир", 5))
}

func TestIsDuration(t *testing.T) {
	for _, s := range []string{"150ms", "2.5s", "500μs", "2m5s"} {
		assert.True(t, isDuration(s), s)
	}
	for _, s := range []string{"", "ms", "/api/users", "5u7hmsls", "1.2.3s", "GQL"} {
		assert.False(t, isDuration(s), s)
	}
}

func TestColorizeTags(t *testing.T) {
	line := " BGQL     query::GetUser  150ms  10:00:00.000"
	colored := colorizeTags(line)
	assert.NotEqual(t, line, colored)
	assert.Contains(t, colored, renderedTags[profile.TagGraphQLBatch])

	plain := " NET LOGS  File opened  ---  10:00:00.000"
	assert.Equal(t, plain, colorizeTags(plain))
}

func TestColorizeErrors(t *testing.T) {
	line := " GQL  " + errorMarker + "query::Broken   12ms  10:00:00.000"
	colored := colorizeErrors(line)
	assert.NotEqual(t, line, colored)
	assert.Contains(t, colored, "query::Broken")
	assert.Equal(t, "no marker here", colorizeErrors("no marker here"))
}

func marker(t *testing.T, value string) *search.Marker {
	t.Helper()
	m, err := search.NewMarker(value, search.PlainText)
	require.NoError(t, err)
	return m
}

func TestPruneTree(t *testing.T) {
	tree := map[string]any{
		"user": map[string]any{"name": "Ada", "role": "admin"},
		"tags": []any{"alpha", "beta"},
		"misc": 42.0,
	}

	pruned, ok := pruneTree(tree, marker(t, "ada"))
	require.True(t, ok)
	assert.Equal(t, map[string]any{"user": map[string]any{"name": "Ada"}}, pruned)

	pruned, ok = pruneTree(tree, marker(t, "user"))
	require.True(t, ok)
	assert.Equal(t, map[string]any{"user": map[string]any{"name": "Ada", "role": "admin"}}, pruned)

	pruned, ok = pruneTree(tree, marker(t, "beta"))
	require.True(t, ok)
	assert.Equal(t, map[string]any{"tags": []any{"beta"}}, pruned)

	_, ok = pruneTree(tree, marker(t, "nothing"))
	assert.False(t, ok)
}

func TestCountMatches(t *testing.T) {
	tree := map[string]any{
		"name":  "name",
		"items": []any{map[string]any{"name": nil}},
	}
	assert.Equal(t, 3, countMatches(tree, marker(t, "name")))
	assert.Equal(t, 1, countMatches(tree, marker(t, "null")))
	assert.Equal(t, 0, countMatches(tree, nil))
}

func TestJSONRenderer(t *testing.T) {
	tree := map[string]any{"user": map[string]any{"name": "Ada"}, "count": 3.0}

	out := NewJSONRenderer(nil, false).Render(tree)
	assert.Contains(t, out, `"user"`)
	assert.Contains(t, out, `"Ada"`)
	assert.Contains(t, out, "3")
	assert.Less(t, strings.Index(out, `"count"`), strings.Index(out, `"user"`))

	filtered := NewJSONRenderer(marker(t, "ada"), true).Render(tree)
	assert.Contains(t, filtered, `"Ada"`)
	assert.NotContains(t, filtered, `"count"`)

	text := NewJSONRenderer(marker(t, "opened"), false).Render("File opened: capture.har")
	assert.Contains(t, text, "File ")
	assert.Contains(t, text, "opened")
	assert.NotEqual(t, "File opened: capture.har", text)
}

func TestJSONRenderer_Structs(t *testing.T) {
	out := NewJSONRenderer(nil, false).Render(item.MimeContent{MimeType: "image/png", Data: "iVBORw0KGgo="})
	assert.Contains(t, out, `"mimeType"`)
	assert.Contains(t, out, `"image/png"`)
}

func TestCollectTagsAndFilterChain(t *testing.T) {
	a := item.NewContentOnly("NET LOGS", "File opened: a.har", 1)
	b := item.NewContentOnly("GQL", "query::GetUser", 2)
	c := item.NewTransaction(item.TransactionConfig{Name: "rpc.users.Get", Tag: "RPC", Timestamp: 3})

	assert.Equal(t, []string{"GQL", "NET LOGS"}, collectTags([]*item.Item{a, b, c, b}))

	list := item.NewList()
	list.SetList([]*item.Item{a, b, c}, false)

	cfg, err := search.NewConfig("", search.PlainText, "")
	require.NoError(t, err)
	assert.Len(t, list.Visible(buildFilterChain(cfg, nil)), 3)
	assert.Equal(t, []*item.Item{a, c}, list.Visible(buildFilterChain(cfg, map[string]string{"GQL": "GQL"})))

	cfg, err = search.NewConfig("getuser", search.PlainText, "")
	require.NoError(t, err)
	assert.Equal(t, []*item.Item{b}, list.Visible(buildFilterChain(cfg, nil)))
}

func TestNoticeBoard(t *testing.T) {
	b := newNoticeBoard()
	_, ok := b.latest()
	assert.False(t, ok)

	id := b.Info("loading")
	b.Error("broken")
	n, ok := b.latest()
	require.True(t, ok)
	assert.True(t, n.isError)

	b.Dismiss(id)
	b.Dismiss(id)
	n, _ = b.latest()
	assert.Equal(t, "broken", n.message)
}

func TestViewportSearchState(t *testing.T) {
	s := NewViewportSearchState()
	assert.Nil(t, s.Marker())

	s.UpdateQuery("user")
	require.NotNil(t, s.Marker())
	assert.Equal(t, search.PlainText, s.Marker().Mode())

	s.ToggleRegex()
	s.UpdateQuery("(")
	assert.Nil(t, s.Marker())
	assert.Error(t, s.err)

	s.ToggleFiltered()
	assert.False(t, s.filtered, "nothing to filter on without a marker")

	s.UpdateQuery("us.r")
	s.ToggleFiltered()
	assert.True(t, s.filtered)

	s.MoveCursor(-1)
	assert.Equal(t, panelSearchFiltered, s.cursor)

	s.Clear()
	assert.Nil(t, s.Marker())
	assert.False(t, s.filtered)
}

func loadedModel(t *testing.T) (*Model, []hargen.InjectedTerm) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.har")
	_, injected, err := hargen.GenerateToFile(path, hargen.GenerateOptions{
		EntryCount:         15,
		Shapes:             []hargen.Shape{hargen.REST, hargen.GraphQL, hargen.Socket, hargen.Annotation},
		InjectTerms:        []string{"zebracorn"},
		InjectionLocations: []hargen.InjectionLocation{hargen.ResponseBody},
		Seed:               21,
		Start:              time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)

	m := NewModel(Options{FileName: path, Settings: config.Default()})
	m.Update(m.startLoading()())
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	require.Equal(t, LoadStateLoaded, m.loadState)
	require.True(t, m.ready)
	return m, injected
}

func TestModel_Load(t *testing.T) {
	m, _ := loadedModel(t)

	assert.Equal(t, 16, m.List().Len())
	assert.Len(t, m.Visible(), 16)
	assert.Len(t, m.rows, 16)
	assert.Equal(t, "NET LOGS", m.Visible()[0].Tag())
	assert.Contains(t, m.View(), "netlogs")
}

func TestModel_LoadError(t *testing.T) {
	m := NewModel(Options{FileName: filepath.Join(t.TempDir(), "notes.txt")})
	m.Update(m.startLoading()())

	assert.Equal(t, LoadStateError, m.loadState)
	var importErr interface{ Unwrap() error }
	assert.True(t, errors.As(m.err, &importErr))
	n, ok := m.notices.latest()
	require.True(t, ok)
	assert.True(t, n.isError)
}

func TestModel_Search(t *testing.T) {
	m, injected := loadedModel(t)
	require.Len(t, injected, 1)

	m.searchInput.SetValue("zebracorn")
	m.applyFilters()
	require.NotEmpty(t, m.Visible())
	for _, it := range m.Visible() {
		assert.True(t, it.ShouldShow(m.cfg))
	}

	// an invalid regex keeps the last result
	before := m.Visible()
	m.regex = true
	m.searchInput.SetValue("(")
	m.applyFilters()
	assert.Error(t, m.searchErr)
	assert.Equal(t, before, m.Visible())

	m.regex = false
	handled, _ := m.handleKey("esc")
	assert.True(t, handled)
	assert.Len(t, m.Visible(), 16)
}

func TestModel_SearchPanelKeys(t *testing.T) {
	m, _ := loadedModel(t)

	m.handleKey("/")
	assert.Equal(t, ViewModeTableWithSearch, m.viewMode)

	m.handleKey("tab")
	m.handleKey("tab")
	assert.Equal(t, searchCursorRegex, m.searchCursor)
	m.handleKey("space")
	assert.True(t, m.regex)

	handled, _ := m.handleKey("x")
	assert.False(t, handled, "letters go to the inputs")

	m.handleKey("esc")
	assert.Equal(t, ViewModeTable, m.viewMode)
}

func TestModel_HiddenTags(t *testing.T) {
	m, _ := loadedModel(t)

	m.handleKey("h")
	require.Equal(t, ModalHiddenTags, m.activeModal)

	tags := m.modalTags()
	require.Contains(t, tags, "NET LOGS")
	for i, tag := range tags {
		if tag == "NET LOGS" {
			m.hiddenCursor = i
		}
	}
	m.handleKey("space")
	assert.True(t, m.settings.IsHidden("NET LOGS"))
	assert.Len(t, m.Visible(), 15)
	assert.Contains(t, m.renderHiddenTagsModal(), "NET LOGS")

	m.hiddenCursor = len(m.modalTags())
	m.handleKey("enter")
	assert.Empty(t, m.settings.HiddenTags)
	assert.Len(t, m.Visible(), 16)

	m.handleKey("esc")
	assert.Equal(t, ModalNone, m.activeModal)
}

func TestModel_SplitAndRaw(t *testing.T) {
	m, _ := loadedModel(t)
	m.table.SetCursor(1)
	m.syncSelection()
	require.NotNil(t, m.selected)

	m.handleKey("enter")
	assert.Equal(t, ViewModeTableWithSplit, m.viewMode)
	assert.Equal(t, PanelContent, m.focused)
	assert.NotEmpty(t, m.panels[PanelMeta].View())

	m.handleKey("tab")
	assert.Equal(t, PanelMeta, m.focused)
	m.handleKey("shift+tab")
	assert.Equal(t, PanelContent, m.focused)

	m.handleKey("r")
	require.Equal(t, ModalEntry, m.activeModal)
	assert.Contains(t, m.formatExportedEntry(), "startedDateTime")
	m.handleKey("y")
	assert.True(t, m.detailYAML)
	assert.Contains(t, m.formatExportedEntry(), "startedDateTime")
	m.handleKey("esc")
	assert.Equal(t, ModalNone, m.activeModal)

	m.handleKey("esc")
	assert.Equal(t, ViewModeTable, m.viewMode)
}

func TestJSONToYAML(t *testing.T) {
	out, err := jsonToYAML([]byte(`{"b":1,"a":{"c":[true]}}`))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "b: 1\na:\n"), out)
	assert.Contains(t, out, "- true")
	assert.NotContains(t, out, "{")
}

func TestSplitIndent(t *testing.T) {
	lead, content, trail := splitIndent("    \"id\": 1  ")
	assert.Equal(t, "    ", lead)
	assert.Equal(t, "\"id\": 1", content)
	assert.Equal(t, "  ", trail)

	lead, content, trail = splitIndent("   ")
	assert.Empty(t, lead+content)
	assert.Equal(t, "   ", trail)
}

func TestHighlightLine(t *testing.T) {
	assert.Equal(t, "", highlightLine("", false))
	assert.Equal(t, "plain", highlightLine("plain", false))

	json := highlightLine(`  "url": "https://example.com",`, false)
	assert.True(t, strings.HasPrefix(json, "  "))
	assert.Contains(t, json, `"https://example.com",`)
	assert.NotEqual(t, `  "url": "https://example.com",`, json)

	assert.NotEqual(t, `"x": null`, highlightLine(`"x": null`, false))

	yaml := highlightLine("  - name: Accept", true)
	assert.True(t, strings.HasPrefix(yaml, "  "))
	assert.Contains(t, yaml, " Accept")
	assert.NotEqual(t, "  - name: Accept", yaml)

	assert.Equal(t, "just words", highlightLine("just words", true))
}
