package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vuit/vuit/internal/config"
	"github.com/vuit/vuit/internal/deps"
	"github.com/vuit/vuit/internal/match"
	"github.com/vuit/vuit/internal/recent"
	"github.com/vuit/vuit/internal/search"
	"github.com/vuit/vuit/internal/term"
	"github.com/vuit/vuit/internal/tui/theme"
)

func testModel(t *testing.T) model {
	t.Helper()
	cfg := &config.Config{
		Colorscheme:    "lightblue",
		HighlightColor: "blue",
		Editor:         "vim",
		Shell:          "bash",
		MatchMode:      config.MatchSubstring,
	}
	d := Deps{
		Cfg:      cfg,
		Tools:    deps.Tools{},
		Recent:   &recent.Store{Entries: []string{}},
		Matcher:  match.New("", cfg.MatchMode, nil),
		Searcher: search.NewRunner(""),
		Shell:    term.New(cfg.Shell),
		WorkDir:  t.TempDir(),
	}
	m := initialModel(d)
	m.width = 120
	m.height = 40
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return nm, cmd
}

func TestStaleFilterGenerationDiscarded(t *testing.T) {
	m := testModel(t)
	m.index = []string{"a.txt", "b/c.txt", "readme.md"}
	m.files = m.index
	m.filterGen = 2

	m, _ = update(t, m, filterAppliedMsg{gen: 1, entries: []string{"stale.txt"}})
	if len(m.files) != 3 {
		t.Fatalf("stale generation applied: %v", m.files)
	}

	m, _ = update(t, m, filterAppliedMsg{gen: 2, entries: []string{"b/c.txt"}})
	if len(m.files) != 1 || m.files[0] != "b/c.txt" {
		t.Fatalf("current generation not applied: %v", m.files)
	}
}

func TestQueryKeystrokeIssuesNewGeneration(t *testing.T) {
	m := testModel(t)
	m.index = []string{"a.txt"}
	gen := m.filterGen

	m, cmd := update(t, m, keyRunes("c"))
	if m.filterGen != gen+1 {
		t.Fatalf("generation not bumped: %d", m.filterGen)
	}
	if cmd == nil {
		t.Fatal("expected a filter command")
	}
	if m.query.Value() != "c" {
		t.Fatalf("query buffer mismatch: %q", m.query.Value())
	}
}

func TestIndexRebuildReappliesFilter(t *testing.T) {
	m := testModel(t)
	m.query.SetValue("c")
	m.filterGen = 5

	m, cmd := update(t, m, indexBuiltMsg{entries: []string{"a.txt", "b/c.txt"}})
	if m.filterGen != 6 {
		t.Fatalf("rebuild should issue a new generation, got %d", m.filterGen)
	}
	if cmd == nil {
		t.Fatal("expected a re-filter command")
	}
	if m.indexing {
		t.Fatal("indexing flag not cleared")
	}
}

func TestTabPreservesQueryAndFilter(t *testing.T) {
	m := testModel(t)
	m.files = []string{"a.txt"}
	m.deps.Recent.Entries = []string{"b.txt"}
	m.query.SetValue("x")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusRecent {
		t.Fatalf("focus mismatch: %d", m.focus)
	}
	if m.query.Value() != "x" {
		t.Fatal("tab reset the query")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusFiles {
		t.Fatalf("focus did not cycle back: %d", m.focus)
	}
}

func TestTabSkipsEmptyLists(t *testing.T) {
	m := testModel(t)
	m.files = []string{"a.txt"}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusFiles {
		t.Fatalf("focus moved to an empty window: %d", m.focus)
	}
}

func TestCursorClampedToFilteredBounds(t *testing.T) {
	m := testModel(t)
	m.files = []string{"a.txt", "b.txt"}
	m.cursorFiles = 1
	m.filterGen = 1

	m, _ = update(t, m, filterAppliedMsg{gen: 1, entries: []string{"a.txt"}})
	if m.cursorFiles != 0 {
		t.Fatalf("cursor not clamped: %d", m.cursorFiles)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursorFiles != 0 {
		t.Fatalf("cursor moved past top: %d", m.cursorFiles)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursorFiles != 0 {
		t.Fatalf("cursor moved past bottom: %d", m.cursorFiles)
	}
}

func TestEnterOnFilePushesRecentFront(t *testing.T) {
	m := testModel(t)
	m.files = []string{"a.txt", "b.txt"}
	m.cursorFiles = 1
	m.deps.Recent.Entries = []string{"a.txt"}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected editor exec command")
	}
	if m.deps.Recent.Entries[0] != "b.txt" {
		t.Fatalf("recent front mismatch: %v", m.deps.Recent.Entries)
	}
}

func TestEditorExitTriggersRefresh(t *testing.T) {
	m := testModel(t)
	m, cmd := update(t, m, editorFinishedMsg{})
	if !m.indexing {
		t.Fatal("refresh not started after editor exit")
	}
	if cmd == nil {
		t.Fatal("expected index rebuild command")
	}
}

func TestColorschemeCycleWraps(t *testing.T) {
	m := testModel(t)
	m.colorIdx = len(theme.Cycle) - 1

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	if m.colorIdx != 0 {
		t.Fatalf("cycle did not wrap: %d", m.colorIdx)
	}
	if m.palette != theme.At(0) {
		t.Fatal("palette not updated")
	}
}

func TestTerminalOverlayRoutesKeystrokes(t *testing.T) {
	m := testModel(t)
	m.overlay = overlayTerminal

	m, _ = update(t, m, keyRunes("l"))
	m, _ = update(t, m, keyRunes("s"))
	if m.termInput != "ls" {
		t.Fatalf("terminal input mismatch: %q", m.termInput)
	}
	if m.query.Value() != "" {
		t.Fatal("keystroke leaked into the filter query")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	if m.termInput != "l" {
		t.Fatalf("backspace mismatch: %q", m.termInput)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.overlay != overlayNone {
		t.Fatal("ctrl+t did not hide the terminal overlay")
	}
}

func TestSearchOverlayCloseCancelsAndClears(t *testing.T) {
	m := testModel(t)
	m.overlay = overlaySearch
	m.hits = []search.Hit{{Path: "a.txt", Line: 1, Text: "x"}}
	m.focus = focusSearch
	m.searching = true

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	if m.overlay != overlayNone {
		t.Fatal("overlay not closed")
	}
	if len(m.hits) != 0 || m.searching {
		t.Fatal("search state not cleared")
	}
	if m.focus != focusFiles {
		t.Fatalf("focus mismatch: %d", m.focus)
	}
}

// applyCmds executes a returned command tree synchronously and feeds every
// produced message back through Update.
func applyCmds(t *testing.T, m model, cmd tea.Cmd) model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = applyCmds(t, m, c)
		}
		return m
	default:
		m, _ = update(t, m, msg)
		return m
	}
}

func TestSearchOverlayCloseRestoresUnfilteredList(t *testing.T) {
	m := testModel(t)
	m.index = []string{"a.txt", "b/c.txt", "readme.md"}

	m, cmd := update(t, m, keyRunes("c"))
	if cmd == nil {
		t.Fatal("expected a filter command")
	}
	m = applyCmds(t, m, cmd)
	if len(m.files) != 1 || m.files[0] != "b/c.txt" {
		t.Fatalf("filtered view mismatch: %v", m.files)
	}

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	if cmd == nil {
		t.Fatal("opening the search window must re-filter the cleared query")
	}
	m = applyCmds(t, m, cmd)

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	if cmd == nil {
		t.Fatal("closing the search window must re-filter the cleared query")
	}
	m = applyCmds(t, m, cmd)
	if m.query.Value() != "" {
		t.Fatalf("query not cleared: %q", m.query.Value())
	}
	if len(m.files) != 3 {
		t.Fatalf("empty query must show the whole index, got %v", m.files)
	}
}

func TestPreviewToggle(t *testing.T) {
	m := testModel(t)
	if !m.previewOn {
		t.Fatal("preview must start enabled")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	if m.previewOn {
		t.Fatal("ctrl+p did not hide the preview pane")
	}
	if strings.Contains(m.View(), " Preview ") {
		t.Fatal("hidden preview pane still rendered")
	}

	m.overlay = overlayTerminal
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	if !m.previewOn {
		t.Fatal("ctrl+p in the terminal overlay did not restore the preview")
	}
}

func TestReplaceModeRewritesHitLines(t *testing.T) {
	m := testModel(t)
	path := filepath.Join(m.deps.WorkDir, "a.txt")
	if err := os.WriteFile(path, []byte("foo one\nbar\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m.overlay = overlaySearch
	m.hits = []search.Hit{{Path: "a.txt", Line: 1, Text: "foo one"}}
	m.searchPattern = "foo"

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if !m.replaceMode {
		t.Fatal("ctrl+r in the search window did not arm replace mode")
	}

	m, _ = update(t, m, keyRunes("baz"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a replace command")
	}
	msg, ok := cmd().(replaceDoneMsg)
	if !ok {
		t.Fatalf("unexpected message %T", msg)
	}
	if msg.err != nil || msg.files != 1 {
		t.Fatalf("files=%d err=%v", msg.files, msg.err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "baz one\nbar\n" {
		t.Fatalf("content = %q", string(data))
	}

	m, _ = update(t, m, msg)
	if m.overlay != overlayNone || m.replaceMode || len(m.hits) != 0 {
		t.Fatal("replace did not tear down the search window")
	}
}

func TestReplaceModeNeedsCompletedSearch(t *testing.T) {
	m := testModel(t)
	m.overlay = overlaySearch

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.replaceMode {
		t.Fatal("replace mode armed without hits")
	}
	if m.indexing {
		t.Fatal("ctrl+r in the search window must not rescan")
	}
}

func TestStaleSearchEventDiscarded(t *testing.T) {
	m := testModel(t)
	// runner generation is 0; an event from generation 1 is stale state
	ev := search.Event{Gen: 1, Hits: []search.Hit{{Path: "x", Line: 1}}}

	m, cmd := update(t, m, searchEventMsg{ev: ev})
	if len(m.hits) != 0 {
		t.Fatalf("stale search hits applied: %v", m.hits)
	}
	if cmd == nil {
		t.Fatal("event wait must be re-armed")
	}
}

func TestConfigWarningSurfacesOnce(t *testing.T) {
	m := testModel(t)
	m.deps.ConfigWarn = "bad config"

	m, _ = update(t, m, WarningMsg{Message: m.deps.ConfigWarn})
	if m.toast == nil || m.toast.kind != toastWarning {
		t.Fatal("warning toast missing")
	}
}

func TestEditorArgs(t *testing.T) {
	cases := []struct {
		editor string
		line   int
		want   []string
	}{
		{"vim", 12, []string{"+12", "a.go"}},
		{"/usr/bin/nvim", 3, []string{"+3", "a.go"}},
		{"vim", 0, []string{"a.go"}},
		{"code", 12, []string{"a.go"}},
	}
	for _, c := range cases {
		got := editorArgs(c.editor, "a.go", c.line)
		if len(got) != len(c.want) {
			t.Fatalf("%s line %d: %v", c.editor, c.line, got)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("%s line %d: %v", c.editor, c.line, got)
			}
		}
	}
}
