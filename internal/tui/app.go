package tui

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vuit/vuit/internal/config"
	"github.com/vuit/vuit/internal/deps"
	"github.com/vuit/vuit/internal/match"
	"github.com/vuit/vuit/internal/recent"
	"github.com/vuit/vuit/internal/search"
	"github.com/vuit/vuit/internal/shell"
	"github.com/vuit/vuit/internal/term"
	"github.com/vuit/vuit/internal/tui/theme"
)

type focusArea int

const (
	focusFiles focusArea = iota
	focusRecent
	focusSearch
)

type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayTerminal
	overlaySearch
	overlayHelp
)

// Deps wires the session to its collaborators; everything is constructed
// once in main and threaded through, no package-level state.
type Deps struct {
	Cfg        *config.Config
	Tools      deps.Tools
	Cmdr       shell.Commander
	Recent     *recent.Store
	Matcher    *match.Matcher
	Searcher   *search.Runner
	Shell      *term.Session
	WorkDir    string
	ConfigWarn string
}

type model struct {
	deps Deps

	colorIdx int
	palette  theme.Palette

	index []string // backing file index
	files []string // filtered view over index
	hits  []search.Hit

	filterGen int
	indexing  bool
	searching bool

	query   textinput.Model
	spinner spinner.Model

	focus        focusArea
	overlay      overlayKind
	cursorFiles  int
	cursorRecent int
	cursorHits   int

	previewOn     bool
	replaceMode   bool
	searchPattern string

	preview   []string
	termInput string

	width  int
	height int
	toast  *toast
}

type App struct {
	deps Deps
}

func New(d Deps) *App {
	return &App{deps: d}
}

// Run blocks until the session ends. The alternate screen and raw mode are
// owned by the bubbletea program, which restores the terminal on every exit
// path including signals; an error here means the terminal could not be
// initialized.
func (a *App) Run() error {
	p := tea.NewProgram(initialModel(a.deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func initialModel(d Deps) model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	idx := theme.Index(d.Cfg.Colorscheme)
	m := model{
		deps:     d,
		colorIdx: idx,
		palette:  theme.NewPalette(d.Cfg.Colorscheme, d.Cfg.HighlightColor),
		query:    ti,
		spinner:  sp,
		focus:     focusFiles,
		overlay:   overlayNone,
		indexing:  true,
		previewOn: true,
	}
	return m
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		textinput.Blink,
		buildIndexCmd(m.deps.WorkDir, m.deps.Tools.Enumerator, m.deps.Cmdr),
		waitSearchEventCmd(m.deps.Searcher),
	}
	if m.deps.ConfigWarn != "" {
		cmds = append(cmds, newWarningCmd(m.deps.ConfigWarn))
	}
	if missing := deps.Missing(m.deps.Tools); len(missing) > 0 {
		cmds = append(cmds, newInfoCmd("missing tools, using built-ins: "+strings.Join(missing, ", ")))
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case indexBuiltMsg:
		m.indexing = false
		m.index = msg.entries
		var cmds []tea.Cmd
		if msg.err != nil {
			m.toast = newToast("file lister failed, used built-in walk: "+msg.err.Error(), toastWarning)
			cmds = append(cmds, toastExpireCmd())
		}
		m.filterGen++
		cmds = append(cmds, applyFilterCmd(m.filterGen, m.deps.Matcher, m.index, m.query.Value()))
		return m, tea.Batch(cmds...)

	case filterAppliedMsg:
		// results from a superseded query are never applied
		if msg.gen != m.filterGen {
			return m, nil
		}
		m.files = msg.entries
		m.cursorFiles = clamp(m.cursorFiles, len(m.files))
		m.refreshPreview()
		return m, nil

	case searchEventMsg:
		rearm := waitSearchEventCmd(m.deps.Searcher)
		ev := msg.ev
		if ev.Gen != m.deps.Searcher.Gen() {
			return m, rearm
		}
		if ev.Err != nil {
			m.searching = false
			m.toast = newToast("search failed: "+ev.Err.Error(), toastError)
			return m, tea.Batch(rearm, toastExpireCmd())
		}
		m.hits = append(m.hits, ev.Hits...)
		m.cursorHits = clamp(m.cursorHits, len(m.hits))
		if ev.Done {
			m.searching = false
		}
		return m, rearm

	case editorFinishedMsg:
		var cmds []tea.Cmd
		if msg.err != nil {
			m.toast = newToast("editor: "+msg.err.Error(), toastError)
			cmds = append(cmds, toastExpireCmd())
		}
		// the working tree may have changed under the editor
		m.indexing = true
		cmds = append(cmds, buildIndexCmd(m.deps.WorkDir, m.deps.Tools.Enumerator, m.deps.Cmdr))
		return m, tea.Batch(cmds...)

	case replaceDoneMsg:
		if msg.err != nil {
			m.toast = newToast("replace: "+msg.err.Error(), toastError)
		} else {
			m.toast = newToast("replaced occurrences in "+strconv.Itoa(msg.files)+" file(s)", toastSuccess)
		}
		return m, tea.Batch(toastExpireCmd(), m.closeSearch())

	case shellTickMsg:
		if m.overlay == overlayTerminal {
			return m, shellTickCmd()
		}
		return m, nil

	case SuccessMsg:
		m.toast = newToast(msg.Message, toastSuccess)
		return m, toastExpireCmd()
	case ErrorMsg:
		m.toast = newToast(msg.Error(), toastError)
		return m, toastExpireCmd()
	case WarningMsg:
		m.toast = newToast(msg.Message, toastWarning)
		return m, toastExpireCmd()
	case InfoMsg:
		m.toast = newToast(msg.Message, toastInfo)
		return m, toastExpireCmd()
	case toastExpiredMsg:
		if m.toast != nil && m.toast.expired() {
			m.toast = nil
		}
		return m, nil

	case tea.KeyMsg:
		if m.overlay == overlayTerminal {
			return m.handleTerminalKey(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

// handleTerminalKey routes keystrokes to the embedded shell. Only the
// terminal toggle and the global escape keep their meaning here.
func (m model) handleTerminalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.quit()
	case "ctrl+t":
		m.overlay = overlayNone
		m.termInput = ""
		return m, nil
	case "ctrl+p":
		m.previewOn = !m.previewOn
		return m, nil
	case "ctrl+c":
		if err := m.deps.Shell.Restart(); err != nil {
			m.toast = newToast(err.Error(), toastError)
			return m, toastExpireCmd()
		}
		return m, nil
	case "enter":
		line := strings.TrimSpace(m.termInput)
		m.termInput = ""
		switch line {
		case "exit", "quit":
			m.overlay = overlayNone
			if err := m.deps.Shell.Restart(); err != nil {
				m.toast = newToast(err.Error(), toastError)
				return m, toastExpireCmd()
			}
		case "restart", "clear":
			if err := m.deps.Shell.Restart(); err != nil {
				m.toast = newToast(err.Error(), toastError)
				return m, toastExpireCmd()
			}
		case "":
		default:
			if err := m.deps.Shell.Send(line); err != nil {
				m.toast = newToast(err.Error(), toastError)
				return m, toastExpireCmd()
			}
		}
		return m, nil
	case "backspace":
		if m.termInput != "" {
			m.termInput = m.termInput[:len(m.termInput)-1]
		}
		return m, nil
	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.termInput += string(msg.Runes)
		case tea.KeySpace:
			m.termInput += " "
		}
		return m, nil
	}
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.quit()

	case "tab":
		m.switchFocus()
		m.refreshPreview()
		return m, nil

	case "down", "ctrl+j":
		m.moveCursor(1)
		m.refreshPreview()
		return m, nil

	case "up", "ctrl+k":
		m.moveCursor(-1)
		m.refreshPreview()
		return m, nil

	case "enter":
		return m.handleEnter()

	case "ctrl+r":
		if m.overlay == overlaySearch {
			return m.toggleReplaceMode()
		}
		m.indexing = true
		return m, buildIndexCmd(m.deps.WorkDir, m.deps.Tools.Enumerator, m.deps.Cmdr)

	case "ctrl+p":
		m.previewOn = !m.previewOn
		return m, nil

	case "ctrl+n":
		m.colorIdx = (m.colorIdx + 1) % len(theme.Cycle)
		m.palette = theme.At(m.colorIdx)
		return m, nil

	case "ctrl+t":
		m.overlay = overlayTerminal
		m.termInput = ""
		if !m.deps.Shell.Running() {
			if err := m.deps.Shell.Start(); err != nil {
				m.overlay = overlayNone
				m.toast = newToast(err.Error(), toastError)
				return m, toastExpireCmd()
			}
		}
		return m, shellTickCmd()

	case "ctrl+f":
		if m.overlay == overlaySearch {
			return m, m.closeSearch()
		}
		m.overlay = overlaySearch
		m.query.SetValue("")
		m.filterGen++
		return m, applyFilterCmd(m.filterGen, m.deps.Matcher, m.index, "")

	case "ctrl+h":
		if m.overlay == overlayHelp {
			m.overlay = overlayNone
		} else {
			m.overlay = overlayHelp
		}
		return m, nil

	case "ctrl+x":
		if m.focus == focusRecent {
			m.deps.Recent.Remove(m.cursorRecent)
			m.cursorRecent = clamp(m.cursorRecent, len(m.deps.Recent.Entries))
			m.refreshPreview()
		}
		return m, nil

	default:
		return m.handleQueryEdit(msg)
	}
}

func (m model) handleQueryEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.query.Value()
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	if m.query.Value() == before {
		return m, cmd
	}
	if m.overlay == overlaySearch {
		// content search runs on enter, not per keystroke
		return m, cmd
	}
	m.filterGen++
	return m, tea.Batch(cmd, applyFilterCmd(m.filterGen, m.deps.Matcher, m.index, m.query.Value()))
}

func (m model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.focus {
	case focusSearch:
		if m.cursorHits < len(m.hits) {
			hit := m.hits[m.cursorHits]
			return m.openEditor(hit.Path, hit.Line)
		}
		return m, nil
	case focusRecent:
		if m.cursorRecent < len(m.deps.Recent.Entries) {
			return m.openEditor(m.deps.Recent.Entries[m.cursorRecent], 0)
		}
		return m, nil
	default:
		if m.overlay == overlaySearch {
			if m.replaceMode {
				return m.applyReplace()
			}
			return m.startSearch()
		}
		if m.cursorFiles < len(m.files) {
			return m.openEditor(m.files[m.cursorFiles], 0)
		}
		return m, nil
	}
}

func (m model) startSearch() (tea.Model, tea.Cmd) {
	pattern := strings.TrimSpace(m.query.Value())
	if pattern == "" {
		return m, nil
	}
	m.hits = nil
	m.cursorHits = 0
	m.searching = true
	m.searchPattern = pattern
	m.deps.Searcher.Start(m.deps.WorkDir, pattern, m.index)
	return m, nil
}

// toggleReplaceMode arms replacement over the current hits; the query line
// then takes the replacement text, applied on enter.
func (m model) toggleReplaceMode() (tea.Model, tea.Cmd) {
	if m.replaceMode {
		m.replaceMode = false
		m.query.Prompt = "> "
		m.query.SetValue("")
		return m, nil
	}
	if len(m.hits) == 0 || m.searching || m.searchPattern == "" {
		return m, nil
	}
	m.replaceMode = true
	m.query.Prompt = "replace> "
	m.query.SetValue("")
	return m, nil
}

func (m model) applyReplace() (tea.Model, tea.Cmd) {
	replacement := m.query.Value()
	pattern := m.searchPattern
	hits := m.hits
	dir := m.deps.WorkDir
	return m, func() tea.Msg {
		files, err := search.ReplaceAll(dir, hits, pattern, replacement)
		return replaceDoneMsg{files: files, err: err}
	}
}

// closeSearch tears down the search overlay and restores the unfiltered
// file list; the query was consumed by the search, so an empty query must
// show the whole index again.
func (m *model) closeSearch() tea.Cmd {
	m.deps.Searcher.Cancel()
	m.overlay = overlayNone
	m.searching = false
	m.hits = nil
	m.cursorHits = 0
	m.replaceMode = false
	m.searchPattern = ""
	if m.focus == focusSearch {
		m.focus = focusFiles
	}
	m.query.Prompt = "> "
	m.query.SetValue("")
	m.filterGen++
	return applyFilterCmd(m.filterGen, m.deps.Matcher, m.index, "")
}

func (m model) openEditor(path string, line int) (tea.Model, tea.Cmd) {
	m.deps.Recent.Add(path)
	if err := m.deps.Recent.Save(); err != nil {
		m.toast = newToast("recent list not saved: "+err.Error(), toastWarning)
		return m, tea.Batch(toastExpireCmd(), openEditorCmd(m.deps.Cfg.Editor, path, line))
	}
	return m, openEditorCmd(m.deps.Cfg.Editor, path, line)
}

func (m model) quit() (tea.Model, tea.Cmd) {
	m.deps.Searcher.Cancel()
	m.deps.Shell.Close()
	_ = m.deps.Recent.Save()
	return m, tea.Quit
}

// switchFocus cycles among the non-empty list windows; query and filtered
// state are left untouched.
func (m *model) switchFocus() {
	order := []focusArea{focusFiles, focusRecent, focusSearch}
	cur := 0
	for i, f := range order {
		if f == m.focus {
			cur = i
			break
		}
	}
	for step := 1; step <= len(order); step++ {
		next := order[(cur+step)%len(order)]
		if m.focusable(next) {
			m.focus = next
			return
		}
	}
}

func (m *model) focusable(f focusArea) bool {
	switch f {
	case focusFiles:
		return len(m.files) > 0
	case focusRecent:
		return len(m.deps.Recent.Entries) > 0
	case focusSearch:
		return m.overlay == overlaySearch && len(m.hits) > 0
	}
	return false
}

func (m *model) moveCursor(delta int) {
	switch m.focus {
	case focusFiles:
		m.cursorFiles = clampMove(m.cursorFiles, delta, len(m.files))
	case focusRecent:
		m.cursorRecent = clampMove(m.cursorRecent, delta, len(m.deps.Recent.Entries))
	case focusSearch:
		m.cursorHits = clampMove(m.cursorHits, delta, len(m.hits))
	}
}

func (m *model) refreshPreview() {
	var path string
	switch m.focus {
	case focusFiles:
		if m.cursorFiles < len(m.files) {
			path = m.files[m.cursorFiles]
		}
	case focusRecent:
		if m.cursorRecent < len(m.deps.Recent.Entries) {
			path = m.deps.Recent.Entries[m.cursorRecent]
		}
	case focusSearch:
		m.preview = nil
		return
	}
	if path == "" {
		m.preview = nil
		return
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.deps.WorkDir, path)
	}
	m.preview = loadPreview(path, previewLines)
}

func clamp(cursor, n int) int {
	if n == 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

func clampMove(cursor, delta, n int) int {
	return clamp(cursor+delta, n)
}
