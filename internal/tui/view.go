package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vuit/vuit/internal/term"
	"github.com/vuit/vuit/internal/tui/theme"
)

// Pane heights, in terminal rows including borders.
const (
	recentPaneLines  = 8
	overlayPaneLines = 20
	queryBarLines    = 3
	helpHintWidth    = 18
)

func (m model) View() string {
	if m.width < 20 || m.height < 10 {
		return "terminal too small"
	}

	overlayH := 0
	if m.overlay == overlayTerminal || m.overlay == overlayHelp {
		overlayH = overlayPaneLines
	}
	contentH := m.height - queryBarLines - overlayH
	if contentH < 4 {
		contentH = 4
	}
	leftW := m.width / 2
	rightW := m.width - leftW
	if !m.previewOn {
		leftW = m.width
	}

	filesH := contentH - recentPaneLines
	if filesH < 3 {
		filesH = 3
	}

	recentPane := m.renderList(" Recent ", m.deps.Recent.Entries,
		m.cursorRecent, m.focus == focusRecent, leftW, recentPaneLines)

	var mainPane string
	if m.overlay == overlaySearch {
		mainPane = m.renderList(m.searchTitle(), m.hitLines(),
			m.cursorHits, m.focus == focusSearch, leftW, filesH)
	} else {
		mainPane = m.renderList(m.filesTitle(), m.files,
			m.cursorFiles, m.focus == focusFiles, leftW, filesH)
	}

	top := lipgloss.JoinVertical(lipgloss.Left, recentPane, mainPane)
	if m.previewOn {
		previewPane := m.renderPane(" Preview ", m.preview, rightW, contentH)
		top = lipgloss.JoinHorizontal(lipgloss.Top, top, previewPane)
	}

	sections := []string{top}
	switch m.overlay {
	case overlayTerminal:
		lines := m.deps.Shell.Tail(overlayPaneLines - 2)
		for i, l := range lines {
			lines[i] = term.StripANSI(l)
		}
		sections = append(sections, m.renderPane(" Terminal ", lines, m.width, overlayPaneLines))
	case overlayHelp:
		sections = append(sections, m.renderPane(" Help ", helpLines, m.width, overlayPaneLines))
	}
	sections = append(sections, m.renderQueryBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m model) filesTitle() string {
	if m.indexing {
		return " Files " + m.spinner.View()
	}
	return " Files "
}

func (m model) searchTitle() string {
	if m.replaceMode {
		return " Replace "
	}
	if m.searching {
		return " Strings " + m.spinner.View()
	}
	return " Strings "
}

func (m model) hitLines() []string {
	lines := make([]string, len(m.hits))
	for i, h := range m.hits {
		lines[i] = h.Format()
	}
	return lines
}

// renderList draws a bordered pane with a cursor row; the visible window
// follows the cursor.
func (m model) renderList(title string, lines []string, cursor int, focused bool, w, h int) string {
	innerW := w - 2
	innerH := h - 2
	if innerW < 1 || innerH < 2 {
		return ""
	}

	// one row is taken by the pane title
	listH := innerH - 1
	start := 0
	if cursor >= listH {
		start = cursor + 1 - listH
	}
	end := start + listH
	if end > len(lines) {
		end = len(lines)
	}

	sel := theme.SelectedStyle(m.palette)
	rows := make([]string, 0, listH)
	for i := start; i < end; i++ {
		row := truncate(lines[i], innerW)
		if focused && i == cursor {
			row = sel.Render(padRight(row, innerW))
		}
		rows = append(rows, row)
	}

	return theme.PaneStyle(m.palette).
		Width(innerW).
		Height(innerH).
		Render(titled(title, strings.Join(rows, "\n"), innerW))
}

func (m model) renderPane(title string, lines []string, w, h int) string {
	innerW := w - 2
	innerH := h - 2
	if innerW < 1 || innerH < 2 {
		return ""
	}
	if len(lines) > innerH-1 {
		lines = lines[:innerH-1]
	}
	rows := make([]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, truncate(l, innerW))
	}
	return theme.PaneStyle(m.palette).
		Width(innerW).
		Height(innerH).
		Render(titled(title, strings.Join(rows, "\n"), innerW))
}

func (m model) renderQueryBar() string {
	barW := m.width - helpHintWidth
	if barW < 10 {
		barW = m.width
	}

	prompt := m.query.View()
	if m.overlay == overlayTerminal {
		prompt = "$ " + m.termInput
	}
	if m.toast != nil {
		prompt = m.toast.render()
	}

	bar := theme.PaneStyle(m.palette).
		Width(barW - 2).
		Height(1).
		Render(truncate(prompt, barW-2))

	if barW == m.width {
		return bar
	}
	hint := theme.PaneStyle(m.palette).
		Width(helpHintWidth - 2).
		Height(1).
		Render(truncate(" Help -> C-h", helpHintWidth-2))
	return lipgloss.JoinHorizontal(lipgloss.Top, bar, hint)
}

// titled overlays a pane title onto the first content row area; lipgloss
// borders carry no native titles.
func titled(title, body string, w int) string {
	header := truncate(title, w)
	if body == "" {
		return header
	}
	return header + "\n" + body
}

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w <= 1 {
		return string(r[:w])
	}
	return string(r[:w-1]) + "…"
}

func padRight(s string, w int) string {
	r := []rune(s)
	if len(r) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(r))
}
