package tui

import (
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vuit/vuit/internal/index"
	"github.com/vuit/vuit/internal/match"
	"github.com/vuit/vuit/internal/search"
	"github.com/vuit/vuit/internal/shell"
)

func buildIndexCmd(dir, enumerator string, cmdr shell.Commander) tea.Cmd {
	return func() tea.Msg {
		entries, err := index.Build(dir, enumerator, cmdr)
		return indexBuiltMsg{entries: entries, err: err}
	}
}

func applyFilterCmd(gen int, m *match.Matcher, entries []string, query string) tea.Cmd {
	return func() tea.Msg {
		return filterAppliedMsg{gen: gen, entries: m.Match(entries, query)}
	}
}

func waitSearchEventCmd(r *search.Runner) tea.Cmd {
	return func() tea.Msg {
		return searchEventMsg{ev: <-r.Events}
	}
}

const shellRefreshInterval = 250 * time.Millisecond

func shellTickCmd() tea.Cmd {
	return tea.Tick(shellRefreshInterval, func(time.Time) tea.Msg {
		return shellTickMsg{}
	})
}

func newWarningCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return WarningMsg{Message: message}
	}
}

func newInfoCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return InfoMsg{Message: message}
	}
}

// editorArgs builds the argv tail for opening path. vi-style editors get a
// +line argument so search hits open at the matching line.
func editorArgs(editor, path string, line int) []string {
	if line > 0 && isViLike(editor) {
		return []string{"+" + strconv.Itoa(line), path}
	}
	return []string{path}
}

func isViLike(editor string) bool {
	switch filepath.Base(editor) {
	case "vi", "vim", "nvim", "gvim":
		return true
	}
	return false
}

// openEditorCmd hands the terminal to the editor as a foreground process;
// the runtime leaves the alternate screen for its lifetime and restores it
// on exit, whatever the exit path.
func openEditorCmd(editor, path string, line int) tea.Cmd {
	c := exec.Command(editor, editorArgs(editor, path, line)...)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}
