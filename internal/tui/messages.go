package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vuit/vuit/internal/search"
	"github.com/vuit/vuit/internal/tui/theme"
)

type toastType int

const (
	toastSuccess toastType = iota
	toastError
	toastWarning
	toastInfo
)

const toastDuration = 3 * time.Second

type toast struct {
	message   string
	kind      toastType
	expiresAt time.Time
}

func (t *toast) expired() bool {
	return time.Now().After(t.expiresAt)
}

func newToast(message string, kind toastType) *toast {
	return &toast{message: message, kind: kind, expiresAt: time.Now().Add(toastDuration)}
}

func (t *toast) render() string {
	var style lipgloss.Style
	switch t.kind {
	case toastSuccess:
		style = theme.OkStyle
	case toastError:
		style = theme.ErrStyle
	case toastWarning:
		style = theme.WarnStyle
	default:
		style = theme.DimStyle
	}
	return style.Render(t.message)
}

type SuccessMsg struct {
	Message string
}

type ErrorMsg struct {
	Err     error
	Context string
}

func (e ErrorMsg) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %v", e.Context, e.Err)
	}
	return e.Err.Error()
}

type WarningMsg struct {
	Message string
}

type InfoMsg struct {
	Message string
}

type toastExpiredMsg struct{}

func toastExpireCmd() tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{}
	})
}

// indexBuiltMsg carries a freshly rebuilt file index. err is set when the
// enumerator failed and the built-in walk produced the entries.
type indexBuiltMsg struct {
	entries []string
	err     error
}

// filterAppliedMsg carries the filtered view for one query generation;
// stale generations are discarded on receipt.
type filterAppliedMsg struct {
	gen     int
	entries []string
}

// searchEventMsg wraps one delivery from the content-search runner.
type searchEventMsg struct {
	ev search.Event
}

// replaceDoneMsg arrives when a replacement pass over the search hits has
// finished rewriting files.
type replaceDoneMsg struct {
	files int
	err   error
}

// editorFinishedMsg arrives when the foreground editor process exits and
// the terminal has been handed back.
type editorFinishedMsg struct {
	err error
}

// shellTickMsg drives redraws while the terminal overlay streams output.
type shellTickMsg struct{}
