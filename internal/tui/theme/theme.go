package theme

import "github.com/charmbracelet/lipgloss"

// Cycle is the ordered set of colorschemes stepped through by the
// cycle-colorscheme key, wrapping at the end.
var Cycle = []string{
	"lightblue",
	"cyan",
	"lightgreen",
	"yellow",
	"lightred",
	"green",
	"lightcyan",
	"blue",
	"lightyellow",
	"red",
}

var colors = map[string]lipgloss.Color{
	"blue":        lipgloss.Color("4"),
	"lightblue":   lipgloss.Color("12"),
	"red":         lipgloss.Color("1"),
	"lightred":    lipgloss.Color("9"),
	"green":       lipgloss.Color("2"),
	"lightgreen":  lipgloss.Color("10"),
	"cyan":        lipgloss.Color("6"),
	"lightcyan":   lipgloss.Color("14"),
	"yellow":      lipgloss.Color("3"),
	"lightyellow": lipgloss.Color("11"),
}

// Color resolves a config color name, defaulting to lightblue for
// anything unrecognized.
func Color(name string) lipgloss.Color {
	if c, ok := colors[name]; ok {
		return c
	}
	return colors["lightblue"]
}

// Index returns name's position in Cycle, 0 when unknown.
func Index(name string) int {
	for i, c := range Cycle {
		if c == name {
			return i
		}
	}
	return 0
}

// Palette is the per-render color pair derived from the active scheme.
type Palette struct {
	Base      lipgloss.Color
	Highlight lipgloss.Color
}

func NewPalette(scheme, highlight string) Palette {
	return Palette{Base: Color(scheme), Highlight: Color(highlight)}
}

// At returns the palette for position i in the cycle; the highlight is the
// next cycle entry so the pair stays distinct.
func At(i int) Palette {
	n := len(Cycle)
	i = ((i % n) + n) % n
	return Palette{Base: Color(Cycle[i]), Highlight: Color(Cycle[(i+1)%n])}
}

var (
	White     = lipgloss.Color("15")
	DimColor  = lipgloss.Color("8")
	ErrColor  = lipgloss.Color("9")
	WarnColor = lipgloss.Color("11")
	OkColor   = lipgloss.Color("10")

	DimStyle   = lipgloss.NewStyle().Foreground(DimColor)
	ErrStyle   = lipgloss.NewStyle().Foreground(ErrColor).Bold(true)
	WarnStyle  = lipgloss.NewStyle().Foreground(WarnColor)
	OkStyle    = lipgloss.NewStyle().Foreground(OkColor)
	WhiteStyle = lipgloss.NewStyle().Foreground(White)

	Border = lipgloss.ThickBorder()
)

// PaneStyle frames one window in the active scheme color.
func PaneStyle(p Palette) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(Border).
		BorderForeground(p.Base).
		Foreground(p.Base)
}

// SelectedStyle highlights the cursor row of a focused list.
func SelectedStyle(p Palette) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(White).
		Background(p.Highlight)
}
