package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Heading lipgloss.Style
	Table   TableTheme
	Footer  FooterTheme
}

// TableTheme styles the post table and its caption.
type TableTheme struct {
	Caption  lipgloss.Style
	Border   lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Stripe   lipgloss.Style
	Selected lipgloss.Style
	Detail   lipgloss.Style
}

// FooterTheme groups styles used by the key help line.
type FooterTheme struct {
	Help lipgloss.Style
}

// palette is the small set of base colors a theme is derived from.
type palette struct {
	primary    string
	background string
	text       string
	muted      string
}

var (
	darkPalette = palette{
		primary:    "#4F8EF7",
		background: "#1C1C22",
		text:       "#E4E4E7",
		muted:      "#8A8A93",
	}
	lightPalette = palette{
		primary:    "#1565C0",
		background: "#FAFAFA",
		text:       "#202024",
		muted:      "#6B6B73",
	}
)

// Default returns the theme for dark terminals.
func Default() Theme {
	return ForBackground(true)
}

// ForBackground returns the theme for a dark or light terminal background.
func ForBackground(dark bool) Theme {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	primary := lipgloss.Color(p.primary)
	muted := lipgloss.Color(p.muted)

	return Theme{
		Heading: lipgloss.NewStyle().Bold(true).Padding(1, 0),
		Table: TableTheme{
			Caption:  lipgloss.NewStyle().Bold(true).Foreground(primary),
			Border:   lipgloss.NewStyle().Foreground(muted),
			Header:   lipgloss.NewStyle().Bold(true).Padding(0, 1),
			Cell:     lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color(p.text)),
			Stripe:   lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color(p.text)).Background(lipgloss.Color(Stripe(p.background, p.primary))),
			Selected: lipgloss.NewStyle().Padding(0, 1).Reverse(true),
			Detail:   lipgloss.NewStyle().Foreground(muted),
		},
		Footer: FooterTheme{
			Help: lipgloss.NewStyle().Foreground(muted),
		},
	}
}

// Stripe blends a tenth of accent into background to shade alternate rows.
// Invalid hex input returns background unchanged.
func Stripe(background, accent string) string {
	bg, err := colorful.Hex(background)
	if err != nil {
		return background
	}
	ac, err := colorful.Hex(accent)
	if err != nil {
		return background
	}
	return bg.BlendLab(ac, 0.1).Clamped().Hex()
}
