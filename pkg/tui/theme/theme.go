package theme

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/contentcal/pkg/prefs"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Name   prefs.Theme
	Footer FooterTheme
	Panel  PanelTheme
	Month  MonthTheme
	Modal  ModalTheme
	Toast  ToastTheme
}

// FooterTheme groups styles used by the bottom status/help bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
}

// PanelTheme styles the saved views panel.
type PanelTheme struct {
	Frame   lipgloss.Style
	Title   lipgloss.Style
	Body    lipgloss.Style
	Active  lipgloss.Style
	Starred lipgloss.Style
}

// MonthTheme styles the calendar grid.
type MonthTheme struct {
	Header   lipgloss.Style
	Weekday  lipgloss.Style
	Day      lipgloss.Style
	Weekend  lipgloss.Style
	Past     lipgloss.Style
	Today    lipgloss.Style
	Cursor   lipgloss.Style
	Target   lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Deleting lipgloss.Style
	More     lipgloss.Style
}

// ModalTheme styles the edit overlay and confirmations.
type ModalTheme struct {
	Frame   lipgloss.Style
	Title   lipgloss.Style
	Body    lipgloss.Style
	Label   lipgloss.Style
	Focused lipgloss.Style
	Error   lipgloss.Style
}

// ToastTheme styles notifications by kind.
type ToastTheme struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
}

// For returns the styles of the named preferences theme.
func For(name prefs.Theme) Theme {
	if name == prefs.ThemeDark {
		return Dark()
	}
	return Light()
}

// Dark is the theme used on dark terminals.
func Dark() Theme {
	return build(prefs.ThemeDark, palette{
		text:   lipgloss.Color("252"),
		faint:  lipgloss.Color("244"),
		accent: lipgloss.Color("212"),
		frame:  lipgloss.Color("63"),
		cursor: lipgloss.Color("63"),
		target: lipgloss.Color("214"),
	})
}

// Light is the default theme.
func Light() Theme {
	return build(prefs.ThemeLight, palette{
		text:   lipgloss.Color("235"),
		faint:  lipgloss.Color("245"),
		accent: lipgloss.Color("125"),
		frame:  lipgloss.Color("27"),
		cursor: lipgloss.Color("153"),
		target: lipgloss.Color("222"),
	})
}

type palette struct {
	text, faint, accent, frame, cursor, target color.Color
}

func build(name prefs.Theme, p palette) Theme {
	faint := lipgloss.NewStyle().Foreground(p.faint)
	return Theme{
		Name: name,
		Footer: FooterTheme{
			Help:   faint,
			Status: lipgloss.NewStyle().Foreground(p.accent),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(p.frame).
				Padding(0, 1),
			Title:   lipgloss.NewStyle().Bold(true),
			Body:    lipgloss.NewStyle().Foreground(p.text),
			Active:  lipgloss.NewStyle().Foreground(p.accent).Bold(true),
			Starred: lipgloss.NewStyle().Foreground(p.target),
		},
		Month: MonthTheme{
			Header:   lipgloss.NewStyle().Bold(true).Foreground(p.accent),
			Weekday:  faint.Bold(true),
			Day:      lipgloss.NewStyle().Foreground(p.text),
			Weekend:  lipgloss.NewStyle().Foreground(p.text).Underline(true),
			Past:     faint,
			Today:    lipgloss.NewStyle().Bold(true).Foreground(p.accent),
			Cursor:   lipgloss.NewStyle().Background(p.cursor).Foreground(lipgloss.Color("0")),
			Target:   lipgloss.NewStyle().Background(p.target).Foreground(lipgloss.Color("0")),
			Item:     lipgloss.NewStyle().Foreground(p.text),
			Selected: lipgloss.NewStyle().Reverse(true),
			Deleting: faint.Strikethrough(true),
			More:     faint.Italic(true),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(p.frame).
				Padding(1, 2),
			Title:   lipgloss.NewStyle().Bold(true),
			Body:    lipgloss.NewStyle(),
			Label:   faint.Width(12),
			Focused: lipgloss.NewStyle().Foreground(p.accent).Bold(true).Width(12),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("204")),
		},
		Toast: ToastTheme{
			Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("204")).Bold(true),
			Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		},
	}
}

// Band returns the style of a campaign band drawn in the campaign's colour,
// with black or white text depending on how light the colour is.
func Band(hex string) lipgloss.Style {
	c, err := colorful.Hex(hex)
	if err != nil {
		return lipgloss.NewStyle().Reverse(true)
	}
	fg := lipgloss.Color("#FFFFFF")
	if l, _, _ := c.Lab(); l > 0.6 {
		fg = lipgloss.Color("#000000")
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Foreground(fg)
}
