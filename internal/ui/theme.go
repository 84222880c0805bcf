package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error lipgloss.Style
	Primary, Quote, StarOn, StarOff      lipgloss.Style

	Border      lipgloss.Border
	BorderColor lipgloss.TerminalColor

	StarFull, StarEmpty    string
	DotActive, DotInactive string
	SymOK, SymFail         string
	MenuIcon, CloseIcon    string
	Colorless              bool
}

var current = classic()

// SetTheme switches the active theme. Unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = neon()
	case "mono":
		current = mono()
	default:
		current = classic()
	}
}

// Current exposes what renderers need.
func Current() Theme { return current }

// brand red from the site palette
const brandRed = lipgloss.Color("#E0162B")

func classic() Theme {
	return Theme{
		Name:        "classic",
		Title:       lipgloss.NewStyle().Bold(true),
		Muted:       lipgloss.NewStyle().Faint(true),
		Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Primary:     lipgloss.NewStyle().Foreground(brandRed).Bold(true),
		Quote:       lipgloss.NewStyle().Italic(true),
		StarOn:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FACC15")),
		StarOff:     lipgloss.NewStyle().Foreground(lipgloss.Color("#D1D5DB")),
		Border:      lipgloss.RoundedBorder(),
		BorderColor: lipgloss.Color("8"),
		StarFull:    "★", StarEmpty: "☆",
		DotActive: "●", DotInactive: "○",
		SymOK: "✔", SymFail: "✖",
		MenuIcon: "☰", CloseIcon: "✕",
	}
}

func neon() Theme {
	t := classic()
	t.Name = "neon"
	t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	t.StarOn = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	t.BorderColor = lipgloss.Color("13")
	t.Border = lipgloss.ThickBorder()
	t.DotActive, t.DotInactive = "◆", "◇"
	return t
}

func mono() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:  "mono",
		Title: plain, Muted: plain, Accent: plain, Success: plain, Error: plain,
		Primary: plain, Quote: plain, StarOn: plain, StarOff: plain,
		Border: lipgloss.Border{
			Top: "-", Bottom: "-", Left: "|", Right: "|",
			TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
		},
		BorderColor: lipgloss.NoColor{},
		StarFull:    "*", StarEmpty: ".",
		DotActive: "o", DotInactive: ".",
		SymOK: "ok", SymFail: "x",
		MenuIcon: "=", CloseIcon: "x",
		Colorless: true,
	}
}
