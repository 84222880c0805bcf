package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/ccauto/internal/model"
)

// avatarPalette is the Material palette initials avatars pick from.
var avatarPalette = []lipgloss.Color{
	"#F44336", "#E91E63", "#9C27B0", "#673AB7", "#3F51B5",
	"#2196F3", "#03A9F4", "#00BCD4", "#009688", "#4CAF50",
	"#8BC34A", "#CDDC39", "#FFC107", "#FF9800", "#FF5722",
}

// icon glyphs keyed by the site's icon names
var serviceIcons = map[string]string{
	"tool":    "🔧",
	"package": "📦",
	"truck":   "🚚",
	"shield":  "🛡",
	"circle":  "⭕",
}

// Initials returns the first letter of the first and last name, uppercased.
func Initials(name string) string {
	names := strings.Fields(name)
	if len(names) == 0 {
		return "?"
	}
	initials := firstUpper(names[0])
	if len(names) > 1 {
		initials += firstUpper(names[len(names)-1])
	}
	return initials
}

func firstUpper(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r))
}

// AvatarColor picks a palette colour from the first rune of name.
func AvatarColor(name string) lipgloss.Color {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return avatarPalette[0]
	}
	return avatarPalette[int(r)%len(avatarPalette)]
}

// Avatar renders the initials badge for author.
func Avatar(author string) string {
	t := Current()
	badge := " " + Initials(author) + " "
	if t.Colorless {
		return "(" + strings.TrimSpace(badge) + ")"
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(AvatarColor(author)).
		Render(badge)
}

// Stars renders MaxRating slots, the first rating of them filled.
func Stars(rating int) string {
	t := Current()
	rating = model.ClampRating(rating)
	var b strings.Builder
	for i := 0; i < model.MaxRating; i++ {
		if i < rating {
			b.WriteString(t.StarOn.Render(t.StarFull))
		} else {
			b.WriteString(t.StarOff.Render(t.StarEmpty))
		}
	}
	return b.String()
}

// ServiceIcon maps an icon name to a glyph. Unknown names render nothing.
func ServiceIcon(name string) (string, bool) {
	g, ok := serviceIcons[name]
	return g, ok
}

// PhotoAvatar stands in for the author's photo: the reference itself,
// bracketed where the initials badge would go.
func PhotoAvatar(ref string) string {
	return Current().Accent.Render("[" + ref + "]")
}

// ReviewCard renders a review the way the site's review widget lays it out:
// avatar (photo when present, initials otherwise), author, relative time,
// stars, then the quoted text.
func ReviewCard(r model.Review, width int) string {
	t := Current()
	avatar := Avatar(r.Author)
	if r.PhotoURL != "" {
		avatar = PhotoAvatar(r.PhotoURL)
	}
	head := avatar + " " + t.Title.Render(r.Author)
	if r.RelativeTime != "" {
		head += "  " + t.Muted.Render(r.RelativeTime)
	}
	lines := []string{head, Stars(r.Score())}
	lines = append(lines, "", t.Quote.Render(wrap("\""+r.Text+"\"", textWidth(width))))
	return cardStyle(width).Render(strings.Join(lines, "\n"))
}

// SlideMax bounds the horizontal offset of a sliding service card.
const SlideMax = 4

// ServiceCard renders a service. offset in [-SlideMax, SlideMax] shifts the
// card horizontally for slide transitions; positive moves it right.
func ServiceCard(s model.Service, width, offset int) string {
	t := Current()
	title := t.Primary.Render(s.Title)
	if g, ok := ServiceIcon(s.Icon); ok {
		title = g + "  " + title
	}
	body := title + "\n\n" + wrap(s.Description, textWidth(width))
	margin := SlideMax + max(-SlideMax, min(SlideMax, offset))
	return lipgloss.NewStyle().MarginLeft(margin).Render(cardStyle(width).Render(body))
}

// Copyright renders the footer years: "2025" or "2025-<year>" once the
// current year is past since.
func Copyright(since int, now time.Time) string {
	if y := now.Year(); y > since {
		return fmt.Sprintf("%d-%d", since, y)
	}
	return fmt.Sprintf("%d", since)
}

func cardStyle(width int) lipgloss.Style {
	t := Current()
	st := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 2)
	if width > 0 {
		st = st.Width(width)
	}
	return st
}

func textWidth(width int) int {
	if width <= 0 {
		return 0
	}
	// border + padding
	if w := width - 6; w > 10 {
		return w
	}
	return 10
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
