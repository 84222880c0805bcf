package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/ccauto/internal/ui"
)

const menuLabel = " Menu"

func menuButtonWidth() int {
	return lipgloss.Width(ui.Current().MenuIcon + menuLabel)
}

func menuWidth() int {
	w := 0
	for _, n := range sectionNames {
		w = max(w, lipgloss.Width(n))
	}
	// cursor + padding + border
	return w + 2 + 2 + 2
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "\n  " + m.spinner.View() + " starting..."
	}
	body := m.viewport.View()
	if m.menuOpen {
		body = overlayTop(body, m.menuView())
	}
	return m.headerView() + "\n" + body + "\n" + m.help.View(m.keys)
}

func (m Model) headerView() string {
	t := ui.Current()
	icon := t.MenuIcon
	if m.menuOpen {
		icon = t.CloseIcon
	}
	button := t.Accent.Render(icon + menuLabel)
	name := t.Primary.Render(m.cfg.Site.Name)
	gap := max(1, m.width-lipgloss.Width(button)-lipgloss.Width(name))
	return button + strings.Repeat(" ", gap) + name
}

func (m Model) menuView() string {
	t := ui.Current()
	lines := make([]string, 0, len(sectionNames))
	for i, n := range sectionNames {
		cursor := "  "
		if i == m.menuCursor {
			cursor = t.Primary.Render("> ")
		}
		lines = append(lines, cursor+n)
	}
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Width(menuWidth() - 2).
		Render(strings.Join(lines, "\n"))
}

// refreshPage rebuilds the scrollable page and records where each section starts.
func (m *Model) refreshPage() {
	if !m.ready {
		return
	}
	blocks := [sectionCount]string{
		m.homeView(),
		m.servicesView(),
		m.reviewsView(),
		m.contactView(),
	}
	line := 0
	for i, b := range blocks {
		m.sectionTop[i] = line
		line += lipgloss.Height(b) + 1
	}
	m.viewport.SetContent(strings.Join(blocks[:], "\n\n"))
}

func (m Model) cardWidth() int {
	return min(72, max(24, m.width-2*ui.SlideMax-2))
}

func (m Model) heading(s section, title string) string {
	t := ui.Current()
	h := t.Title.Render(title)
	if m.focus == s {
		h = t.Primary.Render("▸ ") + h
	} else {
		h = "  " + h
	}
	return h
}

func (m Model) homeView() string {
	t := ui.Current()
	return strings.Join([]string{
		"",
		"  " + t.Primary.Render(strings.ToUpper(m.cfg.Site.Name)),
		"  " + t.Title.Render("Honest, expert car care."),
		"  " + t.Muted.Render("Servicing, suspension, brakes and clutches."),
	}, "\n")
}

func (m Model) servicesView() string {
	parts := []string{m.heading(sectionServices, "Our Services")}
	if m.serviceFrame.valid {
		parts = append(parts, ui.ServiceCard(m.serviceFrame.item, m.cardWidth(), m.slide))
	}
	parts = append(parts, strings.Repeat(" ", ui.SlideMax+2)+m.serviceDots.View())
	return strings.Join(parts, "\n")
}

func (m Model) reviewsView() string {
	t := ui.Current()
	parts := []string{m.heading(sectionReviews, "What Our Customers Say")}
	switch {
	case m.loading:
		parts = append(parts, "  "+m.spinner.View()+" "+t.Muted.Render("loading reviews..."))
	case m.reviewFrame.valid:
		card := ui.ReviewCard(m.reviewFrame.item, m.cardWidth())
		if m.fading {
			card = lipgloss.NewStyle().Faint(true).Render(card)
		}
		parts = append(parts, lipgloss.NewStyle().MarginLeft(ui.SlideMax).Render(card))
		parts = append(parts, strings.Repeat(" ", ui.SlideMax+2)+m.reviewDots.View())
	}
	return strings.Join(parts, "\n")
}

func (m Model) contactView() string {
	t := ui.Current()
	site := m.cfg.Site
	return strings.Join([]string{
		"  " + t.Title.Render("Contact"),
		"  " + t.Muted.Render("Share: ") + site.ShareURL,
		"",
		"  " + t.Muted.Render(fmt.Sprintf("© %s %s. All rights reserved.", ui.Copyright(site.SinceYear, m.now()), site.Name)),
	}, "\n")
}

// overlayTop draws box over the first lines of base.
func overlayTop(base, box string) string {
	baseLines := strings.Split(base, "\n")
	for i, l := range strings.Split(box, "\n") {
		if i >= len(baseLines) {
			baseLines = append(baseLines, l)
			continue
		}
		baseLines[i] = l
	}
	return strings.Join(baseLines, "\n")
}
