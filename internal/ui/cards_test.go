package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/ccauto/internal/model"
)

func useTheme(t *testing.T, name string) {
	t.Helper()
	SetTheme(name)
	t.Cleanup(func() { SetTheme("classic") })
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "MJ", Initials("Michael Johnson"))
	assert.Equal(t, "MD", Initials("mary ann davis"))
	assert.Equal(t, "C", Initials("Customer"))
	assert.Equal(t, "?", Initials("   "))
	assert.Equal(t, "ÉZ", Initials("élodie zola"))
}

func TestAvatarColor(t *testing.T) {
	// 'M' is 77, 77 % 15 == 2
	assert.Equal(t, lipgloss.Color("#9C27B0"), AvatarColor("Michael Johnson"))
	assert.Equal(t, avatarPalette[0], AvatarColor(""))
}

func TestStars(t *testing.T) {
	useTheme(t, "mono")
	assert.Equal(t, "***..", Stars(3))
	assert.Equal(t, "*****", Stars(9))
	assert.Equal(t, ".....", Stars(-1))
}

func TestServiceIcon(t *testing.T) {
	g, ok := ServiceIcon("tool")
	assert.True(t, ok)
	assert.NotEmpty(t, g)
	_, ok = ServiceIcon("rocket")
	assert.False(t, ok)
}

func TestCopyright(t *testing.T) {
	assert.Equal(t, "2025", Copyright(2025, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-2026", Copyright(2025, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)))
}

func TestReviewCard(t *testing.T) {
	useTheme(t, "mono")
	card := ReviewCard(model.Review{
		Text:         "Great!",
		Author:       "Jo Bloggs",
		Rating:       model.Rating(4),
		RelativeTime: "2 weeks ago",
	}, 0)
	assert.Contains(t, card, "(JB)")
	assert.Contains(t, card, "Jo Bloggs")
	assert.Contains(t, card, "2 weeks ago")
	assert.Contains(t, card, "****.")
	assert.Contains(t, card, `"Great!"`)
	assert.NotContains(t, card, "[")
}

func TestReviewCardPhotoReplacesInitials(t *testing.T) {
	useTheme(t, "mono")
	card := ReviewCard(model.Review{
		Text:     "Great!",
		Author:   "Jo Bloggs",
		PhotoURL: "https://img.example.com/jo.png",
	}, 0)
	assert.Contains(t, card, "[https://img.example.com/jo.png] Jo Bloggs")
	assert.NotContains(t, card, "(JB)")
	assert.Contains(t, card, ".....", "no rating means no filled stars")
}

func TestReviewCardZeroRating(t *testing.T) {
	useTheme(t, "mono")
	card := ReviewCard(model.Review{Text: "Meh", Author: "Al", Rating: model.Rating(0)}, 0)
	assert.Contains(t, card, ".....")
}

func TestServiceCardSlides(t *testing.T) {
	useTheme(t, "mono")
	s := model.Service{Title: "Suspensions", Description: "Alignment", Icon: "unknown"}

	rest := ServiceCard(s, 30, 0)
	left := ServiceCard(s, 30, -SlideMax)
	right := ServiceCard(s, 30, 99)

	lead := func(card string) int {
		first := strings.Split(card, "\n")[0]
		return len(first) - len(strings.TrimLeft(first, " "))
	}
	assert.Equal(t, SlideMax, lead(rest))
	assert.Equal(t, 0, lead(left))
	assert.Equal(t, 2*SlideMax, lead(right))
	assert.Contains(t, rest, "Suspensions")
}

func TestPanel(t *testing.T) {
	useTheme(t, "mono")
	var buf bytes.Buffer
	Panel(&buf, []string{"one", "two"})
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "+"))
	assert.Contains(t, out, "| one")
}

func TestStatusLines(t *testing.T) {
	useTheme(t, "mono")
	var buf bytes.Buffer
	Fail(&buf, "boom")
	OK(&buf, "saved")
	assert.Equal(t, "x boom\nok saved\n", buf.String())
}
