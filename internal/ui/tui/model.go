package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Makepad-fr/ccauto/internal/carousel"
	"github.com/Makepad-fr/ccauto/internal/config"
	"github.com/Makepad-fr/ccauto/internal/model"
	"github.com/Makepad-fr/ccauto/internal/reviews"
	"github.com/Makepad-fr/ccauto/internal/store/catalog"
	"github.com/Makepad-fr/ccauto/internal/ui"
)

const (
	headerHeight = 1
	// a terminal cell counts as this many pixels for swipe thresholds
	pxPerCell      = 10
	fadeDuration   = 300 * time.Millisecond
	slideStep      = 40 * time.Millisecond
	menuCloseDelay = 300 * time.Millisecond
	scrollStep     = 16 * time.Millisecond
)

type section int

const (
	sectionHome section = iota
	sectionServices
	sectionReviews
	sectionContact
	sectionCount
)

var sectionNames = [sectionCount]string{"Home", "Services", "Reviews", "Contact"}

func (s section) String() string { return sectionNames[s] }

// Options wires the program to its collaborators.
type Options struct {
	Catalog catalog.Catalog
	Source  *reviews.Source // nil runs reviews in fallback-only mode
	Config  *config.Config
	Logger  *zap.Logger
	Clock   carousel.Clock
	Now     func() time.Time
}

type (
	frameMsg     struct{}
	hydratedMsg  struct{ items []model.Review }
	fadeDoneMsg  struct{ seq uint64 }
	slideMsg     struct{ seq uint64 }
	closeMenuMsg struct{ seq uint64 }
	scrollMsg    struct{ seq uint64 }
)

// Model is the Bubble Tea program: it renders both carousels and turns keys
// and mouse drags into controller calls.
type Model struct {
	ctx context.Context
	cfg *config.Config
	log *zap.Logger
	now func() time.Time

	source          *reviews.Source
	fallbackReviews []model.Review

	reviews     *carousel.Controller[model.Review]
	services    *carousel.Controller[model.Service]
	reviewSlot  *slot[model.Review]
	serviceSlot *slot[model.Service]
	frames      chan struct{}

	reviewFrame  frame[model.Review]
	serviceFrame frame[model.Service]
	fading       bool
	fadeSeq      uint64
	slide        int
	slideSeq     uint64

	loading     bool
	spinner     spinner.Model
	viewport    viewport.Model
	reviewDots  paginator.Model
	serviceDots paginator.Model
	help        help.Model
	keys        keyMap

	focus      section
	menuOpen   bool
	menuCursor int
	menuSeq    uint64
	scrollTo   int
	scrollSeq  uint64
	sectionTop [sectionCount]int

	pressing bool
	pressX   int
	pressOn  section

	width, height int
	ready         bool
}

// New builds the program model. Controllers start idle; Init starts them.
func New(ctx context.Context, opts Options) (Model, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	clock := opts.Clock
	if clock == nil {
		clock = carousel.SystemClock()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	frames := make(chan struct{}, 1)
	reviewSlot := newSlot[model.Review](frames)
	serviceSlot := newSlot[model.Service](frames)

	rc, err := carousel.New(opts.Catalog.Reviews, reviewSlot.render,
		carousel.WithClock(clock), carousel.WithLogger(log), carousel.WithName("reviews"))
	if err != nil {
		return Model{}, fmt.Errorf("review carousel: %w", err)
	}
	sc, err := carousel.New(opts.Catalog.Services, serviceSlot.render,
		carousel.WithClock(clock), carousel.WithLogger(log), carousel.WithName("services"))
	if err != nil {
		return Model{}, fmt.Errorf("service carousel: %w", err)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.Current().Primary

	return Model{
		ctx:             ctx,
		cfg:             opts.Config,
		log:             log,
		now:             now,
		source:          opts.Source,
		fallbackReviews: opts.Catalog.Reviews,
		reviews:         rc,
		services:        sc,
		reviewSlot:      reviewSlot,
		serviceSlot:     serviceSlot,
		frames:          frames,
		loading:         true,
		spinner:         sp,
		reviewDots:      newDots(rc.Len()),
		serviceDots:     newDots(sc.Len()),
		help:            help.New(),
		keys:            defaultKeys(),
		focus:           sectionServices,
	}, nil
}

func newDots(total int) paginator.Model {
	t := ui.Current()
	p := paginator.New()
	p.Type = paginator.Dots
	p.PerPage = 1
	p.ActiveDot = t.Primary.Render(t.DotActive)
	p.InactiveDot = t.Muted.Render(t.DotInactive)
	p.SetTotalPages(total)
	return p
}

// Stop halts both carousels.
func (m Model) Stop() {
	m.reviews.Stop()
	m.services.Stop()
}

// Init shows the first service, starts its rotation and kicks off review
// hydration.
func (m Model) Init() tea.Cmd {
	m.services.Show()
	m.services.Start(m.cfg.Carousel.ServiceInterval)
	return tea.Batch(m.spinner.Tick, m.hydrate(), m.waitForFrame())
}

func (m Model) hydrate() tea.Cmd {
	ctx, src, fallback := m.ctx, m.source, m.fallbackReviews
	return func() tea.Msg {
		if src == nil {
			return hydratedMsg{items: fallback}
		}
		return hydratedMsg{items: src.Resolve(ctx, fallback)}
	}
}

func (m Model) waitForFrame() tea.Cmd {
	ctx, frames := m.ctx, m.frames
	return func() tea.Msg {
		select {
		case <-frames:
			return frameMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		vh := max(1, msg.Height-headerHeight-1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vh)
			m.ready = true
		} else {
			m.viewport.Width, m.viewport.Height = msg.Width, vh
		}
		m.help.Width = msg.Width
		m.refreshPage()
		return m, nil

	case hydratedMsg:
		m.loading = false
		m.log.Info("review carousel ready", zap.Int("count", len(msg.items)))
		m.reviews.Replace(msg.items)
		m.reviewDots.SetTotalPages(m.reviews.Len())
		m.reviews.Start(m.cfg.Carousel.ReviewInterval)
		m.refreshPage()
		return m, nil

	case frameMsg:
		cmd := m.syncFrames()
		m.refreshPage()
		return m, tea.Batch(cmd, m.waitForFrame())

	case fadeDoneMsg:
		if msg.seq == m.fadeSeq {
			m.fading = false
			m.refreshPage()
		}
		return m, nil

	case slideMsg:
		if msg.seq != m.slideSeq || m.slide == 0 {
			return m, nil
		}
		if m.slide > 0 {
			m.slide--
		} else {
			m.slide++
		}
		m.refreshPage()
		if m.slide == 0 {
			return m, nil
		}
		return m, m.slideTick()

	case closeMenuMsg:
		if msg.seq == m.menuSeq {
			m.menuOpen = false
		}
		return m, nil

	case scrollMsg:
		return m.stepScroll(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshPage()
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

// syncFrames pulls the latest frames out of the slots and starts the
// matching transition for whichever carousel changed.
func (m *Model) syncFrames() tea.Cmd {
	var cmds []tea.Cmd
	if f := m.reviewSlot.snapshot(); f.valid && f.seq != m.reviewFrame.seq {
		m.reviewFrame = f
		m.reviewDots.Page = m.reviews.Index()
		m.fading = true
		m.fadeSeq++
		seq := m.fadeSeq
		cmds = append(cmds, tea.Tick(fadeDuration, func(time.Time) tea.Msg { return fadeDoneMsg{seq: seq} }))
	}
	if f := m.serviceSlot.snapshot(); f.valid && f.seq != m.serviceFrame.seq {
		m.serviceFrame = f
		m.serviceDots.Page = m.services.Index()
		// forward enters from the left, backward from the right
		m.slide = -ui.SlideMax
		if f.dir == model.Backward {
			m.slide = ui.SlideMax
		}
		m.slideSeq++
		cmds = append(cmds, m.slideTick())
	}
	return tea.Batch(cmds...)
}

func (m Model) slideTick() tea.Cmd {
	seq := m.slideSeq
	return tea.Tick(slideStep, func(time.Time) tea.Msg { return slideMsg{seq: seq} })
}

// navigator is the part of a carousel controller the input side drives.
type navigator interface {
	Next()
	Previous()
	GoTo(int, model.Direction)
	HandleSwipe(int, int)
}

func (m Model) focused() navigator {
	if m.focus == sectionReviews {
		return m.reviews
	}
	return m.services
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	if s := msg.String(); s == "ctrl+c" || (!m.menuOpen && s == "q") {
		m.Stop()
		return m, tea.Quit
	}

	if m.menuOpen {
		switch {
		case key.Matches(msg, k.Up):
			m.menuCursor = (m.menuCursor + int(sectionCount) - 1) % int(sectionCount)
		case key.Matches(msg, k.Down):
			m.menuCursor = (m.menuCursor + 1) % int(sectionCount)
		case key.Matches(msg, k.Select):
			return m.chooseSection(section(m.menuCursor))
		case key.Matches(msg, k.Menu, k.Close, k.Quit):
			m.closeMenu()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, k.Menu):
		m.openMenu()
		return m, nil
	case key.Matches(msg, k.Next):
		m.focused().Next()
		return m, nil
	case key.Matches(msg, k.Prev):
		m.focused().Previous()
		return m, nil
	case key.Matches(msg, k.First):
		m.focused().GoTo(0, model.Backward)
		return m, nil
	case key.Matches(msg, k.Focus):
		if m.focus == sectionServices {
			m.focus = sectionReviews
		} else {
			m.focus = sectionServices
		}
		m.refreshPage()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if msg.Y < headerHeight && msg.X < menuButtonWidth() {
			if m.menuOpen {
				m.closeMenu()
			} else {
				m.openMenu()
			}
			return m, nil
		}
		if m.menuOpen {
			if row, ok := m.menuRowAt(msg.X, msg.Y); ok {
				m.menuCursor = row
				return m.chooseSection(section(row))
			}
			// click outside the open menu closes it
			m.closeMenu()
			return m, nil
		}
		if s, ok := m.carouselAt(msg.Y); ok {
			m.pressing, m.pressX, m.pressOn = true, msg.X, s
			m.focus = s
		}
		return m, nil

	case msg.Action == tea.MouseActionRelease:
		if !m.pressing {
			return m, nil
		}
		m.pressing = false
		delta := (msg.X - m.pressX) * pxPerCell
		if m.pressOn == sectionReviews {
			m.reviews.HandleSwipe(delta, m.cfg.Carousel.SwipeThreshold)
		} else {
			m.services.HandleSwipe(delta, m.cfg.Carousel.SwipeThreshold)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) openMenu() {
	m.menuOpen = true
	m.menuSeq++
}

func (m *Model) closeMenu() {
	m.menuOpen = false
	m.menuSeq++
}

// chooseSection scrolls to s and closes the menu shortly after.
func (m Model) chooseSection(s section) (tea.Model, tea.Cmd) {
	m.log.Debug("navigate", zap.Stringer("section", s))
	if s == sectionServices || s == sectionReviews {
		m.focus = s
	}
	m.refreshPage()
	m.scrollTo = m.sectionTop[s]
	m.scrollSeq++
	seq := m.menuSeq
	return m, tea.Batch(
		m.scrollTick(),
		tea.Tick(menuCloseDelay, func(time.Time) tea.Msg { return closeMenuMsg{seq: seq} }),
	)
}

func (m Model) scrollTick() tea.Cmd {
	seq := m.scrollSeq
	return tea.Tick(scrollStep, func(time.Time) tea.Msg { return scrollMsg{seq: seq} })
}

// stepScroll eases the viewport toward scrollTo a third of the way per frame.
func (m Model) stepScroll(msg scrollMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.scrollSeq || !m.ready {
		return m, nil
	}
	target := min(m.scrollTo, max(0, m.viewport.TotalLineCount()-m.viewport.Height))
	cur := m.viewport.YOffset
	if cur == target {
		return m, nil
	}
	step := (target - cur) / 3
	if step == 0 {
		step = target - cur
	}
	m.viewport.SetYOffset(cur + step)
	if m.viewport.YOffset == cur {
		return m, nil
	}
	return m, m.scrollTick()
}

// carouselAt maps a screen row to the carousel section drawn there.
func (m Model) carouselAt(y int) (section, bool) {
	if !m.ready || y < headerHeight {
		return 0, false
	}
	line := y - headerHeight + m.viewport.YOffset
	switch {
	case line >= m.sectionTop[sectionServices] && line < m.sectionTop[sectionReviews]:
		return sectionServices, true
	case line >= m.sectionTop[sectionReviews] && line < m.sectionTop[sectionContact]:
		return sectionReviews, true
	}
	return 0, false
}

// menuRowAt maps a screen position to a menu entry.
func (m Model) menuRowAt(x, y int) (int, bool) {
	if x >= menuWidth() {
		return 0, false
	}
	// border row sits at headerHeight
	row := y - headerHeight - 1
	if row < 0 || row >= int(sectionCount) {
		return 0, false
	}
	return row, true
}
