package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"heartnote/internal/haptic"
	"heartnote/internal/scene"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Card is the transition surface the UI drives.
type Card interface {
	Toggle(ctx context.Context) bool
	Dismiss(ctx context.Context) error
	ToggleMute() bool
}

// Page is where the UI reads what to draw.
type Page interface {
	Snapshot() scene.Snapshot
}

const frameInterval = 50 * time.Millisecond

type frameMsg time.Time

type transitionDoneMsg struct {
	action string
	ran    bool
	err    error
}

type appModel struct {
	ctx    context.Context
	card   Card
	page   Page
	pulser haptic.Pulser
	log    *slog.Logger

	keys keyMap
	help help.Model

	width  int
	height int

	now  time.Time
	snap scene.Snapshot
}

func newAppModel(ctx context.Context, opts Options) appModel {
	pulser := opts.Pulser
	if pulser == nil {
		pulser = haptic.Nop{}
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return appModel{
		ctx:    ctx,
		card:   opts.Card,
		page:   opts.Page,
		pulser: pulser,
		log:    log.With("component", "tui"),
		keys:   defaultKeyMap(),
		help:   help.New(),
		now:    time.Now(),
		snap:   opts.Page.Snapshot(),
	}
}

func (m appModel) Init() tea.Cmd { return tickFrame() }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case frameMsg:
		m.now = time.Time(msg)
		m.snap = m.page.Snapshot()
		return m, tickFrame()

	case transitionDoneMsg:
		switch {
		case msg.err != nil && !errors.Is(msg.err, context.Canceled):
			m.log.Warn("transition did not finish", "action", msg.action, "err", msg.err)
		case !msg.ran:
			m.log.Debug("trigger ignored while animating", "action", msg.action)
		}
		m.snap = m.page.Snapshot()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			return m, m.toggle()
		case key.Matches(msg, m.keys.Dismiss):
			return m, m.dismiss()
		case key.Matches(msg, m.keys.Mute):
			m.mute()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		f := compose(m.snap, m.now, m.width, m.height, "")
		switch {
		case f.trigger.contains(msg.X, msg.Y):
			m.pulse()
			return m, m.toggle()
		case f.mute.contains(msg.X, msg.Y):
			m.mute()
			return m, nil
		}
	}
	return m, nil
}

func (m appModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	return compose(m.snap, m.now, m.width, m.height, renderHelpLine(m.help.View(m.keys))).view
}

// toggle runs the transition off the UI loop; it can take seconds.
func (m appModel) toggle() tea.Cmd {
	ctx, c := m.ctx, m.card
	return func() tea.Msg {
		return transitionDoneMsg{action: "toggle", ran: c.Toggle(ctx)}
	}
}

func (m appModel) dismiss() tea.Cmd {
	ctx, c := m.ctx, m.card
	return func() tea.Msg {
		err := c.Dismiss(ctx)
		return transitionDoneMsg{action: "dismiss", ran: err == nil, err: err}
	}
}

func (m *appModel) mute() {
	enabled := m.card.ToggleMute()
	m.log.Debug("mute toggled", "audioEnabled", enabled)
	m.snap = m.page.Snapshot()
}

func (m appModel) pulse() {
	if err := m.pulser.Pulse(haptic.PulseDuration); err != nil && !errors.Is(err, haptic.ErrUnsupported) {
		m.log.Warn("haptic pulse failed", "err", err)
	}
}

func tickFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}
