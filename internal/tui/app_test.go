package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"heartnote/internal/haptic"
	"heartnote/internal/scene"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

type fakeCard struct {
	mu       sync.Mutex
	page     *scene.Page
	toggles  int
	dismiss  int
	mutes    int
	enabled  bool
	animated bool
}

func (c *fakeCard) Toggle(context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toggles++
	if c.animated {
		return false
	}
	c.page.SetPanelVisible(!c.page.PanelVisible())
	return true
}

func (c *fakeCard) Dismiss(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dismiss++
	c.page.SetPanelVisible(false)
	return nil
}

func (c *fakeCard) ToggleMute() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mutes++
	c.enabled = !c.enabled
	c.page.SetAudioEnabled(c.enabled)
	return c.enabled
}

type fakePulser struct {
	pulses []time.Duration
}

func (p *fakePulser) Pulse(d time.Duration) error {
	p.pulses = append(p.pulses, d)
	return nil
}

func newTestModel(t *testing.T) (appModel, *fakeCard, *fakePulser) {
	t.Helper()
	setGlyphs(glyphSetUnicode)
	page := scene.NewPage("For you", []string{"first", "second"}, true)
	page.SetCaption("Click right here")
	card := &fakeCard{page: page, enabled: true}
	pulser := &fakePulser{}
	m := newAppModel(context.Background(), Options{Card: card, Page: page, Pulser: pulser})

	mAny, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return mAny.(appModel), card, pulser
}

func runCmd(t *testing.T, m appModel, cmd tea.Cmd) appModel {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	mAny, _ := m.Update(cmd())
	return mAny.(appModel)
}

func TestApp_ToggleKeyRunsTransition(t *testing.T) {
	m, card, pulser := newTestModel(t)

	mAny, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = runCmd(t, mAny.(appModel), cmd)
	if card.toggles != 1 {
		t.Fatalf("expected one toggle; got %d", card.toggles)
	}
	if !m.snap.PanelVisible {
		t.Fatalf("expected snapshot refreshed after transition")
	}
	if len(pulser.pulses) != 0 {
		t.Fatalf("keyboard toggles should not pulse")
	}

	mAny, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	runCmd(t, mAny.(appModel), cmd)
	if card.toggles != 2 {
		t.Fatalf("expected space to toggle; got %d", card.toggles)
	}
}

func TestApp_EscDismissesAndQuitQuits(t *testing.T) {
	m, card, _ := newTestModel(t)

	mAny, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	runCmd(t, mAny.(appModel), cmd)
	if card.dismiss != 1 {
		t.Fatalf("expected one dismiss; got %d", card.dismiss)
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestApp_MuteKeyFlipsIcon(t *testing.T) {
	m, card, _ := newTestModel(t)
	if !strings.Contains(m.View(), glyphSoundOn()) {
		t.Fatalf("expected sound-on icon initially")
	}

	mAny, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	m = mAny.(appModel)
	if cmd != nil {
		t.Fatalf("mute should not schedule a command")
	}
	if card.mutes != 1 || card.toggles != 0 {
		t.Fatalf("expected a single mute and no toggle; got mutes=%d toggles=%d", card.mutes, card.toggles)
	}
	v := m.View()
	if !strings.Contains(v, glyphSoundOff()) || strings.Contains(v, glyphSoundOn()) {
		t.Fatalf("expected muted icon only:\n%s", v)
	}
}

func TestApp_ClickOnTriggerPulsesAndToggles(t *testing.T) {
	m, card, pulser := newTestModel(t)
	f := compose(m.snap, m.now, m.width, m.height, "")

	mAny, cmd := m.Update(tea.MouseMsg{
		X:      f.trigger.x + 1,
		Y:      f.trigger.y + 1,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	runCmd(t, mAny.(appModel), cmd)
	if card.toggles != 1 {
		t.Fatalf("expected click to toggle; got %d", card.toggles)
	}
	if len(pulser.pulses) != 1 || pulser.pulses[0] != haptic.PulseDuration {
		t.Fatalf("expected one %s pulse; got %v", haptic.PulseDuration, pulser.pulses)
	}

	// Releases and clicks elsewhere do nothing.
	_, cmd = m.Update(tea.MouseMsg{X: f.trigger.x + 1, Y: f.trigger.y + 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if cmd != nil {
		t.Fatalf("expected release to be ignored")
	}
	_, cmd = m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if cmd != nil || card.toggles != 1 {
		t.Fatalf("expected click outside trigger to be ignored")
	}
}

func TestApp_ClickOnMuteIcon(t *testing.T) {
	m, card, pulser := newTestModel(t)
	f := compose(m.snap, m.now, m.width, m.height, "")

	mAny, _ := m.Update(tea.MouseMsg{X: f.mute.x, Y: f.mute.y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = mAny.(appModel)
	if card.mutes != 1 {
		t.Fatalf("expected mute click; got %d", card.mutes)
	}
	if len(pulser.pulses) != 0 {
		t.Fatalf("mute click should not pulse")
	}
	if m.snap.AudioEnabled {
		t.Fatalf("expected snapshot to show audio disabled")
	}
}

func TestCompose_ClosedAndOpen(t *testing.T) {
	setGlyphs(glyphSetUnicode)
	page := scene.NewPage("For you", []string{"first", "second"}, true)
	page.SetCaption("Click right here")

	closed := compose(page.Snapshot(), time.Now(), 80, 24, "")
	if !strings.Contains(closed.view, "Click right here") {
		t.Fatalf("expected caption in closed view:\n%s", closed.view)
	}
	if strings.Contains(closed.view, "For you") {
		t.Fatalf("expected panel hidden while closed")
	}

	page.SetPanelVisible(true)
	page.SetCaption("I love you!")
	page.Region(0).SetText("first")
	page.Region(1).SetText("sec")
	open := compose(page.Snapshot(), time.Now(), 80, 24, "")
	for _, want := range []string{"For you", "first", "sec", "I love you!", glyphHeart()} {
		if !strings.Contains(open.view, want) {
			t.Fatalf("expected %q in open view:\n%s", want, open.view)
		}
	}
	if strings.Contains(open.view, "second") {
		t.Fatalf("expected only the revealed part of region 2")
	}
	if open.trigger.y <= closed.trigger.y {
		t.Fatalf("expected trigger to move below the panel; closed=%d open=%d", closed.trigger.y, open.trigger.y)
	}

	lines := strings.Split(open.view, "\n")
	if len(lines) != 24 {
		t.Fatalf("expected 24 rows; got %d", len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 80 {
			t.Fatalf("row %d has width %d", i, w)
		}
	}
}

func TestCompose_DrawsParticles(t *testing.T) {
	setGlyphs(glyphSetASCII)
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	now := time.Now()
	page := scene.NewPage("", nil, false)
	page.AddHeart(scene.Particle{ID: "h", Kind: scene.KindHeart, X: 0.05, Y: 0.1, Color: "#d81b60", Duration: 3 * time.Second, Born: now})
	page.AddOverlay(scene.Overlay{ID: "o", Born: now, Particles: []scene.Particle{
		{ID: "c", Kind: scene.KindConfetti, X: 0.9, Color: "#ff8080", Duration: 2 * time.Second, Born: now},
	}})

	f := compose(page.Snapshot(), now, 40, 12, "")
	lines := strings.Split(f.view, "\n")
	if !strings.Contains(lines[1], "<3") {
		t.Fatalf("expected heart on row 1:\n%s", f.view)
	}
	if !strings.Contains(lines[0], "*") {
		t.Fatalf("expected fresh confetti on the top row:\n%s", f.view)
	}

	// Two seconds later the confetti has landed.
	later := compose(page.Snapshot(), now.Add(2*time.Second), 40, 12, "")
	if !strings.Contains(strings.Split(later.view, "\n")[10], "*") {
		t.Fatalf("expected confetti on the last scene row:\n%s", later.view)
	}
}

func TestRect_Contains(t *testing.T) {
	r := rect{x: 2, y: 3, w: 4, h: 2}
	if !r.contains(2, 3) || !r.contains(5, 4) {
		t.Fatalf("expected corners inside")
	}
	if r.contains(6, 3) || r.contains(2, 5) || r.contains(1, 3) {
		t.Fatalf("expected outside points to be excluded")
	}
}
