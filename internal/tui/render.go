package tui

import (
	"math"
	"strings"
	"time"

	"heartnote/internal/scene"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/samber/lo"
)

const (
	maxPanelWidth = 64
	pulsePeriod   = 600 * time.Millisecond
	bigHeartSize  = 25
)

type rect struct{ x, y, w, h int }

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// frame is one rendered screen plus the clickable zones in it.
type frame struct {
	view    string
	trigger rect
	mute    rect
}

// compose draws the snapshot onto a width x height screen. The bottom row is the
// footer; everything above it is the scene.
func compose(snap scene.Snapshot, now time.Time, width, height int, helpView string) frame {
	var f frame
	if width <= 0 || height <= 0 {
		return f
	}
	c := newCanvas(width, height)
	sceneH := max(height-1, 0)

	drawHearts(c, snap.Hearts, now, sceneH)
	for _, o := range snap.Overlays {
		drawConfetti(c, o.Particles, now, sceneH)
	}

	trigger := renderTrigger(snap.Caption)
	tw, th := lipgloss.Size(trigger)
	block := trigger
	if snap.PanelVisible {
		block = lipgloss.JoinVertical(lipgloss.Center, renderPanel(snap, now, width), "", trigger)
	}
	bw, bh := lipgloss.Size(block)
	bx := max((width-bw)/2, 0)
	by := max((sceneH-bh)/2, 0)
	c.block(bx, by, block)
	f.trigger = rect{x: bx + (bw-tw)/2, y: by + bh - th, w: tw, h: th}

	icon := lo.Ternary(snap.AudioEnabled, glyphSoundOn(), glyphSoundOff())
	iw := ansi.StringWidth(icon)
	footerY := height - 1
	if helpView != "" {
		c.put(0, footerY, ansi.Truncate(helpView, max(width-iw-2, 0), ""))
	}
	mx := max(width-iw-1, 0)
	c.put(mx, footerY, icon)
	f.mute = rect{x: mx, y: footerY, w: iw, h: 1}

	f.view = c.String()
	return f
}

// Hearts drift upward and wrap, one full pass per particle duration.
func drawHearts(c *canvas, hearts []scene.Particle, now time.Time, sceneH int) {
	glyph := glyphHeart()
	for _, p := range hearts {
		progress := cycle(p, now)
		y := p.Y - progress
		y -= math.Floor(y)
		st := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color))
		if p.Size >= bigHeartSize {
			st = st.Bold(true)
		}
		c.put(int(p.X*float64(c.w)), int(y*float64(sceneH)), st.Render(glyph))
	}
}

// Confetti falls from the top once and stays at the bottom until released.
func drawConfetti(c *canvas, pieces []scene.Particle, now time.Time, sceneH int) {
	glyph := glyphConfetti()
	for _, p := range pieces {
		progress := 1.0
		if p.Duration > 0 {
			progress = min(float64(p.Age(now))/float64(p.Duration), 1)
		}
		y := min(int(progress*float64(sceneH)), sceneH-1)
		st := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color))
		c.put(int(p.X*float64(c.w)), y, st.Render(glyph))
	}
}

func cycle(p scene.Particle, now time.Time) float64 {
	if p.Duration <= 0 {
		return 0
	}
	age := p.Age(now) % p.Duration
	return float64(age) / float64(p.Duration)
}

func renderTrigger(caption string) string {
	label := lipgloss.NewStyle().Foreground(colorAccent).Render(glyphHeart()) + " " +
		lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Render(caption)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 2).
		Render(label)
}

func renderPanel(snap scene.Snapshot, now time.Time, width int) string {
	pw := max(min(maxPanelWidth, width-4), 8)
	inner := max(pw-4, 1)

	var parts []string
	if snap.Title != "" {
		parts = append(parts, lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(snap.Title))
	}
	body := lipgloss.NewStyle().Foreground(colorSurfaceFg).Width(inner)
	for _, r := range snap.Regions {
		parts = append(parts, body.Render(r.Text))
	}
	if snap.FinalHeart {
		parts = append(parts, lipgloss.PlaceHorizontal(inner, lipgloss.Center, renderFinalHeart(snap.Pulsing, now)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPanelBorder).
		Padding(1, 2).
		Width(pw).
		Render(strings.Join(parts, "\n\n"))
}

func renderFinalHeart(pulsing bool, now time.Time) string {
	st := lipgloss.NewStyle().Foreground(colorAccent)
	if pulsing && (now.UnixMilli()/pulsePeriod.Milliseconds())%2 == 0 {
		st = st.Bold(true).Foreground(colorAccentBright)
	} else if !pulsing {
		st = faintIfDark(st)
	}
	return st.Render(glyphHeart())
}

func renderHelpLine(v string) string {
	return styleMuted().Render(v)
}
