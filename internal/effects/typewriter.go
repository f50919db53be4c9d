package effects

import (
	"context"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rivo/uniseg"
)

// Target receives the progressively revealed text.
type Target interface {
	SetText(string)
}

// Typewriter reveals text one grapheme cluster at a time.
type Typewriter struct {
	clock clock.Clock
	delay time.Duration
}

func NewTypewriter(clk clock.Clock, delay time.Duration) *Typewriter {
	if clk == nil {
		clk = clock.New()
	}
	return &Typewriter{clock: clk, delay: delay}
}

// Reveal clears target, then shows one unit of text per delay. It returns as soon as
// the final unit is shown. When ctx is cancelled it returns ctx.Err() and leaves the
// partial text in place.
func (t *Typewriter) Reveal(ctx context.Context, target Target, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target.SetText("")

	var b strings.Builder
	for _, u := range Units(text) {
		timer := t.clock.Timer(t.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		b.WriteString(u)
		target.SetText(b.String())
	}
	return nil
}

// Duration is how long Reveal takes for text when left uncancelled.
func (t *Typewriter) Duration(text string) time.Duration {
	return time.Duration(len(Units(text))) * t.delay
}

// Units splits text into user-perceived characters.
func Units(text string) []string {
	var units []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		units = append(units, g.Str())
	}
	return units
}
