// Package haptic provides the short "pulse" feedback fired when the trigger is pressed.
//
// Terminals have no vibration API; the closest portable signal is the bell, which many
// terminals map to a visual flash or a system haptic.
package haptic

import (
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// PulseDuration is the fixed length of the trigger pulse.
const PulseDuration = 50 * time.Millisecond

// ErrUnsupported is returned when the output cannot carry a pulse.
var ErrUnsupported = errors.New("haptic: unsupported")

// Pulser fires a short feedback signal.
type Pulser interface {
	Pulse(d time.Duration) error
}

// Terminal rings the bell on w. A zero Terminal is unsupported.
type Terminal struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTerminal returns a pulser that writes to w. When w is a file it must be a terminal.
func NewTerminal(w io.Writer) *Terminal {
	if f, ok := w.(*os.File); ok && !isTerminal(f) {
		w = nil
	}
	return &Terminal{w: w}
}

// Stderr is the pulser used by the interactive card.
func Stderr() *Terminal { return NewTerminal(os.Stderr) }

func (t *Terminal) Supported() bool {
	return t != nil && t.w != nil
}

// Pulse rings the bell once. The bell has no duration of its own, so d only has to be
// positive.
func (t *Terminal) Pulse(d time.Duration) error {
	if !t.Supported() {
		return ErrUnsupported
	}
	if d <= 0 {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := io.WriteString(t.w, "\a")
	return err
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Nop never pulses.
type Nop struct{}

func (Nop) Pulse(time.Duration) error { return ErrUnsupported }
