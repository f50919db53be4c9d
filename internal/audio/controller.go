package audio

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// ErrPlaybackBlocked means the platform refused to start playback (no device, no asset).
// It is expected and non-fatal.
var ErrPlaybackBlocked = errors.New("audio: playback blocked")

const defaultBufferSize = 100 * time.Millisecond

// Controller owns the single looping audio handle.
type Controller struct {
	mu  sync.Mutex
	out Output
	log *slog.Logger
	src *Source

	volume     *effects.Volume
	ctrl       *beep.Ctrl
	baseSilent bool

	enabled     bool
	deviceReady bool
	attached    bool
}

// New initializes the controller once: volume and looping are fixed here.
// src may be nil, in which case every play attempt is reported as blocked.
func New(volume float64, src *Source, out Output, log *slog.Logger) *Controller {
	if out == nil {
		out = SpeakerOutput()
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c := &Controller{
		out:     out,
		log:     log,
		src:     src,
		enabled: true,
	}
	if src != nil && src.Streamer != nil {
		c.volume = newVolume(beep.Loop(-1, src.Streamer), volume)
		c.baseSilent = c.volume.Silent
		c.ctrl = &beep.Ctrl{Streamer: c.volume, Paused: true}
	}
	return c
}

// TryPlay starts or resumes playback. It is best-effort: a blocked attempt returns an
// error wrapping ErrPlaybackBlocked and leaves the controller paused. When audio is
// disabled nothing is attempted.
func (c *Controller) TryPlay() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return nil
	}
	if c.ctrl == nil {
		return fmt.Errorf("%w: no audio asset loaded", ErrPlaybackBlocked)
	}
	if !c.deviceReady {
		sr := c.src.Format.SampleRate
		if err := c.out.Init(sr, sr.N(defaultBufferSize)); err != nil {
			return fmt.Errorf("%w: %v", ErrPlaybackBlocked, err)
		}
		c.deviceReady = true
	}

	c.out.Lock()
	c.ctrl.Paused = false
	c.out.Unlock()

	if !c.attached {
		c.out.Play(c.ctrl)
		c.attached = true
	}
	return nil
}

// Pause is always safe; it does nothing when nothing is playing.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ctrl == nil || !c.attached {
		return
	}
	c.out.Lock()
	c.ctrl.Paused = true
	c.out.Unlock()
}

// ToggleMute flips audio enablement and mirrors it onto the stream's silent flag.
// Playback position is not touched.
func (c *Controller) ToggleMute() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.enabled = !c.enabled
	if c.volume != nil {
		c.out.Lock()
		c.volume.Silent = c.baseSilent || !c.enabled
		c.out.Unlock()
	}
	c.log.Debug("audio mute toggled", "enabled", c.enabled)
	return c.enabled
}

func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Playing reports whether the stream is attached to the device and not paused.
func (c *Controller) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ctrl == nil || !c.attached {
		return false
	}
	c.out.Lock()
	defer c.out.Unlock()
	return !c.ctrl.Paused
}

// Position is the current sample offset within the source.
func (c *Controller) Position() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.src == nil || c.src.Streamer == nil {
		return 0
	}
	c.out.Lock()
	defer c.out.Unlock()
	return c.src.Streamer.Position()
}

// Close pauses playback, releases the device and the source.
func (c *Controller) Close() error {
	c.Pause()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.deviceReady {
		c.out.Close()
		c.deviceReady = false
		c.attached = false
	}
	if c.src != nil {
		return c.src.Close()
	}
	return nil
}

// newVolume maps a linear 0..1 level onto beep's log2 volume.
// math.Log2(0) is -Inf, so zero is rendered as silence instead.
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
