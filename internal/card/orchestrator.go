package card

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"heartnote/internal/effects"
	"heartnote/internal/registry"
	"heartnote/internal/scene"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
)

// Player is the looping audio handle.
type Player interface {
	TryPlay() error
	Pause()
	ToggleMute() bool
	Enabled() bool
}

// SessionRecorder persists the "message has been viewed" flag.
type SessionRecorder interface {
	MarkViewed(ctx context.Context) error
}

// AppContext is created once at startup and handed to every component.
type AppContext struct {
	Config Config
	Page   *scene.Page
	Clock  clock.Clock
	// Rand seeds particle placement; nil picks a random seed.
	Rand   *rand.Rand
	Logger *slog.Logger
	// Viewed is the session flag as read at startup.
	Viewed bool
}

// Orchestrator drives a card transition: it is the only owner of the active particle
// set and the active typing handles.
type Orchestrator struct {
	app     *AppContext
	log     *slog.Logger
	page    *scene.Page
	player  Player
	session SessionRecorder

	generator  *effects.Generator
	typewriter *effects.Typewriter
	particles  *registry.Registry[effects.Handle]
	typing     *registry.Registry[context.CancelFunc]

	state state

	mu        sync.Mutex
	cancelRun context.CancelFunc
	done      chan struct{}

	muteMu sync.Mutex
}

func NewOrchestrator(app *AppContext, player Player, session SessionRecorder) (*Orchestrator, error) {
	if app == nil || app.Page == nil {
		return nil, errors.New("card: app context needs a page")
	}
	if err := app.Config.Validate(); err != nil {
		return nil, err
	}
	if app.Clock == nil {
		app.Clock = clock.New()
	}
	if app.Logger == nil {
		app.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if player == nil {
		player = &silentPlayer{}
	}
	if session == nil {
		session = discardSession{}
	}

	o := &Orchestrator{
		app:        app,
		log:        app.Logger.With("component", "card"),
		page:       app.Page,
		player:     player,
		session:    session,
		generator:  effects.NewGenerator(app.Page, app.Clock, app.Rand),
		typewriter: effects.NewTypewriter(app.Clock, app.Config.TypingDelay),
		particles:  registry.New[effects.Handle](app.Clock),
		typing:     registry.New[context.CancelFunc](app.Clock),
	}
	o.state.viewed.Store(app.Viewed)
	if o.page.Caption() == "" {
		o.page.SetCaption(CaptionInvite)
	}
	o.page.SetAudioEnabled(player.Enabled())
	return o, nil
}

// Toggle opens a closed card or closes an open one. While another transition is
// running it does nothing and returns false.
func (o *Orchestrator) Toggle(ctx context.Context) bool {
	return o.execute(ctx, o.plan)
}

// Dismiss closes the card. An opening transition in flight is cancelled first, which
// leaves partially typed text on the page; a closing transition is waited for.
func (o *Orchestrator) Dismiss(ctx context.Context) error {
	o.mu.Lock()
	cancel, done := o.cancelRun, o.done
	o.mu.Unlock()

	if done != nil {
		if o.state.currentPhase() == PhaseOpening {
			cancel()
		}
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	o.execute(ctx, o.planDismiss)
	return ctx.Err()
}

// ToggleMute flips audio enablement and mirrors it onto the page's mute icon.
func (o *Orchestrator) ToggleMute() bool {
	o.muteMu.Lock()
	defer o.muteMu.Unlock()

	enabled := o.player.ToggleMute()
	o.page.SetAudioEnabled(enabled)
	return enabled
}

// StopAll cancels every typing handle and releases every particle. It is idempotent.
func (o *Orchestrator) StopAll() {
	typing := o.typing.Drain()
	particles := o.particles.Drain()
	o.page.ClearHearts()
	if typing+particles > 0 {
		o.log.Debug("effects stopped", "typing", typing, "particles", particles)
	}
}

func (o *Orchestrator) Phase() Phase { return o.state.currentPhase() }

// Animating reports whether the animation guard is held.
func (o *Orchestrator) Animating() bool { return o.state.animating() }

// Viewed is the session flag.
func (o *Orchestrator) Viewed() bool { return o.state.viewed.Load() }

func (o *Orchestrator) ActiveParticles() int { return o.particles.Len() }

func (o *Orchestrator) ActiveTyping() int { return o.typing.Len() }

func (o *Orchestrator) Config() Config { return o.app.Config }

func (o *Orchestrator) execute(ctx context.Context, plan func() (Phase, []task)) (ran bool) {
	if !o.state.acquire() {
		o.log.Debug("trigger ignored: transition in flight", "phase", o.state.currentPhase())
		return false
	}
	phase, tasks := plan()
	if len(tasks) == 0 {
		o.state.release()
		return true
	}
	o.state.setPhase(phase)

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	o.mu.Lock()
	o.cancelRun, o.done = cancel, done
	o.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			o.log.Error("transition panicked", "panic", r)
		}
		o.mu.Lock()
		o.cancelRun, o.done = nil, nil
		o.mu.Unlock()
		cancel()
		o.settle()
		o.state.release()
		close(done)
	}()
	ran = true

	start := o.app.Clock.Now()
	err := runTasks(runCtx, tasks)
	switch {
	case err == nil:
		o.log.Info("transition complete", "phase", phase.String(), "elapsed", o.app.Clock.Since(start))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		o.log.Info("transition cancelled", "phase", phase.String(), "err", err)
	default:
		o.log.Error("transition failed", "phase", phase.String(), "err", err)
	}
	return ran
}

// settle leaves the state machine at rest, wherever the page ended up.
func (o *Orchestrator) settle() {
	if o.page.PanelVisible() {
		o.state.setPhase(PhaseOpen)
	} else {
		o.state.setPhase(PhaseClosed)
	}
}

func (o *Orchestrator) plan() (Phase, []task) {
	if o.page.PanelVisible() {
		return PhaseClosing, o.closingTasks()
	}
	return PhaseOpening, o.openingTasks()
}

func (o *Orchestrator) planDismiss() (Phase, []task) {
	if !o.page.PanelVisible() {
		return PhaseClosed, nil
	}
	return PhaseClosing, o.closingTasks()
}

func (o *Orchestrator) openingTasks() []task {
	cfg := o.app.Config
	tasks := []task{
		{name: "show panel", run: func(context.Context) error {
			o.page.SetPanelVisible(true)
			o.page.SetCaption(CaptionAcknowledged)
			return nil
		}},
		{name: "persist session flag", run: func(ctx context.Context) error {
			o.state.viewed.Store(true)
			return o.session.MarkViewed(ctx)
		}},
		{name: "stop effects", run: func(context.Context) error {
			o.StopAll()
			return nil
		}},
		{name: "spawn hearts", run: func(context.Context) error {
			for _, h := range o.generator.SpawnField(cfg.HeartCount) {
				o.particles.Add(h.ID, h, h.Release)
			}
			return nil
		}},
		{name: "spawn confetti", run: func(context.Context) error {
			overlay, pieces := o.generator.SpawnBurst(cfg.ConfettiCount)
			for _, p := range pieces {
				o.particles.AddExpiring(p.ID, p, cfg.AnimationDuration, p.Release)
			}
			o.particles.AddExpiring(overlay.ID, overlay, cfg.AnimationDuration, overlay.Release)
			return nil
		}},
		{name: "play audio", run: func(context.Context) error {
			if err := o.player.TryPlay(); err != nil {
				o.log.Warn("audio playback did not start", "err", err)
			}
			return nil
		}},
		{name: "clear regions", run: func(context.Context) error {
			o.page.SetPulsing(false)
			o.page.ClearRegions()
			return nil
		}},
	}
	for i := 0; i < o.page.RegionCount(); i++ {
		i := i
		tasks = append(tasks, task{
			name: fmt.Sprintf("reveal region %d", i),
			run:  func(ctx context.Context) error { return o.reveal(ctx, i) },
		})
	}
	tasks = append(tasks, task{name: "pulse heart", run: func(context.Context) error {
		if o.page.HasFinalHeart() {
			o.page.SetPulsing(true)
		}
		return nil
	}})
	return tasks
}

func (o *Orchestrator) closingTasks() []task {
	return []task{
		{name: "hide panel", run: func(context.Context) error {
			o.page.SetPanelVisible(false)
			o.page.SetCaption(CaptionInvite)
			return nil
		}},
		{name: "pause audio", run: func(context.Context) error {
			o.player.Pause()
			return nil
		}},
		{name: "stop effects", run: func(context.Context) error {
			o.StopAll()
			return nil
		}},
	}
}

// reveal types region i under a registered handle. StopAll cancels the handle;
// natural completion releases it.
func (o *Orchestrator) reveal(ctx context.Context, i int) error {
	rctx, cancel := context.WithCancel(ctx)
	id := uuid.NewString()
	o.typing.Add(id, cancel, cancel)
	defer o.typing.Release(id)

	return o.typewriter.Reveal(rctx, o.page.Region(i), o.page.Original(i))
}

type silentPlayer struct {
	muted atomic.Bool
}

func (*silentPlayer) TryPlay() error { return nil }
func (*silentPlayer) Pause()         {}
func (p *silentPlayer) ToggleMute() bool {
	for {
		old := p.muted.Load()
		if p.muted.CompareAndSwap(old, !old) {
			return old
		}
	}
}
func (p *silentPlayer) Enabled() bool { return !p.muted.Load() }

type discardSession struct{}

func (discardSession) MarkViewed(context.Context) error { return nil }
