package card

import "sync/atomic"

type Phase int32

const (
	PhaseClosed Phase = iota
	PhaseOpening
	PhaseOpen
	PhaseClosing
)

func (p Phase) String() string {
	switch p {
	case PhaseClosed:
		return "closed"
	case PhaseOpening:
		return "opening"
	case PhaseOpen:
		return "open"
	case PhaseClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// Transient reports whether p is one of the in-flight phases.
func (p Phase) Transient() bool {
	return p == PhaseOpening || p == PhaseClosing
}

// state is the presentation state owned by the orchestrator. Panel visibility lives on
// the page; audio enablement lives on the player and is mirrored onto the page.
type state struct {
	guard  atomic.Bool
	phase  atomic.Int32
	viewed atomic.Bool
}

// acquire sets the animation guard. It fails while a transition is running.
func (s *state) acquire() bool {
	return s.guard.CompareAndSwap(false, true)
}

func (s *state) release() {
	s.guard.Store(false)
}

func (s *state) animating() bool {
	return s.guard.Load()
}

func (s *state) setPhase(p Phase) {
	s.phase.Store(int32(p))
}

func (s *state) currentPhase() Phase {
	return Phase(s.phase.Load())
}
