package scene

import "time"

type Kind int

const (
	// KindHeart is an ambient particle: no self-expiry, cleared only explicitly.
	KindHeart Kind = iota
	// KindConfetti is a transient particle with a fixed lifetime.
	KindConfetti
	// KindOverlay is the container a confetti burst lives in.
	KindOverlay
)

func (k Kind) String() string {
	switch k {
	case KindHeart:
		return "heart"
	case KindConfetti:
		return "confetti"
	case KindOverlay:
		return "overlay"
	default:
		return "unknown"
	}
}

// Particle is one decorative element. X and Y are fractions of the canvas (0..1).
type Particle struct {
	ID       string
	Kind     Kind
	X, Y     float64
	Size     int
	Color    string
	Duration time.Duration
	Born     time.Time
}

type Overlay struct {
	ID        string
	Born      time.Time
	Particles []Particle
}

// Region is one text block of the message. Text is what is currently displayed.
type Region struct {
	Original string
	Text     string
}

type Snapshot struct {
	PanelVisible bool
	Caption      string
	Title        string
	Regions      []Region
	FinalHeart   bool
	Pulsing      bool
	AudioEnabled bool
	Hearts       []Particle
	Overlays     []Overlay
}

type ChangeKind string

const (
	ChangePanel           ChangeKind = "panel"
	ChangeCaption         ChangeKind = "caption"
	ChangeRegion          ChangeKind = "region"
	ChangePulse           ChangeKind = "pulse"
	ChangeAudio           ChangeKind = "audio"
	ChangeHeartAdded      ChangeKind = "heart+"
	ChangeHeartRemoved    ChangeKind = "heart-"
	ChangeHeartsCleared   ChangeKind = "hearts0"
	ChangeOverlayAdded    ChangeKind = "overlay+"
	ChangeOverlayRemoved  ChangeKind = "overlay-"
	ChangeConfettiRemoved ChangeKind = "confetti-"
)

// Change describes one page mutation, in the order it happened.
type Change struct {
	Kind    ChangeKind
	Index   int
	Text    string
	ID      string
	Visible bool
}
