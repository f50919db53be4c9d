package effects

import (
	"math/rand/v2"
	"sync"
	"time"

	"heartnote/internal/scene"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
)

// HeartPalette is the fixed set of colors ambient hearts pick from.
var HeartPalette = []string{"#d81b60", "#ff4081"}

const (
	minHeartSize   = 15
	heartSizeRange = 20

	minParticleDuration   = 2 * time.Second
	particleDurationRange = 3 * time.Second
)

// Handle identifies one element the generator put on the page.
// Release removes it; calling Release for an element that is already gone does nothing.
type Handle struct {
	ID      string
	Kind    scene.Kind
	Release func()
}

// Generator creates decorative particles with randomized visual parameters.
// It does not track what it creates: callers own the returned handles.
type Generator struct {
	page  *scene.Page
	clock clock.Clock

	mu  sync.Mutex
	rng *rand.Rand
}

func NewGenerator(page *scene.Page, clk clock.Clock, rng *rand.Rand) *Generator {
	if clk == nil {
		clk = clock.New()
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{page: page, clock: clk, rng: rng}
}

// SpawnField puts n ambient hearts into the page's heart container.
func (g *Generator) SpawnField(n int) []Handle {
	now := g.clock.Now()
	handles := make([]Handle, 0, n)

	g.mu.Lock()
	hearts := make([]scene.Particle, 0, n)
	for i := 0; i < n; i++ {
		hearts = append(hearts, scene.Particle{
			ID:       uuid.NewString(),
			Kind:     scene.KindHeart,
			X:        g.rng.Float64(),
			Y:        g.rng.Float64(),
			Size:     minHeartSize + int(g.rng.Float64()*heartSizeRange),
			Color:    HeartPalette[g.rng.IntN(len(HeartPalette))],
			Duration: g.duration(),
			Born:     now,
		})
	}
	g.mu.Unlock()

	for _, h := range hearts {
		g.page.AddHeart(h)
		id := h.ID
		handles = append(handles, Handle{
			ID:      id,
			Kind:    scene.KindHeart,
			Release: func() { g.page.RemoveHeart(id) },
		})
	}
	return handles
}

// SpawnBurst creates a fresh overlay holding m confetti pieces.
// The overlay handle is returned separately from the per-piece handles; both are
// expected to be expired by the caller after the configured lifetime.
func (g *Generator) SpawnBurst(m int) (Handle, []Handle) {
	now := g.clock.Now()
	overlay := scene.Overlay{ID: uuid.NewString(), Born: now}

	g.mu.Lock()
	for i := 0; i < m; i++ {
		overlay.Particles = append(overlay.Particles, scene.Particle{
			ID:       uuid.NewString(),
			Kind:     scene.KindConfetti,
			X:        g.rng.Float64(),
			Color:    confettiColor(g.rng.Float64() * 360),
			Duration: g.duration(),
			Born:     now,
		})
	}
	g.mu.Unlock()

	g.page.AddOverlay(overlay)

	overlayID := overlay.ID
	pieces := make([]Handle, 0, m)
	for _, c := range overlay.Particles {
		id := c.ID
		pieces = append(pieces, Handle{
			ID:      id,
			Kind:    scene.KindConfetti,
			Release: func() { g.page.RemoveConfetti(overlayID, id) },
		})
	}
	return Handle{
		ID:      overlayID,
		Kind:    scene.KindOverlay,
		Release: func() { g.page.RemoveOverlay(overlayID) },
	}, pieces
}

// duration must be called with g.mu held.
func (g *Generator) duration() time.Duration {
	return minParticleDuration + time.Duration(g.rng.Float64()*float64(particleDurationRange))
}

// confettiColor is hsl(hue, 100%, 75%).
func confettiColor(hue float64) string {
	return colorful.Hsl(hue, 1, 0.75).Clamped().Hex()
}
