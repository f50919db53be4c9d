package scene

import (
	"slices"
	"sync"
	"time"
)

// Page is the document the card renders from: panel, trigger caption, text regions,
// the heart container, confetti overlays and the mute icon state.
//
// All methods are safe for concurrent use; the renderer reads through Snapshot while
// transitions mutate the page from their own goroutine.
type Page struct {
	mu sync.RWMutex

	panelVisible bool
	caption      string
	title        string
	regions      []Region
	finalHeart   bool
	pulsing      bool
	audioEnabled bool

	hearts   []Particle
	overlays []Overlay

	watchers []func(Change)
}

func NewPage(title string, paragraphs []string, finalHeart bool) *Page {
	p := &Page{
		title:        title,
		finalHeart:   finalHeart,
		audioEnabled: true,
	}
	for _, text := range paragraphs {
		p.regions = append(p.regions, Region{Original: text})
	}
	return p
}

// Watch registers fn to be called after every mutation. fn runs outside the page lock.
func (p *Page) Watch(fn func(Change)) {
	p.mu.Lock()
	p.watchers = append(p.watchers, fn)
	p.mu.Unlock()
}

func (p *Page) notify(c Change) {
	p.mu.RLock()
	ws := slices.Clone(p.watchers)
	p.mu.RUnlock()
	for _, w := range ws {
		w(c)
	}
}

func (p *Page) PanelVisible() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.panelVisible
}

func (p *Page) SetPanelVisible(v bool) {
	p.mu.Lock()
	p.panelVisible = v
	p.mu.Unlock()
	p.notify(Change{Kind: ChangePanel, Visible: v})
}

func (p *Page) Caption() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.caption
}

func (p *Page) SetCaption(s string) {
	p.mu.Lock()
	p.caption = s
	p.mu.Unlock()
	p.notify(Change{Kind: ChangeCaption, Text: s})
}

func (p *Page) RegionCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.regions)
}

// Original returns the full source text of region i.
func (p *Page) Original(i int) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if i < 0 || i >= len(p.regions) {
		return ""
	}
	return p.regions[i].Original
}

func (p *Page) RegionText(i int) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if i < 0 || i >= len(p.regions) {
		return ""
	}
	return p.regions[i].Text
}

func (p *Page) setRegionText(i int, s string) {
	p.mu.Lock()
	if i < 0 || i >= len(p.regions) {
		p.mu.Unlock()
		return
	}
	p.regions[i].Text = s
	p.mu.Unlock()
	p.notify(Change{Kind: ChangeRegion, Index: i, Text: s})
}

// Region returns a writer for the displayed text of region i.
func (p *Page) Region(i int) RegionWriter {
	return RegionWriter{page: p, index: i}
}

func (p *Page) ClearRegions() {
	p.mu.Lock()
	for i := range p.regions {
		p.regions[i].Text = ""
	}
	n := len(p.regions)
	p.mu.Unlock()
	for i := 0; i < n; i++ {
		p.notify(Change{Kind: ChangeRegion, Index: i})
	}
}

func (p *Page) HasFinalHeart() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.finalHeart
}

func (p *Page) Pulsing() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pulsing
}

func (p *Page) SetPulsing(v bool) {
	p.mu.Lock()
	p.pulsing = v
	p.mu.Unlock()
	p.notify(Change{Kind: ChangePulse, Visible: v})
}

func (p *Page) AudioEnabled() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.audioEnabled
}

func (p *Page) SetAudioEnabled(v bool) {
	p.mu.Lock()
	p.audioEnabled = v
	p.mu.Unlock()
	p.notify(Change{Kind: ChangeAudio, Visible: v})
}

func (p *Page) AddHeart(h Particle) {
	p.mu.Lock()
	p.hearts = append(p.hearts, h)
	p.mu.Unlock()
	p.notify(Change{Kind: ChangeHeartAdded, ID: h.ID})
}

// RemoveHeart reports whether the heart was still on the page.
func (p *Page) RemoveHeart(id string) bool {
	p.mu.Lock()
	i := slices.IndexFunc(p.hearts, func(h Particle) bool { return h.ID == id })
	if i < 0 {
		p.mu.Unlock()
		return false
	}
	p.hearts = slices.Delete(p.hearts, i, i+1)
	p.mu.Unlock()
	p.notify(Change{Kind: ChangeHeartRemoved, ID: id})
	return true
}

// ClearHearts empties the heart container.
func (p *Page) ClearHearts() {
	p.mu.Lock()
	n := len(p.hearts)
	p.hearts = nil
	p.mu.Unlock()
	if n > 0 {
		p.notify(Change{Kind: ChangeHeartsCleared})
	}
}

func (p *Page) AddOverlay(o Overlay) {
	p.mu.Lock()
	p.overlays = append(p.overlays, o)
	p.mu.Unlock()
	p.notify(Change{Kind: ChangeOverlayAdded, ID: o.ID})
}

// RemoveOverlay drops the overlay and whatever confetti it still holds.
func (p *Page) RemoveOverlay(id string) bool {
	p.mu.Lock()
	i := slices.IndexFunc(p.overlays, func(o Overlay) bool { return o.ID == id })
	if i < 0 {
		p.mu.Unlock()
		return false
	}
	p.overlays = slices.Delete(p.overlays, i, i+1)
	p.mu.Unlock()
	p.notify(Change{Kind: ChangeOverlayRemoved, ID: id})
	return true
}

// RemoveConfetti drops a single piece from its overlay.
func (p *Page) RemoveConfetti(overlayID, id string) bool {
	p.mu.Lock()
	oi := slices.IndexFunc(p.overlays, func(o Overlay) bool { return o.ID == overlayID })
	if oi < 0 {
		p.mu.Unlock()
		return false
	}
	ps := p.overlays[oi].Particles
	i := slices.IndexFunc(ps, func(c Particle) bool { return c.ID == id })
	if i < 0 {
		p.mu.Unlock()
		return false
	}
	p.overlays[oi].Particles = slices.Delete(slices.Clone(ps), i, i+1)
	p.mu.Unlock()
	p.notify(Change{Kind: ChangeConfettiRemoved, ID: id})
	return true
}

// Snapshot copies the page for rendering.
func (p *Page) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s := Snapshot{
		PanelVisible: p.panelVisible,
		Caption:      p.caption,
		Title:        p.title,
		Regions:      slices.Clone(p.regions),
		FinalHeart:   p.finalHeart,
		Pulsing:      p.pulsing,
		AudioEnabled: p.audioEnabled,
		Hearts:       slices.Clone(p.hearts),
		Overlays:     make([]Overlay, 0, len(p.overlays)),
	}
	for _, o := range p.overlays {
		s.Overlays = append(s.Overlays, Overlay{
			ID:        o.ID,
			Born:      o.Born,
			Particles: slices.Clone(o.Particles),
		})
	}
	return s
}

// RegionWriter sets the displayed text of one region.
type RegionWriter struct {
	page  *Page
	index int
}

func (w RegionWriter) SetText(s string) {
	w.page.setRegionText(w.index, s)
}

// ConfettiCount is the number of confetti pieces across every overlay.
func (s Snapshot) ConfettiCount() int {
	n := 0
	for _, o := range s.Overlays {
		n += len(o.Particles)
	}
	return n
}

// Age reports how long the particle has been on the page at now.
func (p Particle) Age(now time.Time) time.Duration {
	if now.Before(p.Born) {
		return 0
	}
	return now.Sub(p.Born)
}
