package tui

import (
	"os"
	"strings"
	"sync"
)

// Terminal apps can't change the user's actual font. Instead, we can choose
// between Unicode and ASCII glyph sets for the card's decorations (hearts,
// confetti, the mute icon). This helps on terminals/fonts that don't render
// emoji cleanly.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference picks the glyph set from override, falling back to
// HEARTNOTE_TUI_GLYPHS. Unknown values are ignored.
func applyGlyphPreference(override string) {
	v := override
	if strings.TrimSpace(v) == "" {
		v = os.Getenv("HEARTNOTE_TUI_GLYPHS")
	}
	if gs, ok := parseGlyphSet(v); ok {
		setGlyphs(gs)
	}
}

func parseGlyphSet(v string) (glyphSet, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "unicode", "utf8":
		return glyphSetUnicode, true
	case "ascii":
		return glyphSetASCII, true
	default:
		return 0, false
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphsName(gs glyphSet) string {
	switch gs {
	case glyphSetASCII:
		return "ASCII"
	default:
		return "Unicode"
	}
}

func glyphHeart() string {
	if glyphs() == glyphSetASCII {
		return "<3"
	}
	return "♥"
}

func glyphConfetti() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "•"
}

func glyphSoundOn() string {
	if glyphs() == glyphSetASCII {
		return "[sound]"
	}
	return "🔊"
}

func glyphSoundOff() string {
	if glyphs() == glyphSetASCII {
		return "[muted]"
	}
	return "🔇"
}
