package tui

import "testing"

func TestGlyphs_FromEnv(t *testing.T) {
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	t.Setenv("HEARTNOTE_TUI_GLYPHS", "")
	setGlyphs(glyphSetUnicode)
	applyGlyphPreference("")
	if got := glyphs(); got != glyphSetUnicode {
		t.Fatalf("expected unicode glyphs by default; got %v", got)
	}

	t.Setenv("HEARTNOTE_TUI_GLYPHS", "ascii")
	applyGlyphPreference("")
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected ascii glyphs; got %v", got)
	}
	if got := glyphSoundOff(); got != "[muted]" {
		t.Fatalf("expected ascii mute icon; got %q", got)
	}

	t.Setenv("HEARTNOTE_TUI_GLYPHS", "unicode")
	applyGlyphPreference("")
	if got := glyphs(); got != glyphSetUnicode {
		t.Fatalf("expected unicode glyphs; got %v", got)
	}
	if got := glyphSoundOn(); got != "🔊" {
		t.Fatalf("expected speaker icon; got %q", got)
	}

	// Unknown values should be ignored (keep current).
	setGlyphs(glyphSetASCII)
	t.Setenv("HEARTNOTE_TUI_GLYPHS", "bogus")
	applyGlyphPreference("")
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected unknown to be ignored; got %v", got)
	}
	// An explicit override beats the environment.
	t.Setenv("HEARTNOTE_TUI_GLYPHS", "ascii")
	applyGlyphPreference("unicode")
	if got := glyphs(); got != glyphSetUnicode {
		t.Fatalf("expected override to win; got %v", got)
	}
	setGlyphs(glyphSetASCII)
	if glyphsName(glyphs()) != "ASCII" {
		t.Fatalf("unexpected glyph set name %q", glyphsName(glyphs()))
	}
}
