package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"heartnote/internal/haptic"

	tea "github.com/charmbracelet/bubbletea"
)

// dismissTimeout bounds the closing transition run on the way out.
const dismissTimeout = 2 * time.Second

type Options struct {
	Card   Card
	Page   Page
	Pulser haptic.Pulser
	Logger *slog.Logger
	// Glyphs overrides HEARTNOTE_TUI_GLYPHS (unicode|ascii).
	Glyphs string
}

// Run shows the card until the user quits or ctx is cancelled. On the way out the card
// is dismissed so no animation or audio outlives the UI.
func Run(ctx context.Context, opts Options) error {
	if opts.Card == nil || opts.Page == nil {
		return errors.New("tui: card and page are required")
	}
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference(opts.Glyphs)

	m := newAppModel(ctx, opts)
	m.log.Debug("tui starting", "glyphs", glyphsName(glyphs()))
	_, err := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	).Run()

	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), dismissTimeout)
	defer cancel()
	if derr := opts.Card.Dismiss(dctx); derr != nil {
		m.log.Warn("dismiss on exit failed", "err", derr)
	}

	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
