package cli

import (
	"log/slog"
	"strings"

	"heartnote/internal/audio"
	"heartnote/internal/card"
	"heartnote/internal/haptic"
	"heartnote/internal/scene"
	"heartnote/internal/store"
	"heartnote/internal/tui"

	"github.com/benbjohnson/clock"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func runCard(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()

	st, err := store.Resolve(app.Dir)
	if err != nil {
		return writeErr(cmd, err)
	}
	if err := st.Ensure(); err != nil {
		return writeErr(cmd, err)
	}
	log, closeLog, err := openLogger(st.LogPath(), app.LogLevel)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer closeLog()

	sess, err := st.LoadSession(ctx)
	if err != nil {
		return writeErr(cmd, err)
	}
	l, err := loadLetter(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	if err := validGlyphs(app.Glyphs); err != nil {
		return writeErr(cmd, err)
	}

	cfg := card.DefaultConfig()
	player := openPlayer(app.Audio, cfg.AudioVolume, log)
	defer func() {
		if err := player.Close(); err != nil {
			log.Warn("audio close failed", "err", err)
		}
	}()

	page := scene.NewPage(l.Title, l.Paragraphs, l.FinalHeart)
	orch, err := card.NewOrchestrator(&card.AppContext{
		Config: cfg,
		Page:   page,
		Clock:  clock.New(),
		Logger: log,
		Viewed: sess.MessageViewed,
	}, player, st)
	if err != nil {
		return writeErr(cmd, err)
	}

	log.Info("card ready",
		"dir", st.Dir,
		"viewed", sess.MessageViewed,
		"regions", len(l.Paragraphs),
		"letter", lo.Ternary(app.Letter == "", "(built-in)", app.Letter),
	)
	if err := tui.Run(ctx, tui.Options{
		Card:   orch,
		Page:   page,
		Pulser: haptic.Stderr(),
		Logger: log,
		Glyphs: app.Glyphs,
	}); err != nil {
		log.Error("tui exited", "err", err)
		return writeErr(cmd, err)
	}
	return nil
}

// openPlayer never fails: without a usable asset every play attempt is reported as
// blocked and the card stays silent.
func openPlayer(path string, volume float64, log *slog.Logger) *audio.Controller {
	var src *audio.Source
	if strings.TrimSpace(path) != "" {
		s, err := audio.Open(path)
		if err != nil {
			log.Warn("audio asset unavailable", "path", path, "err", err)
		} else {
			src = s
		}
	}
	return audio.New(volume, src, nil, log.With("component", "audio"))
}

func validGlyphs(v string) error {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "unicode", "utf8", "ascii":
		return nil
	default:
		return invalidValueError{name: "glyph set", value: v, allowed: "unicode|ascii"}
	}
}
