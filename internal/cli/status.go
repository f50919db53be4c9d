package cli

import (
	"strconv"

	"heartnote/internal/card"
	"heartnote/internal/store"

	"github.com/spf13/cobra"
)

type statusConfig struct {
	AudioVolume       float64 `json:"audioVolume"`
	HeartCount        int     `json:"heartCount"`
	ConfettiCount     int     `json:"confettiCount"`
	TypingDelay       string  `json:"typingDelay"`
	AnimationDuration string  `json:"animationDuration"`
}

type statusReport struct {
	Dir           string       `json:"dir"`
	MessageViewed bool         `json:"messageViewed"`
	Config        statusConfig `json:"config"`
}

func (r statusReport) Header() []string { return []string{"key", "value"} }

func (r statusReport) Rows() [][]string {
	return [][]string{
		{"dir", r.Dir},
		{"messageViewed", strconv.FormatBool(r.MessageViewed)},
		{"audioVolume", strconv.FormatFloat(r.Config.AudioVolume, 'f', -1, 64)},
		{"heartCount", strconv.Itoa(r.Config.HeartCount)},
		{"confettiCount", strconv.Itoa(r.Config.ConfettiCount)},
		{"typingDelay", r.Config.TypingDelay},
		{"animationDuration", r.Config.AnimationDuration},
	}
}

func newStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether the message has been viewed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Resolve(app.Dir)
			if err != nil {
				return writeErr(cmd, err)
			}
			sess, err := st.LoadSession(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}

			cfg := card.DefaultConfig()
			report := statusReport{
				Dir:           st.Dir,
				MessageViewed: sess.MessageViewed,
				Config: statusConfig{
					AudioVolume:       cfg.AudioVolume,
					HeartCount:        cfg.HeartCount,
					ConfettiCount:     cfg.ConfettiCount,
					TypingDelay:       cfg.TypingDelay.String(),
					AnimationDuration: cfg.AnimationDuration.String(),
				},
			}
			if app.Format == "table" {
				return writeOut(cmd, app, report)
			}
			return writeOut(cmd, app, map[string]any{"data": report})
		},
	}
	return cmd
}
