package cli

import (
	"fmt"
	"strings"

	"heartnote/internal/format"
	"heartnote/internal/letter"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Audio      string
	Letter     string
	LogLevel   string
	Glyphs     string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}
	defaults, envErr := loadEnv()

	cmd := &cobra.Command{
		Use:          "heartnote",
		Short:        "A greeting card for the terminal",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		Example: strings.TrimSpace(`
  # Open the card
  heartnote

  # With music and your own letter
  heartnote --audio song.mp3 --letter letter.md

  # Read the letter without animation
  heartnote letter

  # Has the message been viewed?
  heartnote status --format table
`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				return writeErr(cmd, fmt.Errorf("environment: %w", envErr))
			}
			if _, err := parseLevel(app.LogLevel); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCard(cmd, app)
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", defaults.Dir, "Path to the state dir (default ~/.heartnote)")
	cmd.PersistentFlags().StringVar(&app.Letter, "letter", defaults.Letter, "Markdown letter to show instead of the built-in one")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", defaults.Format, "Output format (json|table)")
	cmd.Flags().StringVar(&app.Audio, "audio", defaults.Audio, "Background music to loop while the card is open (mp3|wav)")
	cmd.Flags().StringVar(&app.Glyphs, "glyphs", defaults.Glyphs, "Glyph set (unicode|ascii)")

	cmd.AddCommand(newLetterCmd(app))
	cmd.AddCommand(newStatusCmd(app))

	return cmd
}

func loadLetter(app *App) (letter.Letter, error) {
	if strings.TrimSpace(app.Letter) == "" {
		return letter.Default(), nil
	}
	l, err := letter.Load(app.Letter)
	if err != nil {
		return letter.Letter{}, errLetter(app.Letter, err)
	}
	return l, nil
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
