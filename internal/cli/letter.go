package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const defaultLetterWidth = 72

func newLetterCmd(app *App) *cobra.Command {
	var (
		raw   bool
		width int
		style string
	)

	cmd := &cobra.Command{
		Use:   "letter",
		Short: "Print the letter without the card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := loadLetter(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), l.Source)
				return err
			}

			r, err := glamour.NewTermRenderer(
				// Avoid WithAutoStyle(): it can block on terminal background queries.
				glamour.WithStandardStyle(letterStyle(style, cmd.OutOrStdout())),
				glamour.WithWordWrap(max(width, 20)),
			)
			if err != nil {
				return writeErr(cmd, err)
			}
			out, err := r.Render(l.Source)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown")
	cmd.Flags().IntVar(&width, "width", defaultLetterWidth, "Wrap width")
	cmd.Flags().StringVar(&style, "style", "", "glamour style (pink|dark|light|notty|ascii; default pink on a terminal)")

	return cmd
}

// letterStyle keeps escape codes out of pipes and honors NO_COLOR.
func letterStyle(explicit string, w io.Writer) string {
	if s := strings.ToLower(strings.TrimSpace(explicit)); s != "" {
		return s
	}
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return styles.NoTTYStyle
	}
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return styles.NoTTYStyle
	}
	return styles.PinkStyle
}
