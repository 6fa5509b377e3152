package cmd

import (
	"fmt"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/keepick/keepick/match"
	"github.com/keepick/keepick/tui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactively pick the entry and sequence to auto-type",
	Long: `Opens the picker with the candidates matching the target window title
(all databases are still searchable from within). On commit the chosen
sequence is printed to stdout with field placeholders expanded, ready to
feed a keystroke injector; field values are shell-escaped so the output
is safe to eval. Copy actions put the field on the clipboard and close
without printing.`,
	RunE: runPick,
}

func init() {
	flags := pickCmd.Flags()
	flags.StringP("window", "w", "", "Title of the target window to seed candidates from")
	flags.Bool("raw", false, "Print the committed sequence without expanding placeholders")
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	windowTitle, err := cmd.Flags().GetString("window")
	if err != nil {
		return err
	}
	raw, err := cmd.Flags().GetBool("raw")
	if err != nil {
		return err
	}

	dbs, kdbx, closeAll, err := openDatabases()
	if err != nil {
		return err
	}
	defer closeAll()
	cmd.SilenceUsage = true

	initial := seedMatches(kdbx, windowTitle)

	outcome, err := tui.Run(initial, dbs, viper.GetDuration("debounce"))
	if err != nil {
		return err
	}

	switch {
	case outcome.Activated != nil:
		if raw {
			fmt.Println(outcome.Activated.Sequence)
		} else {
			fmt.Println(expandSequence(*outcome.Activated))
		}

	case outcome.Copied:
		if outcome.CopyErr != nil {
			return fmt.Errorf("copying to clipboard: %w", outcome.CopyErr)
		}
		pterm.Success.Println("Copied to clipboard")

	default:
		pterm.Info.Println("No entry selected")
	}
	return nil
}

// expandSequence substitutes the field placeholders of the committed
// sequence. Other tokens ({TAB}, {ENTER}, {DELAY ...}) pass through for
// the injector to interpret; field values are quoted for the shell.
func expandSequence(m match.Match) string {
	replacer := strings.NewReplacer(
		"{USERNAME}", shellescape.Quote(m.Entry.Username()),
		"{PASSWORD}", shellescape.Quote(m.Entry.Password()),
		"{TOTP}", shellescape.Quote(m.Entry.TOTP()),
		"{TITLE}", shellescape.Quote(m.Entry.Title()),
	)
	return replacer.Replace(m.Sequence)
}
