package cmd

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/keepick/keepick/match"
	"github.com/keepick/keepick/util"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// celEnvOptions defines the variables a --filter expression can use.
var celEnvOptions = []cel.EnvOption{
	cel.Variable("Title", cel.StringType),
	cel.Variable("Username", cel.StringType),
	cel.Variable("Sequence", cel.StringType),
	cel.Variable("HasTOTP", cel.BoolType),
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List auto-type candidates without picking",
	Long: `Searches the configured databases and prints the matching (entry,
sequence) candidates as a table. A CEL --filter expression narrows the
result, e.g. --filter 'Username == "alice" && HasTOTP'.`,
	RunE: runList,
}

func init() {
	flags := listCmd.Flags()
	flags.StringP("query", "q", "", "Search term for the databases")
	flags.StringP("window", "w", "", "List candidates for this window title instead of searching")
	flags.String("filter", "", "CEL expression to filter candidates")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	query, err := cmd.Flags().GetString("query")
	if err != nil {
		return err
	}
	windowTitle, err := cmd.Flags().GetString("window")
	if err != nil {
		return err
	}
	filter, err := cmd.Flags().GetString("filter")
	if err != nil {
		return err
	}
	if query == "" && windowTitle == "" {
		return fmt.Errorf("either --query or --window is required")
	}

	dbs, kdbx, closeAll, err := openDatabases()
	if err != nil {
		return err
	}
	defer closeAll()
	cmd.SilenceUsage = true

	var matches []match.Match
	if query != "" {
		matches = match.NewCandidates(nil, dbs).Search(query)
	} else {
		matches = seedMatches(kdbx, windowTitle)
	}

	if filter != "" {
		matches, err = filterMatches(cmd, matches, filter)
		if err != nil {
			return err
		}
	}

	if len(matches) == 0 {
		pterm.Info.Println("No matches")
		return nil
	}

	data := pterm.TableData{{"Title", "Username", "Sequence"}}
	for _, m := range matches {
		data = append(data, []string{m.Entry.Title(), m.Entry.Username(), m.Sequence})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func filterMatches(cmd *cobra.Command, matches []match.Match, filter string) ([]match.Match, error) {
	program, err := util.InitCELProgram(filter, celEnvOptions...)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	filtered := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		val, _, err := (*program).ContextEval(ctx, map[string]any{
			"Title":    m.Entry.Title(),
			"Username": m.Entry.Username(),
			"Sequence": m.Sequence,
			"HasTOTP":  m.Entry.HasTOTP(),
		})
		if err != nil {
			return nil, fmt.Errorf("evaluating filter: %w", err)
		}
		if val.Value() == true {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}
