package commands

import (
	"github.com/spf13/cobra"

	"github.com/JCoe77/akamai-dom-automation/internal/dvapi"
	"github.com/JCoe77/akamai-dom-automation/internal/report"
)

var (
	deleteAPIFlags APIFlags
	deleteRunFlags RunFlags
)

var deleteCmd = &cobra.Command{
	Use:   "delete <input-file>",
	Short: "Delete validation entries for a spreadsheet of domains",
	Long: `Remove domain validation entries in batches.

Arguments:
  input-file   Spreadsheet (.xlsx or .csv) with a domain column and a
               validation scope column

Deletion requires an explicit validation scope column in the input so an
entry can never be removed under a guessed scope.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, err := loadTargets(args[0], true)
		if err != nil {
			return err
		}

		api, err := newAPIClient(&deleteAPIFlags)
		if err != nil {
			return err
		}

		return runBatches(api, dvapi.OpDelete, report.FlowDelete, targets, &deleteRunFlags)
	},
}

func init() {
	addAPIFlags(deleteCmd, &deleteAPIFlags)
	addRunFlags(deleteCmd, &deleteRunFlags, "delete_results.xlsx", 100)
}
