package commands

import (
	"github.com/spf13/cobra"

	"github.com/JCoe77/akamai-dom-automation/internal/dvapi"
	"github.com/JCoe77/akamai-dom-automation/internal/report"
)

var (
	createAPIFlags APIFlags
	createRunFlags RunFlags
)

var createCmd = &cobra.Command{
	Use:   "create <input-file>",
	Short: "Create validation entries for a spreadsheet of domains",
	Long: `Submit domains for ownership validation and collect their DNS challenges.

Arguments:
  input-file   Spreadsheet (.xlsx or .csv) with a domain column and an
               optional validation scope column

Domains are submitted in batches; each successfully created entry yields
the TXT record name and token to publish in DNS. Domains that already
exist are looked up individually so their existing token is still
reported. The results spreadsheet has one row per input domain.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, err := loadTargets(args[0], false)
		if err != nil {
			return err
		}

		api, err := newAPIClient(&createAPIFlags)
		if err != nil {
			return err
		}

		return runBatches(api, dvapi.OpCreate, report.FlowCreate, targets, &createRunFlags)
	},
}

func init() {
	addAPIFlags(createCmd, &createAPIFlags)
	addRunFlags(createCmd, &createRunFlags, "results.xlsx", 50)
}
