package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JCoe77/akamai-dom-automation/internal/dvapi"
	"github.com/JCoe77/akamai-dom-automation/internal/model"
	"github.com/JCoe77/akamai-dom-automation/internal/report"
)

var (
	validateAPIFlags APIFlags
	validateRunFlags RunFlags
	validateAll      bool
	validateStatuses []string
)

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Trigger validation checks for pending domains",
	Long: `Ask the API to check the DNS challenge records for a set of domains.

Arguments:
  input-file   Spreadsheet (.xlsx or .csv) with the domains to validate;
               omit it and pass --all to validate every pending domain
               the account can see

With --all the domain list is fetched from the API instead of a file,
filtered to the given --status values. Validation runs asynchronously on
the API side; the results spreadsheet records the status each domain
reported after the trigger.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if validateAll == (len(args) == 1) {
			return &UsageError{fmt.Errorf("pass either an input file or --all")}
		}

		api, err := newAPIClient(&validateAPIFlags)
		if err != nil {
			return err
		}

		var targets []model.Target
		if validateAll {
			targets, err = listTargets(api, validateStatuses)
		} else {
			targets, err = loadTargets(args[0], false)
		}
		if err != nil {
			return err
		}

		return runBatches(api, dvapi.OpValidate, report.FlowValidate, targets, &validateRunFlags)
	},
}

// listTargets fetches the account's domains from the API, filtered by status
func listTargets(api *dvapi.Client, statuses []string) ([]model.Target, error) {
	listed, err := api.ListDomains(context.Background(), statuses)
	if err != nil {
		return nil, fmt.Errorf("listing domains: %w", err)
	}
	if len(listed) == 0 {
		return nil, fmt.Errorf("no domains matched status filter %v", statuses)
	}

	targets := make([]model.Target, 0, len(listed))
	for _, d := range listed {
		if t, ok := d.Target(); ok {
			targets = append(targets, t)
		}
	}
	fmt.Printf("Found %d domain(s) matching %v\n", len(targets), statuses)
	return targets, nil
}

func init() {
	addAPIFlags(validateCmd, &validateAPIFlags)
	addRunFlags(validateCmd, &validateRunFlags, "validation_results.xlsx", 50)
	validateCmd.Flags().BoolVar(&validateAll, "all", false, "Validate every pending domain listed by the API instead of reading a file")
	validateCmd.Flags().StringSliceVar(&validateStatuses, "status", []string{"REQUEST_ACCEPTED", "VALIDATION_IN_PROGRESS"}, "Domain statuses to include with --all")
}
