package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JCoe77/akamai-dom-automation/internal/dnscheck"
	"github.com/JCoe77/akamai-dom-automation/internal/sheet"
)

var verifyResolverAddr string

var verifyCmd = &cobra.Command{
	Use:   "verify <results-file>",
	Short: "Verify DNS challenge records have been published",
	Long: `Check that the TXT records from a create run are live in DNS.

Arguments:
  results-file   Results spreadsheet from a create run, containing the
                 record name and token columns

For each challenge row the record name is queried for TXT records; a
record containing the exact token counts as published. Rows whose
domain needed no record (already validated, errors) are skipped. Exits
nonzero if any record is missing, so this can gate a validate run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		challenges, err := sheet.ReadChallenges(args[0])
		if err != nil {
			return err
		}
		if len(challenges) == 0 {
			fmt.Println("No challenge records to verify.")
			return nil
		}

		service := dnscheck.NewService()
		if verifyResolverAddr != "" {
			service = dnscheck.NewServiceWithResolver(dnscheck.NewCustomResolver(verifyResolverAddr))
		}

		missing := 0
		for _, c := range challenges {
			found, err := service.Check(c.RecordName, c.Token)
			switch {
			case err != nil && errors.Is(err, dnscheck.ErrNoRecords):
				fmt.Printf("MISSING  %s (no TXT records at %s)\n", c.Domain, c.RecordName)
				missing++
			case err != nil:
				fmt.Printf("ERROR    %s (%v)\n", c.Domain, err)
				missing++
			case !found:
				fmt.Printf("WRONG    %s (TXT records exist at %s but none carries the token)\n", c.Domain, c.RecordName)
				missing++
			default:
				fmt.Printf("OK       %s\n", c.Domain)
			}
		}

		fmt.Printf("Verified %d record(s), %d not yet published\n", len(challenges), missing)
		if missing > 0 {
			return ExitWithCode(3, fmt.Errorf("%d challenge record(s) not yet published", missing))
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringVarP(&verifyResolverAddr, "dns-server", "r", "", "DNS resolver address (host:port) instead of the system resolver")
}
