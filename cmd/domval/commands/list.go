package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JCoe77/akamai-dom-automation/internal/dvapi"
	"github.com/JCoe77/akamai-dom-automation/internal/sheet"
)

var (
	listAPIFlags APIFlags
	listStatuses []string
	listOutput   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the account's domain validation entries",
	Long: `Fetch every domain validation entry visible to the account and print
it, optionally filtered by status and saved to a spreadsheet.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIClient(&listAPIFlags)
		if err != nil {
			return err
		}

		domains, err := api.ListDomains(context.Background(), listStatuses)
		if err != nil {
			// A paging error can still leave usable partial results
			if len(domains) == 0 {
				return fmt.Errorf("listing domains: %w", err)
			}
			fmt.Printf("Warning: listing stopped early: %v\n", err)
		}
		if len(domains) == 0 {
			fmt.Println("No domains found.")
			return nil
		}

		fmt.Printf("%-50s %-10s %s\n", "DOMAIN", "SCOPE", "STATUS")
		for _, d := range domains {
			fmt.Printf("%-50s %-10s %s\n", d.DomainName, d.ValidationScope, d.DomainStatus)
		}
		fmt.Printf("%d domain(s)\n", len(domains))

		if listOutput != "" {
			if err := writeListing(listOutput, domains); err != nil {
				return fmt.Errorf("writing %s: %w", listOutput, err)
			}
			fmt.Printf("Listing written to %s\n", listOutput)
		}

		return nil
	},
}

// writeListing saves the listing as JSON or as a spreadsheet, by extension
func writeListing(path string, domains []dvapi.ListedDomain) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := json.MarshalIndent(domains, "", "  ")
		if err != nil {
			return err
		}
		return os.WriteFile(path, data, 0644)
	}

	rows := make([][]string, 0, len(domains))
	for _, d := range domains {
		rows = append(rows, []string{d.DomainName, d.ValidationScope, d.DomainStatus})
	}
	return sheet.WriteRows(path, []string{"Domain", "Validation Scope", "Status"}, rows)
}

func init() {
	addAPIFlags(listCmd, &listAPIFlags)
	listCmd.Flags().StringSliceVar(&listStatuses, "status", nil, "Only include domains with these statuses")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "", "Also write the listing to a file (.xlsx, .csv or .json)")
}
