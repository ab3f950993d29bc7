package commands

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "domval",
	Short: "Domval drives domain ownership validation through the Akamai API",
	Long: `A command-line tool for bulk domain ownership validation.

It reads domain lists from spreadsheets, submits create, validate and
delete requests in batches against the Akamai Domain Validation API, and
writes per-domain results back to a spreadsheet. Batches that fail with a
400 are bisected by the error indices the API reports, so one bad domain
never sinks its whole batch.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(verifyCmd)
}
