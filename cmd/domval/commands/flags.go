package commands

import (
	"time"

	"github.com/spf13/cobra"
)

// APIFlags holds flags for reaching the Domain Validation API
type APIFlags struct {
	EdgercPath       string
	Section          string
	AccountSwitchKey string
}

// addAPIFlags adds the credential flags every API-touching command shares
func addAPIFlags(cmd *cobra.Command, flags *APIFlags) {
	cmd.Flags().StringVarP(&flags.EdgercPath, "edgerc", "e", "", "Path to the .edgerc credentials file (default ~/.edgerc)")
	cmd.Flags().StringVarP(&flags.Section, "section", "s", "default", "Section of the .edgerc file to use")
	cmd.Flags().StringVar(&flags.AccountSwitchKey, "ask", "", "Account switch key to include in API calls")
}

// RunFlags holds flags shared by the batch submission flows
type RunFlags struct {
	Output         string
	Delay          time.Duration
	BatchSize      int
	Limit          int
	DynamoTable    string
	DynamoEndpoint string
}

// addRunFlags adds the batch-flow flags with a per-flow default output
// path and batch size
func addRunFlags(cmd *cobra.Command, flags *RunFlags, defaultOutput string, defaultBatchSize int) {
	cmd.Flags().StringVarP(&flags.Output, "output", "o", defaultOutput, "Output file for results (.xlsx, .csv or .json)")
	cmd.Flags().DurationVar(&flags.Delay, "delay", 0, "Delay between batches to respect API rate limits (e.g. 2s)")
	cmd.Flags().IntVar(&flags.BatchSize, "batch-size", defaultBatchSize, "Number of domains per API request")
	cmd.Flags().IntVar(&flags.Limit, "limit", 0, "Process at most this many domains (0 for all)")
	cmd.Flags().StringVarP(&flags.DynamoTable, "dynamodb-table", "t", "", "DynamoDB table to additionally record outcomes in")
	cmd.Flags().StringVar(&flags.DynamoEndpoint, "dynamodb-endpoint", "", "DynamoDB endpoint URL (optional, uses AWS SDK default if not specified)")
}
