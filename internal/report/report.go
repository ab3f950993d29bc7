// Package report persists the outcome records of one run. The spreadsheet
// file is the authoritative record; a DynamoDB table can be added for runs
// whose history must outlive the file.
package report

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/JCoe77/akamai-dom-automation/internal/model"
)

// Flow selects the column set a result spreadsheet carries
type Flow string

const (
	FlowCreate   Flow = "create"
	FlowValidate Flow = "validate"
	FlowDelete   Flow = "delete"
)

// Sink persists one run's outcome records
type Sink interface {
	// Store writes all outcomes. Called once per run, including after an
	// interrupted run with whatever accumulated.
	Store(ctx context.Context, outcomes []model.Outcome) error

	// Describe names the destination for user-facing messages
	Describe() string
}

// Config holds configuration for building the sinks of one run
type Config struct {
	// OutputPath is the result spreadsheet (.xlsx, .csv or .json)
	OutputPath string
	Flow       Flow

	// DynamoTable enables the additional DynamoDB sink
	DynamoTable string
	// DynamoEndpoint overrides the endpoint URL, for local tables
	DynamoEndpoint string
}

// NewSinks builds the sinks for one run: always the output file, plus a
// DynamoDB sink when a table is configured
func NewSinks(ctx context.Context, cfg Config) ([]Sink, error) {
	sinks := []Sink{NewFileSink(cfg.OutputPath, cfg.Flow)}

	if cfg.DynamoTable != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		var client *dynamodb.Client
		if cfg.DynamoEndpoint != "" {
			client = dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
				o.BaseEndpoint = &cfg.DynamoEndpoint
			})
			fmt.Printf("Using DynamoDB endpoint: %s\n", cfg.DynamoEndpoint)
		} else {
			client = dynamodb.NewFromConfig(awsCfg)
		}

		sinks = append(sinks, NewDynamoSink(client, cfg.DynamoTable, cfg.Flow))
		fmt.Printf("Also recording outcomes to DynamoDB table: %s\n", cfg.DynamoTable)
	}

	return sinks, nil
}

// Columns returns the header row for a flow's result spreadsheet
func Columns(flow Flow) []string {
	if flow == FlowCreate {
		return []string{"Domain", "Scope", "Status Code", "Result", "Name", "Token", "Error Title", "Error Detail"}
	}
	return []string{"Domain", "Scope", "Status Code", "Result", "Details", "Error Title", "Error Detail"}
}

// Row renders one outcome as a spreadsheet row matching Columns(flow)
func Row(flow Flow, o model.Outcome) []string {
	if flow == FlowCreate {
		return []string{o.DomainName, string(o.ValidationScope), o.StatusCode, string(o.Result), o.Name, o.Token, o.ErrorTitle, o.ErrorDetail}
	}
	return []string{o.DomainName, string(o.ValidationScope), o.StatusCode, string(o.Result), o.Details, o.ErrorTitle, o.ErrorDetail}
}
