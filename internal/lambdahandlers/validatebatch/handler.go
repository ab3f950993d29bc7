// Package validatebatch implements the scheduled Lambda that triggers
// validation checks for every pending domain and records the outcomes in
// DynamoDB.
package validatebatch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/akamai/AkamaiOPEN-edgegrid-golang/v10/pkg/edgegrid"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/JCoe77/akamai-dom-automation/internal/dvapi"
	"github.com/JCoe77/akamai-dom-automation/internal/logger"
	"github.com/JCoe77/akamai-dom-automation/internal/model"
	"github.com/JCoe77/akamai-dom-automation/internal/report"
	"github.com/JCoe77/akamai-dom-automation/internal/submit"
)

const defaultBatchSize = 50

// Handler holds the dependencies for the validatebatch Lambda handler
type Handler struct {
	log              *slog.Logger
	dynamoTable      string
	batchSize        int
	statuses         []string
	accountSwitchKey string
}

// NewHandler creates a new validatebatch handler from environment variables
func NewHandler() (*Handler, error) {
	// Initialize logger with executable name for filtering
	log := logger.NewDefaultLogger()
	log = logger.WithExecutable(log, "validatebatch")
	logger.SetDefault(log)

	dynamoTable := os.Getenv("DYNAMODB_TABLE")
	if dynamoTable == "" {
		return nil, fmt.Errorf("DYNAMODB_TABLE environment variable is required")
	}
	log.Info("Using DynamoDB table", slog.String("table", dynamoTable))

	batchSize := defaultBatchSize
	if v := os.Getenv("BATCH_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid BATCH_SIZE %q", v)
		}
		batchSize = n
	}

	statuses := []string{"REQUEST_ACCEPTED", "VALIDATION_IN_PROGRESS"}
	if v := os.Getenv("STATUS_FILTER"); v != "" {
		statuses = strings.Split(v, ",")
		for i := range statuses {
			statuses[i] = strings.TrimSpace(statuses[i])
		}
	}
	log.Info("Using status filter", slog.Any("statuses", statuses))

	return &Handler{
		log:              log,
		dynamoTable:      dynamoTable,
		batchSize:        batchSize,
		statuses:         statuses,
		accountSwitchKey: os.Getenv("ACCOUNT_SWITCH_KEY"),
	}, nil
}

// Handle processes scheduled Lambda events, validating every pending domain
func (h *Handler) Handle(ctx context.Context, event map[string]interface{}) error {
	requestLogger := logger.WithLambda(h.log,
		os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		os.Getenv("AWS_LAMBDA_FUNCTION_VERSION"))

	requestLogger.Info("Scheduled Lambda triggered", slog.Any("event", event))

	// API credentials come from the AKAMAI_* environment variables
	egCfg, err := edgegrid.New(edgegrid.WithEnv(true))
	if err != nil {
		requestLogger.Error("Failed to load API credentials", slog.String("error", err.Error()))
		return fmt.Errorf("failed to load API credentials: %w", err)
	}

	switchKey := h.accountSwitchKey
	if switchKey == "" {
		switchKey = egCfg.AccountKey
	}
	api := dvapi.NewClient(egCfg.Host, egCfg,
		dvapi.WithAccountSwitchKey(switchKey),
		dvapi.WithLogger(requestLogger),
	)

	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		requestLogger.Error("Failed to load AWS config", slog.String("error", err.Error()))
		return fmt.Errorf("failed to load AWS config: %w", err)
	}
	dynamoClient := dynamodb.NewFromConfig(awsCfg)
	sink := report.NewDynamoSink(dynamoClient, h.dynamoTable, report.FlowValidate)

	listed, err := api.ListDomains(ctx, h.statuses)
	if err != nil {
		requestLogger.Error("Failed to list pending domains", slog.String("error", err.Error()))
		return fmt.Errorf("failed to list pending domains: %w", err)
	}
	if len(listed) == 0 {
		requestLogger.Info("No pending domains to validate")
		return nil
	}
	requestLogger.Info("Validating pending domains", slog.Int("count", len(listed)))

	targets := make([]model.Target, 0, len(listed))
	for _, d := range listed {
		if t, ok := d.Target(); ok {
			targets = append(targets, t)
		}
	}

	submitter := submit.New(api, requestLogger)
	var outcomes []model.Outcome
	for i := 0; i < len(targets); i += h.batchSize {
		end := i + h.batchSize
		if end > len(targets) {
			end = len(targets)
		}
		outcomes = append(outcomes, submitter.Submit(ctx, dvapi.OpValidate, targets[i:end])...)
	}

	if err := sink.Store(ctx, outcomes); err != nil {
		requestLogger.Error("Failed to store outcomes", slog.String("error", err.Error()))
		return fmt.Errorf("failed to store outcomes: %w", err)
	}

	counts := make(map[model.Result]int)
	for _, o := range outcomes {
		counts[o.Result]++
	}
	requestLogger.Info("Validation batch completed",
		slog.Int("domains", len(outcomes)),
		slog.Int("submitted", counts[model.ResultSubmitted]),
		slog.Int("failed", counts[model.ResultFailed]),
		slog.Int("errors", counts[model.ResultError]+counts[model.ResultException]))

	return nil
}
