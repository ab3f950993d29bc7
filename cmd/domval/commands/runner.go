package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/time/rate"

	"github.com/JCoe77/akamai-dom-automation/internal/dvapi"
	"github.com/JCoe77/akamai-dom-automation/internal/logger"
	"github.com/JCoe77/akamai-dom-automation/internal/model"
	"github.com/JCoe77/akamai-dom-automation/internal/report"
	"github.com/JCoe77/akamai-dom-automation/internal/sheet"
	"github.com/JCoe77/akamai-dom-automation/internal/submit"
)

// runBatches submits targets through the API in batches, pacing between
// calls and writing every accumulated outcome even when interrupted
func runBatches(api *dvapi.Client, op dvapi.Operation, flow report.Flow, targets []model.Target, flags *RunFlags) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sinks, err := report.NewSinks(ctx, report.Config{
		OutputPath:     flags.Output,
		Flow:           flow,
		DynamoTable:    flags.DynamoTable,
		DynamoEndpoint: flags.DynamoEndpoint,
	})
	if err != nil {
		return err
	}

	if flags.Limit > 0 && len(targets) > flags.Limit {
		targets = targets[:flags.Limit]
		fmt.Printf("Limiting run to the first %d domain(s)\n", flags.Limit)
	}

	batchSize := flags.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}

	// Burst of one so each batch waits its full interval; the first
	// one goes immediately
	limiter := rate.NewLimiter(rate.Inf, 1)
	if flags.Delay > 0 {
		limiter = rate.NewLimiter(rate.Every(flags.Delay), 1)
	}

	submitter := submit.New(api, logger.NewDefaultLogger())

	var outcomes []model.Outcome
	interrupted := false
	total := (len(targets) + batchSize - 1) / batchSize
	for i := 0; i < len(targets); i += batchSize {
		if err := limiter.Wait(ctx); err != nil {
			interrupted = true
			break
		}

		end := i + batchSize
		if end > len(targets) {
			end = len(targets)
		}
		batch := targets[i:end]

		fmt.Printf("Submitting batch %d/%d (%d domain(s))...\n", i/batchSize+1, total, len(batch))
		outcomes = append(outcomes, submitter.Submit(ctx, op, batch)...)

		if ctx.Err() != nil {
			interrupted = true
			break
		}
	}

	if interrupted {
		fmt.Println("Interrupted; saving accumulated results...")
	}

	if len(outcomes) == 0 {
		fmt.Println("No results to write.")
		return nil
	}

	printSummary(outcomes)

	// Results must land even after an interrupt
	flushCtx := context.WithoutCancel(ctx)
	for _, sink := range sinks {
		if err := sink.Store(flushCtx, outcomes); err != nil {
			return fmt.Errorf("storing results to %s: %w", sink.Describe(), err)
		}
		fmt.Printf("Results written to %s\n", sink.Describe())
	}

	if interrupted {
		return ExitWithCode(130, fmt.Errorf("interrupted after %d of %d domain(s)", len(outcomes), len(targets)))
	}
	return nil
}

func printSummary(outcomes []model.Outcome) {
	counts := make(map[model.Result]int)
	for _, o := range outcomes {
		counts[o.Result]++
	}
	fmt.Printf("Processed %d domain(s):\n", len(outcomes))
	for _, r := range []model.Result{
		model.ResultSuccess,
		model.ResultSubmitted,
		model.ResultMultiStatus,
		model.ResultFailed,
		model.ResultError,
		model.ResultException,
	} {
		if counts[r] > 0 {
			fmt.Printf("  %s: %d\n", r, counts[r])
		}
	}
}

// loadTargets reads an input spreadsheet and reports which columns were used
func loadTargets(path string, requireScope bool) ([]model.Target, error) {
	rep, err := sheet.ReadTargets(path, sheet.ReadOptions{RequireScope: requireScope})
	if err != nil {
		return nil, err
	}

	if rep.DomainGuessed {
		fmt.Printf("No domain column header found; using first column %q\n", rep.DomainColumn)
	} else {
		fmt.Printf("Using domain column %q\n", rep.DomainColumn)
	}
	if rep.ScopeDefaulted {
		fmt.Printf("No validation scope column found; defaulting every row to %s\n", model.ScopeDomain)
	} else if rep.ScopeColumn != "" {
		fmt.Printf("Using validation scope column %q\n", rep.ScopeColumn)
	}
	if rep.Skipped > 0 {
		fmt.Printf("Skipped %d row(s) with a blank domain\n", rep.Skipped)
	}

	if len(rep.Targets) == 0 {
		return nil, fmt.Errorf("no domains found in %s", path)
	}
	fmt.Printf("Loaded %d domain(s) from %s\n", len(rep.Targets), path)
	return rep.Targets, nil
}
