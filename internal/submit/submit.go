// Package submit implements the bulk submission routine shared by the
// create, validate and delete flows.
//
// One batch goes out as one HTTP call. A 400 reply is parsed for
// domains[<i>] field references so only the cited members are failed;
// the uncited remainder is resubmitted as a smaller batch. All failure
// modes terminate in per-target outcome records: Submit never returns an
// error and never drops or duplicates a target.
package submit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/JCoe77/akamai-dom-automation/internal/dvapi"
	"github.com/JCoe77/akamai-dom-automation/internal/model"
)

// API is the slice of the Domain Validation client the submitter needs.
// *dvapi.Client satisfies it; tests substitute fakes.
type API interface {
	SubmitBatch(ctx context.Context, op dvapi.Operation, targets []model.Target) (dvapi.Response, error)
	GetDomain(ctx context.Context, domainName string, scope model.ValidationScope) (dvapi.Response, error)
}

// Submitter runs batches against one API client
type Submitter struct {
	api API
	log *slog.Logger
}

// New creates a Submitter. A nil logger falls back to slog.Default.
func New(api API, log *slog.Logger) *Submitter {
	if log == nil {
		log = slog.Default()
	}
	return &Submitter{api: api, log: log}
}

// indexPattern extracts the batch index from error fields shaped like
// domains[2].domainName
var indexPattern = regexp.MustCompile(`^domains\[(\d+)\]`)

// Submit sends the batch and classifies the response into one outcome per
// target. Partial 400 failures are retried via a worklist of shrinking
// sub-batches rather than recursion, so pathological batch sizes cannot
// exhaust the stack. Requests stay strictly sequential: at most one call
// is in flight at any time.
func (s *Submitter) Submit(ctx context.Context, op dvapi.Operation, batch []model.Target) []model.Outcome {
	if len(batch) == 0 {
		return nil
	}

	outcomes := make([]model.Outcome, 0, len(batch))
	pending := [][]model.Target{batch}

	for len(pending) > 0 {
		current := pending[0]
		pending = pending[1:]
		if len(current) == 0 {
			continue
		}

		resp, err := s.api.SubmitBatch(ctx, op, current)
		if err != nil {
			s.log.Warn("batch request failed before a response was received",
				slog.String("op", string(op)), slog.Int("batch_size", len(current)), slog.String("error", err.Error()))
			outcomes = append(outcomes, exceptionOutcomes(current, err)...)
			continue
		}

		switch {
		case isSuccessStatus(resp.StatusCode):
			outcomes = append(outcomes, s.successOutcomes(ctx, op, current, resp)...)

		case resp.StatusCode == http.StatusMultiStatus:
			outcomes = append(outcomes, multiStatusOutcomes(current, resp)...)

		case resp.StatusCode == http.StatusBadRequest:
			failed, retry := s.splitBadRequest(current, resp)
			outcomes = append(outcomes, failed...)
			if len(retry) > 0 {
				s.log.Info("resubmitting members not cited by the 400 response",
					slog.Int("failed", len(failed)), slog.Int("retrying", len(retry)))
				pending = append(pending, retry)
			}

		case resp.StatusCode == http.StatusConflict && op != dvapi.OpDelete:
			// The targets already exist; recover their existing tokens
			// through the detail endpoint instead of failing them.
			for _, t := range current {
				outcomes = append(outcomes, s.tokenViaGet(ctx, t))
			}

		default:
			outcomes = append(outcomes, errorOutcomes(current, resp)...)
		}
	}

	return outcomes
}

func isSuccessStatus(code int) bool {
	switch code {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent:
		return true
	}
	return false
}

// successOutcomes maps a whole-batch success response back onto every
// target's identity, per operation
func (s *Submitter) successOutcomes(ctx context.Context, op dvapi.Operation, targets []model.Target, resp dvapi.Response) []model.Outcome {
	outcomes := make([]model.Outcome, 0, len(targets))

	switch op {
	case dvapi.OpCreate:
		for _, t := range targets {
			outcomes = append(outcomes, s.createOutcome(ctx, t, resp))
		}

	case dvapi.OpValidate:
		lookup := dvapi.ParseStatusLookup(resp.Body)
		for _, t := range targets {
			status, ok := lookup.For(t)
			if !ok {
				status = "Submitted"
			}
			outcomes = append(outcomes, model.Outcome{
				DomainName:      t.DomainName,
				ValidationScope: t.ValidationScope,
				StatusCode:      model.StatusCode(resp.StatusCode),
				Result:          model.ResultSubmitted,
				Details:         "Status: " + status,
			})
		}

	default: // delete
		for _, t := range targets {
			outcomes = append(outcomes, model.Outcome{
				DomainName:      t.DomainName,
				ValidationScope: t.ValidationScope,
				StatusCode:      model.StatusCode(resp.StatusCode),
				Result:          model.ResultSuccess,
				Details:         "Deleted successfully",
			})
		}
	}

	return outcomes
}

// createOutcome extracts one target's challenge token from a create
// response, falling back to the detail GET when the domain already exists
func (s *Submitter) createOutcome(ctx context.Context, t model.Target, resp dvapi.Response) model.Outcome {
	outcome := model.Outcome{
		DomainName:      t.DomainName,
		ValidationScope: t.ValidationScope,
		StatusCode:      model.StatusCode(resp.StatusCode),
	}

	lookup := dvapi.LookupToken(resp.Body, t.DomainName)
	switch lookup.Status {
	case dvapi.TokenFound:
		outcome.Result = model.ResultSuccess
		outcome.Name = lookup.RecordName
		outcome.Token = lookup.Token

	case dvapi.TokenAlreadyValidated:
		outcome.Result = model.ResultSuccess
		outcome.Name = "Already Validated"
		outcome.Token = "Already Validated"

	case dvapi.TokenAlreadyExists:
		return s.tokenViaGet(ctx, t)

	case dvapi.TokenServerError:
		outcome.Result = model.ResultError
		outcome.Name = "Error: " + lookup.Detail
		outcome.Token = outcome.Name
		outcome.ErrorDetail = lookup.Detail

	default:
		// Accepted but no token in the body for this target
		outcome.Result = model.ResultSubmitted
		outcome.Name = "Token not found"
		outcome.Token = "Token not found"
	}

	return outcome
}

// tokenViaGet recovers a domain's existing challenge token through the
// detail endpoint. Used when a create or validate reports the domain
// already exists; the GET result supersedes the batch outcome.
func (s *Submitter) tokenViaGet(ctx context.Context, t model.Target) model.Outcome {
	outcome := model.Outcome{
		DomainName:      t.DomainName,
		ValidationScope: t.ValidationScope,
	}

	resp, err := s.api.GetDomain(ctx, t.DomainName, t.ValidationScope)
	if err != nil {
		outcome.StatusCode = model.StatusException
		outcome.Result = model.ResultException
		outcome.Name = "Exception GET: " + err.Error()
		outcome.Token = outcome.Name
		outcome.ErrorDetail = err.Error()
		return outcome
	}

	outcome.StatusCode = model.StatusCode(resp.StatusCode)
	if resp.StatusCode != http.StatusOK {
		outcome.Result = model.ResultError
		outcome.Name = fmt.Sprintf("Error GET: %d", resp.StatusCode)
		outcome.Token = outcome.Name
		outcome.Details = string(resp.Body)
		return outcome
	}

	lookup := dvapi.LookupToken(resp.Body, t.DomainName)
	switch lookup.Status {
	case dvapi.TokenFound:
		outcome.Result = model.ResultSuccess
		outcome.Name = lookup.RecordName
		outcome.Token = lookup.Token
	case dvapi.TokenAlreadyValidated:
		outcome.Result = model.ResultSuccess
		outcome.Name = "Already Validated"
		outcome.Token = "Already Validated"
	default:
		outcome.Result = model.ResultSubmitted
		outcome.Name = "Token not found"
		outcome.Token = "Token not found"
	}
	return outcome
}

// splitBadRequest partitions the current batch by the indices a 400
// response cites. Cited members become Failed outcomes; the uncited
// remainder is returned for resubmission in original relative order. When
// no in-range index can be extracted the fault cannot be localized and the
// whole batch is failed with the top-level title and detail.
func (s *Submitter) splitBadRequest(current []model.Target, resp dvapi.Response) ([]model.Outcome, []model.Target) {
	var apiErr dvapi.ErrorResponse
	if err := json.Unmarshal(resp.Body, &apiErr); err != nil {
		s.log.Warn("could not parse 400 response body, failing whole batch",
			slog.String("error", err.Error()))
		return failWholeBatch(current, resp.StatusCode, "Invalid Request",
			fmt.Sprintf("unparseable 400 response: %v", err)), nil
	}

	cited := citedIndices(apiErr.Errors, len(current))
	if len(cited) == 0 {
		s.log.Warn("400 response cites no batch member, failing whole batch",
			slog.String("title", apiErr.Title))
		return failWholeBatch(current, resp.StatusCode, apiErr.Title, apiErr.Detail), nil
	}

	var failed []model.Outcome
	var retry []model.Target
	for i, t := range current {
		if !cited[i] {
			retry = append(retry, t)
			continue
		}
		title, detail := detailForIndex(apiErr, i)
		failed = append(failed, model.Outcome{
			DomainName:      t.DomainName,
			ValidationScope: t.ValidationScope,
			StatusCode:      model.StatusCode(resp.StatusCode),
			Result:          model.ResultFailed,
			ErrorTitle:      title,
			ErrorDetail:     detail,
		})
	}
	return failed, retry
}

// citedIndices collects the zero-based batch indices referenced by the
// error entries. Indices outside the current batch are discarded; keeping
// them could leave the retry subset equal to the whole batch and the
// worklist would never shrink.
func citedIndices(errors []dvapi.FieldError, batchSize int) map[int]bool {
	cited := make(map[int]bool)
	for _, fe := range errors {
		m := indexPattern.FindStringSubmatch(fe.Field)
		if m == nil {
			continue
		}
		var idx int
		if _, err := fmt.Sscanf(m[1], "%d", &idx); err != nil {
			continue
		}
		if idx >= 0 && idx < batchSize {
			cited[idx] = true
		}
	}
	return cited
}

// detailForIndex finds the first error entry referencing exactly this
// index, falling back to the top-level detail when none matches. The
// needle includes the closing bracket so index 1 never matches domains[12].
func detailForIndex(apiErr dvapi.ErrorResponse, idx int) (title, detail string) {
	title = "Invalid Request"
	detail = apiErr.Detail

	needle := fmt.Sprintf("domains[%d]", idx)
	for _, fe := range apiErr.Errors {
		if strings.Contains(fe.Field, needle) {
			if fe.Title != "" {
				title = fe.Title
			}
			if fe.Detail != "" {
				detail = fe.Detail
			}
			break
		}
	}
	return title, detail
}

func failWholeBatch(targets []model.Target, statusCode int, title, detail string) []model.Outcome {
	outcomes := make([]model.Outcome, 0, len(targets))
	for _, t := range targets {
		outcomes = append(outcomes, model.Outcome{
			DomainName:      t.DomainName,
			ValidationScope: t.ValidationScope,
			StatusCode:      model.StatusCode(statusCode),
			Result:          model.ResultFailed,
			ErrorTitle:      title,
			ErrorDetail:     detail,
		})
	}
	return outcomes
}

func multiStatusOutcomes(targets []model.Target, resp dvapi.Response) []model.Outcome {
	outcomes := make([]model.Outcome, 0, len(targets))
	for _, t := range targets {
		outcomes = append(outcomes, model.Outcome{
			DomainName:      t.DomainName,
			ValidationScope: t.ValidationScope,
			StatusCode:      model.StatusCode(resp.StatusCode),
			Result:          model.ResultMultiStatus,
			Details:         string(resp.Body),
		})
	}
	return outcomes
}

func errorOutcomes(targets []model.Target, resp dvapi.Response) []model.Outcome {
	outcomes := make([]model.Outcome, 0, len(targets))
	for _, t := range targets {
		outcomes = append(outcomes, model.Outcome{
			DomainName:      t.DomainName,
			ValidationScope: t.ValidationScope,
			StatusCode:      model.StatusCode(resp.StatusCode),
			Result:          model.ResultError,
			Details:         string(resp.Body),
		})
	}
	return outcomes
}

func exceptionOutcomes(targets []model.Target, err error) []model.Outcome {
	outcomes := make([]model.Outcome, 0, len(targets))
	for _, t := range targets {
		outcomes = append(outcomes, model.Outcome{
			DomainName:      t.DomainName,
			ValidationScope: t.ValidationScope,
			StatusCode:      model.StatusException,
			Result:          model.ResultException,
			ErrorDetail:     err.Error(),
		})
	}
	return outcomes
}
