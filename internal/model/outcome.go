package model

import "strconv"

// Result classifies how one target fared in one terminal submission attempt
type Result string

const (
	// ResultSuccess means the operation was confirmed by the API
	ResultSuccess Result = "Success"
	// ResultSubmitted means the request was accepted but the final
	// outcome was not independently confirmed
	ResultSubmitted Result = "Submitted"
	// ResultMultiStatus means the API answered 207 without per-item
	// correlation; the raw payload is carried in Details
	ResultMultiStatus Result = "Multi-Status"
	// ResultFailed means the server rejected this specific target for a
	// localized, known cause
	ResultFailed Result = "Failed"
	// ResultError means the server rejected the request for a reason not
	// attributable to a specific target
	ResultError Result = "Error"
	// ResultException means a transport or parsing failure prevented any
	// server response from being recorded
	ResultException Result = "Exception"
)

// StatusException is recorded in the status-code column when no HTTP
// response was received at all
const StatusException = "Exception"

// StatusCode renders a numeric HTTP status for the status-code column
func StatusCode(code int) string {
	return strconv.Itoa(code)
}

// Outcome is the per-target record of one terminal submission attempt.
// Exactly one is produced per input target; outcomes are never mutated
// after creation.
type Outcome struct {
	DomainName      string
	ValidationScope ValidationScope
	// StatusCode is the numeric HTTP status, or StatusException
	StatusCode string
	Result     Result

	// Name and Token carry the DNS challenge record for the create flow
	Name  string
	Token string

	Details     string
	ErrorTitle  string
	ErrorDetail string
}

// Identity returns the target identity this outcome covers
func (o Outcome) Identity() Target {
	return Target{DomainName: o.DomainName, ValidationScope: o.ValidationScope}
}
