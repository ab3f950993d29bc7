package dvapi

import (
	"encoding/json"
	"strings"

	"github.com/JCoe77/akamai-dom-automation/internal/model"
)

// TokenStatus classifies what a response body revealed about one domain's
// challenge token
type TokenStatus int

const (
	// TokenNotFound means no shape carried anything for the domain
	TokenNotFound TokenStatus = iota
	// TokenFound means a challenge TXT record name and value were extracted
	TokenFound
	// TokenAlreadyValidated means the domain's status is already VALIDATED
	TokenAlreadyValidated
	// TokenAlreadyExists means the API reported the domain already exists;
	// the existing token must be recovered via the detail GET
	TokenAlreadyExists
	// TokenServerError means the API embedded an Internal Server Error
	// status for the domain
	TokenServerError
)

// TokenLookup is the outcome of probing a response body for one domain
type TokenLookup struct {
	RecordName string
	Token      string
	Status     TokenStatus
	Detail     string
}

// shapeMatcher extracts the candidate per-domain items one envelope shape
// carries, returning nil when the body is not of that shape
type shapeMatcher func(body []byte) []domainResult

// shapeMatchers is the ordered chain of envelope shapes the API has been
// observed to answer with: a successes list, an errors list, a bare
// top-level list, and a single object (detail GETs).
var shapeMatchers = []shapeMatcher{
	matchSuccessesList,
	matchErrorsList,
	matchFlatList,
	matchSingleObject,
}

// LookupToken probes a response body for the challenge token of one domain,
// trying each known envelope shape in order. The first item that matches
// the domain and yields a definite status wins.
func LookupToken(body []byte, domainName string) TokenLookup {
	for _, match := range shapeMatchers {
		for _, item := range match(body) {
			if result, ok := probeItem(item, domainName); ok {
				return result
			}
		}
	}
	return TokenLookup{Status: TokenNotFound}
}

// probeItem inspects one per-domain item. The VALIDATED check comes before
// the challenge extraction: an already-validated domain may still carry a
// stale challenge record.
func probeItem(item domainResult, domainName string) (TokenLookup, bool) {
	if item.DomainName != domainName {
		return TokenLookup{}, false
	}

	if item.Status == "VALIDATED" || item.DomainStatus == "VALIDATED" {
		return TokenLookup{Status: TokenAlreadyValidated}, true
	}

	if txt := item.ValidationChallenge.TXTRecord; txt.Value != "" {
		return TokenLookup{
			RecordName: txt.Name,
			Token:      txt.Value,
			Status:     TokenFound,
		}, true
	}

	if item.Status == "Internal Server Error" {
		detail := item.Detail
		if detail == "" {
			detail = "Unknown Error"
		}
		return TokenLookup{Status: TokenServerError, Detail: detail}, true
	}

	if strings.Contains(item.Detail, "Domain already exists") {
		return TokenLookup{Status: TokenAlreadyExists, Detail: item.Detail}, true
	}

	return TokenLookup{}, false
}

func matchSuccessesList(body []byte) []domainResult {
	var envelope struct {
		Successes []domainResult `json:"successes"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}
	return envelope.Successes
}

func matchErrorsList(body []byte) []domainResult {
	var envelope struct {
		Errors []domainResult `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}
	return envelope.Errors
}

func matchFlatList(body []byte) []domainResult {
	var items []domainResult
	if err := json.Unmarshal(body, &items); err != nil {
		return nil
	}
	return items
}

func matchSingleObject(body []byte) []domainResult {
	var item domainResult
	if err := json.Unmarshal(body, &item); err != nil {
		return nil
	}
	if item.DomainName == "" {
		return nil
	}
	return []domainResult{item}
}

// StatusLookup maps submitted targets to the per-domain status the API
// echoed back in a bulk validate response
type StatusLookup struct {
	byIdentity map[model.Target]string
	byName     map[string]string
}

// ParseStatusLookup builds a StatusLookup from a bulk response body.
// Entries are indexed by full (domainName, validationScope) identity and,
// as a fallback, by domain name alone, since the API does not always echo
// the scope. A body that does not parse yields an empty lookup.
func ParseStatusLookup(body []byte) StatusLookup {
	lookup := StatusLookup{
		byIdentity: make(map[model.Target]string),
		byName:     make(map[string]string),
	}

	var envelope struct {
		Domains []ListedDomain `json:"domains"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return lookup
	}

	for _, d := range envelope.Domains {
		if d.DomainName == "" {
			continue
		}
		status := d.DomainStatus
		if status == "" {
			status = "Submitted"
		}
		if d.ValidationScope != "" {
			identity := model.Target{
				DomainName:      d.DomainName,
				ValidationScope: model.ValidationScope(d.ValidationScope),
			}
			lookup.byIdentity[identity] = status
		}
		if _, seen := lookup.byName[d.DomainName]; !seen {
			lookup.byName[d.DomainName] = status
		}
	}
	return lookup
}

// For returns the status for a target, preferring the exact identity match
// and falling back to the domain-name-only match
func (l StatusLookup) For(t model.Target) (string, bool) {
	if status, ok := l.byIdentity[t]; ok {
		return status, true
	}
	status, ok := l.byName[t.DomainName]
	return status, ok
}
