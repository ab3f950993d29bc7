package model

import "strings"

// ValidationScope is the granularity at which ownership of a domain is proven
type ValidationScope string

const (
	// ScopeDomain covers the domain and every hostname under it
	ScopeDomain ValidationScope = "DOMAIN"
	// ScopeMultiHost covers wildcard hostname patterns within the domain
	ScopeMultiHost ValidationScope = "M_HOST"
	// ScopeSingleHost covers one specific hostname
	ScopeSingleHost ValidationScope = "S_HOST"
)

// KnownScopes lists the validation scopes the API documents.
// Unknown values are passed through; the API rejects them itself.
var KnownScopes = []ValidationScope{ScopeDomain, ScopeMultiHost, ScopeSingleHost}

// Target identifies one domain awaiting ownership proof.
// Its identity is the (DomainName, ValidationScope) pair.
type Target struct {
	DomainName      string
	ValidationScope ValidationScope
}

// NewTarget builds a normalized Target from raw spreadsheet or API values.
// The domain is trimmed and lowercased, the scope trimmed and uppercased
// with an empty scope defaulting to DOMAIN. Returns ok=false for a blank
// domain, which callers skip.
func NewTarget(domain, scope string) (Target, bool) {
	d := strings.ToLower(strings.TrimSpace(domain))
	if d == "" {
		return Target{}, false
	}
	s := strings.ToUpper(strings.TrimSpace(scope))
	if s == "" {
		s = string(ScopeDomain)
	}
	return Target{DomainName: d, ValidationScope: ValidationScope(s)}, true
}

// IsKnownScope reports whether the scope is one of the documented values
func (t Target) IsKnownScope() bool {
	for _, s := range KnownScopes {
		if t.ValidationScope == s {
			return true
		}
	}
	return false
}
