package dvapi

import (
	"testing"

	"github.com/JCoe77/akamai-dom-automation/internal/model"
)

func TestLookupToken_SuccessesList(t *testing.T) {
	body := `{"successes":[{"domainName":"a.com","validationChallenge":{"txtRecord":{"name":"_dcv.a.com","value":"tok-1"}}}]}`

	got := LookupToken([]byte(body), "a.com")

	if got.Status != TokenFound {
		t.Fatalf("Expected TokenFound, got %v", got.Status)
	}
	if got.RecordName != "_dcv.a.com" || got.Token != "tok-1" {
		t.Errorf("Unexpected record: name=%q token=%q", got.RecordName, got.Token)
	}
}

func TestLookupToken_ErrorsList(t *testing.T) {
	body := `{"errors":[{"domainName":"a.com","detail":"Domain already exists"}]}`

	got := LookupToken([]byte(body), "a.com")

	if got.Status != TokenAlreadyExists {
		t.Errorf("Expected TokenAlreadyExists, got %v", got.Status)
	}
}

func TestLookupToken_FlatList(t *testing.T) {
	body := `[{"domainName":"b.com","validationChallenge":{"txtRecord":{"name":"_dcv.b.com","value":"tok-2"}}}]`

	got := LookupToken([]byte(body), "b.com")

	if got.Status != TokenFound || got.Token != "tok-2" {
		t.Errorf("Expected tok-2 from flat list, got %+v", got)
	}
}

func TestLookupToken_SingleObject(t *testing.T) {
	body := `{"domainName":"c.com","validationChallenge":{"txtRecord":{"name":"_dcv.c.com","value":"tok-3"}}}`

	got := LookupToken([]byte(body), "c.com")

	if got.Status != TokenFound || got.Token != "tok-3" {
		t.Errorf("Expected tok-3 from single object, got %+v", got)
	}
}

func TestLookupToken_ValidatedWinsOverChallenge(t *testing.T) {
	// An already-validated domain may still carry a stale challenge; the
	// VALIDATED status must win.
	body := `{"domainName":"a.com","domainStatus":"VALIDATED","validationChallenge":{"txtRecord":{"name":"_dcv.a.com","value":"stale"}}}`

	got := LookupToken([]byte(body), "a.com")

	if got.Status != TokenAlreadyValidated {
		t.Errorf("Expected TokenAlreadyValidated, got %v", got.Status)
	}
}

func TestLookupToken_StatusFieldVariants(t *testing.T) {
	for _, body := range []string{
		`{"domainName":"a.com","status":"VALIDATED"}`,
		`{"domainName":"a.com","domainStatus":"VALIDATED"}`,
	} {
		got := LookupToken([]byte(body), "a.com")
		if got.Status != TokenAlreadyValidated {
			t.Errorf("Expected TokenAlreadyValidated for %s, got %v", body, got.Status)
		}
	}
}

func TestLookupToken_InternalServerError(t *testing.T) {
	body := `{"successes":[{"domainName":"a.com","status":"Internal Server Error","detail":"backend exploded"}]}`

	got := LookupToken([]byte(body), "a.com")

	if got.Status != TokenServerError {
		t.Fatalf("Expected TokenServerError, got %v", got.Status)
	}
	if got.Detail != "backend exploded" {
		t.Errorf("Expected the embedded detail, got %q", got.Detail)
	}
}

func TestLookupToken_InternalServerErrorDefaultDetail(t *testing.T) {
	body := `{"domainName":"a.com","status":"Internal Server Error"}`

	got := LookupToken([]byte(body), "a.com")

	if got.Detail != "Unknown Error" {
		t.Errorf("Expected Unknown Error default, got %q", got.Detail)
	}
}

func TestLookupToken_OtherDomainIgnored(t *testing.T) {
	body := `{"successes":[{"domainName":"other.com","validationChallenge":{"txtRecord":{"name":"n","value":"v"}}}]}`

	got := LookupToken([]byte(body), "a.com")

	if got.Status != TokenNotFound {
		t.Errorf("Expected TokenNotFound for a different domain, got %v", got.Status)
	}
}

func TestLookupToken_GarbageBody(t *testing.T) {
	got := LookupToken([]byte("<html></html>"), "a.com")
	if got.Status != TokenNotFound {
		t.Errorf("Expected TokenNotFound for a garbage body, got %v", got.Status)
	}
}

func TestParseStatusLookup_ExactThenNameFallback(t *testing.T) {
	body := `{"domains":[
		{"domainName":"a.com","validationScope":"DOMAIN","domainStatus":"REQUEST_ACCEPTED"},
		{"domainName":"b.com","domainStatus":"VALIDATION_IN_PROGRESS"}
	]}`
	lookup := ParseStatusLookup([]byte(body))

	status, ok := lookup.For(model.Target{DomainName: "a.com", ValidationScope: model.ScopeDomain})
	if !ok || status != "REQUEST_ACCEPTED" {
		t.Errorf("Expected exact match REQUEST_ACCEPTED, got %q ok=%t", status, ok)
	}

	// a.com under a different scope still resolves by name
	status, ok = lookup.For(model.Target{DomainName: "a.com", ValidationScope: model.ScopeSingleHost})
	if !ok || status != "REQUEST_ACCEPTED" {
		t.Errorf("Expected name-only fallback, got %q ok=%t", status, ok)
	}

	status, ok = lookup.For(model.Target{DomainName: "b.com", ValidationScope: model.ScopeDomain})
	if !ok || status != "VALIDATION_IN_PROGRESS" {
		t.Errorf("Expected name-only match for scope-less entry, got %q ok=%t", status, ok)
	}

	if _, ok := lookup.For(model.Target{DomainName: "missing.com", ValidationScope: model.ScopeDomain}); ok {
		t.Error("Expected no match for an absent domain")
	}
}

func TestParseStatusLookup_JunkBody(t *testing.T) {
	lookup := ParseStatusLookup([]byte("not json"))
	if _, ok := lookup.For(model.Target{DomainName: "a.com", ValidationScope: model.ScopeDomain}); ok {
		t.Error("Expected an empty lookup for a junk body")
	}
}
