package model

import "testing"

func TestNewTarget_Normalization(t *testing.T) {
	target, ok := NewTarget("  Example.COM ", " domain ")
	if !ok {
		t.Fatal("Expected ok=true for a non-blank domain")
	}
	if target.DomainName != "example.com" {
		t.Errorf("Expected domain example.com, got %q", target.DomainName)
	}
	if target.ValidationScope != ScopeDomain {
		t.Errorf("Expected scope DOMAIN, got %q", target.ValidationScope)
	}
}

func TestNewTarget_DefaultScope(t *testing.T) {
	target, ok := NewTarget("example.com", "")
	if !ok {
		t.Fatal("Expected ok=true")
	}
	if target.ValidationScope != ScopeDomain {
		t.Errorf("Expected empty scope to default to DOMAIN, got %q", target.ValidationScope)
	}
}

func TestNewTarget_BlankDomain(t *testing.T) {
	if _, ok := NewTarget("   ", "DOMAIN"); ok {
		t.Error("Expected ok=false for a blank domain")
	}
	if _, ok := NewTarget("", ""); ok {
		t.Error("Expected ok=false for an empty domain")
	}
}

func TestNewTarget_UnknownScopePassesThrough(t *testing.T) {
	target, ok := NewTarget("example.com", "weird")
	if !ok {
		t.Fatal("Expected ok=true")
	}
	if target.ValidationScope != "WEIRD" {
		t.Errorf("Expected scope WEIRD, got %q", target.ValidationScope)
	}
	if target.IsKnownScope() {
		t.Error("Expected IsKnownScope=false for WEIRD")
	}
}

func TestIsKnownScope(t *testing.T) {
	for _, scope := range []ValidationScope{ScopeDomain, ScopeMultiHost, ScopeSingleHost} {
		target := Target{DomainName: "example.com", ValidationScope: scope}
		if !target.IsKnownScope() {
			t.Errorf("Expected IsKnownScope=true for %q", scope)
		}
	}
}
