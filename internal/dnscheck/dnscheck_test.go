package dnscheck

import (
	"errors"
	"net"
	"testing"
)

// mockResolver returns canned TXT records per name
type mockResolver struct {
	records map[string][]string
	err     error
}

func (m *mockResolver) LookupTXT(name string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.records[name], nil
}

func TestCheck_TokenPresent(t *testing.T) {
	service := NewServiceWithResolver(&mockResolver{
		records: map[string][]string{
			"_dcv.example.com": {"other-record", "expected-token"},
		},
	})

	found, err := service.Check("_dcv.example.com", "expected-token")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !found {
		t.Error("Expected found=true when the token is published")
	}
}

func TestCheck_TokenMissing(t *testing.T) {
	service := NewServiceWithResolver(&mockResolver{
		records: map[string][]string{
			"_dcv.example.com": {"some-other-value"},
		},
	})

	found, err := service.Check("_dcv.example.com", "expected-token")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if found {
		t.Error("Expected found=false when only other records exist")
	}
}

func TestCheck_NoRecords(t *testing.T) {
	service := NewServiceWithResolver(&mockResolver{records: map[string][]string{}})

	found, err := service.Check("_dcv.missing.com", "expected-token")
	if !errors.Is(err, ErrNoRecords) {
		t.Errorf("Expected ErrNoRecords, got: %v", err)
	}
	if found {
		t.Error("Expected found=false")
	}
}

func TestCheck_NXDomainIsNoRecords(t *testing.T) {
	service := NewServiceWithResolver(&mockResolver{
		err: &net.DNSError{Err: "no such host", Name: "_dcv.missing.com", IsNotFound: true},
	})

	_, err := service.Check("_dcv.missing.com", "expected-token")
	if !errors.Is(err, ErrNoRecords) {
		t.Errorf("Expected ErrNoRecords for NXDOMAIN, got: %v", err)
	}
}

func TestCheck_OtherLookupErrorPassesThrough(t *testing.T) {
	lookupErr := errors.New("server misbehaving")
	service := NewServiceWithResolver(&mockResolver{err: lookupErr})

	_, err := service.Check("_dcv.example.com", "expected-token")
	if !errors.Is(err, lookupErr) {
		t.Errorf("Expected the lookup error to pass through, got: %v", err)
	}
}
