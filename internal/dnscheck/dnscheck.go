// Package dnscheck verifies that domain validation challenge tokens are
// published in DNS before validation is triggered, so a validate run does
// not burn API calls on records that were never created.
package dnscheck

import (
	"context"
	"errors"
	"net"
	"time"
)

// ErrNoRecords is returned when the challenge record name has no TXT
// records at all
var ErrNoRecords = errors.New("no TXT records found")

// Resolver is an interface for DNS lookups, allowing dependency injection
// for testing with mock implementations
type Resolver interface {
	// LookupTXT returns the TXT records for the given name
	LookupTXT(name string) ([]string, error)
}

// DefaultResolver wraps the standard library's net package
type DefaultResolver struct{}

// LookupTXT implements Resolver.LookupTXT using net.LookupTXT
func (r *DefaultResolver) LookupTXT(name string) ([]string, error) {
	return net.LookupTXT(name)
}

// CustomResolver uses a specific DNS server with a timeout and no retries
type CustomResolver struct {
	server string
}

// NewCustomResolver creates a resolver that uses the specified DNS server.
// The server should be in the format "host:port" (e.g. "1.1.1.1:53").
func NewCustomResolver(server string) *CustomResolver {
	return &CustomResolver{server: server}
}

// LookupTXT implements Resolver.LookupTXT using a custom DNS server
func (r *CustomResolver) LookupTXT(name string) ([]string, error) {
	resolver := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
			d := net.Dialer{
				Timeout: 2 * time.Second,
			}
			return d.Dial("udp", r.server)
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return resolver.LookupTXT(ctx, name)
}

// Service checks published challenge records
type Service struct {
	resolver Resolver
}

// NewService creates a check service with the default resolver
func NewService() *Service {
	return &Service{resolver: &DefaultResolver{}}
}

// NewServiceWithResolver creates a check service with a custom resolver.
// This is useful for testing with mock resolvers.
func NewServiceWithResolver(resolver Resolver) *Service {
	return &Service{resolver: resolver}
}

// Check looks up the TXT records at recordName and reports whether the
// expected token is among them. A name that does not resolve or resolves
// with no TXT records yields ErrNoRecords; other lookup failures are
// returned as-is.
func (s *Service) Check(recordName, expectedToken string) (bool, error) {
	records, err := s.resolver.LookupTXT(recordName)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return false, ErrNoRecords
		}
		return false, err
	}
	if len(records) == 0 {
		return false, ErrNoRecords
	}

	for _, record := range records {
		if record == expectedToken {
			return true, nil
		}
	}
	return false, nil
}
