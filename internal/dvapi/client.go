// Package dvapi is a client for the Akamai Domain Validation v1 API.
//
// It covers the bulk create/validate/delete endpoints, the per-domain
// detail lookup, and the paginated domain listing. Requests are signed
// with EdgeGrid authentication supplied by the caller.
package dvapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/JCoe77/akamai-dom-automation/internal/model"
)

const (
	domainsPath     = "/domain-validation/v1/domains"
	validateNowPath = domainsPath + "/validate-now"

	// listPageSize is the page size for the domain listing; large to
	// minimize the number of round trips on big accounts
	listPageSize = 500
)

// Signer applies EdgeGrid authentication to an outgoing request.
// *edgegrid.Config satisfies this interface.
type Signer interface {
	SignRequest(r *http.Request)
}

// Client talks to the Domain Validation API for one account host
type Client struct {
	httpClient       *http.Client
	signer           Signer
	baseURL          string
	accountSwitchKey string
	log              *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithAccountSwitchKey adds the accountSwitchKey query parameter to every
// request, for credentials that manage multiple accounts
func WithAccountSwitchKey(key string) Option {
	return func(c *Client) { c.accountSwitchKey = key }
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a client for the given account host. The host is the
// bare hostname from the .edgerc section; a full URL is also accepted.
func NewClient(host string, signer Signer, opts ...Option) *Client {
	baseURL := host
	if !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	}
	c := &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		signer:     signer,
		baseURL:    strings.TrimRight(baseURL, "/"),
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// batchDomain is one member of a bulk request body
type batchDomain struct {
	DomainName       string                `json:"domainName"`
	ValidationScope  model.ValidationScope `json:"validationScope"`
	ValidationMethod string                `json:"validationMethod,omitempty"`
}

type batchRequest struct {
	Domains []batchDomain `json:"domains"`
}

// SubmitBatch sends one bulk request covering every target in the batch.
// The request body enumerates the targets in order, so error responses can
// cite members by index. The returned Response is unclassified; an error is
// returned only for transport-level failures.
func (c *Client) SubmitBatch(ctx context.Context, op Operation, targets []model.Target) (Response, error) {
	body := batchRequest{Domains: make([]batchDomain, 0, len(targets))}
	for _, t := range targets {
		d := batchDomain{DomainName: t.DomainName, ValidationScope: t.ValidationScope}
		if op == OpValidate {
			d.ValidationMethod = "DNS_TXT"
		}
		body.Domains = append(body.Domains, d)
	}

	method := http.MethodPost
	path := domainsPath
	switch op {
	case OpValidate:
		path = validateNowPath
	case OpDelete:
		method = http.MethodDelete
	}

	return c.do(ctx, method, path, nil, body)
}

// GetDomain fetches the current detail for one domain. The API requires the
// validationScope query parameter to disambiguate identical domain names.
func (c *Client) GetDomain(ctx context.Context, domainName string, scope model.ValidationScope) (Response, error) {
	query := url.Values{"validationScope": []string{string(scope)}}
	return c.do(ctx, http.MethodGet, domainsPath+"/"+url.PathEscape(domainName), query, nil)
}

// ListDomains pages through the account's domains, keeping only those whose
// domainStatus is in the allow-list (all statuses if the list is empty).
// Paging stops at the first short page. A non-200 page stops the walk and
// returns what was collected so far along with the error, so partial
// listings remain usable.
func (c *Client) ListDomains(ctx context.Context, statuses []string) ([]ListedDomain, error) {
	allowed := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		allowed[strings.ToUpper(strings.TrimSpace(s))] = true
	}

	var collected []ListedDomain
	for page := 1; ; page++ {
		query := url.Values{
			"page":     []string{strconv.Itoa(page)},
			"pageSize": []string{strconv.Itoa(listPageSize)},
		}
		resp, err := c.do(ctx, http.MethodGet, domainsPath, query, nil)
		if err != nil {
			return collected, fmt.Errorf("fetching domain listing page %d: %w", page, err)
		}
		if resp.StatusCode != http.StatusOK {
			return collected, fmt.Errorf("domain listing page %d returned status %d: %s", page, resp.StatusCode, string(resp.Body))
		}

		var envelope struct {
			Domains []ListedDomain `json:"domains"`
		}
		if err := json.Unmarshal(resp.Body, &envelope); err != nil {
			return collected, fmt.Errorf("parsing domain listing page %d: %w", page, err)
		}
		if len(envelope.Domains) == 0 {
			break
		}

		for _, d := range envelope.Domains {
			if len(allowed) == 0 || allowed[d.DomainStatus] {
				collected = append(collected, d)
			}
		}

		if len(envelope.Domains) < listPageSize {
			break
		}
	}
	return collected, nil
}

// do builds, signs and executes one request, returning the full body
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (Response, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return Response{}, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	if query == nil {
		query = url.Values{}
	}
	if c.accountSwitchKey != "" {
		query.Set("accountSwitchKey", c.accountSwitchKey)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return Response{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.signer != nil {
		c.signer.SignRequest(req)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("reading response body: %w", err)
	}

	c.log.Debug("API request completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	return Response{StatusCode: resp.StatusCode, Body: raw}, nil
}
