// Package figi provides the external identifier-lookup collaborator,
// backed by the OpenFIGI v3 mapping API. Lookups are read-only
// enrichment used to pre-populate the security entry form; a failure
// here is non-fatal and degrades to manual entry.
package figi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

const (
	defaultBaseURL = "https://api.openfigi.com/v3/mapping"
	apiKeyHeader   = "X-OPENFIGI-APIKEY"
)

// isinPattern matches a 12-character ISIN: two-letter country prefix,
// nine alphanumeric characters, one check digit.
var isinPattern = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// mappingJob is a single OpenFIGI mapping request entry.
type mappingJob struct {
	IDType   string `json:"idType"`
	IDValue  string `json:"idValue"`
	ExchCode string `json:"exchCode,omitempty"`
}

// mappingResult is a single OpenFIGI mapping response entry.
type mappingResult struct {
	Data  []Match `json:"data"`
	Error string  `json:"error"`
}

// Match is one candidate listing returned by OpenFIGI. A ticker may
// resolve to several listings across venues; callers get all of them,
// not an arbitrary first match.
type Match struct {
	FIGI           string `json:"figi"`
	Name           string `json:"name"`
	Ticker         string `json:"ticker"`
	ExchCode       string `json:"exchCode"`
	SecurityType   string `json:"securityType"`
	MarketSector   string `json:"marketSector"`
	CompositeFIGI  string `json:"compositeFIGI"`
	ShareClassFIGI string `json:"shareClassFIGI"`
}

// SecurityAttributes is the normalized attribute bag for a successful
// lookup: the best match's fields plus every candidate listing.
type SecurityAttributes struct {
	Name         string  `json:"name"`
	Ticker       string  `json:"ticker"`
	ISIN         string  `json:"isin,omitempty"`
	FIGI         string  `json:"figi"`
	Exchange     string  `json:"exchange"`
	SecurityType string  `json:"security_type"`
	MarketSector string  `json:"market_sector"`
	AllMatches   []Match `json:"all_matches"`
}

// LookupError is a typed failure from the lookup collaborator carrying a
// human-readable reason. RateLimited distinguishes HTTP 429, where the
// caller should simply try again later.
type LookupError struct {
	Reason      string
	RateLimited bool
}

// Error implements the error interface.
func (e *LookupError) Error() string { return e.Reason }

// Client calls the OpenFIGI mapping API. The injected http.Client's
// timeout bounds every lookup so a slow provider cannot hang the
// interactive session.
type Client struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
	apiKey     string
}

// NewClient creates an OpenFIGI client. apiKey may be empty; OpenFIGI
// accepts anonymous requests at a lower rate limit.
func NewClient(httpClient *http.Client, apiKey string) *Client {
	return &Client{httpClient: httpClient, baseURL: defaultBaseURL, apiKey: apiKey}
}

// NewClientWithBaseURL creates a client against a custom endpoint, for tests.
func NewClientWithBaseURL(httpClient *http.Client, baseURL, apiKey string) *Client {
	return &Client{httpClient: httpClient, baseURL: baseURL, apiKey: apiKey}
}

// IsISIN reports whether the identifier has ISIN shape. Anything else
// is treated as a ticker.
func IsISIN(identifier string) bool {
	return isinPattern.MatchString(identifier)
}

// Lookup resolves an ISIN or ticker to security attributes. It returns
// a *LookupError when the provider errors or finds no match.
func (c *Client) Lookup(ctx context.Context, identifier string) (*SecurityAttributes, error) {
	identifier = strings.ToUpper(strings.TrimSpace(identifier))
	if identifier == "" {
		return nil, &LookupError{Reason: "identifier is empty"}
	}

	job := mappingJob{IDType: "TICKER", IDValue: identifier, ExchCode: "US"}
	if IsISIN(identifier) {
		job = mappingJob{IDType: "ID_ISIN", IDValue: identifier}
	}

	body, err := json.Marshal([]mappingJob{job})
	if err != nil {
		return nil, fmt.Errorf("encoding mapping request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating mapping request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &LookupError{Reason: fmt.Sprintf("OpenFIGI request failed: %v", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &LookupError{Reason: "OpenFIGI rate limit reached, try again shortly", RateLimited: true}
	case resp.StatusCode != http.StatusOK:
		return nil, &LookupError{Reason: fmt.Sprintf("OpenFIGI returned status %d", resp.StatusCode)}
	}

	var results []mappingResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, &LookupError{Reason: fmt.Sprintf("decoding OpenFIGI response: %v", err)}
	}
	if len(results) == 0 {
		return nil, &LookupError{Reason: "empty response from OpenFIGI"}
	}

	result := results[0]
	if result.Error != "" {
		return nil, &LookupError{Reason: result.Error}
	}
	if len(result.Data) == 0 {
		return nil, &LookupError{Reason: fmt.Sprintf("no security found for %q", identifier)}
	}

	best := pickBestMatch(result.Data)
	attrs := &SecurityAttributes{
		Name:         best.Name,
		Ticker:       best.Ticker,
		FIGI:         best.FIGI,
		Exchange:     best.ExchCode,
		SecurityType: best.SecurityType,
		MarketSector: best.MarketSector,
		AllMatches:   result.Data,
	}
	if IsISIN(identifier) {
		attrs.ISIN = identifier
	}
	return attrs, nil
}

// pickBestMatch prefers common stock listings; OpenFIGI frequently
// returns warrants and preferred lines ahead of the primary listing.
func pickBestMatch(matches []Match) Match {
	for _, m := range matches {
		if m.SecurityType == "Common Stock" {
			return m
		}
	}
	return matches[0]
}
