package figi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClientWithBaseURL(&http.Client{Timeout: 2 * time.Second}, srv.URL, "test-key")
}

func TestIsISIN(t *testing.T) {
	valid := []string{"US0378331005", "GB0002162385", "IE00B4BNMY34"}
	for _, id := range valid {
		if !IsISIN(id) {
			t.Errorf("expected %q to be recognized as an ISIN", id)
		}
	}

	invalid := []string{"AAPL", "US03783310", "us0378331005", "1234567890AB", ""}
	for _, id := range invalid {
		if IsISIN(id) {
			t.Errorf("expected %q to be rejected as an ISIN", id)
		}
	}
}

func TestLookupByISIN(t *testing.T) {
	var gotJobs []map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-OPENFIGI-APIKEY") != "test-key" {
			t.Error("expected API key header to be set")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotJobs); err != nil {
			t.Fatalf("decoding jobs: %v", err)
		}
		_ = json.NewEncoder(w).Encode([]mappingResult{{
			Data: []Match{
				{FIGI: "BBG000B9Y5X2", Name: "APPLE INC", Ticker: "AAPL", ExchCode: "US", SecurityType: "Warrant", MarketSector: "Equity"},
				{FIGI: "BBG000B9XRY4", Name: "APPLE INC", Ticker: "AAPL", ExchCode: "US", SecurityType: "Common Stock", MarketSector: "Equity"},
			},
		}})
	})

	attrs, err := client.Lookup(context.Background(), "us0378331005")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(gotJobs) != 1 || gotJobs[0]["idType"] != "ID_ISIN" || gotJobs[0]["idValue"] != "US0378331005" {
		t.Errorf("expected a single normalized ID_ISIN job, got %v", gotJobs)
	}
	if attrs.ISIN != "US0378331005" {
		t.Errorf("expected ISIN to echo the queried identifier, got %q", attrs.ISIN)
	}
	if attrs.SecurityType != "Common Stock" {
		t.Errorf("expected common stock listing to be preferred, got %q", attrs.SecurityType)
	}
	if len(attrs.AllMatches) != 2 {
		t.Errorf("expected all candidate listings to be returned, got %d", len(attrs.AllMatches))
	}
}

func TestLookupByTickerUsesUSExchCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var jobs []map[string]string
		_ = json.NewDecoder(r.Body).Decode(&jobs)
		if jobs[0]["idType"] != "TICKER" || jobs[0]["exchCode"] != "US" {
			t.Errorf("expected TICKER job with US exchCode, got %v", jobs[0])
		}
		_ = json.NewEncoder(w).Encode([]mappingResult{{
			Data: []Match{{FIGI: "BBG000B9XRY4", Name: "APPLE INC", Ticker: "AAPL", ExchCode: "US", SecurityType: "Common Stock"}},
		}})
	})

	attrs, err := client.Lookup(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attrs.ISIN != "" {
		t.Errorf("ticker lookup should not fabricate an ISIN, got %q", attrs.ISIN)
	}
}

func TestLookupNoMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]mappingResult{{Error: "No identifier found."}})
	})

	_, err := client.Lookup(context.Background(), "ZZZZ")
	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected *LookupError, got %T: %v", err, err)
	}
	if lookupErr.RateLimited {
		t.Error("no-match must not be reported as rate limiting")
	}
}

func TestLookupEmptyData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]mappingResult{{}})
	})

	_, err := client.Lookup(context.Background(), "ZZZZ")
	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected *LookupError, got %T: %v", err, err)
	}
}

func TestLookupRateLimited(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Lookup(context.Background(), "US0378331005")
	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected *LookupError, got %T: %v", err, err)
	}
	if !lookupErr.RateLimited {
		t.Error("expected RateLimited to be set for HTTP 429")
	}
}

func TestLookupEmptyIdentifier(t *testing.T) {
	client := NewClient(&http.Client{Timeout: time.Second}, "")
	if _, err := client.Lookup(context.Background(), "   "); err == nil {
		t.Error("expected empty identifier to be rejected without a network call")
	}
}
