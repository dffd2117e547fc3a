package verify

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"inquire/internal/model"
)

func claimsFixture(n int, serverURL string) *model.ClaimSet {
	set := &model.ClaimSet{Claims: make([]model.Claim, n)}
	for i := range set.Claims {
		set.Claims[i] = model.Claim{
			ID:        fmt.Sprintf("claim_%03d", i+1),
			Text:      fmt.Sprintf("Item %d measured 150 units in the trial", i+1),
			Citations: []string{fmt.Sprintf("%s/source/%d", serverURL, i+1)},
		}
	}
	return set
}

func TestVerifier_NilFetcherSkipsEverything(t *testing.T) {
	set := claimsFixture(3, "https://example.com")

	verifier := NewVerifier(nil, 5)
	result := verifier.VerifyAll(context.Background(), set, "claims.json")

	if result.TotalVerified != 3 {
		t.Fatalf("expected 3 results, got %d", result.TotalVerified)
	}
	for _, r := range result.Results {
		if r.Status != model.StatusSkipped {
			t.Errorf("%s: expected skipped, got %s", r.ClaimID, r.Status)
		}
		if r.Notes != "no HTTP client available" {
			t.Errorf("%s: unexpected note %q", r.ClaimID, r.Notes)
		}
	}
	if result.Summary["skipped"] != 3 {
		t.Errorf("expected summary skipped=3, got %v", result.Summary)
	}
}

func TestVerifier_NoCitationNeverFetches(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	set := &model.ClaimSet{Claims: []model.Claim{
		{ID: "claim_001", Text: "Uncited finding about 150 units", Citations: []string{}},
	}}

	verifier := NewVerifier(NewSourceFetcher(testConfig()), 5)
	result := verifier.VerifyAll(context.Background(), set, "claims.json")

	if result.Results[0].Status != model.StatusNotFound {
		t.Errorf("expected not_found, got %s", result.Results[0].Status)
	}
	if result.Results[0].Notes != "No citation provided" {
		t.Errorf("unexpected note %q", result.Results[0].Notes)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Errorf("citation-less claim must not touch the network, got %d fetches", hits)
	}
}

func TestVerifier_PositionalAlignment(t *testing.T) {
	// Random per-request latency so completion order differs from input order
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Duration(rand.Intn(20)) * time.Millisecond)
		_, _ = w.Write([]byte("the trial measured 150 units"))
	}))
	defer server.Close()

	set := claimsFixture(20, server.URL)

	verifier := NewVerifier(NewSourceFetcher(testConfig()), 5)
	result := verifier.VerifyAll(context.Background(), set, "claims.json")

	if len(result.Results) != 20 {
		t.Fatalf("expected 20 results, got %d", len(result.Results))
	}
	for i, r := range result.Results {
		if r.ClaimID != set.Claims[i].ID {
			t.Errorf("result %d misaligned: expected %s, got %s", i, set.Claims[i].ID, r.ClaimID)
		}
		if r.CitationURL != set.Claims[i].Citations[0] {
			t.Errorf("result %d cites %s, expected %s", i, r.CitationURL, set.Claims[i].Citations[0])
		}
	}
}

func TestVerifier_ConcurrencyCap(t *testing.T) {
	var inFlight, peak int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		_, _ = w.Write([]byte("150 units"))
	}))
	defer server.Close()

	set := claimsFixture(30, server.URL)

	verifier := NewVerifier(NewSourceFetcher(testConfig()), 3)
	result := verifier.VerifyAll(context.Background(), set, "claims.json")

	if result.TotalVerified != 30 {
		t.Fatalf("expected 30 results, got %d", result.TotalVerified)
	}
	if p := atomic.LoadInt32(&peak); p > 3 {
		t.Errorf("expected at most 3 in-flight fetches, observed %d", p)
	}
}

func TestVerifier_StatusMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("the trial measured 150 units"))
		case "/partial":
			_, _ = w.Write([]byte("a trial happened"))
		case "/paywalled":
			w.WriteHeader(http.StatusForbidden)
		case "/gone":
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	set := &model.ClaimSet{Claims: []model.Claim{
		{ID: "claim_001", Text: "Trial measured 150 units", Citations: []string{server.URL + "/ok"}},
		{ID: "claim_002", Text: "Trial measured 150 units", Citations: []string{server.URL + "/partial"}},
		{ID: "claim_003", Text: "Trial measured 150 units", Citations: []string{server.URL + "/paywalled"}},
		{ID: "claim_004", Text: "Trial measured 150 units", Citations: []string{server.URL + "/gone"}},
	}}

	verifier := NewVerifier(NewSourceFetcher(testConfig()), 5)
	result := verifier.VerifyAll(context.Background(), set, "claims.json")

	expected := []model.VerificationStatus{
		model.StatusSupported,
		model.StatusPartial,
		model.StatusPaywall,
		model.StatusInaccessible,
	}
	for i, want := range expected {
		if result.Results[i].Status != want {
			t.Errorf("%s: expected %s, got %s (notes: %s)",
				result.Results[i].ClaimID, want, result.Results[i].Status, result.Results[i].Notes)
		}
	}

	if result.Summary["supported"] != 1 || result.Summary["partial"] != 1 ||
		result.Summary["paywall"] != 1 || result.Summary["inaccessible"] != 1 {
		t.Errorf("unexpected summary %v", result.Summary)
	}
	if result.Results[0].Evidence == "" {
		t.Error("supported result should carry evidence")
	}
}

func TestVerifier_OnlyFirstCitationFetched(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_, _ = w.Write([]byte("150 units"))
	}))
	defer server.Close()

	set := &model.ClaimSet{Claims: []model.Claim{
		{
			ID:        "claim_001",
			Text:      "Trial measured 150 units",
			Citations: []string{server.URL + "/first", server.URL + "/second"},
		},
	}}

	verifier := NewVerifier(NewSourceFetcher(testConfig()), 5)
	result := verifier.VerifyAll(context.Background(), set, "claims.json")

	if len(paths) != 1 || paths[0] != "/first" {
		t.Errorf("expected only the first citation fetched, got %v", paths)
	}
	if result.Results[0].CitationURL != server.URL+"/first" {
		t.Errorf("expected first citation recorded, got %s", result.Results[0].CitationURL)
	}
}

func TestVerifier_MetadataFields(t *testing.T) {
	set := claimsFixture(1, "https://example.com")

	verifier := NewVerifier(nil, 0)
	result := verifier.VerifyAll(context.Background(), set, "runs/x/claims.json")

	if result.ClaimsFile != "runs/x/claims.json" {
		t.Errorf("expected claims file recorded, got %q", result.ClaimsFile)
	}
	if _, err := time.Parse(time.RFC3339, result.VerifiedAt); err != nil {
		t.Errorf("verified_at not RFC3339: %v", err)
	}
}
