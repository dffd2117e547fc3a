package compile

import (
	"strings"
	"testing"
	"time"

	"inquire/internal/model"
)

func TestRender_HeaderAndFooter(t *testing.T) {
	claims := &model.ClaimSet{TotalClaims: 3}
	verification := &model.VerificationSet{
		Summary: map[string]int{"supported": 1, "partial": 1, "not_found": 1},
		Results: []model.VerificationResult{
			{ClaimID: "claim_001", ClaimText: "Supported finding about output", Status: model.StatusSupported},
			{ClaimID: "claim_002", ClaimText: "Partially matched finding", Status: model.StatusPartial},
			{ClaimID: "claim_003", ClaimText: "Unmatched finding", Status: model.StatusNotFound},
		},
	}
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	final, err := Render("Report body here.", claims, verification, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(final, "# Research Report\n\nGenerated: 2026-03-14T09:30:00Z\nTotal Claims: 3\nVerified: 2\n") {
		t.Errorf("unexpected header:\n%s", final[:120])
	}
	if !strings.Contains(final, `Verification Summary: {"not_found":1,"partial":1,"supported":1}`) {
		t.Errorf("summary JSON missing or unsorted:\n%s", final)
	}
	if !strings.Contains(final, "Report body here.") {
		t.Error("report body missing")
	}
	if !strings.Contains(final, "## Verification Notes") {
		t.Error("footer heading missing")
	}
	if !strings.Contains(final, "- **claim_001** [VERIFIED]: Supported finding about output...\n") {
		t.Errorf("supported badge line missing:\n%s", final)
	}
	if !strings.Contains(final, "- **claim_002** [PARTIAL]: Partially matched finding...\n") {
		t.Error("partial badge line missing")
	}
	if !strings.Contains(final, "- **claim_003** [UNVERIFIED]: Unmatched finding...\n") {
		t.Error("not_found badge line missing")
	}
}

func TestRender_VerifiedCountsSupportedAndPartialOnly(t *testing.T) {
	verification := &model.VerificationSet{
		Summary: map[string]int{
			"supported":    2,
			"partial":      3,
			"not_found":    4,
			"inaccessible": 5,
			"skipped":      6,
		},
	}

	final, err := Render("body", &model.ClaimSet{TotalClaims: 20}, verification, time.Now().UTC())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(final, "Verified: 5\n") {
		t.Errorf("expected Verified: 5 (supported+partial):\n%s", final)
	}
}

func TestRender_NilArtifacts(t *testing.T) {
	final, err := Render("only the body", nil, nil, time.Now().UTC())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(final, "Total Claims: 0\nVerified: 0\nVerification Summary: {}\n") {
		t.Errorf("expected zeroed header:\n%s", final)
	}
	if !strings.Contains(final, "only the body") {
		t.Error("report body missing")
	}
	if !strings.Contains(final, "## Verification Notes") {
		t.Error("footer must be present even without results")
	}
}

func TestRender_LongClaimTextTruncated(t *testing.T) {
	long := strings.Repeat("word ", 50) // 250 chars
	verification := &model.VerificationSet{
		Summary: map[string]int{"supported": 1},
		Results: []model.VerificationResult{
			{ClaimID: "claim_001", ClaimText: long, Status: model.StatusSupported},
		},
	}

	final, err := Render("body", &model.ClaimSet{TotalClaims: 1}, verification, time.Now().UTC())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "- **claim_001** [VERIFIED]: " + long[:100] + "...\n"
	if !strings.Contains(final, expected) {
		t.Errorf("expected claim text truncated to 100 chars:\n%s", final)
	}
}

func TestBadge(t *testing.T) {
	tests := []struct {
		status model.VerificationStatus
		badge  string
	}{
		{model.StatusSupported, "[VERIFIED]"},
		{model.StatusPartial, "[PARTIAL]"},
		{model.StatusNotFound, "[UNVERIFIED]"},
		{model.StatusContradicted, "[DISPUTED]"},
		{model.StatusInaccessible, "[SOURCE N/A]"},
		{model.StatusPaywall, "[PAYWALL]"},
		{model.StatusSkipped, "[SKIPPED]"},
		{model.VerificationStatus("mystery"), ""},
	}

	for _, tt := range tests {
		if got := Badge(tt.status); got != tt.badge {
			t.Errorf("Badge(%s): expected %q, got %q", tt.status, tt.badge, got)
		}
	}
}
