// Package compile renders the final annotated report from the run
// artifacts. It is pure text assembly; artifact I/O lives in the pipeline.
package compile

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"inquire/internal/model"
)

// badges maps a verification status to its inline badge. An unknown status
// yields an empty badge, never an error.
var badges = map[model.VerificationStatus]string{
	model.StatusSupported:    "[VERIFIED]",
	model.StatusPartial:      "[PARTIAL]",
	model.StatusNotFound:     "[UNVERIFIED]",
	model.StatusContradicted: "[DISPUTED]",
	model.StatusInaccessible: "[SOURCE N/A]",
	model.StatusPaywall:      "[PAYWALL]",
	model.StatusSkipped:      "[SKIPPED]",
}

// Badge returns the inline badge for a status, empty when unknown.
func Badge(status model.VerificationStatus) string {
	return badges[status]
}

// Render merges the raw report with claim statistics and verification
// results: a header with generation metadata and counts, the report body
// unchanged, and a footer listing one badge line per verification result in
// original order. Missing artifacts arrive as empty structures.
func Render(report string, claims *model.ClaimSet, verification *model.VerificationSet, now time.Time) (string, error) {
	if claims == nil {
		claims = &model.ClaimSet{}
	}
	if verification == nil {
		verification = &model.VerificationSet{Summary: map[string]int{}, Results: []model.VerificationResult{}}
	}
	if verification.Summary == nil {
		verification.Summary = map[string]int{}
	}

	summaryJSON, err := json.Marshal(verification.Summary)
	if err != nil {
		return "", fmt.Errorf("encode summary: %w", err)
	}

	verifiedCount := verification.Summary[string(model.StatusSupported)] +
		verification.Summary[string(model.StatusPartial)]

	header := fmt.Sprintf(`# Research Report

Generated: %s
Total Claims: %d
Verified: %d
Verification Summary: %s

---

`, now.Format(time.RFC3339), claims.TotalClaims, verifiedCount, summaryJSON)

	var footer strings.Builder
	footer.WriteString("\n\n---\n\n## Verification Notes\n\n")
	for _, result := range verification.Results {
		fmt.Fprintf(&footer, "- **%s** %s: %s...\n",
			result.ClaimID, Badge(result.Status), truncate(result.ClaimText, 100))
	}

	return header + report + footer.String(), nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
