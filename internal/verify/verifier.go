package verify

import (
	"context"
	"sync"
	"time"

	"inquire/internal/model"
)

// maxEvidenceLength bounds the source excerpt carried in a result.
const maxEvidenceLength = 500

// Verifier checks every claim against its first citation under a fixed
// concurrency cap. The semaphore is the only shared resource between
// in-flight verifications; each task owns its own response buffer and
// writes to its own result slot.
type Verifier struct {
	fetcher    *SourceFetcher // nil means no HTTP capability; every claim is skipped
	maxWorkers int
}

// NewVerifier creates a verifier. A nil fetcher degrades every claim to
// "skipped" instead of failing the run. maxWorkers defaults to 5.
func NewVerifier(fetcher *SourceFetcher, maxWorkers int) *Verifier {
	if maxWorkers <= 0 {
		maxWorkers = 5
	}
	return &Verifier{fetcher: fetcher, maxWorkers: maxWorkers}
}

// VerifyAll schedules all claims up front, admits at most maxWorkers fetches
// at a time and returns one result per claim, positionally aligned with the
// input regardless of completion order.
func (v *Verifier) VerifyAll(ctx context.Context, set *model.ClaimSet, claimsFile string) *model.VerificationSet {
	results := make([]model.VerificationResult, len(set.Claims))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, v.maxWorkers)

	for i, claim := range set.Claims {
		wg.Add(1)
		go func(idx int, c model.Claim) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = model.VerificationResult{
					ClaimID:   c.ID,
					ClaimText: c.Text,
					Status:    model.StatusInaccessible,
					Notes:     "context cancelled",
				}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = v.verifySingle(ctx, c)
		}(i, claim)
	}

	wg.Wait()

	summary := map[string]int{}
	for _, r := range results {
		summary[string(r.Status)]++
	}

	return &model.VerificationSet{
		VerifiedAt:    time.Now().UTC().Format(time.RFC3339),
		ClaimsFile:    claimsFile,
		TotalVerified: len(results),
		Results:       results,
		Summary:       summary,
	}
}

// verifySingle produces the terminal result for one claim. Only the first
// citation is ever inspected; a claim without citations never touches the
// network.
func (v *Verifier) verifySingle(ctx context.Context, c model.Claim) model.VerificationResult {
	result := model.VerificationResult{ClaimID: c.ID, ClaimText: c.Text}

	if v.fetcher == nil {
		result.Status = model.StatusSkipped
		result.Notes = "no HTTP client available"
		return result
	}

	if len(c.Citations) == 0 {
		result.Status = model.StatusNotFound
		result.Notes = "No citation provided"
		return result
	}

	result.CitationURL = c.Citations[0]
	fetched := v.fetcher.Fetch(ctx, result.CitationURL)
	if fetched.Failure != "" {
		result.Status = fetched.Failure
		result.Notes = fetched.Note
		return result
	}

	status, evidence := CheckSupport(c.Text, fetched.Body)
	result.Status = status
	result.Evidence = truncate(evidence, maxEvidenceLength)
	return result
}
