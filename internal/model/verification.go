package model

// VerificationStatus is the terminal outcome of checking one claim against
// its first citation.
type VerificationStatus string

const (
	StatusSupported    VerificationStatus = "supported"
	StatusPartial      VerificationStatus = "partial"
	StatusNotFound     VerificationStatus = "not_found"
	StatusContradicted VerificationStatus = "contradicted" // Reserved; the lexical checker never assigns it
	StatusInaccessible VerificationStatus = "inaccessible"
	StatusPaywall      VerificationStatus = "paywall"
	StatusSkipped      VerificationStatus = "skipped"
)

// VerificationResult records the outcome for one claim. Exactly one result
// exists per claim; only the claim's first citation is ever inspected.
type VerificationResult struct {
	ClaimID     string             `json:"claim_id"`
	ClaimText   string             `json:"claim_text"`
	CitationURL string             `json:"citation_url"` // Empty when no citation was inspected
	Status      VerificationStatus `json:"status"`
	Evidence    string             `json:"evidence"` // Source excerpt, at most 500 chars
	Notes       string             `json:"notes"`    // Failure detail, at most 200 chars
}

// VerificationSet is the persisted verification artifact.
type VerificationSet struct {
	VerifiedAt    string               `json:"verified_at"`
	ClaimsFile    string               `json:"claims_file"`
	TotalVerified int                  `json:"total_verified"`
	Results       []VerificationResult `json:"results"`
	Summary       map[string]int       `json:"summary"` // status -> count
}
