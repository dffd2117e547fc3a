package model

// Confidence is the extractor's assessment of how checkable a claim is.
type Confidence string

const (
	ConfidenceHigh      Confidence = "high"
	ConfidenceMedium    Confidence = "medium"
	ConfidenceLow       Confidence = "low"
	ConfidenceUncertain Confidence = "uncertain"
)

// ClaimType categorizes the nature of the claim.
type ClaimType string

const (
	ClaimTypeFactual    ClaimType = "factual"    // Default when no other type matches
	ClaimTypePrediction ClaimType = "prediction" // Forward-looking statements
	ClaimTypeOpinion    ClaimType = "opinion"    // Normative or comparative statements
	ClaimTypeDefinition ClaimType = "definition" // Definitional statements
)

// Claim is one atomic, independently checkable sentence from a report.
type Claim struct {
	ID         string     `json:"id"`         // "claim_NNN", strictly increasing in document order
	Text       string     `json:"text"`       // The claim sentence, trimmed
	Section    string     `json:"section"`    // Level-2 heading the claim appears under
	Citations  []string   `json:"citations"`  // URLs found inside the claim text, in order
	Confidence Confidence `json:"confidence"` // high, medium, low, uncertain
	ClaimType  ClaimType  `json:"claim_type"` // factual, prediction, opinion, definition
}

// ConfidenceHistogram counts claims per confidence bucket.
type ConfidenceHistogram struct {
	High      int `json:"high"`
	Medium    int `json:"medium"`
	Low       int `json:"low"`
	Uncertain int `json:"uncertain"`
}

// Add increments the bucket for the given confidence.
func (h *ConfidenceHistogram) Add(c Confidence) {
	switch c {
	case ConfidenceHigh:
		h.High++
	case ConfidenceMedium:
		h.Medium++
	case ConfidenceLow:
		h.Low++
	case ConfidenceUncertain:
		h.Uncertain++
	}
}

// TypeHistogram counts claims per claim type.
type TypeHistogram struct {
	Factual    int `json:"factual"`
	Prediction int `json:"prediction"`
	Opinion    int `json:"opinion"`
	Definition int `json:"definition"`
}

// Add increments the bucket for the given claim type.
func (h *TypeHistogram) Add(t ClaimType) {
	switch t {
	case ClaimTypeFactual:
		h.Factual++
	case ClaimTypePrediction:
		h.Prediction++
	case ClaimTypeOpinion:
		h.Opinion++
	case ClaimTypeDefinition:
		h.Definition++
	}
}

// ClaimSet is the persisted claims artifact.
// Field names and nesting are part of the artifact schema consumed by
// external tooling and must not change.
type ClaimSet struct {
	ExtractedAt  string              `json:"extracted_at"`
	SourceFile   string              `json:"source_file"`
	TotalClaims  int                 `json:"total_claims"`
	Claims       []Claim             `json:"claims"`
	ByConfidence ConfidenceHistogram `json:"by_confidence"`
	ByType       TypeHistogram       `json:"by_type"`
}
