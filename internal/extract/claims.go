package extract

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"inquire/internal/model"
)

// minClaimLength is the sentence length floor, in characters, below which a
// sentence is not considered an atomic claim.
const minClaimLength = 20

// Uncertainty markers short-circuit confidence to "uncertain". Matched
// against the case-folded sentence.
var uncertaintyMarkers = []*regexp.Regexp{
	regexp.MustCompile(`\[uncertain\]`),
	regexp.MustCompile(`may\s+be`),
	regexp.MustCompile(`might\s+`),
	regexp.MustCompile(`possibly`),
	regexp.MustCompile(`reportedly`),
	regexp.MustCompile(`some\s+sources`),
	regexp.MustCompile(`it\s+appears`),
	regexp.MustCompile(`seems\s+to`),
}

// Factual markers raise confidence: two or more distinct markers present
// means "high", exactly one means "medium".
var factualMarkers = []*regexp.Regexp{
	regexp.MustCompile(`\d+%`),
	regexp.MustCompile(`\$[\d,]+`),
	regexp.MustCompile(`in\s+\d{4}`),
	regexp.MustCompile(`according\s+to`),
	regexp.MustCompile(`study\s+found`),
	regexp.MustCompile(`data\s+shows`),
}

// Claim type patterns, first match wins in this order. The precedence and
// the marker lists are tunable heuristics kept for artifact compatibility.
var (
	predictionPattern = regexp.MustCompile(`will\s+|expect|forecast|predict`)
	definitionPattern = regexp.MustCompile(`is\s+defined\s+as|refers\s+to|means\s+that`)
	opinionPattern    = regexp.MustCompile(`should|ought|better|worse|best|worst`)
)

// ClaimExtractor splits report text into candidate atomic claims and
// classifies each one.
type ClaimExtractor struct{}

// NewClaimExtractor creates a new claim extractor.
func NewClaimExtractor() *ClaimExtractor {
	return &ClaimExtractor{}
}

// Extract walks the report line by line, skipping headings and blank lines,
// and emits one Claim per sentence of at least minClaimLength characters.
// Claim ids are deterministic given line order.
func (e *ClaimExtractor) Extract(text, sourceFile string) *model.ClaimSet {
	set := &model.ClaimSet{
		ExtractedAt: time.Now().UTC().Format(time.RFC3339),
		SourceFile:  sourceFile,
		Claims:      []model.Claim{},
	}

	section := "preamble"
	id := 0
	for _, line := range strings.Split(text, "\n") {
		if title, ok := headingSection(line); ok {
			section = title
			continue
		}
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		for _, sentence := range splitSentences(line) {
			sentence = strings.TrimSpace(sentence)
			if utf8.RuneCountInString(sentence) < minClaimLength {
				continue
			}

			id++
			confidence := assessConfidence(sentence)
			claimType := classifyClaim(sentence)

			set.Claims = append(set.Claims, model.Claim{
				ID:         fmt.Sprintf("claim_%03d", id),
				Text:       sentence,
				Section:    section,
				Citations:  findURLs(sentence),
				Confidence: confidence,
				ClaimType:  claimType,
			})
			set.ByConfidence.Add(confidence)
			set.ByType.Add(claimType)
		}
	}

	set.TotalClaims = len(set.Claims)
	return set
}

// ExtractClaims is the one-shot form of ClaimExtractor.Extract.
func ExtractClaims(text, sourceFile string) *model.ClaimSet {
	return NewClaimExtractor().Extract(text, sourceFile)
}

// assessConfidence classifies how confidently a claim is stated.
// Uncertainty markers win outright; otherwise the factual marker count
// decides.
func assessConfidence(text string) model.Confidence {
	lower := strings.ToLower(text)

	for _, marker := range uncertaintyMarkers {
		if marker.MatchString(lower) {
			return model.ConfidenceUncertain
		}
	}

	score := 0
	for _, marker := range factualMarkers {
		if marker.MatchString(lower) {
			score++
		}
	}

	switch {
	case score >= 2:
		return model.ConfidenceHigh
	case score == 1:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}

// classifyClaim determines the claim type, first match wins:
// prediction > definition > opinion > factual.
func classifyClaim(text string) model.ClaimType {
	lower := strings.ToLower(text)

	switch {
	case predictionPattern.MatchString(lower):
		return model.ClaimTypePrediction
	case definitionPattern.MatchString(lower):
		return model.ClaimTypeDefinition
	case opinionPattern.MatchString(lower):
		return model.ClaimTypeOpinion
	default:
		return model.ClaimTypeFactual
	}
}
