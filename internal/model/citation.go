package model

// Citation is one URL occurrence found in report text, with positional
// provenance. Citations are not deduplicated: a URL cited twice yields two
// records.
type Citation struct {
	URL        string `json:"url"`
	Section    string `json:"section"`     // Level-2 heading the URL appears under
	Context    string `json:"context"`     // Up to 50 chars either side of the match, clipped to the line
	LineNumber int    `json:"line_number"` // 1-based line in the report
	ClaimText  string `json:"claim_text"`  // Sentence containing the match
}

// CitationSet is the persisted citations artifact.
type CitationSet struct {
	ExtractedAt    string         `json:"extracted_at"`
	SourceFile     string         `json:"source_file"`
	TotalCitations int            `json:"total_citations"`
	UniqueDomains  int            `json:"unique_domains"`
	Citations      []Citation     `json:"citations"`
	BySection      map[string]int `json:"by_section"`
	ByDomain       map[string]int `json:"by_domain"`
}
