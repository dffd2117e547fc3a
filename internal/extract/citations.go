package extract

import (
	"strings"
	"time"

	"inquire/internal/model"
)

// CitationExtractor scans report text for URL tokens and records each
// occurrence with its section, surrounding context and containing sentence.
type CitationExtractor struct{}

// NewCitationExtractor creates a new citation extractor.
func NewCitationExtractor() *CitationExtractor {
	return &CitationExtractor{}
}

// Extract walks the report line by line, tracking the current level-2
// section, and emits one Citation per URL occurrence. URLs are not
// deduplicated; positional provenance is preserved.
func (e *CitationExtractor) Extract(text, sourceFile string) *model.CitationSet {
	set := &model.CitationSet{
		ExtractedAt: time.Now().UTC().Format(time.RFC3339),
		SourceFile:  sourceFile,
		Citations:   []model.Citation{},
		BySection:   map[string]int{},
		ByDomain:    map[string]int{},
	}

	section := "preamble"
	for lineIdx, line := range strings.Split(text, "\n") {
		if title, ok := headingSection(line); ok {
			section = title
			continue
		}

		for _, loc := range urlPattern.FindAllStringIndex(line, -1) {
			url := line[loc[0]:loc[1]]

			set.Citations = append(set.Citations, model.Citation{
				URL:        url,
				Section:    section,
				Context:    window(line, loc[0], loc[1], 50),
				LineNumber: lineIdx + 1,
				ClaimText:  containingSentence(line, loc[0]),
			})

			set.BySection[section]++

			// The host is the 3rd /-delimited segment; a URL lacking it
			// contributes to no domain bucket.
			if parts := strings.Split(url, "/"); len(parts) >= 3 {
				set.ByDomain[parts[2]]++
			}
		}
	}

	set.TotalCitations = len(set.Citations)
	set.UniqueDomains = len(set.ByDomain)
	return set
}

// ExtractCitations is the one-shot form of CitationExtractor.Extract.
func ExtractCitations(text, sourceFile string) *model.CitationSet {
	return NewCitationExtractor().Extract(text, sourceFile)
}
