package verify

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"inquire/internal/model"
)

// supportThreshold is the matched-terms ratio at and above which a claim
// counts as supported. A tunable heuristic constant, kept for artifact
// compatibility.
const supportThreshold = 0.7

// Key-term patterns, applied in order: numeric tokens (optional decimal
// fraction and percent sign), double-quoted substrings, capitalized word
// sequences approximating proper-noun phrases.
var (
	numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?%?`)
	quotedPattern = regexp.MustCompile(`"([^"]+)"`)
	properPattern = regexp.MustCompile(`[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*`)
)

// KeyTerms extracts the tokens used to test lexical support of a claim.
// Terms of two characters or fewer are discarded; duplicates are kept.
func KeyTerms(text string) []string {
	var terms []string
	terms = append(terms, numberPattern.FindAllString(text, -1)...)
	for _, m := range quotedPattern.FindAllStringSubmatch(text, -1) {
		terms = append(terms, m[1])
	}
	terms = append(terms, properPattern.FindAllString(text, -1)...)

	kept := terms[:0]
	for _, t := range terms {
		if utf8.RuneCountInString(t) > 2 {
			kept = append(kept, t)
		}
	}
	return kept
}

// CheckSupport decides whether source lexically supports the claim.
// Returns the verdict and an excerpt around the first matched term (empty
// when nothing matched). A claim yielding zero key terms is never
// supported.
func CheckSupport(claim, source string) (model.VerificationStatus, string) {
	terms := KeyTerms(claim)

	var matches []string
	for _, term := range terms {
		start, end := foldMatch(source, term)
		if start < 0 {
			continue
		}
		matches = append(matches, excerpt(source, start, end, 100))
	}

	switch {
	case len(terms) == 0:
		return model.StatusNotFound, ""
	case float64(len(matches)) >= float64(len(terms))*supportThreshold:
		return model.StatusSupported, matches[0]
	case len(matches) > 0:
		return model.StatusPartial, matches[0]
	default:
		return model.StatusNotFound, ""
	}
}

// foldMatch returns the byte range in s of the first case-insensitive
// occurrence of substr, or (-1, -1). Lowercasing can change rune byte
// lengths, so the offset found in the lowered text is walked back to the
// original rune by rune; strings.ToLower maps runes one to one, which keeps
// the walk aligned.
func foldMatch(s, substr string) (int, int) {
	lowered := strings.ToLower(s)
	idx := strings.Index(lowered, strings.ToLower(substr))
	if idx < 0 {
		return -1, -1
	}

	start, li := 0, 0
	for li < idx {
		r, size := utf8.DecodeRuneInString(s[start:])
		li += utf8.RuneLen(unicode.ToLower(r))
		start += size
	}
	end := start
	for li < idx+len(strings.ToLower(substr)) && end < len(s) {
		r, size := utf8.DecodeRuneInString(s[end:])
		li += utf8.RuneLen(unicode.ToLower(r))
		end += size
	}
	return start, end
}

// excerpt returns up to margin characters either side of the byte range
// [start,end) in s, clipped to s.
func excerpt(s string, start, end, margin int) string {
	if start < 0 {
		start = 0
	}
	if start > len(s) {
		start = len(s)
	}
	if end > len(s) {
		end = len(s)
	}
	if end < start {
		end = start
	}
	prefix := []rune(s[:start])
	lo := len(prefix) - margin
	if lo < 0 {
		lo = 0
	}
	suffix := []rune(s[end:])
	hi := margin
	if hi > len(suffix) {
		hi = len(suffix)
	}
	return string(prefix[lo:]) + s[start:end] + string(suffix[:hi])
}

// truncate returns at most n characters of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
