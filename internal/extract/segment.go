package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// urlPattern matches a URL token: http/https scheme followed by a run of
// characters excluding whitespace and the delimiters ) ] " ' > ,
var urlPattern = regexp.MustCompile(`(?i)https?://[^\s)\]"'>,]+`)

// sentenceEnd marks a sentence boundary: terminator followed by whitespace.
var sentenceEnd = regexp.MustCompile(`[.!?]\s+`)

// findURLs returns all URL tokens in text, in order. Never returns nil so
// the artifact JSON always carries a list.
func findURLs(text string) []string {
	urls := urlPattern.FindAllString(text, -1)
	if urls == nil {
		return []string{}
	}
	return urls
}

// headingSection reports whether the line is a level-2 markdown heading and
// returns its trimmed title. Sections persist until the next heading.
func headingSection(line string) (string, bool) {
	if strings.HasPrefix(line, "## ") {
		return strings.TrimSpace(line[3:]), true
	}
	return "", false
}

// splitSentences splits a line at terminator-followed-by-whitespace
// boundaries. The terminator stays with the preceding sentence; the
// whitespace run is dropped.
func splitSentences(line string) []string {
	var sentences []string
	start := 0
	i := 0
	for i < len(line) {
		c := line[i]
		if (c == '.' || c == '!' || c == '?') && i+1 < len(line) {
			r, _ := utf8.DecodeRuneInString(line[i+1:])
			if unicode.IsSpace(r) {
				sentences = append(sentences, line[start:i+1])
				i++
				for i < len(line) {
					r, size := utf8.DecodeRuneInString(line[i:])
					if !unicode.IsSpace(r) {
						break
					}
					i += size
				}
				start = i
				continue
			}
		}
		i++
	}
	if start < len(line) {
		sentences = append(sentences, line[start:])
	}
	return sentences
}

// containingSentence returns the sentence of line covering byte position
// pos: from the nearest preceding sentence boundary to the nearest
// following one, falling back to the line bounds.
func containingSentence(line string, pos int) string {
	start := 0
	for _, m := range sentenceEnd.FindAllStringIndex(line, -1) {
		if m[1] <= pos {
			start = m[1]
		} else {
			break
		}
	}
	end := len(line)
	if m := sentenceEnd.FindStringIndex(line[pos:]); m != nil {
		end = pos + m[1]
	}
	return strings.TrimSpace(line[start:end])
}

// window returns up to margin characters either side of the byte range
// [start,end) in s, clipped to s. Margins count runes, not bytes.
func window(s string, start, end, margin int) string {
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
