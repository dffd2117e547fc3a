package verify

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"inquire/internal/model"
)

func TestKeyTerms(t *testing.T) {
	tests := []struct {
		claim    string
		expected []string
		desc     string
	}{
		{
			claim:    "alpha grew by 150 units overall",
			expected: []string{"150"},
			desc:     "numeric token",
		},
		{
			claim:    "growth reached 42.5% in the period",
			expected: []string{"42.5%"},
			desc:     "decimal percentage stays one token",
		},
		{
			claim:    `the program called "green shift" started`,
			expected: []string{"green shift"},
			desc:     "quoted phrase without the quotes",
		},
		{
			claim:    "figures from Paris and New York differ",
			expected: []string{"Paris", "New York"},
			desc:     "capitalized word runs as proper nouns",
		},
		{
			claim:    "we saw 5 cases",
			expected: []string{},
			desc:     "terms of two characters or fewer dropped",
		},
		{
			claim:    `the "éé" label stayed on`,
			expected: []string{},
			desc:     "two-character multibyte quoted term dropped",
		},
		{
			claim:    "nothing notable here at all",
			expected: []string{},
			desc:     "no extractable terms",
		},
	}

	for _, tt := range tests {
		got := KeyTerms(tt.claim)
		if len(got) == 0 && len(tt.expected) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("%s: expected %v, got %v", tt.desc, tt.expected, got)
		}
	}
}

func TestCheckSupport_Supported(t *testing.T) {
	claim := "alpha grew by 150 units overall"
	source := "Quarterly totals: alpha grew by 150 units across all sites."

	status, evidence := CheckSupport(claim, source)
	if status != model.StatusSupported {
		t.Errorf("expected supported, got %s", status)
	}
	if !strings.Contains(evidence, "150") {
		t.Errorf("evidence should surround the matched term, got %q", evidence)
	}
}

func TestCheckSupport_Partial(t *testing.T) {
	// Two of three terms must miss for a partial verdict at the 0.7 threshold
	claim := "Paris recorded 150 events during Summer"
	source := "The city of paris had a busy season."

	status, evidence := CheckSupport(claim, source)
	if status != model.StatusPartial {
		t.Errorf("expected partial, got %s", status)
	}
	if evidence == "" {
		t.Error("partial verdict should still carry evidence")
	}
}

func TestCheckSupport_NotFound(t *testing.T) {
	claim := "Paris recorded 150 events"
	source := "entirely unrelated text about gardening"

	status, evidence := CheckSupport(claim, source)
	if status != model.StatusNotFound {
		t.Errorf("expected not_found, got %s", status)
	}
	if evidence != "" {
		t.Errorf("expected empty evidence, got %q", evidence)
	}
}

func TestCheckSupport_NoKeyTerms(t *testing.T) {
	// A claim yielding no key terms can never be supported, whatever the source says
	claim := "things seemed generally fine overall"
	source := "things seemed generally fine overall"

	status, evidence := CheckSupport(claim, source)
	if status != model.StatusNotFound {
		t.Errorf("expected not_found for term-less claim, got %s", status)
	}
	if evidence != "" {
		t.Errorf("expected empty evidence, got %q", evidence)
	}
}

func TestCheckSupport_CaseInsensitive(t *testing.T) {
	claim := "output from Helsinki doubled"
	source := "OUTPUT FROM HELSINKI DOUBLED LAST YEAR"

	status, _ := CheckSupport(claim, source)
	if status != model.StatusSupported {
		t.Errorf("expected case-insensitive match to support, got %s", status)
	}
}

func TestCheckSupport_MultibyteSource(t *testing.T) {
	// Lowercasing shifts byte offsets for these runes: İ shrinks 2->1,
	// Ⱥ grows 2->3. Matching must stay aligned with the original text and
	// never slice out of range.
	claim := "report from the Paris office"

	for _, prefix := range []string{
		strings.Repeat("İ", 300),
		strings.Repeat("Ⱥ", 300),
	} {
		source := prefix + " the Paris office"

		status, evidence := CheckSupport(claim, source)
		if status != model.StatusSupported {
			t.Errorf("prefix %q: expected supported, got %s", prefix[:2], status)
		}
		if !strings.Contains(evidence, "Paris") {
			t.Errorf("prefix %q: evidence should contain the matched term, got %q", prefix[:2], evidence)
		}
		if !utf8.ValidString(evidence) {
			t.Errorf("prefix %q: evidence contains torn runes: %q", prefix[:2], evidence)
		}
	}
}

func TestCheckSupport_MatchNearEndOfSource(t *testing.T) {
	// The matched term is the very tail of the source; the excerpt window
	// must clip cleanly at the string bounds.
	claim := "offices opened in Paris"
	source := "expansion continued and a branch opened in Paris"

	status, evidence := CheckSupport(claim, source)
	if status != model.StatusSupported {
		t.Fatalf("expected supported, got %s", status)
	}
	if !strings.HasSuffix(evidence, "Paris") {
		t.Errorf("expected excerpt to end at the source tail, got %q", evidence)
	}
}

func TestCheckSupport_ThresholdBoundary(t *testing.T) {
	// 7 of 10 terms is exactly at the threshold and counts as supported;
	// 6 of 10 does not.
	terms := []string{"101", "202", "303", "404", "505", "606", "707", "808", "909", "111"}
	claim := strings.Join(terms, " ")

	at := strings.Join(terms[:7], " ")
	status, _ := CheckSupport(claim, at)
	if status != model.StatusSupported {
		t.Errorf("expected 7/10 to be supported, got %s", status)
	}

	below := strings.Join(terms[:6], " ")
	status, _ = CheckSupport(claim, below)
	if status != model.StatusPartial {
		t.Errorf("expected 6/10 to be partial, got %s", status)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("expected unchanged string, got %q", got)
	}
	if got := truncate("abcdefghij", 4); got != "abcd" {
		t.Errorf("expected abcd, got %q", got)
	}
	if got := truncate("ééééé", 3); got != "ééé" {
		t.Errorf("expected rune-based truncation, got %q", got)
	}
}
