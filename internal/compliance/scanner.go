// Package compliance performs a heuristic pre-flight scan of job description
// text for phrasing that is legally risky in US and EU hiring contexts.
//
// The scan is advisory only. An empty result means no listed phrase was
// found, not that the text is compliant.
package compliance

import (
	"regexp"
	"unicode/utf8"

	"github.com/bkyoung/interview-pack/internal/domain"
)

// snippetContext is the number of characters captured around a match.
const snippetContext = 30

// Scanner performs regex-based detection of risky hiring phrases.
type Scanner struct {
	patterns []pattern
}

type pattern struct {
	label    string
	re       *regexp.Regexp
	advisory string
}

// NewScanner creates a scanner with the fixed risky-phrase table.
func NewScanner() *Scanner {
	return &Scanner{patterns: defaultPatterns()}
}

// Scan searches text for each risky phrase, case-insensitively, in table
// order. At most one finding is emitted per pattern, for its first
// occurrence, with a snippet of the surrounding text.
func (s *Scanner) Scan(text string) []domain.Finding {
	var findings []domain.Finding
	for _, p := range s.patterns {
		loc := p.re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		findings = append(findings, domain.Finding{
			Label:    p.label,
			Advisory: p.advisory,
			Snippet:  snippet(text, loc[0], loc[1]),
		})
	}
	return findings
}

// snippet returns the matched text with up to snippetContext bytes of
// context on each side, clipped to the string bounds. The edges are stepped
// to rune boundaries so the snippet never splits a multi-byte character.
func snippet(text string, start, end int) string {
	lo := start - snippetContext
	if lo < 0 {
		lo = 0
	}
	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}
	hi := end + snippetContext
	if hi > len(text) {
		hi = len(text)
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}
	return text[lo:hi]
}

// defaultPatterns returns the fixed, ordered risky-phrase table. The patterns
// and advisories are kept exactly as established for behavioural
// compatibility; changing them changes what users are warned about.
func defaultPatterns() []pattern {
	table := []struct {
		label    string
		expr     string
		advisory string
	}{
		{
			label:    "young",
			expr:     `\byoung\b`,
			advisory: "Avoid age implications → use ‘early-career’ role level only if objectively defined.",
		},
		{
			label:    "recent graduate",
			expr:     `\brecent graduate\b`,
			advisory: "Avoid age proxy → specify entry-level skills instead.",
		},
		{
			label:    "able-bodied",
			expr:     `\bable\-?bodied\b`,
			advisory: "Avoid disability bias → describe essential functions and reasonable accommodations.",
		},
		{
			label:    "must be a us/uk/eu citizen",
			expr:     `\bmust be a (us|uk|eu) citizen\b`,
			advisory: "Citizenship limits can be discriminatory; ask for right-to-work unless legally required (e.g., export controls).",
		},
		{
			label:    "native english/speaker",
			expr:     `\bnative (english|speaker)\b`,
			advisory: "Language as a proxy for nationality → specify required proficiency level instead.",
		},
		{
			label:    "criminal record",
			expr:     `\b(no )?criminal record\b`,
			advisory: "Ban-the-box concerns → if relevant, state ‘background check may be required’ compliant with local law.",
		},
		{
			label:    "clean driving record",
			expr:     `\bclean driving record\b`,
			advisory: "If driving is essential, state requirement neutrally and per local law.",
		},
		{
			label:    "pregnancy",
			expr:     `\b(no )?pregnan\w*\b`,
			advisory: "Pregnancy/family status is protected → remove.",
		},
		{
			label:    "marital status",
			expr:     `\bmarried|single|divorced\b`,
			advisory: "Family/marital status is protected → remove.",
		},
	}

	patterns := make([]pattern, 0, len(table))
	for _, entry := range table {
		patterns = append(patterns, pattern{
			label:    entry.label,
			re:       regexp.MustCompile(`(?i)` + entry.expr),
			advisory: entry.advisory,
		})
	}
	return patterns
}
