package docx

import "strings"

type lineKind int

const (
	lineBlank lineKind = iota
	lineHeading
	lineBulletL1
	lineBulletL2
	linePlain
)

type line struct {
	kind lineKind
	text string
}

// classify maps one markdown-like line to its document paragraph. The rules
// mirror the pack's house format: **bold** headings, "• " bullets, and
// "– "/"- " sub-bullets; everything else is a plain paragraph.
func classify(raw string) line {
	s := strings.TrimSpace(raw)
	if s == "" {
		return line{kind: lineBlank}
	}
	if strings.HasPrefix(s, "**") && strings.HasSuffix(s, "**") && len(s) > 4 {
		return line{kind: lineHeading, text: strings.Trim(s, "*")}
	}
	if rest, ok := strings.CutPrefix(s, "• "); ok {
		return line{kind: lineBulletL1, text: strings.TrimSpace(rest)}
	}
	if rest, ok := strings.CutPrefix(s, "– "); ok {
		return line{kind: lineBulletL2, text: strings.TrimSpace(rest)}
	}
	if rest, ok := strings.CutPrefix(s, "- "); ok {
		return line{kind: lineBulletL2, text: strings.TrimSpace(rest)}
	}
	return line{kind: linePlain, text: s}
}

// classifyAll splits the document into classified lines, one per input line.
func classifyAll(content string) []line {
	raw := strings.Split(content, "\n")
	lines := make([]line, 0, len(raw))
	for _, ln := range raw {
		lines = append(lines, classify(ln))
	}
	return lines
}
