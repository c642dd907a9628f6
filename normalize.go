package blogwatch

import (
	"regexp"
	"strings"
)

// Ellipsis is appended to text cut by Truncate.
const Ellipsis = "..."

var (
	blankLinesRe = regexp.MustCompile(`\n\s*\n`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalizer cleans text pulled out of HTML.
type Normalizer struct {
	Exclusions ExclusionSet
}

// NewNormalizer returns a Normalizer stripping the given phrases.
func NewNormalizer(exclusions ExclusionSet) *Normalizer {
	return &Normalizer{Exclusions: exclusions}
}

// Clean removes every exclusion phrase from s and then collapses whitespace.
// Phrases are removed before collapsing so no double space is left behind.
// Removal repeats until stable, since cutting one phrase (or collapsing the
// space around it) can join the halves of another occurrence.
func (n *Normalizer) Clean(s string) string {
	for {
		next := n.Collapse(n.strip(s))
		if next == s {
			return next
		}
		s = next
	}
}

func (n *Normalizer) strip(s string) string {
	for _, phrase := range n.Exclusions {
		if phrase == "" {
			continue
		}
		s = strings.ReplaceAll(s, phrase, "")
	}
	return s
}

// Collapse squeezes blank lines and whitespace runs into single spaces and trims.
func (n *Normalizer) Collapse(s string) string {
	s = blankLinesRe.ReplaceAllString(s, "\n")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Truncate cuts s to at most max characters and appends Ellipsis when it cut
// anything. The cut ignores word boundaries. A max of zero or less disables it.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + Ellipsis
}
