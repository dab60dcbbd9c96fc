package game

import (
	"regexp"
	"strings"
)

// Title normalization patterns, applied in order by NormalizeTitle.
var (
	bracketedRe  = regexp.MustCompile(`[\(\[].*?[\)\]]`)
	hyphenTailRe = regexp.MustCompile(`-.*`)
	featTailRe   = regexp.MustCompile(`\b(feat|ft|featuring)\b.*`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// NormalizeTitle canonicalizes a song title or guess for comparison.
// It lower-cases, strips parenthesized or bracketed segments ("(Remix)",
// "[Live]"), drops everything from the first hyphen ("- Remastered 2011"),
// drops everything from the first "feat"/"ft"/"featuring", replaces
// underscores with spaces and collapses whitespace. Empty input yields
// empty output; the function is pure and idempotent.
func NormalizeTitle(title string) string {
	s := strings.ToLower(title)
	s = bracketedRe.ReplaceAllString(s, "")
	s = hyphenTailRe.ReplaceAllString(s, "")
	s = featTailRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "_", " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
