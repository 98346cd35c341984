// Package textclean removes duplication artifacts left behind by noisy
// PDF/OCR text extraction and normalizes whitespace.
package textclean

import (
	"regexp"
	"strings"
)

// DefaultMinRunLength is the minimum length, in characters, of a duplicated
// run (the repeated substring together with its adjacent repeat) before it
// is collapsed. Tuned against Hansard OCR output; override via config when
// reusing against a different corpus.
const DefaultMinRunLength = 15

var (
	whitespaceRun    = regexp.MustCompile(`\s+`)
	spaceBeforePunct = regexp.MustCompile(` +([.,;:!?])`)
)

// Cleaner collapses back-to-back duplicated substrings and normalizes
// whitespace. Clean is idempotent: applying it twice yields the same
// result as applying it once.
type Cleaner struct {
	minRun int
}

// New returns a Cleaner with the given minimum duplicated-run length.
// Values below 2 fall back to DefaultMinRunLength.
func New(minRunLength int) *Cleaner {
	if minRunLength < 2 {
		minRunLength = DefaultMinRunLength
	}
	return &Cleaner{minRun: minRunLength}
}

// Clean applies duplicate collapsing and whitespace normalization until a
// fixed point is reached. Text shorter than the minimum run length is only
// whitespace-normalized.
func (c *Cleaner) Clean(text string) string {
	out := text
	for {
		prev := out
		out = c.collapseAll(out)
		out = normalizeWhitespace(out)
		if out == prev {
			return out
		}
	}
}

// collapseAll removes adjacent duplicates one at a time until none remain.
// A triple repetition collapses to a single occurrence because each removal
// re-exposes the next duplicate pair.
func (c *Cleaner) collapseAll(s string) string {
	for {
		next, changed := c.collapseOnce(s)
		if !changed {
			return s
		}
		s = next
	}
}

// collapseOnce finds the first adjacent case-insensitive duplicate whose
// combined run is at least minRun characters and drops the repeat.
// The two occurrences may be separated by whitespace.
func (c *Cleaner) collapseOnce(s string) (string, bool) {
	n := len(s)
	minUnit := (c.minRun + 1) / 2

	for i := 0; i < n; i++ {
		for unit := (n - i) / 2; unit >= minUnit; unit-- {
			j := i + unit

			// Skip whitespace between the occurrence and its repeat.
			k := j
			for k < n && isSpace(s[k]) {
				k++
			}
			if k+unit > n {
				continue
			}
			if !strings.EqualFold(s[i:j], s[k:k+unit]) {
				continue
			}
			if (k + unit - i) < c.minRun {
				continue
			}
			return s[:j] + s[k+unit:], true
		}
	}
	return s, false
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// normalizeWhitespace collapses whitespace runs to a single space and
// strips spaces preceding punctuation.
func normalizeWhitespace(s string) string {
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = spaceBeforePunct.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}
