// Package hansard isolates contiguous transcript spans attributable to a
// single named speaker.
//
// Parliamentary transcripts interleave many speakers, and only contiguous
// attributed spans are trustworthy evidence for a system that presents its
// output as direct quotation. The extractor therefore prefers false
// negatives over false positives: a speech resuming after an interjection
// starts a new block instead of being merged with the earlier one.
package hansard

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/stratford-labs/statesman/internal/document"
)

// newSpeakerPattern matches a generic speaker introduction: a capitalized
// name followed by a colon at the start of a line.
var newSpeakerPattern = regexp.MustCompile(`^[A-Z][\w\s.'-]+:`)

// SpeechBlock is a maximal contiguous run of lines attributed to the target
// speaker, tagged with the page on which it began.
type SpeechBlock struct {
	Page int
	Text string
}

// SpeakerProfile names a speaker and lists the introduction patterns that
// open one of their speeches. Patterns are tried in order, most formal
// first; the first match wins and the matched introduction phrase is
// stripped from the opening line.
type SpeakerProfile struct {
	Name     string
	Patterns []string
}

// MacdonaldProfile returns the default profile for Sir John A. Macdonald as
// recorded in the Hansard debates. The verb list (rose/said/moved/
// addressed/spoke) was tuned against that corpus; supply a custom profile
// for other speakers or corpora.
func MacdonaldProfile() SpeakerProfile {
	return SpeakerProfile{
		Name: "John A. Macdonald",
		Patterns: []string{
			`(?i)(Right\s+)?Hon(\.|ourable)?\s+Sir\s+John\s+A\.?\s+Macdonald.*?(rose|said|moved|addressed|spoke)`,
			`(?i)Sir\s+John\s+A\.?\s+Macdonald.*?(rose|said|moved|addressed|spoke)`,
			`(?i)Mr\.?\s+Macdonald.*?(rose|said|moved|addressed|spoke)`,
		},
	}
}

// Extractor scans paginated transcript text and emits the target speaker's
// SpeechBlocks.
type Extractor struct {
	name   string
	intros []*regexp.Regexp
	logger *zap.Logger
}

// NewExtractor compiles the profile's patterns. An invalid pattern is a
// setup failure and aborts construction.
func NewExtractor(profile SpeakerProfile, logger *zap.Logger) (*Extractor, error) {
	if len(profile.Patterns) == 0 {
		return nil, fmt.Errorf("speaker profile %q has no patterns", profile.Name)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	intros := make([]*regexp.Regexp, 0, len(profile.Patterns))
	for _, p := range profile.Patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling speaker pattern %q: %w", p, err)
		}
		intros = append(intros, re)
	}

	return &Extractor{
		name:   profile.Name,
		intros: intros,
		logger: logger,
	}, nil
}

// Speaker returns the profile's speaker name.
func (e *Extractor) Speaker() string {
	return e.name
}

// speech is the accumulating state while inside an attributed span.
// A nil *speech means the scan is outside any attributed span.
type speech struct {
	startPage int
	lines     []string
}

func (s *speech) block() SpeechBlock {
	return SpeechBlock{Page: s.startPage, Text: strings.Join(s.lines, " ")}
}

// Extract scans the pages line by line and returns the ordered sequence of
// SpeechBlocks attributed to the target speaker. A still-open span at end
// of input is flushed as a final block.
func (e *Extractor) Extract(pages []document.Page) []SpeechBlock {
	var blocks []SpeechBlock
	var current *speech

	for _, page := range pages {
		for _, line := range strings.Split(page.Text, "\n") {
			current = e.step(current, line, page.Number, &blocks)
		}
	}

	if current != nil && len(current.lines) > 0 {
		blocks = append(blocks, current.block())
	}

	e.logger.Debug("extracted speech blocks",
		zap.String("speaker", e.name),
		zap.Int("blocks", len(blocks)),
	)
	return blocks
}

// step applies the transition rules for one line, in priority order:
//
//  1. A speaker-introduction match opens a fresh span seeded with the
//     remainder of the line after stripping the introduction phrase.
//  2. A generic new-speaker marker closes the open span, if any.
//  3. Inside a span, the trimmed line is appended to the buffer.
//  4. Outside a span, the line is ignored.
func (e *Extractor) step(current *speech, line string, page int, blocks *[]SpeechBlock) *speech {
	trimmed := strings.TrimSpace(line)

	for _, re := range e.intros {
		if !re.MatchString(trimmed) {
			continue
		}
		// A fresh introduction always restarts the buffer. An open span
		// without a closing marker before it is discarded: ambiguity is
		// resolved toward dropping text rather than misattributing it.
		opened := &speech{startPage: page}
		if rest := strings.TrimSpace(re.ReplaceAllString(trimmed, "")); rest != "" {
			opened.lines = append(opened.lines, rest)
		}
		return opened
	}

	if newSpeakerPattern.MatchString(line) {
		if current != nil && len(current.lines) > 0 {
			*blocks = append(*blocks, current.block())
		}
		return nil
	}

	if current != nil {
		if trimmed != "" {
			current.lines = append(current.lines, trimmed)
		}
		return current
	}

	return nil
}
