// Package chunker splits long text into bounded-size segments for
// retrieval indexing.
package chunker

import "strings"

// DefaultMaxWords is the default chunk budget in words.
const DefaultMaxWords = 500

// Chunker splits a text into retrieval-sized chunks.
type Chunker interface {
	Chunk(text string) []string
}

// SentenceChunker produces word-bounded chunks whose boundaries fall on
// sentence boundaries wherever possible. A single sentence longer than the
// budget becomes its own oversized chunk rather than being split
// mid-sentence.
type SentenceChunker struct {
	maxWords int
}

// NewSentence returns a SentenceChunker with the given word budget.
// Non-positive budgets fall back to DefaultMaxWords.
func NewSentence(maxWords int) *SentenceChunker {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	return &SentenceChunker{maxWords: maxWords}
}

// Chunk splits text into sentence-respecting chunks. Empty or
// whitespace-only input yields no chunks.
func (c *SentenceChunker) Chunk(text string) []string {
	sentences := splitSentences(strings.TrimSpace(text))

	var chunks []string
	var current []string
	wordCount := 0

	for _, sentence := range sentences {
		n := len(strings.Fields(sentence))
		if n == 0 {
			continue
		}

		// A sentence that alone exceeds the budget is preserved whole
		// as its own chunk.
		if len(current) == 0 && n > c.maxWords {
			chunks = append(chunks, sentence)
			continue
		}

		if wordCount+n > c.maxWords {
			chunks = append(chunks, strings.Join(current, " "))
			current = []string{sentence}
			wordCount = n
			continue
		}

		current = append(current, sentence)
		wordCount += n
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}

// splitSentences splits on '.', '?' or '!' followed by whitespace, keeping
// the terminator with its sentence. Text after the final terminator is
// returned as a trailing sentence so no words are lost.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	i := 0
	for i < len(text) {
		if isTerminator(text[i]) && i+1 < len(text) && isSpaceByte(text[i+1]) {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				sentences = append(sentences, s)
			}
			i += 2
			for i < len(text) && isSpaceByte(text[i]) {
				i++
			}
			start = i
			continue
		}
		i++
	}
	if start < len(text) {
		if s := strings.TrimSpace(text[start:]); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func isTerminator(b byte) bool {
	return b == '.' || b == '?' || b == '!'
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// WindowChunker splits text on fixed word windows with no sentence
// awareness. It is the fallback mode for sources without clean punctuation,
// such as text scraped from HTML.
type WindowChunker struct {
	maxWords int
}

// NewWindow returns a WindowChunker with the given word budget.
// Non-positive budgets fall back to DefaultMaxWords.
func NewWindow(maxWords int) *WindowChunker {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	return &WindowChunker{maxWords: maxWords}
}

// Chunk splits text into consecutive windows of at most maxWords words.
func (c *WindowChunker) Chunk(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	chunks := make([]string, 0, (len(words)+c.maxWords-1)/c.maxWords)
	for i := 0; i < len(words); i += c.maxWords {
		end := i + c.maxWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}
