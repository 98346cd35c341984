// Package ingest turns parliamentary documents into embedded, searchable
// chunks: speaker attribution, cleaning, chunking, then batched indexing
// into the vector store.
package ingest

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidChunk indicates a chunk missing required fields.
var ErrInvalidChunk = errors.New("invalid chunk")

// Chunk is one indexable unit of speech text with its provenance.
type Chunk struct {
	// Content is the cleaned chunk text.
	Content string

	// Speaker is the attributed speaker ("Narrator" for non-transcript
	// sources).
	Speaker string

	// Source is the originating document name.
	Source string

	// Page is the page the chunk's speech began on.
	Page int

	// Index is the chunk's position within its document, counted
	// across all speech blocks.
	Index int

	// Parliament, Session, Volume, and Year are resolved from the
	// source filename; nil when unknown.
	Parliament *int
	Session    *int
	Volume     *int
	Year       *int
}

// ID returns the chunk's deterministic identifier. The same document
// chunked the same way always produces the same ids, so re-ingestion
// overwrites rather than duplicates.
func (c Chunk) ID() string {
	return fmt.Sprintf("parl_%s_sess_%s_%s_%d_%d",
		intOrUnknown(c.Parliament), intOrUnknown(c.Session), c.Source, c.Page, c.Index)
}

func intOrUnknown(v *int) string {
	if v == nil {
		return "unknown"
	}
	return strconv.Itoa(*v)
}

// Validate checks that the chunk carries everything indexing requires.
func (c Chunk) Validate() error {
	if c.Content == "" {
		return fmt.Errorf("%w: empty content", ErrInvalidChunk)
	}
	if c.Speaker == "" {
		return fmt.Errorf("%w: missing speaker", ErrInvalidChunk)
	}
	if c.Source == "" {
		return fmt.Errorf("%w: missing source", ErrInvalidChunk)
	}
	if c.Page <= 0 {
		return fmt.Errorf("%w: invalid page %d", ErrInvalidChunk, c.Page)
	}
	return nil
}

// Metadata returns the chunk's metadata map for the vector store.
// Optional fields resolved from the filename are omitted when unknown.
func (c Chunk) Metadata() map[string]interface{} {
	m := map[string]interface{}{
		"speaker":     c.Speaker,
		"source":      c.Source,
		"page":        c.Page,
		"chunk_index": c.Index,
	}
	if c.Parliament != nil {
		m["parliament"] = *c.Parliament
	}
	if c.Session != nil {
		m["session"] = *c.Session
	}
	if c.Volume != nil {
		m["volume"] = *c.Volume
	}
	if c.Year != nil {
		m["year"] = *c.Year
	}
	return m
}
