// Package document defines the source document model and loaders for
// paginated raw text handed over by the PDF/HTML extraction step.
package document

// Document kinds determine how a source is attributed and chunked.
const (
	// KindTranscript marks debate transcripts that interleave many
	// speakers; they go through speaker attribution before chunking.
	KindTranscript = "transcript"

	// KindNarrator marks prose sources (books, scraped pages) whose full
	// text is attributed to a narrator and chunked on fixed word windows.
	KindNarrator = "narrator"
)

// Page is one page of extracted text. Page numbers start at 1.
type Page struct {
	Number int    `json:"page"`
	Text   string `json:"text"`
}

// Document is a single ingested source file with its paginated raw text.
// Documents are immutable once loaded; a fresh ingestion run rebuilds the
// store from scratch rather than mutating them.
type Document struct {
	// Source is the stable source identifier, normally the filename the
	// document was extracted from. It is part of every chunk id.
	Source string `json:"source"`

	// Kind selects the attribution mode. Empty means KindTranscript.
	Kind string `json:"kind,omitempty"`

	// Year overrides the year derived from the filename, for sources whose
	// names carry no usable date (e.g. scraped biographies).
	Year *int `json:"year,omitempty"`

	Pages []Page `json:"pages"`
}

// IsTranscript reports whether the document should go through speaker
// attribution.
func (d *Document) IsTranscript() bool {
	return d.Kind == "" || d.Kind == KindTranscript
}
