package ingest

import (
	"go.uber.org/zap"

	"github.com/stratford-labs/statesman/internal/chunker"
	"github.com/stratford-labs/statesman/internal/document"
	"github.com/stratford-labs/statesman/internal/hansard"
	"github.com/stratford-labs/statesman/internal/metadata"
	"github.com/stratford-labs/statesman/internal/textclean"
)

// Builder converts loaded documents into chunks ready for indexing.
//
// Transcripts go through speaker attribution first, so only the target
// speaker's words are chunked. Narrator documents (biographies,
// histories) skip attribution and are chunked page by page under the
// "Narrator" speaker.
type Builder struct {
	resolver  *metadata.Resolver
	extractor *hansard.Extractor
	cleaner   *textclean.Cleaner
	speech    chunker.Chunker
	narrator  chunker.Chunker
	logger    *zap.Logger
}

// NewBuilder creates a Builder. maxWords bounds chunk size for both
// document kinds.
func NewBuilder(resolver *metadata.Resolver, extractor *hansard.Extractor, cleaner *textclean.Cleaner, maxWords int, logger *zap.Logger) *Builder {
	if maxWords <= 0 {
		maxWords = chunker.DefaultMaxWords
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		resolver:  resolver,
		extractor: extractor,
		cleaner:   cleaner,
		speech:    chunker.NewSentence(maxWords),
		narrator:  chunker.NewWindow(maxWords),
		logger:    logger,
	}
}

// Build produces the chunks for one document. The chunk index counts up
// across the whole document, so ids stay unique within a source.
func (b *Builder) Build(doc *document.Document) []Chunk {
	record, resolution := b.resolver.Resolve(doc.Source)
	if doc.Year != nil {
		// An explicit year on the document wins over the filename.
		record.Year = doc.Year
	}

	if resolution.Fallback {
		b.logger.Debug("filename metadata resolved by fallback",
			zap.String("source", doc.Source))
	}

	if doc.IsTranscript() {
		return b.buildTranscript(doc, record)
	}
	return b.buildNarrator(doc, record)
}

func (b *Builder) buildTranscript(doc *document.Document, record metadata.Record) []Chunk {
	blocks := b.extractor.Extract(doc.Pages)
	if len(blocks) == 0 {
		b.logger.Warn("no speeches attributed in transcript",
			zap.String("source", doc.Source),
			zap.Int("pages", len(doc.Pages)))
		return nil
	}

	var chunks []Chunk
	index := 0
	for _, block := range blocks {
		text := b.cleaner.Clean(block.Text)
		for _, piece := range b.speech.Chunk(text) {
			chunks = append(chunks, b.newChunk(piece, b.extractor.Speaker(), doc.Source, block.Page, index, record))
			index++
		}
	}

	b.logger.Info("built transcript chunks",
		zap.String("source", doc.Source),
		zap.Int("speech_blocks", len(blocks)),
		zap.Int("chunks", len(chunks)))
	return chunks
}

func (b *Builder) buildNarrator(doc *document.Document, record metadata.Record) []Chunk {
	var chunks []Chunk
	index := 0
	for _, page := range doc.Pages {
		text := b.cleaner.Clean(page.Text)
		for _, piece := range b.narrator.Chunk(text) {
			chunks = append(chunks, b.newChunk(piece, "Narrator", doc.Source, page.Number, index, record))
			index++
		}
	}

	b.logger.Info("built narrator chunks",
		zap.String("source", doc.Source),
		zap.Int("pages", len(doc.Pages)),
		zap.Int("chunks", len(chunks)))
	return chunks
}

func (b *Builder) newChunk(content, speaker, source string, page, index int, record metadata.Record) Chunk {
	return Chunk{
		Content:    content,
		Speaker:    speaker,
		Source:     source,
		Page:       page,
		Index:      index,
		Parliament: record.Parliament,
		Session:    record.Session,
		Volume:     record.Volume,
		Year:       record.Year,
	}
}
