package ingest

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/stratford-labs/statesman/internal/document"
	"github.com/stratford-labs/statesman/internal/vectorstore"
)

var tracer = otel.Tracer("statesman.ingest")

// DefaultBatchSize is the number of chunks embedded and upserted per call.
const DefaultBatchSize = 100

// Summary reports what an indexing run accomplished.
type Summary struct {
	DocumentsProcessed int
	ChunksIndexed      int
	ChunksSkipped      int
	BatchesFailed      int
}

// Add accumulates another summary into this one.
func (s *Summary) Add(other Summary) {
	s.DocumentsProcessed += other.DocumentsProcessed
	s.ChunksIndexed += other.ChunksIndexed
	s.ChunksSkipped += other.ChunksSkipped
	s.BatchesFailed += other.BatchesFailed
}

// Indexer writes chunks into the vector store in batches.
//
// Failures are contained: an invalid chunk is skipped, a failed batch is
// logged and skipped, and the run continues. Only context cancellation
// aborts a run.
type Indexer struct {
	store     vectorstore.Store
	batchSize int
	logger    *zap.Logger
}

// NewIndexer creates an Indexer. batchSize defaults to DefaultBatchSize.
func NewIndexer(store vectorstore.Store, batchSize int, logger *zap.Logger) *Indexer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Indexer{store: store, batchSize: batchSize, logger: logger}
}

// Index validates, batches, and upserts chunks. The returned Summary
// counts outcomes; the error is non-nil only when the context is
// canceled mid-run.
func (ix *Indexer) Index(ctx context.Context, chunks []Chunk) (Summary, error) {
	ctx, span := tracer.Start(ctx, "Indexer.Index")
	defer span.End()
	span.SetAttributes(attribute.Int("chunk_count", len(chunks)))

	var summary Summary

	valid := make([]vectorstore.Document, 0, len(chunks))
	for _, chunk := range chunks {
		if err := chunk.Validate(); err != nil {
			summary.ChunksSkipped++
			ix.logger.Warn("skipping invalid chunk",
				zap.String("source", chunk.Source),
				zap.Int("chunk_index", chunk.Index),
				zap.Error(err))
			continue
		}
		valid = append(valid, vectorstore.Document{
			ID:       chunk.ID(),
			Content:  chunk.Content,
			Metadata: chunk.Metadata(),
		})
	}

	for start := 0; start < len(valid); start += ix.batchSize {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("indexing aborted: %w", err)
		}

		end := start + ix.batchSize
		if end > len(valid) {
			end = len(valid)
		}
		batch := valid[start:end]

		if _, err := ix.store.AddDocuments(ctx, batch); err != nil {
			summary.BatchesFailed++
			summary.ChunksSkipped += len(batch)
			ix.logger.Error("batch failed, continuing",
				zap.Int("batch_start", start),
				zap.Int("batch_size", len(batch)),
				zap.Error(err))
			continue
		}
		summary.ChunksIndexed += len(batch)
	}

	span.SetAttributes(
		attribute.Int("chunks_indexed", summary.ChunksIndexed),
		attribute.Int("chunks_skipped", summary.ChunksSkipped),
		attribute.Int("batches_failed", summary.BatchesFailed),
	)
	return summary, nil
}

// Pipeline runs documents through the Builder and Indexer.
type Pipeline struct {
	builder *Builder
	indexer *Indexer
	logger  *zap.Logger
}

// NewPipeline creates a Pipeline from an assembled Builder and Indexer.
func NewPipeline(builder *Builder, indexer *Indexer, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{builder: builder, indexer: indexer, logger: logger}
}

// Run ingests a set of documents. Per-document failures are logged and
// skipped so one bad document never aborts the corpus.
func (p *Pipeline) Run(ctx context.Context, docs []*document.Document) (Summary, error) {
	ctx, span := tracer.Start(ctx, "Pipeline.Run")
	defer span.End()
	span.SetAttributes(attribute.Int("document_count", len(docs)))

	var total Summary
	for _, doc := range docs {
		chunks := p.builder.Build(doc)
		summary, err := p.indexer.Index(ctx, chunks)
		total.Add(summary)
		if err != nil {
			return total, err
		}
		total.DocumentsProcessed++
	}

	p.logger.Info("ingestion complete",
		zap.Int("documents", total.DocumentsProcessed),
		zap.Int("chunks_indexed", total.ChunksIndexed),
		zap.Int("chunks_skipped", total.ChunksSkipped),
		zap.Int("batches_failed", total.BatchesFailed))
	return total, nil
}
