package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stratford-labs/statesman/internal/document"
	"github.com/stratford-labs/statesman/internal/hansard"
	"github.com/stratford-labs/statesman/internal/ingest"
	"github.com/stratford-labs/statesman/internal/textclean"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <dir>",
	Short: "Rebuild the corpus from a directory of documents",
	Long: `Ingest loads every document in the directory, attributes speeches,
cleans and chunks the text, and indexes embeddings into the vector
store. The store is cleared first, so each run rebuilds the corpus
from scratch; deterministic chunk ids keep repeat runs stable.

Transcripts (.json, paginated) go through speaker attribution.
Plain text files (.txt) are indexed whole under the Narrator speaker.

Examples:
  statesman ingest ./corpus
  statesman ingest --config ./statesman.yaml ./corpus`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	resolver, err := newResolver(cfg, logger)
	if err != nil {
		return err
	}
	extractor, err := hansard.NewExtractor(speakerProfile(cfg), logger)
	if err != nil {
		return fmt.Errorf("building speech extractor: %w", err)
	}

	store, provider, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()
	defer provider.Close()

	ctx := cmd.Context()

	docs, err := document.LoadDir(args[0], logger)
	if err != nil {
		return fmt.Errorf("loading documents from %s: %w", args[0], err)
	}
	if len(docs) == 0 {
		return fmt.Errorf("no documents found in %s", args[0])
	}

	// Clear-then-rebuild: the directory is the source of truth.
	if err := store.Reset(ctx); err != nil {
		return fmt.Errorf("resetting vector store: %w", err)
	}

	builder := ingest.NewBuilder(resolver, extractor, textclean.New(cfg.Cleaner.MinRunLength), cfg.Chunker.MaxWords, logger)
	indexer := ingest.NewIndexer(store, cfg.Ingest.BatchSize, logger)
	pipeline := ingest.NewPipeline(builder, indexer, logger)

	summary, err := pipeline.Run(ctx, docs)
	if err != nil {
		return err
	}

	logger.Info("ingest finished",
		zap.Int("documents", summary.DocumentsProcessed),
		zap.Int("chunks_indexed", summary.ChunksIndexed))

	fmt.Printf("Ingested %d documents: %d chunks indexed, %d skipped, %d batches failed\n",
		summary.DocumentsProcessed, summary.ChunksIndexed, summary.ChunksSkipped, summary.BatchesFailed)
	return nil
}
