// Package vectorstore defines the persistent nearest-neighbor store that
// holds embedded speech chunks, with embedded (chromem) and remote
// (Qdrant) implementations.
package vectorstore

import (
	"context"
	"errors"
)

// Sentinel errors for vector store operations.
var (
	// ErrInvalidConfig indicates invalid configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmptyDocuments indicates empty or nil documents.
	ErrEmptyDocuments = errors.New("empty or nil documents")

	// ErrEmbeddingFailed indicates embedding generation failure.
	ErrEmbeddingFailed = errors.New("failed to generate embeddings")

	// ErrCollectionNotFound is returned when the collection does not exist.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrConnectionFailed indicates the Qdrant gRPC connection failed.
	ErrConnectionFailed = errors.New("failed to connect to Qdrant")
)

// Document is a record to be embedded and stored.
type Document struct {
	// ID is the deterministic chunk id. Re-indexing a document with the
	// same id overwrites the stored record rather than duplicating it.
	ID string

	// Content is the chunk text.
	Content string

	// Metadata carries the chunk's provenance (speaker, source, page,
	// parliament, session, year, volume, chunk_index).
	Metadata map[string]interface{}
}

// SearchResult is one ranked hit from a similarity search.
type SearchResult struct {
	ID       string
	Content  string
	Score    float32
	Metadata map[string]interface{}
}

// Embedder generates vector embeddings from text.
//
// The same embedder instance must be used for indexing and querying:
// mismatched models silently degrade relevance instead of failing loudly.
type Embedder interface {
	// EmbedDocuments generates embeddings for multiple texts.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery generates an embedding for a single query. Some models
	// optimize differently for queries vs documents.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Store is the persistent vector store for one corpus collection.
//
// Ingestion treats the store as a single-writer resource (rebuild is
// exclusive: Reset then repopulate); queries are read-only and safe to run
// concurrently.
type Store interface {
	// AddDocuments embeds and upserts documents. Returns the stored ids.
	AddDocuments(ctx context.Context, docs []Document) ([]string, error)

	// Search returns up to k results ordered by similarity, closest first.
	Search(ctx context.Context, query string, k int) ([]SearchResult, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Reset clears the collection. Callers must Reset before re-indexing:
	// chunk ids are deterministic and colliding ids silently overwrite.
	Reset(ctx context.Context) error

	// Close releases the store's resources.
	Close() error
}
