package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stratford-labs/statesman/internal/vectorstore"
)

// fakeStore records batches and can fail selected ones.
type fakeStore struct {
	batches    [][]vectorstore.Document
	failBatch  map[int]error
	batchCount int
}

func (f *fakeStore) AddDocuments(_ context.Context, docs []vectorstore.Document) ([]string, error) {
	n := f.batchCount
	f.batchCount++
	if err, ok := f.failBatch[n]; ok {
		return nil, err
	}
	f.batches = append(f.batches, docs)
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids, nil
}

func (f *fakeStore) Search(context.Context, string, int) ([]vectorstore.SearchResult, error) {
	return nil, nil
}

func (f *fakeStore) Count(context.Context) (int, error) {
	var n int
	for _, b := range f.batches {
		n += len(b)
	}
	return n, nil
}

func (f *fakeStore) Reset(context.Context) error { return nil }
func (f *fakeStore) Close() error                { return nil }

func makeChunks(n int) []Chunk {
	chunks := make([]Chunk, n)
	for i := range chunks {
		chunks[i] = Chunk{
			Content: "some speech text",
			Speaker: "Sir John A. Macdonald",
			Source:  "hansard_debate_01_02_1871",
			Page:    1,
			Index:   i,
		}
	}
	return chunks
}

func TestIndexer_Batching(t *testing.T) {
	store := &fakeStore{}
	indexer := NewIndexer(store, 100, zap.NewNop())

	summary, err := indexer.Index(context.Background(), makeChunks(250))
	require.NoError(t, err)

	assert.Equal(t, 250, summary.ChunksIndexed)
	assert.Equal(t, 0, summary.ChunksSkipped)
	require.Len(t, store.batches, 3)
	assert.Len(t, store.batches[0], 100)
	assert.Len(t, store.batches[1], 100)
	assert.Len(t, store.batches[2], 50)
}

func TestIndexer_SkipsInvalidChunks(t *testing.T) {
	chunks := makeChunks(5)
	chunks[2].Content = ""
	chunks[4].Speaker = ""

	store := &fakeStore{}
	indexer := NewIndexer(store, 100, zap.NewNop())

	summary, err := indexer.Index(context.Background(), chunks)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.ChunksIndexed)
	assert.Equal(t, 2, summary.ChunksSkipped)
}

func TestIndexer_BatchFailureDoesNotAbortRun(t *testing.T) {
	store := &fakeStore{failBatch: map[int]error{
		1: errors.New("embedding backend unavailable"),
	}}
	indexer := NewIndexer(store, 100, zap.NewNop())

	summary, err := indexer.Index(context.Background(), makeChunks(250))
	require.NoError(t, err)

	// Middle batch lost, the rest landed.
	assert.Equal(t, 150, summary.ChunksIndexed)
	assert.Equal(t, 100, summary.ChunksSkipped)
	assert.Equal(t, 1, summary.BatchesFailed)
	assert.Len(t, store.batches, 2)
}

func TestIndexer_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := &fakeStore{}
	indexer := NewIndexer(store, 100, zap.NewNop())

	_, err := indexer.Index(ctx, makeChunks(10))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIndexer_EmptyInput(t *testing.T) {
	store := &fakeStore{}
	indexer := NewIndexer(store, 100, zap.NewNop())

	summary, err := indexer.Index(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, summary)
	assert.Empty(t, store.batches)
}

func TestIndexer_DocumentIDsAreChunkIDs(t *testing.T) {
	store := &fakeStore{}
	indexer := NewIndexer(store, 100, zap.NewNop())

	chunks := makeChunks(2)
	_, err := indexer.Index(context.Background(), chunks)
	require.NoError(t, err)

	require.Len(t, store.batches, 1)
	assert.Equal(t, chunks[0].ID(), store.batches[0][0].ID)
	assert.Equal(t, chunks[1].ID(), store.batches[0][1].ID)
}
