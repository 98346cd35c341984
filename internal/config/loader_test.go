package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratford-labs/statesman/internal/vectorstore"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Chunker.MaxWords)
	assert.Equal(t, 15, cfg.Cleaner.MinRunLength)
	assert.Equal(t, 100, cfg.Ingest.BatchSize)
	assert.Equal(t, 3, cfg.Retrieval.TopK)
	assert.Equal(t, vectorstore.ProviderChromem, cfg.VectorStore.Provider)
	assert.Equal(t, "speeches", cfg.VectorStore.Collection)
	assert.Equal(t, "fastembed", cfg.Embeddings.Provider)
	assert.Equal(t, "sentence-transformers/all-MiniLM-L6-v2", cfg.Embeddings.Model)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, `
chunker:
  max_words: 250
retrieval:
  top_k: 5
vectorstore:
  provider: qdrant
  host: qdrant.internal
  port: 6334
metadata:
  patterns:
    - name: sessional_papers
      regex: 'sessional_(\d{2})_(\d{4})'
      fields: [parliament, year]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.Chunker.MaxWords)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
	assert.Equal(t, vectorstore.ProviderQdrant, cfg.VectorStore.Provider)
	assert.Equal(t, "qdrant.internal", cfg.VectorStore.Host)

	require.Len(t, cfg.Metadata.Patterns, 1)
	assert.Equal(t, "sessional_papers", cfg.Metadata.Patterns[0].Name)
	assert.Equal(t, []string{"parliament", "year"}, cfg.Metadata.Patterns[0].Fields)

	// Untouched sections keep defaults.
	assert.Equal(t, 15, cfg.Cleaner.MinRunLength)
	assert.Equal(t, 100, cfg.Ingest.BatchSize)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "retrieval:\n  top_k: 5\n")

	t.Setenv("STATESMAN_RETRIEVAL_TOP_K", "7")
	t.Setenv("STATESMAN_LOGGING_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Retrieval.TopK)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative top_k", "retrieval:\n  top_k: -1\n"},
		{"unknown provider", "vectorstore:\n  provider: pinecone\n"},
		{"bad log format", "logging:\n  format: xml\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "chunker: ["))
	assert.Error(t, err)
}

func TestStoreConfig_Mapping(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
vectorstore:
  provider: chromem
  collection: speeches
  path: /var/lib/statesman
  compress: true
`))
	require.NoError(t, err)

	sc := cfg.StoreConfig()
	assert.Equal(t, vectorstore.ProviderChromem, sc.Provider)
	assert.Equal(t, "/var/lib/statesman", sc.Chromem.Path)
	assert.True(t, sc.Chromem.Compress)
	assert.Equal(t, "speeches", sc.Chromem.Collection)
}
