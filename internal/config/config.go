// Package config provides configuration loading for statesman.
//
// Configuration is loaded from a YAML file, then overridden by
// STATESMAN_-prefixed environment variables, with hardcoded defaults
// filling anything left unset.
package config

import (
	"fmt"

	"github.com/stratford-labs/statesman/internal/chunker"
	"github.com/stratford-labs/statesman/internal/embeddings"
	"github.com/stratford-labs/statesman/internal/ingest"
	"github.com/stratford-labs/statesman/internal/metadata"
	"github.com/stratford-labs/statesman/internal/retrieval"
	"github.com/stratford-labs/statesman/internal/textclean"
	"github.com/stratford-labs/statesman/internal/vectorstore"
)

// Config holds the complete statesman configuration.
type Config struct {
	Chunker     ChunkerConfig     `koanf:"chunker"`
	Cleaner     CleanerConfig     `koanf:"cleaner"`
	Speaker     SpeakerConfig     `koanf:"speaker"`
	Metadata    MetadataConfig    `koanf:"metadata"`
	Embeddings  EmbeddingsConfig  `koanf:"embeddings"`
	VectorStore VectorStoreConfig `koanf:"vectorstore"`
	Ingest      IngestConfig      `koanf:"ingest"`
	Retrieval   RetrievalConfig   `koanf:"retrieval"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// ChunkerConfig bounds chunk sizes.
type ChunkerConfig struct {
	MaxWords int `koanf:"max_words"`
}

// CleanerConfig tunes OCR duplication cleanup.
type CleanerConfig struct {
	MinRunLength int `koanf:"min_run_length"`
}

// SpeakerConfig selects whose speeches to attribute. Patterns are
// regular expressions matching speech introductions; empty means the
// built-in Macdonald profile.
type SpeakerConfig struct {
	Name     string   `koanf:"name"`
	Patterns []string `koanf:"patterns"`
}

// MetadataConfig adds filename patterns beyond the built-in ones.
type MetadataConfig struct {
	Patterns []metadata.Pattern `koanf:"patterns"`
}

// EmbeddingsConfig selects and configures the embedding provider.
type EmbeddingsConfig struct {
	Provider     string `koanf:"provider"`
	Model        string `koanf:"model"`
	BaseURL      string `koanf:"base_url"`
	CacheDir     string `koanf:"cache_dir"`
	ShowProgress bool   `koanf:"show_progress"`
}

// VectorStoreConfig selects and configures the vector store backend.
// Fields are flat so environment overrides map cleanly; Path and
// Compress apply to chromem, Host through UseTLS to qdrant.
type VectorStoreConfig struct {
	Provider   string `koanf:"provider"`
	Collection string `koanf:"collection"`

	Path     string `koanf:"path"`
	Compress bool   `koanf:"compress"`

	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	UseTLS bool   `koanf:"use_tls"`
}

// IngestConfig tunes the indexing run.
type IngestConfig struct {
	BatchSize int `koanf:"batch_size"`
}

// RetrievalConfig tunes question answering.
type RetrievalConfig struct {
	TopK int `koanf:"top_k"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// applyDefaults fills unset fields with defaults.
func applyDefaults(cfg *Config) {
	if cfg.Chunker.MaxWords == 0 {
		cfg.Chunker.MaxWords = chunker.DefaultMaxWords
	}
	if cfg.Cleaner.MinRunLength == 0 {
		cfg.Cleaner.MinRunLength = textclean.DefaultMinRunLength
	}
	if cfg.Embeddings.Provider == "" {
		cfg.Embeddings.Provider = "fastembed"
	}
	if cfg.Embeddings.Model == "" {
		cfg.Embeddings.Model = embeddings.DefaultModel
	}
	if cfg.VectorStore.Provider == "" {
		cfg.VectorStore.Provider = vectorstore.ProviderChromem
	}
	if cfg.VectorStore.Collection == "" {
		cfg.VectorStore.Collection = "speeches"
	}
	if cfg.Ingest.BatchSize == 0 {
		cfg.Ingest.BatchSize = ingest.DefaultBatchSize
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = retrieval.DefaultTopK
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Chunker.MaxWords < 1 {
		return fmt.Errorf("chunker.max_words must be positive, got %d", c.Chunker.MaxWords)
	}
	if c.Cleaner.MinRunLength < 2 {
		return fmt.Errorf("cleaner.min_run_length must be at least 2, got %d", c.Cleaner.MinRunLength)
	}
	if c.Ingest.BatchSize < 1 {
		return fmt.Errorf("ingest.batch_size must be positive, got %d", c.Ingest.BatchSize)
	}
	if c.Retrieval.TopK < 1 {
		return fmt.Errorf("retrieval.top_k must be positive, got %d", c.Retrieval.TopK)
	}
	switch c.VectorStore.Provider {
	case vectorstore.ProviderChromem, vectorstore.ProviderQdrant:
	default:
		return fmt.Errorf("vectorstore.provider must be %q or %q, got %q",
			vectorstore.ProviderChromem, vectorstore.ProviderQdrant, c.VectorStore.Provider)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be \"json\" or \"console\", got %q", c.Logging.Format)
	}
	return nil
}

// StoreConfig maps the flat vectorstore section onto the store factory
// configuration.
func (c *Config) StoreConfig() vectorstore.Config {
	return vectorstore.Config{
		Provider: c.VectorStore.Provider,
		Chromem: vectorstore.ChromemConfig{
			Path:       c.VectorStore.Path,
			Compress:   c.VectorStore.Compress,
			Collection: c.VectorStore.Collection,
		},
		Qdrant: vectorstore.QdrantConfig{
			Host:       c.VectorStore.Host,
			Port:       c.VectorStore.Port,
			Collection: c.VectorStore.Collection,
			UseTLS:     c.VectorStore.UseTLS,
		},
	}
}

// ProviderConfig maps the embeddings section onto the provider factory
// configuration.
func (c *Config) ProviderConfig() embeddings.Config {
	return embeddings.Config{
		Provider:     c.Embeddings.Provider,
		Model:        c.Embeddings.Model,
		BaseURL:      c.Embeddings.BaseURL,
		CacheDir:     c.Embeddings.CacheDir,
		ShowProgress: c.Embeddings.ShowProgress,
	}
}
