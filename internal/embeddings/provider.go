// Package embeddings provides embedding generation via multiple providers.
//
// Supports FastEmbed (local ONNX models, requires CGO) and TEI
// (text-embeddings-inference over HTTP). The factory selects a provider
// at runtime and detects the vector dimension for common models.
package embeddings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stratford-labs/statesman/internal/vectorstore"
)

var (
	// ErrEmptyInput indicates empty or nil input texts.
	ErrEmptyInput = errors.New("empty or nil input texts")

	// ErrInvalidConfig indicates invalid configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmbeddingFailed indicates embedding generation failure.
	ErrEmbeddingFailed = errors.New("embedding generation failed")
)

// Provider is the interface for embedding providers.
type Provider interface {
	vectorstore.Embedder
	// Dimension returns the embedding dimension for the current model.
	Dimension() int
	// Close releases resources held by the provider.
	Close() error
}

// Config holds configuration for creating an embedding provider.
type Config struct {
	// Provider is the provider type: "fastembed" (default) or "tei".
	Provider string
	// Model is the embedding model name.
	Model string
	// BaseURL is the TEI endpoint URL (TEI provider only).
	BaseURL string
	// CacheDir is the model cache directory (FastEmbed only).
	CacheDir string
	// ShowProgress enables download progress bars (FastEmbed only).
	ShowProgress bool
}

// ApplyDefaults sets default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = "fastembed"
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:8080"
	}
}

// detectDimension returns the embedding dimension for a model name,
// falling back to common size conventions for unknown models.
func detectDimension(model string) int {
	if dim, ok := modelDimension(model); ok {
		return dim
	}
	switch {
	case strings.Contains(model, "base"):
		return 768
	case strings.Contains(model, "large"):
		return 1024
	default:
		return 384
	}
}

// NewProvider creates an embedding provider based on the configuration.
func NewProvider(cfg Config) (Provider, error) {
	cfg.ApplyDefaults()

	switch cfg.Provider {
	case "fastembed":
		return NewFastEmbedProvider(FastEmbedConfig{
			Model:        cfg.Model,
			CacheDir:     cfg.CacheDir,
			ShowProgress: cfg.ShowProgress,
		})
	case "tei":
		svc, err := NewTEIService(TEIConfig{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
		if err != nil {
			return nil, err
		}
		return &teiProvider{TEIService: svc, dimension: detectDimension(cfg.Model)}, nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q (want \"fastembed\" or \"tei\")", ErrInvalidConfig, cfg.Provider)
	}
}

// teiProvider wraps TEIService to implement the Provider interface.
type teiProvider struct {
	*TEIService
	dimension int
}

// Dimension returns the embedding dimension based on the configured model.
func (t *teiProvider) Dimension() int {
	return t.dimension
}

// Close is a no-op for TEI since it uses plain HTTP.
func (t *teiProvider) Close() error {
	return nil
}
