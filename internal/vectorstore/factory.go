package vectorstore

import (
	"fmt"

	"go.uber.org/zap"
)

// Provider names understood by NewStore.
const (
	ProviderChromem = "chromem"
	ProviderQdrant  = "qdrant"
)

// Config selects and configures a Store backend.
type Config struct {
	// Provider selects the backend: "chromem" (embedded, default) or
	// "qdrant" (external server).
	Provider string

	Chromem ChromemConfig
	Qdrant  QdrantConfig
}

// ApplyDefaults sets default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderChromem
	}
	c.Chromem.ApplyDefaults()
	c.Qdrant.ApplyDefaults()
}

// Validate validates the configuration for the selected provider.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderChromem:
		return c.Chromem.Validate()
	case ProviderQdrant:
		return c.Qdrant.Validate()
	default:
		return fmt.Errorf("%w: unknown provider %q (want %q or %q)",
			ErrInvalidConfig, c.Provider, ProviderChromem, ProviderQdrant)
	}
}

// NewStore creates a Store for the configured provider.
func NewStore(config Config, embedder Embedder, logger *zap.Logger) (Store, error) {
	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Provider {
	case ProviderChromem:
		return NewChromemStore(config.Chromem, embedder, logger)
	case ProviderQdrant:
		return NewQdrantStore(config.Qdrant, embedder, logger)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, config.Provider)
	}
}
