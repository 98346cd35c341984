// Package main implements the statesman CLI: ingesting Canadian
// parliamentary documents into a vector store and composing grounded
// prompts for a Sir John A. Macdonald persona.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stratford-labs/statesman/internal/config"
	"github.com/stratford-labs/statesman/internal/embeddings"
	"github.com/stratford-labs/statesman/internal/hansard"
	"github.com/stratford-labs/statesman/internal/logging"
	"github.com/stratford-labs/statesman/internal/metadata"
	"github.com/stratford-labs/statesman/internal/vectorstore"
)

var (
	// configPath is the YAML config file; empty uses the default path.
	configPath string
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "statesman",
	Short: "Speaker-attributed retrieval over Canadian parliamentary documents",
	Long: `statesman builds a searchable corpus of Sir John A. Macdonald's
parliamentary speeches. The ingest command attributes, cleans, chunks,
embeds, and indexes documents; the ask command retrieves the excerpts
most relevant to a question and composes a grounded persona prompt.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/statesman/config.yaml)")
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(askCmd)
}

// setup loads configuration and builds the logger. Failures here are
// fatal; nothing has been touched yet.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// openStore builds the embedding provider and vector store from config.
// The caller closes both.
func openStore(cfg *config.Config, logger *zap.Logger) (vectorstore.Store, embeddings.Provider, error) {
	provider, err := embeddings.NewProvider(cfg.ProviderConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("creating embedding provider: %w", err)
	}

	storeCfg := cfg.StoreConfig()
	storeCfg.Chromem.VectorSize = provider.Dimension()
	storeCfg.Qdrant.VectorSize = uint64(provider.Dimension())

	store, err := vectorstore.NewStore(storeCfg, provider, logger)
	if err != nil {
		_ = provider.Close()
		return nil, nil, fmt.Errorf("opening vector store: %w", err)
	}
	return store, provider, nil
}

// speakerProfile builds the attribution profile from config, falling
// back to the built-in Macdonald profile.
func speakerProfile(cfg *config.Config) hansard.SpeakerProfile {
	if cfg.Speaker.Name == "" && len(cfg.Speaker.Patterns) == 0 {
		return hansard.MacdonaldProfile()
	}
	profile := hansard.SpeakerProfile{
		Name:     cfg.Speaker.Name,
		Patterns: cfg.Speaker.Patterns,
	}
	if profile.Name == "" {
		profile.Name = hansard.MacdonaldProfile().Name
	}
	if len(profile.Patterns) == 0 {
		profile.Patterns = hansard.MacdonaldProfile().Patterns
	}
	return profile
}

// newResolver builds the filename metadata resolver with any extra
// patterns from config.
func newResolver(cfg *config.Config, logger *zap.Logger) (*metadata.Resolver, error) {
	resolver, err := metadata.NewResolver(cfg.Metadata.Patterns, logger)
	if err != nil {
		return nil, fmt.Errorf("building metadata resolver: %w", err)
	}
	return resolver, nil
}
