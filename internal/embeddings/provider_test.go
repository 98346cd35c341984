package embeddings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectDimension(t *testing.T) {
	tests := []struct {
		model string
		want  int
	}{
		{"sentence-transformers/all-MiniLM-L6-v2", 384},
		{"BAAI/bge-small-en-v1.5", 384},
		{"BAAI/bge-base-en-v1.5", 768},
		{"BAAI/bge-small-zh-v1.5", 512},
		{"some-org/custom-base-model", 768},
		{"some-org/custom-large-model", 1024},
		{"some-org/unrecognized", 384},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			assert.Equal(t, tt.want, detectDimension(tt.model))
		})
	}
}

func TestNewProvider_TEI(t *testing.T) {
	provider, err := NewProvider(Config{
		Provider: "tei",
		Model:    "BAAI/bge-base-en-v1.5",
		BaseURL:  "http://localhost:8080",
	})
	require.NoError(t, err)
	defer provider.Close()

	assert.Equal(t, 768, provider.Dimension())
}

func TestNewProvider_DefaultsModel(t *testing.T) {
	provider, err := NewProvider(Config{Provider: "tei"})
	require.NoError(t, err)
	defer provider.Close()

	assert.Equal(t, 384, provider.Dimension())
}

func TestNewProvider_UnknownProvider(t *testing.T) {
	_, err := NewProvider(Config{Provider: "openai"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
