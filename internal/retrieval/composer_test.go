package retrieval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stratford-labs/statesman/internal/vectorstore"
)

// stubStore returns canned results and records the requested k.
type stubStore struct {
	results []vectorstore.SearchResult
	gotK    int
}

func (s *stubStore) Search(_ context.Context, _ string, k int) ([]vectorstore.SearchResult, error) {
	s.gotK = k
	if k < len(s.results) {
		return s.results[:k], nil
	}
	return s.results, nil
}

func (s *stubStore) AddDocuments(context.Context, []vectorstore.Document) ([]string, error) {
	return nil, nil
}
func (s *stubStore) Count(context.Context) (int, error) { return len(s.results), nil }
func (s *stubStore) Reset(context.Context) error        { return nil }
func (s *stubStore) Close() error                       { return nil }

func railwayResults() []vectorstore.SearchResult {
	return []vectorstore.SearchResult{
		{
			ID:      "parl_1_sess_2_hansard_debate_01_02_1871_3_0",
			Content: "The Pacific railway must be built as a great national work.",
			Score:   0.92,
			Metadata: map[string]interface{}{
				"speaker": "Sir John A. Macdonald",
				"source":  "hansard_debate_01_02_1871",
				"page":    3,
				"year":    1871,
			},
		},
		{
			ID:      "parl_unknown_sess_unknown_biography_7_1",
			Content: "Macdonald championed the transcontinental line against fierce opposition.",
			Score:   0.81,
			Metadata: map[string]interface{}{
				"speaker": "Narrator",
				"source":  "biography",
				// String-typed numerics, as the embedded store returns.
				"page": "7",
			},
		},
	}
}

func TestComposer_Retrieve(t *testing.T) {
	store := &stubStore{results: railwayResults()}
	composer := NewComposer(store, 3, zap.NewNop())

	excerpts, err := composer.Retrieve(context.Background(), "tell me about the railway")
	require.NoError(t, err)
	require.Len(t, excerpts, 2)
	assert.Equal(t, 3, store.gotK)

	first := excerpts[0]
	assert.Equal(t, "Sir John A. Macdonald", first.Speaker)
	assert.Equal(t, "hansard_debate_01_02_1871", first.Source)
	assert.Equal(t, 3, first.Page)
	require.NotNil(t, first.Year)
	assert.Equal(t, 1871, *first.Year)
	assert.InDelta(t, 0.92, float64(first.Score), 1e-6)

	// Preserves store ranking.
	assert.Greater(t, excerpts[0].Score, excerpts[1].Score)

	// String-typed page parsed; missing year stays nil.
	second := excerpts[1]
	assert.Equal(t, 7, second.Page)
	assert.Nil(t, second.Year)
}

func TestComposer_RetrieveEmptyQuestion(t *testing.T) {
	composer := NewComposer(&stubStore{}, 3, zap.NewNop())
	_, err := composer.Retrieve(context.Background(), "   ")
	assert.Error(t, err)
}

func TestComposer_DefaultTopK(t *testing.T) {
	store := &stubStore{results: railwayResults()}
	composer := NewComposer(store, 0, zap.NewNop())

	_, err := composer.Retrieve(context.Background(), "question")
	require.NoError(t, err)
	assert.Equal(t, DefaultTopK, store.gotK)
}

func TestContextBlock(t *testing.T) {
	year := 1871
	block := ContextBlock([]Excerpt{
		{Text: "First excerpt text.", Source: "hansard_debate_01_02_1871", Page: 3, Year: &year},
		{Text: "Second excerpt text.", Source: "biography"},
	})

	assert.Contains(t, block, "[Excerpt from hansard_debate_01_02_1871 - page 3, 1871]\nFirst excerpt text.")
	assert.Contains(t, block, "[Excerpt from biography - page unknown, unknown]\nSecond excerpt text.")
	assert.Contains(t, block, "\n\n")
}

func TestComposer_Prompt(t *testing.T) {
	store := &stubStore{results: railwayResults()}
	composer := NewComposer(store, 3, zap.NewNop())

	prompt, excerpts, err := composer.Prompt(context.Background(), "What of the Pacific railway?")
	require.NoError(t, err)
	require.Len(t, excerpts, 2)

	assert.Contains(t, prompt, "Canada's first Prime Minister")
	assert.Contains(t, prompt, "Historical excerpts:")
	assert.Contains(t, prompt, "The Pacific railway must be built")
	assert.Contains(t, prompt, "User's question:\nWhat of the Pacific railway?")
}

func TestSplitAnswer(t *testing.T) {
	answer := "The railway was a necessity of union, sir.\n\n" +
		"Some thoughtful follow-up questions:\n" +
		"- What obstacles did the railway face in Parliament?\n" +
		"- How was the route through the mountains chosen?"

	main, followUps := SplitAnswer(answer)
	assert.Equal(t, "The railway was a necessity of union, sir.", main)
	assert.Equal(t, []string{
		"What obstacles did the railway face in Parliament?",
		"How was the route through the mountains chosen?",
	}, followUps)
}

func TestSplitAnswer_NoFollowUps(t *testing.T) {
	main, followUps := SplitAnswer("A single paragraph answer.")
	assert.Equal(t, "A single paragraph answer.", main)
	assert.Empty(t, followUps)
}
