package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestChunkID(t *testing.T) {
	chunk := Chunk{
		Content:    "text",
		Speaker:    "Sir John A. Macdonald",
		Source:     "hansard_debate_01_02_1871",
		Page:       14,
		Index:      3,
		Parliament: intPtr(1),
		Session:    intPtr(2),
	}
	assert.Equal(t, "parl_1_sess_2_hansard_debate_01_02_1871_14_3", chunk.ID())
}

func TestChunkID_UnknownMetadata(t *testing.T) {
	chunk := Chunk{Source: "random_doc_1876", Page: 1, Index: 0}
	assert.Equal(t, "parl_unknown_sess_unknown_random_doc_1876_1_0", chunk.ID())
}

func TestChunkID_UniqueAcrossSources(t *testing.T) {
	// Same page and index in different documents must never collide.
	a := Chunk{Source: "hansard_debate_01_02_1871", Page: 5, Index: 0}
	b := Chunk{Source: "hansard_debate_01_03_1872", Page: 5, Index: 0}
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestChunkID_Deterministic(t *testing.T) {
	chunk := Chunk{Source: "doc", Page: 2, Index: 7, Parliament: intPtr(3)}
	assert.Equal(t, chunk.ID(), chunk.ID())
}

func TestChunkValidate(t *testing.T) {
	valid := Chunk{Content: "words", Speaker: "Narrator", Source: "doc", Page: 1}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name  string
		chunk Chunk
	}{
		{"empty content", Chunk{Speaker: "Narrator", Source: "doc", Page: 1}},
		{"missing speaker", Chunk{Content: "words", Source: "doc", Page: 1}},
		{"missing source", Chunk{Content: "words", Speaker: "Narrator", Page: 1}},
		{"zero page", Chunk{Content: "words", Speaker: "Narrator", Source: "doc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.chunk.Validate(), ErrInvalidChunk)
		})
	}
}

func TestChunkMetadata_OmitsUnknownFields(t *testing.T) {
	chunk := Chunk{
		Content: "words",
		Speaker: "Sir John A. Macdonald",
		Source:  "doc",
		Page:    4,
		Index:   1,
		Year:    intPtr(1871),
	}
	m := chunk.Metadata()

	assert.Equal(t, "Sir John A. Macdonald", m["speaker"])
	assert.Equal(t, 4, m["page"])
	assert.Equal(t, 1871, m["year"])
	assert.NotContains(t, m, "parliament")
	assert.NotContains(t, m, "session")
	assert.NotContains(t, m, "volume")
}
