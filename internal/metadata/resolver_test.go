package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(nil, nil)
	require.NoError(t, err)
	return r
}

func intp(n int) *int { return &n }

func TestResolve_HansardDebatePattern(t *testing.T) {
	r := newTestResolver(t)

	rec, res := r.Resolve("hansard_debate_03_05_1878_02.pdf")
	assert.False(t, res.Fallback)
	assert.Equal(t, "hansard_debate", res.Pattern)
	assert.Equal(t, intp(3), rec.Parliament)
	assert.Equal(t, intp(5), rec.Session)
	assert.Equal(t, intp(1878), rec.Year)
	assert.Equal(t, intp(2), rec.Volume)
}

func TestResolve_HansardDebateWithoutVolume(t *testing.T) {
	r := newTestResolver(t)

	rec, res := r.Resolve("hansard_debate_01_02_1867.pdf")
	assert.False(t, res.Fallback)
	assert.Equal(t, intp(1), rec.Parliament)
	assert.Equal(t, intp(2), rec.Session)
	assert.Equal(t, intp(1867), rec.Year)
	assert.Nil(t, rec.Volume, "absent volume stays unset, not zero")
}

func TestResolve_OopDebatesPattern(t *testing.T) {
	r := newTestResolver(t)

	rec, res := r.Resolve("oop.debates_HOC0401_03.pdf")
	assert.False(t, res.Fallback)
	assert.Equal(t, "oop_debates_hoc", res.Pattern)
	assert.Equal(t, intp(4), rec.Parliament)
	assert.Equal(t, intp(1), rec.Session)
	assert.Equal(t, intp(3), rec.Volume)
	assert.Nil(t, rec.Year, "pattern carries no year")
}

func TestResolve_FallbackYearExtraction(t *testing.T) {
	r := newTestResolver(t)

	rec, res := r.Resolve("random_doc_1876.pdf")
	assert.True(t, res.Fallback)
	assert.Equal(t, intp(1876), rec.Year)
	assert.Nil(t, rec.Parliament)
	assert.Nil(t, rec.Session)
	assert.Nil(t, rec.Volume)
}

func TestResolve_NoYearAnywhere(t *testing.T) {
	r := newTestResolver(t)

	rec, res := r.Resolve("notes.pdf")
	assert.True(t, res.Fallback)
	assert.Nil(t, rec.Year)
	assert.Nil(t, rec.Parliament)
}

func TestResolve_ExtraPatternsTakeEffect(t *testing.T) {
	extra := []Pattern{{
		Name:   "senate",
		Regex:  `senate_(\d{4})`,
		Fields: []string{FieldYear},
	}}
	r, err := NewResolver(extra, nil)
	require.NoError(t, err)

	rec, res := r.Resolve("senate_1880_vol2.pdf")
	assert.False(t, res.Fallback)
	assert.Equal(t, "senate", res.Pattern)
	assert.Equal(t, intp(1880), rec.Year)
}

func TestNewResolver_InvalidPattern(t *testing.T) {
	_, err := NewResolver([]Pattern{{Name: "bad", Regex: `(`, Fields: nil}}, nil)
	assert.Error(t, err)
}

func TestNewResolver_FieldGroupMismatch(t *testing.T) {
	_, err := NewResolver([]Pattern{{Name: "bad", Regex: `(\d+)`, Fields: []string{FieldYear, FieldVolume}}}, nil)
	assert.Error(t, err)
}
