package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hansard_debate_01_02_1871.json", `{
		"pages": [
			{"page": 2, "text": "second page"},
			{"page": 1, "text": "first page"}
		]
	}`)

	doc, err := LoadFile(path)
	require.NoError(t, err)

	// Source defaults to the filename without extension.
	assert.Equal(t, "hansard_debate_01_02_1871", doc.Source)
	assert.True(t, doc.IsTranscript())

	// Pages come back sorted by number.
	require.Len(t, doc.Pages, 2)
	assert.Equal(t, 1, doc.Pages[0].Number)
	assert.Equal(t, "first page", doc.Pages[0].Text)
	assert.Equal(t, 2, doc.Pages[1].Number)
}

func TestLoadFile_JSONExplicitFields(t *testing.T) {
	path := writeFile(t, t.TempDir(), "file.json", `{
		"source": "macdonald_biography",
		"kind": "narrator",
		"year": 1891,
		"pages": [{"page": 1, "text": "born in Glasgow"}]
	}`)

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "macdonald_biography", doc.Source)
	assert.False(t, doc.IsTranscript())
	require.NotNil(t, doc.Year)
	assert.Equal(t, 1891, *doc.Year)
}

func TestLoadFile_Text(t *testing.T) {
	path := writeFile(t, t.TempDir(), "biography.txt", "He was a statesman of the first order.")

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "biography.txt", doc.Source)
	assert.Equal(t, KindNarrator, doc.Kind)
	require.Len(t, doc.Pages, 1)
	assert.Equal(t, 1, doc.Pages[0].Number)
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("no pages", func(t *testing.T) {
		path := writeFile(t, dir, "empty.json", `{"pages": []}`)
		_, err := LoadFile(path)
		assert.ErrorContains(t, err, "no pages")
	})

	t.Run("malformed json", func(t *testing.T) {
		path := writeFile(t, dir, "broken.json", `{"pages": [`)
		_, err := LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, dir, "scan.pdf", "%PDF-1.4")
		_, err := LoadFile(path)
		assert.ErrorContains(t, err, "unsupported document format")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "absent.json"))
		assert.Error(t, err)
	})
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{"pages": [{"page": 1, "text": "debate text"}]}`)
	writeFile(t, dir, "b.txt", "narrator text")
	writeFile(t, dir, "broken.json", `not json`)
	writeFile(t, dir, "notes.md", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	docs, err := LoadDir(dir, zap.NewNop())
	require.NoError(t, err)

	// The corrupt file is skipped, the unsupported one ignored.
	require.Len(t, docs, 2)
}

func TestLoadDir_MissingDirectory(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "absent"), zap.NewNop())
	assert.Error(t, err)
}
