package document

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// maxDocumentFileSize bounds a single source file to keep a corrupt or
// runaway extraction from exhausting memory during ingestion.
const maxDocumentFileSize = 64 * 1024 * 1024 // 64MB

// LoadFile loads a single document. JSON files carry paginated text as
// produced by the upstream PDF extractor; plain-text files become a
// single-page narrator document.
func LoadFile(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > maxDocumentFileSize {
		return nil, fmt.Errorf("document %s exceeds size limit (%d bytes)", path, info.Size())
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return parseJSON(content, filepath.Base(path))
	case ".txt":
		return &Document{
			Source: filepath.Base(path),
			Kind:   KindNarrator,
			Pages:  []Page{{Number: 1, Text: string(content)}},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported document format: %s", path)
	}
}

// parseJSON decodes a paginated document, defaulting the source to the
// filename when the payload omits it.
func parseJSON(content []byte, filename string) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	if doc.Source == "" {
		doc.Source = strings.TrimSuffix(filename, filepath.Ext(filename))
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("document %s has no pages", filename)
	}
	sort.SliceStable(doc.Pages, func(i, j int) bool {
		return doc.Pages[i].Number < doc.Pages[j].Number
	})
	return &doc, nil
}

// LoadDir loads every supported document under dir. A file that fails to
// load is skipped with a warning; one corrupt source must not abort
// ingestion of the rest of the corpus.
func LoadDir(dir string, logger *zap.Logger) ([]*Document, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading corpus directory %s: %w", dir, err)
	}

	var docs []*Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".json" && ext != ".txt" {
			continue
		}

		doc, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			logger.Warn("skipping unreadable document",
				zap.String("file", entry.Name()),
				zap.Error(err),
			)
			continue
		}
		docs = append(docs, doc)
	}

	return docs, nil
}
