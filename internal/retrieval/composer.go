// Package retrieval finds the speech excerpts most relevant to a question
// and composes them into a grounded persona prompt.
package retrieval

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/stratford-labs/statesman/internal/vectorstore"
)

var tracer = otel.Tracer("statesman.retrieval")

// DefaultTopK is the number of excerpts retrieved per question.
const DefaultTopK = 3

// SystemPrompt sets the persona for the chat model.
const SystemPrompt = "You are Sir John A. Macdonald, speaking in formal 19th-century Canadian English."

// promptTemplate grounds the persona in retrieved excerpts. The context
// block and question are substituted at the end.
const promptTemplate = `
You are Sir John A. Macdonald, Canada's first Prime Minister. Speak in the first person, as if you are personally answering the user's question.

Your task is to respond to the user's question in a way that is:
- Faithful to your historical views, tone, and character
- Understandable and educational for a modern audience
- Grounded only in the provided historical excerpts
- Supported with quotes directly from those excerpts, when appropriate
- Enriched with brief historical context when referencing people, events, or ideas that modern readers may not be familiar with

Avoid speculation or modern references. Do not include information not found in the excerpts below.
You must always speak in the **first person**, referring to yourself as "I", and never in the third person (do not say "Sir John A. Macdonald" or "he"). Maintain the tone of a thoughtful 19th-century statesman.
Use a formal tone consistent with 19th-century speech, but ensure your answer is clear and informative for present-day readers.
At the end of your answer, suggest 1 or 2 thoughtful follow-up questions the user might ask next, based on the topic you discussed. Format these clearly, such as in a bulleted list.

Historical excerpts:
%s

User's question:
%s
`

// Excerpt is one retrieved chunk with its provenance and similarity.
type Excerpt struct {
	Text    string
	Speaker string
	Source  string
	Page    int
	Score   float32

	// Parliament, Session, and Year may be absent from older corpus
	// entries; nil means unknown.
	Parliament *int
	Session    *int
	Year       *int
}

// Composer retrieves excerpts and formats prompts.
type Composer struct {
	store  vectorstore.Store
	topK   int
	logger *zap.Logger
}

// NewComposer creates a Composer. topK defaults to DefaultTopK.
func NewComposer(store vectorstore.Store, topK int, logger *zap.Logger) *Composer {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{store: store, topK: topK, logger: logger}
}

// Retrieve returns the excerpts most similar to the question, best first.
func (c *Composer) Retrieve(ctx context.Context, question string) ([]Excerpt, error) {
	ctx, span := tracer.Start(ctx, "Composer.Retrieve")
	defer span.End()
	span.SetAttributes(attribute.Int("top_k", c.topK))

	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("question cannot be empty")
	}

	results, err := c.store.Search(ctx, question, c.topK)
	if err != nil {
		return nil, fmt.Errorf("searching corpus: %w", err)
	}

	excerpts := make([]Excerpt, len(results))
	for i, result := range results {
		excerpts[i] = excerptFromResult(result)
	}

	c.logger.Debug("retrieved excerpts",
		zap.Int("count", len(excerpts)),
		zap.Int("top_k", c.topK))
	span.SetAttributes(attribute.Int("results_count", len(excerpts)))
	return excerpts, nil
}

// Prompt retrieves excerpts and returns the full persona prompt for the
// question, plus the excerpts used so callers can cite sources.
func (c *Composer) Prompt(ctx context.Context, question string) (string, []Excerpt, error) {
	excerpts, err := c.Retrieve(ctx, question)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf(promptTemplate, ContextBlock(excerpts), question), excerpts, nil
}

// ContextBlock formats excerpts into the prompt's evidence section.
// Unknown pages and years render as "unknown" rather than being dropped,
// so the model never sees a malformed citation.
func ContextBlock(excerpts []Excerpt) string {
	parts := make([]string, len(excerpts))
	for i, ex := range excerpts {
		page := "unknown"
		if ex.Page > 0 {
			page = strconv.Itoa(ex.Page)
		}
		year := "unknown"
		if ex.Year != nil {
			year = strconv.Itoa(*ex.Year)
		}
		parts[i] = fmt.Sprintf("[Excerpt from %s - page %s, %s]\n%s", ex.Source, page, year, ex.Text)
	}
	return strings.Join(parts, "\n\n")
}

// excerptFromResult parses a search result's metadata. The embedded
// store serializes metadata values as strings while Qdrant returns typed
// values, so numeric fields accept both.
func excerptFromResult(result vectorstore.SearchResult) Excerpt {
	ex := Excerpt{
		Text:  result.Content,
		Score: result.Score,
	}
	if result.Metadata == nil {
		return ex
	}

	if v, ok := result.Metadata["speaker"].(string); ok {
		ex.Speaker = v
	}
	if v, ok := result.Metadata["source"].(string); ok {
		ex.Source = v
	}
	if v, ok := metadataInt(result.Metadata["page"]); ok {
		ex.Page = v
	}
	if v, ok := metadataInt(result.Metadata["parliament"]); ok {
		ex.Parliament = &v
	}
	if v, ok := metadataInt(result.Metadata["session"]); ok {
		ex.Session = &v
	}
	if v, ok := metadataInt(result.Metadata["year"]); ok {
		ex.Year = &v
	}
	return ex
}

func metadataInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
