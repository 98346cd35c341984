package embeddings

// DefaultModel is the embedding model used when none is configured.
// all-MiniLM-L6-v2 is small, fast, and well suited to short speech chunks.
const DefaultModel = "sentence-transformers/all-MiniLM-L6-v2"

// knownModelDimensions maps supported model names to their embedding
// dimensions. Shared between the CGO and non-CGO builds.
var knownModelDimensions = map[string]int{
	"sentence-transformers/all-MiniLM-L6-v2": 384,
	"BAAI/bge-small-en-v1.5":                 384,
	"BAAI/bge-small-en":                      384,
	"BAAI/bge-base-en-v1.5":                  768,
	"BAAI/bge-base-en":                       768,
	"BAAI/bge-small-zh-v1.5":                 512,
	"fast-all-MiniLM-L6-v2":                  384,
	"fast-bge-small-en-v1.5":                 384,
	"fast-bge-small-en":                      384,
	"fast-bge-base-en-v1.5":                  768,
	"fast-bge-base-en":                       768,
	"fast-bge-small-zh-v1.5":                 512,
}

// modelDimension returns the embedding dimension for a known model name.
func modelDimension(model string) (int, bool) {
	dim, ok := knownModelDimensions[model]
	return dim, ok
}
