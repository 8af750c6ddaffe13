package embedding

// Task types hint the provider at asymmetric embedding models.
const (
	TaskTypeQuery    = "RETRIEVAL_QUERY"
	TaskTypeDocument = "RETRIEVAL_DOCUMENT"
)

// Result carries one embedding vector.
type Result struct {
	Values []float32
}

// EmbeddingProvider generates text embeddings for retrieval.
type EmbeddingProvider interface {
	Generate(text string, taskType string) (*Result, error)
}
