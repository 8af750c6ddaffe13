package entity

import (
	"time"

	"github.com/google/uuid"
)

// Chunk kinds for the two retrieval indexes.
const (
	ChunkKindDoc  = "doc"
	ChunkKindCode = "code"
)

// KnowledgeChunk is one retrievable passage of the portfolio knowledge base.
type KnowledgeChunk struct {
	Id         uuid.UUID
	Kind       string // doc | code
	SourceID   string // origin document slug
	Citation   string // human-readable citation for code chunks
	Content    string
	ChunkIndex int
	CreatedAt  time.Time
}

// ScoredChunk pairs a chunk with its similarity score on a 0-1 scale, where
// higher is closer.
type ScoredChunk struct {
	Chunk KnowledgeChunk
	Score float64
}
