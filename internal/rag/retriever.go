package rag

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/Kedhareswer/interviewai-navigator/internal/db"
)

// Chunk is a retrieved candidate context fragment with its similarity score.
type Chunk struct {
	Source string
	Text   string
	URL    string
	Score  float64
}

// Retriever finds candidate context relevant to a query. Retrieval is a
// best-effort collaborator: callers treat failures as an empty context,
// not as a hard error in the interview flow.
type Retriever interface {
	Retrieve(ctx context.Context, candidateID uuid.UUID, query string, k int) ([]Chunk, error)
}

// Embedder produces embedding vectors for text. llm.Client satisfies this.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// ChunkLister loads a candidate's indexed chunks. *db.DB satisfies this.
type ChunkLister interface {
	ListCandidateChunks(ctx context.Context, candidateID uuid.UUID) ([]db.CandidateChunk, error)
}

// PostgresRetriever ranks a candidate's stored chunks against the query
// embedding by cosine similarity. Candidates have at most a few hundred
// chunks, so ranking happens in process rather than in the database.
type PostgresRetriever struct {
	store    ChunkLister
	embedder Embedder
}

func NewPostgresRetriever(store ChunkLister, embedder Embedder) *PostgresRetriever {
	return &PostgresRetriever{store: store, embedder: embedder}
}

// Retrieve returns the k most similar chunks for the query. Chunks stored
// without an embedding are skipped.
func (r *PostgresRetriever) Retrieve(ctx context.Context, candidateID uuid.UUID, query string, k int) ([]Chunk, error) {
	if k <= 0 {
		return nil, nil
	}

	chunks, err := r.store.ListCandidateChunks(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate chunks: %w", err)
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	queryVec, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed retrieval query: %w", err)
	}

	scored := make([]Chunk, 0, len(chunks))
	for _, chunk := range chunks {
		if len(chunk.Embedding) == 0 {
			continue
		}
		scored = append(scored, Chunk{
			Source: chunk.Source,
			Text:   chunk.Text,
			URL:    chunk.URL,
			Score:  CosineSimilarity(queryVec, chunk.Embedding),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

// CosineSimilarity returns the cosine of the angle between two vectors,
// or 0 when either vector is empty, zero, or the dimensions differ.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// FormatContext renders retrieved chunks as a prompt section. An empty
// result renders a placeholder so prompts stay well-formed.
func FormatContext(chunks []Chunk) string {
	if len(chunks) == 0 {
		return "No candidate context available."
	}
	var out string
	for i, chunk := range chunks {
		if i > 0 {
			out += "\n\n"
		}
		out += fmt.Sprintf("[%s] %s", chunk.Source, chunk.Text)
	}
	return out
}
