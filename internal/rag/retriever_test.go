package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kedhareswer/interviewai-navigator/internal/db"
)

type fakeEmbedder struct {
	vec []float32
	err error
}

func (f *fakeEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return f.vec, f.err
}

type fakeChunkStore struct {
	chunks []db.CandidateChunk
	err    error
}

func (f *fakeChunkStore) ListCandidateChunks(ctx context.Context, candidateID uuid.UUID) ([]db.CandidateChunk, error) {
	return f.chunks, f.err
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)

	assert.Zero(t, CosineSimilarity(nil, nil))
	assert.Zero(t, CosineSimilarity([]float32{1}, []float32{1, 2}))
	assert.Zero(t, CosineSimilarity([]float32{0, 0}, []float32{1, 1}))
}

func TestRetrieve_RanksBySimilarity(t *testing.T) {
	store := &fakeChunkStore{chunks: []db.CandidateChunk{
		{Source: "github", Text: "orthogonal", Embedding: []float32{0, 1}},
		{Source: "resume", Text: "exact match", Embedding: []float32{1, 0}},
		{Source: "blog", Text: "diagonal", Embedding: []float32{1, 1}},
		{Source: "linkedin", Text: "no embedding"},
	}}
	r := NewPostgresRetriever(store, &fakeEmbedder{vec: []float32{1, 0}})

	got, err := r.Retrieve(context.Background(), uuid.New(), "distributed systems", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "exact match", got[0].Text)
	assert.Equal(t, "diagonal", got[1].Text)
	assert.Greater(t, got[0].Score, got[1].Score)
}

func TestRetrieve_EmptyIndex(t *testing.T) {
	r := NewPostgresRetriever(&fakeChunkStore{}, &fakeEmbedder{vec: []float32{1}})
	got, err := r.Retrieve(context.Background(), uuid.New(), "anything", 3)
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestRetrieve_ZeroK(t *testing.T) {
	r := NewPostgresRetriever(&fakeChunkStore{}, &fakeEmbedder{})
	got, err := r.Retrieve(context.Background(), uuid.New(), "anything", 0)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRetrieve_EmbedderFailure(t *testing.T) {
	store := &fakeChunkStore{chunks: []db.CandidateChunk{{Text: "x", Embedding: []float32{1}}}}
	r := NewPostgresRetriever(store, &fakeEmbedder{err: errors.New("quota exceeded")})
	_, err := r.Retrieve(context.Background(), uuid.New(), "q", 3)
	assert.Error(t, err)
}

func TestFormatContext(t *testing.T) {
	assert.Equal(t, "No candidate context available.", FormatContext(nil))

	out := FormatContext([]Chunk{
		{Source: "resume", Text: "Built payment systems."},
		{Source: "github", Text: "Maintains a Go ORM."},
	})
	assert.Contains(t, out, "[resume] Built payment systems.")
	assert.Contains(t, out, "[github] Maintains a Go ORM.")
}
