// Package ingestion pulls candidate materials from their links, chunks the
// text, embeds each chunk, and replaces the candidate's retrieval index.
package ingestion

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/google/uuid"

	"github.com/Kedhareswer/interviewai-navigator/internal/db"
	"github.com/Kedhareswer/interviewai-navigator/internal/fetch"
	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

const (
	// chunkSize targets roughly one screen of text per chunk; chunks break
	// on word boundaries with a small overlap to keep context across edges.
	chunkSize    = 1200
	chunkOverlap = 150

	maxConcurrentFetches = 4
)

// ChunkStore persists a candidate's retrieval index. *db.DB implements it.
type ChunkStore interface {
	ReplaceCandidateChunks(ctx context.Context, candidateID uuid.UUID, chunks []db.CandidateChunk) error
}

// Embedder produces embedding vectors. llm.Client implements it.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Ingester builds candidate retrieval indexes from their links.
type Ingester struct {
	fetcher  fetch.Fetcher
	embedder Embedder
	store    ChunkStore
}

func New(fetcher fetch.Fetcher, embedder Embedder, store ChunkStore) *Ingester {
	return &Ingester{fetcher: fetcher, embedder: embedder, store: store}
}

// Result summarizes one ingestion run.
type Result struct {
	Sources int      `json:"sources"`
	Chunks  int      `json:"chunks"`
	Failed  []string `json:"failed,omitempty"`
}

// Ingest fetches every candidate link in parallel, chunks and embeds the
// text, and replaces the candidate's stored index. Individual link failures
// are recorded and skipped; ingestion fails only when nothing was indexed.
func (i *Ingester) Ingest(ctx context.Context, candidate *types.Candidate) (*Result, error) {
	urls := candidate.Links.URLs()
	if len(urls) == 0 {
		return nil, fmt.Errorf("candidate %s has no links to ingest", candidate.ID)
	}

	var (
		mu     sync.Mutex
		chunks []db.CandidateChunk
		failed []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for source, url := range urls {
		g.Go(func() error {
			text, err := i.fetcher.FetchText(gctx, url)
			if err != nil {
				log.Printf("Failed to fetch %s link for candidate %s: %v", source, candidate.ID, err)
				mu.Lock()
				failed = append(failed, source)
				mu.Unlock()
				return nil
			}

			sourceChunks, err := i.embedChunks(gctx, candidate.ID, source, url, SplitText(text, chunkSize, chunkOverlap))
			if err != nil {
				return err
			}
			mu.Lock()
			chunks = append(chunks, sourceChunks...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(chunks) == 0 {
		return nil, fmt.Errorf("no candidate content could be ingested from %d links", len(urls))
	}

	if err := i.store.ReplaceCandidateChunks(ctx, candidate.ID, chunks); err != nil {
		return nil, err
	}

	return &Result{
		Sources: len(urls) - len(failed),
		Chunks:  len(chunks),
		Failed:  failed,
	}, nil
}

func (i *Ingester) embedChunks(ctx context.Context, candidateID uuid.UUID, source, url string, texts []string) ([]db.CandidateChunk, error) {
	chunks := make([]db.CandidateChunk, 0, len(texts))
	for idx, text := range texts {
		embedding, err := i.embedder.EmbedText(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("failed to embed %s chunk %d: %w", source, idx, err)
		}
		chunks = append(chunks, db.CandidateChunk{
			CandidateID: candidateID,
			Source:      source,
			Text:        text,
			URL:         url,
			Metadata:    map[string]any{"chunk_index": idx},
			Embedding:   embedding,
		})
	}
	return chunks, nil
}

// SplitText breaks text into overlapping chunks on word boundaries. Chunks
// are at most size runes; consecutive chunks share roughly overlap runes.
func SplitText(text string, size, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if size <= 0 {
		size = chunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	words := strings.Fields(text)
	var chunks []string
	var current []string
	currentLen := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, strings.Join(current, " "))

		// Carry trailing words into the next chunk for overlap.
		carried := make([]string, 0)
		carriedLen := 0
		for i := len(current) - 1; i >= 0 && carriedLen < overlap; i-- {
			carried = append([]string{current[i]}, carried...)
			carriedLen += len(current[i]) + 1
		}
		current = carried
		currentLen = carriedLen
	}

	for _, word := range words {
		if currentLen+len(word)+1 > size && currentLen > 0 {
			flush()
		}
		current = append(current, word)
		currentLen += len(word) + 1
	}
	if len(current) > 0 {
		last := strings.Join(current, " ")
		if len(chunks) == 0 || !strings.HasSuffix(chunks[len(chunks)-1], last) {
			chunks = append(chunks, last)
		}
	}
	return chunks
}
