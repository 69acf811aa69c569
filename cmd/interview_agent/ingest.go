package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Kedhareswer/interviewai-navigator/internal/db"
	"github.com/Kedhareswer/interviewai-navigator/internal/fetch"
	"github.com/Kedhareswer/interviewai-navigator/internal/ingestion"
	"github.com/Kedhareswer/interviewai-navigator/internal/llm"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest-candidate",
	Short: "Fetch and index a candidate's profile links",
	Long:  "Fetch a candidate's resume, LinkedIn, GitHub, and portfolio links, chunk and embed the text, and replace the candidate's context index.",
	RunE:  runIngestCandidate,
}

var (
	ingestCandidateID string
	ingestDatabaseURL string
	ingestAPIKey      string
	ingestUseBrowser  bool
)

func init() {
	ingestCmd.Flags().StringVar(&ingestCandidateID, "candidate-id", "", "Candidate ID to ingest (required)")
	ingestCmd.Flags().StringVar(&ingestDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")
	ingestCmd.Flags().StringVar(&ingestAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	ingestCmd.Flags().BoolVar(&ingestUseBrowser, "use-browser", false, "Use a headless browser for script-heavy pages")
	_ = ingestCmd.MarkFlagRequired("candidate-id")

	rootCmd.AddCommand(ingestCmd)
}

func runIngestCandidate(_ *cobra.Command, _ []string) error {
	candidateID, err := uuid.Parse(ingestCandidateID)
	if err != nil {
		return fmt.Errorf("invalid candidate-id: %w", err)
	}

	databaseURL := ingestDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	apiKey := ingestAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	ctx := context.Background()

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close() //nolint:errcheck

	candidate, err := database.GetCandidate(ctx, candidateID)
	if err != nil {
		return fmt.Errorf("failed to get candidate: %w", err)
	}

	var fetcher fetch.Fetcher = fetch.NewHTTPFetcher()
	if ingestUseBrowser {
		fetcher = fetch.NewBrowserFetcher()
	}

	result, err := ingestion.New(fetcher, client, database).Ingest(ctx, candidate)
	if err != nil {
		return fmt.Errorf("failed to ingest candidate: %w", err)
	}

	fmt.Printf("Ingested %d chunks from %d sources for %s\n", result.Chunks, result.Sources, candidate.Name)
	for _, failed := range result.Failed {
		fmt.Printf("Warning: failed to fetch %s\n", failed)
	}
	return nil
}
