package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Kedhareswer/interviewai-navigator/internal/agents"
	"github.com/Kedhareswer/interviewai-navigator/internal/db"
	"github.com/Kedhareswer/interviewai-navigator/internal/llm"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize-job",
	Short: "Normalize a stored job description into competencies",
	Long:  "Run the job understanding agent over a stored job description and save the extracted competencies, level, and tech stack.",
	RunE:  runNormalizeJob,
}

var (
	normalizeJobID       string
	normalizeDatabaseURL string
	normalizeAPIKey      string
)

func init() {
	normalizeCmd.Flags().StringVar(&normalizeJobID, "job-id", "", "Job ID to normalize (required)")
	normalizeCmd.Flags().StringVar(&normalizeDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")
	normalizeCmd.Flags().StringVar(&normalizeAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	_ = normalizeCmd.MarkFlagRequired("job-id")

	rootCmd.AddCommand(normalizeCmd)
}

func runNormalizeJob(_ *cobra.Command, _ []string) error {
	jobID, err := uuid.Parse(normalizeJobID)
	if err != nil {
		return fmt.Errorf("invalid job-id: %w", err)
	}

	databaseURL := normalizeDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	apiKey := normalizeAPIKey
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

	job, err := database.GetJob(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to get job: %w", err)
	}

	normalized, err := agents.NewJobAgent(client).Normalize(ctx, job.Description)
	if err != nil {
		return fmt.Errorf("failed to normalize job: %w", err)
	}

	if err := database.SetJobNormalized(ctx, jobID, normalized); err != nil {
		return fmt.Errorf("failed to save normalized job: %w", err)
	}

	out, err := json.MarshalIndent(normalized, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal normalized job: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
