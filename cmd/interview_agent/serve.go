package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kedhareswer/interviewai-navigator/internal/config"
	"github.com/Kedhareswer/interviewai-navigator/internal/planning"
	"github.com/Kedhareswer/interviewai-navigator/internal/server"
)

var (
	servePort         int
	serveConfigFile   string
	serveMaxQuestions int
	serveUseBrowser   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for jobs, candidates, and interview sessions.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigFile, "config", "", "Path to JSON config file")
	serveCmd.Flags().IntVar(&serveMaxQuestions, "max-questions", 0, "Per-interview question cap (default 15)")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Use a headless browser for candidate link ingestion")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := &config.Config{}
	if serveConfigFile != "" {
		loaded, err := config.LoadConfig(serveConfigFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.FromEnv()

	merged := cfg.MergeWithDefaults(config.Config{
		Port:         servePort,
		MaxQuestions: planning.DefaultMaxQuestions,
	})
	if serveMaxQuestions > 0 {
		merged.MaxQuestions = serveMaxQuestions
	}
	if serveUseBrowser {
		merged.UseBrowser = true
	}
	if err := merged.Validate(); err != nil {
		return err
	}

	if merged.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if merged.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	srv, err := server.New(server.Config{
		Port:              merged.Port,
		DatabaseURL:       merged.DatabaseURL,
		APIKey:            merged.APIKey,
		MaxQuestions:      merged.MaxQuestions,
		GenerationTimeout: merged.GenerationTimeout,
		BlobDir:           merged.BlobDir,
		UseBrowser:        merged.UseBrowser,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
