// Package cli provides the command-line interface for travelgraph.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/minhdn/travelgraph/internal/config"
	"github.com/minhdn/travelgraph/internal/graph"
	"github.com/minhdn/travelgraph/internal/llm"
	"github.com/minhdn/travelgraph/internal/metrics"
	"github.com/minhdn/travelgraph/internal/rag"
	"github.com/minhdn/travelgraph/internal/vector"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

var (
	cfg         config.Config
	logger      *slog.Logger
	logCleanup  func() error
	graphClient *graph.Client
	vectorStore *vector.Store
)

var rootCmd = &cobra.Command{
	Use:   "travelgraph",
	Short: "Hybrid-retrieval Vietnam travel chatbot",
	Long: `Travelgraph answers Vietnam travel questions by combining a pgvector
similarity index with a SurrealDB property graph and synthesizing a
response with an LLM.

Vector search finds semantically similar places, graph expansion pulls in
their typed relationships, and the combined evidence grounds the answer.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()
		logger, logCleanup = config.SetupLogger(cfg.LogFile, cfg.LogLevel)
		slog.SetDefault(logger)

		ctx := cmd.Context()

		var err error
		graphClient, err = graph.NewClient(ctx, graph.Config{
			URL:       cfg.SurrealDBURL,
			Namespace: cfg.SurrealDBNamespace,
			Database:  cfg.SurrealDBDatabase,
			Username:  cfg.SurrealDBUser,
			Password:  cfg.SurrealDBPass,
		}, logger)
		if err != nil {
			return fmt.Errorf("connect to graph store: %w", err)
		}

		if err := graphClient.InitSchema(ctx); err != nil {
			return fmt.Errorf("initialize graph schema: %w", err)
		}

		vectorStore, err = vector.Open(ctx, cfg.PostgresDSN, cfg.EmbedDimension, logger)
		if err != nil {
			_ = graphClient.Close(ctx)
			return fmt.Errorf("connect to vector index: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		if vectorStore != nil {
			if err := vectorStore.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close vector index: %v\n", err)
			}
		}
		if graphClient != nil {
			if err := graphClient.Close(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close graph store: %v\n", err)
			}
		}
		if logCleanup != nil {
			_ = logCleanup()
		}
	},
}

// newOrchestrator builds the retrieval pipeline. The completion model is
// only constructed when the command synthesizes answers.
func newOrchestrator(requireLLM bool, mode rag.Mode) (*rag.Orchestrator, error) {
	embedder, err := llm.NewEmbedder(cfg)
	if err != nil {
		return nil, fmt.Errorf("init embedder: %w", err)
	}

	var model *llm.Model
	if requireLLM {
		model, err = llm.NewModel(cfg)
		if err != nil {
			return nil, fmt.Errorf("init model: %w", err)
		}
	}

	var completion rag.CompletionModel
	if model != nil {
		completion = model
	}

	return rag.NewOrchestrator(
		embedder,
		vectorStore,
		graphClient,
		completion,
		metrics.NewCollector(),
		logger,
		mode,
	), nil
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(statusCmd)
}
