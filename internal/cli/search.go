package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/minhdn/travelgraph/internal/rag"
	"github.com/spf13/cobra"
)

var searchTopK int

// demoQueries run when no query is given, as a quick end-to-end check.
var demoQueries = []string{
	"beautiful beaches and water activities",
	"cultural heritage and temples",
	"mountain trekking and nature",
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "One-shot hybrid search without answer synthesis",
	Long: `Run a single hybrid search: vector similarity plus graph relationships
for the top match. Without a query, runs a set of demo queries.

Examples:
  travelgraph search "beautiful beaches"
  travelgraph search -n 5 "street food in Hanoi"
  travelgraph search`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "n", 3, "number of similar places")
}

func runSearch(cmd *cobra.Command, args []string) error {
	orch, err := newOrchestrator(false, rag.ModeSequential)
	if err != nil {
		return err
	}

	queries := demoQueries
	if len(args) == 1 {
		queries = args[:1]
	}

	for i, query := range queries {
		if err := searchOnce(cmd.Context(), orch, query); err != nil {
			return err
		}
		if i < len(queries)-1 {
			fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
		}
	}

	return nil
}

// previewDescription shortens a description to 100 characters for the
// related-places listing, cutting on rune boundaries.
func previewDescription(desc string) string {
	runes := []rune(desc)
	if len(runes) > 100 {
		return string(runes[:100])
	}
	return desc
}

func searchOnce(ctx context.Context, orch *rag.Orchestrator, query string) error {
	fmt.Printf("Searching for: %s\n", query)
	fmt.Println(strings.Repeat("=", 50))

	matches, err := orch.Search(ctx, query, searchTopK)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	fmt.Println("SIMILAR PLACES:")
	for i, m := range matches {
		fmt.Printf("%d. %s (%s)\n", i+1, m.Metadata.Name, m.Metadata.Type)
		city := m.Metadata.City
		if city == "" {
			city = "N/A"
		}
		fmt.Printf("   Location: %s\n", city)
		fmt.Printf("   Similarity: %.3f\n\n", m.Score)
	}

	if len(matches) == 0 {
		return nil
	}

	facts, err := orch.Expander().ExpandOne(ctx, matches[0].ID)
	if err != nil {
		return fmt.Errorf("expand: %w", err)
	}

	if len(facts) > 0 {
		fmt.Println("RELATED PLACES:")
		for i, f := range facts {
			fmt.Printf("%d. %s (%s)\n", i+1, f.TargetName, f.Relation)
			if f.TargetDesc != "" {
				fmt.Printf("   %s...\n", previewDescription(f.TargetDesc))
			}
			fmt.Println()
		}
	}

	return nil
}
