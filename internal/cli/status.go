package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show vector index and graph store diagnostics",
	Long: `Report the state of both stores: vector count and dimension of the
pgvector index, node and relationship counts of the property graph, and a
small node sample.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	fmt.Println("=== VECTOR INDEX STATUS ===")
	stats, err := vectorStore.DescribeStats(ctx)
	if err != nil {
		return fmt.Errorf("vector stats: %w", err)
	}
	fmt.Printf("Total vectors: %d\n", stats.TotalVectors)
	fmt.Printf("Dimension: %d\n", stats.Dimension)
	if stats.TotalVectors == 0 {
		fmt.Println("No vectors found - index might be empty!")
	}

	fmt.Println("\n=== GRAPH STATUS ===")
	total, err := graphClient.CountPlaces(ctx)
	if err != nil {
		return fmt.Errorf("count places: %w", err)
	}
	relations, err := graphClient.CountRelations(ctx)
	if err != nil {
		return fmt.Errorf("count relations: %w", err)
	}
	fmt.Printf("Total nodes: %d\n", total)
	fmt.Printf("Total relationships: %d\n", relations)

	counts, err := graphClient.CountsByType(ctx)
	if err != nil {
		return fmt.Errorf("counts by type: %w", err)
	}
	for _, tc := range counts {
		fmt.Printf("%s: %d\n", tc.Type, tc.Count)
	}

	sample, err := graphClient.SamplePlaces(ctx, 5)
	if err != nil {
		return fmt.Errorf("sample places: %w", err)
	}
	if len(sample) > 0 {
		fmt.Println("\n=== SAMPLE NODES ===")
		for _, s := range sample {
			fmt.Printf("%s (%s, ID: %s)\n", s.Name, s.Type, s.ID)
		}
	}

	return nil
}
