package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/minhdn/travelgraph/internal/rag"
	"github.com/spf13/cobra"
)

var chatConcurrent bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive travel question session",
	Long: `Start an interactive chat session. Each question runs vector search,
graph expansion, and LLM answer synthesis.

Type 'quit', 'exit' or 'q' to end the session; Ctrl-C also exits cleanly.

Examples:
  travelgraph chat
  travelgraph chat --concurrent`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&chatConcurrent, "concurrent", false,
		"run the vector search off the session loop")
}

// isSentinel reports whether a trimmed input line ends the session.
func isSentinel(input string) bool {
	switch strings.ToLower(input) {
	case "quit", "exit", "q":
		return true
	}
	return false
}

func runChat(cmd *cobra.Command, args []string) error {
	mode := rag.ModeSequential
	if chatConcurrent {
		mode = rag.ModeConcurrent
	}

	orch, err := newOrchestrator(true, mode)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	fmt.Println(bannerStyle.Render("Vietnam Travel Chatbot"))
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("Ask me anything about Vietnam travel!")
	fmt.Println(hintStyle.Render("Type 'quit' to exit"))
	fmt.Println()

	runLoop(ctx, os.Stdin, orch)

	fmt.Println(hintStyle.Render("\nSession stats:"))
	fmt.Println(hintStyle.Render(orch.Metrics().Summary()))
	return nil
}

// runLoop drives the read-evaluate loop until a sentinel, input EOF, or
// context cancellation. One query is fully processed before the next is
// read; stdin reads happen on a goroutine so an interrupt is not stuck
// behind a blocking read.
func runLoop(ctx context.Context, in io.Reader, orch *rag.Orchestrator) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Print("Enter your travel question: ")

		select {
		case <-ctx.Done():
			fmt.Println("\nGoodbye!")
			return

		case line, ok := <-lines:
			if !ok {
				fmt.Println()
				return
			}

			input := strings.TrimSpace(line)
			if input == "" {
				continue
			}
			if isSentinel(input) {
				fmt.Printf("Thanks for using Vietnam Travel Chatbot! Cache size: %d\n", orch.CacheSize())
				return
			}

			fmt.Printf("\nSearching for: %s\n", input)

			bundle, summary, err := orch.RetrieveContext(ctx, input)
			if err != nil {
				fmt.Println(errorStyle.Render(fmt.Sprintf("Retrieval failed: %v", err)))
				continue
			}

			fmt.Println(summaryStyle.Render("SUMMARY: " + summary))
			fmt.Println("Generating response...")

			answer, err := orch.Respond(ctx, input, bundle)
			if err != nil {
				fmt.Println(errorStyle.Render(fmt.Sprintf("Response failed: %v", err)))
				continue
			}

			fmt.Println("\nAI Response:")
			fmt.Println(strings.Repeat("-", 30))
			fmt.Println(answer.Text)
			fmt.Printf("\nCache size: %d embeddings\n", orch.CacheSize())
			fmt.Println("\n" + strings.Repeat("=", 50) + "\n")
		}
	}
}
