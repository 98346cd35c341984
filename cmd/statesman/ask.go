package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stratford-labs/statesman/internal/retrieval"
)

var (
	askShowPrompt bool
	askTopK       int
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Retrieve the excerpts most relevant to a question",
	Long: `Ask embeds the question, retrieves the closest speech excerpts
from the corpus, and prints them with their sources. With --prompt it
prints the full persona prompt ready to hand to a chat model.

Examples:
  statesman ask "What was the purpose of the Pacific railway?"
  statesman ask --prompt "Why did you support Confederation?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askShowPrompt, "prompt", false, "print the full persona prompt instead of excerpts")
	askCmd.Flags().IntVar(&askTopK, "top-k", 0, "number of excerpts to retrieve (default from config)")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	store, provider, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()
	defer provider.Close()

	topK := cfg.Retrieval.TopK
	if askTopK > 0 {
		topK = askTopK
	}
	composer := retrieval.NewComposer(store, topK, logger)

	question := strings.Join(args, " ")
	ctx := cmd.Context()

	if askShowPrompt {
		prompt, _, err := composer.Prompt(ctx, question)
		if err != nil {
			return err
		}
		fmt.Println(prompt)
		return nil
	}

	excerpts, err := composer.Retrieve(ctx, question)
	if err != nil {
		return err
	}
	if len(excerpts) == 0 {
		fmt.Println("No excerpts found. Has the corpus been ingested?")
		return nil
	}

	for i, ex := range excerpts {
		year := "unknown"
		if ex.Year != nil {
			year = fmt.Sprintf("%d", *ex.Year)
		}
		fmt.Printf("%d. [%s - page %d, %s] (score %.3f)\n", i+1, ex.Source, ex.Page, year, ex.Score)
		fmt.Printf("   %s\n\n", ex.Text)
	}
	return nil
}
