package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsvoboda/lexidrill/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show vocabulary and drill statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()

		count, err := st.Words().Count(ctx)
		if err != nil {
			return fmt.Errorf("count words: %w", err)
		}
		langs, err := st.Words().Languages(ctx)
		if err != nil {
			return fmt.Errorf("list languages: %w", err)
		}
		history, err := st.History().List(ctx)
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}

		var attempts, correct int
		missed := make(map[string]bool)
		for _, h := range history {
			attempts += h.Total
			correct += h.Score
			for _, id := range h.Mistakes {
				missed[id] = true
			}
		}

		fmt.Printf("Words:      %d (%d languages)\n", count, len(langs))
		fmt.Printf("Sessions:   %d\n", len(history))
		if attempts > 0 {
			fmt.Printf("Accuracy:   %d/%d (%.0f%%)\n",
				correct, attempts, 100*float64(correct)/float64(attempts))
		}
		fmt.Printf("Words with past mistakes: %d\n", len(missed))
		return nil
	},
}
