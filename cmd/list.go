package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jsvoboda/lexidrill/internal/store"
	"github.com/jsvoboda/lexidrill/internal/vocab"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List words matching the selection flags",
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

		words, err := st.Words().FetchPool(cmd.Context(), store.PoolOptions{
			Filter: poolFilter(cmd),
		}, nil)
		if err != nil {
			return fmt.Errorf("fetch words: %w", err)
		}

		if len(words) == 0 {
			fmt.Println("No words matched.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WORD\tTRANSLATION\tUNIT\tSECTION\tLANG")
		for _, word := range words {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				vocab.CleanForDisplay(word.Word), word.Translation,
				word.Unit, word.Section, word.Lang)
		}
		return w.Flush()
	},
}
