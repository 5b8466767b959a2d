package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsvoboda/lexidrill/internal/importer"
	"github.com/jsvoboda/lexidrill/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a word list (JSON, CSV or XLSX)",
	Args:  cobra.ExactArgs(1),
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

		words, err := importer.Load(args[0])
		if err != nil {
			return fmt.Errorf("load %s: %w", args[0], err)
		}

		if lang, _ := cmd.Flags().GetString("set-lang"); lang != "" {
			for i := range words {
				words[i].Lang = lang
			}
		}

		created, updated, err := st.Words().Upsert(cmd.Context(), words)
		if err != nil {
			return fmt.Errorf("store words: %w", err)
		}

		fmt.Printf("Imported %d words (%d new, %d updated)\n", created+updated, created, updated)
		return nil
	},
}

func init() {
	importCmd.Flags().String("set-lang", "", "Override the language code for every imported word")
}
