package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jsvoboda/lexidrill/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lexidrill",
	Short: "Vocabulary drilling in the terminal",
	Long:  "LexiDrill — adaptive vocabulary drilling that reschedules words until you get every one right.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// A .env next to the binary can hold LEXIDRILL_DB and friends.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LEXIDRILL_DB env var)")

	rootCmd.PersistentFlags().String("unit", "", "Restrict to one unit")
	rootCmd.PersistentFlags().String("section", "", "Restrict to one section")
	rootCmd.PersistentFlags().String("lang", "", "Restrict to one language")

	rootCmd.AddCommand(drillCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LEXIDRILL_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// poolFilter reads the shared selection flags.
func poolFilter(cmd *cobra.Command) store.PoolFilter {
	unit, _ := cmd.Flags().GetString("unit")
	section, _ := cmd.Flags().GetString("section")
	lang, _ := cmd.Flags().GetString("lang")
	return store.PoolFilter{Unit: unit, Section: section, Lang: lang}
}
