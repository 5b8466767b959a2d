package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/spf13/cobra"

	"github.com/jsvoboda/lexidrill/internal/server"
	"github.com/jsvoboda/lexidrill/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API with weekly history backups",
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

		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		backupDir := filepath.Join(filepath.Dir(dbPath), "backups")

		scheduler := gocron.NewScheduler(time.UTC)
		_, err = scheduler.Every(1).Day().At("03:00").Do(func() {
			path, err := st.History().Backup(context.Background(), backupDir)
			if err != nil {
				logger.Error("history backup failed", slog.Any("error", err))
				return
			}
			if path != "" {
				logger.Info("history backup written", slog.String("path", path))
			}
		})
		if err != nil {
			return fmt.Errorf("schedule backup: %w", err)
		}
		scheduler.StartAsync()
		defer scheduler.Stop()

		addr, _ := cmd.Flags().GetString("addr")
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))

		logger.Info("serving", slog.String("addr", addr), slog.String("db", dbPath))
		return server.New(st, logger, rng).Start(addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":3001", "Listen address")
}
