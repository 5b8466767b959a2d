package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jsvoboda/lexidrill/internal/app"
	"github.com/jsvoboda/lexidrill/internal/identity"
	"github.com/jsvoboda/lexidrill/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	deviceID, err := identity.DeviceID(filepath.Dir(dbPath))
	if err != nil {
		return fmt.Errorf("device identity: %w", err)
	}

	logger := newLogger(dbPath)

	return app.Run(app.Options{
		Store:    st,
		Logger:   logger,
		DeviceID: deviceID,
		Pool:     poolFilter(cmd),
	})
}

// newLogger writes structured logs next to the database so they never
// corrupt the TUI output.
func newLogger(dbPath string) *slog.Logger {
	logPath := filepath.Join(filepath.Dir(dbPath), "lexidrill.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return slog.New(slog.NewTextHandler(f, nil))
}
