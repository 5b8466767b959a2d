package cmd

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/jsvoboda/lexidrill/internal/app"
	"github.com/jsvoboda/lexidrill/internal/identity"
	"github.com/jsvoboda/lexidrill/internal/router"
	drillscreen "github.com/jsvoboda/lexidrill/internal/screens/drill"
	"github.com/jsvoboda/lexidrill/internal/store"
	"github.com/jsvoboda/lexidrill/internal/vocab"
)

var drillCmd = &cobra.Command{
	Use:   "drill",
	Short: "Start a marathon run directly",
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

		deviceID, err := identity.DeviceID(filepath.Dir(dbPath))
		if err != nil {
			return fmt.Errorf("device identity: %w", err)
		}

		dirFlag, _ := cmd.Flags().GetString("direction")
		direction := vocab.ParseDirection(dirFlag)

		limit, _ := cmd.Flags().GetInt("limit")
		mistakesFirst, _ := cmd.Flags().GetBool("mistakes")

		pool := store.PoolOptions{
			Filter:             poolFilter(cmd),
			Shuffle:            true,
			PrioritizeMistakes: mistakesFirst,
			Limit:              limit,
		}

		logger := newLogger(dbPath)
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))

		screen := drillscreen.New(drillscreen.Options{
			Store:     st,
			Logger:    logger,
			DeviceID:  deviceID,
			Direction: direction,
			Pool:      pool,
			Rng:       rng,
		})

		return app.RunWith(app.Options{
			Store:    st,
			Logger:   logger,
			DeviceID: deviceID,
			Pool:     pool.Filter,
		}, func() tea.Msg {
			return router.PushScreenMsg{Screen: screen}
		})
	},
}

func init() {
	drillCmd.Flags().String("direction", "to-source", "Drill direction: to-source or to-target")
	drillCmd.Flags().Int("limit", 0, "Cap the pool size (0 = all matching words)")
	drillCmd.Flags().Bool("mistakes", true, "Put previously missed words first")
}
