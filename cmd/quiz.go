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
	"github.com/jsvoboda/lexidrill/internal/quiz"
	"github.com/jsvoboda/lexidrill/internal/router"
	"github.com/jsvoboda/lexidrill/internal/screens/quizscreen"
	"github.com/jsvoboda/lexidrill/internal/store"
	"github.com/jsvoboda/lexidrill/internal/vocab"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Start a fixed-length quiz directly",
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

		modeFlag, _ := cmd.Flags().GetString("mode")
		limit, _ := cmd.Flags().GetInt("limit")

		pool := store.PoolOptions{
			Filter:  poolFilter(cmd),
			Shuffle: true,
			Limit:   limit,
		}

		logger := newLogger(dbPath)
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))

		screen := quizscreen.New(quizscreen.Options{
			Store:     st,
			Logger:    logger,
			DeviceID:  deviceID,
			Direction: direction,
			Mode:      quiz.ParseMode(modeFlag),
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
	quizCmd.Flags().String("direction", "to-source", "Quiz direction: to-source or to-target")
	quizCmd.Flags().String("mode", "choice", "Answer mode: choice or typed")
	quizCmd.Flags().Int("limit", 10, "Number of questions")
}
