// Package home is the landing screen with the mode menu.
package home

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/jsvoboda/lexidrill/internal/quiz"
	"github.com/jsvoboda/lexidrill/internal/router"
	"github.com/jsvoboda/lexidrill/internal/screen"
	drillscreen "github.com/jsvoboda/lexidrill/internal/screens/drill"
	"github.com/jsvoboda/lexidrill/internal/screens/history"
	"github.com/jsvoboda/lexidrill/internal/screens/quizscreen"
	"github.com/jsvoboda/lexidrill/internal/store"
	"github.com/jsvoboda/lexidrill/internal/ui/components"
	"github.com/jsvoboda/lexidrill/internal/ui/theme"
	"github.com/jsvoboda/lexidrill/internal/vocab"
)

// quizBatchSize caps how many words one quiz run covers.
const quizBatchSize = 10

// Deps is everything the home screen hands down to the mode screens.
type Deps struct {
	Store    *store.Store
	Logger   *slog.Logger
	DeviceID string
	Pool     store.PoolFilter
	Rng      *rand.Rand
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	deps      Deps
	menu      components.Menu
	wordCount int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}

	count, err := deps.Store.Words().Count(context.Background())
	if err != nil {
		deps.Logger.Warn("word count failed", slog.Any("error", err))
	}
	h.wordCount = count

	marathonPool := store.PoolOptions{
		Filter:             deps.Pool,
		Shuffle:            true,
		PrioritizeMistakes: true,
	}
	quizPool := store.PoolOptions{
		Filter:  deps.Pool,
		Shuffle: true,
		Limit:   quizBatchSize,
	}

	items := []components.MenuItem{
		{Label: "MARATHON", Action: func() tea.Cmd {
			return pushDrill(deps, vocab.ToSource, marathonPool)
		}},
		{Label: "MARATHON (REVERSED)", Action: func() tea.Cmd {
			return pushDrill(deps, vocab.ToTarget, marathonPool)
		}},
		{Label: "QUIZ: MULTIPLE CHOICE", Action: func() tea.Cmd {
			return pushQuiz(deps, quiz.ModeChoice, quizPool)
		}},
		{Label: "QUIZ: TYPED", Action: func() tea.Cmd {
			return pushQuiz(deps, quiz.ModeTyped, quizPool)
		}},
		{Label: "HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(deps.Store)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h.menu = components.NewMenu(items)
	return h
}

func pushDrill(deps Deps, dir vocab.Direction, pool store.PoolOptions) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: drillscreen.New(drillscreen.Options{
			Store:     deps.Store,
			Logger:    deps.Logger,
			DeviceID:  deps.DeviceID,
			Direction: dir,
			Pool:      pool,
			Rng:       deps.Rng,
		})}
	}
}

func pushQuiz(deps Deps, mode quiz.Mode, pool store.PoolOptions) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: quizscreen.New(quizscreen.Options{
			Store:     deps.Store,
			Logger:    deps.Logger,
			DeviceID:  deps.DeviceID,
			Direction: vocab.ToSource,
			Mode:      mode,
			Pool:      pool,
			Rng:       deps.Rng,
		})}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	title := theme.Title.Render("LexiDrill")
	subtitle := theme.Subtitle.Render("vocabulary that sticks")

	var stats string
	if h.wordCount > 0 {
		stats = theme.Hint.Render(wordCountLine(h.wordCount))
	} else {
		stats = theme.Hint.Render("No words yet. Import a word list first.")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		subtitle,
		"",
		theme.Card.Render(h.menu.View()),
		"",
		stats,
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func wordCountLine(n int) string {
	if n == 1 {
		return "1 word in your vocabulary"
	}
	return fmt.Sprintf("%d words in your vocabulary", n)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
