// Package quizscreen runs a fixed-length quiz over a word batch, either
// with multiple-choice options or typed answers.
package quizscreen

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
	"github.com/jsvoboda/lexidrill/internal/store"
	"github.com/jsvoboda/lexidrill/internal/ui/components"
	"github.com/jsvoboda/lexidrill/internal/ui/layout"
	"github.com/jsvoboda/lexidrill/internal/ui/theme"
	"github.com/jsvoboda/lexidrill/internal/vocab"
)

// Options carries the dependencies and settings for one quiz run.
type Options struct {
	Store     *store.Store
	Logger    *slog.Logger
	DeviceID  string
	Direction vocab.Direction
	Mode      quiz.Mode
	Pool      store.PoolOptions
	Rng       *rand.Rand
}

// QuizScreen implements screen.Screen for the quiz mode.
type QuizScreen struct {
	opts     Options
	run      *quiz.Quiz
	choice   components.MultiChoice
	input    components.AnswerInput
	feedback bool
	saved    bool
	errMsg   string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

type quizReadyMsg struct {
	Run *quiz.Quiz
	Err error
}

type historySavedMsg struct {
	Err error
}

// New creates a quiz screen. Questions are built once the pool loads.
func New(opts Options) *QuizScreen {
	return &QuizScreen{opts: opts}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.loadQuiz()
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.run == nil {
		return nil
	}
	if s.run.Finished() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Back to menu"},
		}
	}
	if s.feedback {
		return []layout.KeyHint{
			{Key: "any key", Description: "Next"},
		}
	}
	if s.opts.Mode == quiz.ModeChoice {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Pick"},
			{Key: "Enter", Description: "Answer"},
			{Key: "Tab", Description: "Skip"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Answer"},
		{Key: "Tab", Description: "Skip"},
	}
}

func (s *QuizScreen) loadQuiz() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		targets, err := s.opts.Store.Words().FetchPool(ctx, s.opts.Pool, s.opts.Rng)
		if err != nil {
			return quizReadyMsg{Err: err}
		}
		if len(targets) == 0 {
			return quizReadyMsg{Err: fmt.Errorf("no words matched the selection")}
		}

		var distractors []vocab.Word
		if s.opts.Mode == quiz.ModeChoice {
			distractors, err = s.opts.Store.Words().All(ctx)
			if err != nil {
				return quizReadyMsg{Err: err}
			}
		}

		questions := quiz.Build(targets, distractors, s.opts.Direction, s.opts.Mode, s.opts.Rng)
		return quizReadyMsg{Run: quiz.New(questions, s.opts.Direction, s.opts.Mode)}
	}
}

func (s *QuizScreen) saveHistory() tea.Cmd {
	run := s.run
	return func() tea.Msg {
		err := s.opts.Store.History().Append(context.Background(), store.Result{
			DeviceID: s.opts.DeviceID,
			Type:     run.HistoryType(),
			Score:    run.Score(),
			Total:    run.Len(),
			Mistakes: run.Mistakes(),
		})
		return historySavedMsg{Err: err}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.run = msg.Run
		return s, s.presentCurrent()

	case historySavedMsg:
		if msg.Err != nil {
			s.opts.Logger.Warn("history write failed", slog.Any("error", msg.Err))
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.run != nil && !s.feedback && !s.run.Finished() && s.opts.Mode == quiz.ModeTyped {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

// presentCurrent resets the answer widget for the question under the cursor.
func (s *QuizScreen) presentCurrent() tea.Cmd {
	q, ok := s.run.Current()
	if !ok {
		return nil
	}
	if s.opts.Mode == quiz.ModeChoice {
		s.choice = components.NewMultiChoice(q.Prompt, q.Options, correctIndex(q))
		return nil
	}
	s.input = components.NewAnswerInput("Type the translation...", 60)
	return s.input.Init()
}

func correctIndex(q quiz.Question) int {
	want := vocab.CleanForDisplay(q.Answer)
	for i, opt := range q.Options {
		if opt == want {
			return i
		}
	}
	return -1
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.run == nil {
		if s.errMsg != "" && (msg.String() == "esc" || msg.String() == "enter") {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	if s.run.Finished() {
		if msg.String() == "enter" || msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	if s.feedback {
		s.feedback = false
		if !s.run.Next() {
			s.run.Finish()
			if !s.saved {
				s.saved = true
				return s, s.saveHistory()
			}
			return s, nil
		}
		return s, s.presentCurrent()
	}

	if msg.String() == "tab" {
		s.run.Skip()
		if s.opts.Mode == quiz.ModeChoice {
			s.choice.Submitted = true
		} else {
			s.input.Submit(false)
		}
		s.feedback = true
		return s, nil
	}

	if s.opts.Mode == quiz.ModeChoice {
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if s.choice.Submitted {
			q, _ := s.run.Current()
			s.run.Answer(q.Options[s.choice.ChosenIndex])
			s.feedback = true
		}
		return s, cmd
	}

	if msg.String() == "enter" {
		correct := s.run.Answer(s.input.Value())
		s.input.Submit(correct)
		s.feedback = true
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		content := theme.Incorrect.Render("Something went wrong") + "\n\n" +
			theme.Body.Render(s.errMsg) + "\n\n" +
			theme.Hint.Render("Press Esc to go back")
		return layout.Center(content, width, height)
	}
	if s.run == nil {
		return layout.Center(theme.Hint.Render("Preparing quiz..."), width, height)
	}
	if s.run.Finished() {
		return s.renderSummary(width, height)
	}
	return s.renderQuestion(width, height)
}

func (s *QuizScreen) renderQuestion(width, height int) string {
	q, ok := s.run.Current()
	if !ok {
		return ""
	}

	position := theme.Hint.Render(fmt.Sprintf("Question %d of %d   Score %d",
		s.run.Index()+1, s.run.Len(), s.run.Score()))

	var body string
	if s.opts.Mode == quiz.ModeChoice {
		body = s.choice.View()
	} else {
		body = theme.Title.Render(q.Prompt) + "\n\n" + s.input.View()
	}

	if s.feedback && s.opts.Mode == quiz.ModeTyped {
		body += "\n\n" + theme.Body.Render("Answer: "+vocab.CleanForDisplay(q.Answer))
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.Card.Render(body),
		"",
		position,
	)
	return layout.Center(content, width, height)
}

func (s *QuizScreen) renderSummary(width, height int) string {
	lines := []string{
		theme.Title.Render("Quiz finished!"),
		"",
		theme.Body.Render(fmt.Sprintf("Score: %d / %d", s.run.Score(), s.run.Len())),
	}
	if n := len(s.run.Mistakes()); n > 0 {
		lines = append(lines, theme.Hint.Render(fmt.Sprintf("%d to review", n)))
	}
	content := theme.Card.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
	return layout.Center(content, width, height)
}
