// Package drill is the marathon screen: an open-ended run over a word
// pool that keeps rescheduling words until every one has been answered
// correctly.
package drill

import (
	"context"
	"log/slog"
	"math/rand"

	tea "charm.land/bubbletea/v2"

	sess "github.com/jsvoboda/lexidrill/internal/drill"
	"github.com/jsvoboda/lexidrill/internal/router"
	"github.com/jsvoboda/lexidrill/internal/screen"
	"github.com/jsvoboda/lexidrill/internal/store"
	"github.com/jsvoboda/lexidrill/internal/ui/components"
	"github.com/jsvoboda/lexidrill/internal/ui/layout"
	"github.com/jsvoboda/lexidrill/internal/vocab"
)

const historyTypeMarathon = "marathon"

// Options carries the dependencies and settings for one marathon run.
type Options struct {
	Store     *store.Store
	Logger    *slog.Logger
	DeviceID  string
	Direction vocab.Direction
	Pool      store.PoolOptions
	Rng       *rand.Rand
}

// DrillScreen implements screen.Screen for the marathon mode.
type DrillScreen struct {
	opts    Options
	session *sess.Session
	input   components.AnswerInput
	saved   bool
	errMsg  string
}

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)

// New creates a marathon screen. The session starts once the pool loads.
func New(opts Options) *DrillScreen {
	return &DrillScreen{
		opts:  opts,
		input: components.NewAnswerInput("Type the translation...", 60),
	}
}

func (d *DrillScreen) Init() tea.Cmd {
	return tea.Batch(d.loadPool(), d.input.Init())
}

func (d *DrillScreen) Title() string {
	return "Marathon"
}

func (d *DrillScreen) KeyHints() []layout.KeyHint {
	if d.session == nil {
		return nil
	}
	switch d.session.Phase() {
	case sess.PhaseShowingFeedback:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	case sess.PhaseCompleted:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Back to menu"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Tab", Description: "Don't know"},
			{Key: "Esc", Description: "Quit"},
		}
	}
}

func (d *DrillScreen) loadPool() tea.Cmd {
	return func() tea.Msg {
		words, err := d.opts.Store.Words().FetchPool(context.Background(), d.opts.Pool, d.opts.Rng)
		return poolLoadedMsg{Words: words, Err: err}
	}
}

func (d *DrillScreen) saveHistory() tea.Cmd {
	summary := d.session.Summary()
	return func() tea.Msg {
		err := d.opts.Store.History().Append(context.Background(), store.Result{
			DeviceID: d.opts.DeviceID,
			Type:     historyTypeMarathon,
			Score:    summary.Words,
			Total:    summary.Attempts,
			Mistakes: summary.Mistakes,
		})
		return historySavedMsg{Err: err}
	}
}

func (d *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case poolLoadedMsg:
		return d.handlePoolLoaded(msg)

	case historySavedMsg:
		if msg.Err != nil {
			d.opts.Logger.Warn("history write failed", slog.Any("error", msg.Err))
		}
		return d, nil

	case tea.KeyMsg:
		return d.handleKey(msg)
	}

	if d.session != nil && d.session.Phase() == sess.PhaseAwaitingAnswer {
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return d, cmd
	}

	return d, nil
}

func (d *DrillScreen) handlePoolLoaded(msg poolLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		d.errMsg = msg.Err.Error()
		return d, nil
	}

	session, err := sess.NewSession(msg.Words, d.opts.Direction, d.opts.Rng)
	if err != nil {
		d.errMsg = err.Error()
		return d, nil
	}
	d.session = session
	return d, nil
}

func (d *DrillScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if d.session == nil {
		if msg.String() == "esc" || msg.String() == "enter" {
			if d.errMsg != "" {
				return d, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
		return d, nil
	}

	switch d.session.Phase() {
	case sess.PhaseAwaitingAnswer:
		switch msg.String() {
		case "enter":
			if _, err := d.session.Submit(d.input.Value()); err != nil {
				d.errMsg = err.Error()
				return d, nil
			}
			d.input.Submit(d.session.LastFeedback().Outcome == sess.StatusCorrect)
			return d, nil
		case "tab":
			if _, err := d.session.Skip(); err != nil {
				d.errMsg = err.Error()
			}
			return d, nil
		default:
			var cmd tea.Cmd
			d.input, cmd = d.input.Update(msg)
			return d, cmd
		}

	case sess.PhaseShowingFeedback:
		done, err := d.session.Advance()
		if err != nil {
			d.errMsg = err.Error()
			return d, nil
		}
		if done {
			// Session just completed; record it once.
			if !d.saved {
				d.saved = true
				return d, d.saveHistory()
			}
			return d, nil
		}
		d.input = components.NewAnswerInput("Type the translation...", 60)
		return d, d.input.Init()

	case sess.PhaseCompleted:
		if msg.String() == "enter" || msg.String() == "esc" {
			return d, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	return d, nil
}
