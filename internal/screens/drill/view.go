package drill

import (
	"fmt"

	"charm.land/lipgloss/v2"

	sess "github.com/jsvoboda/lexidrill/internal/drill"
	"github.com/jsvoboda/lexidrill/internal/ui/components"
	"github.com/jsvoboda/lexidrill/internal/ui/layout"
	"github.com/jsvoboda/lexidrill/internal/ui/theme"
)

func (d *DrillScreen) View(width, height int) string {
	if d.errMsg != "" {
		return renderError(d.errMsg, width, height)
	}
	if d.session == nil {
		return layout.Center(theme.Hint.Render("Loading words..."), width, height)
	}

	switch d.session.Phase() {
	case sess.PhaseShowingFeedback:
		return d.renderFeedback(width, height)
	case sess.PhaseCompleted:
		return d.renderSummary(width, height)
	default:
		return d.renderQuestion(width, height)
	}
}

func renderError(msg string, width, height int) string {
	content := theme.Incorrect.Render("Something went wrong") + "\n\n" +
		theme.Body.Render(msg) + "\n\n" +
		theme.Hint.Render("Press Esc to go back")
	return layout.Center(content, width, height)
}

// dotStates maps tracker slots onto a dot row. Only words that have been
// shown occupy a slot; the row grows as the run reveals new words.
func (d *DrillScreen) dotStates() ([]components.DotState, int) {
	tracker := d.session.Progress()
	current := -1

	assigned := make([]sess.Status, 0, tracker.Len())
	for _, id := range tracker.Order() {
		p := tracker.Get(id)
		if p == nil || p.Slot == sess.SlotUnassigned {
			continue
		}
		for len(assigned) <= p.Slot {
			assigned = append(assigned, sess.StatusUnseen)
		}
		assigned[p.Slot] = p.Status
		if id == d.session.CurrentID() {
			current = p.Slot
		}
	}

	states := make([]components.DotState, 0, len(assigned))
	for _, st := range assigned {
		switch st {
		case sess.StatusCorrect:
			states = append(states, components.DotRight)
		case sess.StatusMistake:
			states = append(states, components.DotWrong)
		case sess.StatusUnknown:
			states = append(states, components.DotSkipped)
		default:
			states = append(states, components.DotPending)
		}
	}
	return states, current
}

func (d *DrillScreen) renderProgress(width int) string {
	states, current := d.dotStates()
	row := components.DotRow{States: states, Current: current, Width: width - 8}

	tracker := d.session.Progress()
	counts := fmt.Sprintf("%d of %d seen   %d attempts",
		len(states), tracker.Len(), d.session.TotalAttempts())

	return row.View() + "\n" + theme.Hint.Render(counts)
}

func (d *DrillScreen) renderQuestion(width, height int) string {
	prompt := theme.Card.Render(
		theme.Title.Render(d.session.Prompt()),
	)

	content := lipgloss.JoinVertical(lipgloss.Center,
		prompt,
		"",
		d.input.View(),
		"",
		d.renderProgress(width),
	)
	return layout.Center(content, width, height)
}

func (d *DrillScreen) renderFeedback(width, height int) string {
	fb := d.session.LastFeedback()

	var verdict string
	switch {
	case fb.Outcome == sess.StatusCorrect && fb.Typo:
		verdict = theme.AlmostCorrect.Render("Close enough!") + "\n" +
			theme.Body.Render("Correct spelling: "+fb.Answer)
	case fb.Outcome == sess.StatusCorrect:
		verdict = theme.Correct.Render("Correct!")
	case fb.Outcome == sess.StatusUnknown:
		verdict = theme.DotUnknown.Render("Skipped") + "\n" +
			theme.Body.Render("Answer: "+fb.Answer)
	default:
		verdict = theme.Incorrect.Render("Not quite") + "\n" +
			theme.Body.Render("Answer: "+fb.Answer)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.Card.Render(theme.Title.Render(d.session.Prompt())),
		"",
		verdict,
		"",
		d.renderProgress(width),
	)
	return layout.Center(content, width, height)
}

func (d *DrillScreen) renderSummary(width, height int) string {
	summary := d.session.Summary()
	score := summary.Words - len(summary.Mistakes)

	lines := []string{
		theme.Title.Render("Marathon complete!"),
		"",
		theme.Body.Render(fmt.Sprintf("Words drilled:   %d", summary.Words)),
		theme.Body.Render(fmt.Sprintf("Total attempts:  %d", summary.Attempts)),
		theme.Body.Render(fmt.Sprintf("First-try score: %d / %d", score, summary.Words)),
	}
	if len(summary.Mistakes) > 0 {
		lines = append(lines, "",
			theme.Hint.Render(fmt.Sprintf("%d words needed extra rounds", len(summary.Mistakes))))
	}

	content := theme.Card.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
	return layout.Center(content, width, height)
}
