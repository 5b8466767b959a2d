// Package history shows past drill and quiz results, newest first.
package history

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/jsvoboda/lexidrill/internal/screen"
	"github.com/jsvoboda/lexidrill/internal/store"
	"github.com/jsvoboda/lexidrill/internal/ui/layout"
	"github.com/jsvoboda/lexidrill/internal/ui/theme"
)

// HistoryScreen implements screen.Screen for the results list.
type HistoryScreen struct {
	store   *store.Store
	entries []store.Result
	loaded  bool
	offset  int
	errMsg  string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

type historyLoadedMsg struct {
	Entries []store.Result
	Err     error
}

// New creates a history screen backed by the store.
func New(st *store.Store) *HistoryScreen {
	return &HistoryScreen{store: st}
}

func (h *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		entries, err := h.store.History().List(context.Background())
		return historyLoadedMsg{Entries: entries, Err: err}
	}
}

func (h *HistoryScreen) Title() string {
	return "History"
}

func (h *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (h *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
		} else {
			h.entries = msg.Entries
		}
		h.loaded = true
		return h, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if h.offset > 0 {
				h.offset--
			}
		case "down", "j":
			if h.offset < len(h.entries)-1 {
				h.offset++
			}
		}
	}
	return h, nil
}

func (h *HistoryScreen) View(width, height int) string {
	if !h.loaded {
		return layout.Center(theme.Hint.Render("Loading history..."), width, height)
	}
	if h.errMsg != "" {
		return layout.Center(theme.Incorrect.Render(h.errMsg), width, height)
	}
	if len(h.entries) == 0 {
		return layout.Center(theme.Hint.Render("No results yet. Run a marathon first!"), width, height)
	}

	visible := height - 6
	if visible < 1 {
		visible = 1
	}
	end := h.offset + visible
	if end > len(h.entries) {
		end = len(h.entries)
	}

	var rows []string
	rows = append(rows, theme.Subtitle.Render(
		fmt.Sprintf("%-17s %-22s %-9s %s", "DATE", "MODE", "SCORE", "MISSED")))

	for _, e := range h.entries[h.offset:end] {
		score := fmt.Sprintf("%d/%d", e.Score, e.Total)
		line := fmt.Sprintf("%-17s %-22s %-9s %d",
			e.Timestamp.Local().Format("2006-01-02 15:04"),
			e.Type, score, len(e.Mistakes))

		style := theme.Body
		if e.Total > 0 && e.Score == e.Total {
			style = theme.Correct
		}
		rows = append(rows, style.Render(line))
	}

	if len(h.entries) > visible {
		rows = append(rows, "", theme.Hint.Render(
			fmt.Sprintf("%d-%d of %d", h.offset+1, end, len(h.entries))))
	}

	content := theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return layout.Center(content, width, height)
}
