package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/jsvoboda/lexidrill/internal/router"
	"github.com/jsvoboda/lexidrill/internal/screen"
	"github.com/jsvoboda/lexidrill/internal/screens/home"
	"github.com/jsvoboda/lexidrill/internal/store"
	"github.com/jsvoboda/lexidrill/internal/ui/layout"
)

// Options configures the TUI at startup.
type Options struct {
	Store    *store.Store
	Logger   *slog.Logger
	DeviceID string
	Pool     store.PoolFilter
	Seed     int64
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router    *router.Router
	opts      Options
	initial   tea.Cmd
	wordCount int
	width     int
	height    int
}

func newAppModel(opts Options) AppModel {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	homeScreen := home.New(home.Deps{
		Store:    opts.Store,
		Logger:   opts.Logger,
		DeviceID: opts.DeviceID,
		Pool:     opts.Pool,
		Rng:      rand.New(rand.NewSource(seed)),
	})

	wordCount, err := opts.Store.Words().Count(context.Background())
	if err != nil {
		opts.Logger.Warn("word count failed", slog.Any("error", err))
	}

	return AppModel{
		router:    router.New(homeScreen),
		opts:      opts,
		wordCount: wordCount,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.initial
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.opts.Pool.Lang, m.wordCount, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if provider, ok := active.(screen.KeyHintProvider); ok {
		if hints := provider.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program on the home screen.
func Run(opts Options) error {
	return RunWith(opts, nil)
}

// RunWith starts the program and dispatches an initial command, used by
// subcommands that jump straight into a mode screen.
func RunWith(opts Options, initial tea.Cmd) error {
	m := newAppModel(opts)
	m.initial = initial
	p := tea.NewProgram(m)
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
