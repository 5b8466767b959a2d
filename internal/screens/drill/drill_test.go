package drill

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"

	sess "github.com/jsvoboda/lexidrill/internal/drill"
	"github.com/jsvoboda/lexidrill/internal/screen"
	"github.com/jsvoboda/lexidrill/internal/store"
	"github.com/jsvoboda/lexidrill/internal/vocab"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testPool() []vocab.Word {
	return []vocab.Word{
		{ID: "w1", Word: "dog", Translation: "pes", Unit: "1", Section: "A", Lang: "cs"},
		{ID: "w2", Word: "cat", Translation: "kočka", Unit: "1", Section: "A", Lang: "cs"},
	}
}

func newTestScreen(t *testing.T, pool []vocab.Word) (*DrillScreen, *store.Store) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	d := New(Options{
		Store:     st,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		DeviceID:  "dev-1",
		Direction: vocab.ToTarget,
		Rng:       rand.New(rand.NewSource(1)),
	})

	var scr screen.Screen = d
	scr, _ = scr.Update(poolLoadedMsg{Words: pool})
	return scr.(*DrillScreen), st
}

func historyRows(t *testing.T, st *store.Store) []store.Result {
	t.Helper()
	rows, err := st.History().List(context.Background())
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	return rows
}

func TestDrillScreen_MidSessionAdvance(t *testing.T) {
	d, st := newTestScreen(t, testPool())

	d.input.Model.SetValue("pes")
	var scr screen.Screen = d
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	if d.session.Phase() != sess.PhaseShowingFeedback {
		t.Fatalf("phase after submit = %d, want ShowingFeedback", d.session.Phase())
	}

	scr, _ = scr.Update(keyPress(' '))
	if d.session.Phase() != sess.PhaseAwaitingAnswer {
		t.Fatalf("phase after advance = %d, want AwaitingAnswer", d.session.Phase())
	}
	if d.saved {
		t.Error("screen marked saved mid-session")
	}
	if got := d.input.Value(); got != "" {
		t.Errorf("input not cleared after advance: %q", got)
	}
	if rows := historyRows(t, st); len(rows) != 0 {
		t.Fatalf("history written mid-session: %+v", rows)
	}
}

func TestDrillScreen_CompletionSavesOnce(t *testing.T) {
	d, st := newTestScreen(t, testPool())
	var scr screen.Screen = d

	// First word.
	d.input.Model.SetValue("pes")
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	scr, _ = scr.Update(keyPress(' '))

	// Second word; the advance after it completes the session.
	d.input.Model.SetValue("kočka")
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	scr, cmd := scr.Update(keyPress(' '))

	if d.session.Phase() != sess.PhaseCompleted {
		t.Fatalf("phase = %d, want Completed", d.session.Phase())
	}
	if cmd == nil {
		t.Fatal("no command returned on completion")
	}
	msg := cmd()
	saved, ok := msg.(historySavedMsg)
	if !ok {
		t.Fatalf("completion command returned %T, want historySavedMsg", msg)
	}
	if saved.Err != nil {
		t.Fatalf("history save failed: %v", saved.Err)
	}
	scr, _ = scr.Update(msg)

	rows := historyRows(t, st)
	if len(rows) != 1 {
		t.Fatalf("history rows = %d, want 1", len(rows))
	}
	res := rows[0]
	if res.Type != "marathon" {
		t.Errorf("Type = %q, want %q", res.Type, "marathon")
	}
	if res.DeviceID != "dev-1" {
		t.Errorf("DeviceID = %q, want %q", res.DeviceID, "dev-1")
	}
	if res.Score != 2 {
		t.Errorf("Score = %d, want 2", res.Score)
	}
	if res.Total != 2 {
		t.Errorf("Total = %d, want 2", res.Total)
	}
	if len(res.Mistakes) != 0 {
		t.Errorf("Mistakes = %v, want none", res.Mistakes)
	}

	// Further keys on the completed screen must not write again.
	scr, _ = scr.Update(keyPress('x'))
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	if rows := historyRows(t, st); len(rows) != 1 {
		t.Fatalf("history rows after completion keys = %d, want 1", len(rows))
	}
}

func TestDrillScreen_MistakeSummary(t *testing.T) {
	pool := testPool()[:1]
	d, st := newTestScreen(t, pool)
	var scr screen.Screen = d

	// Wrong answer first; the word comes back around.
	d.input.Model.SetValue("moucha")
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	scr, _ = scr.Update(keyPress(' '))
	if d.session.Phase() != sess.PhaseAwaitingAnswer {
		t.Fatalf("phase after wrong answer = %d, want AwaitingAnswer", d.session.Phase())
	}
	if rows := historyRows(t, st); len(rows) != 0 {
		t.Fatalf("history written mid-session: %+v", rows)
	}

	d.input.Model.SetValue("pes")
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	_, cmd := scr.Update(keyPress(' '))
	if cmd == nil {
		t.Fatal("no command returned on completion")
	}
	if msg := cmd(); msg != nil {
		if saved, ok := msg.(historySavedMsg); ok && saved.Err != nil {
			t.Fatalf("history save failed: %v", saved.Err)
		}
	}

	rows := historyRows(t, st)
	if len(rows) != 1 {
		t.Fatalf("history rows = %d, want 1", len(rows))
	}
	res := rows[0]
	if res.Score != 1 || res.Total != 2 {
		t.Errorf("Score/Total = %d/%d, want 1/2", res.Score, res.Total)
	}
	if len(res.Mistakes) != 1 || res.Mistakes[0] != "w1" {
		t.Errorf("Mistakes = %v, want [w1]", res.Mistakes)
	}
}
