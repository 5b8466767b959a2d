package drill

import (
	"math/rand"
	"testing"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestSelectNextUnseenFirstInPoolOrder(t *testing.T) {
	tr := NewTracker(testPool(3))
	rng := testRNG()

	prev := ""
	for _, want := range []string{"w0", "w1", "w2"} {
		got, ok := SelectNext(tr, prev, rng)
		if !ok {
			t.Fatal("expected a selection")
		}
		if got != want {
			t.Fatalf("unseen pass: got %s, want %s", got, want)
		}
		tr.Record(got, StatusMistake)
		prev = got
	}
}

func TestSelectNextTerminatesWhenAllCorrect(t *testing.T) {
	tr := NewTracker(testPool(2))
	tr.Record("w0", StatusCorrect)
	tr.Record("w1", StatusCorrect)

	if id, ok := SelectNext(tr, "w1", testRNG()); ok {
		t.Fatalf("expected termination, got %s", id)
	}
}

func TestSelectNextEmptyPool(t *testing.T) {
	tr := NewTracker(nil)
	if _, ok := SelectNext(tr, "", testRNG()); ok {
		t.Fatal("empty pool must terminate immediately")
	}
}

func TestSelectNextAvoidsPrevious(t *testing.T) {
	// Scenario: two words, both mistakes. With an alternative available the
	// previous word must never repeat.
	tr := NewTracker(testPool(2))
	tr.Record("w0", StatusMistake)
	tr.Record("w1", StatusMistake)

	rng := testRNG()
	for i := 0; i < 100; i++ {
		got, ok := SelectNext(tr, "w0", rng)
		if !ok {
			t.Fatal("expected a selection")
		}
		if got != "w1" {
			t.Fatalf("draw %d: got %s, want w1 (previous excluded)", i, got)
		}
	}
}

func TestSelectNextRepeatsWhenOnlyCandidate(t *testing.T) {
	tr := NewTracker(testPool(1))
	tr.Record("w0", StatusMistake)

	got, ok := SelectNext(tr, "w0", testRNG())
	if !ok || got != "w0" {
		t.Fatalf("got (%s, %v), want (w0, true): sole candidate may repeat", got, ok)
	}
}

func TestSelectNextMasteryCapExcludes(t *testing.T) {
	tr := NewTracker(testPool(2))
	// w0 correct with 3 attempts: capped out.
	tr.Record("w0", StatusMistake)
	tr.Record("w0", StatusMistake)
	tr.Record("w0", StatusCorrect)
	tr.Record("w1", StatusMistake)

	rng := testRNG()
	for i := 0; i < 50; i++ {
		got, ok := SelectNext(tr, "", rng)
		if !ok {
			t.Fatal("expected a selection")
		}
		if got == "w0" {
			t.Fatal("capped word selected")
		}
	}
}

func TestSelectNextWeightsFavourMistakes(t *testing.T) {
	tr := NewTracker(testPool(2))
	tr.Record("w0", StatusCorrect) // weight 1
	tr.Record("w1", StatusMistake) // weight 20

	rng := testRNG()
	picked := map[string]int{}
	for i := 0; i < 1000; i++ {
		got, _ := SelectNext(tr, "", rng)
		picked[got]++
	}

	// Expected ratio 20:1; allow generous slack for the fixed seed.
	if picked["w1"] < picked["w0"]*10 {
		t.Fatalf("weighting off: w1=%d w0=%d", picked["w1"], picked["w0"])
	}
}

// Every drill terminates within 3×poolSize submissions when answers are
// always correct, because the mastery cap retires each word after at most
// three attempts.
func TestDrillTerminationBound(t *testing.T) {
	const poolSize = 25
	tr := NewTracker(testPool(poolSize))
	rng := testRNG()

	prev := ""
	submissions := 0
	for {
		id, ok := SelectNext(tr, prev, rng)
		if !ok {
			break
		}
		tr.Record(id, StatusCorrect)
		prev = id
		submissions++
		if submissions > 3*poolSize {
			t.Fatalf("no termination after %d submissions", submissions)
		}
	}

	if submissions < poolSize {
		t.Fatalf("terminated after %d submissions, before showing every word", submissions)
	}
}
