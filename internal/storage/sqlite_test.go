package storage

import (
	"testing"
)

func openLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestLedgerRecordAndQuery(t *testing.T) {
	l := openLedger(t)
	runID := NewRunID()

	runs := []RunRecord{
		{RunID: runID, LevelID: "01-meadow", Difficulty: "normal", Outcome: OutcomeCleared, Coins: 4, Keys: 1, Ticks: 900},
		{RunID: runID, LevelID: "02-caverns", Difficulty: "normal", Outcome: OutcomeDied, Coins: 2, Ticks: 300},
		{RunID: runID, LevelID: "02-caverns", Difficulty: "normal", Outcome: OutcomeCleared, Coins: 9, Keys: 1, Ticks: 1200},
	}
	for _, r := range runs {
		if _, err := l.RecordRun(r); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	got, err := l.Runs(runID)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(got))
	}
	if got[1].LevelID != "02-caverns" || got[1].Outcome != OutcomeDied {
		t.Errorf("Runs out of order: %+v", got[1])
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	s, err := l.Summary(runID)
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}
	want := Summary{Runs: 3, Cleared: 2, Deaths: 1, BestCoins: 9, Ticks: 2400}
	if s != want {
		t.Errorf("Summary() = %+v, want %+v", s, want)
	}
}

func TestLedgerFiltersByRun(t *testing.T) {
	l := openLedger(t)
	a, b := NewRunID(), NewRunID()
	if a == b {
		t.Fatal("run ids should be unique")
	}

	if _, err := l.RecordRun(RunRecord{RunID: a, LevelID: "x", Difficulty: "god", Outcome: OutcomeCleared}); err != nil {
		t.Fatal(err)
	}
	if _, err := l.RecordRun(RunRecord{RunID: b, LevelID: "x", Difficulty: "god", Outcome: OutcomeQuit}); err != nil {
		t.Fatal(err)
	}

	runs, _ := l.Runs(a)
	if len(runs) != 1 {
		t.Errorf("Expected 1 run for a, got %d", len(runs))
	}
	all, _ := l.Runs("")
	if len(all) != 2 {
		t.Errorf("Expected 2 runs in session, got %d", len(all))
	}
	s, _ := l.Summary("")
	if s.Runs != 2 || s.Cleared != 1 || s.Deaths != 0 {
		t.Errorf("Session summary = %+v", s)
	}
}

func TestLedgersAreIsolated(t *testing.T) {
	l1 := openLedger(t)
	l2 := openLedger(t)
	if l1.SessionID() == l2.SessionID() {
		t.Fatal("session ids should differ")
	}

	if _, err := l1.RecordRun(RunRecord{RunID: NewRunID(), LevelID: "x", Difficulty: "normal", Outcome: OutcomeDied}); err != nil {
		t.Fatal(err)
	}
	runs, err := l2.Runs("")
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("second ledger should be empty, got %d runs", len(runs))
	}
}

func TestRecordRunRequiresRunID(t *testing.T) {
	l := openLedger(t)
	if _, err := l.RecordRun(RunRecord{LevelID: "x"}); err == nil {
		t.Error("expected an error for a missing run id")
	}
}

func TestEmptySummary(t *testing.T) {
	l := openLedger(t)
	s, err := l.Summary("")
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}
	if s != (Summary{}) {
		t.Errorf("Summary() on empty ledger = %+v", s)
	}
}
