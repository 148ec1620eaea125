package engine

import (
	"testing"

	"github.com/vhoang/skillforge/internal/model"
)

func intPtr(n int) *int { return &n }

func TestLedgerRecordSupersedes(t *testing.T) {
	l := NewLedger()

	l.Record("q1", "first draft", nil, 10)
	l.Record("q1", "final answer", intPtr(2), 25)

	e, ok := l.Get("q1")
	if !ok {
		t.Fatal("entry missing after Record")
	}
	if e.Text != "final answer" || e.SelectedChoice == nil || *e.SelectedChoice != 2 {
		t.Errorf("entry = %+v, want the superseding value", e)
	}
	if e.TimeSpentSec != 25 {
		t.Errorf("TimeSpentSec = %d, want 25", e.TimeSpentSec)
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
}

func TestLedgerDirtyAndMarkClean(t *testing.T) {
	l := NewLedger()
	l.Record("q1", "a", nil, 5)

	dirty := l.Dirty()
	if len(dirty) != 1 {
		t.Fatalf("Dirty() returned %d entries, want 1", len(dirty))
	}

	l.MarkClean(dirty[0])
	if len(l.Dirty()) != 0 {
		t.Error("entry still dirty after MarkClean")
	}
}

func TestLedgerMarkCleanIgnoresStaleSnapshot(t *testing.T) {
	l := NewLedger()
	l.Record("q1", "a", nil, 5)
	snapshot := l.Dirty()[0]

	// Re-recorded while the flush was in flight.
	l.Record("q1", "b", nil, 9)
	l.MarkClean(snapshot)

	dirty := l.Dirty()
	if len(dirty) != 1 {
		t.Fatal("re-recorded entry was wrongly marked clean")
	}
	if dirty[0].Text != "b" {
		t.Errorf("dirty entry text = %q, want %q", dirty[0].Text, "b")
	}
}

func TestLedgerElapsedAccumulates(t *testing.T) {
	l := NewLedger()

	l.AddElapsed("q1", 10)
	l.AddElapsed("q1", 7)
	l.AddElapsed("q1", -3) // ignored

	if got := l.Elapsed("q1"); got != 17 {
		t.Errorf("Elapsed() = %d, want 17", got)
	}
	if got := l.Elapsed("q2"); got != 0 {
		t.Errorf("Elapsed() for unseen question = %d, want 0", got)
	}
}

func TestLedgerRestoreIsClean(t *testing.T) {
	l := NewLedger()
	l.Restore("q1", "persisted", intPtr(1), 40)

	if len(l.Dirty()) != 0 {
		t.Error("restored entry must not be dirty")
	}
	if got := l.Elapsed("q1"); got != 40 {
		t.Errorf("Elapsed() = %d after Restore, want 40", got)
	}

	e, ok := l.Get("q1")
	if !ok || e.Text != "persisted" {
		t.Errorf("Get() = %+v, %v; want restored entry", e, ok)
	}
}

func TestLedgerAnswersProjection(t *testing.T) {
	questions := []model.Question{
		{ID: "q1", OrderInSession: 1},
		{ID: "q2", OrderInSession: 2},
		{ID: "q3", OrderInSession: 3},
	}

	l := NewLedger()
	l.Record("q3", "third", nil, 30)
	l.Record("q1", "first", intPtr(0), 12)

	answers := l.Answers("sess-1", questions)
	if len(answers) != 2 {
		t.Fatalf("Answers() returned %d entries, want 2", len(answers))
	}
	if answers[0].QuestionID != "q1" || answers[1].QuestionID != "q3" {
		t.Errorf("answers out of question order: %v, %v", answers[0].QuestionID, answers[1].QuestionID)
	}
	for _, a := range answers {
		if a.SessionID != "sess-1" {
			t.Errorf("SessionID = %q, want sess-1", a.SessionID)
		}
	}
}
