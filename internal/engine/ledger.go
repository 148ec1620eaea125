package engine

import "github.com/vhoang/skillforge/internal/model"

// Entry is the latest committed answer for one question plus its dirty-write
// bookkeeping. version lets an asynchronous flush mark an entry clean only
// if it was not re-written while the flush was in flight.
type Entry struct {
	QuestionID     string
	Text           string
	SelectedChoice *int
	TimeSpentSec   int

	dirty   bool
	version int
}

// Ledger is the in-memory authoritative map of per-question answers for one
// session. It is not goroutine-safe on its own; the orchestrator serializes
// access. The ledger never drops an entry because a remote write failed.
type Ledger struct {
	entries map[string]*Entry
	elapsed map[string]int // accumulated seconds per question, across revisits
}

func NewLedger() *Ledger {
	return &Ledger{
		entries: make(map[string]*Entry),
		elapsed: make(map[string]int),
	}
}

// Record writes or overwrites the answer for a question and marks it dirty.
func (l *Ledger) Record(questionID, text string, choice *int, timeSpentSec int) {
	e, ok := l.entries[questionID]
	if !ok {
		e = &Entry{QuestionID: questionID}
		l.entries[questionID] = e
	}
	e.Text = text
	e.SelectedChoice = choice
	e.TimeSpentSec = timeSpentSec
	e.dirty = true
	e.version++
}

// Get returns a copy of the entry for a question, if one was ever recorded.
func (l *Ledger) Get(questionID string) (Entry, bool) {
	e, ok := l.entries[questionID]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Restore seeds an entry from persisted state. The entry starts clean (it
// already lives remotely) and its time is credited to the elapsed tally.
func (l *Ledger) Restore(questionID, text string, choice *int, timeSpentSec int) {
	l.entries[questionID] = &Entry{
		QuestionID:     questionID,
		Text:           text,
		SelectedChoice: choice,
		TimeSpentSec:   timeSpentSec,
	}
	if timeSpentSec > l.elapsed[questionID] {
		l.elapsed[questionID] = timeSpentSec
	}
}

// AddElapsed accumulates dwell time for a question. Time accumulates across
// revisits; it is never reset by navigation.
func (l *Ledger) AddElapsed(questionID string, sec int) {
	if sec > 0 {
		l.elapsed[questionID] += sec
	}
}

// Elapsed returns the accumulated dwell time for a question from previous
// visits.
func (l *Ledger) Elapsed(questionID string) int {
	return l.elapsed[questionID]
}

// Dirty returns copies of all entries awaiting remote persistence.
func (l *Ledger) Dirty() []Entry {
	var out []Entry
	for _, e := range l.entries {
		if e.dirty {
			out = append(out, *e)
		}
	}
	return out
}

// MarkClean clears the dirty flag for an entry, but only if it has not been
// re-recorded since the given snapshot was taken.
func (l *Ledger) MarkClean(snapshot Entry) {
	e, ok := l.entries[snapshot.QuestionID]
	if ok && e.version == snapshot.version {
		e.dirty = false
	}
}

// Len reports how many questions have a committed answer.
func (l *Ledger) Len() int { return len(l.entries) }

// Answers projects the ledger onto model answers in question order. Questions
// without a committed answer are skipped.
func (l *Ledger) Answers(sessionID string, questions []model.Question) []model.Answer {
	var out []model.Answer
	for _, q := range questions {
		e, ok := l.entries[q.ID]
		if !ok {
			continue
		}
		out = append(out, model.Answer{
			SessionID:      sessionID,
			QuestionID:     q.ID,
			Text:           e.Text,
			SelectedChoice: e.SelectedChoice,
			TimeSpentSec:   e.TimeSpentSec,
		})
	}
	return out
}
