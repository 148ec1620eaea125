package engine

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vhoang/skillforge/internal/model"
)

// StartConfig carries everything an orchestrator needs. Source and Grader
// are required; Store and Hints may be nil when the caller does not want
// remote persistence or hints (tests, mostly).
type StartConfig struct {
	Topic string
	Mode  string
	Count int

	Source QuestionSource
	Store  AnswerStore
	Grader Grader
	Hints  HintProvider

	// OnExpire is called (from a timer goroutine) when the countdown for a
	// question runs out. Advisory only; the engine never auto-advances or
	// auto-submits on expiry.
	OnExpire func(questionID string)

	// Clock overrides time.Now for tests.
	Clock func() time.Time
}

// Orchestrator owns one session's state machine: the question pointer, the
// answer ledger, the per-question countdown and the grading outcome. One
// orchestrator per session; all methods are safe for concurrent use but the
// session is meant to be driven by a single caller.
type Orchestrator struct {
	mu sync.Mutex

	sessionID string
	topic     string
	mode      string
	questions []model.Question
	startedAt time.Time

	status     string
	idx        int
	ledger     *Ledger
	result     *GradingResult
	submitting bool

	enteredAt time.Time
	countdown *Countdown
	expired   map[string]bool

	store    AnswerStore
	grader   Grader
	hints    HintProvider
	onExpire func(string)
	now      func() time.Time
}

// Start fetches questions for the topic and builds an in-progress
// orchestrator with the pointer on question 0 and its timer armed. On any
// failure it returns a *CreateError and leaves no state behind.
func Start(ctx context.Context, cfg StartConfig) (*Orchestrator, error) {
	questions, err := cfg.Source.Fetch(ctx, cfg.Topic, cfg.Mode, cfg.Count)
	if err != nil {
		return nil, &CreateError{Topic: cfg.Topic, Err: err}
	}
	if len(questions) == 0 {
		return nil, &CreateError{Topic: cfg.Topic, Err: ErrNoQuestions}
	}

	owned := make([]model.Question, len(questions))
	copy(owned, questions)
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].OrderInSession < owned[j].OrderInSession
	})

	now := cfg.Clock
	if now == nil {
		now = time.Now
	}

	o := &Orchestrator{
		sessionID: uuid.NewString(),
		topic:     cfg.Topic,
		mode:      cfg.Mode,
		questions: owned,
		startedAt: now(),
		status:    model.StatusInProgress,
		ledger:    NewLedger(),
		expired:   make(map[string]bool),
		store:     cfg.Store,
		grader:    cfg.Grader,
		hints:     cfg.Hints,
		onExpire:  cfg.OnExpire,
		now:       now,
	}
	for i := range o.questions {
		o.questions[i].SessionID = o.sessionID
	}

	o.mu.Lock()
	o.enterQuestion()
	o.mu.Unlock()
	return o, nil
}

// ResumeConfig rebuilds an orchestrator for a session that already exists in
// the store, e.g. after a process restart. Questions and answers come from
// persisted state; the pointer lands on the first unanswered question.
type ResumeConfig struct {
	SessionID string
	Topic     string
	Mode      string
	StartedAt time.Time
	Questions []model.Question
	Answers   []model.Answer

	Store    AnswerStore
	Grader   Grader
	Hints    HintProvider
	OnExpire func(questionID string)
	Clock    func() time.Time
}

// Resume rehydrates an in-progress session without losing its history.
func Resume(cfg ResumeConfig) (*Orchestrator, error) {
	if len(cfg.Questions) == 0 {
		return nil, &CreateError{Topic: cfg.Topic, Err: ErrNoQuestions}
	}

	owned := make([]model.Question, len(cfg.Questions))
	copy(owned, cfg.Questions)
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].OrderInSession < owned[j].OrderInSession
	})

	now := cfg.Clock
	if now == nil {
		now = time.Now
	}

	o := &Orchestrator{
		sessionID: cfg.SessionID,
		topic:     cfg.Topic,
		mode:      cfg.Mode,
		questions: owned,
		startedAt: cfg.StartedAt,
		status:    model.StatusInProgress,
		ledger:    NewLedger(),
		expired:   make(map[string]bool),
		store:     cfg.Store,
		grader:    cfg.Grader,
		hints:     cfg.Hints,
		onExpire:  cfg.OnExpire,
		now:       now,
	}
	for _, a := range cfg.Answers {
		o.ledger.Restore(a.QuestionID, a.Text, a.SelectedChoice, a.TimeSpentSec)
	}
	for i, q := range owned {
		if _, ok := o.ledger.Get(q.ID); !ok {
			o.idx = i
			break
		}
	}

	o.mu.Lock()
	o.enterQuestion()
	o.mu.Unlock()
	return o, nil
}

func (o *Orchestrator) SessionID() string    { return o.sessionID }
func (o *Orchestrator) Topic() string        { return o.topic }
func (o *Orchestrator) Mode() string         { return o.mode }
func (o *Orchestrator) StartedAt() time.Time { return o.startedAt }

// Questions returns a copy of the session's question list.
func (o *Orchestrator) Questions() []model.Question {
	out := make([]model.Question, len(o.questions))
	copy(out, o.questions)
	return out
}

// Status returns the current lifecycle status.
func (o *Orchestrator) Status() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// CurrentQuestion returns the question at the pointer. Only valid while the
// session is in progress.
func (o *Orchestrator) CurrentQuestion() (model.Question, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.status != model.StatusInProgress {
		return model.Question{}, ErrNotInProgress
	}
	return o.questions[o.idx], nil
}

// RecordAnswer commits a value for the current question into the ledger,
// capturing the cumulative time spent on the question so far. It always
// succeeds locally; remote persistence happens at the next flush point.
func (o *Orchestrator) RecordAnswer(text string, selectedChoice *int) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.status != model.StatusInProgress {
		return ErrNotInProgress
	}
	q := o.questions[o.idx]
	elapsed := o.ledger.Elapsed(q.ID) + o.visitSeconds()
	o.ledger.Record(q.ID, text, selectedChoice, elapsed)
	return nil
}

// Advance moves the pointer to the next question, flushing dirty answers in
// the background and re-arming the timer. No-op on the last question. Any
// previously recorded answer for the new question stays visible through the
// ledger.
func (o *Orchestrator) Advance() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.status != model.StatusInProgress {
		return ErrNotInProgress
	}
	if o.idx >= len(o.questions)-1 {
		return nil
	}
	o.leaveQuestion()
	o.flushAsync()
	o.idx++
	o.enterQuestion()
	return nil
}

// Retreat is the symmetric backward step. Elapsed time keeps accumulating
// for the revisited question; it is not reset.
func (o *Orchestrator) Retreat() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.status != model.StatusInProgress {
		return ErrNotInProgress
	}
	if o.idx == 0 {
		return nil
	}
	o.leaveQuestion()
	o.flushAsync()
	o.idx--
	o.enterQuestion()
	return nil
}

// Submit grades the session. Valid from in_progress with at least one
// committed answer; idempotent once completed (the stored result is returned
// and the grader is not called again). On grading failure the session stays
// in progress and Submit may be retried.
func (o *Orchestrator) Submit(ctx context.Context) (*GradingResult, error) {
	o.mu.Lock()
	if o.status == model.StatusCompleted {
		r := o.result
		o.mu.Unlock()
		return r, nil
	}
	if o.status != model.StatusInProgress {
		o.mu.Unlock()
		return nil, ErrNotInProgress
	}
	if o.submitting {
		o.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	o.submitting = true

	// Bank the current dwell time so a retry after failure keeps counting
	// from here rather than double-counting this visit.
	q := o.questions[o.idx]
	o.ledger.AddElapsed(q.ID, o.visitSeconds())
	o.enteredAt = o.now()

	dirty := o.ledger.Dirty()
	sub := Submission{
		SessionID:   o.sessionID,
		Topic:       o.topic,
		Mode:        o.mode,
		StartedAt:   o.startedAt,
		SubmittedAt: o.now(),
		Questions:   o.Questions(),
		Answers:     o.ledger.Answers(o.sessionID, o.questions),
	}
	o.mu.Unlock()

	// Final pending answers are persisted before grading. Failures here are
	// PersistenceErrors: recovered locally, never fatal to the submission.
	o.flush(ctx, dirty)

	result, err := o.grader.Grade(ctx, sub)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.submitting = false
	if err != nil {
		return nil, &GradingError{SessionID: o.sessionID, Err: err}
	}
	o.result = result
	o.status = model.StatusCompleted
	if o.countdown != nil {
		o.countdown.Cancel()
	}
	return result, nil
}

// Hint asks the hint provider about the current question and draft. It never
// touches session state; failures surface as *HintError.
func (o *Orchestrator) Hint(ctx context.Context, draft string) (string, error) {
	o.mu.Lock()
	if o.status != model.StatusInProgress {
		o.mu.Unlock()
		return "", ErrNotInProgress
	}
	q := o.questions[o.idx]
	hints := o.hints
	o.mu.Unlock()

	if hints == nil {
		return "", &HintError{Err: ErrNotInProgress}
	}
	hint, err := hints.Hint(ctx, q, draft)
	if err != nil {
		return "", &HintError{Err: err}
	}
	return hint, nil
}

// Abandon marks an in-progress session abandoned and cancels its timer.
// In-flight remote persistence is left to finish or fail on its own; the
// ledger is the source of truth until the orchestrator is discarded.
func (o *Orchestrator) Abandon() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.status != model.StatusInProgress {
		return ErrNotInProgress
	}
	o.status = model.StatusAbandoned
	if o.countdown != nil {
		o.countdown.Cancel()
	}
	return nil
}

// Snapshot is the read-only view handed to the UI boundary.
type Snapshot struct {
	SessionID    string
	Status       string
	Index        int
	Total        int
	Question     model.Question
	Answer       *Entry
	ElapsedSec   int
	RemainingSec *int
	TimerExpired bool
	Result       *GradingResult
}

// State returns a consistent snapshot of the session.
func (o *Orchestrator) State() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	s := Snapshot{
		SessionID: o.sessionID,
		Status:    o.status,
		Index:     o.idx,
		Total:     len(o.questions),
		Result:    o.result,
	}
	if o.status != model.StatusInProgress {
		return s
	}
	q := o.questions[o.idx]
	s.Question = q
	s.ElapsedSec = o.ledger.Elapsed(q.ID) + o.visitSeconds()
	s.TimerExpired = o.expired[q.ID]
	if e, ok := o.ledger.Get(q.ID); ok {
		s.Answer = &e
	}
	if q.TimeLimitSec != nil && o.countdown != nil {
		rem := int(o.countdown.Remaining().Seconds())
		s.RemainingSec = &rem
	}
	return s
}

// visitSeconds is the dwell time of the current visit. Caller holds o.mu.
func (o *Orchestrator) visitSeconds() int {
	return int(o.now().Sub(o.enteredAt).Seconds())
}

// leaveQuestion banks the visit's dwell time and stops the countdown.
// Caller holds o.mu.
func (o *Orchestrator) leaveQuestion() {
	q := o.questions[o.idx]
	o.ledger.AddElapsed(q.ID, o.visitSeconds())
	if o.countdown != nil {
		o.countdown.Cancel()
	}
}

// enterQuestion stamps the visit start and arms the countdown for the new
// current question. Arming implicitly cancels any previous countdown, so at
// most one runs per session. Caller holds o.mu.
func (o *Orchestrator) enterQuestion() {
	q := o.questions[o.idx]
	o.enteredAt = o.now()
	if o.countdown != nil {
		o.countdown.Cancel()
	}
	if q.TimeLimitSec == nil || *q.TimeLimitSec <= 0 {
		o.countdown = nil
		return
	}
	qid := q.ID
	o.countdown = NewCountdown(time.Duration(*q.TimeLimitSec)*time.Second, func() {
		o.mu.Lock()
		o.expired[qid] = true
		o.mu.Unlock()
		log.Debug().Str("sessionID", o.sessionID).Str("questionID", qid).Msg("Question time limit expired")
		if o.onExpire != nil {
			o.onExpire(qid)
		}
	})
}

// flushAsync persists dirty ledger entries in the background. Fire and
// forget: a failed write keeps the entry dirty and the next flush point
// re-sends it. Caller holds o.mu.
func (o *Orchestrator) flushAsync() {
	dirty := o.ledger.Dirty()
	if len(dirty) == 0 {
		return
	}
	// context.Background so an ending HTTP request cannot cancel a write
	// that is already on its way out.
	go o.flush(context.Background(), dirty)
}

// flush writes the given entries through the answer store and marks each
// clean on success. Failures are logged and swallowed; the ledger keeps the
// value either way.
func (o *Orchestrator) flush(ctx context.Context, entries []Entry) {
	if o.store == nil {
		return
	}
	for _, e := range entries {
		ans := model.Answer{
			SessionID:      o.sessionID,
			QuestionID:     e.QuestionID,
			Text:           e.Text,
			SelectedChoice: e.SelectedChoice,
			TimeSpentSec:   e.TimeSpentSec,
		}
		if err := o.store.SaveAnswer(ctx, o.sessionID, ans); err != nil {
			log.Warn().Err(err).Str("sessionID", o.sessionID).Str("questionID", e.QuestionID).
				Msg("Answer persistence failed; keeping ledger entry dirty for retry")
			continue
		}
		o.mu.Lock()
		o.ledger.MarkClean(e)
		o.mu.Unlock()
	}
}
