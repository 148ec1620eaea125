package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vhoang/skillforge/internal/model"
)

type fakeSource struct {
	questions []model.Question
	err       error
}

func (f *fakeSource) Fetch(ctx context.Context, topic, mode string, count int) ([]model.Question, error) {
	return f.questions, f.err
}

type fakeStore struct {
	mu      sync.Mutex
	saved   map[string]model.Answer
	failing bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: make(map[string]model.Answer)}
}

func (f *fakeStore) SaveAnswer(ctx context.Context, sessionID string, answer model.Answer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("store unavailable")
	}
	f.saved[answer.QuestionID] = answer
	return nil
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

type fakeGrader struct {
	mu       sync.Mutex
	calls    int
	failures int
	last     Submission
	result   *GradingResult
}

func (f *fakeGrader) Grade(ctx context.Context, sub Submission) (*GradingResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = sub
	if f.calls <= f.failures {
		return nil, errors.New("grader unavailable")
	}
	return f.result, nil
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func quizQuestions(n int) []model.Question {
	questions := make([]model.Question, 0, n)
	for i := 0; i < n; i++ {
		correct := 0
		questions = append(questions, model.Question{
			ID:             string(rune('a' + i)),
			Prompt:         "prompt",
			OrderInSession: i + 1,
			Choices:        model.StringList{"yes", "no"},
			CorrectChoice:  &correct,
		})
	}
	return questions
}

func startTestSession(t *testing.T, cfg StartConfig) *Orchestrator {
	t.Helper()
	if cfg.Source == nil {
		cfg.Source = &fakeSource{questions: quizQuestions(3)}
	}
	if cfg.Grader == nil {
		cfg.Grader = &fakeGrader{result: &GradingResult{Kind: KindQuiz, Score: 100}}
	}
	orch, err := Start(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return orch
}

func TestStartFailsOnEmptySource(t *testing.T) {
	_, err := Start(context.Background(), StartConfig{
		Topic:  "algorithms",
		Mode:   model.ModeQuiz,
		Source: &fakeSource{},
		Grader: &fakeGrader{},
	})

	var createErr *CreateError
	if !errors.As(err, &createErr) {
		t.Fatalf("Start() error = %v, want *CreateError", err)
	}
	if !errors.Is(err, ErrNoQuestions) {
		t.Errorf("error does not wrap ErrNoQuestions: %v", err)
	}
	if createErr.Topic != "algorithms" {
		t.Errorf("CreateError.Topic = %q, want algorithms", createErr.Topic)
	}
}

func TestStartFailsOnSourceError(t *testing.T) {
	sourceErr := errors.New("bank offline")
	_, err := Start(context.Background(), StartConfig{
		Source: &fakeSource{err: sourceErr},
		Grader: &fakeGrader{},
	})

	if !errors.Is(err, sourceErr) {
		t.Fatalf("Start() error = %v, want wrapped source error", err)
	}
}

func TestStartEntersFirstQuestion(t *testing.T) {
	orch := startTestSession(t, StartConfig{Topic: "algorithms", Mode: model.ModeQuiz})

	if orch.Status() != model.StatusInProgress {
		t.Errorf("Status() = %q, want in_progress", orch.Status())
	}
	q, err := orch.CurrentQuestion()
	if err != nil {
		t.Fatalf("CurrentQuestion() failed: %v", err)
	}
	if q.OrderInSession != 1 {
		t.Errorf("pointer on question %d, want 1", q.OrderInSession)
	}
	if q.SessionID != orch.SessionID() {
		t.Errorf("question SessionID = %q, want %q", q.SessionID, orch.SessionID())
	}
}

func TestAdvanceAndRetreatKeepAnswers(t *testing.T) {
	orch := startTestSession(t, StartConfig{})

	if err := orch.RecordAnswer("my first answer", nil); err != nil {
		t.Fatalf("RecordAnswer() failed: %v", err)
	}
	if err := orch.Advance(); err != nil {
		t.Fatalf("Advance() failed: %v", err)
	}
	if err := orch.Retreat(); err != nil {
		t.Fatalf("Retreat() failed: %v", err)
	}

	state := orch.State()
	if state.Index != 0 {
		t.Fatalf("Index = %d after advance+retreat, want 0", state.Index)
	}
	if state.Answer == nil || state.Answer.Text != "my first answer" {
		t.Errorf("answer lost across navigation: %+v", state.Answer)
	}
}

func TestNavigationNoOpAtEnds(t *testing.T) {
	orch := startTestSession(t, StartConfig{Source: &fakeSource{questions: quizQuestions(2)}})

	if err := orch.Retreat(); err != nil {
		t.Fatalf("Retreat() on first question failed: %v", err)
	}
	if got := orch.State().Index; got != 0 {
		t.Errorf("Index = %d after Retreat on first question, want 0", got)
	}

	if err := orch.Advance(); err != nil {
		t.Fatalf("Advance() failed: %v", err)
	}
	if err := orch.Advance(); err != nil {
		t.Fatalf("Advance() on last question failed: %v", err)
	}
	if got := orch.State().Index; got != 1 {
		t.Errorf("Index = %d after Advance on last question, want 1", got)
	}
}

func TestElapsedAccumulatesAcrossRevisits(t *testing.T) {
	clock := newFakeClock()
	orch := startTestSession(t, StartConfig{Clock: clock.Now})

	clock.Advance(10 * time.Second)
	if err := orch.RecordAnswer("draft", nil); err != nil {
		t.Fatalf("RecordAnswer() failed: %v", err)
	}
	e, _ := orchEntry(orch, 0)
	if e.TimeSpentSec != 10 {
		t.Fatalf("TimeSpentSec = %d after 10s, want 10", e.TimeSpentSec)
	}

	if err := orch.Advance(); err != nil {
		t.Fatalf("Advance() failed: %v", err)
	}
	if err := orch.Retreat(); err != nil {
		t.Fatalf("Retreat() failed: %v", err)
	}

	clock.Advance(5 * time.Second)
	if err := orch.RecordAnswer("final", nil); err != nil {
		t.Fatalf("RecordAnswer() failed: %v", err)
	}
	e, _ = orchEntry(orch, 0)
	if e.TimeSpentSec != 15 {
		t.Errorf("TimeSpentSec = %d after revisit, want 15", e.TimeSpentSec)
	}
}

func orchEntry(o *Orchestrator, idx int) (Entry, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.ledger.Get(o.questions[idx].ID)
}

func TestSubmitGradesAndCompletes(t *testing.T) {
	grader := &fakeGrader{result: &GradingResult{Kind: KindQuiz, Score: 50, Quiz: &QuizBreakdown{CorrectCount: 1, TotalCount: 2}}}
	orch := startTestSession(t, StartConfig{
		Topic:  "algorithms",
		Mode:   model.ModeQuiz,
		Source: &fakeSource{questions: quizQuestions(2)},
		Grader: grader,
	})

	choice := 0
	if err := orch.RecordAnswer("", &choice); err != nil {
		t.Fatalf("RecordAnswer() failed: %v", err)
	}

	result, err := orch.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if result.Score != 50 {
		t.Errorf("Score = %v, want 50", result.Score)
	}
	if orch.Status() != model.StatusCompleted {
		t.Errorf("Status() = %q after Submit, want completed", orch.Status())
	}
	if grader.last.SessionID != orch.SessionID() {
		t.Errorf("submission SessionID = %q, want %q", grader.last.SessionID, orch.SessionID())
	}
	if len(grader.last.Answers) != 1 {
		t.Errorf("submission carried %d answers, want 1", len(grader.last.Answers))
	}
	if len(grader.last.Questions) != 2 {
		t.Errorf("submission carried %d questions, want 2", len(grader.last.Questions))
	}
}

func TestSubmitIsIdempotent(t *testing.T) {
	grader := &fakeGrader{result: &GradingResult{Kind: KindQuiz, Score: 100}}
	orch := startTestSession(t, StartConfig{Grader: grader})
	if err := orch.RecordAnswer("a", nil); err != nil {
		t.Fatal(err)
	}

	first, err := orch.Submit(context.Background())
	if err != nil {
		t.Fatalf("first Submit() failed: %v", err)
	}
	second, err := orch.Submit(context.Background())
	if err != nil {
		t.Fatalf("second Submit() failed: %v", err)
	}

	if first != second {
		t.Error("repeated Submit returned a different result value")
	}
	if grader.calls != 1 {
		t.Errorf("grader called %d times, want 1", grader.calls)
	}
}

func TestSubmitRetryAfterGradingFailure(t *testing.T) {
	grader := &fakeGrader{
		failures: 1,
		result:   &GradingResult{Kind: KindInterview, Score: 70},
	}
	orch := startTestSession(t, StartConfig{Grader: grader})
	if err := orch.RecordAnswer("a", nil); err != nil {
		t.Fatal(err)
	}

	_, err := orch.Submit(context.Background())
	var gradingErr *GradingError
	if !errors.As(err, &gradingErr) {
		t.Fatalf("Submit() error = %v, want *GradingError", err)
	}
	if orch.Status() != model.StatusInProgress {
		t.Fatalf("Status() = %q after grading failure, want in_progress", orch.Status())
	}

	result, err := orch.Submit(context.Background())
	if err != nil {
		t.Fatalf("retried Submit() failed: %v", err)
	}
	if result.Score != 70 {
		t.Errorf("Score = %v, want 70", result.Score)
	}
	if grader.calls != 2 {
		t.Errorf("grader called %d times, want 2", grader.calls)
	}
}

func TestSubmitFlushesPendingAnswers(t *testing.T) {
	store := newFakeStore()
	orch := startTestSession(t, StartConfig{
		Store:  store,
		Grader: &fakeGrader{result: &GradingResult{Kind: KindQuiz, Score: 0}},
	})
	if err := orch.RecordAnswer("pending", nil); err != nil {
		t.Fatal(err)
	}

	if _, err := orch.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if store.count() != 1 {
		t.Errorf("store holds %d answers after Submit, want 1", store.count())
	}
}

func TestSubmitSucceedsWhenStoreIsDown(t *testing.T) {
	store := newFakeStore()
	store.failing = true
	grader := &fakeGrader{result: &GradingResult{Kind: KindQuiz, Score: 100}}
	orch := startTestSession(t, StartConfig{Store: store, Grader: grader})
	if err := orch.RecordAnswer("kept locally", nil); err != nil {
		t.Fatal(err)
	}

	result, err := orch.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if result == nil {
		t.Fatal("Submit() returned nil result")
	}
	// The grader still saw the answer even though persistence failed.
	if len(grader.last.Answers) != 1 || grader.last.Answers[0].Text != "kept locally" {
		t.Errorf("submission answers = %+v, want the ledger value", grader.last.Answers)
	}
}

func TestAbandonStopsTheSession(t *testing.T) {
	orch := startTestSession(t, StartConfig{})

	if err := orch.Abandon(); err != nil {
		t.Fatalf("Abandon() failed: %v", err)
	}
	if orch.Status() != model.StatusAbandoned {
		t.Errorf("Status() = %q, want abandoned", orch.Status())
	}
	if err := orch.RecordAnswer("too late", nil); !errors.Is(err, ErrNotInProgress) {
		t.Errorf("RecordAnswer() after Abandon = %v, want ErrNotInProgress", err)
	}
	if _, err := orch.Submit(context.Background()); !errors.Is(err, ErrNotInProgress) {
		t.Errorf("Submit() after Abandon = %v, want ErrNotInProgress", err)
	}
}

func TestTimerExpiryIsAdvisory(t *testing.T) {
	limit := 1
	questions := quizQuestions(1)
	questions[0].TimeLimitSec = &limit

	expired := make(chan string, 1)
	orch := startTestSession(t, StartConfig{
		Source:   &fakeSource{questions: questions},
		OnExpire: func(questionID string) { expired <- questionID },
	})

	select {
	case id := <-expired:
		if id != questions[0].ID {
			t.Errorf("expiry for question %q, want %q", id, questions[0].ID)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("countdown never fired")
	}

	state := orch.State()
	if !state.TimerExpired {
		t.Error("State().TimerExpired = false after expiry")
	}
	// Expiry never locks the question.
	if err := orch.RecordAnswer("late but accepted", nil); err != nil {
		t.Errorf("RecordAnswer() after expiry = %v, want nil", err)
	}
}

func TestResumeLandsOnFirstUnanswered(t *testing.T) {
	questions := quizQuestions(3)
	choice := 0
	orch, err := Resume(ResumeConfig{
		SessionID: "sess-1",
		Topic:     "algorithms",
		Mode:      model.ModeQuiz,
		StartedAt: time.Now().Add(-time.Minute),
		Questions: questions,
		Answers: []model.Answer{
			{SessionID: "sess-1", QuestionID: questions[0].ID, SelectedChoice: &choice, TimeSpentSec: 20},
		},
		Grader: &fakeGrader{result: &GradingResult{Kind: KindQuiz, Score: 100}},
	})
	if err != nil {
		t.Fatalf("Resume() failed: %v", err)
	}

	if orch.SessionID() != "sess-1" {
		t.Errorf("SessionID() = %q, want sess-1", orch.SessionID())
	}
	state := orch.State()
	if state.Index != 1 {
		t.Errorf("Index = %d after resume, want 1 (first unanswered)", state.Index)
	}

	if err := orch.Retreat(); err != nil {
		t.Fatal(err)
	}
	state = orch.State()
	if state.Answer == nil || state.Answer.TimeSpentSec != 20 {
		t.Errorf("restored answer = %+v, want the persisted one", state.Answer)
	}
}
