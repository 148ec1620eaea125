package questionbank

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/vhoang/skillforge/internal/model"
)

func TestFetchUnknownTopicFails(t *testing.T) {
	b := New()
	_, err := b.Fetch(context.Background(), "quantum-knitting", model.ModeQuiz, 0)
	if !errors.Is(err, ErrUnknownTopic) {
		t.Fatalf("Fetch() error = %v, want ErrUnknownTopic", err)
	}
}

func TestFetchUnknownModeFails(t *testing.T) {
	b := New()
	_, err := b.Fetch(context.Background(), "algorithms", "karaoke", 0)
	if !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("Fetch() error = %v, want ErrUnknownMode", err)
	}
}

func TestFetchCapsAtCount(t *testing.T) {
	b := New()

	all, err := b.Fetch(context.Background(), "algorithms", model.ModeQuiz, 0)
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if len(all) < 3 {
		t.Fatalf("bank has %d algorithm questions, want at least 3", len(all))
	}

	capped, err := b.Fetch(context.Background(), "algorithms", model.ModeQuiz, 3)
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if len(capped) != 3 {
		t.Errorf("Fetch(count=3) returned %d questions, want 3", len(capped))
	}
	for i, q := range capped {
		if q.OrderInSession != i+1 {
			t.Errorf("question %d has OrderInSession %d, want %d", i, q.OrderInSession, i+1)
		}
	}
}

func TestFetchQuizQuestionsHaveChoices(t *testing.T) {
	b := New()
	questions, err := b.Fetch(context.Background(), "backend-basics", model.ModeQuiz, 0)
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	for _, q := range questions {
		if len(q.Choices) < 2 {
			t.Errorf("quiz question %q has %d choices", q.Prompt, len(q.Choices))
		}
		if q.CorrectChoice == nil || *q.CorrectChoice < 0 || *q.CorrectChoice >= len(q.Choices) {
			t.Errorf("quiz question %q has invalid correct choice", q.Prompt)
		}
		if len(q.ExpectedPoints) != 0 {
			t.Errorf("quiz question %q carries interview expected points", q.Prompt)
		}
	}
}

func TestFetchInterviewQuestionsHaveTimeLimits(t *testing.T) {
	b := New()
	questions, err := b.Fetch(context.Background(), "system-design", model.ModeInterview, 0)
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	for _, q := range questions {
		if q.TimeLimitSec == nil || *q.TimeLimitSec <= 0 {
			t.Errorf("interview question %q has no time limit", q.Prompt)
		}
		if len(q.ExpectedPoints) == 0 {
			t.Errorf("interview question %q has no expected points", q.Prompt)
		}
		if q.CorrectChoice != nil {
			t.Errorf("interview question %q carries a correct choice", q.Prompt)
		}
	}
}

func TestFetchReturnsFreshIdentities(t *testing.T) {
	b := New()
	first, err := b.Fetch(context.Background(), "algorithms", model.ModeQuiz, 1)
	if err != nil {
		t.Fatal(err)
	}
	second, err := b.Fetch(context.Background(), "algorithms", model.ModeQuiz, 1)
	if err != nil {
		t.Fatal(err)
	}
	if first[0].ID == second[0].ID {
		t.Error("repeated fetches share question IDs; each session needs its own")
	}
}

func TestTopicsSortedPerMode(t *testing.T) {
	b := New()

	quiz, err := b.Topics(model.ModeQuiz)
	if err != nil {
		t.Fatal(err)
	}
	if !sort.StringsAreSorted(quiz) {
		t.Errorf("quiz topics not sorted: %v", quiz)
	}

	interview, err := b.Topics(model.ModeInterview)
	if err != nil {
		t.Fatal(err)
	}
	if len(interview) <= len(quiz) {
		t.Errorf("interview bank has %d topics, quiz %d; interview should cover more", len(interview), len(quiz))
	}

	if _, err := b.Topics("karaoke"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("Topics(unknown mode) error = %v, want ErrUnknownMode", err)
	}
}
