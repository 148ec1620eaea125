package questionbank

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/vhoang/skillforge/internal/model"
)

var (
	ErrUnknownTopic = errors.New("unknown topic")
	ErrUnknownMode  = errors.New("unknown mode")
)

// bankQuestion is the authoring shape of a built-in question. Quiz entries
// carry Choices/Correct, interview entries carry ExpectedPoints and a
// per-question time limit.
type bankQuestion struct {
	Prompt         string
	Category       string
	Choices        []string
	Correct        int
	ExpectedPoints []string
	TimeLimitSec   int
}

// Bank is the built-in question source: static per-topic banks for both
// practice modes. It satisfies engine.QuestionSource.
type Bank struct{}

func New() *Bank { return &Bank{} }

// Fetch returns a fresh copy of the topic's questions, ordered, capped at
// count when count > 0. Unknown topics fail; the engine must not fall back
// to a default topic silently.
func (b *Bank) Fetch(ctx context.Context, topic, mode string, count int) ([]model.Question, error) {
	banks, err := banksFor(mode)
	if err != nil {
		return nil, err
	}
	entries, ok := banks[topic]
	if !ok {
		return nil, fmt.Errorf("%w: %q for mode %q", ErrUnknownTopic, topic, mode)
	}
	if count > 0 && count < len(entries) {
		entries = entries[:count]
	}

	questions := make([]model.Question, 0, len(entries))
	for i, e := range entries {
		q := model.Question{
			ID:             uuid.NewString(),
			Prompt:         e.Prompt,
			Category:       e.Category,
			OrderInSession: i + 1,
		}
		if e.TimeLimitSec > 0 {
			limit := e.TimeLimitSec
			q.TimeLimitSec = &limit
		}
		switch mode {
		case model.ModeQuiz:
			q.Choices = append(model.StringList{}, e.Choices...)
			correct := e.Correct
			q.CorrectChoice = &correct
		case model.ModeInterview:
			q.ExpectedPoints = append(model.StringList{}, e.ExpectedPoints...)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// Topics lists the topics available for a mode, sorted.
func (b *Bank) Topics(mode string) ([]string, error) {
	banks, err := banksFor(mode)
	if err != nil {
		return nil, err
	}
	topics := make([]string, 0, len(banks))
	for t := range banks {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	return topics, nil
}

func banksFor(mode string) (map[string][]bankQuestion, error) {
	switch mode {
	case model.ModeQuiz:
		return quizBanks, nil
	case model.ModeInterview:
		return interviewBanks, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}
