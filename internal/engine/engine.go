package engine

import (
	"context"
	"time"

	"github.com/vhoang/skillforge/internal/model"
)

// QuestionSource supplies the ordered question list for a topic. The engine
// treats it as an external collaborator; it owns a private copy of whatever
// the source returns.
type QuestionSource interface {
	Fetch(ctx context.Context, topic, mode string, count int) ([]model.Question, error)
}

// AnswerStore is the remote persistence boundary for in-progress answers.
// Writes are best-effort; the engine never trusts it over its own ledger.
type AnswerStore interface {
	SaveAnswer(ctx context.Context, sessionID string, answer model.Answer) error
}

// Grader turns a finished submission into a GradingResult. Implementations
// must be safe to retry for the same session: grading is keyed by SessionID
// and a repeated call must not double-count.
type Grader interface {
	Grade(ctx context.Context, sub Submission) (*GradingResult, error)
}

// HintProvider returns a short advisory hint for a question given the user's
// current draft. Purely advisory; never consulted for grading.
type HintProvider interface {
	Hint(ctx context.Context, question model.Question, draft string) (string, error)
}

// Submission is the full picture handed to a Grader: every question of the
// session and the latest committed answer for each question that has one.
type Submission struct {
	SessionID   string
	Topic       string
	Mode        string
	StartedAt   time.Time
	SubmittedAt time.Time
	Questions   []model.Question
	Answers     []model.Answer
}
