package engine

import "github.com/vhoang/skillforge/internal/model"

// Result kinds. Exactly one of GradingResult.Quiz / GradingResult.Interview
// is set, matching Kind.
const (
	KindQuiz      = "quiz"
	KindInterview = "interview"
)

// GradingResult is the tagged outcome of grading a session. Score is always
// on a 0-100 scale regardless of kind.
type GradingResult struct {
	Kind      string
	Score     float64
	Quiz      *QuizBreakdown
	Interview *InterviewReport
}

// QuizBreakdown is the deterministic raw tally behind a quiz score.
type QuizBreakdown struct {
	CorrectCount int
	TotalCount   int
}

// InterviewReport is the narrative outcome of interview grading.
type InterviewReport struct {
	Checklist model.Checklist
	Feedback  model.Feedback
	Review    model.ReviewList
}
