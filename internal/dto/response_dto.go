package dto

import (
	"time"

	"github.com/vhoang/skillforge/internal/model"
)

// QuestionDTO is a question as shown to the user mid-session. The correct
// choice index is intentionally absent.
type QuestionDTO struct {
	ID             string   `json:"id"`
	Prompt         string   `json:"prompt"`
	Category       string   `json:"category"`
	OrderInSession int      `json:"order_in_session"`
	TimeLimitSec   *int     `json:"time_limit_sec,omitempty"`
	Choices        []string `json:"choices,omitempty"`
}

// AnswerDTO is the committed answer for one question.
type AnswerDTO struct {
	QuestionID     string `json:"question_id"`
	Text           string `json:"text,omitempty"`
	SelectedChoice *int   `json:"selected_choice,omitempty"`
	TimeSpentSec   int    `json:"time_spent_sec"`
}

// GradingResultDTO is the tagged grading outcome. CorrectCount/TotalCount
// are present for quizzes; Checklist/AIFeedback/DetailedReview for
// interviews.
type GradingResultDTO struct {
	Kind           string           `json:"kind"`
	Score          float64          `json:"score"`
	CorrectCount   *int             `json:"correct_count,omitempty"`
	TotalCount     *int             `json:"total_count,omitempty"`
	Checklist      model.Checklist  `json:"checklist,omitempty"`
	AIFeedback     *model.Feedback  `json:"ai_feedback,omitempty"`
	DetailedReview model.ReviewList `json:"detailed_review,omitempty"`
}

// SessionStateDTO is the live view of an in-progress session: where the
// pointer is, what the current question and answer look like, and how the
// advisory timer is doing.
type SessionStateDTO struct {
	SessionID       string            `json:"session_id"`
	Status          string            `json:"status"`
	CurrentIndex    int               `json:"current_index"`
	TotalQuestions  int               `json:"total_questions"`
	CurrentQuestion *QuestionDTO      `json:"current_question,omitempty"`
	CurrentAnswer   *AnswerDTO        `json:"current_answer,omitempty"`
	ElapsedSec      int               `json:"elapsed_sec"`
	RemainingSec    *int              `json:"remaining_sec,omitempty"`
	TimerExpired    bool              `json:"timer_expired"`
	Result          *GradingResultDTO `json:"result,omitempty"`
}

// SessionDetailDTO is the full session as stored, including the grading
// result once completed.
type SessionDetailDTO struct {
	ID          string            `json:"id"`
	Topic       string            `json:"topic"`
	Mode        string            `json:"mode"`
	Status      string            `json:"status"`
	Questions   []QuestionDTO     `json:"questions,omitempty"`
	Answers     []AnswerDTO       `json:"answers,omitempty"`
	Result      *GradingResultDTO `json:"result,omitempty"`
	CanRetake   bool              `json:"can_retake"`
	StartedAt   time.Time         `json:"started_at"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
}

// SessionSummaryDTO is the listing shape.
type SessionSummaryDTO struct {
	ID          string     `json:"id"`
	Topic       string     `json:"topic"`
	Mode        string     `json:"mode"`
	Status      string     `json:"status"`
	Score       *float64   `json:"score,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// HistoryEntryDTO summarizes one completed session, most recent first.
// Attempt is the 1-based attempt number for that topic, derived by counting.
type HistoryEntryDTO struct {
	SessionID   string    `json:"session_id"`
	Topic       string    `json:"topic"`
	Mode        string    `json:"mode"`
	Score       float64   `json:"score"`
	Attempt     int       `json:"attempt"`
	CompletedAt time.Time `json:"completed_at"`
}

// TopicsDTO lists the topics available for a practice mode.
type TopicsDTO struct {
	Mode   string   `json:"mode"`
	Topics []string `json:"topics"`
}

// HintDTO wraps an advisory hint.
type HintDTO struct {
	Hint string `json:"hint"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
