package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session modes.
const (
	ModeQuiz      = "quiz"
	ModeInterview = "interview"
)

// Session statuses.
const (
	StatusCreated    = "created"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusAbandoned  = "abandoned"
)

// Session is one timed practice attempt (quiz or mock interview) from
// creation to completion or abandonment. Result columns stay NULL until the
// session is graded; a completed session always carries a score.
type Session struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	Topic  string `gorm:"not null;index" json:"topic"`
	Mode   string `gorm:"not null" json:"mode"` // "quiz", "interview"
	Status string `gorm:"not null;default:'created';index" json:"status"`

	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE;"`
	Answers   []Answer   `json:"answers,omitempty" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE;"`

	Score        *float64   `json:"score,omitempty"`
	CorrectCount *int       `json:"correct_count,omitempty"`
	TotalCount   *int       `json:"total_count,omitempty"`
	Checklist    Checklist  `gorm:"type:text" json:"checklist,omitempty"`
	AIFeedback   *Feedback  `gorm:"type:text" json:"ai_feedback,omitempty"`
	Review       ReviewList `gorm:"type:text" json:"detailed_review,omitempty"`

	CanRetake   bool       `gorm:"default:true" json:"can_retake"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
