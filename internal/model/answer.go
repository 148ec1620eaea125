package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Answer is the latest committed value for one question of a session.
// At most one row exists per (SessionID, QuestionID); a re-submission for the
// same question supersedes the previous value in place.
type Answer struct {
	ID             string `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID      string `gorm:"type:uuid;not null;index:idx_session_question,unique" json:"session_id"`
	QuestionID     string `gorm:"type:uuid;not null;index:idx_session_question,unique" json:"question_id"`
	Text           string `gorm:"type:text" json:"text"`
	SelectedChoice *int   `json:"selected_choice,omitempty"`
	TimeSpentSec   int    `json:"time_spent_sec"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
