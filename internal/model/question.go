package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Question is an immutable copy of a bank question, owned by its Session for
// the session's lifetime. Quiz questions carry Choices and CorrectChoice;
// interview questions carry ExpectedPoints instead.
type Question struct {
	ID             string     `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID      string     `gorm:"type:uuid;not null;index" json:"session_id"`
	Prompt         string     `gorm:"type:text;not null" json:"prompt"`
	Category       string     `json:"category"`
	OrderInSession int        `gorm:"not null" json:"order_in_session"`
	TimeLimitSec   *int       `json:"time_limit_sec,omitempty"`
	Choices        StringList `gorm:"type:text" json:"choices,omitempty"`
	CorrectChoice  *int       `json:"-"` // never serialized to clients mid-session
	ExpectedPoints StringList `gorm:"type:text" json:"expected_points,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
