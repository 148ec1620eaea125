package repository

import (
	"github.com/google/uuid"
	"github.com/vhoang/skillforge/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerRepository interface {
	Upsert(answer *model.Answer) error
	FindBySession(sessionID string) ([]model.Answer, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

// Upsert writes the answer, superseding any previous value for the same
// (session, question) pair in place.
func (r *answerRepository) Upsert(answer *model.Answer) error {
	if answer.ID == "" {
		answer.ID = uuid.NewString()
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"text", "selected_choice", "time_spent_sec", "updated_at",
		}),
	}).Create(answer).Error
}

func (r *answerRepository) FindBySession(sessionID string) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.Where("session_id = ?", sessionID).Find(&answers).Error
	return answers, err
}
