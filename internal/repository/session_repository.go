package repository

import (
	"github.com/vhoang/skillforge/internal/model"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(session *model.Session) error
	Update(session *model.Session) error
	FindByID(id string) (*model.Session, error)
	FindByIDWithDetails(id string) (*model.Session, error)
	FindAll() ([]model.Session, error)
	FindCompleted(topic string) ([]model.Session, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.Session) error {
	// GORM creates the associated Questions in the same insert.
	return r.db.Create(session).Error
}

func (r *sessionRepository) Update(session *model.Session) error {
	return r.db.Save(session).Error
}

func (r *sessionRepository) FindByID(id string) (*model.Session, error) {
	var session model.Session
	err := r.db.First(&session, "id = ?", id).Error
	return &session, err
}

func (r *sessionRepository) FindByIDWithDetails(id string) (*model.Session, error) {
	var session model.Session
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.order_in_session ASC")
		}).
		Preload("Answers").
		First(&session, "id = ?", id).Error
	return &session, err
}

func (r *sessionRepository) FindAll() ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.Order("started_at DESC").Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) FindCompleted(topic string) ([]model.Session, error) {
	var sessions []model.Session
	query := r.db.Where("status = ?", model.StatusCompleted)
	if topic != "" {
		query = query.Where("topic = ?", topic)
	}
	err := query.Order("completed_at DESC").Find(&sessions).Error
	return sessions, err
}
