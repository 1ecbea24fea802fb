package repository

import (
	"eklavya_backend/internal/model"

	"gorm.io/gorm"
)

type StudySessionRepository struct {
	DB *gorm.DB
}

func NewStudySessionRepository(db *gorm.DB) *StudySessionRepository {
	return &StudySessionRepository{DB: db}
}

func (r *StudySessionRepository) Create(s *model.StudySession) error {
	return r.DB.Create(s).Error
}

func (r *StudySessionRepository) FindByID(id string) (*model.StudySession, error) {
	var s model.StudySession
	err := r.DB.Where("id = ?", id).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StudySessionRepository) ListByUser(userID uint, limit int) ([]model.StudySession, error) {
	var ss []model.StudySession
	query := r.DB.Where("user_id = ?", userID).Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&ss).Error
	return ss, err
}

func (r *StudySessionRepository) Update(s *model.StudySession) error {
	return r.DB.Save(s).Error
}
