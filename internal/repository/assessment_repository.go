package repository

import (
	"eklavya_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

// Question bank

func (r *AssessmentRepository) ListQuestionsBySubject(subject string, limit int) ([]model.AssessmentQuestion, error) {
	var qs []model.AssessmentQuestion
	query := r.DB.Model(&model.AssessmentQuestion{})
	if subject != model.SubjectGeneral {
		query = query.Where("subject = ?", subject)
	}
	err := query.Order("`order` asc").Limit(limit).Find(&qs).Error
	return qs, err
}

func (r *AssessmentRepository) FindQuestionsByIDs(ids []uint) ([]model.AssessmentQuestion, error) {
	var qs []model.AssessmentQuestion
	err := r.DB.Where("id IN ?", ids).Order("`order` asc").Find(&qs).Error
	return qs, err
}

// Attempts

func (r *AssessmentRepository) CreateAttempt(a *model.AssessmentAttempt) error {
	return r.DB.Create(a).Error
}

func (r *AssessmentRepository) FindAttemptByID(id string) (*model.AssessmentAttempt, error) {
	var a model.AssessmentAttempt
	err := r.DB.Where("id = ?", id).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssessmentRepository) UpdateAttempt(a *model.AssessmentAttempt) error {
	return r.DB.Save(a).Error
}

// Assessments (immutable rows, insert only)

func (r *AssessmentRepository) CreateAssessment(a *model.Assessment) error {
	return r.DB.Create(a).Error
}

func (r *AssessmentRepository) ListByUser(userID uint, limit int) ([]model.Assessment, error) {
	var as []model.Assessment
	query := r.DB.Where("user_id = ?", userID).Order("completed_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&as).Error
	return as, err
}
