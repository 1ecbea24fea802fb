package repository

import (
	"eklavya_backend/internal/model"

	"gorm.io/gorm"
)

type LearningPathRepository struct {
	DB *gorm.DB
}

func NewLearningPathRepository(db *gorm.DB) *LearningPathRepository {
	return &LearningPathRepository{DB: db}
}

func (r *LearningPathRepository) Create(p *model.LearningPath) error {
	return r.DB.Create(p).Error
}

func (r *LearningPathRepository) FindByID(id string) (*model.LearningPath, error) {
	var p model.LearningPath
	err := r.DB.Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *LearningPathRepository) ListByUser(userID uint) ([]model.LearningPath, error) {
	var ps []model.LearningPath
	err := r.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&ps).Error
	return ps, err
}

func (r *LearningPathRepository) UpdateProgress(id string, progress int) error {
	return r.DB.Model(&model.LearningPath{}).Where("id = ?", id).Update("progress", progress).Error
}
