package repository

import (
	"eklavya_backend/internal/model"

	"gorm.io/gorm"
)

type GoalRepository struct {
	DB *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{DB: db}
}

func (r *GoalRepository) Create(g *model.SmartGoal) error {
	return r.DB.Create(g).Error
}

func (r *GoalRepository) FindByID(id string) (*model.SmartGoal, error) {
	var g model.SmartGoal
	err := r.DB.Where("id = ?", id).First(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GoalRepository) ListByUser(userID uint, limit int) ([]model.SmartGoal, error) {
	var gs []model.SmartGoal
	query := r.DB.Where("user_id = ?", userID).Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&gs).Error
	return gs, err
}

func (r *GoalRepository) Update(g *model.SmartGoal) error {
	return r.DB.Save(g).Error
}
