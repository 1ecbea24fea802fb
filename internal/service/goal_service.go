package service

import (
	"context"
	"eklavya_backend/internal/model"
	"eklavya_backend/internal/repository"
	"eklavya_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

type GoalService struct {
	goalRepo *repository.GoalRepository
	cache    *DashboardCache
}

func NewGoalService(goalRepo *repository.GoalRepository, cache *DashboardCache) *GoalService {
	return &GoalService{goalRepo: goalRepo, cache: cache}
}

func (s *GoalService) Create(userID uint, title, description string, targetDate time.Time) (*model.SmartGoal, error) {
	goal := &model.SmartGoal{
		UserID:      userID,
		Title:       title,
		Description: description,
		TargetDate:  targetDate,
		Progress:    0,
		Status:      model.GoalActive,
	}
	if err := s.goalRepo.Create(goal); err != nil {
		return nil, err
	}
	s.cache.Invalidate(context.Background(), userID)
	return goal, nil
}

func (s *GoalService) ListByUser(userID uint, limit int) ([]model.SmartGoal, error) {
	return s.goalRepo.ListByUser(userID, limit)
}

type UpdateGoalInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	TargetDate  *time.Time `json:"targetDate"`
	Status      *string    `json:"status"`
}

func (s *GoalService) Update(userID uint, id string, input UpdateGoalInput) (*model.SmartGoal, error) {
	goal, err := s.findOwned(userID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		goal.Title = *input.Title
	}
	if input.Description != nil {
		goal.Description = *input.Description
	}
	if input.TargetDate != nil {
		goal.TargetDate = *input.TargetDate
	}
	if input.Status != nil {
		goal.Status = model.GoalStatus(*input.Status)
	}

	if err := s.goalRepo.Update(goal); err != nil {
		return nil, err
	}
	s.cache.Invalidate(context.Background(), userID)
	return goal, nil
}

// UpdateProgress moves progress within [0,100]; reaching 100 completes the goal.
func (s *GoalService) UpdateProgress(userID uint, id string, progress int) (*model.SmartGoal, error) {
	if progress < 0 || progress > 100 {
		return nil, util.ErrInvalidProgress
	}
	goal, err := s.findOwned(userID, id)
	if err != nil {
		return nil, err
	}

	goal.Progress = progress
	if progress == 100 {
		goal.Status = model.GoalCompleted
	}
	if err := s.goalRepo.Update(goal); err != nil {
		return nil, err
	}
	s.cache.Invalidate(context.Background(), userID)
	return goal, nil
}

func (s *GoalService) findOwned(userID uint, id string) (*model.SmartGoal, error) {
	goal, err := s.goalRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrGoalNotFound
		}
		return nil, err
	}
	if goal.UserID != userID {
		return nil, util.ErrGoalNotFound
	}
	return goal, nil
}
