package service

import (
	"context"
	"eklavya_backend/internal/model"
	"eklavya_backend/internal/repository"
	"eklavya_backend/internal/util"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
	cache    *DashboardCache
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService, cache *DashboardCache) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Storage:  storage,
		cache:    cache,
	}
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

type UpdateProfileInput struct {
	FullName      *string   `json:"fullName"`
	GradeLevel    *string   `json:"gradeLevel"`
	LearningGoals *[]string `json:"learningGoals"`
}

func (s *UserService) UpdateProfile(userID uint, input UpdateProfileInput) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.GradeLevel != nil {
		user.GradeLevel = *input.GradeLevel
	}
	if input.LearningGoals != nil {
		goalsJSON, err := json.Marshal(*input.LearningGoals)
		if err != nil {
			return nil, err
		}
		user.LearningGoals = goalsJSON
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	s.cache.Invalidate(context.Background(), userID)
	return user, nil
}

// UploadAvatar stores the image with the configured provider and records the
// resulting URL on the user row.
func (s *UserService) UploadAvatar(ctx context.Context, userID uint, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if _, err := s.GetProfile(userID); err != nil {
		return "", err
	}

	stored := fmt.Sprintf("avatars/%d_%d%s", userID, time.Now().Unix(), filepath.Ext(filename))
	url, err := s.Storage.Upload(ctx, stored, reader, size, contentType)
	if err != nil {
		return "", err
	}

	if err := s.UserRepo.UpdateAvatar(userID, url); err != nil {
		return "", err
	}
	s.cache.Invalidate(context.Background(), userID)
	return url, nil
}
