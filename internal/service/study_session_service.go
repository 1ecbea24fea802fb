package service

import (
	"eklavya_backend/internal/model"
	"eklavya_backend/internal/repository"
	"eklavya_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

type StudySessionService struct {
	sessionRepo *repository.StudySessionRepository
}

func NewStudySessionService(sessionRepo *repository.StudySessionRepository) *StudySessionService {
	return &StudySessionService{sessionRepo: sessionRepo}
}

func (s *StudySessionService) Schedule(userID uint, subject string, duration int, scheduledAt time.Time, notes string) (*model.StudySession, error) {
	session := &model.StudySession{
		UserID:      userID,
		Subject:     subject,
		Duration:    duration,
		ScheduledAt: scheduledAt,
		Notes:       notes,
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *StudySessionService) ListByUser(userID uint, limit int) ([]model.StudySession, error) {
	return s.sessionRepo.ListByUser(userID, limit)
}

// Complete marks a session done, keeping the recorded duration unless the
// student reports the actual one.
func (s *StudySessionService) Complete(userID uint, id string, actualDuration int, notes string) (*model.StudySession, error) {
	session, err := s.sessionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, util.ErrSessionNotFound
	}

	session.Completed = true
	if actualDuration > 0 {
		session.Duration = actualDuration
	}
	if notes != "" {
		session.Notes = notes
	}
	if err := s.sessionRepo.Update(session); err != nil {
		return nil, err
	}
	return session, nil
}
