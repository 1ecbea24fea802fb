package service

import (
	"eklavya_backend/internal/model"
	"eklavya_backend/internal/repository"
	"eklavya_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionService(t *testing.T) (*StudySessionService, *model.User) {
	t.Helper()
	db := newTestDB(t)
	return NewStudySessionService(repository.NewStudySessionRepository(db)), seedUser(t, db)
}

func TestScheduleSession(t *testing.T) {
	svc, user := newSessionService(t)

	at := time.Now().Add(24 * time.Hour)
	session, err := svc.Schedule(user.ID, "Mathematics", 90, at, "integration practice")
	require.NoError(t, err)

	assert.NotEmpty(t, session.ID)
	assert.False(t, session.Completed)
	assert.Equal(t, 90, session.Duration)

	sessions, err := svc.ListByUser(user.ID, 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Mathematics", sessions[0].Subject)
}

func TestCompleteSessionOverridesDuration(t *testing.T) {
	svc, user := newSessionService(t)

	session, err := svc.Schedule(user.ID, "Physics", 60, time.Now(), "")
	require.NoError(t, err)

	completed, err := svc.Complete(user.ID, session.ID, 75, "ran long")
	require.NoError(t, err)
	assert.True(t, completed.Completed)
	assert.Equal(t, 75, completed.Duration)
	assert.Equal(t, "ran long", completed.Notes)
}

func TestCompleteSessionKeepsPlannedDuration(t *testing.T) {
	svc, user := newSessionService(t)

	session, err := svc.Schedule(user.ID, "Physics", 60, time.Now(), "planned")
	require.NoError(t, err)

	completed, err := svc.Complete(user.ID, session.ID, 0, "")
	require.NoError(t, err)
	assert.True(t, completed.Completed)
	assert.Equal(t, 60, completed.Duration)
	assert.Equal(t, "planned", completed.Notes)
}

func TestCompleteSessionOwnership(t *testing.T) {
	svc, user := newSessionService(t)

	session, err := svc.Schedule(user.ID, "Chemistry", 45, time.Now(), "")
	require.NoError(t, err)

	_, err = svc.Complete(user.ID+1, session.ID, 45, "")
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	_, err = svc.Complete(user.ID, "missing-id", 45, "")
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}
