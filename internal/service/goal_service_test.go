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

func newGoalService(t *testing.T) (*GoalService, *model.User) {
	t.Helper()
	db := newTestDB(t)
	return NewGoalService(repository.NewGoalRepository(db), nil), seedUser(t, db)
}

func TestCreateGoalDefaults(t *testing.T) {
	svc, user := newGoalService(t)

	targetDate := time.Now().Add(30 * 24 * time.Hour)
	goal, err := svc.Create(user.ID, "Score 90% in Physics", "Mock test target", targetDate)
	require.NoError(t, err)

	assert.NotEmpty(t, goal.ID)
	assert.Equal(t, model.GoalActive, goal.Status)
	assert.Equal(t, 0, goal.Progress)
	assert.Equal(t, user.ID, goal.UserID)
}

func TestUpdateGoalPartialFields(t *testing.T) {
	svc, user := newGoalService(t)

	goal, err := svc.Create(user.ID, "Original", "desc", time.Now().Add(time.Hour))
	require.NoError(t, err)

	title := "Renamed"
	status := string(model.GoalAbandoned)
	updated, err := svc.Update(user.ID, goal.ID, UpdateGoalInput{Title: &title, Status: &status})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, model.GoalAbandoned, updated.Status)
	// untouched fields survive
	assert.Equal(t, "desc", updated.Description)
}

func TestUpdateGoalOwnership(t *testing.T) {
	svc, user := newGoalService(t)

	goal, err := svc.Create(user.ID, "Mine", "", time.Now().Add(time.Hour))
	require.NoError(t, err)

	title := "Theirs"
	_, err = svc.Update(user.ID+1, goal.ID, UpdateGoalInput{Title: &title})
	assert.ErrorIs(t, err, util.ErrGoalNotFound)

	_, err = svc.Update(user.ID, "missing-id", UpdateGoalInput{Title: &title})
	assert.ErrorIs(t, err, util.ErrGoalNotFound)
}

func TestGoalProgressCompletesAtHundred(t *testing.T) {
	svc, user := newGoalService(t)

	goal, err := svc.Create(user.ID, "Finish syllabus", "", time.Now().Add(time.Hour))
	require.NoError(t, err)

	updated, err := svc.UpdateProgress(user.ID, goal.ID, 40)
	require.NoError(t, err)
	assert.Equal(t, 40, updated.Progress)
	assert.Equal(t, model.GoalActive, updated.Status)

	updated, err = svc.UpdateProgress(user.ID, goal.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, updated.Progress)
	assert.Equal(t, model.GoalCompleted, updated.Status)

	_, err = svc.UpdateProgress(user.ID, goal.ID, 101)
	assert.ErrorIs(t, err, util.ErrInvalidProgress)
	_, err = svc.UpdateProgress(user.ID, goal.ID, -5)
	assert.ErrorIs(t, err, util.ErrInvalidProgress)
}
