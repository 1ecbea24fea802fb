package service

import (
	"context"
	"eklavya_backend/internal/model"
	"eklavya_backend/internal/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotAssemblesRecentActivity(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)

	for i, age := range []time.Duration{4 * time.Hour, 3 * time.Hour, 2 * time.Hour, time.Hour} {
		seedAssessment(t, db, user.ID, "Mathematics", i+1, 5, age)
	}
	require.NoError(t, db.Create(&model.SmartGoal{
		UserID: user.ID, Title: "Finish mechanics", TargetDate: time.Now().Add(time.Hour), Status: model.GoalActive,
	}).Error)
	require.NoError(t, db.Create(&model.LearningPath{
		UserID: user.ID, Title: "Physics Path", DifficultyLevel: model.DifficultyBeginner, Source: model.PathSourceFallback,
	}).Error)

	svc := NewDashboardService(
		repository.NewUserRepository(db),
		repository.NewAssessmentRepository(db),
		repository.NewLearningPathRepository(db),
		repository.NewGoalRepository(db),
		nil,
	)

	snap, err := svc.Snapshot(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, user.ID, snap.Profile.ID)
	// only the last 3 assessments, newest first
	require.Len(t, snap.Assessments, 3)
	assert.Equal(t, 4, snap.Assessments[0].Score)
	require.Len(t, snap.LearningPaths, 1)
	assert.Equal(t, "Physics Path", snap.LearningPaths[0].Title)
	require.Len(t, snap.Goals, 1)
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestSnapshotScopedToUser(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)

	other := &model.User{Email: "other@example.com", Password: "x", FullName: "Other"}
	require.NoError(t, db.Create(other).Error)
	seedAssessment(t, db, other.ID, "Physics", 5, 5, time.Hour)

	svc := NewDashboardService(
		repository.NewUserRepository(db),
		repository.NewAssessmentRepository(db),
		repository.NewLearningPathRepository(db),
		repository.NewGoalRepository(db),
		nil,
	)

	snap, err := svc.Snapshot(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, snap.Assessments)
	assert.Empty(t, snap.LearningPaths)
	assert.Empty(t, snap.Goals)
}
