package service

import (
	"eklavya_backend/internal/model"
	"eklavya_backend/internal/repository"
	"eklavya_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPathService(t *testing.T, db *gorm.DB, ai *AIService) *LearningPathService {
	t.Helper()
	return NewLearningPathService(
		repository.NewLearningPathRepository(db),
		repository.NewAssessmentRepository(db),
		repository.NewUserRepository(db),
		ai,
		nil,
	)
}

func pathRequest(subjects ...string) GeneratePathRequest {
	return GeneratePathRequest{
		Subjects:         subjects,
		TargetGoal:       "JEE Main",
		Timeframe:        60,
		StudyHoursPerDay: 3,
		DifficultyLevel:  model.DifficultyIntermediate,
		LearningStyle:    "visual",
	}
}

func TestGeneratePersistsParsedPath(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	seedAssessment(t, db, user.ID, "Mathematics", 4, 5, time.Hour)
	_, ai := newFakeLLM(t, `{"title":"JEE Sprint","description":"Eight-week sprint","totalDuration":56,"phases":[{"name":"Algebra"}]}`)
	svc := newPathService(t, db, ai)

	path, err := svc.Generate(user.ID, pathRequest("Mathematics", "Physics"))
	require.NoError(t, err)

	assert.Equal(t, "JEE Sprint", path["title"])
	assert.Equal(t, model.PathSourceAI, path["source"])
	assert.NotEmpty(t, path["id"])
	assert.NotZero(t, path["createdAt"])

	var row model.LearningPath
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, user.ID, row.UserID)
	assert.Equal(t, "JEE Sprint", row.Title)
	assert.Equal(t, "Eight-week sprint", row.Description)
	assert.Equal(t, 56, row.EstimatedDuration)
	assert.Equal(t, model.DifficultyIntermediate, row.DifficultyLevel)
	assert.Equal(t, model.PathSourceAI, row.Source)
	assert.Equal(t, []string{"Mathematics", "Physics"}, row.SubjectList())
}

func TestGenerateFallsBackOnMissingFields(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	// valid JSON, but not a valid path shape
	_, ai := newFakeLLM(t, `{"title":"Half a path"}`)
	svc := newPathService(t, db, ai)

	path, err := svc.Generate(user.ID, pathRequest("Chemistry"))
	require.NoError(t, err)

	assert.Equal(t, "JEE Main Learning Path", path["title"])
	assert.Equal(t, model.PathSourceFallback, path["source"])
	assert.Equal(t, 60, path["totalDuration"])

	phases := path["phases"].([]map[string]interface{})
	require.Len(t, phases, 1)
	assert.Equal(t, "Master Chemistry", phases[0]["name"])
	assert.Equal(t, 60, phases[0]["duration"])

	var row model.LearningPath
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, model.PathSourceFallback, row.Source)
	assert.Equal(t, 60, row.EstimatedDuration)
}

func TestGenerateFallbackSplitsTimeframe(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	_, ai := newFakeLLM(t, "not json")
	svc := newPathService(t, db, ai)

	path, err := svc.Generate(user.ID, pathRequest("Mathematics", "Physics", "Chemistry"))
	require.NoError(t, err)

	phases := path["phases"].([]map[string]interface{})
	require.Len(t, phases, 3)
	// 60 days over 3 subjects
	assert.Equal(t, 20, phases[0]["duration"])
}

func TestGetByIDOwnership(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db)
	_, ai := newFakeLLM(t, "not json")
	svc := newPathService(t, db, ai)

	path, err := svc.Generate(owner.ID, pathRequest("Mathematics"))
	require.NoError(t, err)
	id := path["id"].(string)

	got, err := svc.GetByID(owner.ID, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	_, err = svc.GetByID(owner.ID+1, id)
	assert.ErrorIs(t, err, util.ErrPathNotFound)

	_, err = svc.GetByID(owner.ID, "missing-id")
	assert.ErrorIs(t, err, util.ErrPathNotFound)
}

func TestUpdateProgress(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	_, ai := newFakeLLM(t, "not json")
	svc := newPathService(t, db, ai)

	path, err := svc.Generate(user.ID, pathRequest("Mathematics"))
	require.NoError(t, err)
	id := path["id"].(string)

	updated, err := svc.UpdateProgress(user.ID, id, 45)
	require.NoError(t, err)
	assert.Equal(t, 45, updated.Progress)

	var row model.LearningPath
	require.NoError(t, db.First(&row, "id = ?", id).Error)
	assert.Equal(t, 45, row.Progress)

	_, err = svc.UpdateProgress(user.ID, id, 101)
	assert.ErrorIs(t, err, util.ErrInvalidProgress)
	_, err = svc.UpdateProgress(user.ID, id, -1)
	assert.ErrorIs(t, err, util.ErrInvalidProgress)

	_, err = svc.UpdateProgress(user.ID+1, id, 50)
	assert.ErrorIs(t, err, util.ErrPathNotFound)
}

func TestListByUserNewestFirst(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	_, ai := newFakeLLM(t, "not json")
	svc := newPathService(t, db, ai)

	_, err := svc.Generate(user.ID, pathRequest("Mathematics"))
	require.NoError(t, err)
	second, err := svc.Generate(user.ID, pathRequest("Physics"))
	require.NoError(t, err)

	paths, err := svc.ListByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, second["id"], paths[0].ID)
}
