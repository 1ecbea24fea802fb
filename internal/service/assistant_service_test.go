package service

import (
	"eklavya_backend/internal/model"
	"eklavya_backend/internal/repository"
	"eklavya_backend/internal/util"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAssistantService(t *testing.T, db *gorm.DB, ai *AIService) *AssistantService {
	t.Helper()

	userRepo := repository.NewUserRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	sessionRepo := repository.NewStudySessionRepository(db)
	pathRepo := repository.NewLearningPathRepository(db)
	pathService := NewLearningPathService(pathRepo, assessmentRepo, userRepo, ai, nil)

	return NewAssistantService(userRepo, assessmentRepo, sessionRepo, pathRepo, pathService, ai, nil)
}

func TestDispatchUnsupportedType(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	_, ai := newFakeLLM(t, "irrelevant")
	svc := newAssistantService(t, db, ai)

	_, err := svc.Dispatch(user.ID, "fortune-telling", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, util.ErrUnsupportedAIType)
}

func TestStudyPlanFallbackOnBadJSON(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	seedAssessment(t, db, user.ID, "Mathematics", 2, 5, time.Hour)
	_, ai := newFakeLLM(t, "not json")
	svc := newAssistantService(t, db, ai)

	targetDate := time.Now().Add(60 * 24 * time.Hour).Format(util.DateFormat)
	payload, _ := json.Marshal(map[string]interface{}{
		"subjects":   []string{"Mathematics", "Physics"},
		"targetDate": targetDate,
		"studyHours": 3,
	})

	result, err := svc.Dispatch(user.ID, AITypeStudyPlan, payload)
	require.NoError(t, err)

	plan, ok := result.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Personalized Study Plan for Asha Verma", plan["title"])
	assert.Equal(t, model.PathSourceFallback, plan["source"])
	assert.NotEmpty(t, plan["id"])
	// Mathematics minimum is 0.4, below the weak threshold
	assert.Equal(t, []string{"Mathematics"}, plan["weakAreas"])

	assert.EqualValues(t, 1, countPaths(t, db))

	var row model.LearningPath
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, model.PathSourceFallback, row.Source)
	assert.Equal(t, "AI-generated study plan based on performance analysis", row.Description)
}

func TestStudyPlanParsedResponse(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	_, ai := newFakeLLM(t, `{"title":"Focus Plan","duration":120,"subjects":[{"name":"Mathematics"}]}`)
	svc := newAssistantService(t, db, ai)

	targetDate := time.Now().Add(30 * 24 * time.Hour).Format(util.DateFormat)
	payload, _ := json.Marshal(map[string]interface{}{
		"subjects":   []string{"Mathematics"},
		"targetDate": targetDate,
		"studyHours": 2,
	})

	result, err := svc.Dispatch(user.ID, AITypeStudyPlan, payload)
	require.NoError(t, err)

	plan := result.(map[string]interface{})
	assert.Equal(t, "Focus Plan", plan["title"])
	assert.Equal(t, model.PathSourceAI, plan["source"])

	var row model.LearningPath
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, "Focus Plan", row.Title)
	assert.Equal(t, 120, row.EstimatedDuration)
	assert.Equal(t, model.PathSourceAI, row.Source)
}

func TestStudyPlanPayloadValidation(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	_, ai := newFakeLLM(t, "irrelevant")
	svc := newAssistantService(t, db, ai)

	_, err := svc.Dispatch(user.ID, AITypeStudyPlan, json.RawMessage(`{}`))
	assert.ErrorIs(t, err, util.ErrInvalidAIPayload)

	_, err = svc.Dispatch(user.ID, AITypeStudyPlan, json.RawMessage(`{"subjects":["Math"],"targetDate":"tomorrow"}`))
	assert.ErrorIs(t, err, util.ErrInvalidAIPayload)

	// validation failures never leave rows behind
	assert.EqualValues(t, 0, countPaths(t, db))
}

func TestExplainQuestionFallback(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	_, ai := newFakeLLM(t, "Step one.\n\nStep two.")
	svc := newAssistantService(t, db, ai)

	payload := json.RawMessage(`{"question":"What is the derivative of x²?","subject":"Mathematics","difficulty":"beginner"}`)
	result, err := svc.Dispatch(user.ID, AITypeQuestionExplanation, payload)
	require.NoError(t, err)

	explanation := result.(map[string]interface{})
	assert.Equal(t, "Core concepts in Mathematics", explanation["concept"])
	assert.Equal(t, []string{"Step one.", "Step two."}, explanation["stepByStep"])
	assert.Equal(t, []string{"Double-check your calculations"}, explanation["commonMistakes"])

	// explanations are never persisted
	assert.EqualValues(t, 0, countPaths(t, db))
}

func TestExplainQuestionParsed(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	_, ai := newFakeLLM(t, `{"concept":"Power rule","stepByStep":["Apply the power rule"],"tips":["n·x^(n-1)"]}`)
	svc := newAssistantService(t, db, ai)

	payload := json.RawMessage(`{"question":"What is the derivative of x²?","subject":"Mathematics","difficulty":"beginner"}`)
	result, err := svc.Dispatch(user.ID, AITypeQuestionExplanation, payload)
	require.NoError(t, err)

	explanation := result.(map[string]interface{})
	assert.Equal(t, "Power rule", explanation["concept"])
}

func TestPerformanceAnalysisFallback(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	seedAssessment(t, db, user.ID, "Mathematics", 4, 5, 2*time.Hour)
	seedAssessment(t, db, user.ID, "Physics", 1, 5, time.Hour)
	require.NoError(t, db.Create(&model.StudySession{
		UserID: user.ID, Subject: "Mathematics", Duration: 60,
		ScheduledAt: time.Now(), Completed: true,
	}).Error)

	_, ai := newFakeLLM(t, "not json")
	svc := newAssistantService(t, db, ai)

	result, err := svc.Dispatch(user.ID, AITypePerformanceAnalysis, json.RawMessage(`{}`))
	require.NoError(t, err)

	analysis := result.(map[string]interface{})
	overall := analysis["overallProgress"].(map[string]interface{})
	assert.Equal(t, 50, overall["overall"])

	sw := analysis["strengthsAndWeaknesses"].(map[string]interface{})
	assert.Equal(t, []string{"Mathematics"}, sw["strengths"])
	assert.Equal(t, []string{"Physics"}, sw["weaknesses"])

	patterns := analysis["studyPatterns"].(map[string]interface{})
	assert.Equal(t, 1, patterns["totalSessions"])
	assert.Equal(t, 1, patterns["completedSessions"])
	assert.Equal(t, 60, patterns["totalMinutes"])

	// analysis reads, never writes
	assert.EqualValues(t, 0, countPaths(t, db))
}

func TestLearningPathKindDelegates(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	_, ai := newFakeLLM(t, "not json")
	svc := newAssistantService(t, db, ai)

	payload := json.RawMessage(`{
		"targetGoal": "JEE Advanced",
		"currentLevel": "intermediate",
		"timeframe": 90,
		"preferences": {"subjects": ["Mathematics", "Physics"], "studyHoursPerDay": 4, "learningStyle": "visual"}
	}`)

	result, err := svc.Dispatch(user.ID, AITypeLearningPath, payload)
	require.NoError(t, err)

	path := result.(map[string]interface{})
	assert.Equal(t, "JEE Advanced Learning Path", path["title"])
	assert.Equal(t, model.PathSourceFallback, path["source"])

	assert.EqualValues(t, 1, countPaths(t, db))
}
