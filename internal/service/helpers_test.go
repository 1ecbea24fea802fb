package service

import (
	"eklavya_backend/internal/config"
	"eklavya_backend/internal/model"
	"eklavya_backend/pkg/database"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Assessment{},
		&model.AssessmentQuestion{},
		&model.AssessmentAttempt{},
		&model.LearningPath{},
		&model.SmartGoal{},
		&model.StudySession{},
	))
	require.NoError(t, database.SeedQuestionBank(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()

	goals, _ := json.Marshal([]string{"jee-prep"})
	user := &model.User{
		Email:         "student@example.com",
		Password:      "irrelevant",
		FullName:      "Asha Verma",
		GradeLevel:    "11",
		LearningGoals: goals,
		Role:          model.Student,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedAssessment(t *testing.T, db *gorm.DB, userID uint, subject string, score, total int, age time.Duration) {
	t.Helper()

	require.NoError(t, db.Create(&model.Assessment{
		UserID:          userID,
		Subject:         subject,
		Score:           score,
		TotalQuestions:  total,
		DifficultyLevel: model.DifficultyIntermediate,
		LearningStyle:   model.StyleBalanced,
		CompletedAt:     time.Now().Add(-age),
	}).Error)
}

// newFakeLLM serves a chat-completions endpoint that always answers with the
// given assistant content.
func newFakeLLM(t *testing.T, content string) (*httptest.Server, *AIService) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)

	ai := NewAIService(config.AIConfig{
		BaseURL:        srv.URL,
		APIKey:         "test-key",
		Model:          "test-model",
		RequestTimeout: 5 * time.Second,
	})
	return srv, ai
}

func countPaths(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(&model.LearningPath{}).Count(&n).Error)
	return n
}
