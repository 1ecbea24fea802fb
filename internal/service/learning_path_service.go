package service

import (
	"context"
	"eklavya_backend/internal/model"
	"eklavya_backend/internal/repository"
	"eklavya_backend/internal/util"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const curriculumSystemPrompt = "You are an expert educational curriculum designer. Always respond with valid, well-structured JSON for learning paths."

type LearningPathService struct {
	pathRepo       *repository.LearningPathRepository
	assessmentRepo *repository.AssessmentRepository
	userRepo       *repository.UserRepository
	ai             *AIService
	cache          *DashboardCache
}

func NewLearningPathService(
	pathRepo *repository.LearningPathRepository,
	assessmentRepo *repository.AssessmentRepository,
	userRepo *repository.UserRepository,
	ai *AIService,
	cache *DashboardCache,
) *LearningPathService {
	return &LearningPathService{
		pathRepo:       pathRepo,
		assessmentRepo: assessmentRepo,
		userRepo:       userRepo,
		ai:             ai,
		cache:          cache,
	}
}

type GeneratePathRequest struct {
	Subjects         []string `json:"subjects" binding:"required,min=1"`
	TargetGoal       string   `json:"targetGoal" binding:"required"`
	Timeframe        int      `json:"timeframe" binding:"required,gt=0"` // days
	StudyHoursPerDay float64  `json:"studyHoursPerDay" binding:"required,gt=0"`
	DifficultyLevel  string   `json:"difficultyLevel" binding:"required,oneof=beginner intermediate advanced"`
	LearningStyle    string   `json:"learningStyle" binding:"required,oneof=visual auditory kinesthetic reading"`
}

// Generate builds a personalized learning path: one LLM call, schema-checked
// JSON, deterministic fallback on any shape failure, one row inserted either
// way. The returned object is the path body plus id, createdAt and source.
func (s *LearningPathService) Generate(userID uint, req GeneratePathRequest) (map[string]interface{}, error) {
	assessments, err := s.assessmentRepo.ListByUser(userID, 10)
	if err != nil {
		return nil, err
	}
	profile, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	prompt := buildCurriculumPrompt(req, profile, assessments)

	source := model.PathSourceAI
	var path map[string]interface{}
	raw, err := s.ai.Chat(curriculumSystemPrompt, prompt, 3000)
	if err != nil {
		zap.L().Warn("learning path generation: AI call failed, using fallback",
			zap.Uint("user_id", userID), zap.Error(err))
		source = model.PathSourceFallback
		path = fallbackLearningPath(req)
	} else if path, err = parsePathJSON(raw); err != nil {
		zap.L().Warn("learning path generation: unparseable AI response, using fallback",
			zap.Uint("user_id", userID), zap.Error(err))
		source = model.PathSourceFallback
		path = fallbackLearningPath(req)
	}

	subjectsJSON, _ := json.Marshal(req.Subjects)
	row := &model.LearningPath{
		UserID:            userID,
		Title:             stringField(path, "title"),
		Description:       stringField(path, "description"),
		Subjects:          subjectsJSON,
		DifficultyLevel:   req.DifficultyLevel,
		EstimatedDuration: intField(path, "totalDuration"),
		Progress:          0,
		Source:            source,
	}
	if err := s.pathRepo.Create(row); err != nil {
		return nil, err
	}
	s.cache.Invalidate(context.Background(), userID)

	zap.L().Info("learning path generated",
		zap.Uint("user_id", userID),
		zap.String("path_id", row.ID),
		zap.String("source", source))

	path["id"] = row.ID
	path["createdAt"] = row.CreatedAt
	path["source"] = source
	return path, nil
}

func (s *LearningPathService) ListByUser(userID uint) ([]model.LearningPath, error) {
	return s.pathRepo.ListByUser(userID)
}

func (s *LearningPathService) GetByID(userID uint, id string) (*model.LearningPath, error) {
	path, err := s.pathRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPathNotFound
		}
		return nil, err
	}
	if path.UserID != userID {
		return nil, util.ErrPathNotFound
	}
	return path, nil
}

func (s *LearningPathService) UpdateProgress(userID uint, id string, progress int) (*model.LearningPath, error) {
	if progress < 0 || progress > 100 {
		return nil, util.ErrInvalidProgress
	}
	path, err := s.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.pathRepo.UpdateProgress(id, progress); err != nil {
		return nil, err
	}
	path.Progress = progress
	s.cache.Invalidate(context.Background(), userID)
	return path, nil
}

func buildCurriculumPrompt(req GeneratePathRequest, profile *model.User, assessments []model.Assessment) string {
	gradeLevel := profile.GradeLevel
	if gradeLevel == "" {
		gradeLevel = "Not specified"
	}

	history := "No previous assessments"
	if len(assessments) > 0 {
		lines := make([]string, len(assessments))
		for i := range assessments {
			a := &assessments[i]
			lines[i] = fmt.Sprintf("%s: %d%%", a.Subject, int(math.Round(a.Normalized()*100)))
		}
		history = strings.Join(lines, "\n")
	}

	return fmt.Sprintf(`Generate a comprehensive, personalized learning path for a student with the following profile:

Target Goal: %s
Subjects: %s
Timeframe: %d days
Study Hours per Day: %g
Difficulty Level: %s
Learning Style: %s
Grade Level: %s

Previous Assessment Performance:
%s

Please create a detailed learning path with the following JSON structure:
{
  "title": "Learning Path Title",
  "description": "Brief description of the learning path",
  "totalDuration": number (in days),
  "phases": [
    {
      "name": "Phase name",
      "duration": number (in days),
      "objectives": ["objective1", "objective2"],
      "topics": [
        {
          "name": "Topic name",
          "estimatedHours": number,
          "difficulty": "beginner|intermediate|advanced",
          "prerequisites": ["prerequisite1"],
          "resources": ["resource1", "resource2"],
          "assessmentType": "quiz|practice|project"
        }
      ]
    }
  ],
  "milestones": [
    {
      "week": number,
      "title": "Milestone title",
      "description": "What should be achieved",
      "assessmentRequired": boolean
    }
  ],
  "studySchedule": {
    "dailyStructure": "Recommended daily study structure",
    "weeklyPattern": "Weekly pattern recommendations",
    "breakRecommendations": "Break and rest recommendations"
  },
  "adaptiveElements": {
    "difficultyProgression": "How difficulty increases over time",
    "personalizedTips": ["tip1", "tip2"],
    "strengthFocus": "Areas to focus on based on strengths",
    "weaknessImprovement": "Plans for improving weak areas"
  },
  "resources": {
    "books": ["book1", "book2"],
    "onlineResources": ["url1", "url2"],
    "practiceTools": ["tool1", "tool2"],
    "videoLectures": ["lecture1", "lecture2"]
  }
}

Ensure the path is:
1. Personalized to the student's level and learning style
2. Progressive in difficulty
3. Includes regular assessment points
4. Accounts for the available time and study hours
5. Focuses on the target goal while building foundational knowledge`,
		req.TargetGoal,
		strings.Join(req.Subjects, ", "),
		req.Timeframe,
		req.StudyHoursPerDay,
		req.DifficultyLevel,
		req.LearningStyle,
		gradeLevel,
		history)
}

// parsePathJSON accepts only objects carrying the required path fields; any
// other shape is treated the same as invalid JSON.
func parsePathJSON(raw string) (map[string]interface{}, error) {
	var path map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &path); err != nil {
		return nil, err
	}
	for _, field := range []string{"title", "description", "totalDuration", "phases"} {
		if _, ok := path[field]; !ok {
			return nil, fmt.Errorf("AI response missing %q", field)
		}
	}
	return path, nil
}

func fallbackLearningPath(req GeneratePathRequest) map[string]interface{} {
	phases := make([]map[string]interface{}, len(req.Subjects))
	for i, subject := range req.Subjects {
		phases[i] = map[string]interface{}{
			"name":       fmt.Sprintf("Master %s", subject),
			"duration":   int(math.Ceil(float64(req.Timeframe) / float64(len(req.Subjects)))),
			"objectives": []string{fmt.Sprintf("Understand core concepts in %s", subject), "Apply knowledge practically"},
			"topics": []map[string]interface{}{
				{
					"name":           fmt.Sprintf("Foundation in %s", subject),
					"estimatedHours": req.StudyHoursPerDay * 7,
					"difficulty":     req.DifficultyLevel,
					"prerequisites":  []string{},
					"resources":      []string{fmt.Sprintf("%s textbook", subject), fmt.Sprintf("Online %s course", subject)},
					"assessmentType": "quiz",
				},
			},
		}
	}

	books := make([]string, len(req.Subjects))
	for i, subject := range req.Subjects {
		books[i] = fmt.Sprintf("Standard %s textbook", subject)
	}

	return map[string]interface{}{
		"title":         fmt.Sprintf("%s Learning Path", req.TargetGoal),
		"description":   fmt.Sprintf("Personalized learning path for %s", req.TargetGoal),
		"totalDuration": req.Timeframe,
		"phases":        phases,
		"milestones": []map[string]interface{}{
			{
				"week":               int(math.Ceil(float64(req.Timeframe) / 7 / 2)),
				"title":              "Mid-term Assessment",
				"description":        "Evaluate progress and adjust study plan",
				"assessmentRequired": true,
			},
		},
		"studySchedule": map[string]interface{}{
			"dailyStructure":       fmt.Sprintf("%g hours split into focused sessions", req.StudyHoursPerDay),
			"weeklyPattern":        "6 days study, 1 day review and rest",
			"breakRecommendations": "15-minute breaks every hour",
		},
		"adaptiveElements": map[string]interface{}{
			"difficultyProgression": "Gradual increase from current level",
			"personalizedTips":      []string{fmt.Sprintf("Focus on %s learning methods", req.LearningStyle)},
			"strengthFocus":         "Build on existing knowledge",
			"weaknessImprovement":   "Targeted practice in weak areas",
		},
		"resources": map[string]interface{}{
			"books":           books,
			"onlineResources": []string{"Khan Academy", "Coursera", "edX"},
			"practiceTools":   []string{"Practice problem sets", "Mock tests"},
			"videoLectures":   []string{"YouTube educational channels", "MIT OpenCourseWare"},
		},
	}
}

func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func intField(m map[string]interface{}, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}
