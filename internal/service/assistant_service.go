package service

import (
	"context"
	"eklavya_backend/internal/model"
	"eklavya_backend/internal/repository"
	"eklavya_backend/internal/util"
	"eklavya_backend/pkg/monitoring"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	AITypeStudyPlan           = "study-plan"
	AITypeQuestionExplanation = "question-explanation"
	AITypePerformanceAnalysis = "performance-analysis"
	AITypeLearningPath        = "learning-path"
)

const tutorSystemPrompt = "You are an expert educational tutor. Always respond with valid JSON."

type AssistantService struct {
	userRepo       *repository.UserRepository
	assessmentRepo *repository.AssessmentRepository
	sessionRepo    *repository.StudySessionRepository
	pathRepo       *repository.LearningPathRepository
	pathService    *LearningPathService
	ai             *AIService
	cache          *DashboardCache
}

func NewAssistantService(
	userRepo *repository.UserRepository,
	assessmentRepo *repository.AssessmentRepository,
	sessionRepo *repository.StudySessionRepository,
	pathRepo *repository.LearningPathRepository,
	pathService *LearningPathService,
	ai *AIService,
	cache *DashboardCache,
) *AssistantService {
	return &AssistantService{
		userRepo:       userRepo,
		assessmentRepo: assessmentRepo,
		sessionRepo:    sessionRepo,
		pathRepo:       pathRepo,
		pathService:    pathService,
		ai:             ai,
		cache:          cache,
	}
}

// Dispatch routes one assistant request by kind. Every kind issues exactly one
// LLM call and inserts at most one row; an unparseable LLM response never
// surfaces as an error, it selects the documented fallback instead.
func (s *AssistantService) Dispatch(userID uint, kind string, payload json.RawMessage) (interface{}, error) {
	var (
		result  interface{}
		outcome string
		err     error
	)

	switch kind {
	case AITypeStudyPlan:
		result, outcome, err = s.generateStudyPlan(userID, payload)
	case AITypeQuestionExplanation:
		result, outcome, err = s.explainQuestion(payload)
	case AITypePerformanceAnalysis:
		result, outcome, err = s.analyzePerformance(userID)
	case AITypeLearningPath:
		result, outcome, err = s.generateLearningPath(userID, payload)
	default:
		return nil, fmt.Errorf("%w: %s", util.ErrUnsupportedAIType, kind)
	}

	if err != nil {
		monitoring.AIRequestCounter.WithLabelValues(kind, "error").Inc()
		return nil, err
	}
	monitoring.AIRequestCounter.WithLabelValues(kind, outcome).Inc()

	zap.L().Info("assistant request served",
		zap.Uint("user_id", userID),
		zap.String("kind", kind),
		zap.String("outcome", outcome))
	return result, nil
}

type studyPlanPayload struct {
	Subjects   []string `json:"subjects"`
	TargetDate string   `json:"targetDate"`
	StudyHours float64  `json:"studyHours"`
}

func (s *AssistantService) generateStudyPlan(userID uint, payload json.RawMessage) (interface{}, string, error) {
	var req studyPlanPayload
	if err := json.Unmarshal(payload, &req); err != nil || len(req.Subjects) == 0 {
		return nil, "", fmt.Errorf("%w: study-plan needs subjects, targetDate and studyHours", util.ErrInvalidAIPayload)
	}
	targetDate, err := time.Parse(util.DateFormat, req.TargetDate)
	if err != nil {
		return nil, "", fmt.Errorf("%w: targetDate must be YYYY-MM-DD", util.ErrInvalidAIPayload)
	}
	if req.StudyHours <= 0 {
		req.StudyHours = 2
	}

	profile, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, "", err
	}
	assessments, err := s.assessmentRepo.ListByUser(userID, 5)
	if err != nil {
		return nil, "", err
	}

	prompt := fmt.Sprintf(`Create a personalized study plan for a %s student preparing for %s by %s, studying %g hours per day.

Recent performance:
%s

Respond as JSON with fields: title (string), duration (total hours, number), subjects (array of {name, priority, allocatedHours, currentLevel}), dailySchedule ({sessionsPerDay, sessionLength, breakTime, optimalTimes, adaptiveScheduling}), weakAreas (array of strings), recommendations (array of strings), milestones (array of {subject, targetWeek, description, assessmentRequired}).`,
		profile.GradeLevel, strings.Join(req.Subjects, ", "), req.TargetDate, req.StudyHours,
		formatAssessmentLines(assessments))

	outcome := "parsed"
	var plan map[string]interface{}
	raw, aiErr := s.ai.Chat(tutorSystemPrompt, prompt, 2000)
	if aiErr != nil {
		zap.L().Warn("study plan: AI call failed, using fallback", zap.Uint("user_id", userID), zap.Error(aiErr))
		outcome = "fallback"
	} else if parseErr := json.Unmarshal([]byte(raw), &plan); parseErr != nil || plan["title"] == nil || plan["subjects"] == nil {
		outcome = "fallback"
	}
	if outcome == "fallback" {
		plan = s.ruleBasedStudyPlan(profile, assessments, req, targetDate)
	}

	subjects := req.Subjects
	subjectsJSON, _ := json.Marshal(subjects)
	row := &model.LearningPath{
		UserID:            userID,
		Title:             stringField(plan, "title"),
		Description:       "AI-generated study plan based on performance analysis",
		Subjects:          subjectsJSON,
		DifficultyLevel:   DetermineDifficultyLevel(assessments),
		EstimatedDuration: intField(plan, "duration"),
		Progress:          0,
		Source:            pathSourceForOutcome(outcome),
	}
	if err := s.pathRepo.Create(row); err != nil {
		return nil, "", err
	}
	s.cache.Invalidate(context.Background(), userID)

	plan["id"] = row.ID
	plan["source"] = row.Source
	return plan, outcome, nil
}

func (s *AssistantService) ruleBasedStudyPlan(profile *model.User, assessments []model.Assessment, req studyPlanPayload, targetDate time.Time) map[string]interface{} {
	name := profile.FullName
	if name == "" {
		name = "Student"
	}
	return map[string]interface{}{
		"title":           fmt.Sprintf("Personalized Study Plan for %s", name),
		"duration":        OptimalDuration(assessments),
		"subjects":        PrioritizeSubjects(assessments, req.Subjects),
		"dailySchedule":   GenerateDailySchedule(req.StudyHours),
		"weakAreas":       IdentifyWeakAreas(assessments),
		"recommendations": StudyRecommendations(assessments, profile.LearningGoalList()),
		"milestones":      CreateMilestones(targetDate, req.Subjects),
	}
}

type explainPayload struct {
	Question   string `json:"question"`
	Subject    string `json:"subject"`
	Difficulty string `json:"difficulty"`
}

func (s *AssistantService) explainQuestion(payload json.RawMessage) (interface{}, string, error) {
	var req explainPayload
	if err := json.Unmarshal(payload, &req); err != nil || req.Question == "" {
		return nil, "", fmt.Errorf("%w: question-explanation needs question, subject and difficulty", util.ErrInvalidAIPayload)
	}
	if req.Difficulty == "" {
		req.Difficulty = model.DifficultyBeginner
	}

	prompt := fmt.Sprintf(`As an expert tutor in %s, provide a comprehensive explanation for this %s level question:

"%s"

Please structure your response as JSON with these fields:
- concept: Core concept being tested
- stepByStep: Array of step-by-step solution steps
- alternativeMethods: Array of alternative solution approaches
- relatedTopics: Array of related topics to study
- practiceQuestions: Array of 2-3 similar practice questions
- tips: Array of helpful tips and mnemonics
- commonMistakes: Array of common mistakes to avoid

Make the explanation clear and educational for a student at %s level.`,
		req.Subject, req.Difficulty, req.Question, req.Difficulty)

	raw, err := s.ai.Chat(tutorSystemPrompt, prompt, 2000)
	if err != nil {
		return nil, "", err
	}

	var explanation map[string]interface{}
	if parseErr := json.Unmarshal([]byte(raw), &explanation); parseErr == nil && explanation["concept"] != nil {
		return explanation, "parsed", nil
	}

	// Shape failure: keep the text the model produced as the solution steps.
	steps := make([]string, 0)
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) != "" {
			steps = append(steps, line)
		}
	}
	return map[string]interface{}{
		"concept":            fmt.Sprintf("Core concepts in %s", req.Subject),
		"stepByStep":         steps,
		"alternativeMethods": []string{"Alternative approach available"},
		"relatedTopics":      []string{fmt.Sprintf("Related %s topics", req.Subject)},
		"practiceQuestions":  []string{"Practice more similar questions"},
		"tips":               []string{"Focus on understanding the fundamentals"},
		"commonMistakes":     []string{"Double-check your calculations"},
	}, "fallback", nil
}

func (s *AssistantService) analyzePerformance(userID uint) (interface{}, string, error) {
	assessments, err := s.assessmentRepo.ListByUser(userID, 0)
	if err != nil {
		return nil, "", err
	}
	sessions, err := s.sessionRepo.ListByUser(userID, 50)
	if err != nil {
		return nil, "", err
	}

	prompt := fmt.Sprintf(`Analyze this student's learning performance.

Assessment history (newest first):
%s

Study sessions: %d recorded, %d completed.

Respond as JSON with fields: overallProgress ({overall (0-100 number), trend}), subjectWiseAnalysis (object keyed by subject with {averageScore, assessments}), strengthsAndWeaknesses ({strengths, weaknesses} arrays of subjects), studyPatterns ({totalSessions, completedSessions, totalMinutes, averageSessionLength}), recommendations (array of strings).`,
		formatAssessmentLines(assessments), len(sessions), countCompleted(sessions))

	raw, aiErr := s.ai.Chat(tutorSystemPrompt, prompt, 2000)
	if aiErr == nil {
		var analysis map[string]interface{}
		if parseErr := json.Unmarshal([]byte(raw), &analysis); parseErr == nil && analysis["overallProgress"] != nil {
			return analysis, "parsed", nil
		}
	} else {
		zap.L().Warn("performance analysis: AI call failed, using fallback", zap.Uint("user_id", userID), zap.Error(aiErr))
	}

	return deterministicAnalysis(assessments, sessions), "fallback", nil
}

type learningPathPayload struct {
	TargetGoal   string `json:"targetGoal"`
	CurrentLevel string `json:"currentLevel"`
	Timeframe    int    `json:"timeframe"`
	Preferences  struct {
		Subjects         []string `json:"subjects"`
		StudyHoursPerDay float64  `json:"studyHoursPerDay"`
		LearningStyle    string   `json:"learningStyle"`
	} `json:"preferences"`
}

func (s *AssistantService) generateLearningPath(userID uint, payload json.RawMessage) (interface{}, string, error) {
	var req learningPathPayload
	if err := json.Unmarshal(payload, &req); err != nil || req.TargetGoal == "" {
		return nil, "", fmt.Errorf("%w: learning-path needs targetGoal, currentLevel, timeframe and preferences", util.ErrInvalidAIPayload)
	}

	subjects := req.Preferences.Subjects
	if len(subjects) == 0 {
		subjects = []string{model.SubjectGeneral}
	}
	hours := req.Preferences.StudyHoursPerDay
	if hours <= 0 {
		hours = 2
	}
	style := req.Preferences.LearningStyle
	if style == "" {
		style = "reading"
	}
	level := req.CurrentLevel
	if level == "" {
		level = model.DifficultyBeginner
	}
	timeframe := req.Timeframe
	if timeframe <= 0 {
		timeframe = 30
	}

	path, err := s.pathService.Generate(userID, GeneratePathRequest{
		Subjects:         subjects,
		TargetGoal:       req.TargetGoal,
		Timeframe:        timeframe,
		StudyHoursPerDay: hours,
		DifficultyLevel:  level,
		LearningStyle:    style,
	})
	if err != nil {
		return nil, "", err
	}

	outcome := "parsed"
	if path["source"] == model.PathSourceFallback {
		outcome = "fallback"
	}
	return path, outcome, nil
}

func deterministicAnalysis(assessments []model.Assessment, sessions []model.StudySession) map[string]interface{} {
	type subjectStats struct {
		sum   float64
		count int
	}
	bySubject := make(map[string]*subjectStats)
	order := make([]string, 0)
	total := 0.0
	for i := range assessments {
		a := &assessments[i]
		st, ok := bySubject[a.Subject]
		if !ok {
			st = &subjectStats{}
			bySubject[a.Subject] = st
			order = append(order, a.Subject)
		}
		st.sum += a.Normalized()
		st.count++
		total += a.Normalized()
	}

	overall := 0
	if len(assessments) > 0 {
		overall = int(total / float64(len(assessments)) * 100)
	}

	trend := "steady"
	if len(assessments) >= 2 {
		// ListByUser returns newest first.
		latest := assessments[0].Normalized()
		avg := total / float64(len(assessments))
		if latest > avg {
			trend = "improving"
		} else if latest < avg {
			trend = "declining"
		}
	}

	subjectAnalysis := make(map[string]interface{}, len(bySubject))
	strengths := make([]string, 0)
	weaknesses := make([]string, 0)
	for _, subject := range order {
		st := bySubject[subject]
		avg := st.sum / float64(st.count)
		subjectAnalysis[subject] = map[string]interface{}{
			"averageScore": avg,
			"assessments":  st.count,
		}
		if avg >= 0.75 {
			strengths = append(strengths, subject)
		} else if avg < 0.6 {
			weaknesses = append(weaknesses, subject)
		}
	}

	totalMinutes := 0
	completed := 0
	for i := range sessions {
		totalMinutes += sessions[i].Duration
		if sessions[i].Completed {
			completed++
		}
	}
	avgLength := 0
	if len(sessions) > 0 {
		avgLength = totalMinutes / len(sessions)
	}

	return map[string]interface{}{
		"overallProgress": map[string]interface{}{
			"overall": overall,
			"trend":   trend,
		},
		"subjectWiseAnalysis": subjectAnalysis,
		"strengthsAndWeaknesses": map[string]interface{}{
			"strengths":  strengths,
			"weaknesses": weaknesses,
		},
		"studyPatterns": map[string]interface{}{
			"totalSessions":        len(sessions),
			"completedSessions":    completed,
			"totalMinutes":         totalMinutes,
			"averageSessionLength": avgLength,
		},
		"recommendations": StudyRecommendations(assessments, nil),
	}
}

func formatAssessmentLines(assessments []model.Assessment) string {
	if len(assessments) == 0 {
		return "No previous assessments"
	}
	lines := make([]string, len(assessments))
	for i := range assessments {
		a := &assessments[i]
		lines[i] = fmt.Sprintf("%s: %d/%d (%s)", a.Subject, a.Score, a.TotalQuestions, a.DifficultyLevel)
	}
	return strings.Join(lines, "\n")
}

func countCompleted(sessions []model.StudySession) int {
	n := 0
	for i := range sessions {
		if sessions[i].Completed {
			n++
		}
	}
	return n
}

func pathSourceForOutcome(outcome string) string {
	if outcome == "parsed" {
		return model.PathSourceAI
	}
	return model.PathSourceFallback
}
