package service

import (
	"context"
	"eklavya_backend/internal/model"
	"eklavya_backend/internal/repository"
	"eklavya_backend/internal/util"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const attemptQuestionLimit = 5

type AssessmentService struct {
	assessmentRepo *repository.AssessmentRepository
	cache          *DashboardCache
}

func NewAssessmentService(assessmentRepo *repository.AssessmentRepository, cache *DashboardCache) *AssessmentService {
	return &AssessmentService{assessmentRepo: assessmentRepo, cache: cache}
}

// AttemptQuestion is the student-facing view of a bank question. The correct
// index never leaves the server while the attempt is open.
type AttemptQuestion struct {
	ID       uint     `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Subject  string   `json:"subject"`
	Topic    string   `json:"topic"`
}

type StartAttemptResult struct {
	AttemptID string            `json:"attemptId"`
	Subject   string            `json:"subject"`
	Questions []AttemptQuestion `json:"questions"`
	StartedAt time.Time         `json:"startedAt"`
}

type SubmitResult struct {
	AssessmentID    string   `json:"assessmentId"`
	Subject         string   `json:"subject"`
	Score           int      `json:"score"`
	TotalQuestions  int      `json:"totalQuestions"`
	Percentage      float64  `json:"percentage"`
	DifficultyLevel string   `json:"difficultyLevel"`
	LearningStyle   string   `json:"learningStyle"`
	Recommendations []string `json:"recommendations"`
}

// ListQuestions returns the bank view for a subject without opening an attempt.
func (s *AssessmentService) ListQuestions(subject string) ([]AttemptQuestion, error) {
	questions, err := s.assessmentRepo.ListQuestionsBySubject(subject, attemptQuestionLimit)
	if err != nil {
		return nil, err
	}
	return toAttemptQuestions(questions), nil
}

// StartAttempt selects up to 5 bank questions for the subject ("General"
// draws from the whole bank) and opens an attempt with every answer set to -1.
func (s *AssessmentService) StartAttempt(userID uint, subject string) (*StartAttemptResult, error) {
	questions, err := s.assessmentRepo.ListQuestionsBySubject(subject, attemptQuestionLimit)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrNoQuestionsForSubject
	}

	ids := make([]uint, len(questions))
	answers := make([]int, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
		answers[i] = -1
	}
	idsJSON, _ := json.Marshal(ids)
	answersJSON, _ := json.Marshal(answers)

	attempt := &model.AssessmentAttempt{
		UserID:      userID,
		Subject:     subject,
		QuestionIDs: idsJSON,
		Answers:     answersJSON,
		StartedAt:   time.Now(),
	}
	if err := s.assessmentRepo.CreateAttempt(attempt); err != nil {
		return nil, err
	}

	zap.L().Info("assessment attempt started",
		zap.Uint("user_id", userID),
		zap.String("attempt_id", attempt.ID),
		zap.String("subject", subject),
		zap.Int("questions", len(questions)))

	return &StartAttemptResult{
		AttemptID: attempt.ID,
		Subject:   subject,
		Questions: toAttemptQuestions(questions),
		StartedAt: attempt.StartedAt,
	}, nil
}

// Answer records the selected option for one question of an open attempt.
// Navigation between questions is free; answers may be overwritten until
// submit.
func (s *AssessmentService) Answer(userID uint, attemptID string, questionIndex, optionIndex int) error {
	attempt, questions, answers, err := s.loadAttempt(userID, attemptID)
	if err != nil {
		return err
	}

	if questionIndex < 0 || questionIndex >= len(questions) {
		return util.ErrQuestionOutOfRange
	}
	if optionIndex < 0 {
		return util.ErrNoAnswerSelected
	}
	if optionIndex >= len(questions[questionIndex].OptionList()) {
		return util.ErrAnswerOutOfRange
	}

	answers[questionIndex] = optionIndex
	answersJSON, _ := json.Marshal(answers)
	attempt.Answers = answersJSON
	return s.assessmentRepo.UpdateAttempt(attempt)
}

// Submit scores a fully answered attempt, classifies difficulty and learning
// style, persists the immutable assessment row and closes the attempt.
func (s *AssessmentService) Submit(userID uint, attemptID string) (*SubmitResult, error) {
	attempt, questions, answers, err := s.loadAttempt(userID, attemptID)
	if err != nil {
		return nil, err
	}

	for _, a := range answers {
		if a < 0 {
			return nil, util.ErrUnansweredQuestion
		}
	}

	score := 0
	for i, q := range questions {
		if answers[i] == q.CorrectAnswer {
			score++
		}
	}
	total := len(questions)
	percentage := float64(score) / float64(total) * 100

	difficulty := model.DifficultyBeginner
	if percentage >= 80 {
		difficulty = model.DifficultyAdvanced
	} else if percentage >= 60 {
		difficulty = model.DifficultyIntermediate
	}

	avgSeconds := time.Since(attempt.StartedAt).Seconds() / float64(total)
	style := model.StyleBalanced
	if avgSeconds < 30 && percentage > 70 {
		style = model.StyleQuickLearner
	} else if avgSeconds > 60 {
		style = model.StyleThorough
	}

	assessment := &model.Assessment{
		UserID:          userID,
		Subject:         attempt.Subject,
		Score:           score,
		TotalQuestions:  total,
		DifficultyLevel: difficulty,
		LearningStyle:   style,
		CompletedAt:     time.Now(),
	}
	if err := s.assessmentRepo.CreateAssessment(assessment); err != nil {
		return nil, err
	}

	attempt.Completed = true
	if err := s.assessmentRepo.UpdateAttempt(attempt); err != nil {
		return nil, err
	}
	s.cache.Invalidate(context.Background(), userID)

	zap.L().Info("assessment submitted",
		zap.Uint("user_id", userID),
		zap.String("assessment_id", assessment.ID),
		zap.String("subject", attempt.Subject),
		zap.Int("score", score),
		zap.String("difficulty", difficulty))

	return &SubmitResult{
		AssessmentID:    assessment.ID,
		Subject:         attempt.Subject,
		Score:           score,
		TotalQuestions:  total,
		Percentage:      percentage,
		DifficultyLevel: difficulty,
		LearningStyle:   style,
		Recommendations: scoreRecommendations(percentage, attempt.Subject),
	}, nil
}

// History returns the latest completed assessments, newest first.
func (s *AssessmentService) History(userID uint, limit int) ([]model.Assessment, error) {
	return s.assessmentRepo.ListByUser(userID, limit)
}

func (s *AssessmentService) loadAttempt(userID uint, attemptID string) (*model.AssessmentAttempt, []model.AssessmentQuestion, []int, error) {
	attempt, err := s.assessmentRepo.FindAttemptByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, util.ErrAttemptNotFound
		}
		return nil, nil, nil, err
	}
	if attempt.UserID != userID {
		return nil, nil, nil, util.ErrAttemptNotFound
	}
	if attempt.Completed {
		return nil, nil, nil, util.ErrAttemptCompleted
	}

	var ids []uint
	if err := json.Unmarshal(attempt.QuestionIDs, &ids); err != nil {
		return nil, nil, nil, err
	}
	var answers []int
	if err := json.Unmarshal(attempt.Answers, &answers); err != nil {
		return nil, nil, nil, err
	}

	questions, err := s.assessmentRepo.FindQuestionsByIDs(ids)
	if err != nil {
		return nil, nil, nil, err
	}
	// Restore the attempt's question order; the repository sorts by bank order.
	byID := make(map[uint]model.AssessmentQuestion, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	ordered := make([]model.AssessmentQuestion, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}

	return attempt, ordered, answers, nil
}

func toAttemptQuestions(questions []model.AssessmentQuestion) []AttemptQuestion {
	out := make([]AttemptQuestion, len(questions))
	for i, q := range questions {
		out[i] = AttemptQuestion{
			ID:       q.ID,
			Question: q.Question,
			Options:  q.OptionList(),
			Subject:  q.Subject,
			Topic:    q.Topic,
		}
	}
	return out
}

func scoreRecommendations(percentage float64, subject string) []string {
	if percentage < 50 {
		return []string{
			fmt.Sprintf("Focus on %s fundamentals", subject),
			"Practice basic concepts daily",
			"Consider additional study resources",
		}
	}
	if percentage < 80 {
		return []string{
			fmt.Sprintf("Build on your %s foundation", subject),
			"Practice intermediate level problems",
			"Review concepts you found challenging",
		}
	}
	return []string{
		fmt.Sprintf("Excellent work in %s!", subject),
		"Challenge yourself with advanced topics",
		"Consider helping others or teaching concepts",
	}
}
