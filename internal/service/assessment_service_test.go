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

// correct option index per seeded bank question, in bank order
var bankAnswers = []int{0, 3, 0, 1, 1}

func newAssessmentService(t *testing.T) (*AssessmentService, *model.User) {
	t.Helper()
	db := newTestDB(t)
	user := seedUser(t, db)
	return NewAssessmentService(repository.NewAssessmentRepository(db), nil), user
}

func TestStartAttemptGeneralUsesWholeBank(t *testing.T) {
	svc, user := newAssessmentService(t)

	result, err := svc.StartAttempt(user.ID, model.SubjectGeneral)
	require.NoError(t, err)

	assert.NotEmpty(t, result.AttemptID)
	assert.Len(t, result.Questions, 5)
	for _, q := range result.Questions {
		assert.NotEmpty(t, q.Options)
	}
}

func TestStartAttemptFiltersBySubject(t *testing.T) {
	svc, user := newAssessmentService(t)

	result, err := svc.StartAttempt(user.ID, "Mathematics")
	require.NoError(t, err)

	assert.Len(t, result.Questions, 2)
	for _, q := range result.Questions {
		assert.Equal(t, "Mathematics", q.Subject)
	}
}

func TestStartAttemptUnknownSubject(t *testing.T) {
	svc, user := newAssessmentService(t)

	_, err := svc.StartAttempt(user.ID, "Philosophy")
	assert.ErrorIs(t, err, util.ErrNoQuestionsForSubject)
}

func TestAnswerValidation(t *testing.T) {
	svc, user := newAssessmentService(t)

	result, err := svc.StartAttempt(user.ID, model.SubjectGeneral)
	require.NoError(t, err)
	id := result.AttemptID

	assert.ErrorIs(t, svc.Answer(user.ID, id, -1, 0), util.ErrQuestionOutOfRange)
	assert.ErrorIs(t, svc.Answer(user.ID, id, 5, 0), util.ErrQuestionOutOfRange)
	assert.ErrorIs(t, svc.Answer(user.ID, id, 0, -1), util.ErrNoAnswerSelected)
	assert.ErrorIs(t, svc.Answer(user.ID, id, 0, 4), util.ErrAnswerOutOfRange)

	assert.ErrorIs(t, svc.Answer(user.ID, "missing", 0, 0), util.ErrAttemptNotFound)
	// another user's attempt looks like a missing one
	assert.ErrorIs(t, svc.Answer(user.ID+1, id, 0, 0), util.ErrAttemptNotFound)

	assert.NoError(t, svc.Answer(user.ID, id, 0, 2))
	// answers may be revised before submit
	assert.NoError(t, svc.Answer(user.ID, id, 0, 0))
}

func TestSubmitRejectsUnanswered(t *testing.T) {
	svc, user := newAssessmentService(t)

	result, err := svc.StartAttempt(user.ID, model.SubjectGeneral)
	require.NoError(t, err)

	require.NoError(t, svc.Answer(user.ID, result.AttemptID, 0, 0))

	_, err = svc.Submit(user.ID, result.AttemptID)
	assert.ErrorIs(t, err, util.ErrUnansweredQuestion)
}

func TestSubmitScoresAndPersists(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	svc := NewAssessmentService(repository.NewAssessmentRepository(db), nil)

	result, err := svc.StartAttempt(user.ID, model.SubjectGeneral)
	require.NoError(t, err)

	for i, correct := range bankAnswers {
		require.NoError(t, svc.Answer(user.ID, result.AttemptID, i, correct))
	}

	submit, err := svc.Submit(user.ID, result.AttemptID)
	require.NoError(t, err)

	assert.Equal(t, 5, submit.Score)
	assert.Equal(t, 5, submit.TotalQuestions)
	assert.InDelta(t, 100.0, submit.Percentage, 1e-9)
	assert.Equal(t, model.DifficultyAdvanced, submit.DifficultyLevel)
	// instant submit with a perfect score
	assert.Equal(t, model.StyleQuickLearner, submit.LearningStyle)
	assert.Contains(t, submit.Recommendations[0], "Excellent work")

	var row model.Assessment
	require.NoError(t, db.Where("id = ?", submit.AssessmentID).First(&row).Error)
	assert.Equal(t, user.ID, row.UserID)
	assert.Equal(t, 5, row.Score)

	// the attempt is closed
	_, err = svc.Submit(user.ID, result.AttemptID)
	assert.ErrorIs(t, err, util.ErrAttemptCompleted)
}

func TestSubmitDifficultyBoundaries(t *testing.T) {
	cases := []struct {
		name     string
		correct  int
		level    string
		style    string
		firstRec string
	}{
		{"3 of 5 is intermediate", 3, model.DifficultyIntermediate, model.StyleBalanced, "Build on your General foundation"},
		{"4 of 5 is advanced", 4, model.DifficultyAdvanced, model.StyleQuickLearner, "Excellent work in General!"},
		{"2 of 5 is beginner", 2, model.DifficultyBeginner, model.StyleBalanced, "Focus on General fundamentals"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, user := newAssessmentService(t)

			result, err := svc.StartAttempt(user.ID, model.SubjectGeneral)
			require.NoError(t, err)

			for i := range bankAnswers {
				answer := bankAnswers[i]
				if i >= tc.correct {
					answer = (bankAnswers[i] + 1) % 4
				}
				require.NoError(t, svc.Answer(user.ID, result.AttemptID, i, answer))
			}

			submit, err := svc.Submit(user.ID, result.AttemptID)
			require.NoError(t, err)
			assert.Equal(t, tc.correct, submit.Score)
			assert.Equal(t, tc.level, submit.DifficultyLevel)
			assert.Equal(t, tc.style, submit.LearningStyle)
			assert.Equal(t, tc.firstRec, submit.Recommendations[0])
		})
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	svc := NewAssessmentService(repository.NewAssessmentRepository(db), nil)

	seedAssessment(t, db, user.ID, "Mathematics", 3, 5, 48*time.Hour)
	seedAssessment(t, db, user.ID, "Physics", 4, 5, 0)

	history, err := svc.History(user.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Physics", history[0].Subject)

	limited, err := svc.History(user.ID, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
