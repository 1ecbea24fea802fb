package service

import (
	"eklavya_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func assessmentWithScore(subject string, score, total int) model.Assessment {
	return model.Assessment{Subject: subject, Score: score, TotalQuestions: total}
}

func TestPrioritizeSubjects(t *testing.T) {
	history := []model.Assessment{
		assessmentWithScore("Mathematics", 59, 100),
		assessmentWithScore("Physics", 60, 100),
		assessmentWithScore("Chemistry", 79, 100),
		assessmentWithScore("Biology", 80, 100),
	}

	result := PrioritizeSubjects(history, []string{"Mathematics", "Physics", "Chemistry", "Biology", "History"})

	assert.Equal(t, "high", result[0].Priority)
	assert.Equal(t, 40, result[0].AllocatedHours)

	assert.Equal(t, "medium", result[1].Priority)
	assert.Equal(t, 25, result[1].AllocatedHours)

	assert.Equal(t, "medium", result[2].Priority)

	assert.Equal(t, "low", result[3].Priority)
	assert.Equal(t, 15, result[3].AllocatedHours)

	// no history defaults to 0.5 -> high
	assert.Equal(t, "high", result[4].Priority)
	assert.InDelta(t, 0.5, result[4].CurrentLevel, 1e-9)
}

func TestPrioritizeSubjectsAveragesPerSubject(t *testing.T) {
	history := []model.Assessment{
		assessmentWithScore("Physics", 2, 10),
		assessmentWithScore("Physics", 10, 10),
	}

	result := PrioritizeSubjects(history, []string{"Physics"})
	assert.InDelta(t, 0.6, result[0].CurrentLevel, 1e-9)
	assert.Equal(t, "medium", result[0].Priority)
}

func TestIdentifyWeakAreas(t *testing.T) {
	assert.Empty(t, IdentifyWeakAreas(nil))

	history := []model.Assessment{
		assessmentWithScore("Mathematics", 9, 10),
		assessmentWithScore("Mathematics", 5, 10), // worst 0.5
		assessmentWithScore("Physics", 6, 10),     // worst 0.6, not weak
	}
	assert.Equal(t, []string{"Mathematics"}, IdentifyWeakAreas(history))
}

func TestOptimalDuration(t *testing.T) {
	assert.Equal(t, 100, OptimalDuration(nil))

	cases := []struct {
		name  string
		score int
		want  int
	}{
		{"low average scales up", 65, 150},
		{"high average scales down", 90, 80},
		{"middle stays flat", 75, 100},
		{"exactly 0.70 stays flat", 70, 100},
		{"exactly 0.85 stays flat", 85, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			history := []model.Assessment{assessmentWithScore("Mathematics", tc.score, 100)}
			assert.Equal(t, tc.want, OptimalDuration(history))
		})
	}
}

func TestGenerateDailySchedule(t *testing.T) {
	s := GenerateDailySchedule(3)
	assert.Equal(t, 2, s.SessionsPerDay)
	assert.Equal(t, 90, s.SessionLength)
	assert.Equal(t, 15, s.BreakTime)
	assert.Equal(t, []string{"09:00-10:30", "11:00-12:30"}, s.OptimalTimes)

	// capped at 4 sessions
	s = GenerateDailySchedule(10)
	assert.Equal(t, 4, s.SessionsPerDay)
	assert.Equal(t, 150, s.SessionLength)

	// never below one session
	s = GenerateDailySchedule(1)
	assert.Equal(t, 1, s.SessionsPerDay)
	assert.Equal(t, 60, s.SessionLength)
}

func TestDetermineDifficultyLevel(t *testing.T) {
	assert.Equal(t, model.DifficultyBeginner, DetermineDifficultyLevel(nil))

	// thresholds here are 0.5/0.75, not the quiz labeling's 60/80 percent
	low := []model.Assessment{assessmentWithScore("Mathematics", 49, 100)}
	assert.Equal(t, model.DifficultyBeginner, DetermineDifficultyLevel(low))

	mid := []model.Assessment{assessmentWithScore("Mathematics", 60, 100)}
	assert.Equal(t, model.DifficultyIntermediate, DetermineDifficultyLevel(mid))

	high := []model.Assessment{assessmentWithScore("Mathematics", 75, 100)}
	assert.Equal(t, model.DifficultyAdvanced, DetermineDifficultyLevel(high))
}

func TestStudyRecommendations(t *testing.T) {
	recs := StudyRecommendations(nil, nil)
	assert.Len(t, recs, 3)

	visual := []model.Assessment{{Subject: "Mathematics", LearningStyle: "visual", Score: 5, TotalQuestions: 10}}
	recs = StudyRecommendations(visual, []string{"jee-prep"})
	assert.Contains(t, recs, "Use visual aids and diagrams for better understanding")
	assert.Contains(t, recs, "Focus on problem-solving techniques and time management")
}

func TestCreateMilestones(t *testing.T) {
	target := time.Now().Add(4 * 7 * 24 * time.Hour)
	milestones := CreateMilestones(target, []string{"Mathematics", "Physics"})

	assert.Len(t, milestones, 2)
	assert.Equal(t, "Mathematics", milestones[0].Subject)
	assert.Equal(t, 2, milestones[0].TargetWeek)
	assert.Equal(t, 4, milestones[1].TargetWeek)
	assert.True(t, milestones[0].AssessmentRequired)

	// past target date collapses to a single week
	past := CreateMilestones(time.Now().Add(-time.Hour), []string{"Chemistry"})
	assert.Equal(t, 1, past[0].TargetWeek)
}
