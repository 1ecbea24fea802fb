package service

import (
	"eklavya_backend/internal/model"
	"fmt"
	"math"
	"time"
)

// Pure scoring and recommendation helpers over already-loaded assessment rows.
// The thresholds deliberately differ between functions; each carries its own
// boundary semantics and they are pinned by tests. Do not unify.

type SubjectPriority struct {
	Name           string  `json:"name"`
	Priority       string  `json:"priority"` // high, medium, low
	AllocatedHours int     `json:"allocatedHours"`
	CurrentLevel   float64 `json:"currentLevel"`
}

// PrioritizeSubjects maps each requested subject to a priority tier and an
// hour allocation from its average normalized score. Subjects with no history
// default to 0.5.
func PrioritizeSubjects(assessments []model.Assessment, requested []string) []SubjectPriority {
	subjectScores := make(map[string][]float64)
	for i := range assessments {
		a := &assessments[i]
		subjectScores[a.Subject] = append(subjectScores[a.Subject], a.Normalized())
	}

	result := make([]SubjectPriority, len(requested))
	for i, subject := range requested {
		scores := subjectScores[subject]
		if len(scores) == 0 {
			scores = []float64{0.5}
		}
		sum := 0.0
		for _, s := range scores {
			sum += s
		}
		avg := sum / float64(len(scores))

		priority := "low"
		hours := 15
		switch {
		case avg < 0.6:
			priority = "high"
			hours = 40
		case avg < 0.8:
			priority = "medium"
			hours = 25
		}

		result[i] = SubjectPriority{
			Name:           subject,
			Priority:       priority,
			AllocatedHours: hours,
			CurrentLevel:   avg,
		}
	}
	return result
}

// IdentifyWeakAreas returns the subjects whose worst observed normalized score
// is below 0.6. Empty history yields an empty slice.
func IdentifyWeakAreas(assessments []model.Assessment) []string {
	worst := make(map[string]float64)
	order := make([]string, 0)
	for i := range assessments {
		a := &assessments[i]
		score := a.Normalized()
		if prev, ok := worst[a.Subject]; !ok || prev > score {
			if !ok {
				order = append(order, a.Subject)
			}
			worst[a.Subject] = score
		}
	}

	weak := make([]string, 0)
	for _, subject := range order {
		if worst[subject] < 0.6 {
			weak = append(weak, subject)
		}
	}
	return weak
}

// OptimalDuration estimates total study hours: a base of 100 scaled by the
// global average score. Exactly 0.7 and 0.85 take the neutral factor.
func OptimalDuration(assessments []model.Assessment) int {
	const baseHours = 100
	if len(assessments) == 0 {
		return baseHours
	}

	sum := 0.0
	for i := range assessments {
		sum += assessments[i].Normalized()
	}
	avg := sum / float64(len(assessments))

	adjustment := 1.0
	if avg < 0.7 {
		adjustment = 1.5
	} else if avg > 0.85 {
		adjustment = 0.8
	}
	return int(math.Round(baseHours * adjustment))
}

type DailySchedule struct {
	SessionsPerDay     int      `json:"sessionsPerDay"`
	SessionLength      int      `json:"sessionLength"` // minutes
	BreakTime          int      `json:"breakTime"`
	OptimalTimes       []string `json:"optimalTimes"`
	AdaptiveScheduling bool     `json:"adaptiveScheduling"`
}

// GenerateDailySchedule shapes study hours into at most 4 sessions of at
// least 1.5 hours each.
func GenerateDailySchedule(studyHours float64) DailySchedule {
	sessions := int(math.Min(math.Floor(studyHours/1.5), 4))
	if sessions < 1 {
		sessions = 1
	}
	sessionLength := int(math.Floor(studyHours * 60 / float64(sessions)))

	slots := []string{"09:00-10:30", "11:00-12:30", "14:00-15:30", "16:00-17:30"}

	return DailySchedule{
		SessionsPerDay:     sessions,
		SessionLength:      sessionLength,
		BreakTime:          15,
		OptimalTimes:       slots[:sessions],
		AdaptiveScheduling: true,
	}
}

// DetermineDifficultyLevel labels the overall history. Thresholds differ from
// the per-quiz labeling in the assessment engine (0.5/0.75 vs 60/80 percent).
func DetermineDifficultyLevel(assessments []model.Assessment) string {
	if len(assessments) == 0 {
		return model.DifficultyBeginner
	}
	sum := 0.0
	for i := range assessments {
		sum += assessments[i].Normalized()
	}
	avg := sum / float64(len(assessments))

	switch {
	case avg < 0.5:
		return model.DifficultyBeginner
	case avg < 0.75:
		return model.DifficultyIntermediate
	default:
		return model.DifficultyAdvanced
	}
}

// StudyRecommendations builds textual advice from history and stated goals.
func StudyRecommendations(assessments []model.Assessment, learningGoals []string) []string {
	recommendations := []string{
		"Focus on weak areas identified in recent assessments",
		"Practice daily for consistent improvement",
		"Use spaced repetition for better retention",
	}

	for i := range assessments {
		if assessments[i].LearningStyle == "visual" {
			recommendations = append(recommendations, "Use visual aids and diagrams for better understanding")
			break
		}
	}

	for _, goal := range learningGoals {
		if goal == "jee-prep" {
			recommendations = append(recommendations, "Focus on problem-solving techniques and time management")
			break
		}
	}

	return recommendations
}

type Milestone struct {
	Subject            string `json:"subject"`
	TargetWeek         int    `json:"targetWeek"`
	Description        string `json:"description"`
	AssessmentRequired bool   `json:"assessmentRequired"`
}

// CreateMilestones spreads the subjects over the weeks until targetDate.
func CreateMilestones(targetDate time.Time, subjects []string) []Milestone {
	totalWeeks := int(math.Ceil(time.Until(targetDate).Hours() / (24 * 7)))
	if totalWeeks < 1 {
		totalWeeks = 1
	}

	milestones := make([]Milestone, len(subjects))
	for i, subject := range subjects {
		milestones[i] = Milestone{
			Subject:            subject,
			TargetWeek:         int(math.Ceil(float64(i+1) * float64(totalWeeks) / float64(len(subjects)))),
			Description:        fmt.Sprintf("Master core concepts of %s", subject),
			AssessmentRequired: true,
		}
	}
	return milestones
}
