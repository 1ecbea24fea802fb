package model

import (
	"encoding/json"
	"time"
)

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

const (
	StyleQuickLearner = "quick_learner"
	StyleThorough     = "thorough"
	StyleBalanced     = "balanced"
)

// SubjectGeneral selects the full question bank instead of a single subject.
const SubjectGeneral = "General"

// Assessment is one completed quiz. Rows are immutable after insert.
// swagger:model Assessment
type Assessment struct {
	UUIDBase
	UserID          uint      `gorm:"index" json:"userId"`
	Subject         string    `gorm:"size:100;not null" json:"subject"`
	Score           int       `gorm:"not null" json:"score"`
	TotalQuestions  int       `gorm:"not null" json:"totalQuestions"`
	DifficultyLevel string    `gorm:"size:20;not null" json:"difficultyLevel"`
	LearningStyle   string    `gorm:"size:20;not null" json:"learningStyle"`
	CompletedAt     time.Time `json:"completedAt"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// Normalized returns score/totalQuestions, guarding the empty quiz.
func (a *Assessment) Normalized() float64 {
	if a.TotalQuestions == 0 {
		return 0
	}
	return float64(a.Score) / float64(a.TotalQuestions)
}

// AssessmentQuestion is one entry of the fixed question bank.
// swagger:model AssessmentQuestion
type AssessmentQuestion struct {
	BaseModel
	Question      string          `gorm:"type:text;not null" json:"question"`
	Options       json.RawMessage `gorm:"type:json" json:"options"` // JSON: []string
	CorrectAnswer int             `gorm:"not null" json:"-"`        // index into Options
	Subject       string          `gorm:"size:100;index;not null" json:"subject"`
	Difficulty    string          `gorm:"size:20" json:"difficulty"`
	Topic         string          `gorm:"size:100" json:"topic"`
	Order         int             `gorm:"default:0" json:"order"`
}

func (AssessmentQuestion) TableName() string {
	return "assessment_questions"
}

// OptionList decodes the stored options array.
func (q *AssessmentQuestion) OptionList() []string {
	var opts []string
	_ = json.Unmarshal(q.Options, &opts)
	return opts
}

// AssessmentAttempt tracks an in-flight quiz: the selected questions and the
// answer index recorded so far for each (-1 = not answered yet).
type AssessmentAttempt struct {
	UUIDBase
	UserID      uint            `gorm:"index" json:"userId"`
	Subject     string          `gorm:"size:100;not null" json:"subject"`
	QuestionIDs json.RawMessage `gorm:"type:json" json:"questionIds"` // JSON: []uint
	Answers     json.RawMessage `gorm:"type:json" json:"answers"`     // JSON: []int
	StartedAt   time.Time       `json:"startedAt"`
	Completed   bool            `gorm:"default:false" json:"completed"`
}

func (AssessmentAttempt) TableName() string {
	return "assessment_attempts"
}
