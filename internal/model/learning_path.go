package model

import "encoding/json"

const (
	PathSourceAI       = "ai"
	PathSourceFallback = "fallback"
)

// LearningPath is one generated study plan or learning path row.
// swagger:model LearningPath
type LearningPath struct {
	UUIDBase
	UserID            uint            `gorm:"index" json:"userId"`
	Title             string          `gorm:"size:255;not null" json:"title"`
	Description       string          `gorm:"type:text" json:"description"`
	Subjects          json.RawMessage `gorm:"type:json" json:"subjects"` // JSON: []string, ordered
	DifficultyLevel   string          `gorm:"size:20" json:"difficultyLevel"`
	EstimatedDuration int             `gorm:"default:0" json:"estimatedDuration"`
	Progress          int             `gorm:"default:0" json:"progress"` // 0-100
	Source            string          `gorm:"size:20;default:'ai'" json:"source"`
}

func (LearningPath) TableName() string {
	return "learning_paths"
}

// SubjectList decodes the ordered subject list.
func (p *LearningPath) SubjectList() []string {
	var subjects []string
	_ = json.Unmarshal(p.Subjects, &subjects)
	return subjects
}
