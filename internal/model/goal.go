package model

import "time"

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalAbandoned GoalStatus = "abandoned"
)

// swagger:model SmartGoal
type SmartGoal struct {
	UUIDBase
	UserID      uint       `gorm:"index" json:"userId"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	TargetDate  time.Time  `json:"targetDate"`
	Progress    int        `gorm:"default:0" json:"progress"` // 0-100
	Status      GoalStatus `gorm:"size:20;default:'active'" json:"status"`
}

func (SmartGoal) TableName() string {
	return "smart_goals"
}
