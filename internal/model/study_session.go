package model

import "time"

// swagger:model StudySession
type StudySession struct {
	UUIDBase
	UserID      uint      `gorm:"index" json:"userId"`
	Subject     string    `gorm:"size:100;not null" json:"subject"`
	Duration    int       `gorm:"default:0" json:"duration"` // minutes
	ScheduledAt time.Time `json:"scheduledAt"`
	Completed   bool      `gorm:"default:false" json:"completed"`
	Notes       string    `gorm:"type:text" json:"notes"`
}

func (StudySession) TableName() string {
	return "study_sessions"
}
