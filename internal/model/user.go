package model

import (
	"encoding/json"
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Email         string          `gorm:"size:100;unique;not null" json:"email"`
	Password      string          `gorm:"size:100;not null" json:"-"`
	FullName      string          `gorm:"size:100;not null" json:"fullName"`
	GradeLevel    string          `gorm:"size:50" json:"gradeLevel"`
	LearningGoals json.RawMessage `gorm:"type:json" json:"learningGoals"` // JSON: []string
	Role          UserRole        `gorm:"size:20;default:'student'" json:"role"`
	Avatar        string          `gorm:"size:255" json:"avatar"`
	LastLogin     time.Time       `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// LearningGoalList decodes the stored goal set, tolerating an empty column.
func (u *User) LearningGoalList() []string {
	if len(u.LearningGoals) == 0 {
		return nil
	}
	var goals []string
	if err := json.Unmarshal(u.LearningGoals, &goals); err != nil {
		return nil
	}
	return goals
}
