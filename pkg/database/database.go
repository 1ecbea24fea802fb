package database

import (
	"eklavya_backend/internal/config"
	"eklavya_backend/internal/model"
	"encoding/json"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB connects and, unless migrations are skipped (release mode without
// -migrate), auto-migrates the schema and seeds the question bank.
func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !migrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Assessment{},
		&model.AssessmentQuestion{},
		&model.AssessmentAttempt{},
		&model.LearningPath{},
		&model.SmartGoal{},
		&model.StudySession{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := SeedQuestionBank(db); err != nil {
		return nil, err
	}

	return db, nil
}

// SeedQuestionBank inserts the default assessment question bank when the table
// is empty. Content versioning of the bank lives outside this service.
func SeedQuestionBank(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.AssessmentQuestion{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	type bankEntry struct {
		question   string
		options    []string
		correct    int
		subject    string
		difficulty string
		topic      string
	}

	bank := []bankEntry{
		{
			question:   "What is the derivative of x²?",
			options:    []string{"2x", "x", "2", "x²"},
			correct:    0,
			subject:    "Mathematics",
			difficulty: model.DifficultyBeginner,
			topic:      "Calculus",
		},
		{
			question:   "Which of the following is NOT a fundamental force in physics?",
			options:    []string{"Gravitational", "Electromagnetic", "Nuclear", "Centrifugal"},
			correct:    3,
			subject:    "Physics",
			difficulty: model.DifficultyIntermediate,
			topic:      "Forces",
		},
		{
			question:   "What is the chemical formula for water?",
			options:    []string{"H2O", "CO2", "NaCl", "CH4"},
			correct:    0,
			subject:    "Chemistry",
			difficulty: model.DifficultyBeginner,
			topic:      "Basic Chemistry",
		},
		{
			question:   "If f(x) = 2x + 3, what is f(5)?",
			options:    []string{"10", "13", "8", "15"},
			correct:    1,
			subject:    "Mathematics",
			difficulty: model.DifficultyBeginner,
			topic:      "Functions",
		},
		{
			question:   "What is the SI unit of electric current?",
			options:    []string{"Volt", "Ampere", "Ohm", "Watt"},
			correct:    1,
			subject:    "Physics",
			difficulty: model.DifficultyBeginner,
			topic:      "Electricity",
		},
	}

	for i, e := range bank {
		opts, err := json.Marshal(e.options)
		if err != nil {
			return err
		}
		q := &model.AssessmentQuestion{
			Question:      e.question,
			Options:       opts,
			CorrectAnswer: e.correct,
			Subject:       e.subject,
			Difficulty:    e.difficulty,
			Topic:         e.topic,
			Order:         i + 1,
		}
		if err := db.Create(q).Error; err != nil {
			return err
		}
	}

	return nil
}
