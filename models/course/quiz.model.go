package course

import "gorm.io/gorm"

// QuizAttempt represents a learner's attempt at a course quiz
type QuizAttempt struct {
	gorm.Model
	LearnerID     string `json:"learner_id" gorm:"index;not null"`
	CourseID      uint   `json:"course_id" gorm:"index;not null"`
	Score         int    `json:"score"`     // Score achieved (0-100)
	MaxScore      int    `json:"max_score"` // Maximum possible score
	Passed        bool   `json:"passed" gorm:"default:false"`
	AttemptNumber int    `json:"attempt_number" gorm:"default:1"`
	IsDeleted     bool   `gorm:"default:false"`
}
