package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses. Completed is monotonic: the recompute path never
// downgrades it back to active.
const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
)

// Enrollment tracks a learner's standing in a course. Created by the
// enrollment workflow; the progress engine only patches it.
type Enrollment struct {
	gorm.Model
	CourseID             uint       `json:"course_id" gorm:"index;not null"`
	LearnerID            string     `json:"learner_id" gorm:"index;not null"`
	Status               string     `json:"status" gorm:"default:'active'"`
	CompletionPercentage int        `json:"completion_percentage" gorm:"default:0"` // 0-100
	EnrolledAt           time.Time  `json:"enrolled_at"`
	CompletedAt          *time.Time `json:"completed_at"`
	LastViewedLessonID   *uint      `json:"last_viewed_lesson_id"`
	IsDeleted            bool       `gorm:"default:false"`
}
