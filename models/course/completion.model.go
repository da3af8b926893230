package course

import (
	"time"

	"gorm.io/gorm"
)

// LessonCompletion tracks a learner's accumulated engagement with one lesson.
// At most one record exists per (learner, lesson) pair, enforced by
// lookup-before-insert. The learner id is an identity string that may belong
// to either the student or the customer identity space.
type LessonCompletion struct {
	gorm.Model
	LearnerID        string     `json:"learner_id" gorm:"index;not null"`
	LessonID         uint       `json:"lesson_id" gorm:"index;not null"`
	CourseID         uint       `json:"course_id" gorm:"index;not null"`
	WatchTimeSeconds int        `json:"watch_time_seconds" gorm:"default:0"`
	LastWatchedAt    time.Time  `json:"last_watched_at"`
	IsCompleted      bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt      *time.Time `json:"completed_at"`
	IsDeleted        bool       `gorm:"default:false"`
}
