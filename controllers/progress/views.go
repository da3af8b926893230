package controllers

import (
	"errors"
	"math"
	"time"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// LessonProgress is one lesson's completion state within a progress view.
// Lessons without a ledger record report zero watched seconds.
type LessonProgress struct {
	LessonID        uint   `json:"lesson_id"`
	Title           string `json:"title"`
	IsCompleted     bool   `json:"is_completed"`
	WatchedSeconds  int    `json:"watched_seconds"`
	DurationSeconds int    `json:"duration_seconds"`
}

// ChapterProgress summarizes a chapter's lessons for one learner
type ChapterProgress struct {
	ChapterID        uint             `json:"chapter_id"`
	Title            string           `json:"title"`
	TotalLessons     int              `json:"total_lessons"`
	CompletedLessons int              `json:"completed_lessons"`
	Percentage       int              `json:"percentage"`
	Lessons          []LessonProgress `json:"lessons"`
}

// EnrollmentProgress is the detailed per-course progress view
type EnrollmentProgress struct {
	Exists               bool              `json:"exists"`
	EnrollmentID         uint              `json:"enrollment_id,omitempty"`
	Status               string            `json:"status,omitempty"`
	CompletionPercentage int               `json:"completion_percentage"`
	EnrolledAt           time.Time         `json:"enrolled_at,omitempty"`
	CompletedAt          *time.Time        `json:"completed_at,omitempty"`
	LastViewedLessonID   *uint             `json:"last_viewed_lesson_id,omitempty"`
	Chapters             []ChapterProgress `json:"chapters_progress,omitempty"`
}

// LearnerStats aggregates across all of a learner's enrollments
type LearnerStats struct {
	TotalCoursesEnrolled     int `json:"total_courses_enrolled"`
	CompletedCourses         int `json:"completed_courses"`
	InProgressCourses        int `json:"in_progress_courses"`
	TotalWatchTimeSeconds    int `json:"total_watch_time_seconds"`
	TotalWatchTimeHours      int `json:"total_watch_time_hours"`
	CertificatesEarned       int `json:"certificates_earned"`
	AverageCompletionPercent int `json:"average_completion_percent"`
}

// CustomerCourseProgress is one purchased course's progress in the
// customer-facing library view
type CustomerCourseProgress struct {
	CourseID           uint             `json:"course_id"`
	CourseTitle        string           `json:"course_title"`
	ProgressPercent    int              `json:"progress_percent"`
	Status             string           `json:"status"`
	TotalWatchSeconds  int              `json:"total_watch_seconds"`
	BestQuizScore      *int             `json:"best_quiz_score"`
	Lessons            []LessonProgress `json:"lessons"`
	CompletedLessonIDs []uint           `json:"completed_lesson_ids"`
	PendingLessonIDs   []uint           `json:"pending_lesson_ids"`
}

// CourseEnrollmentStats is the admin aggregate for one course
type CourseEnrollmentStats struct {
	TotalEnrolled   int `json:"total_enrolled"`
	ActiveEnrolled  int `json:"active_enrolled"`
	Completed       int `json:"completed"`
	AverageProgress int `json:"average_progress"`
}

// GetEnrollmentProgress builds the per-chapter progress breakdown for one
// learner in one course. Pure read, no side effects.
func GetEnrollmentProgress(courseID uint, learnerID string) (*EnrollmentProgress, error) {
	db := database.Database.Db

	var enrollment courseModels.Enrollment
	err := db.Where("course_id = ? AND learner_id = ? AND is_deleted = ?", courseID, learnerID, false).
		First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &EnrollmentProgress{Exists: false}, nil
		}
		return nil, err
	}

	var chapters []courseModels.Chapter
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&chapters).Error; err != nil {
		return nil, err
	}

	var lessons []courseModels.Lesson
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&lessons).Error; err != nil {
		return nil, err
	}

	var completions []courseModels.LessonCompletion
	if err := db.Where("learner_id = ? AND course_id = ? AND is_deleted = ?", learnerID, courseID, false).
		Find(&completions).Error; err != nil {
		return nil, err
	}

	completionByLesson := make(map[uint]courseModels.LessonCompletion, len(completions))
	for _, c := range completions {
		completionByLesson[c.LessonID] = c
	}

	chaptersProgress := make([]ChapterProgress, len(chapters))
	for i, chapter := range chapters {
		cp := ChapterProgress{
			ChapterID: chapter.ID,
			Title:     chapter.Title,
			Lessons:   []LessonProgress{},
		}

		for _, lesson := range lessons {
			if lesson.ChapterID != chapter.ID {
				continue
			}
			lp := LessonProgress{
				LessonID:        lesson.ID,
				Title:           lesson.Title,
				DurationSeconds: lesson.DurationSeconds,
			}
			if completion, ok := completionByLesson[lesson.ID]; ok {
				lp.IsCompleted = completion.IsCompleted
				lp.WatchedSeconds = completion.WatchTimeSeconds
			}
			if lp.IsCompleted {
				cp.CompletedLessons++
			}
			cp.TotalLessons++
			cp.Lessons = append(cp.Lessons, lp)
		}

		if cp.TotalLessons > 0 {
			cp.Percentage = int(math.Round(float64(cp.CompletedLessons) / float64(cp.TotalLessons) * 100))
		}
		chaptersProgress[i] = cp
	}

	return &EnrollmentProgress{
		Exists:               true,
		EnrollmentID:         enrollment.ID,
		Status:               enrollment.Status,
		CompletionPercentage: enrollment.CompletionPercentage,
		EnrolledAt:           enrollment.EnrolledAt,
		CompletedAt:          enrollment.CompletedAt,
		LastViewedLessonID:   enrollment.LastViewedLessonID,
		Chapters:             chaptersProgress,
	}, nil
}

// GetLearnerStats aggregates enrollments, watch time and certificates across
// every course a learner touched.
func GetLearnerStats(learnerID string) (*LearnerStats, error) {
	db := database.Database.Db

	var enrollments []courseModels.Enrollment
	if err := db.Where("learner_id = ? AND is_deleted = ?", learnerID, false).
		Find(&enrollments).Error; err != nil {
		return nil, err
	}

	var completions []courseModels.LessonCompletion
	if err := db.Where("learner_id = ? AND is_deleted = ?", learnerID, false).
		Find(&completions).Error; err != nil {
		return nil, err
	}

	stats := &LearnerStats{TotalCoursesEnrolled: len(enrollments)}

	totalPercent := 0
	for _, e := range enrollments {
		switch e.Status {
		case courseModels.EnrollmentCompleted:
			stats.CompletedCourses++
		case courseModels.EnrollmentActive:
			stats.InProgressCourses++
		}
		totalPercent += e.CompletionPercentage
	}

	for _, c := range completions {
		stats.TotalWatchTimeSeconds += c.WatchTimeSeconds
	}
	stats.TotalWatchTimeHours = int(math.Round(float64(stats.TotalWatchTimeSeconds) / 3600))

	identity := ResolveLearner(learnerID)
	if identity.IsStudent {
		var certificateCount int64
		db.Model(&courseModels.Certificate{}).
			Where("student_id = ? AND is_deleted = ?", identity.StudentID, false).
			Count(&certificateCount)
		stats.CertificatesEarned = int(certificateCount)
	}

	if len(enrollments) > 0 {
		stats.AverageCompletionPercent = int(math.Round(float64(totalPercent) / float64(len(enrollments))))
	}

	return stats, nil
}

// GetCustomerCourseProgress joins a customer's course purchases to catalog,
// enrollment, ledger and quiz data. Display-only: it recomputes nothing and
// triggers no writes. When no enrollment aggregate exists the purchase's own
// mirrored percentage is shown instead.
func GetCustomerCourseProgress(customerID uint) ([]CustomerCourseProgress, error) {
	db := database.Database.Db
	learnerID := LearnerIDForCustomer(customerID)

	var purchases []models.CustomerPurchase
	if err := db.Where("customer_id = ? AND product_type = ? AND is_deleted = ?",
		customerID, models.ProductTypeCourse, false).Find(&purchases).Error; err != nil {
		return nil, err
	}

	result := make([]CustomerCourseProgress, 0, len(purchases))

	for _, purchase := range purchases {
		var course courseModels.Course
		if err := db.Where("id = ? AND is_deleted = ?", purchase.ProductID, false).
			First(&course).Error; err != nil {
			continue
		}

		var lessons []courseModels.Lesson
		db.Where("course_id = ? AND is_deleted = ?", course.ID, false).
			Order("order_index asc").Find(&lessons)

		var completions []courseModels.LessonCompletion
		db.Where("learner_id = ? AND course_id = ? AND is_deleted = ?", learnerID, course.ID, false).
			Find(&completions)

		completionByLesson := make(map[uint]courseModels.LessonCompletion, len(completions))
		totalWatch := 0
		for _, c := range completions {
			completionByLesson[c.LessonID] = c
			totalWatch += c.WatchTimeSeconds
		}

		entry := CustomerCourseProgress{
			CourseID:           course.ID,
			CourseTitle:        course.Title,
			TotalWatchSeconds:  totalWatch,
			Lessons:            []LessonProgress{},
			CompletedLessonIDs: []uint{},
			PendingLessonIDs:   []uint{},
		}

		var enrollment courseModels.Enrollment
		err := db.Where("course_id = ? AND learner_id = ? AND is_deleted = ?", course.ID, learnerID, false).
			First(&enrollment).Error
		if err == nil {
			entry.ProgressPercent = enrollment.CompletionPercentage
			entry.Status = enrollment.Status
		} else {
			entry.ProgressPercent = purchase.ProgressPercent
		}

		for _, lesson := range lessons {
			lp := LessonProgress{
				LessonID:        lesson.ID,
				Title:           lesson.Title,
				DurationSeconds: lesson.DurationSeconds,
			}
			if completion, ok := completionByLesson[lesson.ID]; ok {
				lp.IsCompleted = completion.IsCompleted
				lp.WatchedSeconds = completion.WatchTimeSeconds
			}
			entry.Lessons = append(entry.Lessons, lp)
			if lp.IsCompleted {
				entry.CompletedLessonIDs = append(entry.CompletedLessonIDs, lesson.ID)
			} else {
				entry.PendingLessonIDs = append(entry.PendingLessonIDs, lesson.ID)
			}
		}

		var attempts []courseModels.QuizAttempt
		db.Where("learner_id = ? AND course_id = ? AND is_deleted = ?", learnerID, course.ID, false).
			Find(&attempts)
		for _, attempt := range attempts {
			if entry.BestQuizScore == nil || attempt.Score > *entry.BestQuizScore {
				score := attempt.Score
				entry.BestQuizScore = &score
			}
		}

		result = append(result, entry)
	}

	return result, nil
}

// GetCourseEnrollmentStats summarizes enrollment counts for the admin dashboard
func GetCourseEnrollmentStats(courseID uint) (*CourseEnrollmentStats, error) {
	db := database.Database.Db

	var enrollments []courseModels.Enrollment
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Find(&enrollments).Error; err != nil {
		return nil, err
	}

	stats := &CourseEnrollmentStats{TotalEnrolled: len(enrollments)}
	totalProgress := 0
	for _, e := range enrollments {
		totalProgress += e.CompletionPercentage
		switch e.Status {
		case courseModels.EnrollmentActive:
			stats.ActiveEnrolled++
		case courseModels.EnrollmentCompleted:
			stats.Completed++
		}
	}
	if stats.TotalEnrolled > 0 {
		stats.AverageProgress = int(math.Round(float64(totalProgress) / float64(stats.TotalEnrolled)))
	}

	return stats, nil
}
