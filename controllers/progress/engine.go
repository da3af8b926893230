package controllers

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"lms/config"
	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrLessonNotFound is returned when a referenced lesson does not exist in
// the catalog. Catalog lookups are the only fatal failures in this package;
// cross-subsystem sync failures are logged and swallowed.
var ErrLessonNotFound = errors.New("lesson not found")

// LessonCompletionResult is the outcome of a completion check
type LessonCompletionResult struct {
	IsCompleted  bool   `json:"is_completed"`
	Message      string `json:"message"`
	CurrentWatch int    `json:"current_watch,omitempty"`
	Required     int    `json:"required,omitempty"`
}

// progressLocks serializes recomputation per (course, learner) pair. The
// recompute path is a read-count-then-write sequence, so two concurrent runs
// for the same pair could otherwise both read a stale count and lose an
// update.
var progressLocks sync.Map

func lockProgress(courseID uint, learnerID string) *sync.Mutex {
	key := fmt.Sprintf("%d|%s", courseID, learnerID)
	mu, _ := progressLocks.LoadOrStore(key, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m
}

// RecordLessonView records watch time for a lesson. The first event creates
// the ledger record; later events accumulate on top of it. Callers must send
// incremental deltas only - the same delta sent twice double-counts.
func RecordLessonView(learnerID string, lessonID, courseID uint, watchTimeSeconds int) (uint, error) {
	if watchTimeSeconds < 0 {
		return 0, errors.New("watch time cannot be negative")
	}

	mu := lockProgress(courseID, learnerID)
	defer mu.Unlock()

	db := database.Database.Db
	now := time.Now()

	var existing courseModels.LessonCompletion
	err := db.Where("learner_id = ? AND lesson_id = ? AND is_deleted = ?", learnerID, lessonID, false).
		First(&existing).Error

	if err == nil {
		existing.WatchTimeSeconds += watchTimeSeconds
		existing.LastWatchedAt = now
		if err := db.Save(&existing).Error; err != nil {
			return 0, err
		}
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	completion := courseModels.LessonCompletion{
		LearnerID:        learnerID,
		LessonID:         lessonID,
		CourseID:         courseID,
		WatchTimeSeconds: watchTimeSeconds,
		LastWatchedAt:    now,
		IsCompleted:      false,
	}
	if err := db.Create(&completion).Error; err != nil {
		return 0, err
	}
	return completion.ID, nil
}

// CompleteLessonIfDone marks a lesson completed once the learner has watched
// at least 80% of its duration, then recomputes the enrollment progress.
// A lesson with zero duration completes on any watch event.
func CompleteLessonIfDone(learnerID string, lessonID uint) (*LessonCompletionResult, error) {
	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}

	watchThreshold := lesson.DurationSeconds * 4 / 5 // floor of 80%

	mu := lockProgress(lesson.CourseID, learnerID)
	defer mu.Unlock()

	var completion courseModels.LessonCompletion
	err := db.Where("learner_id = ? AND lesson_id = ? AND is_deleted = ?", learnerID, lessonID, false).
		First(&completion).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &LessonCompletionResult{IsCompleted: false, Message: "No completion record found"}, nil
		}
		return nil, err
	}

	watched := completion.WatchTimeSeconds

	if completion.IsCompleted {
		return &LessonCompletionResult{
			IsCompleted:  true,
			Message:      "Lesson already completed",
			CurrentWatch: watched,
			Required:     watchThreshold,
		}, nil
	}

	if watched >= watchThreshold {
		now := time.Now()
		completion.IsCompleted = true
		completion.CompletedAt = &now
		if err := db.Save(&completion).Error; err != nil {
			return nil, err
		}

		updateEnrollmentProgress(lesson.CourseID, learnerID)

		return &LessonCompletionResult{
			IsCompleted: true,
			Message:     fmt.Sprintf("Lesson completed: %d/%ds", watched, lesson.DurationSeconds),
		}, nil
	}

	return &LessonCompletionResult{
		IsCompleted:  false,
		Message:      fmt.Sprintf("Watch %d more seconds to complete", watchThreshold-watched),
		CurrentWatch: watched,
		Required:     watchThreshold,
	}, nil
}

// MarkLessonComplete is the explicit user-initiated completion toggle,
// independent of the watch-time threshold. Creates the ledger record when
// none exists yet.
func MarkLessonComplete(learnerID string, lessonID, courseID uint) error {
	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, courseID, false).
		First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLessonNotFound
		}
		return err
	}

	mu := lockProgress(courseID, learnerID)
	defer mu.Unlock()

	now := time.Now()

	var completion courseModels.LessonCompletion
	err := db.Where("learner_id = ? AND lesson_id = ? AND is_deleted = ?", learnerID, lessonID, false).
		First(&completion).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		completion = courseModels.LessonCompletion{
			LearnerID:     learnerID,
			LessonID:      lessonID,
			CourseID:      courseID,
			LastWatchedAt: now,
			IsCompleted:   true,
			CompletedAt:   &now,
		}
		if err := db.Create(&completion).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	} else {
		completion.IsCompleted = true
		completion.CompletedAt = &now
		if err := db.Save(&completion).Error; err != nil {
			return err
		}
	}

	updateEnrollmentProgress(courseID, learnerID)
	return nil
}

// UnmarkLessonComplete clears the completion flag. The recompute still runs
// so the percentage drops, but a completed enrollment status is never
// reverted by it.
func UnmarkLessonComplete(learnerID string, lessonID, courseID uint) error {
	db := database.Database.Db

	mu := lockProgress(courseID, learnerID)
	defer mu.Unlock()

	var completion courseModels.LessonCompletion
	err := db.Where("learner_id = ? AND lesson_id = ? AND is_deleted = ?", learnerID, lessonID, false).
		First(&completion).Error
	if err == nil {
		completion.IsCompleted = false
		completion.CompletedAt = nil
		if err := db.Save(&completion).Error; err != nil {
			return err
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	updateEnrollmentProgress(courseID, learnerID)
	return nil
}

// RecomputeProgress re-runs the progress derivation for one enrollment under
// the same lock the mutation paths take. Used by the reconciliation sweep.
func RecomputeProgress(courseID uint, learnerID string) {
	mu := lockProgress(courseID, learnerID)
	defer mu.Unlock()
	updateEnrollmentProgress(courseID, learnerID)
}

// updateEnrollmentProgress derives the enrollment completion percentage from
// the lesson ledger and writes it through to the aggregate, the purchase
// mirror, and the certificate issuer. Callers must hold the progress lock
// for (courseID, learnerID).
func updateEnrollmentProgress(courseID uint, learnerID string) {
	db := database.Database.Db

	var lessons []courseModels.Lesson
	db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&lessons)

	// A course with zero lessons has undefined progress; leave everything untouched
	if len(lessons) == 0 {
		return
	}

	lessonSet := make(map[uint]bool, len(lessons))
	for _, l := range lessons {
		lessonSet[l.ID] = true
	}

	var completions []courseModels.LessonCompletion
	db.Where("learner_id = ? AND course_id = ? AND is_deleted = ?", learnerID, courseID, false).
		Find(&completions)

	completedCount := 0
	for _, c := range completions {
		if c.IsCompleted && lessonSet[c.LessonID] {
			completedCount++
		}
	}

	completionPercentage := int(math.Round(float64(completedCount) / float64(len(lessons)) * 100))

	// Mirror sync is best effort and must never block progress tracking
	if err := syncPurchaseProgress(courseID, learnerID, completionPercentage); err != nil {
		log.Printf("[PROGRESS] purchase mirror sync failed for course %d learner %s: %v", courseID, learnerID, err)
	}

	var enrollment courseModels.Enrollment
	if err := db.Where("course_id = ? AND learner_id = ? AND is_deleted = ?", courseID, learnerID, false).
		First(&enrollment).Error; err != nil {
		// No aggregate to update, no certificate to issue
		return
	}

	newStatus := enrollment.Status
	if completionPercentage == 100 {
		newStatus = courseModels.EnrollmentCompleted
	}

	firstCompletion := newStatus == courseModels.EnrollmentCompleted &&
		enrollment.Status != courseModels.EnrollmentCompleted

	enrollment.CompletionPercentage = completionPercentage
	enrollment.Status = newStatus
	if firstCompletion {
		now := time.Now()
		enrollment.CompletedAt = &now
	}

	if err := db.Save(&enrollment).Error; err != nil {
		log.Printf("[PROGRESS] failed to update enrollment for course %d learner %s: %v", courseID, learnerID, err)
		return
	}

	if completionPercentage == 100 {
		issueCertificate(courseID, learnerID)
	}

	if firstCompletion {
		notifyCompletion(courseID, learnerID)
	}
}

// syncPurchaseProgress writes the derived percentage onto the matching
// customer purchase record, if one exists. Missing matches are not an error.
func syncPurchaseProgress(courseID uint, learnerID string, completionPercentage int) error {
	identity := ResolveLearner(learnerID)
	if !identity.IsCustomer {
		return nil
	}

	db := database.Database.Db

	var purchases []models.CustomerPurchase
	if err := db.Where("product_type = ? AND product_id = ? AND is_deleted = ?",
		models.ProductTypeCourse, courseID, false).Find(&purchases).Error; err != nil {
		return err
	}

	for _, purchase := range purchases {
		if purchase.CustomerID != identity.CustomerID {
			continue
		}
		purchase.ProgressPercent = completionPercentage
		if completionPercentage == 100 && purchase.CompletedAt == nil {
			now := time.Now()
			purchase.CompletedAt = &now
		}
		return db.Save(&purchase).Error
	}

	return nil
}

// issueCertificate issues at most one certificate per (student, course).
// Learners outside the student identity space are silently skipped; their
// completion percentage still reads 100% without a certificate.
func issueCertificate(courseID uint, learnerID string) {
	identity := ResolveLearner(learnerID)
	if !identity.IsStudent {
		log.Printf("[PROGRESS] certificate skipped: learner %s is not a student identity", learnerID)
		return
	}

	db := database.Database.Db

	var existing courseModels.Certificate
	if err := db.Where("student_id = ? AND course_id = ? AND is_deleted = ?",
		identity.StudentID, courseID, false).First(&existing).Error; err == nil {
		return
	}

	certificate := courseModels.Certificate{
		StudentID:       identity.StudentID,
		CourseID:        courseID,
		CertificateCode: generateCertificateCode(),
		VerificationKey: uuid.NewString(),
		IssuedAt:        time.Now(),
	}

	if err := db.Create(&certificate).Error; err != nil {
		log.Printf("[PROGRESS] certificate insert failed for student %d course %d: %v", identity.StudentID, courseID, err)
		return
	}

	log.Printf("[PROGRESS] certificate %s issued to student %d for course %d",
		certificate.CertificateCode, identity.StudentID, courseID)

	if config.AppConfig == nil || config.AppConfig.EmailSender == "" {
		return
	}

	var student models.User
	if err := db.Where("id = ? AND is_deleted = ?", identity.StudentID, false).First(&student).Error; err != nil {
		return
	}
	var course courseModels.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return
	}

	go func() {
		if err := utils.SendCertificateEmail(student.Email, student.Name, course.Title, certificate.CertificateCode); err != nil {
			log.Printf("[PROGRESS] certificate email failed: %v", err)
		}
	}()
}

// notifyCompletion posts a course-completed event to the configured webhook,
// best effort.
func notifyCompletion(courseID uint, learnerID string) {
	if config.AppConfig == nil || config.AppConfig.CompletionWebhookURL == "" {
		return
	}
	go func() {
		if err := utils.NotifyCourseCompleted(config.AppConfig.CompletionWebhookURL, learnerID, courseID); err != nil {
			log.Printf("[PROGRESS] completion webhook failed for course %d learner %s: %v", courseID, learnerID, err)
		}
	}()
}

const certificateCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateCertificateCode builds a human-shareable code: PREFIX-YEAR-XXXXX
func generateCertificateCode() string {
	prefix := "DOHY"
	if config.AppConfig != nil && config.AppConfig.CertificatePrefix != "" {
		prefix = config.AppConfig.CertificatePrefix
	}

	random := make([]byte, 5)
	for i := range random {
		random[i] = certificateCodeCharset[rand.Intn(len(certificateCodeCharset))]
	}

	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().Year(), string(random))
}
