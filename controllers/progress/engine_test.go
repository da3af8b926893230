package controllers

import (
	"regexp"
	"sync"
	"testing"
	"time"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordLessonViewAccumulates(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 300)
	student := seedStudent(t, db, "viewer@example.com")
	learnerID := LearnerIDForStudent(student.ID)

	firstID, err := RecordLessonView(learnerID, lessons[0].ID, course.ID, 60)
	require.NoError(t, err)

	secondID, err := RecordLessonView(learnerID, lessons[0].ID, course.ID, 90)
	require.NoError(t, err)
	assert.Equal(t, firstID, secondID, "repeat views must reuse the same ledger record")

	var completion courseModels.LessonCompletion
	require.NoError(t, db.First(&completion, firstID).Error)
	assert.Equal(t, 150, completion.WatchTimeSeconds)
	assert.False(t, completion.IsCompleted)
	assert.False(t, completion.LastWatchedAt.IsZero())
}

func TestRecordLessonViewRejectsNegative(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 300)
	student := seedStudent(t, db, "viewer@example.com")

	_, err := RecordLessonView(LearnerIDForStudent(student.ID), lessons[0].ID, course.ID, -10)
	assert.Error(t, err)

	var count int64
	db.Model(&courseModels.LessonCompletion{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestCompleteLessonIfDoneThreshold(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 100)
	student := seedStudent(t, db, "viewer@example.com")
	learnerID := LearnerIDForStudent(student.ID)
	seedEnrollment(t, db, course.ID, learnerID)

	// 79 of 100 seconds: one short of the 80% threshold
	_, err := RecordLessonView(learnerID, lessons[0].ID, course.ID, 79)
	require.NoError(t, err)

	result, err := CompleteLessonIfDone(learnerID, lessons[0].ID)
	require.NoError(t, err)
	assert.False(t, result.IsCompleted)
	assert.Equal(t, 79, result.CurrentWatch)
	assert.Equal(t, 80, result.Required)

	_, err = RecordLessonView(learnerID, lessons[0].ID, course.ID, 1)
	require.NoError(t, err)

	result, err = CompleteLessonIfDone(learnerID, lessons[0].ID)
	require.NoError(t, err)
	assert.True(t, result.IsCompleted)

	// Repeated check reports already completed
	result, err = CompleteLessonIfDone(learnerID, lessons[0].ID)
	require.NoError(t, err)
	assert.True(t, result.IsCompleted)
	assert.Equal(t, "Lesson already completed", result.Message)
}

func TestCompleteLessonZeroDuration(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 0)
	student := seedStudent(t, db, "viewer@example.com")
	learnerID := LearnerIDForStudent(student.ID)
	seedEnrollment(t, db, course.ID, learnerID)

	_, err := RecordLessonView(learnerID, lessons[0].ID, course.ID, 0)
	require.NoError(t, err)

	// Zero-duration lessons complete on any view event
	result, err := CompleteLessonIfDone(learnerID, lessons[0].ID)
	require.NoError(t, err)
	assert.True(t, result.IsCompleted)
}

func TestCompleteLessonUnknownLesson(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "viewer@example.com")

	_, err := CompleteLessonIfDone(LearnerIDForStudent(student.ID), 9999)
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestCompleteLessonWithoutRecord(t *testing.T) {
	db := setupTestDB(t)
	_, lessons := seedCourse(t, db, 100)
	student := seedStudent(t, db, "viewer@example.com")

	result, err := CompleteLessonIfDone(LearnerIDForStudent(student.ID), lessons[0].ID)
	require.NoError(t, err)
	assert.False(t, result.IsCompleted)
	assert.Equal(t, "No completion record found", result.Message)
}

func TestMarkLessonCompleteUpdatesEnrollment(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 100, 100, 100, 100)
	student := seedStudent(t, db, "viewer@example.com")
	learnerID := LearnerIDForStudent(student.ID)
	seedEnrollment(t, db, course.ID, learnerID)

	require.NoError(t, MarkLessonComplete(learnerID, lessons[0].ID, course.ID))

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("course_id = ? AND learner_id = ?", course.ID, learnerID).First(&enrollment).Error)
	assert.Equal(t, 25, enrollment.CompletionPercentage)
	assert.Equal(t, courseModels.EnrollmentActive, enrollment.Status)
	assert.Nil(t, enrollment.CompletedAt)
}

func TestMarkLessonCompleteWrongCourse(t *testing.T) {
	db := setupTestDB(t)
	course, _ := seedCourse(t, db, 100)
	student := seedStudent(t, db, "viewer@example.com")

	otherCourse := courseModels.Course{Slug: "other", Title: "Other", IsPublished: true}
	require.NoError(t, db.Create(&otherCourse).Error)
	otherChapter := courseModels.Chapter{CourseID: otherCourse.ID, Title: "Chapter"}
	require.NoError(t, db.Create(&otherChapter).Error)
	otherLesson := courseModels.Lesson{CourseID: otherCourse.ID, ChapterID: otherChapter.ID, Title: "Lesson", DurationSeconds: 100}
	require.NoError(t, db.Create(&otherLesson).Error)

	err := MarkLessonComplete(LearnerIDForStudent(student.ID), otherLesson.ID, course.ID)
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestFullCompletionIssuesCertificate(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 100, 200)
	student := seedStudent(t, db, "graduate@example.com")
	learnerID := LearnerIDForStudent(student.ID)
	seedEnrollment(t, db, course.ID, learnerID)

	for _, lesson := range lessons {
		require.NoError(t, MarkLessonComplete(learnerID, lesson.ID, course.ID))
	}

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("course_id = ? AND learner_id = ?", course.ID, learnerID).First(&enrollment).Error)
	assert.Equal(t, 100, enrollment.CompletionPercentage)
	assert.Equal(t, courseModels.EnrollmentCompleted, enrollment.Status)
	require.NotNil(t, enrollment.CompletedAt)
	completedAt := *enrollment.CompletedAt

	var certificates []courseModels.Certificate
	require.NoError(t, db.Where("student_id = ? AND course_id = ?", student.ID, course.ID).Find(&certificates).Error)
	require.Len(t, certificates, 1)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z]+-\d{4}-[A-Z0-9]{5}$`), certificates[0].CertificateCode)
	assert.NotEmpty(t, certificates[0].VerificationKey)

	// Re-marking an already complete lesson must not mint another certificate
	// or move the completion timestamp
	require.NoError(t, MarkLessonComplete(learnerID, lessons[0].ID, course.ID))

	var certCount int64
	db.Model(&courseModels.Certificate{}).Where("student_id = ? AND course_id = ?", student.ID, course.ID).Count(&certCount)
	assert.EqualValues(t, 1, certCount)

	require.NoError(t, db.Where("course_id = ? AND learner_id = ?", course.ID, learnerID).First(&enrollment).Error)
	require.NotNil(t, enrollment.CompletedAt)
	assert.WithinDuration(t, completedAt, *enrollment.CompletedAt, time.Second)
}

func TestUnmarkKeepsCompletedStatus(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 100, 100, 100, 100)
	student := seedStudent(t, db, "graduate@example.com")
	learnerID := LearnerIDForStudent(student.ID)
	seedEnrollment(t, db, course.ID, learnerID)

	for _, lesson := range lessons {
		require.NoError(t, MarkLessonComplete(learnerID, lesson.ID, course.ID))
	}

	require.NoError(t, UnmarkLessonComplete(learnerID, lessons[3].ID, course.ID))

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("course_id = ? AND learner_id = ?", course.ID, learnerID).First(&enrollment).Error)
	assert.Equal(t, 75, enrollment.CompletionPercentage)
	// Completed status is monotonic even when the percentage drops
	assert.Equal(t, courseModels.EnrollmentCompleted, enrollment.Status)

	var certCount int64
	db.Model(&courseModels.Certificate{}).Where("student_id = ? AND course_id = ?", student.ID, course.ID).Count(&certCount)
	assert.EqualValues(t, 1, certCount, "certificate survives un-completion")
}

func TestUnmarkWithoutRecordStillRecomputes(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 100, 100)
	student := seedStudent(t, db, "viewer@example.com")
	learnerID := LearnerIDForStudent(student.ID)

	enrollment := seedEnrollment(t, db, course.ID, learnerID)
	enrollment.CompletionPercentage = 50 // stale value
	require.NoError(t, db.Save(&enrollment).Error)

	require.NoError(t, UnmarkLessonComplete(learnerID, lessons[0].ID, course.ID))

	require.NoError(t, db.First(&enrollment, enrollment.ID).Error)
	assert.Equal(t, 0, enrollment.CompletionPercentage)
}

func TestPurchaseMirrorSync(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 100, 100)
	customer := seedCustomer(t, db, "buyer@example.com")
	learnerID := LearnerIDForCustomer(customer.ID)
	seedEnrollment(t, db, course.ID, learnerID)

	purchase := models.CustomerPurchase{
		CustomerID:  customer.ID,
		OrderRef:    "order-1",
		ProductType: models.ProductTypeCourse,
		ProductID:   course.ID,
	}
	require.NoError(t, db.Create(&purchase).Error)

	require.NoError(t, MarkLessonComplete(learnerID, lessons[0].ID, course.ID))

	require.NoError(t, db.First(&purchase, purchase.ID).Error)
	assert.Equal(t, 50, purchase.ProgressPercent)
	assert.Nil(t, purchase.CompletedAt)

	require.NoError(t, MarkLessonComplete(learnerID, lessons[1].ID, course.ID))

	require.NoError(t, db.First(&purchase, purchase.ID).Error)
	assert.Equal(t, 100, purchase.ProgressPercent)
	assert.NotNil(t, purchase.CompletedAt)

	// No user with this id exists, so completion never mints a certificate
	var certCount int64
	db.Model(&courseModels.Certificate{}).Count(&certCount)
	assert.EqualValues(t, 0, certCount)
}

func TestProgressWithoutPurchaseIsSilent(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 100, 100)
	customer := seedCustomer(t, db, "buyer@example.com")
	learnerID := LearnerIDForCustomer(customer.ID)
	seedEnrollment(t, db, course.ID, learnerID)

	// Customer identity but no purchase row: mirror sync finds nothing to patch
	require.NoError(t, MarkLessonComplete(learnerID, lessons[0].ID, course.ID))

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("course_id = ? AND learner_id = ?", course.ID, learnerID).First(&enrollment).Error)
	assert.Equal(t, 50, enrollment.CompletionPercentage)
}

func TestRecomputeWithoutEnrollment(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 100)
	student := seedStudent(t, db, "viewer@example.com")
	learnerID := LearnerIDForStudent(student.ID)

	// Ledger activity without an enrollment aggregate is tolerated
	require.NoError(t, MarkLessonComplete(learnerID, lessons[0].ID, course.ID))

	var count int64
	db.Model(&courseModels.Enrollment{}).Count(&count)
	assert.EqualValues(t, 0, count, "recompute must not create enrollments")
}

func TestRecomputeEmptyCourseLeavesEnrollmentAlone(t *testing.T) {
	db := setupTestDB(t)

	course := courseModels.Course{Slug: "empty", Title: "Empty Course", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)
	student := seedStudent(t, db, "viewer@example.com")
	learnerID := LearnerIDForStudent(student.ID)

	enrollment := seedEnrollment(t, db, course.ID, learnerID)
	enrollment.CompletionPercentage = 40
	require.NoError(t, db.Save(&enrollment).Error)

	RecomputeProgress(course.ID, learnerID)

	require.NoError(t, db.First(&enrollment, enrollment.ID).Error)
	assert.Equal(t, 40, enrollment.CompletionPercentage)
}

func TestConcurrentCompletionsLoseNoUpdates(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 100, 100, 100, 100, 100)
	student := seedStudent(t, db, "racer@example.com")
	learnerID := LearnerIDForStudent(student.ID)
	seedEnrollment(t, db, course.ID, learnerID)

	var wg sync.WaitGroup
	for _, lesson := range lessons {
		wg.Add(1)
		go func(lessonID uint) {
			defer wg.Done()
			_ = MarkLessonComplete(learnerID, lessonID, course.ID)
		}(lesson.ID)
	}
	wg.Wait()

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("course_id = ? AND learner_id = ?", course.ID, learnerID).First(&enrollment).Error)
	assert.Equal(t, 100, enrollment.CompletionPercentage)
	assert.Equal(t, courseModels.EnrollmentCompleted, enrollment.Status)

	var certCount int64
	db.Model(&courseModels.Certificate{}).Where("student_id = ? AND course_id = ?", student.ID, course.ID).Count(&certCount)
	assert.EqualValues(t, 1, certCount)
}

func TestDeletedLessonsExcludedFromDenominator(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 100, 100, 100)
	student := seedStudent(t, db, "viewer@example.com")
	learnerID := LearnerIDForStudent(student.ID)
	seedEnrollment(t, db, course.ID, learnerID)

	require.NoError(t, MarkLessonComplete(learnerID, lessons[0].ID, course.ID))
	require.NoError(t, MarkLessonComplete(learnerID, lessons[1].ID, course.ID))

	// Retiring the third lesson shrinks the denominator to the two completed
	require.NoError(t, db.Model(&courseModels.Lesson{}).Where("id = ?", lessons[2].ID).Update("is_deleted", true).Error)

	RecomputeProgress(course.ID, learnerID)

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("course_id = ? AND learner_id = ?", course.ID, learnerID).First(&enrollment).Error)
	assert.Equal(t, 100, enrollment.CompletionPercentage)
	assert.Equal(t, courseModels.EnrollmentCompleted, enrollment.Status)
}
