package controllers

import (
	"testing"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnrollmentProgressBreakdown(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 100, 200)
	student := seedStudent(t, db, "viewer@example.com")
	learnerID := LearnerIDForStudent(student.ID)
	seedEnrollment(t, db, course.ID, learnerID)

	_, err := RecordLessonView(learnerID, lessons[0].ID, course.ID, 90)
	require.NoError(t, err)
	_, err = CompleteLessonIfDone(learnerID, lessons[0].ID)
	require.NoError(t, err)

	view, err := GetEnrollmentProgress(course.ID, learnerID)
	require.NoError(t, err)
	require.True(t, view.Exists)
	assert.Equal(t, 50, view.CompletionPercentage)
	assert.Equal(t, courseModels.EnrollmentActive, view.Status)

	require.Len(t, view.Chapters, 1)
	chapter := view.Chapters[0]
	assert.Equal(t, 2, chapter.TotalLessons)
	assert.Equal(t, 1, chapter.CompletedLessons)
	assert.Equal(t, 50, chapter.Percentage)

	require.Len(t, chapter.Lessons, 2)
	assert.True(t, chapter.Lessons[0].IsCompleted)
	assert.Equal(t, 90, chapter.Lessons[0].WatchedSeconds)
	// Lesson with no ledger record reports zero watch time
	assert.False(t, chapter.Lessons[1].IsCompleted)
	assert.Equal(t, 0, chapter.Lessons[1].WatchedSeconds)
}

func TestGetEnrollmentProgressNotEnrolled(t *testing.T) {
	db := setupTestDB(t)
	course, _ := seedCourse(t, db, 100)
	student := seedStudent(t, db, "viewer@example.com")

	view, err := GetEnrollmentProgress(course.ID, LearnerIDForStudent(student.ID))
	require.NoError(t, err)
	assert.False(t, view.Exists)
	assert.Equal(t, 0, view.CompletionPercentage)
}

func TestGetLearnerStats(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "stats@example.com")
	learnerID := LearnerIDForStudent(student.ID)

	courseA, lessonsA := seedCourse(t, db, 100)
	seedEnrollment(t, db, courseA.ID, learnerID)

	courseB := courseModels.Course{Slug: "second", Title: "Second Course", IsPublished: true}
	require.NoError(t, db.Create(&courseB).Error)
	chapterB := courseModels.Chapter{CourseID: courseB.ID, Title: "Chapter"}
	require.NoError(t, db.Create(&chapterB).Error)
	lessonB := courseModels.Lesson{CourseID: courseB.ID, ChapterID: chapterB.ID, Title: "Lesson", DurationSeconds: 7200}
	require.NoError(t, db.Create(&lessonB).Error)
	seedEnrollment(t, db, courseB.ID, learnerID)

	// Finish course A, watch two hours of course B
	require.NoError(t, MarkLessonComplete(learnerID, lessonsA[0].ID, courseA.ID))
	_, err := RecordLessonView(learnerID, lessonB.ID, courseB.ID, 7200)
	require.NoError(t, err)

	stats, err := GetLearnerStats(learnerID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalCoursesEnrolled)
	assert.Equal(t, 1, stats.CompletedCourses)
	assert.Equal(t, 1, stats.InProgressCourses)
	assert.Equal(t, 7200, stats.TotalWatchTimeSeconds)
	assert.Equal(t, 2, stats.TotalWatchTimeHours)
	assert.Equal(t, 1, stats.CertificatesEarned)
	assert.Equal(t, 50, stats.AverageCompletionPercent)
}

func TestGetLearnerStatsEmpty(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "fresh@example.com")

	stats, err := GetLearnerStats(LearnerIDForStudent(student.ID))
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalCoursesEnrolled)
	assert.Equal(t, 0, stats.AverageCompletionPercent)
	assert.Equal(t, 0, stats.CertificatesEarned)
}

func TestGetCustomerCourseProgress(t *testing.T) {
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

	attempt := courseModels.QuizAttempt{LearnerID: learnerID, CourseID: course.ID, Score: 60, MaxScore: 100, AttemptNumber: 1}
	require.NoError(t, db.Create(&attempt).Error)
	attempt2 := courseModels.QuizAttempt{LearnerID: learnerID, CourseID: course.ID, Score: 85, MaxScore: 100, Passed: true, AttemptNumber: 2}
	require.NoError(t, db.Create(&attempt2).Error)

	entries, err := GetCustomerCourseProgress(customer.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, course.ID, entry.CourseID)
	assert.Equal(t, 50, entry.ProgressPercent)
	assert.Equal(t, courseModels.EnrollmentActive, entry.Status)
	require.NotNil(t, entry.BestQuizScore)
	assert.Equal(t, 85, *entry.BestQuizScore)
	assert.Equal(t, []uint{lessons[0].ID}, entry.CompletedLessonIDs)
	assert.Equal(t, []uint{lessons[1].ID}, entry.PendingLessonIDs)
}

func TestGetCustomerCourseProgressFallsBackToMirror(t *testing.T) {
	db := setupTestDB(t)
	course, _ := seedCourse(t, db, 100)
	customer := seedCustomer(t, db, "buyer@example.com")

	// Purchase exists but the customer never started: no enrollment aggregate,
	// the mirrored percentage on the purchase carries the view
	purchase := models.CustomerPurchase{
		CustomerID:      customer.ID,
		OrderRef:        "order-1",
		ProductType:     models.ProductTypeCourse,
		ProductID:       course.ID,
		ProgressPercent: 30,
	}
	require.NoError(t, db.Create(&purchase).Error)

	entries, err := GetCustomerCourseProgress(customer.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 30, entries[0].ProgressPercent)
	assert.Nil(t, entries[0].BestQuizScore)
}

func TestGetCourseEnrollmentStats(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 100)

	studentA := seedStudent(t, db, "a@example.com")
	studentB := seedStudent(t, db, "b@example.com")
	learnerA := LearnerIDForStudent(studentA.ID)
	learnerB := LearnerIDForStudent(studentB.ID)
	seedEnrollment(t, db, course.ID, learnerA)
	seedEnrollment(t, db, course.ID, learnerB)

	require.NoError(t, MarkLessonComplete(learnerA, lessons[0].ID, course.ID))

	stats, err := GetCourseEnrollmentStats(course.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalEnrolled)
	assert.Equal(t, 1, stats.ActiveEnrolled)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 50, stats.AverageProgress)
}
