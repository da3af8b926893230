package controllers

import (
	"path/filepath"
	"testing"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB wires a throwaway sqlite database into the global handle
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	t.Cleanup(func() {
		database.Database = database.DbInstance{}
	})

	return db
}

// seedCourse creates a published course with one chapter holding a lesson per
// given duration. Lessons come back in order.
func seedCourse(t *testing.T, db *gorm.DB, durations ...int) (courseModels.Course, []courseModels.Lesson) {
	t.Helper()

	course := courseModels.Course{
		Slug:        "test-course",
		Title:       "Test Course",
		IsPublished: true,
	}
	require.NoError(t, db.Create(&course).Error)

	chapter := courseModels.Chapter{CourseID: course.ID, Title: "Chapter 1"}
	require.NoError(t, db.Create(&chapter).Error)

	lessons := make([]courseModels.Lesson, len(durations))
	for i, d := range durations {
		lesson := courseModels.Lesson{
			CourseID:        course.ID,
			ChapterID:       chapter.ID,
			Title:           "Lesson",
			DurationSeconds: d,
			OrderIndex:      i,
		}
		require.NoError(t, db.Create(&lesson).Error)
		lessons[i] = lesson
	}

	return course, lessons
}

func seedStudent(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()

	user := models.User{
		Name:     "Test Student",
		Email:    email,
		Password: "hashed",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedCustomer(t *testing.T, db *gorm.DB, email string) models.Customer {
	t.Helper()

	customer := models.Customer{
		FullName: "Test Customer",
		Email:    email,
		Active:   true,
	}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

func seedEnrollment(t *testing.T, db *gorm.DB, courseID uint, learnerID string) courseModels.Enrollment {
	t.Helper()

	enrollment := courseModels.Enrollment{
		CourseID:  courseID,
		LearnerID: learnerID,
		Status:    courseModels.EnrollmentActive,
	}
	require.NoError(t, db.Create(&enrollment).Error)
	return enrollment
}
