package controllers

import (
	"log"
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	progress "lms/controllers/progress"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse creates the enrollment aggregate for the current learner.
// The progress engine never creates enrollments; this is the only place
// they come from on the student side.
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	// Check if course exists and is published
	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	learnerID := progress.LearnerIDForStudent(userID)

	// Check if user is already enrolled
	var existingEnrollment courseModels.Enrollment
	if err := database.Database.Db.Where("course_id = ? AND learner_id = ? AND is_deleted = ?", courseID, learnerID, false).First(&existingEnrollment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
	}

	enrollment := courseModels.Enrollment{
		CourseID:   courseID,
		LearnerID:  learnerID,
		Status:     courseModels.EnrollmentActive,
		EnrolledAt: time.Now(),
	}

	// Save to database with transaction
	tx := database.Database.Db.Begin()
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}
	tx.Commit()

	if config.AppConfig != nil && config.AppConfig.EmailSender != "" {
		go func() {
			if err := utils.SendEnrollmentEmail(user.Email, user.Name, course.Title); err != nil {
				log.Printf("Error sending enrollment email: %v", err)
			}
		}()
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

// GetEnrollments lists the current learner's enrollments with course info
func GetEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	learnerID := progress.LearnerIDForStudent(userID)

	type EnrollmentWithCourse struct {
		courseModels.Enrollment
		CourseTitle       string `json:"course_title"`
		CourseDescription string `json:"course_description"`
		CourseAuthor      string `json:"course_author"`
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("learner_id = ? AND is_deleted = ?", learnerID, false).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	result := make([]EnrollmentWithCourse, len(enrollments))
	for i, e := range enrollments {
		var course courseModels.Course
		database.Database.Db.Where("id = ?", e.CourseID).First(&course)
		result[i] = EnrollmentWithCourse{
			Enrollment:        e,
			CourseTitle:       course.Title,
			CourseDescription: course.Description,
			CourseAuthor:      course.Author,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"total":       len(result),
	})
}
