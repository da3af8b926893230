package controllers

import (
	"errors"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// LessonViewRequest is the validated body of a lesson view event
type LessonViewRequest struct {
	LessonID     uint `json:"lesson_id" validate:"required"`
	CourseID     uint `json:"course_id" validate:"required"`
	WatchSeconds int  `json:"watch_seconds" validate:"gte=0"`
}

func currentLearner(c *fiber.Ctx) (string, bool) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return "", false
	}

	// Check if user exists
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return "", false
	}

	return LearnerIDForStudent(userID), true
}

// TrackLessonView records a watch-time delta for the current learner
func TrackLessonView(c *fiber.Ctx) error {
	learnerID, ok := currentLearner(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedLessonView").(*LessonViewRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	recordID, err := RecordLessonView(learnerID, reqData.LessonID, reqData.CourseID, reqData.WatchSeconds)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record lesson view!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson view recorded successfully!", fiber.Map{
		"record_id": recordID,
	})
}

// CheckLessonComplete marks the lesson complete when the watch threshold is met
func CheckLessonComplete(c *fiber.Ctx) error {
	learnerID, ok := currentLearner(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(uint)

	result, err := CompleteLessonIfDone(learnerID, lessonID)
	if err != nil {
		if errors.Is(err, ErrLessonNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check lesson completion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, result.Message, result)
}

// MarkLessonDone is the explicit completion toggle (on)
func MarkLessonDone(c *fiber.Ctx) error {
	learnerID, ok := currentLearner(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	lessonID := c.Locals("lessonID").(uint)

	if err := MarkLessonComplete(learnerID, lessonID, courseID); err != nil {
		if errors.Is(err, ErrLessonNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark lesson as completed!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as completed!", nil)
}

// UnmarkLessonDone is the explicit completion toggle (off)
func UnmarkLessonDone(c *fiber.Ctx) error {
	learnerID, ok := currentLearner(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	lessonID := c.Locals("lessonID").(uint)

	if err := UnmarkLessonComplete(learnerID, lessonID, courseID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unmark lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson unmarked!", nil)
}

// GetCourseProgress returns the per-chapter progress breakdown
func GetCourseProgress(c *fiber.Ctx) error {
	learnerID, ok := currentLearner(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	progress, err := GetEnrollmentProgress(courseID, learnerID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}
	if !progress.Exists {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Not enrolled in this course.", progress)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", progress)
}

// GetMyStats returns learning statistics across all the learner's courses
func GetMyStats(c *fiber.Ctx) error {
	learnerID, ok := currentLearner(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	stats, err := GetLearnerStats(learnerID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch learner stats!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", stats)
}

// SetLastViewedLesson stores the advisory resume pointer on the enrollment
func SetLastViewedLesson(c *fiber.Ctx) error {
	learnerID, ok := currentLearner(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	lessonID := c.Locals("lessonID").(uint)

	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, courseID, false).
		First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := db.Where("course_id = ? AND learner_id = ? AND is_deleted = ?", courseID, learnerID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	enrollment.LastViewedLessonID = &lesson.ID
	if err := db.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update enrollment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Last viewed lesson updated!", nil)
}

// GetCustomerProgress is the admin view of a customer's purchased-course progress
func GetCustomerProgress(c *fiber.Ctx) error {
	customerID := c.Locals("customerID").(uint)

	var customer models.Customer
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", customerID, false).
		First(&customer).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Customer not found!", nil)
	}

	progress, err := GetCustomerCourseProgress(customerID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch customer progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Customer progress fetched successfully!", fiber.Map{
		"customer_id": customerID,
		"courses":     progress,
	})
}

// GetCourseStats is the admin enrollment summary for one course
func GetCourseStats(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	stats, err := GetCourseEnrollmentStats(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course stats!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course stats fetched successfully!", stats)
}
