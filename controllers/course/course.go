package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	progress "lms/controllers/progress"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published courses for learners
func GetAllCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Retrieve validated pagination request
	reqData, _ := c.Locals("validatedCourseList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	// Set default pagination
	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("is_deleted = ? AND is_published = ?", false, true)

	// Get total count
	var total int64
	db.Count(&total)

	// Fetch paginated data
	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetCourseDetails gets course details with chapters and lessons for learners
func GetCourseDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Get chapters with their lessons
	var chapters []courseModels.Chapter
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&chapters)

	var lessons []courseModels.Lesson
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&lessons)

	type ChapterWithLessons struct {
		courseModels.Chapter
		Lessons []courseModels.Lesson `json:"lessons"`
	}

	result := make([]ChapterWithLessons, len(chapters))
	for i, chapter := range chapters {
		result[i] = ChapterWithLessons{Chapter: chapter, Lessons: []courseModels.Lesson{}}
		for _, lesson := range lessons {
			if lesson.ChapterID == chapter.ID {
				result[i].Lessons = append(result[i].Lessons, lesson)
			}
		}
	}

	// Check if user is enrolled
	learnerID := progress.LearnerIDForStudent(userID)
	var enrollment courseModels.Enrollment
	isEnrolled := database.Database.Db.Where("course_id = ? AND learner_id = ? AND is_deleted = ?", courseID, learnerID, false).First(&enrollment).Error == nil

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":      course,
		"chapters":    result,
		"is_enrolled": isEnrolled,
		"enrollment":  enrollment,
	})
}
