package controllers

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	progress "lms/controllers/progress"

	"github.com/gofiber/fiber/v2"
)

// SubmitQuizAttempt records a quiz attempt for the current learner
func SubmitQuizAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedQuizAttempt").(*struct {
		CourseID uint `json:"course_id"`
		Score    int  `json:"score"`
		MaxScore int  `json:"max_score"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Score < 0 || reqData.Score > 100 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Score must be between 0 and 100!", nil)
	}

	learnerID := progress.LearnerIDForStudent(userID)

	// Must be enrolled before attempting the quiz
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("course_id = ? AND learner_id = ? AND is_deleted = ?", reqData.CourseID, learnerID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	passingScore := 70
	if config.AppConfig != nil && config.AppConfig.QuizPassingScore > 0 {
		passingScore = config.AppConfig.QuizPassingScore
	}

	maxScore := reqData.MaxScore
	if maxScore <= 0 {
		maxScore = 100
	}

	var attemptCount int64
	database.Database.Db.Model(&courseModels.QuizAttempt{}).Where("learner_id = ? AND course_id = ? AND is_deleted = ?", learnerID, reqData.CourseID, false).Count(&attemptCount)

	attempt := courseModels.QuizAttempt{
		LearnerID:     learnerID,
		CourseID:      reqData.CourseID,
		Score:         reqData.Score,
		MaxScore:      maxScore,
		Passed:        reqData.Score >= passingScore,
		AttemptNumber: int(attemptCount) + 1,
	}

	if err := database.Database.Db.Create(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record quiz attempt!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz attempt recorded successfully!", attempt)
}

// GetQuizAttempts lists the current learner's attempts for a course
func GetQuizAttempts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	learnerID := progress.LearnerIDForStudent(userID)

	var attempts []courseModels.QuizAttempt
	if err := database.Database.Db.Where("learner_id = ? AND course_id = ? AND is_deleted = ?", learnerID, courseID, false).Order("attempt_number asc").Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quiz attempts!", nil)
	}

	bestScore := 0
	for _, a := range attempts {
		if a.Score > bestScore {
			bestScore = a.Score
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz attempts fetched successfully!", fiber.Map{
		"attempts":   attempts,
		"total":      len(attempts),
		"best_score": bestScore,
	})
}
