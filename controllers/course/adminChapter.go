package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminAddChapter adds a chapter to a course
func AdminAddChapter(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedChapter").(*struct {
		Title      string `json:"title"`
		OrderIndex *int   `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Default order: append after the last chapter
	orderIndex := 0
	if reqData.OrderIndex != nil {
		orderIndex = *reqData.OrderIndex
	} else {
		var count int64
		database.Database.Db.Model(&courseModels.Chapter{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&count)
		orderIndex = int(count)
	}

	chapter := courseModels.Chapter{
		CourseID:   courseID,
		Title:      reqData.Title,
		OrderIndex: orderIndex,
	}

	if err := database.Database.Db.Create(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Chapter created successfully!", chapter)
}

// AdminUpdateChapter updates a chapter
func AdminUpdateChapter(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	chapterID := c.Locals("chapterID").(uint)

	var chapter courseModels.Chapter
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", chapterID, false).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	reqData, ok := c.Locals("validatedChapterUpdate").(*struct {
		Title      string `json:"title"`
		OrderIndex *int   `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		chapter.Title = reqData.Title
	}
	if reqData.OrderIndex != nil && *reqData.OrderIndex >= 0 {
		chapter.OrderIndex = *reqData.OrderIndex
	}

	if err := database.Database.Db.Save(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter updated successfully!", chapter)
}

// AdminDeleteChapter soft deletes a chapter and its lessons
func AdminDeleteChapter(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	chapterID := c.Locals("chapterID").(uint)

	var chapter courseModels.Chapter
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", chapterID, false).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	tx := database.Database.Db.Begin()

	chapter.IsDeleted = true
	if err := tx.Save(&chapter).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chapter!", nil)
	}

	// Deleting a chapter removes its lessons from the progress denominator
	if err := tx.Model(&courseModels.Lesson{}).Where("chapter_id = ?", chapterID).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chapter lessons!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter deleted successfully!", nil)
}
