package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminAddLesson adds a lesson to a chapter
func AdminAddLesson(c *fiber.Ctx) error {
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

	reqData, ok := c.Locals("validatedLesson").(*struct {
		Title           string `json:"title"`
		Description     string `json:"description"`
		VideoURL        string `json:"video_url"`
		DurationSeconds int    `json:"duration_seconds"`
		IsPreview       bool   `json:"is_preview"`
		OrderIndex      *int   `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.DurationSeconds < 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Duration cannot be negative!", nil)
	}

	orderIndex := 0
	if reqData.OrderIndex != nil {
		orderIndex = *reqData.OrderIndex
	} else {
		var count int64
		database.Database.Db.Model(&courseModels.Lesson{}).Where("chapter_id = ? AND is_deleted = ?", chapterID, false).Count(&count)
		orderIndex = int(count)
	}

	lesson := courseModels.Lesson{
		CourseID:        chapter.CourseID,
		ChapterID:       chapterID,
		Title:           reqData.Title,
		Description:     reqData.Description,
		VideoURL:        reqData.VideoURL,
		DurationSeconds: reqData.DurationSeconds,
		IsPreview:       reqData.IsPreview,
		OrderIndex:      orderIndex,
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// AdminUpdateLesson updates a lesson
func AdminUpdateLesson(c *fiber.Ctx) error {
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

	lessonID := c.Locals("lessonID").(uint)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	reqData, ok := c.Locals("validatedLessonUpdate").(*struct {
		Title           string `json:"title"`
		Description     string `json:"description"`
		VideoURL        string `json:"video_url"`
		DurationSeconds *int   `json:"duration_seconds"`
		IsPreview       *bool  `json:"is_preview"`
		OrderIndex      *int   `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		lesson.Title = reqData.Title
	}
	if reqData.Description != "" {
		lesson.Description = reqData.Description
	}
	if reqData.VideoURL != "" {
		lesson.VideoURL = reqData.VideoURL
	}
	if reqData.DurationSeconds != nil && *reqData.DurationSeconds >= 0 {
		lesson.DurationSeconds = *reqData.DurationSeconds
	}
	if reqData.IsPreview != nil {
		lesson.IsPreview = *reqData.IsPreview
	}
	if reqData.OrderIndex != nil && *reqData.OrderIndex >= 0 {
		lesson.OrderIndex = *reqData.OrderIndex
	}

	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// AdminDeleteLesson soft deletes a lesson
func AdminDeleteLesson(c *fiber.Ctx) error {
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

	lessonID := c.Locals("lessonID").(uint)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	lesson.IsDeleted = true
	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}
