package courseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// CourseIDParam parses and validates the courseId path parameter
func CourseIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("courseId"), 10, 32)
		if err != nil || id == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}
		c.Locals("courseID", uint(id))
		return c.Next()
	}
}

// ChapterIDParam parses and validates the chapterId path parameter
func ChapterIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("chapterId"), 10, 32)
		if err != nil || id == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chapter ID!", nil)
		}
		c.Locals("chapterID", uint(id))
		return c.Next()
	}
}

// LessonIDParam parses and validates the lessonId path parameter
func LessonIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("lessonId"), 10, 32)
		if err != nil || id == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson ID!", nil)
		}
		c.Locals("lessonID", uint(id))
		return c.Next()
	}
}

// CourseList validates pagination for the public course listing
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Pagination is optional, but must be positive when provided
		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}

// AdminList validates pagination for the admin course listing
func AdminList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAdminList", reqData)
		return c.Next()
	}
}

// CreateCourse validates the course creation request
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Slug         string `json:"slug"`
			Title        string `json:"title"`
			Subtitle     string `json:"subtitle"`
			Description  string `json:"description"`
			Author       string `json:"author"`
			PricingType  string `json:"pricing_type"`
			PriceAmount  int64  `json:"price_amount"`
			ThumbnailURL string `json:"thumbnail_url"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Slug
		if strings.TrimSpace(reqData.Slug) == "" {
			errors["slug"] = "Slug is required!"
		}

		// Validate Title
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		// Validate PricingType
		if reqData.PricingType != "" && reqData.PricingType != "free" && reqData.PricingType != "paid" {
			errors["pricing_type"] = "Pricing type must be free or paid!"
		}

		if reqData.PricingType == "paid" && reqData.PriceAmount <= 0 {
			errors["price_amount"] = "Paid courses must have a price!"
		}

		if reqData.PriceAmount < 0 {
			errors["price_amount"] = "Price cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates the course update request
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string `json:"title"`
			Subtitle     string `json:"subtitle"`
			Description  string `json:"description"`
			Author       string `json:"author"`
			PricingType  string `json:"pricing_type"`
			PriceAmount  *int64 `json:"price_amount"`
			ThumbnailURL string `json:"thumbnail_url"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.PricingType != "" && reqData.PricingType != "free" && reqData.PricingType != "paid" {
			errors["pricing_type"] = "Pricing type must be free or paid!"
		}

		if reqData.PriceAmount != nil && *reqData.PriceAmount < 0 {
			errors["price_amount"] = "Price cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// PublishCourse validates the publish toggle request
func PublishCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Publish *bool `json:"publish"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Publish == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"publish": "Publish flag is required!",
			})
		}

		c.Locals("publishStatus", *reqData.Publish)
		return c.Next()
	}
}

// AddChapter validates the chapter creation request
func AddChapter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title      string `json:"title"`
			OrderIndex *int   `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.OrderIndex != nil && *reqData.OrderIndex < 0 {
			errors["order_index"] = "Order index cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedChapter", reqData)
		return c.Next()
	}
}

// UpdateChapter validates the chapter update request
func UpdateChapter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title      string `json:"title"`
			OrderIndex *int   `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.OrderIndex != nil && *reqData.OrderIndex < 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"order_index": "Order index cannot be negative!",
			})
		}

		c.Locals("validatedChapterUpdate", reqData)
		return c.Next()
	}
}

// AddLesson validates the lesson creation request
func AddLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title           string `json:"title"`
			Description     string `json:"description"`
			VideoURL        string `json:"video_url"`
			DurationSeconds int    `json:"duration_seconds"`
			IsPreview       bool   `json:"is_preview"`
			OrderIndex      *int   `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.DurationSeconds < 0 {
			errors["duration_seconds"] = "Duration cannot be negative!"
		}
		if reqData.OrderIndex != nil && *reqData.OrderIndex < 0 {
			errors["order_index"] = "Order index cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// UpdateLesson validates the lesson update request
func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title           string `json:"title"`
			Description     string `json:"description"`
			VideoURL        string `json:"video_url"`
			DurationSeconds *int   `json:"duration_seconds"`
			IsPreview       *bool  `json:"is_preview"`
			OrderIndex      *int   `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.DurationSeconds != nil && *reqData.DurationSeconds < 0 {
			errors["duration_seconds"] = "Duration cannot be negative!"
		}
		if reqData.OrderIndex != nil && *reqData.OrderIndex < 0 {
			errors["order_index"] = "Order index cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLessonUpdate", reqData)
		return c.Next()
	}
}

// SubmitQuizAttempt validates the quiz attempt request
func SubmitQuizAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID uint `json:"course_id"`
			Score    int  `json:"score"`
			MaxScore int  `json:"max_score"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["course_id"] = "Course ID is required!"
		}
		if reqData.Score < 0 || reqData.Score > 100 {
			errors["score"] = "Score must be between 0 and 100!"
		}
		if reqData.MaxScore < 0 {
			errors["max_score"] = "Max score cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuizAttempt", reqData)
		return c.Next()
	}
}
