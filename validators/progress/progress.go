package progressValidator

import (
	"strconv"

	progress "lms/controllers/progress"

	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// TrackLessonView validates the lesson view event body
func TrackLessonView() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(progress.LessonViewRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "LessonID":
					errors["lesson_id"] = "Lesson ID is required!"
				case "CourseID":
					errors["course_id"] = "Course ID is required!"
				case "WatchSeconds":
					errors["watch_seconds"] = "Watch seconds cannot be negative!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLessonView", reqData)
		return c.Next()
	}
}

// CustomerIDParam parses and validates the customerId path parameter
func CustomerIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("customerId"), 10, 32)
		if err != nil || id == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid customer ID!", nil)
		}
		c.Locals("customerID", uint(id))
		return c.Next()
	}
}
