package progressRoutes

import (
	controllers "lms/controllers/progress"
	"lms/middleware"
	courseValidators "lms/validators/course"
	validators "lms/validators/progress"

	"github.com/gofiber/fiber/v2"
)

// SetupProgressRoutes sets up all lesson progress tracking routes
func SetupProgressRoutes(app *fiber.App) {
	progressGroup := app.Group("/progress", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("track-progress"))

	// Watch time tracking
	progressGroup.Post("/view", validators.TrackLessonView(), controllers.TrackLessonView)
	progressGroup.Post("/lesson/:lessonId/check", courseValidators.LessonIDParam(), controllers.CheckLessonComplete)

	// Manual completion toggles
	progressGroup.Post("/course/:courseId/lesson/:lessonId/complete", courseValidators.CourseIDParam(), courseValidators.LessonIDParam(), controllers.MarkLessonDone)
	progressGroup.Delete("/course/:courseId/lesson/:lessonId/complete", courseValidators.CourseIDParam(), courseValidators.LessonIDParam(), controllers.UnmarkLessonDone)

	// Resume position
	progressGroup.Post("/course/:courseId/lesson/:lessonId/resume", courseValidators.CourseIDParam(), courseValidators.LessonIDParam(), controllers.SetLastViewedLesson)

	// Progress views
	progressGroup.Get("/course/:courseId", courseValidators.CourseIDParam(), controllers.GetCourseProgress)
	progressGroup.Get("/stats", controllers.GetMyStats)
}
