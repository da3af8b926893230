package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	userGroup := app.Group("/course")

	// Course listing and details (published courses)
	userGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	userGroup.Get("/:courseId", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.GetCourseDetails)

	// Enrollment
	userGroup.Post("/:courseId/enroll", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.EnrollInCourse)

	// Quiz
	userGroup.Post("/quiz/submit", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("submit-quiz"), validators.SubmitQuizAttempt(), controllers.SubmitQuizAttempt)
	userGroup.Get("/:courseId/quiz/attempts", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.GetQuizAttempts)

	// User enrollments and certificates
	userEnrollGroup := app.Group("/user")
	userEnrollGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetEnrollments)
	userEnrollGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)

	// Public certificate verification (no auth, shareable link)
	app.Get("/certificate/verify/:code", controllers.VerifyCertificate)
}
