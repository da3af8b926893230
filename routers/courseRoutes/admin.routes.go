package courseRoutes

import (
	controllers "lms/controllers/course"
	progressControllers "lms/controllers/progress"
	purchaseControllers "lms/controllers/purchase"
	"lms/middleware"
	validators "lms/validators/course"
	progressValidators "lms/validators/progress"
	purchaseValidators "lms/validators/purchase"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course", middleware.JWTMiddleware, middleware.AdminOnly)

	// Course CRUD
	adminGroup.Post("/create", validators.CreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Get("/list", validators.AdminList(), controllers.AdminGetAllCourses)
	adminGroup.Get("/:courseId", validators.CourseIDParam(), controllers.AdminGetCourseDetails)
	adminGroup.Put("/:courseId", validators.CourseIDParam(), validators.UpdateCourse(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:courseId", validators.CourseIDParam(), controllers.AdminDeleteCourse)
	adminGroup.Post("/:courseId/publish", validators.CourseIDParam(), validators.PublishCourse(), controllers.AdminPublishCourse)

	// Chapter Management
	adminGroup.Post("/:courseId/chapter", validators.CourseIDParam(), validators.AddChapter(), controllers.AdminAddChapter)

	chapterGroup := app.Group("/admin/chapter", middleware.JWTMiddleware, middleware.AdminOnly)
	chapterGroup.Put("/:chapterId", validators.ChapterIDParam(), validators.UpdateChapter(), controllers.AdminUpdateChapter)
	chapterGroup.Delete("/:chapterId", validators.ChapterIDParam(), controllers.AdminDeleteChapter)

	// Lesson Management
	chapterGroup.Post("/:chapterId/lesson", validators.ChapterIDParam(), validators.AddLesson(), controllers.AdminAddLesson)

	lessonGroup := app.Group("/admin/lesson", middleware.JWTMiddleware, middleware.AdminOnly)
	lessonGroup.Put("/:lessonId", validators.LessonIDParam(), validators.UpdateLesson(), controllers.AdminUpdateLesson)
	lessonGroup.Delete("/:lessonId", validators.LessonIDParam(), controllers.AdminDeleteLesson)

	// Enrollment stats
	adminGroup.Get("/:courseId/stats", validators.CourseIDParam(), progressControllers.GetCourseStats)

	// Customer & purchase management
	customerGroup := app.Group("/admin/customer", middleware.JWTMiddleware, middleware.AdminOnly)
	customerGroup.Post("/create", purchaseValidators.CreateCustomer(), purchaseControllers.AdminCreateCustomer)
	customerGroup.Get("/:customerId/library", progressValidators.CustomerIDParam(), purchaseControllers.GetCustomerLibrary)
	customerGroup.Get("/:customerId/progress", progressValidators.CustomerIDParam(), progressControllers.GetCustomerProgress)

	purchaseGroup := app.Group("/admin/purchase", middleware.JWTMiddleware, middleware.AdminOnly)
	purchaseGroup.Post("/grant", purchaseValidators.GrantPurchase(), purchaseControllers.AdminGrantPurchase)
	purchaseGroup.Post("/:purchaseId/download", purchaseValidators.PurchaseIDParam(), purchaseControllers.RecordDownload)
}
