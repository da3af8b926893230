package authRoutes

import (
	authControllers "lms/controllers/auth"
	"lms/middleware"
	authValidators "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Get("/login/history", authValidators.LoginHistoryList(), middleware.JWTMiddleware, authControllers.LoginHistoryList)
}
