package authRoutes

import (
	authController "plms/controllers/auth"
	authValidator "plms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidator.Signup(), authController.Signup)
	authGroup.Post("/login", authValidator.Login(), authController.Login)
	authGroup.Post("/forgot-password", authValidator.ForgotPassword(), authController.ForgotPassword)
	authGroup.Post("/reset-password", authValidator.ResetPassword(), authController.ResetPassword)
}
