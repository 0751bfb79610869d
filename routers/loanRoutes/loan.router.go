package loanRoutes

import (
	loanController "plms/controllers/loan"
	"plms/middleware"
	loanValidator "plms/validators/loan"

	"github.com/gofiber/fiber/v2"
)

func SetupLoanRoutes(app *fiber.App) {
	loanGroup := app.Group("/loans")

	// User routes
	loanGroup.Post("/apply", middleware.JWTMiddleware, loanValidator.Apply(), loanController.Apply)
	loanGroup.Get("/my", middleware.JWTMiddleware, loanController.GetMyApplications)

	// Admin routes
	loanGroup.Get("/", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), loanController.GetAllApplications)
	loanGroup.Put("/:applicationId/status", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), loanValidator.UpdateStatus(), loanController.UpdateStatus)
	loanGroup.Post("/:applicationId/disburse", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), loanController.Disburse)

	// Parameterised user route registered last so it cannot shadow the above
	loanGroup.Get("/:applicationId", middleware.JWTMiddleware, loanController.GetApplication)
}
