package repaymentRoutes

import (
	repaymentController "plms/controllers/repayment"
	"plms/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupRepaymentRoutes(app *fiber.App) {
	repaymentGroup := app.Group("/repayments")

	repaymentGroup.Get("/my", middleware.JWTMiddleware, repaymentController.GetMyEMIs)
	repaymentGroup.Get("/loan/:applicationId", middleware.JWTMiddleware, repaymentController.GetSchedule)
	repaymentGroup.Get("/loan/:applicationId/pending", middleware.JWTMiddleware, repaymentController.GetPendingEMIs)
	repaymentGroup.Post("/loan/:applicationId/pay-all", middleware.JWTMiddleware, repaymentController.PayAllPending)
	repaymentGroup.Post("/:id/pay", middleware.JWTMiddleware, repaymentController.PayEMI)
}
