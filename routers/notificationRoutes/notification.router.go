package notificationRoutes

import (
	notificationController "plms/controllers/notification"
	"plms/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupNotificationRoutes(app *fiber.App) {
	notificationGroup := app.Group("/notifications")

	notificationGroup.Get("/my", middleware.JWTMiddleware, notificationController.MyNotifications)
	notificationGroup.Put("/:id/read", middleware.JWTMiddleware, notificationController.MarkRead)
}
