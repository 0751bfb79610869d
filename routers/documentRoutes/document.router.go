package documentRoutes

import (
	documentController "plms/controllers/document"
	"plms/middleware"
	documentValidator "plms/validators/document"

	"github.com/gofiber/fiber/v2"
)

func SetupDocumentRoutes(app *fiber.App) {
	documentGroup := app.Group("/documents")

	documentGroup.Post("/upload", middleware.JWTMiddleware, documentValidator.Upload(), documentController.Upload)
	documentGroup.Get("/my", middleware.JWTMiddleware, documentController.MyDocuments)
	documentGroup.Get("/:id/download", middleware.JWTMiddleware, documentController.Download)
}
