package documentValidator

import (
	"plms/middleware"
	"plms/models"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Upload validates the document upload form
func Upload() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		documentType := strings.ToUpper(strings.TrimSpace(c.FormValue("documentType")))
		switch documentType {
		case "":
			errors["documentType"] = "Document type is required!"
		case models.DocumentPFAccountPDF, models.DocumentSalarySlip:
			// known type
		default:
			errors["documentType"] = "Unknown document type!"
		}

		file, err := c.FormFile("file")
		if err != nil || file == nil || file.Size == 0 {
			errors["file"] = "A non-empty file is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedDocumentType", documentType)
		return c.Next()
	}
}
