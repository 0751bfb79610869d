package documentController

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"plms/config"
	"plms/database"
	"plms/middleware"
	"plms/models"
	"plms/utils"

	"path/filepath"
)

// Upload stores a supporting document for the caller
func Upload(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	documentType, ok := c.Locals("validatedDocumentType").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "A file is required!", nil)
	}

	destDir := filepath.Join(config.AppConfig.UploadDir, strconv.FormatUint(uint64(userId), 10))
	filePath, err := utils.SaveUploadedFile(file, destDir)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Could not store file!", nil)
	}

	document := models.Document{
		UserID:       userId,
		FileName:     file.Filename,
		DocumentType: documentType,
		FilePath:     filePath,
		FileSize:     file.Size,
		ContentType:  file.Header.Get("Content-Type"),
	}
	if err := database.Database.Db.Create(&document).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Could not save document record!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Document uploaded!", fiber.Map{
		"id":           document.ID,
		"fileName":     document.FileName,
		"documentType": document.DocumentType,
		"fileSize":     document.FileSize,
		"uploadedAt":   document.CreatedAt,
	})
}

// MyDocuments lists the caller's documents
func MyDocuments(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var documents []models.Document
	err := database.Database.Db.
		Where("user_id = ? AND is_deleted = false", userId).
		Order("created_at DESC").
		Find(&documents).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch documents!", nil)
	}

	out := make([]fiber.Map, 0, len(documents))
	for _, document := range documents {
		out = append(out, fiber.Map{
			"id":           document.ID,
			"fileName":     document.FileName,
			"documentType": document.DocumentType,
			"fileSize":     document.FileSize,
			"contentType":  document.ContentType,
			"uploadedAt":   document.CreatedAt,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Documents fetched!", out)
}

// Download streams a stored document back to its owner (or an operator)
func Download(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	role, _ := c.Locals("userRole").(string)

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid document id!", nil)
	}

	var document models.Document
	err = database.Database.Db.Where("id = ? AND is_deleted = false", id).First(&document).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Document not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch document!", nil)
	}

	if document.UserID != userId && role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this document!", nil)
	}

	return c.Download(document.FilePath, document.FileName)
}
