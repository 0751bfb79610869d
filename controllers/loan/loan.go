package loanController

import (
	"log"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"plms/apperrors"
	"plms/config"
	"plms/database"
	"plms/middleware"
	"plms/models"
	loanService "plms/services/loan"
	repaymentService "plms/services/repayment"
	"plms/utils"
	loanValidator "plms/validators/loan"
)

// applicationResponse shapes an application for the API boundary
func applicationResponse(app *models.LoanApplication) fiber.Map {
	return fiber.Map{
		"applicationId":  app.ApplicationID,
		"name":           app.Name,
		"profession":     app.Profession,
		"purpose":        app.Purpose,
		"loanAmount":     app.LoanAmount,
		"creditScore":    app.CreditScore,
		"panCard":        app.PanCard,
		"tenureInMonths": app.TenureInMonths,
		"status":         app.Status,
		"appliedAt":      app.CreatedAt,
	}
}

func applicationListResponse(apps []models.LoanApplication) []fiber.Map {
	out := make([]fiber.Map, 0, len(apps))
	for i := range apps {
		out = append(out, applicationResponse(&apps[i]))
	}
	return out
}

// Apply submits a new loan application for the caller. Supporting documents
// may ride along in the multipart form; their storage is best-effort and
// never fails a submission that has already been accepted.
func Apply(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedApply").(*loanValidator.ApplyRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	application, err := loanService.Submit(loanService.SubmitInput{
		UserID:         userId,
		Name:           reqData.Name,
		Profession:     reqData.Profession,
		Purpose:        reqData.Purpose,
		LoanAmount:     reqData.LoanAmount,
		PanCard:        reqData.PanCard,
		TenureInMonths: reqData.TenureInMonths,
	})
	if err != nil {
		return middleware.JsonResponse(c, apperrors.HTTPStatus(err), false, apperrors.Message(err), nil)
	}

	saveSupportingDocument(c, userId, "pfAccountPdf", models.DocumentPFAccountPDF)
	saveSupportingDocument(c, userId, "salarySlip", models.DocumentSalarySlip)

	message := "Loan application submitted successfully!"
	if application.Status == models.StatusRejected {
		message = "Loan application rejected due to insufficient credit score."
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, message, applicationResponse(application))
}

func saveSupportingDocument(c *fiber.Ctx, userId uint, formField, documentType string) {
	file, err := c.FormFile(formField)
	if err != nil || file == nil || file.Size == 0 {
		return
	}
	storeDocument(file, userId, documentType)
}

func storeDocument(file *multipart.FileHeader, userId uint, documentType string) {
	destDir := filepath.Join(config.AppConfig.UploadDir, strconv.FormatUint(uint64(userId), 10))
	filePath, err := utils.SaveUploadedFile(file, destDir)
	if err != nil {
		log.Printf("Error storing %s for user %d: %v", documentType, userId, err)
		return
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
		log.Printf("Error saving document record for user %d: %v", userId, err)
	}
}

// GetMyApplications lists the caller's applications
func GetMyApplications(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	applications, err := loanService.GetByUser(userId)
	if err != nil {
		return middleware.JsonResponse(c, apperrors.HTTPStatus(err), false, apperrors.Message(err), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Applications fetched!", applicationListResponse(applications))
}

// GetApplication fetches a single application. Users may only read their
// own; operators may read any.
func GetApplication(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	applicationId := c.Params("applicationId")

	application, err := loanService.GetByID(applicationId)
	if err != nil {
		return middleware.JsonResponse(c, apperrors.HTTPStatus(err), false, apperrors.Message(err), nil)
	}

	if application.UserID != userId && !isAdmin(c) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this application!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Application fetched!", applicationResponse(application))
}

// GetAllApplications lists every application in the system (admin)
func GetAllApplications(c *fiber.Ctx) error {
	applications, err := loanService.GetAll()
	if err != nil {
		return middleware.JsonResponse(c, apperrors.HTTPStatus(err), false, apperrors.Message(err), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Applications fetched!", applicationListResponse(applications))
}

// UpdateStatus is the operator override path for status changes (admin)
func UpdateStatus(c *fiber.Ctx) error {
	applicationId := c.Params("applicationId")

	reqData, ok := c.Locals("validatedUpdateStatus").(*loanValidator.UpdateStatusRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	application, err := loanService.UpdateStatus(applicationId, reqData.Status)
	if err != nil {
		return middleware.JsonResponse(c, apperrors.HTTPStatus(err), false, apperrors.Message(err), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Status updated!", applicationResponse(application))
}

// Disburse releases the funds of an approved loan and generates its EMI
// schedule (admin). Schedule generation is idempotent, so a retried
// disbursement call cannot duplicate installments.
func Disburse(c *fiber.Ctx) error {
	applicationId := c.Params("applicationId")

	application, err := loanService.GetByID(applicationId)
	if err != nil {
		return middleware.JsonResponse(c, apperrors.HTTPStatus(err), false, apperrors.Message(err), nil)
	}

	if application.Status != models.StatusDisbursed {
		application, err = loanService.UpdateStatus(applicationId, models.StatusDisbursed)
		if err != nil {
			return middleware.JsonResponse(c, apperrors.HTTPStatus(err), false, apperrors.Message(err), nil)
		}
	}

	schedule, err := repaymentService.GenerateSchedule(applicationId, time.Now())
	if err != nil {
		return middleware.JsonResponse(c, apperrors.HTTPStatus(err), false, apperrors.Message(err), nil)
	}

	scheduleOut := make([]fiber.Map, 0, len(schedule))
	for i := range schedule {
		emi := &schedule[i]
		scheduleOut = append(scheduleOut, fiber.Map{
			"id":            emi.ID,
			"emiNumber":     emi.EMINumber,
			"emiAmount":     emi.EMIAmount,
			"dueDate":       emi.DueDate,
			"status":        emi.Status,
			"applicationId": emi.ApplicationID,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Loan disbursed and EMI schedule generated!", fiber.Map{
		"application": applicationResponse(application),
		"schedule":    scheduleOut,
	})
}

func isAdmin(c *fiber.Ctx) bool {
	role, _ := c.Locals("userRole").(string)
	return role == "ADMIN"
}
