package loanValidator

import (
	"plms/middleware"
	"plms/models"
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// PAN format: five letters, four digits, one letter
var panPattern = regexp.MustCompile(`^[A-Za-z]{5}[0-9]{4}[A-Za-z]$`)

// ApplyRequest carries the parsed multipart form fields of a loan application
type ApplyRequest struct {
	Name           string
	Profession     string
	Purpose        string
	LoanAmount     decimal.Decimal
	PanCard        string
	TenureInMonths int
}

// Apply validates the loan application form. The request is multipart
// because supporting documents ride along with the fields.
func Apply() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		reqData := &ApplyRequest{
			Name:       strings.TrimSpace(c.FormValue("name")),
			Profession: strings.TrimSpace(c.FormValue("profession")),
			Purpose:    strings.TrimSpace(c.FormValue("purpose")),
			PanCard:    strings.TrimSpace(c.FormValue("panCard")),
		}

		if reqData.Name == "" {
			errors["name"] = "Name is required!"
		}
		if reqData.Purpose == "" {
			errors["purpose"] = "Loan purpose is required!"
		}

		if reqData.PanCard == "" {
			errors["panCard"] = "PAN card number is required!"
		} else if !panPattern.MatchString(reqData.PanCard) {
			errors["panCard"] = "Invalid PAN card format!"
		}

		amountRaw := strings.TrimSpace(c.FormValue("loanAmount"))
		if amountRaw == "" {
			errors["loanAmount"] = "Loan amount is required!"
		} else {
			amount, err := decimal.NewFromString(amountRaw)
			if err != nil || !amount.IsPositive() {
				errors["loanAmount"] = "Loan amount must be a positive number!"
			} else {
				reqData.LoanAmount = amount
			}
		}

		tenureRaw := strings.TrimSpace(c.FormValue("tenureInMonths"))
		if tenureRaw == "" {
			errors["tenureInMonths"] = "Tenure is required!"
		} else {
			tenure, err := strconv.Atoi(tenureRaw)
			if err != nil || tenure <= 0 {
				errors["tenureInMonths"] = "Tenure must be a positive number of months!"
			} else {
				reqData.TenureInMonths = tenure
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedApply", reqData)
		return c.Next()
	}
}

// UpdateStatusRequest is the operator status-change payload
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus validates the operator status-change request
func UpdateStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateStatusRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Status = strings.ToUpper(strings.TrimSpace(reqData.Status))
		if reqData.Status == "" {
			errors["status"] = "Status is required!"
		} else if !models.IsValidStatus(reqData.Status) {
			errors["status"] = "Unknown loan status!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdateStatus", reqData)
		return c.Next()
	}
}
