package repaymentController

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"plms/apperrors"
	"plms/middleware"
	"plms/models"
	loanService "plms/services/loan"
	repaymentService "plms/services/repayment"
)

// repaymentResponse shapes an installment for the API boundary
func repaymentResponse(emi *models.Repayment) fiber.Map {
	return fiber.Map{
		"id":            emi.ID,
		"emiNumber":     emi.EMINumber,
		"emiAmount":     emi.EMIAmount,
		"dueDate":       emi.DueDate,
		"paidDate":      emi.PaidDate,
		"status":        emi.Status,
		"applicationId": emi.ApplicationID,
	}
}

func repaymentListResponse(schedule []models.Repayment) []fiber.Map {
	out := make([]fiber.Map, 0, len(schedule))
	for i := range schedule {
		out = append(out, repaymentResponse(&schedule[i]))
	}
	return out
}

// canAccessLoan reports whether the caller owns the loan or is an operator
func canAccessLoan(c *fiber.Ctx, applicationId string) (bool, error) {
	application, err := loanService.GetByID(applicationId)
	if err != nil {
		return false, err
	}

	userId := c.Locals("userId").(uint)
	role, _ := c.Locals("userRole").(string)
	return application.UserID == userId || role == "ADMIN", nil
}

// GetSchedule returns the full EMI schedule of a loan
func GetSchedule(c *fiber.Ctx) error {
	applicationId := c.Params("applicationId")

	allowed, err := canAccessLoan(c, applicationId)
	if err != nil {
		return middleware.JsonResponse(c, apperrors.HTTPStatus(err), false, apperrors.Message(err), nil)
	}
	if !allowed {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this loan!", nil)
	}

	schedule, err := repaymentService.ListForLoan(applicationId)
	if err != nil {
		return middleware.JsonResponse(c, apperrors.HTTPStatus(err), false, apperrors.Message(err), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "EMI schedule fetched!", repaymentListResponse(schedule))
}

// GetPendingEMIs returns the unpaid, not yet overdue installments of a loan
func GetPendingEMIs(c *fiber.Ctx) error {
	applicationId := c.Params("applicationId")

	allowed, err := canAccessLoan(c, applicationId)
	if err != nil {
		return middleware.JsonResponse(c, apperrors.HTTPStatus(err), false, apperrors.Message(err), nil)
	}
	if !allowed {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this loan!", nil)
	}

	pending, err := repaymentService.ListPendingForLoan(applicationId)
	if err != nil {
		return middleware.JsonResponse(c, apperrors.HTTPStatus(err), false, apperrors.Message(err), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending EMIs fetched!", repaymentListResponse(pending))
}

// GetMyEMIs returns every installment across the caller's loans
func GetMyEMIs(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	schedule, err := repaymentService.ListForUser(userId)
	if err != nil {
		return middleware.JsonResponse(c, apperrors.HTTPStatus(err), false, apperrors.Message(err), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "EMIs fetched!", repaymentListResponse(schedule))
}

// PayEMI settles a single installment of the caller's loan
func PayEMI(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid installment id!", nil)
	}

	installment, err := repaymentService.GetInstallment(uint(id))
	if err != nil {
		return middleware.JsonResponse(c, apperrors.HTTPStatus(err), false, apperrors.Message(err), nil)
	}

	allowed, err := canAccessLoan(c, installment.ApplicationID)
	if err != nil {
		return middleware.JsonResponse(c, apperrors.HTTPStatus(err), false, apperrors.Message(err), nil)
	}
	if !allowed {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this loan!", nil)
	}

	paid, err := repaymentService.Pay(uint(id))
	if err != nil {
		return middleware.JsonResponse(c, apperrors.HTTPStatus(err), false, apperrors.Message(err), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "EMI paid successfully!", repaymentResponse(paid))
}

// PayAllPending settles every unpaid installment of the caller's loan and
// closes it
func PayAllPending(c *fiber.Ctx) error {
	applicationId := c.Params("applicationId")

	allowed, err := canAccessLoan(c, applicationId)
	if err != nil {
		return middleware.JsonResponse(c, apperrors.HTTPStatus(err), false, apperrors.Message(err), nil)
	}
	if !allowed {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this loan!", nil)
	}

	schedule, err := repaymentService.PayAllPending(applicationId)
	if err != nil {
		return middleware.JsonResponse(c, apperrors.HTTPStatus(err), false, apperrors.Message(err), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "All pending EMIs paid and loan closed!", repaymentListResponse(schedule))
}
