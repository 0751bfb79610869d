package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// AppError carries a stable code and the HTTP status the edge should answer
// with, so controllers never collapse not-found and conflict into one bucket.
type AppError struct {
	Code       string
	Message    string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds an AppError with the given code, message and HTTP status
func New(code, message string, statusCode int) *AppError {
	return &AppError{Code: code, Message: message, StatusCode: statusCode}
}

// Wrap attaches an underlying cause to a copy of the given AppError
func Wrap(base *AppError, err error) *AppError {
	return &AppError{Code: base.Code, Message: base.Message, StatusCode: base.StatusCode, Err: err}
}

var (
	ErrUserNotFound        = New("USER_NOT_FOUND", "User not found!", fiber.StatusNotFound)
	ErrApplicationNotFound = New("APPLICATION_NOT_FOUND", "Loan application not found!", fiber.StatusNotFound)
	ErrInstallmentNotFound = New("INSTALLMENT_NOT_FOUND", "Repayment installment not found!", fiber.StatusNotFound)
	ErrDocumentNotFound    = New("DOCUMENT_NOT_FOUND", "Document not found!", fiber.StatusNotFound)

	ErrDuplicatePan        = New("DUPLICATE_PAN", "PAN card already exists in another application!", fiber.StatusConflict)
	ErrActiveLoanExists    = New("ACTIVE_LOAN_EXISTS", "An active loan already exists. Cannot apply again until it is closed.", fiber.StatusConflict)
	ErrAlreadyPaid         = New("EMI_ALREADY_PAID", "This EMI is already paid.", fiber.StatusConflict)
	ErrTerminalStatus      = New("TRANSITION_NOT_ALLOWED", "Application is in a terminal status and cannot be updated.", fiber.StatusConflict)
	ErrEmailTaken          = New("EMAIL_TAKEN", "Email is already registered!", fiber.StatusConflict)

	ErrInvalidTenure    = New("INVALID_TENURE", "Tenure must be greater than zero months.", fiber.StatusUnprocessableEntity)
	ErrInvalidPrincipal = New("INVALID_PRINCIPAL", "Loan amount must be greater than zero.", fiber.StatusUnprocessableEntity)
	ErrInvalidStatus    = New("INVALID_STATUS", "Unknown loan status.", fiber.StatusUnprocessableEntity)
	ErrMissingPan       = New("MISSING_PAN", "PAN card number is required.", fiber.StatusUnprocessableEntity)

	ErrStorage = New("STORAGE_ERROR", "Database operation failed.", fiber.StatusInternalServerError)
)

// HTTPStatus extracts the HTTP status for err, defaulting to 500
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return fiber.StatusInternalServerError
}

// Message extracts the user-facing message for err
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong!"
}
