package loanService

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"plms/apperrors"
	"plms/config"
	"plms/database"
	"plms/models"
	"plms/services/creditscore"
	notificationService "plms/services/notification"
)

// SubmitInput carries the applicant-provided fields of a new application
type SubmitInput struct {
	UserID         uint
	Name           string
	Profession     string
	Purpose        string
	LoanAmount     decimal.Decimal
	PanCard        string
	TenureInMonths int
}

// Submit creates a loan application. The credit score is computed exactly
// once here; an application whose score falls below the configured minimum
// is created directly in REJECTED status. Duplicate-PAN and active-loan
// checks run inside the same transaction as the insert so two concurrent
// submissions cannot both pass them.
func Submit(in SubmitInput) (*models.LoanApplication, error) {
	if in.TenureInMonths <= 0 {
		return nil, apperrors.ErrInvalidTenure
	}
	if !in.LoanAmount.IsPositive() {
		return nil, apperrors.ErrInvalidPrincipal
	}
	if strings.TrimSpace(in.PanCard) == "" {
		return nil, apperrors.ErrMissingPan
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", in.UserID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	score := creditscore.Score(in.PanCard)

	application := &models.LoanApplication{
		ApplicationID:  uuid.NewString(),
		UserID:         in.UserID,
		Name:           in.Name,
		Profession:     in.Profession,
		Purpose:        in.Purpose,
		LoanAmount:     in.LoanAmount,
		PanCard:        strings.ToUpper(strings.TrimSpace(in.PanCard)),
		TenureInMonths: in.TenureInMonths,
		CreditScore:    score,
		Status:         models.StatusPending,
	}
	if score < config.AppConfig.MinCreditScore {
		application.Status = models.StatusRejected
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		// An applicant may hold at most one active (approved or disbursed) loan
		var activeCount int64
		if err := tx.Model(&models.LoanApplication{}).
			Where("user_id = ? AND status IN ? AND is_deleted = false",
				in.UserID, []string{models.StatusApproved, models.StatusDisbursed}).
			Count(&activeCount).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if activeCount > 0 {
			return apperrors.ErrActiveLoanExists
		}

		// The PAN must be unique among non-rejected applications system-wide
		var panCount int64
		if err := tx.Model(&models.LoanApplication{}).
			Where("UPPER(pan_card) = ? AND status <> ? AND is_deleted = false",
				application.PanCard, models.StatusRejected).
			Count(&panCount).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if panCount > 0 {
			return apperrors.ErrDuplicatePan
		}

		if err := tx.Create(application).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Notification delivery never rolls back the submission
	if application.Status == models.StatusRejected {
		notificationService.NotifyLoanStatus(in.UserID, application.ApplicationID, models.StatusRejected)
	} else {
		notificationService.Create(in.UserID, application.ApplicationID,
			"Your loan application has been submitted successfully!", models.NotificationSubmitted)
	}

	return application, nil
}

// UpdateStatus is the operator-driven transition path. It permits any
// non-terminal target but refuses to move an application that has reached
// REJECTED or CLOSED.
func UpdateStatus(applicationID, newStatus string) (*models.LoanApplication, error) {
	if !models.IsValidStatus(newStatus) {
		return nil, apperrors.ErrInvalidStatus
	}

	db := database.Database.Db

	var application models.LoanApplication
	if err := db.Where("application_id = ? AND is_deleted = false", applicationID).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	if models.IsTerminalStatus(application.Status) {
		return nil, apperrors.ErrTerminalStatus
	}

	application.Status = newStatus
	if err := db.Save(&application).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	notificationService.NotifyLoanStatus(application.UserID, application.ApplicationID, newStatus)

	return &application, nil
}

// GetByID returns a single application or a not-found error
func GetByID(applicationID string) (*models.LoanApplication, error) {
	var application models.LoanApplication
	err := database.Database.Db.
		Where("application_id = ? AND is_deleted = false", applicationID).
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &application, nil
}

// GetByUser returns all applications of one user, newest first. An unknown
// user simply yields an empty slice.
func GetByUser(userID uint) ([]models.LoanApplication, error) {
	var applications []models.LoanApplication
	err := database.Database.Db.
		Where("user_id = ? AND is_deleted = false", userID).
		Order("created_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return applications, nil
}

// GetAll returns every application in the system, newest first
func GetAll() ([]models.LoanApplication, error) {
	var applications []models.LoanApplication
	err := database.Database.Db.
		Where("is_deleted = false").
		Order("created_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return applications, nil
}
