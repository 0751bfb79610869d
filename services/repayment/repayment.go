package repaymentService

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"plms/apperrors"
	"plms/config"
	"plms/database"
	"plms/models"
	"plms/services/emi"
	notificationService "plms/services/notification"
	"plms/utils"
)

// GenerateSchedule builds the EMI schedule for a loan at disbursement: one
// installment per tenure month, due dates spaced monthly from asOf, all rows
// PENDING with the same EMI amount. If a schedule already exists for the
// loan, the existing rows are returned unchanged, so a retried disbursement
// never duplicates installments.
func GenerateSchedule(applicationID string, asOf time.Time) ([]models.Repayment, error) {
	db := database.Database.Db

	var loan models.LoanApplication
	if err := db.Where("application_id = ? AND is_deleted = false", applicationID).First(&loan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	annualRate := decimal.NewFromFloat(config.AppConfig.AnnualInterestRate)
	installment, err := emi.Calculate(loan.LoanAmount, loan.TenureInMonths, annualRate)
	if err != nil {
		return nil, err
	}

	var schedule []models.Repayment
	err = db.Transaction(func(tx *gorm.DB) error {
		// Existing-schedule check runs inside the transaction so concurrent
		// disbursements cannot both insert.
		var existing []models.Repayment
		if err := tx.Where("application_id = ?", applicationID).
			Order("emi_number ASC").
			Find(&existing).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if len(existing) > 0 {
			schedule = existing
			return nil
		}

		schedule = make([]models.Repayment, 0, loan.TenureInMonths)
		for n := 1; n <= loan.TenureInMonths; n++ {
			schedule = append(schedule, models.Repayment{
				ApplicationID: applicationID,
				EMINumber:     n,
				EMIAmount:     installment,
				DueDate:       asOf.AddDate(0, n, 0),
				Status:        models.EMIPending,
			})
		}
		if err := tx.Create(&schedule).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return schedule, nil
}

// Pay settles a single installment. Marking the installment PAID and the
// closure check on the owning loan run in one transaction: a concurrent
// reader never observes a fully paid schedule under a loan that is not yet
// CLOSED. Paying an already settled installment fails with a conflict and
// leaves the loan untouched.
func Pay(installmentID uint) (*models.Repayment, error) {
	db := database.Database.Db

	var paid models.Repayment
	closed := false

	err := db.Transaction(func(tx *gorm.DB) error {
		var installment models.Repayment
		if err := tx.First(&installment, installmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrInstallmentNotFound
			}
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}

		if installment.Status == models.EMIPaid {
			return apperrors.ErrAlreadyPaid
		}

		now := time.Now()
		installment.Status = models.EMIPaid
		installment.PaidDate = &now
		if err := tx.Save(&installment).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}

		// Closure decision from a fresh read inside the same transaction
		var unpaid int64
		if err := tx.Model(&models.Repayment{}).
			Where("application_id = ? AND status <> ?", installment.ApplicationID, models.EMIPaid).
			Count(&unpaid).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if unpaid == 0 {
			// Full repayment is the one path to CLOSED; it bypasses the
			// operator transition guard on purpose.
			if err := tx.Model(&models.LoanApplication{}).
				Where("application_id = ?", installment.ApplicationID).
				Update("status", models.StatusClosed).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrStorage, err)
			}
			closed = true
		}

		paid = installment
		return nil
	})
	if err != nil {
		return nil, err
	}

	notifyPayment(&paid, closed)

	return &paid, nil
}

// PayAllPending settles every unpaid installment of a loan (overdue rows
// included) and closes it, in one transaction.
func PayAllPending(applicationID string) ([]models.Repayment, error) {
	db := database.Database.Db

	var loan models.LoanApplication
	if err := db.Where("application_id = ? AND is_deleted = false", applicationID).First(&loan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var total int64
		if err := tx.Model(&models.Repayment{}).
			Where("application_id = ?", applicationID).
			Count(&total).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if total == 0 {
			return apperrors.ErrInstallmentNotFound
		}

		now := time.Now()
		if err := tx.Model(&models.Repayment{}).
			Where("application_id = ? AND status <> ?", applicationID, models.EMIPaid).
			Updates(map[string]interface{}{"status": models.EMIPaid, "paid_date": now}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}

		if err := tx.Model(&models.LoanApplication{}).
			Where("application_id = ?", applicationID).
			Update("status", models.StatusClosed).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	notificationService.NotifyLoanStatus(loan.UserID, applicationID, models.StatusClosed)

	return ListForLoan(applicationID)
}

// GetInstallment returns a single installment or a not-found error
func GetInstallment(installmentID uint) (*models.Repayment, error) {
	var installment models.Repayment
	if err := database.Database.Db.First(&installment, installmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInstallmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &installment, nil
}

// ListForLoan returns the full schedule of a loan ordered by EMI number
func ListForLoan(applicationID string) ([]models.Repayment, error) {
	var schedule []models.Repayment
	err := database.Database.Db.
		Where("application_id = ?", applicationID).
		Order("emi_number ASC").
		Find(&schedule).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return schedule, nil
}

// ListPendingForLoan returns the not-yet-due unpaid installments of a loan
func ListPendingForLoan(applicationID string) ([]models.Repayment, error) {
	var schedule []models.Repayment
	err := database.Database.Db.
		Where("application_id = ? AND status = ?", applicationID, models.EMIPending).
		Order("emi_number ASC").
		Find(&schedule).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return schedule, nil
}

// ListForUser returns every installment across all of the user's loans
func ListForUser(userID uint) ([]models.Repayment, error) {
	db := database.Database.Db

	applicationIDs := db.Model(&models.LoanApplication{}).
		Select("application_id").
		Where("user_id = ? AND is_deleted = false", userID)

	var schedule []models.Repayment
	err := db.
		Where("application_id IN (?)", applicationIDs).
		Order("application_id ASC, emi_number ASC").
		Find(&schedule).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return schedule, nil
}

// SweepOverdue flags every unpaid installment whose due date has passed as
// OVERDUE and returns how many rows changed. Paid installments are never
// touched, and re-running the sweep is a no-op for rows already flagged.
func SweepOverdue(asOf time.Time) (int64, error) {
	result := database.Database.Db.
		Model(&models.Repayment{}).
		Where("status = ? AND due_date < ?", models.EMIPending, asOf).
		Update("status", models.EMIOverdue)
	if result.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrStorage, result.Error)
	}
	return result.RowsAffected, nil
}

// notifyPayment emits the per-payment notifications after the transaction
// has committed
func notifyPayment(installment *models.Repayment, closed bool) {
	var loan models.LoanApplication
	if err := database.Database.Db.
		Where("application_id = ?", installment.ApplicationID).
		First(&loan).Error; err != nil {
		return
	}

	notificationService.Create(loan.UserID, loan.ApplicationID,
		"EMI payment received for installment "+installment.DueDate.Format("Jan 2006")+".",
		models.NotificationEMIPaid)

	var user models.User
	if err := database.Database.Db.Where("id = ?", loan.UserID).First(&user).Error; err == nil {
		utils.SendEMIPaidEmail(user.Email, user.Name, installment.EMINumber, installment.EMIAmount.StringFixed(2))
	}

	if closed {
		notificationService.NotifyLoanStatus(loan.UserID, loan.ApplicationID, models.StatusClosed)
	}
}
