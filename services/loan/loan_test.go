package loanService

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"plms/apperrors"
	"plms/config"
	"plms/database"
	"plms/models"
	"plms/services/creditscore"
)

func setupTestDb(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.OTP{},
		&models.LoanApplication{},
		&models.Repayment{},
		&models.Notification{},
		&models.Document{},
	))

	database.Database = database.DbInstance{Db: db}
	config.AppConfig = &config.Config{
		SaltRound:          4,
		MinCreditScore:     600,
		AnnualInterestRate: 12.0,
	}
}

func createTestUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:     "Asha Verma",
		Email:    email,
		Password: "not-a-real-hash",
	}
	require.NoError(t, database.Database.Db.Create(user).Error)
	return user
}

// panWithScore searches PAN-shaped identifiers until the scorer lands on the
// wanted side of the approval threshold
func panWithScore(t *testing.T, approvable bool) string {
	t.Helper()
	for i := 0; i < 100000; i++ {
		pan := fmt.Sprintf("%c%c%c%c%c%04dX",
			'A'+i%26, 'A'+(i/26)%26, 'B'+i%24, 'C'+i%22, 'D'+i%20, i%10000)
		score := creditscore.Score(pan)
		if approvable && score >= 600 {
			return pan
		}
		if !approvable && score < 600 {
			return pan
		}
	}
	t.Fatal("no PAN found for wanted score band")
	return ""
}

func TestSubmitCreatesPendingApplication(t *testing.T) {
	setupTestDb(t)
	user := createTestUser(t, "asha@example.com")
	pan := panWithScore(t, true)

	application, err := Submit(SubmitInput{
		UserID:         user.ID,
		Name:           user.Name,
		Profession:     "Engineer",
		Purpose:        "Home renovation",
		LoanAmount:     decimal.NewFromInt(100000),
		PanCard:        pan,
		TenureInMonths: 12,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, application.ApplicationID)
	assert.Equal(t, models.StatusPending, application.Status)
	assert.Equal(t, creditscore.Score(pan), application.CreditScore)
	assert.GreaterOrEqual(t, application.CreditScore, 600)

	// a submission-acknowledged notification is stored
	var notifications []models.Notification
	require.NoError(t, database.Database.Db.Where("user_id = ?", user.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationSubmitted, notifications[0].Category)
}

func TestSubmitRejectsLowScoreAtCreation(t *testing.T) {
	setupTestDb(t)
	user := createTestUser(t, "asha@example.com")
	pan := panWithScore(t, false)

	application, err := Submit(SubmitInput{
		UserID:         user.ID,
		Name:           user.Name,
		Purpose:        "Car",
		LoanAmount:     decimal.NewFromInt(50000),
		PanCard:        pan,
		TenureInMonths: 6,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusRejected, application.Status)
	assert.Less(t, application.CreditScore, 600)

	// rejection lands as a status-change notification
	var notification models.Notification
	require.NoError(t, database.Database.Db.Where("user_id = ?", user.ID).First(&notification).Error)
	assert.Equal(t, models.NotificationStatusChange, notification.Category)
}

func TestSubmitScoreIsDeterministicPerPan(t *testing.T) {
	setupTestDb(t)
	pan := panWithScore(t, true)
	assert.Equal(t, creditscore.Score(pan), creditscore.Score(pan))

	user := createTestUser(t, "asha@example.com")
	application, err := Submit(SubmitInput{
		UserID:         user.ID,
		Name:           user.Name,
		Purpose:        "Education",
		LoanAmount:     decimal.NewFromInt(80000),
		PanCard:        pan,
		TenureInMonths: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, creditscore.Score(pan), application.CreditScore)
}

func TestSubmitValidation(t *testing.T) {
	setupTestDb(t)
	user := createTestUser(t, "asha@example.com")

	_, err := Submit(SubmitInput{UserID: user.ID, LoanAmount: decimal.NewFromInt(1000), PanCard: "ABCDE1234F", TenureInMonths: 0})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTenure)

	_, err = Submit(SubmitInput{UserID: user.ID, LoanAmount: decimal.Zero, PanCard: "ABCDE1234F", TenureInMonths: 12})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPrincipal)

	_, err = Submit(SubmitInput{UserID: user.ID, LoanAmount: decimal.NewFromInt(1000), PanCard: "   ", TenureInMonths: 12})
	assert.ErrorIs(t, err, apperrors.ErrMissingPan)
}

func TestSubmitUnknownUser(t *testing.T) {
	setupTestDb(t)

	_, err := Submit(SubmitInput{UserID: 999, LoanAmount: decimal.NewFromInt(1000), PanCard: "ABCDE1234F", TenureInMonths: 12})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestSubmitDuplicatePanConflict(t *testing.T) {
	setupTestDb(t)
	first := createTestUser(t, "asha@example.com")
	second := createTestUser(t, "ravi@example.com")
	pan := panWithScore(t, true)

	_, err := Submit(SubmitInput{UserID: first.ID, Name: first.Name, LoanAmount: decimal.NewFromInt(1000), PanCard: pan, TenureInMonths: 12})
	require.NoError(t, err)

	// same PAN, different case, different holder: still a conflict
	_, err = Submit(SubmitInput{UserID: second.ID, Name: second.Name, LoanAmount: decimal.NewFromInt(1000), PanCard: strings.ToLower(pan), TenureInMonths: 12})
	assert.ErrorIs(t, err, apperrors.ErrDuplicatePan)
}

func TestSubmitPanReusableAfterRejection(t *testing.T) {
	setupTestDb(t)
	user := createTestUser(t, "asha@example.com")
	pan := panWithScore(t, false)

	first, err := Submit(SubmitInput{UserID: user.ID, Name: user.Name, LoanAmount: decimal.NewFromInt(1000), PanCard: pan, TenureInMonths: 12})
	require.NoError(t, err)
	require.Equal(t, models.StatusRejected, first.Status)

	// a rejected application does not block the PAN
	second, err := Submit(SubmitInput{UserID: user.ID, Name: user.Name, LoanAmount: decimal.NewFromInt(1000), PanCard: pan, TenureInMonths: 12})
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, second.Status)
}

func TestSubmitActiveLoanConflict(t *testing.T) {
	setupTestDb(t)
	user := createTestUser(t, "asha@example.com")
	pan := panWithScore(t, true)

	application, err := Submit(SubmitInput{UserID: user.ID, Name: user.Name, LoanAmount: decimal.NewFromInt(1000), PanCard: pan, TenureInMonths: 12})
	require.NoError(t, err)

	_, err = UpdateStatus(application.ApplicationID, models.StatusApproved)
	require.NoError(t, err)

	_, err = Submit(SubmitInput{UserID: user.ID, Name: user.Name, LoanAmount: decimal.NewFromInt(2000), PanCard: "ZZZZZ9999Z", TenureInMonths: 6})
	assert.ErrorIs(t, err, apperrors.ErrActiveLoanExists)
}

func TestUpdateStatusNotFound(t *testing.T) {
	setupTestDb(t)

	_, err := UpdateStatus("no-such-application", models.StatusApproved)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}

func TestUpdateStatusTerminalGuard(t *testing.T) {
	setupTestDb(t)
	user := createTestUser(t, "asha@example.com")
	pan := panWithScore(t, false)

	application, err := Submit(SubmitInput{UserID: user.ID, Name: user.Name, LoanAmount: decimal.NewFromInt(1000), PanCard: pan, TenureInMonths: 12})
	require.NoError(t, err)
	require.Equal(t, models.StatusRejected, application.Status)

	_, err = UpdateStatus(application.ApplicationID, models.StatusPending)
	assert.ErrorIs(t, err, apperrors.ErrTerminalStatus)

	// status unchanged by the failed attempt
	reloaded, err := GetByID(application.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, reloaded.Status)
}

func TestUpdateStatusInvalidTarget(t *testing.T) {
	setupTestDb(t)

	_, err := UpdateStatus("whatever", "GRANTED")
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
}

func TestUpdateStatusEmitsNotification(t *testing.T) {
	setupTestDb(t)
	user := createTestUser(t, "asha@example.com")
	pan := panWithScore(t, true)

	application, err := Submit(SubmitInput{UserID: user.ID, Name: user.Name, LoanAmount: decimal.NewFromInt(1000), PanCard: pan, TenureInMonths: 12})
	require.NoError(t, err)

	updated, err := UpdateStatus(application.ApplicationID, models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, updated.Status)

	var notifications []models.Notification
	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND category = ?", user.ID, models.NotificationStatusChange).
		Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].Message, models.StatusApproved)
	assert.Contains(t, notifications[0].Message, application.ApplicationID)
}

func TestGetByIDNotFound(t *testing.T) {
	setupTestDb(t)

	_, err := GetByID("missing")
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}

func TestGetByUserEmpty(t *testing.T) {
	setupTestDb(t)

	applications, err := GetByUser(12345)
	require.NoError(t, err)
	assert.Empty(t, applications)
}

func TestGetAll(t *testing.T) {
	setupTestDb(t)
	user := createTestUser(t, "asha@example.com")

	_, err := Submit(SubmitInput{UserID: user.ID, Name: user.Name, LoanAmount: decimal.NewFromInt(1000), PanCard: panWithScore(t, true), TenureInMonths: 12})
	require.NoError(t, err)

	applications, err := GetAll()
	require.NoError(t, err)
	assert.Len(t, applications, 1)
}
