package notificationService

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"plms/apperrors"
	"plms/database"
	"plms/models"
	"plms/utils"
)

// Create stores a notification row for the user. Notification delivery is
// best-effort: failures are logged and never propagated, so a lifecycle
// transition is never rolled back because a notification could not be saved.
func Create(userID uint, applicationID, message, category string) {
	notification := models.Notification{
		UserID:        userID,
		ApplicationID: applicationID,
		Message:       message,
		Category:      category,
	}

	if err := database.Database.Db.Create(&notification).Error; err != nil {
		log.Printf("[NOTIFICATION] Failed to save notification for user %d: %v", userID, err)
	}
}

// NotifyLoanStatus records a status-change notification and emails the holder
func NotifyLoanStatus(userID uint, applicationID, status string) {
	message := fmt.Sprintf("Your loan application %s is now %s.", applicationID, status)
	Create(userID, applicationID, message, models.NotificationStatusChange)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		log.Printf("[NOTIFICATION] Failed to fetch user %d for status email: %v", userID, err)
		return
	}

	utils.SendLoanStatusEmail(user.Email, user.Name, applicationID, status)
}

// ListForUser returns the user's notifications, newest first
func ListForUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := database.Database.Db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return notifications, nil
}

// MarkRead flags a single notification of the user as read
func MarkRead(id uint, userID uint) (*models.Notification, error) {
	var notification models.Notification
	err := database.Database.Db.Where("id = ? AND user_id = ?", id, userID).First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New("NOTIFICATION_NOT_FOUND", "Notification not found!", 404)
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	notification.IsRead = true
	if err := database.Database.Db.Save(&notification).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &notification, nil
}
