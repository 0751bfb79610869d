package models

import (
	"gorm.io/gorm"
)

// Notification categories
const (
	NotificationStatusChange = "STATUS_CHANGE"
	NotificationSubmitted    = "APPLICATION_SUBMITTED"
	NotificationEMIPaid      = "EMI_PAID"
)

type Notification struct {
	gorm.Model
	UserID        uint   `gorm:"index;not null"`
	ApplicationID string `gorm:"index;default:''"`
	Message       string `gorm:"not null"`
	Category      string `gorm:"not null"`
	IsRead        bool   `gorm:"default:false"`
}
