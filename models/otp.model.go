package models

import (
	"time"

	"gorm.io/gorm"
)

// OTP model for the password reset flow
type OTP struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null"`
	Code      string    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
	IsUsed    bool      `gorm:"default:false"`
}
