package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name            string `gorm:"default:''"`
	Email           string `gorm:"unique;not null"`
	Mobile          string `gorm:"default:''"`
	Role            string `gorm:"default:'USER'"` // Default role is USER, ADMIN for operators
	Password        string `gorm:"not null"`
	Profession      string `gorm:"default:''"`
	IsEmailVerified bool   `gorm:"default:false"`
	LastLogin       time.Time
	IsDeleted       bool `gorm:"default:false"`
}
