package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Loan application statuses. REJECTED and CLOSED are terminal.
const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusDisbursed = "DISBURSED"
	StatusRejected  = "REJECTED"
	StatusClosed    = "CLOSED"
)

type LoanApplication struct {
	gorm.Model
	ApplicationID  string          `gorm:"uniqueIndex;not null"` // opaque UUID, assigned at submission
	UserID         uint            `gorm:"index;not null"`
	Name           string          `gorm:"default:''"`
	Profession     string          `gorm:"default:''"`
	Purpose        string          `gorm:"default:''"`
	LoanAmount     decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	PanCard        string          `gorm:"index;not null"`
	TenureInMonths int             `gorm:"not null"`
	CreditScore    int             `gorm:"not null"` // computed once at submission, never recomputed
	Status         string          `gorm:"not null;default:'PENDING'"`
	IsDeleted      bool            `gorm:"default:false"`
}

// IsTerminalStatus reports whether no further transition is permitted
func IsTerminalStatus(status string) bool {
	return status == StatusRejected || status == StatusClosed
}

// IsValidStatus reports whether status is a known loan status
func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusDisbursed, StatusRejected, StatusClosed:
		return true
	}
	return false
}
