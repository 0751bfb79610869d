package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repayment (EMI installment) statuses
const (
	EMIPending = "PENDING"
	EMIPaid    = "PAID"
	EMIOverdue = "OVERDUE"
)

// Repayment is a single EMI installment of a disbursed loan. It carries a
// non-owning back-reference to its loan via ApplicationID.
type Repayment struct {
	gorm.Model
	ApplicationID string          `gorm:"index;not null"`
	EMINumber     int             `gorm:"not null"` // 1-based position in the schedule
	EMIAmount     decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	DueDate       time.Time       `gorm:"not null"`
	PaidDate      *time.Time
	Status        string `gorm:"not null;default:'PENDING'"`
}
