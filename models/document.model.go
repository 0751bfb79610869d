package models

import (
	"gorm.io/gorm"
)

// Supporting document types
const (
	DocumentPFAccountPDF = "PF_ACCOUNT_PDF"
	DocumentSalarySlip   = "SALARY_SLIP"
)

// Document records an uploaded supporting file. The bytes live on disk; the
// loan core only records that the document exists.
type Document struct {
	gorm.Model
	UserID       uint   `gorm:"index;not null"`
	FileName     string `gorm:"not null"` // original upload name
	DocumentType string `gorm:"not null"`
	FilePath     string `gorm:"not null"`
	FileSize     int64
	ContentType  string
	IsDeleted    bool `gorm:"default:false"`
}
