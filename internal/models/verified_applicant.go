package models

import (
	"time"

	"gorm.io/gorm"
)

// VerifiedApplicant is the cross-institution verification record, keyed by
// applicant email. It acts as the shared ground-truth ledger: the values every
// participating bank agrees on, the reference documents submitted during
// verification, and the applicant's standing elsewhere.
//
// Invariant: at most one row per email. BankCount is never below 1.
type VerifiedApplicant struct {
	ID                 uint    `gorm:"primarykey"`
	Email              string  `gorm:"uniqueIndex;not null"`
	CorrectIncome      float64 `gorm:"not null"`
	CorrectCreditScore int     `gorm:"not null"`
	EmploymentStatus   string  `gorm:"not null"`
	NationalID         int64   `gorm:"not null"`

	// BankCount tracks how many institutions the applicant has applied through.
	BankCount int `gorm:"default:1"`

	// Status is set by an administrator: true means the applicant is in good
	// standing (approved elsewhere), false means a prior rejection on record.
	Status bool `gorm:"default:true"`

	// Reference documents used for byte-exact cross-checking of submissions.
	IdentityDoc []byte `gorm:"type:bytea" json:"-"`
	TaxDoc      []byte `gorm:"type:bytea" json:"-"`
	IncomeDoc   []byte `gorm:"type:bytea" json:"-"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
