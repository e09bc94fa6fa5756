package models

import "gorm.io/gorm"

// Prediction values a loan application can carry.
const (
	PredictionPending  = "Pending"
	PredictionApproved = "Approved"
	PredictionRejected = "Rejected"
)

// ValidPrediction reports whether v is one of the three allowed prediction values.
func ValidPrediction(v string) bool {
	return v == PredictionPending || v == PredictionApproved || v == PredictionRejected
}

// LoanApplication is the immutable record of one submission and its outcome.
// Once written, only Prediction (via the admin path) and UpdatedAt change.
type LoanApplication struct {
	gorm.Model
	ReferenceID string `gorm:"uniqueIndex;not null"`
	UserID      uint   `gorm:"not null;index"`

	Income           float64 `gorm:"not null"`
	CreditScore      int     `gorm:"not null"`
	LoanAmount       float64 `gorm:"not null"`
	EmploymentStatus string  `gorm:"not null"`
	NationalID       int64   `gorm:"not null"`

	Prediction string `gorm:"default:'Pending'"`

	// VerificationFlag records whether the submitted figures matched the
	// verified registry record exactly at decision time.
	VerificationFlag bool `gorm:"default:false"`

	RejectionReason     string
	RejectionSuggestion string
	Suggestion          string

	IdentityDoc []byte `gorm:"type:bytea" json:"-"`
	TaxDoc      []byte `gorm:"type:bytea" json:"-"`
	IncomeDoc   []byte `gorm:"type:bytea" json:"-"`
}
