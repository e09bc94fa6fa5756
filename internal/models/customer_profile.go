package models

import "gorm.io/gorm"

// CustomerProfile holds contact and payment metadata, one row per user. It is
// upserted as a side effect of loan submission and is not decision-relevant.
//
// The legacy system stored the rejection-suggestion text in the payment-mode
// column; that value now lives in LastRejectionSuggestion while PaymentMode
// stays a genuine payment preference.
type CustomerProfile struct {
	gorm.Model
	UserID      uint   `gorm:"uniqueIndex;not null"`
	Address     string `gorm:"default:'Not Provided'"`
	PaymentMode string `gorm:"default:'Not Provided'"`
	PhoneNumber string `gorm:"default:'Not Provided'"`

	LastRejectionSuggestion string
}
