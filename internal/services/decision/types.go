package decision

import (
	"veriloan/internal/services/documents"
)

// Application is a validated loan submission handed to the orchestrator.
type Application struct {
	UserID           uint
	Email            string
	Income           float64
	CreditScore      int
	LoanAmount       float64
	EmploymentStatus string
	NationalID       int64
	Documents        documents.Set
}

// Outcome is what the web layer renders back to the applicant.
type Outcome struct {
	ReferenceID      string `json:"reference_id"`
	Decision         string `json:"decision"`
	Reason           string `json:"reason,omitempty"`
	Suggestion       string `json:"suggestion"`
	VerificationFlag bool   `json:"verification_flag"`
}
