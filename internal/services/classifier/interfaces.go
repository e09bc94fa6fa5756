// Package classifier wraps the trained approval model behind a small adapter.
// The model itself is opaque: a pure, deterministic function of four numeric
// features. The adapter owns feature encoding and validation; it never
// substitutes a default decision when the model cannot answer.
package classifier

import "context"

// Label is the binary classifier output.
type Label string

const (
	LabelApproved Label = "Approved"
	LabelRejected Label = "Rejected"
)

// Feature vector order is fixed and the model is order-sensitive:
// [income, credit score, loan amount, employment status].
const (
	featureIncome = iota
	featureCreditScore
	featureLoanAmount
	featureEmployment
	featureCount
)

// Model is the swappable prediction capability. Implementations must be pure:
// the same vector always yields the same class.
type Model interface {
	// Predict returns 1 for approve, 0 for reject.
	Predict(ctx context.Context, features [featureCount]float64) (int, error)
}

// Features carries the applicant figures fed to the model.
type Features struct {
	Income      float64
	CreditScore int
	LoanAmount  float64
	// Employment must be pre-encoded: 1 employed/self-employed, 0 otherwise.
	Employment int
}
