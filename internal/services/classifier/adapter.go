package classifier

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// Adapter validates and encodes applicant figures before handing them to the
// underlying model, and maps the binary class back to a Label.
type Adapter struct {
	model Model
}

// NewAdapter wraps a model. A nil model is tolerated at construction so wiring
// can happen in any order; Predict reports ErrModelUnavailable instead.
func NewAdapter(model Model) *Adapter {
	return &Adapter{model: model}
}

// EncodeEmployment maps an employment status string to the numeric feature the
// model was trained on: 1 for Employed or Self-Employed, 0 otherwise.
func EncodeEmployment(status string) int {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "employed", "self-employed":
		return 1
	default:
		return 0
	}
}

// Predict runs the model on the encoded feature vector.
func (a *Adapter) Predict(ctx context.Context, f Features) (Label, error) {
	if a.model == nil {
		return "", ErrModelUnavailable
	}
	if err := validate(f); err != nil {
		return "", err
	}

	vector := [featureCount]float64{
		featureIncome:      f.Income,
		featureCreditScore: float64(f.CreditScore),
		featureLoanAmount:  f.LoanAmount,
		featureEmployment:  float64(f.Employment),
	}

	class, err := a.model.Predict(ctx, vector)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	if class == 1 {
		return LabelApproved, nil
	}
	return LabelRejected, nil
}

func validate(f Features) error {
	if f.Income <= 0 || math.IsNaN(f.Income) || math.IsInf(f.Income, 0) {
		return fmt.Errorf("%w: income must be a positive number", ErrInvalidFeatureVector)
	}
	if f.LoanAmount <= 0 || math.IsNaN(f.LoanAmount) || math.IsInf(f.LoanAmount, 0) {
		return fmt.Errorf("%w: loan amount must be a positive number", ErrInvalidFeatureVector)
	}
	if f.CreditScore < 0 {
		return fmt.Errorf("%w: credit score must not be negative", ErrInvalidFeatureVector)
	}
	if f.Employment != 0 && f.Employment != 1 {
		return fmt.Errorf("%w: employment must be encoded as 0 or 1", ErrInvalidFeatureVector)
	}
	return nil
}
