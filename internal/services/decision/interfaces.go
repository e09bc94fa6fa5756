package decision

import (
	"context"

	"veriloan/internal/models"
	"veriloan/internal/services/classifier"
)

// RegistryStore is the slice of the verification registry the orchestrator
// needs. Satisfied by repositories.VerifiedApplicantRepository.
type RegistryStore interface {
	GetByEmail(ctx context.Context, email string) (*models.VerifiedApplicant, error)
	IncrementBankCount(ctx context.Context, email string, fromCount int) error
}

// ApplicationStore persists decisions. Satisfied by
// repositories.LoanApplicationRepository.
type ApplicationStore interface {
	CreateWithProfile(ctx context.Context, app *models.LoanApplication, profile *models.CustomerProfile) error
	GetByID(ctx context.Context, id uint) (*models.LoanApplication, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.LoanApplication, error)
	LatestByUser(ctx context.Context, userID uint) (*models.LoanApplication, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	UpdatePrediction(ctx context.Context, id uint, prediction string) error
	List(ctx context.Context, offset, limit int) ([]*models.LoanApplication, int64, error)
}

// Predictor is the classifier capability the orchestrator invokes. Satisfied
// by *classifier.Adapter.
type Predictor interface {
	Predict(ctx context.Context, f classifier.Features) (classifier.Label, error)
}

// MetricsCollector records decision outcomes. Implementations must be safe
// for concurrent use.
type MetricsCollector interface {
	RecordSubmission()
	RecordOutcome(outcome string)
	RecordDocumentMismatch()
	RecordClassifierError()
	RecordConflict()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSubmission()        {}
func (NoopMetricsCollector) RecordOutcome(string)     {}
func (NoopMetricsCollector) RecordDocumentMismatch()  {}
func (NoopMetricsCollector) RecordClassifierError()   {}
func (NoopMetricsCollector) RecordConflict()          {}
