// Package decision sequences a loan submission through the registry check,
// document verification, classifier and rule analysis, and writes the final
// auditable application record.
package decision

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"veriloan/internal/models"
	"veriloan/internal/repositories"
	"veriloan/internal/services/classifier"
	"veriloan/internal/services/documents"
	"veriloan/internal/services/rules"
)

// Service runs loan submissions through the decision pipeline and exposes the
// narrow record operations the web layer needs.
type Service interface {
	Submit(ctx context.Context, app Application) (*Outcome, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.LoanApplication, error)
	LatestByUser(ctx context.Context, userID uint) (*models.LoanApplication, error)
	ListAll(ctx context.Context, offset, limit int) ([]*models.LoanApplication, int64, error)
	UpdatePrediction(ctx context.Context, id uint, prediction string) error
}

type service struct {
	registry   RegistryStore
	apps       ApplicationStore
	classifier Predictor
	metrics    MetricsCollector
}

// NewService wires the orchestrator. Pass NoopMetricsCollector{} when metrics
// are not wanted.
func NewService(registry RegistryStore, apps ApplicationStore, predictor Predictor, metrics MetricsCollector) Service {
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}
	return &service{
		registry:   registry,
		apps:       apps,
		classifier: predictor,
		metrics:    metrics,
	}
}

// Submit runs the full decision sequence:
// registry lookup, document verification, auto-reject short circuit,
// bank-count bookkeeping, classifier, verification flag, final decision,
// atomic record write. The only paths that end without a written record are
// validation failure, document mismatch and classifier unavailability.
func (s *service) Submit(ctx context.Context, app Application) (*Outcome, error) {
	if err := s.validate(app); err != nil {
		return nil, err
	}
	s.metrics.RecordSubmission()

	record, err := s.lookupRegistry(ctx, app.Email)
	if err != nil {
		return nil, err
	}

	if record != nil {
		reference := documents.Set{
			Identity: record.IdentityDoc,
			Tax:      record.TaxDoc,
			Income:   record.IncomeDoc,
		}
		if !documents.Matches(app.Documents, reference) {
			s.metrics.RecordDocumentMismatch()
			log.Printf("Document mismatch for %s; submission aborted", app.Email)
			return nil, ErrDocumentMismatch
		}

		// Prior rejection elsewhere short-circuits the whole pipeline.
		if !record.Status {
			return s.autoReject(ctx, app, record)
		}

		if err := s.bumpBankCount(ctx, app, record); err != nil {
			return nil, err
		}
	}

	label, err := s.classifier.Predict(ctx, classifier.Features{
		Income:      app.Income,
		CreditScore: app.CreditScore,
		LoanAmount:  app.LoanAmount,
		Employment:  classifier.EncodeEmployment(app.EmploymentStatus),
	})
	if err != nil {
		s.metrics.RecordClassifierError()
		return nil, err
	}

	flag := verificationFlag(app, record)

	// Approval requires every gate at once: a registry record in good
	// standing, an exact detail match, and the classifier's signal. An
	// applicant absent from the registry can never receive a final approval.
	final := models.PredictionRejected
	if record != nil && record.Status && flag && label == classifier.LabelApproved {
		final = models.PredictionApproved
	}

	reason, rejectionSuggestion := s.explain(app, record, label, flag, final)

	suggestion := reason
	if final == models.PredictionApproved || reason == "" {
		suggestion = SuggestionProcessed
	}

	outcome, err := s.record(ctx, app, &models.LoanApplication{
		Prediction:          final,
		VerificationFlag:    flag,
		RejectionReason:     reason,
		RejectionSuggestion: rejectionSuggestion,
		Suggestion:          suggestion,
	})
	if err != nil {
		return nil, err
	}
	s.metrics.RecordOutcome(final)
	return outcome, nil
}

func (s *service) autoReject(ctx context.Context, app Application, record *models.VerifiedApplicant) (*Outcome, error) {
	outcome, err := s.record(ctx, app, &models.LoanApplication{
		Prediction:          models.PredictionRejected,
		VerificationFlag:    verificationFlag(app, record),
		RejectionReason:     ReasonPreviousRejection,
		RejectionSuggestion: SuggestionPreviousRejection,
		Suggestion:          NoteAutoRejected,
	})
	if err != nil {
		return nil, err
	}
	s.metrics.RecordOutcome("auto_rejected")
	return outcome, nil
}

// bumpBankCount increments the shared bank count exactly once for this
// institution: only on the applicant's first application here, and only while
// the registry still reports a single institution. The guarded update is
// retried against concurrent submissions at other banks.
func (s *service) bumpBankCount(ctx context.Context, app Application, record *models.VerifiedApplicant) error {
	prior, err := s.apps.CountByUser(ctx, app.UserID)
	if err != nil {
		return err
	}
	if prior > 0 || record.BankCount != 1 {
		return nil
	}

	count := record.BankCount
	for attempt := 0; attempt < bankCountRetries; attempt++ {
		err := s.registry.IncrementBankCount(ctx, app.Email, count)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repositories.ErrConcurrentUpdate) {
			return err
		}

		fresh, lookupErr := s.lookupRegistry(ctx, app.Email)
		if lookupErr != nil {
			return lookupErr
		}
		if fresh == nil || fresh.BankCount != 1 {
			// Another institution already moved the count; nothing to do.
			return nil
		}
		count = fresh.BankCount
	}

	s.metrics.RecordConflict()
	return fmt.Errorf("bank count update for %s: %w", app.Email, repositories.ErrConcurrentUpdate)
}

// explain picks the stored rejection rationale. Rule findings win; otherwise
// the reason names whichever gate blocked the approval.
func (s *service) explain(app Application, record *models.VerifiedApplicant, label classifier.Label, flag bool, final string) (reason, suggestion string) {
	if final == models.PredictionApproved {
		return "", ""
	}

	if expl := rules.Analyze(app.Income, app.CreditScore, app.LoanAmount, app.EmploymentStatus); expl != nil {
		return expl.Reason, expl.Suggestion
	}

	if label == classifier.LabelRejected {
		return ReasonInternalChecks, ""
	}

	// Classifier approved; the verification gates forced the rejection.
	if record == nil {
		return ReasonUnverified, SuggestionUnverified
	}
	if !flag {
		return ReasonDetailMismatch, SuggestionDetailMismatch
	}
	return ReasonInternalChecks, ""
}

// record writes the application and the customer-profile upsert atomically.
func (s *service) record(ctx context.Context, app Application, decision *models.LoanApplication) (*Outcome, error) {
	decision.ReferenceID = uuid.NewString()
	decision.UserID = app.UserID
	decision.Income = app.Income
	decision.CreditScore = app.CreditScore
	decision.LoanAmount = app.LoanAmount
	decision.EmploymentStatus = app.EmploymentStatus
	decision.NationalID = app.NationalID
	decision.IdentityDoc = app.Documents.Identity
	decision.TaxDoc = app.Documents.Tax
	decision.IncomeDoc = app.Documents.Income

	stored := decision.RejectionSuggestion
	if stored == "" {
		stored = placeholderNoSuggestion
	}
	profile := &models.CustomerProfile{
		UserID:                  app.UserID,
		LastRejectionSuggestion: stored,
	}

	if err := s.apps.CreateWithProfile(ctx, decision, profile); err != nil {
		return nil, err
	}

	return &Outcome{
		ReferenceID:      decision.ReferenceID,
		Decision:         decision.Prediction,
		Reason:           decision.RejectionReason,
		Suggestion:       decision.Suggestion,
		VerificationFlag: decision.VerificationFlag,
	}, nil
}

func (s *service) lookupRegistry(ctx context.Context, email string) (*models.VerifiedApplicant, error) {
	record, err := s.registry.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrVerifiedApplicantNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

func (s *service) validate(app Application) error {
	if strings.TrimSpace(app.Email) == "" || app.UserID == 0 {
		return fmt.Errorf("%w: applicant identity missing", ErrInvalidInput)
	}
	if app.Income <= 0 {
		return fmt.Errorf("%w: income must be positive", ErrInvalidInput)
	}
	if app.LoanAmount <= 0 {
		return fmt.Errorf("%w: loan amount must be positive", ErrInvalidInput)
	}
	if app.CreditScore <= 0 {
		return fmt.Errorf("%w: credit score must be positive", ErrInvalidInput)
	}
	if app.NationalID <= 0 {
		return fmt.Errorf("%w: national id must be a positive number", ErrInvalidInput)
	}
	if !app.Documents.Complete() {
		return ErrMissingDocuments
	}
	return nil
}

// verificationFlag reports whether the submitted figures equal the registry
// record exactly. Employment status compares trimmed and case-insensitive.
func verificationFlag(app Application, record *models.VerifiedApplicant) bool {
	if record == nil {
		return false
	}
	return record.CorrectIncome == app.Income &&
		record.CorrectCreditScore == app.CreditScore &&
		strings.EqualFold(strings.TrimSpace(record.EmploymentStatus), strings.TrimSpace(app.EmploymentStatus)) &&
		record.NationalID == app.NationalID
}

func (s *service) ListByUser(ctx context.Context, userID uint) ([]*models.LoanApplication, error) {
	return s.apps.ListByUser(ctx, userID)
}

func (s *service) LatestByUser(ctx context.Context, userID uint) (*models.LoanApplication, error) {
	return s.apps.LatestByUser(ctx, userID)
}

func (s *service) ListAll(ctx context.Context, offset, limit int) ([]*models.LoanApplication, int64, error) {
	return s.apps.List(ctx, offset, limit)
}

// UpdatePrediction is the admin-only mutation on an existing record. Only the
// prediction column changes, and only to one of the three allowed values.
func (s *service) UpdatePrediction(ctx context.Context, id uint, prediction string) error {
	if !models.ValidPrediction(prediction) {
		return ErrInvalidPrediction
	}
	return s.apps.UpdatePrediction(ctx, id, prediction)
}
