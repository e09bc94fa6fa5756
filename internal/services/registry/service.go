// Package registry exposes the cross-bank verification ledger: read access
// for the decision engine and dashboards, and the narrow admin mutations that
// maintain it.
package registry

import (
	"context"
	"errors"
	"strings"

	"veriloan/internal/models"
	"veriloan/internal/repositories"
	"veriloan/internal/services/documents"
)

// Service defines registry operations.
type Service interface {
	// Lookup returns the full registry record for an email, or (nil, nil)
	// when the applicant is unknown — absence is expected for new applicants.
	Lookup(ctx context.Context, email string) (*models.VerifiedApplicant, error)

	// Summary returns the record without document blobs (cached read).
	Summary(ctx context.Context, email string) (*models.VerifiedApplicant, error)

	// UpsertDetails creates or updates verified figures and reference
	// documents for an applicant (admin screen flow).
	UpsertDetails(ctx context.Context, input UpsertInput) error

	// UpdateStatus maps an admin decision onto the standing flag: Approved is
	// good standing, Rejected and Pending are not.
	UpdateStatus(ctx context.Context, email, status string) error

	// Document returns one reference document blob.
	Document(ctx context.Context, email string, kind documents.Kind) ([]byte, error)

	// Delete removes a registry record (explicit admin action).
	Delete(ctx context.Context, email string) error

	// List pages through registry records for the admin screen.
	List(ctx context.Context, offset, limit int) ([]*models.VerifiedApplicant, int64, error)
}

// UpsertInput carries verified details supplied by an administrator.
type UpsertInput struct {
	Email            string
	Income           float64
	CreditScore      int
	EmploymentStatus string
	NationalID       int64
	Documents        documents.Set
}

type service struct {
	repo repositories.VerifiedApplicantRepository
}

// NewService creates a registry Service over the given repository.
func NewService(repo repositories.VerifiedApplicantRepository) Service {
	return &service{repo: repo}
}

func (s *service) Lookup(ctx context.Context, email string) (*models.VerifiedApplicant, error) {
	record, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrVerifiedApplicantNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

func (s *service) Summary(ctx context.Context, email string) (*models.VerifiedApplicant, error) {
	record, err := s.repo.GetSummary(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrVerifiedApplicantNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

func (s *service) UpsertDetails(ctx context.Context, input UpsertInput) error {
	if strings.TrimSpace(input.Email) == "" {
		return ErrInvalidDetails
	}
	if input.Income <= 0 || input.CreditScore <= 0 {
		return ErrInvalidDetails
	}

	return s.repo.Upsert(ctx, &models.VerifiedApplicant{
		Email:              strings.TrimSpace(input.Email),
		CorrectIncome:      input.Income,
		CorrectCreditScore: input.CreditScore,
		EmploymentStatus:   strings.TrimSpace(input.EmploymentStatus),
		NationalID:         input.NationalID,
		IdentityDoc:        input.Documents.Identity,
		TaxDoc:             input.Documents.Tax,
		IncomeDoc:          input.Documents.Income,
		Status:             true,
		BankCount:          1,
	})
}

func (s *service) UpdateStatus(ctx context.Context, email, status string) error {
	if !models.ValidPrediction(status) {
		return ErrInvalidStatus
	}

	err := s.repo.UpdateStatus(ctx, email, status == models.PredictionApproved)
	if errors.Is(err, repositories.ErrVerifiedApplicantNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *service) Document(ctx context.Context, email string, kind documents.Kind) ([]byte, error) {
	if !documents.ValidKind(kind) {
		return nil, ErrDocumentNotFound
	}

	record, err := s.Lookup(ctx, email)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}

	blob := documents.Set{
		Identity: record.IdentityDoc,
		Tax:      record.TaxDoc,
		Income:   record.IncomeDoc,
	}.Get(kind)
	if len(blob) == 0 {
		return nil, ErrDocumentNotFound
	}
	return blob, nil
}

func (s *service) Delete(ctx context.Context, email string) error {
	err := s.repo.Delete(ctx, email)
	if errors.Is(err, repositories.ErrVerifiedApplicantNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *service) List(ctx context.Context, offset, limit int) ([]*models.VerifiedApplicant, int64, error) {
	return s.repo.List(ctx, offset, limit)
}
