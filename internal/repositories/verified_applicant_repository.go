package repositories

import (
	"context"

	"veriloan/internal/models"
)

// VerifiedApplicantRepository defines database operations on the shared
// cross-bank verification registry. Absence of a record is expected for new
// applicants and reported via ErrVerifiedApplicantNotFound.
type VerifiedApplicantRepository interface {
	// GetByEmail retrieves the full registry record, reference documents
	// included. Always reads the database; the decision path needs the blobs.
	GetByEmail(ctx context.Context, email string) (*models.VerifiedApplicant, error)

	// GetSummary retrieves the record without document blobs, cache-aside.
	// Used by admin screens and dashboards.
	GetSummary(ctx context.Context, email string) (*models.VerifiedApplicant, error)

	// Upsert creates the record or updates verified details in place.
	Upsert(ctx context.Context, record *models.VerifiedApplicant) error

	// EnsureExists creates a minimal record with BankCount 1 when none exists,
	// or increments BankCount when one does (registration flow).
	EnsureExists(ctx context.Context, email string) error

	// UpdateStatus sets the admin-controlled standing flag.
	UpdateStatus(ctx context.Context, email string, status bool) error

	// IncrementBankCount bumps BankCount by one, guarded on the count the
	// caller read. Returns ErrConcurrentUpdate when the guard fails.
	IncrementBankCount(ctx context.Context, email string, fromCount int) error

	// Delete removes the record (explicit admin action only).
	Delete(ctx context.Context, email string) error

	// List retrieves registry records with pagination, blobs excluded.
	List(ctx context.Context, offset, limit int) ([]*models.VerifiedApplicant, int64, error)
}
